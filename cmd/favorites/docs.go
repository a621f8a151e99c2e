package main

// @title Favorites API
// @version 1.0
// @description Clients and their favorite products, enriched live from the product catalog.

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Clients
// @tag.description Client registration and self-service

// @tag.name Authentication
// @tag.description Access token issuance

// @tag.name Favorites
// @tag.description The authenticated client's favorite products

// @tag.name Health
// @tag.description Health check endpoints
