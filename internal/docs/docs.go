// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/favorites/docs.go -o internal/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Root"],
                "summary": "Service greeting",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Message"}}}
            }
        },
        "/clients/": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "Register a new client",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ClientCreate"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Client"}},
                    "400": {"description": "Email already registered", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "Validation error", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/clients/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "Get the authenticated client",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Client"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "Update the authenticated client",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ClientUpdate"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Client"}},
                    "400": {"description": "Email in use", "schema": {"$ref": "#/definitions/Error"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Clients"],
                "summary": "Delete the authenticated client and all of its favorites",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/token": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Obtain an access token",
                "parameters": [
                    {"type": "string", "description": "Client email", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Token"}},
                    "401": {"description": "Incorrect email or password", "schema": {"$ref": "#/definitions/Error"}},
                    "429": {"description": "Too many login attempts", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/clients/me/favorites/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Favorites"],
                "summary": "List the authenticated client's favorite products",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Product"}}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Favorites"],
                "summary": "Add a product to the authenticated client's favorites",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/FavoriteCreate"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Message"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Product not found", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Product already in favorites", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/clients/me/favorites/{productId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Favorites"],
                "summary": "Remove a product from the authenticated client's favorites",
                "parameters": [{"type": "integer", "description": "Product ID", "name": "productId", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Favorite product not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Database unreachable"}
                }
            }
        }
    },
    "definitions": {
        "Client": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "email": {"type": "string"}}
        },
        "ClientCreate": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string", "minLength": 6}}
        },
        "ClientUpdate": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}}
        },
        "Token": {
            "type": "object",
            "properties": {"access_token": {"type": "string"}, "token_type": {"type": "string"}}
        },
        "FavoriteCreate": {
            "type": "object",
            "required": ["product_id"],
            "properties": {"product_id": {"type": "integer"}}
        },
        "Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "price": {"type": "number"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "image": {"type": "string"},
                "rating": {"$ref": "#/definitions/Review"}
            }
        },
        "Review": {
            "type": "object",
            "properties": {"rate": {"type": "number"}, "count": {"type": "integer"}}
        },
        "Message": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "Error": {
            "type": "object",
            "properties": {"detail": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Favorites API",
	Description:      "Clients and their favorite products, enriched live from the product catalog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
