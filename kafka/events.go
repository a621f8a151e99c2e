package kafka

import "time"

// Event types
const (
	EventTypeFavoriteAdded   = "favorite.added"
	EventTypeFavoriteRemoved = "favorite.removed"
	EventTypeClientDeleted   = "client.deleted"
)

// DefaultTopic receives every favorites domain event
const DefaultTopic = "favorites-events"

// Event is a favorites domain event. ProductID is zero for client events.
type Event struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ClientID  uint      `json:"client_id"`
	ProductID uint      `json:"product_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// FavoriteAdded builds the event emitted after a favorite is stored
func FavoriteAdded(clientID, productID uint) Event {
	return Event{EventType: EventTypeFavoriteAdded, ClientID: clientID, ProductID: productID}
}

// FavoriteRemoved builds the event emitted after a favorite is deleted
func FavoriteRemoved(clientID, productID uint) Event {
	return Event{EventType: EventTypeFavoriteRemoved, ClientID: clientID, ProductID: productID}
}

// ClientDeleted builds the event emitted after a client and its favorites are deleted
func ClientDeleted(clientID uint) Event {
	return Event{EventType: EventTypeClientDeleted, ClientID: clientID}
}
