package outbound

import (
	"context"
)

// EventType represents the type of event being broadcasted
type EventType string

const (
	EventTypeAuctionUpdated EventType = "auction.updated"
	EventTypeBidPlaced      EventType = "bid.placed"
	EventTypeAuctionEnded   EventType = "auction.ended"
	EventTypeError          EventType = "error"
)

// AllAuctions subscribes to events of every auction
const AllAuctions int64 = 0

// Event represents a broadcast event
type Event struct {
	Type      EventType              `json:"type"`
	AuctionID int64                  `json:"auction_id"`
	Data      map[string]interface{} `json:"data"`
	Timestamp int64                  `json:"timestamp"`
}

// Broadcaster defines the interface for broadcasting events
type Broadcaster interface {
	// Subscribe subscribes a client to events for a specific auction, or to
	// every auction with AllAuctions. All events of a client are delivered to
	// the same channel.
	Subscribe(ctx context.Context, auctionID int64, clientID string, eventChan chan Event) error

	// Unsubscribe unsubscribes a client from events for a specific auction
	Unsubscribe(ctx context.Context, auctionID int64, clientID string) error

	// Publish publishes an event to all subscribers of an auction
	Publish(ctx context.Context, auctionID int64, event Event) error

	// Close releases every subscription
	Close() error
}
