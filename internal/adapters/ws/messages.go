package ws

import (
	"encoding/json"
	"fmt"
	"time"

	"auction-storefront/internal/domain/shared"
	"auction-storefront/internal/ports/outbound"
)

type MessageType string

const (
	// Client to Server message types
	MessageTypeSubscribe    MessageType = "subscribe"
	MessageTypeUnsubscribe  MessageType = "unsubscribe"
	MessageTypeGetAuction   MessageType = "get_auction"
	MessageTypeListAuctions MessageType = "list_auctions"
	MessageTypePing         MessageType = "ping"

	// Server to Client message types
	MessageTypeBidPlaced     MessageType = "bid_placed"
	MessageTypeAuctionEnded  MessageType = "auction_ended"
	MessageTypeAuctionUpdate MessageType = "auction_update"
	MessageTypeError         MessageType = "error"
	MessageTypePong          MessageType = "pong"
)

// ClientMessage is a message sent by a dashboard to the feed
type ClientMessage struct {
	Type      MessageType            `json:"type"`
	AuctionID *int64                 `json:"auction_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// ServerMessage represents a message sent from server to client
type ServerMessage struct {
	Type      MessageType            `json:"type"`
	AuctionID *int64                 `json:"auction_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Error     *string                `json:"error,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

func NewServerMessage(msgType MessageType) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Data:      make(map[string]interface{}),
		Timestamp: time.Now().Unix(),
	}
}

func NewErrorMessage(err string, auctionID *int64) *ServerMessage {
	return &ServerMessage{
		Type:      MessageTypeError,
		AuctionID: auctionID,
		Error:     &err,
		Timestamp: time.Now().Unix(),
	}
}

// NewEventMessage converts a broadcast event into the feed's wire message
func NewEventMessage(event outbound.Event) *ServerMessage {
	auctionID := event.AuctionID
	msg := &ServerMessage{
		AuctionID: &auctionID,
		Data:      event.Data,
		Timestamp: event.Timestamp,
	}

	switch event.Type {
	case outbound.EventTypeBidPlaced:
		msg.Type = MessageTypeBidPlaced
	case outbound.EventTypeAuctionEnded:
		msg.Type = MessageTypeAuctionEnded
	case outbound.EventTypeError:
		msg.Type = MessageTypeError
		if text, ok := event.Data["error"].(string); ok {
			msg.Error = &text
		}
	default:
		msg.Type = MessageTypeAuctionUpdate
	}
	return msg
}

func (m *ClientMessage) validateAuctionID() error {
	if m.AuctionID == nil || *m.AuctionID <= 0 {
		return shared.ErrAuctionIDRequired
	}
	return nil
}

// ParseClientMessage parses a JSON message from client
func ParseClientMessage(data []byte) (*ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse client message: %w", err)
	}

	if msg.Type == "" {
		return nil, ErrMessageTypeRequired
	}

	return &msg, nil
}

// Validate validates a client message
func (m *ClientMessage) Validate() error {
	switch m.Type {
	case MessageTypeSubscribe, MessageTypeUnsubscribe, MessageTypeGetAuction:
		return m.validateAuctionID()
	case MessageTypeListAuctions, MessageTypePing:
		return nil
	default:
		return ErrUnknownMessageType
	}
}
