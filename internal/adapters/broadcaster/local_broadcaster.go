package broadcaster

import (
	"context"
	"sync"
	"time"

	"auction-storefront/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// LocalBroadcaster fans events out to subscribers of the same process
type LocalBroadcaster struct {
	subscribers      map[string]chan outbound.Event // clientID -> channel
	clientsToAuction map[string]map[int64]bool      // clientID -> auctionID -> subscribed
	mu               sync.RWMutex
	closed           bool
	logger           zerolog.Logger
}

type LocalBroadcasterParams struct {
	Logger zerolog.Logger
}

func NewLocalBroadcaster(params LocalBroadcasterParams) *LocalBroadcaster {
	return &LocalBroadcaster{
		subscribers:      make(map[string]chan outbound.Event),
		clientsToAuction: make(map[string]map[int64]bool),
		logger:           params.Logger.With().Str("component", "local_broadcaster").Logger(),
	}
}

// Subscribe subscribes a client to events for a specific auction
func (l *LocalBroadcaster) Subscribe(_ context.Context, auctionID int64, clientID string, eventChan chan outbound.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrBroadcasterClosed
	}

	if l.subscribers[clientID] == nil {
		l.subscribers[clientID] = eventChan
	}
	if l.clientsToAuction[clientID] == nil {
		l.clientsToAuction[clientID] = make(map[int64]bool)
	}
	l.clientsToAuction[clientID][auctionID] = true

	l.logger.Debug().
		Str("client_id", clientID).
		Int64("auction_id", auctionID).
		Msg("Client subscribed to auction")
	return nil
}

// Unsubscribe unsubscribes a client from an auction. The client's channel is
// closed with its last subscription.
func (l *LocalBroadcaster) Unsubscribe(_ context.Context, auctionID int64, clientID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	clientAuctions, exists := l.clientsToAuction[clientID]
	if !exists {
		return nil
	}
	delete(clientAuctions, auctionID)

	if len(clientAuctions) == 0 {
		delete(l.clientsToAuction, clientID)
		if eventChan, exists := l.subscribers[clientID]; exists {
			close(eventChan)
			delete(l.subscribers, clientID)
		}
	}

	l.logger.Debug().
		Str("client_id", clientID).
		Int64("auction_id", auctionID).
		Msg("Client unsubscribed from auction")
	return nil
}

// Publish delivers the event once to every client subscribed to the auction
// or to all auctions. A full client channel drops the event.
func (l *LocalBroadcaster) Publish(_ context.Context, auctionID int64, event outbound.Event) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}
	event.AuctionID = auctionID

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return ErrBroadcasterClosed
	}

	delivered := 0
	for clientID, auctions := range l.clientsToAuction {
		if !auctions[auctionID] && !auctions[outbound.AllAuctions] {
			continue
		}

		select {
		case l.subscribers[clientID] <- event:
			delivered++
		default:
			l.logger.Warn().Str("client_id", clientID).Msg("Client channel full, dropping event")
		}
	}

	l.logger.Debug().
		Str("event_type", string(event.Type)).
		Int64("auction_id", auctionID).
		Int("subscriber_count", delivered).
		Msg("Published event to auction")
	return nil
}

// Close closes every client channel
func (l *LocalBroadcaster) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	for clientID, eventChan := range l.subscribers {
		close(eventChan)
		delete(l.subscribers, clientID)
	}
	l.clientsToAuction = make(map[string]map[int64]bool)
	return nil
}
