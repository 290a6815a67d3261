package broadcaster

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"auction-storefront/internal/ports/outbound"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisBroadcaster implements the broadcaster interface using Redis pub/sub,
// so several storefront processes can share one poller
type RedisBroadcaster struct {
	client           *redis.Client
	subscribers      map[string]chan outbound.Event // clientID -> local channel
	pubsubs          map[string]*redis.PubSub       // clientID -> pubsub instance
	clientsToAuction map[string]map[int64]bool      // clientID -> auctionID -> subscribed
	mu               sync.RWMutex
	ctx              context.Context
	cancel           context.CancelFunc
	logger           zerolog.Logger
}

type RedisBroadcasterParams struct {
	// RedisClient is owned by the caller and left open by Close
	RedisClient *redis.Client
	Logger      zerolog.Logger
}

func NewRedisBroadcaster(params RedisBroadcasterParams) *RedisBroadcaster {
	ctx, cancel := context.WithCancel(context.Background())

	return &RedisBroadcaster{
		client:           params.RedisClient,
		subscribers:      make(map[string]chan outbound.Event),
		pubsubs:          make(map[string]*redis.PubSub),
		clientsToAuction: make(map[string]map[int64]bool),
		ctx:              ctx,
		cancel:           cancel,
		logger:           params.Logger.With().Str("component", "redis_broadcaster").Logger(),
	}
}

// ChannelName is the Redis channel of an auction. AllAuctions maps to the
// pattern matching every auction channel.
func ChannelName(auctionID int64) string {
	if auctionID == outbound.AllAuctions {
		return "auction:*"
	}
	return fmt.Sprintf("auction:%d", auctionID)
}

// Subscribe subscribes a client to events for a specific auction
func (r *RedisBroadcaster) Subscribe(ctx context.Context, auctionID int64, clientID string, eventChan chan outbound.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.clientsToAuction[clientID][auctionID] {
		r.logger.Debug().
			Str("client_id", clientID).
			Int64("auction_id", auctionID).
			Msg("Client already subscribed to auction")
		return nil
	}

	// Store the event channel if this is the first subscription
	if r.subscribers[clientID] == nil {
		r.subscribers[clientID] = eventChan
	}

	if r.clientsToAuction[clientID] == nil {
		r.clientsToAuction[clientID] = make(map[int64]bool)
	}
	r.clientsToAuction[clientID][auctionID] = true

	// One pubsub connection per client, shared by all its channels
	pubsub, exists := r.pubsubs[clientID]
	if !exists {
		pubsub = r.client.Subscribe(ctx)
		r.pubsubs[clientID] = pubsub

		go r.listenForRedisMessages(pubsub, clientID, r.subscribers[clientID])
	}

	var err error
	if auctionID == outbound.AllAuctions {
		err = pubsub.PSubscribe(ctx, ChannelName(auctionID))
	} else {
		err = pubsub.Subscribe(ctx, ChannelName(auctionID))
	}
	if err != nil {
		delete(r.clientsToAuction[clientID], auctionID)
		r.logger.Error().Err(err).Str("client_id", clientID).Int64("auction_id", auctionID).Msg("Failed to subscribe to Redis channel")
		return fmt.Errorf("failed to subscribe to %s: %w", ChannelName(auctionID), err)
	}

	r.logger.Info().
		Str("client_id", clientID).
		Int64("auction_id", auctionID).
		Msg("Client subscribed to auction via Redis")
	return nil
}

// Unsubscribe unsubscribes a client from events for a specific auction. The
// client's channel is closed with its last subscription.
func (r *RedisBroadcaster) Unsubscribe(ctx context.Context, auctionID int64, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clientAuctions, exists := r.clientsToAuction[clientID]
	if !exists {
		return nil
	}
	delete(clientAuctions, auctionID)

	if len(clientAuctions) == 0 {
		delete(r.clientsToAuction, clientID)

		if pubsub, exists := r.pubsubs[clientID]; exists {
			if err := pubsub.Close(); err != nil {
				r.logger.Error().Err(err).Str("client_id", clientID).Msg("Error closing Redis pubsub for client")
			}
			delete(r.pubsubs, clientID)
		}

		if eventChan, exists := r.subscribers[clientID]; exists {
			close(eventChan)
			delete(r.subscribers, clientID)
		}
	} else if pubsub, exists := r.pubsubs[clientID]; exists {
		var err error
		if auctionID == outbound.AllAuctions {
			err = pubsub.PUnsubscribe(ctx, ChannelName(auctionID))
		} else {
			err = pubsub.Unsubscribe(ctx, ChannelName(auctionID))
		}
		if err != nil {
			r.logger.Error().Err(err).Str("client_id", clientID).Int64("auction_id", auctionID).Msg("Error unsubscribing from Redis channel")
		}
	}

	r.logger.Info().
		Str("client_id", clientID).
		Int64("auction_id", auctionID).
		Msg("Client unsubscribed from auction")
	return nil
}

// Publish publishes an event to all subscribers of an auction via Redis
func (r *RedisBroadcaster) Publish(ctx context.Context, auctionID int64, event outbound.Event) error {
	channelName := ChannelName(auctionID)

	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}
	event.AuctionID = auctionID

	eventJSON, err := json.Marshal(event)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	result := r.client.Publish(ctx, channelName, eventJSON)
	if err := result.Err(); err != nil {
		r.logger.Error().Err(err).Str("channel_name", channelName).Msg("Failed to publish to Redis")
		return fmt.Errorf("failed to publish to Redis: %w", err)
	}

	r.logger.Debug().
		Str("event_type", string(event.Type)).
		Int64("auction_id", auctionID).
		Int64("subscriber_count", result.Val()).
		Msg("Published event to auction")

	return nil
}

// listenForRedisMessages forwards Redis messages to the client's local channel
func (r *RedisBroadcaster) listenForRedisMessages(pubsub *redis.PubSub, clientID string, localChan chan outbound.Event) {
	defer func() {
		// a send can race with Unsubscribe closing localChan
		if err := recover(); err != nil {
			r.logger.Debug().Interface("panic", err).Str("client_id", clientID).Msg("Redis message listener stopped")
		}
	}()

	ch := pubsub.Channel()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				r.logger.Debug().Str("client_id", clientID).Msg("Redis channel closed for client")
				return
			}

			if r.coveredByPattern(clientID, msg) {
				continue
			}

			event, err := decodeEvent(msg.Payload)
			if err != nil {
				r.logger.Error().Err(err).Str("client_id", clientID).Msg("Failed to unmarshal Redis message for client")
				continue
			}

			select {
			case localChan <- event:
			default:
				r.logger.Warn().Str("client_id", clientID).Msg("Local channel full for client, dropping event")
			}

		case <-r.ctx.Done():
			return
		}
	}
}

// coveredByPattern reports a channel delivery the client also receives
// through its all-auctions pattern. Redis sends a publish once per matching
// subscription, so only the pattern copy is forwarded.
func (r *RedisBroadcaster) coveredByPattern(clientID string, msg *redis.Message) bool {
	if msg.Pattern != "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.clientsToAuction[clientID][outbound.AllAuctions]
}

func decodeEvent(payload string) (outbound.Event, error) {
	var event outbound.Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return outbound.Event{}, err
	}
	return event, nil
}

// Close releases every subscription and closes the client channels
func (r *RedisBroadcaster) Close() error {
	r.cancel()

	r.mu.Lock()
	defer r.mu.Unlock()

	for clientID, pubsub := range r.pubsubs {
		if err := pubsub.Close(); err != nil {
			r.logger.Error().Err(err).Str("client_id", clientID).Msg("Error closing Redis pubsub for client")
		}
		delete(r.pubsubs, clientID)
	}

	for clientID, eventChan := range r.subscribers {
		close(eventChan)
		delete(r.subscribers, clientID)
	}
	r.clientsToAuction = make(map[string]map[int64]bool)

	return nil
}

// IsSubscribed reports whether a client listens to an auction
func (r *RedisBroadcaster) IsSubscribed(auctionID int64, clientID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.clientsToAuction[clientID][auctionID]
}
