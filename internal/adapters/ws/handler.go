package ws

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"auction-storefront/internal/domain/auction"
	"auction-storefront/internal/ports/outbound"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// AuctionReader answers snapshot requests from dashboards
type AuctionReader interface {
	GetAuction(ctx context.Context, auctionID int64) (*auction.Auction, error)
	ListAuctions(ctx context.Context) ([]auction.Auction, error)
}

// AuctionWatcher adds auctions to the polling set
type AuctionWatcher interface {
	Watch(auctionID int64)
}

// WsHandler manages feed connections and message routing
type WsHandler struct {
	clients       map[string]*WsClient // clientID -> Client
	clientsMu     sync.RWMutex
	eventChannels map[string]chan outbound.Event // clientID -> event channel
	subscriptions map[string]map[int64]bool      // clientID -> auctionID -> subscribed
	channelsMu    sync.Mutex
	upgrader      websocket.Upgrader
	auctions      AuctionReader
	watcher       AuctionWatcher
	broadcaster   outbound.Broadcaster
	logger        zerolog.Logger
}

type WsHandlerParams struct {
	Upgrader    websocket.Upgrader
	Auctions    AuctionReader
	Watcher     AuctionWatcher
	Broadcaster outbound.Broadcaster
	Logger      zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(params WsHandlerParams) *WsHandler {
	return &WsHandler{
		clients:       make(map[string]*WsClient),
		eventChannels: make(map[string]chan outbound.Event),
		subscriptions: make(map[string]map[int64]bool),
		upgrader:      params.Upgrader,
		auctions:      params.Auctions,
		watcher:       params.Watcher,
		broadcaster:   params.Broadcaster,
		logger:        params.Logger.With().Str("component", "ws_handler").Logger(),
	}
}

// HandleFeed upgrades the connection and subscribes it to one auction, or to
// every auction when auction_id is absent
func (handler *WsHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	auctionID := outbound.AllAuctions
	if raw := r.URL.Query().Get("auction_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid auction_id", http.StatusBadRequest)
			return
		}
		auctionID = id
	}

	conn, err := handler.upgrader.Upgrade(w, r, nil)
	if err != nil {
		handler.logger.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	client := NewClient(WsClientParams{
		Conn:    conn,
		Handler: handler,
		Logger:  handler.logger,
	})

	handler.registerClient(client)
	handler.createEventChannel(client.id)

	if err := handler.subscribe(client, auctionID); err != nil {
		handler.logger.Error().Err(err).Str("client_id", client.id).Msg("Failed to subscribe new client")
	}

	client.Start()
	go handler.listenForClientEvents(client)

	go func() {
		<-client.ctx.Done()
		handler.unregisterClient(client)
	}()

	handler.logger.Info().Str("client_id", client.id).Int64("auction_id", auctionID).Msg("Feed client connected")
}

func (handler *WsHandler) createEventChannel(clientID string) chan outbound.Event {
	handler.channelsMu.Lock()
	defer handler.channelsMu.Unlock()

	eventChan := make(chan outbound.Event, 100)
	handler.eventChannels[clientID] = eventChan
	return eventChan
}

func (handler *WsHandler) getEventChannel(clientID string) chan outbound.Event {
	handler.channelsMu.Lock()
	defer handler.channelsMu.Unlock()

	return handler.eventChannels[clientID]
}

func (handler *WsHandler) registerClient(client *WsClient) {
	handler.clientsMu.Lock()
	defer handler.clientsMu.Unlock()
	handler.clients[client.id] = client
	handler.logger.Debug().Str("client_id", client.id).Int("total_clients", len(handler.clients)).Msg("Client registered")
}

func (handler *WsHandler) unregisterClient(client *WsClient) {
	handler.clientsMu.Lock()
	delete(handler.clients, client.id)
	total := len(handler.clients)
	handler.clientsMu.Unlock()

	client.Stop()

	// The broadcaster closes the event channel with the last subscription
	handler.channelsMu.Lock()
	for auctionID := range handler.subscriptions[client.id] {
		if err := handler.broadcaster.Unsubscribe(context.Background(), auctionID, client.id); err != nil {
			handler.logger.Error().Err(err).Str("client_id", client.id).Int64("auction_id", auctionID).Msg("Failed to unsubscribe client")
		}
	}
	delete(handler.subscriptions, client.id)
	delete(handler.eventChannels, client.id)
	handler.channelsMu.Unlock()

	handler.logger.Info().Str("client_id", client.id).Int("total_clients", total).Msg("Feed client disconnected")
}

// listenForClientEvents forwards broadcast events to the connection. The
// channel is swapped when a client drops its last subscription, so a closed
// channel means "look up the current one".
func (handler *WsHandler) listenForClientEvents(client *WsClient) {
	eventChan := handler.getEventChannel(client.id)

	for eventChan != nil {
		select {
		case event, ok := <-eventChan:
			if !ok {
				eventChan = handler.getEventChannel(client.id)
				continue
			}

			if err := client.Send(NewEventMessage(event)); err != nil {
				handler.logger.Warn().Err(err).Str("client_id", client.id).Msg("Failed to send event to feed client")
			}

		case <-client.ctx.Done():
			return
		}
	}
}

func (handler *WsHandler) HandleClientMessage(client *WsClient, msg *ClientMessage) error {
	switch msg.Type {
	case MessageTypeSubscribe:
		return handler.handleSubscribe(client, msg)
	case MessageTypeUnsubscribe:
		return handler.handleUnsubscribe(client, msg)
	case MessageTypeGetAuction:
		return handler.handleGetAuction(client, msg)
	case MessageTypeListAuctions:
		return handler.handleListAuctions(client)
	default:
		handler.logger.Warn().Str("client_id", client.id).Str("message_type", string(msg.Type)).Msg("Unknown message type from client")
		return ErrUnknownMessageType
	}
}

// GetConnectedClients returns the number of connected clients
func (handler *WsHandler) GetConnectedClients() int {
	handler.clientsMu.RLock()
	defer handler.clientsMu.RUnlock()
	return len(handler.clients)
}

func (handler *WsHandler) subscribe(client *WsClient, auctionID int64) error {
	handler.channelsMu.Lock()
	defer handler.channelsMu.Unlock()

	eventChan := handler.eventChannels[client.id]
	if eventChan == nil {
		return ErrClientEventChannelNotFound
	}

	if err := handler.broadcaster.Subscribe(client.ctx, auctionID, client.id, eventChan); err != nil {
		return err
	}
	if handler.subscriptions[client.id] == nil {
		handler.subscriptions[client.id] = make(map[int64]bool)
	}
	handler.subscriptions[client.id][auctionID] = true

	if auctionID != outbound.AllAuctions && handler.watcher != nil {
		handler.watcher.Watch(auctionID)
	}
	return nil
}

func (handler *WsHandler) unsubscribe(client *WsClient, auctionID int64) error {
	handler.channelsMu.Lock()
	defer handler.channelsMu.Unlock()

	subscribed := handler.subscriptions[client.id]
	if !subscribed[auctionID] {
		return nil
	}
	delete(subscribed, auctionID)

	if len(subscribed) == 0 {
		// The broadcaster is about to close the current channel
		handler.eventChannels[client.id] = make(chan outbound.Event, 100)
	}
	return handler.broadcaster.Unsubscribe(client.ctx, auctionID, client.id)
}

func (handler *WsHandler) handleSubscribe(client *WsClient, msg *ClientMessage) error {
	if err := handler.subscribe(client, *msg.AuctionID); err != nil {
		handler.logger.Error().Err(err).Str("client_id", client.id).Int64("auction_id", *msg.AuctionID).Msg("Failed to subscribe to auction")
		return err
	}

	response := NewServerMessage(MessageTypeAuctionUpdate)
	response.AuctionID = msg.AuctionID
	response.Data["status"] = "subscribed"
	return client.Send(response)
}

func (handler *WsHandler) handleUnsubscribe(client *WsClient, msg *ClientMessage) error {
	if err := handler.unsubscribe(client, *msg.AuctionID); err != nil {
		return err
	}

	response := NewServerMessage(MessageTypeAuctionUpdate)
	response.AuctionID = msg.AuctionID
	response.Data["status"] = "unsubscribed"
	return client.Send(response)
}

func (handler *WsHandler) handleGetAuction(client *WsClient, msg *ClientMessage) error {
	a, err := handler.auctions.GetAuction(client.ctx, *msg.AuctionID)
	if err != nil {
		return client.Send(NewErrorMessage(err.Error(), msg.AuctionID))
	}

	response := NewServerMessage(MessageTypeAuctionUpdate)
	response.AuctionID = msg.AuctionID
	response.Data = auctionData(a)
	return client.Send(response)
}

func (handler *WsHandler) handleListAuctions(client *WsClient) error {
	auctions, err := handler.auctions.ListAuctions(client.ctx)
	if err != nil {
		return client.Send(NewErrorMessage(err.Error(), nil))
	}

	summaries := make([]map[string]interface{}, 0, len(auctions))
	for i := range auctions {
		summaries = append(summaries, auctionData(&auctions[i]))
	}

	response := NewServerMessage(MessageTypeAuctionUpdate)
	response.Data["auctions"] = summaries
	response.Data["count"] = len(summaries)
	return client.Send(response)
}

func auctionData(a *auction.Auction) map[string]interface{} {
	return map[string]interface{}{
		"auction_id":     a.ID,
		"title":          a.Title,
		"status":         string(a.Status),
		"starting_price": a.StartingPrice,
		"current_price":  a.DisplayPrice(),
		"bid_count":      a.BidCount,
		"end_time":       a.EndTime.Format(time.RFC3339),
	}
}
