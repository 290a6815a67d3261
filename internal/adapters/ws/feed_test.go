package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"auction-storefront/internal/adapters/broadcaster"
	"auction-storefront/internal/domain/auction"
	"auction-storefront/internal/domain/shared"
	"auction-storefront/internal/ports/outbound"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuctions struct{}

func (fakeAuctions) GetAuction(_ context.Context, auctionID int64) (*auction.Auction, error) {
	if auctionID == 404 {
		return nil, shared.ErrNotFound
	}
	return &auction.Auction{ID: auctionID, Title: "Lamp", StartingPrice: 20, BidCount: 0, Status: auction.StatusActive}, nil
}

func (fakeAuctions) ListAuctions(context.Context) ([]auction.Auction, error) {
	return []auction.Auction{{ID: 1, Title: "Lamp"}, {ID: 2, Title: "Desk"}}, nil
}

type fakeWatcher struct {
	mu  sync.Mutex
	ids []int64
}

func (f *fakeWatcher) Watch(auctionID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, auctionID)
}

func (f *fakeWatcher) watched() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.ids...)
}

type feedFixture struct {
	server      *httptest.Server
	broadcaster *broadcaster.LocalBroadcaster
	watcher     *fakeWatcher
}

func newFeedFixture(t *testing.T) *feedFixture {
	t.Helper()

	b := broadcaster.NewLocalBroadcaster(broadcaster.LocalBroadcasterParams{Logger: zerolog.Nop()})
	watcher := &fakeWatcher{}
	handler := NewHandler(WsHandlerParams{
		Auctions:    fakeAuctions{},
		Watcher:     watcher,
		Broadcaster: b,
		Logger:      zerolog.Nop(),
	})

	server := httptest.NewServer(NewMux(handler))
	t.Cleanup(func() {
		server.Close()
		b.Close()
	})

	return &feedFixture{server: server, broadcaster: b, watcher: watcher}
}

func (f *feedFixture) dial(t *testing.T, query string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/feed" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// the pong proves the connection's subscription is in place
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessageTypePing}))
	assert.Equal(t, MessageTypePong, readMessage(t, conn).Type)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestFeed_RelaysAuctionEvents(t *testing.T) {
	f := newFeedFixture(t)
	conn := f.dial(t, "?auction_id=42")
	assert.Equal(t, []int64{42}, f.watcher.watched())

	require.NoError(t, f.broadcaster.Publish(context.Background(), 42, outbound.Event{
		Type: outbound.EventTypeBidPlaced,
		Data: map[string]interface{}{"current_price": 150.0},
	}))

	msg := readMessage(t, conn)
	assert.Equal(t, MessageTypeBidPlaced, msg.Type)
	require.NotNil(t, msg.AuctionID)
	assert.Equal(t, int64(42), *msg.AuctionID)
	assert.Equal(t, 150.0, msg.Data["current_price"])
}

func TestFeed_AllAuctionsWithoutQuery(t *testing.T) {
	f := newFeedFixture(t)
	conn := f.dial(t, "")
	assert.Empty(t, f.watcher.watched())

	require.NoError(t, f.broadcaster.Publish(context.Background(), 8, outbound.Event{Type: outbound.EventTypeAuctionEnded}))
	msg := readMessage(t, conn)
	assert.Equal(t, MessageTypeAuctionEnded, msg.Type)
	assert.Equal(t, int64(8), *msg.AuctionID)
}

func TestFeed_SubscribeMessage(t *testing.T) {
	f := newFeedFixture(t)
	conn := f.dial(t, "?auction_id=1")

	auctionID := int64(5)
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessageTypeSubscribe, AuctionID: &auctionID}))
	msg := readMessage(t, conn)
	assert.Equal(t, MessageTypeAuctionUpdate, msg.Type)
	assert.Equal(t, "subscribed", msg.Data["status"])

	require.NoError(t, f.broadcaster.Publish(context.Background(), 5, outbound.Event{Type: outbound.EventTypeAuctionUpdated}))
	msg = readMessage(t, conn)
	assert.Equal(t, MessageTypeAuctionUpdate, msg.Type)
	assert.Equal(t, int64(5), *msg.AuctionID)
}

func TestFeed_GetAuction(t *testing.T) {
	f := newFeedFixture(t)
	conn := f.dial(t, "?auction_id=3")

	auctionID := int64(3)
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessageTypeGetAuction, AuctionID: &auctionID}))
	msg := readMessage(t, conn)
	assert.Equal(t, MessageTypeAuctionUpdate, msg.Type)
	assert.Equal(t, "Lamp", msg.Data["title"])
	assert.Equal(t, 20.0, msg.Data["current_price"])

	missing := int64(404)
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessageTypeGetAuction, AuctionID: &missing}))
	msg = readMessage(t, conn)
	assert.Equal(t, MessageTypeError, msg.Type)
	require.NotNil(t, msg.Error)
	assert.Equal(t, shared.ErrNotFound.Error(), *msg.Error)
}

func TestFeed_InvalidMessage(t *testing.T) {
	f := newFeedFixture(t)
	conn := f.dial(t, "?auction_id=3")

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessageTypeSubscribe}))
	msg := readMessage(t, conn)
	assert.Equal(t, MessageTypeError, msg.Type)
	require.NotNil(t, msg.Error)
	assert.Contains(t, *msg.Error, shared.ErrAuctionIDRequired.Error())
}

func TestFeed_RejectsBadAuctionID(t *testing.T) {
	f := newFeedFixture(t)

	resp, err := http.Get(f.server.URL + "/feed?auction_id=abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	f := newFeedFixture(t)

	resp, err := http.Get(f.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewEventMessage(t *testing.T) {
	msg := NewEventMessage(outbound.Event{
		Type:      outbound.EventTypeError,
		AuctionID: 4,
		Data:      map[string]interface{}{"error": "cannot connect to backend"},
		Timestamp: 10,
	})
	assert.Equal(t, MessageTypeError, msg.Type)
	require.NotNil(t, msg.Error)
	assert.Equal(t, "cannot connect to backend", *msg.Error)
	assert.Equal(t, int64(10), msg.Timestamp)
}
