package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auction-storefront/internal/adapters/session"
	"auction-storefront/internal/config"
	"auction-storefront/internal/domain/auction"
	"auction-storefront/internal/domain/shared"
	"auction-storefront/internal/ports/outbound"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) *config.Config {
	return &config.Config{
		API:     config.APIConfig{BaseURL: url, ImageBaseURL: url, Timeout: 5 * time.Second},
		Session: config.SessionConfig{Store: config.StoreMemory},
		Logging: config.LoggingConfig{Level: "error", Format: "json"},
		Live: config.LiveConfig{
			Broadcaster:  config.BroadcasterLocal,
			PollInterval: time.Second,
			PollWorkers:  1,
			FeedAddr:     ":0",
		},
	}
}

// run executes one CLI invocation against the fake backend
func run(t *testing.T, url string, store outbound.KeyValueStore, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := NewRootCommand(Options{
		Out:    &out,
		Err:    &errOut,
		Config: testConfig(url),
		Store:  store,
	})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func TestAuctionsList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Auctions", r.URL.Path)
		writeJSON(w, http.StatusOK, `[{"Id":1,"Title":"Lamp","StartingPrice":20,"CurrentPrice":35,"BidCount":2,"Status":"Active"}]`)
	}))
	defer server.Close()

	out, err := run(t, server.URL, session.NewMemoryStore(), "auctions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Lamp")
	assert.Contains(t, out, "$35.00")

	out, err = run(t, server.URL, session.NewMemoryStore(), "auctions", "list", "--json")
	require.NoError(t, err)
	var parsed []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed, 1)
	assert.Equal(t, "Lamp", parsed[0]["title"])
}

func TestLoginThenWhoami(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{"token":"tok","userId":4,"firstName":"Ada","lastName":"Lovelace","email":"ada@x.io","accountType":"Seller"}}`)
	}))
	defer server.Close()
	store := session.NewMemoryStore()

	out, err := run(t, server.URL, store, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")

	out, err = run(t, server.URL, store, "login", "--email", "ada@x.io", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Ada Lovelace.")

	out, err = run(t, server.URL, store, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace <ada@x.io> (Seller, id 4)")

	_, err = run(t, server.URL, store, "logout")
	require.NoError(t, err)
	out, err = run(t, server.URL, store, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")
}

func TestBidPlace_RequiresLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	}))
	defer server.Close()

	_, err := run(t, server.URL, session.NewMemoryStore(), "bid", "place", "42", "150")
	require.ErrorIs(t, err, shared.ErrNotAuthenticated)
}

func TestBidPlace_ChecksCurrentPrice(t *testing.T) {
	var bidRequests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Auctions/42":
			writeJSON(w, http.StatusOK, `{"id":42,"title":"Lamp","startingPrice":100,"currentPrice":140,"status":"Active"}`)
		case "/bidding/auctions/42/bid":
			bidRequests++
			writeJSON(w, http.StatusOK, `{"success":true}`)
		}
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "authToken", "tok"))

	_, err := run(t, server.URL, store, "bid", "place", "42", "120")
	require.ErrorIs(t, err, shared.ErrBidAmountTooLow)
	assert.Zero(t, bidRequests)

	out, err := run(t, server.URL, store, "bid", "place", "42", "150")
	require.NoError(t, err)
	assert.Contains(t, out, "Bid of $150.00 placed on auction #42.")
	assert.Equal(t, 1, bidRequests)

	out, err = run(t, server.URL, store, "bid", "place", "42", "160", "--skip-check", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, out)
}

func TestDashboard_ShowsUnavailablePanels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bidding/my-bids":
			writeJSON(w, http.StatusInternalServerError, `{"message":"Internal server error"}`)
		case "/Auctions/watchlist":
			writeJSON(w, http.StatusOK, `[]`)
		case "/notifications":
			writeJSON(w, http.StatusOK, `[{"id":1,"message":"Auction ended","isRead":false}]`)
		}
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "authToken", "tok"))

	out, err := run(t, server.URL, store, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "My bids\n  unavailable:")
	assert.Contains(t, out, "Watchlist\n  none")
	assert.Contains(t, out, "* Auction ended")

	out, err = run(t, server.URL, store, "dashboard", "--json")
	require.NoError(t, err)
	var parsed map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "failed", parsed["bids"]["status"])
	assert.Equal(t, "empty", parsed["watchlist"]["status"])
	assert.Equal(t, "ok", parsed["notifications"]["status"])
}

func TestAuctionsCreate_ValidatesBeforeSending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "authToken", "tok"))

	_, err := run(t, server.URL, store, "auctions", "create", "--title", "Lamp", "--description", "Brass", "--category", "Home", "--starting-price", "50", "--duration", "45")
	require.ErrorIs(t, err, shared.ErrInvalidDuration)
}

func TestInvalidID(t *testing.T) {
	_, err := run(t, "http://localhost:1", session.NewMemoryStore(), "auctions", "get", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid auction id "abc"`)
}

func TestBidPlace_RejectsEndedAuction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			return
		}
		writeJSON(w, http.StatusOK, `{"id":42,"title":"Lamp","startingPrice":100,"status":"Ended"}`)
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "authToken", "tok"))

	_, err := run(t, server.URL, store, "bid", "place", "42", "500")
	require.ErrorIs(t, err, shared.ErrAuctionNotActive)
}

func TestFormatEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, outbound.Event{
		Type:      outbound.EventTypeBidPlaced,
		AuctionID: 9,
		Data:      map[string]interface{}{"current_price": 12.5, "bid_count": 3},
	})
	assert.Contains(t, buf.String(), "#9 new bid: $12.50 (3 bids)")
}

func TestAuctionsCreate_RejectsBuyerAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "authToken", "tok"))
	require.NoError(t, store.Set(ctx, "user", `{"userId":3,"firstName":"Bo","email":"bo@x.io","accountType":"Buyer"}`))

	_, err := run(t, server.URL, store, "auctions", "create", "--title", "Lamp", "--description", "Brass", "--category", "Home", "--starting-price", "50")
	require.ErrorIs(t, err, shared.ErrSellerAccountRequired)
	assert.Contains(t, err.Error(), "bo@x.io")
}

func TestAuctionsUpdate(t *testing.T) {
	var sent map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/Auctions/9", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "authToken", "tok"))

	out, err := run(t, server.URL, store, "auctions", "update", "9", "--title", "Renamed", "--starting-price", "75")
	require.NoError(t, err)
	assert.Contains(t, out, "Auction #9 updated.")
	assert.Equal(t, "Renamed", sent["Title"])
	assert.Equal(t, 75.0, sent["StartingPrice"])
	assert.NotContains(t, sent, "EndTime")

	_, err = run(t, server.URL, store, "auctions", "update", "9", "--duration", "0")
	require.ErrorIs(t, err, shared.ErrInvalidDuration)
}

func TestFormatAuction_ShowsPrimaryImage(t *testing.T) {
	var buf bytes.Buffer
	formatAuction(&buf, &auction.Auction{
		ID:     3,
		Title:  "Lamp",
		Images: []string{"http://img/a.jpg", "http://img/b.jpg"},
	}, time.Now())
	assert.Contains(t, buf.String(), "Image:       http://img/a.jpg (2 total)")
}
