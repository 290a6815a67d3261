package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"auction-storefront/internal/adapters/mapping"
	"auction-storefront/internal/domain/shared"
	"auction-storefront/internal/ports/inbound"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuctionService(b *backend, now time.Time) *AuctionService {
	return NewAuctionService(AuctionServiceParams{
		API:    b.api,
		Clock:  func() time.Time { return now },
		Logger: zerolog.Nop(),
	})
}

func TestListAuctions_PayloadShapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLen int
		wantErr error
	}{
		{name: "bare_array", body: `[{"id":1,"title":"Lamp","startingPrice":10},{"Id":2,"Title":"Desk","StartingPrice":50}]`, wantLen: 2},
		{name: "data_envelope", body: `{"data":[{"id":1,"title":"Lamp"}]}`, wantLen: 1},
		{name: "empty_array", body: `[]`, wantLen: 0},
		{name: "object", body: `{"data":{"id":1}}`, wantErr: shared.ErrUnexpectedPayload},
		{name: "string", body: `"nope"`, wantErr: shared.ErrUnexpectedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/Auctions", r.URL.Path)
				writeJSON(w, http.StatusOK, tt.body)
			})

			auctions, err := newAuctionService(b, time.Now()).ListAuctions(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, auctions, tt.wantLen)
		})
	}
}

func TestListAuctions_Normalizes(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"Id":3,"Title":"Clock","StartingPrice":25,"Status":"Active"}]`)
	})

	auctions, err := newAuctionService(b, time.Now()).ListAuctions(context.Background())
	require.NoError(t, err)
	require.Len(t, auctions, 1)

	a := auctions[0]
	assert.Equal(t, int64(3), a.ID)
	assert.Equal(t, "Clock", a.Title)
	assert.Equal(t, 25.0, a.CurrentPrice)
	assert.Equal(t, 0, a.BidCount)
	assert.Equal(t, []string{mapping.Placeholder}, a.Images)
}

func TestGetAuction_NotFound(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"message":"Auction not found"}`)
	})

	_, err := newAuctionService(b, time.Now()).GetAuction(context.Background(), 99)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateAuction_SendsPascalCaseBody(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	var sent map[string]interface{}
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Auctions", r.URL.Path)
		assert.Equal(t, "Bearer seller-token", r.Header.Get("Authorization"))

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(raw, &sent))
		writeJSON(w, http.StatusCreated, `{"data":{"auctionId":12,"title":"Camera","startingPrice":100}}`)
	})
	b.login(t, "seller-token")

	created, err := newAuctionService(b, now).CreateAuction(context.Background(), inbound.AuctionInput{
		Title:         "Camera",
		Description:   "Vintage film camera",
		Category:      "Electronics",
		StartingPrice: "$100",
		DurationDays:  7,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), created.ID)

	assert.Equal(t, "Camera", sent["Title"])
	assert.Equal(t, 100.0, sent["StartingPrice"])
	assert.Equal(t, now.Add(7*24*time.Hour).Format(time.RFC3339), sent["EndTime"])
	assert.NotContains(t, sent, "Location")
	assert.NotContains(t, sent, "ReservePrice")
}

func TestCreateAuction_EchoesBodyWithoutRecord(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	created, err := newAuctionService(b, time.Now()).CreateAuction(context.Background(), inbound.AuctionInput{
		Title:         "Chair",
		StartingPrice: "40",
		DurationDays:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Chair", created.Title)
	assert.Equal(t, 40.0, created.StartingPrice)
}

func TestGetCategories_StringsAndRecords(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Auctions/categories", r.URL.Path)
		writeJSON(w, http.StatusOK, `["Art",{"Name":"Books"},{"name":"Toys"}]`)
	})

	categories, err := newAuctionService(b, time.Now()).GetCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Art", "Books", "Toys"}, categories)
}

func TestWatchlist_Paths(t *testing.T) {
	var calls []string
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	service := newAuctionService(b, time.Now())

	require.NoError(t, service.AddToWatchlist(context.Background(), 5))
	require.NoError(t, service.RemoveFromWatchlist(context.Background(), 5))
	assert.Equal(t, []string{"POST /Auctions/5/watchlist", "DELETE /Auctions/5/watchlist"}, calls)
}

func TestCreateAuction_RejectsZeroDuration(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})

	_, err := newAuctionService(b, time.Now()).CreateAuction(context.Background(), inbound.AuctionInput{
		Title:         "Chair",
		StartingPrice: "40",
	})
	require.ErrorIs(t, err, shared.ErrInvalidDuration)
}

func TestUpdateAuction(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		response  func(w http.ResponseWriter)
		wantID    int64
		wantTitle string
	}{
		{
			name:      "record_returned",
			response:  func(w http.ResponseWriter) { writeJSON(w, http.StatusOK, `{"data":{"Id":9,"Title":"Renamed lamp"}}`) },
			wantID:    9,
			wantTitle: "Renamed lamp",
		},
		{
			name:      "no_content_falls_back_to_id",
			response:  func(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) },
			wantID:    9,
			wantTitle: "Renamed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sent map[string]interface{}
			b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/Auctions/9", r.URL.Path)
				raw, err := io.ReadAll(r.Body)
				assert.NoError(t, err)
				assert.NoError(t, json.Unmarshal(raw, &sent))
				tt.response(w)
			})

			updated, err := newAuctionService(b, now).UpdateAuction(context.Background(), 9, inbound.AuctionInput{
				Title:        "Renamed",
				DurationDays: 2,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, updated.ID)
			assert.Equal(t, tt.wantTitle, updated.Title)

			assert.Equal(t, "Renamed", sent["Title"])
			assert.Equal(t, now.Add(48*time.Hour).Format(time.RFC3339), sent["EndTime"])
			assert.NotContains(t, sent, "StartingPrice")
			assert.NotContains(t, sent, "StartTime")
		})
	}
}

func TestDeleteAuction(t *testing.T) {
	var calls []string
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.URL.Path == "/Auctions/404" {
			writeJSON(w, http.StatusNotFound, `{"message":"Auction not found"}`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	service := newAuctionService(b, time.Now())

	require.NoError(t, service.DeleteAuction(context.Background(), 9))
	require.ErrorIs(t, service.DeleteAuction(context.Background(), 404), shared.ErrNotFound)
	assert.Equal(t, []string{"DELETE /Auctions/9", "DELETE /Auctions/404"}, calls)
}

func TestGetSellerAuctions(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/Auctions/seller/4", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"data":[{"Id":1,"Title":"Lamp","SellerId":4},{"id":2,"title":"Desk","sellerId":4}]}`)
	})

	auctions, err := newAuctionService(b, time.Now()).GetSellerAuctions(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, auctions, 2)
	assert.Equal(t, "Lamp", auctions[0].Title)
	assert.Equal(t, int64(2), auctions[1].ID)
	assert.Equal(t, int64(4), auctions[1].SellerID)
}
