package app

import (
	"context"
	"fmt"
	"time"

	"auction-storefront/internal/adapters/httpapi"
	"auction-storefront/internal/adapters/mapping"
	"auction-storefront/internal/domain/auction"
	"auction-storefront/internal/domain/shared"
	"auction-storefront/internal/ports/inbound"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// AuctionService implements the auction use cases against the backend
type AuctionService struct {
	api    *httpapi.Client
	now    func() time.Time
	logger zerolog.Logger
}

type AuctionServiceParams struct {
	API *httpapi.Client
	// Clock defaults to time.Now
	Clock  func() time.Time
	Logger zerolog.Logger
}

// NewAuctionService creates a new auction service
func NewAuctionService(params AuctionServiceParams) *AuctionService {
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}

	return &AuctionService{
		api:    params.API,
		now:    clock,
		logger: params.Logger.With().Str("component", "auction_service").Logger(),
	}
}

// ListAuctions retrieves every listing. The backend sends either a bare
// array or {data: array}; anything else is rejected.
func (service *AuctionService) ListAuctions(ctx context.Context) ([]auction.Auction, error) {
	payload, err := service.api.Get(ctx, "/Auctions")
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to list auctions")
		return nil, err
	}

	auctions, err := auctionList(payload)
	if err != nil {
		service.logger.Error().Err(err).Msg("Unexpected auction list payload")
		return nil, err
	}

	service.logger.Debug().Int("count", len(auctions)).Msg("Auctions listed")
	return auctions, nil
}

// GetAuction retrieves an auction by ID
func (service *AuctionService) GetAuction(ctx context.Context, auctionID int64) (*auction.Auction, error) {
	service.logger.Debug().Int64("auction_id", auctionID).Msg("Retrieving auction")

	payload, err := service.api.Get(ctx, fmt.Sprintf("/Auctions/%d", auctionID))
	if err != nil {
		service.logger.Error().Err(err).Int64("auction_id", auctionID).Msg("Failed to retrieve auction")
		return nil, err
	}

	data := payload.Data()
	if !data.IsObject() {
		return nil, fmt.Errorf("%w: expected an auction object", shared.ErrUnexpectedPayload)
	}

	a := mapping.Auction(data)
	service.logger.Debug().
		Int64("auction_id", a.ID).
		Str("auction_status", string(a.Status)).
		Time("end_time", a.EndTime).
		Float64("current_price", a.CurrentPrice).
		Msg("Auction retrieved successfully")

	return &a, nil
}

// CreateAuction translates the form input and creates the auction
func (service *AuctionService) CreateAuction(ctx context.Context, input inbound.AuctionInput) (*auction.Auction, error) {
	service.logger.Info().
		Str("title", input.Title).
		Str("category", input.Category).
		Str("starting_price", input.StartingPrice).
		Int("duration_days", input.DurationDays).
		Msg("Attempting to create auction")

	body, err := mapping.CreateAuctionBody(input, service.now())
	if err != nil {
		service.logger.Warn().Err(err).Msg("Invalid auction input")
		return nil, err
	}

	payload, err := service.api.Post(ctx, "/Auctions", body)
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to create auction")
		return nil, err
	}

	created := createdAuction(payload, body)
	service.logger.Info().Int64("auction_id", created.ID).Msg("Auction created successfully")
	return created, nil
}

// UpdateAuction sends the filled-in fields of input
func (service *AuctionService) UpdateAuction(ctx context.Context, auctionID int64, input inbound.AuctionInput) (*auction.Auction, error) {
	body, err := mapping.UpdateAuctionBody(input, service.now())
	if err != nil {
		return nil, err
	}

	payload, err := service.api.Put(ctx, fmt.Sprintf("/Auctions/%d", auctionID), body)
	if err != nil {
		service.logger.Error().Err(err).Int64("auction_id", auctionID).Msg("Failed to update auction")
		return nil, err
	}

	updated := createdAuction(payload, body)
	if updated.ID == 0 {
		updated.ID = auctionID
	}
	service.logger.Info().Int64("auction_id", auctionID).Msg("Auction updated successfully")
	return updated, nil
}

// DeleteAuction deletes an auction
func (service *AuctionService) DeleteAuction(ctx context.Context, auctionID int64) error {
	if _, err := service.api.Delete(ctx, fmt.Sprintf("/Auctions/%d", auctionID)); err != nil {
		service.logger.Error().Err(err).Int64("auction_id", auctionID).Msg("Failed to delete auction")
		return err
	}
	service.logger.Info().Int64("auction_id", auctionID).Msg("Auction deleted")
	return nil
}

// GetCategories lists the auction categories
func (service *AuctionService) GetCategories(ctx context.Context) ([]string, error) {
	payload, err := service.api.Get(ctx, "/Auctions/categories")
	if err != nil {
		return nil, err
	}

	data := payload.Data()
	if !data.IsArray() {
		return nil, fmt.Errorf("%w: expected a list of categories", shared.ErrUnexpectedPayload)
	}
	return mapping.Categories(data), nil
}

// GetSellerAuctions lists the auctions of one seller
func (service *AuctionService) GetSellerAuctions(ctx context.Context, sellerID int64) ([]auction.Auction, error) {
	payload, err := service.api.Get(ctx, fmt.Sprintf("/Auctions/seller/%d", sellerID))
	if err != nil {
		service.logger.Error().Err(err).Int64("seller_id", sellerID).Msg("Failed to list seller auctions")
		return nil, err
	}
	return auctionList(payload)
}

// AddToWatchlist adds an auction to the current user's watchlist
func (service *AuctionService) AddToWatchlist(ctx context.Context, auctionID int64) error {
	_, err := service.api.Post(ctx, fmt.Sprintf("/Auctions/%d/watchlist", auctionID), nil)
	return err
}

// RemoveFromWatchlist removes an auction from the current user's watchlist
func (service *AuctionService) RemoveFromWatchlist(ctx context.Context, auctionID int64) error {
	_, err := service.api.Delete(ctx, fmt.Sprintf("/Auctions/%d/watchlist", auctionID))
	return err
}

func auctionList(payload *httpapi.Payload) ([]auction.Auction, error) {
	data := payload.Data()
	if !data.IsArray() {
		return nil, fmt.Errorf("%w: expected a list of auctions", shared.ErrUnexpectedPayload)
	}
	return mapping.Auctions(data), nil
}

// createdAuction reads the auction echoed by a create or update call. When
// the backend answers without the record, the sent body is normalized instead.
func createdAuction(payload *httpapi.Payload, sent []byte) *auction.Auction {
	data := payload.Data()
	if !data.IsObject() {
		data = gjson.ParseBytes(sent)
	}
	a := mapping.Auction(data)
	return &a
}
