package app

import (
	"context"
	"fmt"

	"auction-storefront/internal/adapters/httpapi"
	"auction-storefront/internal/adapters/mapping"
	"auction-storefront/internal/domain/bid"
	"auction-storefront/internal/domain/shared"

	"github.com/rs/zerolog"
)

// BidService implements the bidding calls
type BidService struct {
	api    *httpapi.Client
	logger zerolog.Logger
}

type BidServiceParams struct {
	API    *httpapi.Client
	Logger zerolog.Logger
}

// NewBidService creates a new bid service
func NewBidService(params BidServiceParams) *BidService {
	return &BidService{
		api:    params.API,
		logger: params.Logger.With().Str("component", "bid_service").Logger(),
	}
}

// PlaceBid sends {amount} for the auction. The amount is forwarded as given;
// the minimum-bid rule is checked by the bid form before calling. The
// backend's response body is returned unmodified.
func (s *BidService) PlaceBid(ctx context.Context, auctionID int64, amount float64) ([]byte, error) {
	s.logger.Info().
		Int64("auction_id", auctionID).
		Float64("amount", amount).
		Msg("Attempting to place bid")

	payload, err := s.api.Post(ctx, fmt.Sprintf("/bidding/auctions/%d/bid", auctionID), map[string]float64{
		"amount": amount,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("auction_id", auctionID).Msg("Failed to place bid")
		return nil, err
	}

	s.logger.Info().Int64("auction_id", auctionID).Float64("amount", amount).Msg("Bid placed successfully")
	return payload.Raw, nil
}

// GetAuctionBids retrieves the bid history of an auction, newest first, with
// the highest bid flagged as winning
func (s *BidService) GetAuctionBids(ctx context.Context, auctionID int64) ([]bid.Bid, error) {
	payload, err := s.api.Get(ctx, fmt.Sprintf("/bidding/auctions/%d/bids", auctionID))
	if err != nil {
		return nil, err
	}

	data := payload.Data()
	if !data.IsArray() {
		return nil, fmt.Errorf("%w: expected a list of bids", shared.ErrUnexpectedPayload)
	}

	bids := mapping.Bids(data)
	for i := range bids {
		if bids[i].AuctionID == 0 {
			bids[i].AuctionID = auctionID
		}
	}
	bid.MarkWinning(bids)
	bid.SortNewestFirst(bids)
	return bids, nil
}

// GetBidStats retrieves bidding statistics. When the stats endpoint answers
// without a record the figures are computed from the bid history.
func (s *BidService) GetBidStats(ctx context.Context, auctionID int64) (*bid.Stats, error) {
	payload, err := s.api.Get(ctx, fmt.Sprintf("/bidding/auctions/%d/stats", auctionID))
	if err != nil {
		return nil, err
	}

	data := payload.Data()
	if data.IsObject() {
		stats := mapping.BidStats(data)
		stats.AuctionID = auctionID
		return &stats, nil
	}

	s.logger.Debug().Int64("auction_id", auctionID).Msg("Stats endpoint sent no record, summarizing bid history")
	bids, err := s.GetAuctionBids(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	stats := bid.Summarize(auctionID, bids)
	return &stats, nil
}

// GetHighestBid retrieves the highest bid, or nil when there is none
func (s *BidService) GetHighestBid(ctx context.Context, auctionID int64) (*bid.Bid, error) {
	payload, err := s.api.Get(ctx, fmt.Sprintf("/bidding/auctions/%d/highest-bid", auctionID))
	if err != nil {
		return nil, err
	}

	data := payload.Data()
	if !data.IsObject() {
		return nil, nil
	}

	highest := mapping.Bid(data)
	if highest.AuctionID == 0 {
		highest.AuctionID = auctionID
	}
	highest.IsWinning = true
	return &highest, nil
}
