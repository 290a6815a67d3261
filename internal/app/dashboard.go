package app

import (
	"context"
	"fmt"
	"strings"

	"auction-storefront/internal/adapters/httpapi"
	"auction-storefront/internal/adapters/mapping"
	"auction-storefront/internal/domain/auction"
	"auction-storefront/internal/domain/bid"
	"auction-storefront/internal/domain/shared"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// DashboardService backs the user dashboard. These endpoints are unreliable
// on the backend, so failures come back inside the collection and never
// block the rest of the dashboard.
type DashboardService struct {
	api    *httpapi.Client
	logger zerolog.Logger
}

type DashboardServiceParams struct {
	API    *httpapi.Client
	Logger zerolog.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	return &DashboardService{
		api:    params.API,
		logger: params.Logger.With().Str("component", "dashboard_service").Logger(),
	}
}

// GetUserBids retrieves the current user's bid history
func (s *DashboardService) GetUserBids(ctx context.Context) shared.Collection[bid.Bid] {
	data, err := s.list(ctx, "/bidding/my-bids")
	if err != nil {
		return shared.FailedCollection[bid.Bid](err)
	}
	bids := mapping.Bids(data)
	bid.SortNewestFirst(bids)
	return shared.NewCollection(bids)
}

// GetUserWatchlist retrieves the auctions the current user watches
func (s *DashboardService) GetUserWatchlist(ctx context.Context) shared.Collection[auction.Auction] {
	data, err := s.list(ctx, "/Auctions/watchlist")
	if err != nil {
		return shared.FailedCollection[auction.Auction](err)
	}
	return shared.NewCollection(mapping.Auctions(data))
}

// GetUserNotifications retrieves the current user's notifications
func (s *DashboardService) GetUserNotifications(ctx context.Context) shared.Collection[shared.Notification] {
	data, err := s.list(ctx, "/notifications")
	if err != nil {
		return shared.FailedCollection[shared.Notification](err)
	}
	return shared.NewCollection(mapping.Notifications(data))
}

func (s *DashboardService) list(ctx context.Context, path string) (gjson.Result, error) {
	payload, err := s.api.Get(ctx, path)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Dashboard call failed, showing it as unavailable")
		return gjson.Result{}, err
	}

	data := payload.Data()
	if noData(payload, data) {
		return gjson.Parse(`[]`), nil
	}
	if !data.IsArray() {
		err := fmt.Errorf("%w: expected a list", shared.ErrUnexpectedPayload)
		s.logger.Warn().Err(err).Str("path", path).Msg("Dashboard call returned an unexpected payload")
		return gjson.Result{}, err
	}
	return data, nil
}

// noData reports an empty body or a null data field, which the backend sends
// when the user simply has nothing to show
func noData(payload *httpapi.Payload, data gjson.Result) bool {
	return strings.TrimSpace(payload.Text()) == "" || data.Type == gjson.Null
}
