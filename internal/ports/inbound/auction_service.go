package inbound

import (
	"context"

	"auction-storefront/internal/domain/auction"
	"auction-storefront/internal/domain/bid"
	"auction-storefront/internal/domain/image"
	"auction-storefront/internal/domain/shared"
)

// AuctionService defines the interface for auction operations
type AuctionService interface {
	// ListAuctions retrieves every listing, normalized
	ListAuctions(ctx context.Context) ([]auction.Auction, error)

	// GetAuction retrieves an auction by ID
	GetAuction(ctx context.Context, auctionID int64) (*auction.Auction, error)

	// CreateAuction creates a new auction from the create-auction form
	CreateAuction(ctx context.Context, input AuctionInput) (*auction.Auction, error)

	// UpdateAuction replaces the editable fields of an auction
	UpdateAuction(ctx context.Context, auctionID int64, input AuctionInput) (*auction.Auction, error)

	// DeleteAuction deletes an auction
	DeleteAuction(ctx context.Context, auctionID int64) error

	// GetCategories lists the auction categories
	GetCategories(ctx context.Context) ([]string, error)

	// GetSellerAuctions lists the auctions of one seller
	GetSellerAuctions(ctx context.Context, sellerID int64) ([]auction.Auction, error)

	// AddToWatchlist adds an auction to the current user's watchlist
	AddToWatchlist(ctx context.Context, auctionID int64) error

	// RemoveFromWatchlist removes an auction from the current user's watchlist
	RemoveFromWatchlist(ctx context.Context, auctionID int64) error
}

// BidService defines the interface for bid operations
type BidService interface {
	// PlaceBid places a new bid on an auction and returns the backend's
	// response payload as received
	PlaceBid(ctx context.Context, auctionID int64, amount float64) ([]byte, error)

	// GetAuctionBids retrieves bids for an auction
	GetAuctionBids(ctx context.Context, auctionID int64) ([]bid.Bid, error)

	// GetBidStats retrieves bidding statistics for an auction
	GetBidStats(ctx context.Context, auctionID int64) (*bid.Stats, error)

	// GetHighestBid retrieves the highest bid for an auction
	GetHighestBid(ctx context.Context, auctionID int64) (*bid.Bid, error)
}

// DashboardService defines the calls backing the user dashboard. Failures are
// reported inside the collection so the dashboard can still render.
type DashboardService interface {
	GetUserBids(ctx context.Context) shared.Collection[bid.Bid]
	GetUserWatchlist(ctx context.Context) shared.Collection[auction.Auction]
	GetUserNotifications(ctx context.Context) shared.Collection[shared.Notification]
}

// ImageService defines the interface for auction image operations
type ImageService interface {
	ValidateImageFile(file image.File) image.Validation
	UploadImage(ctx context.Context, file image.File, auctionID int64, opts image.UploadOptions, onProgress func(percent int)) (*image.Image, error)
	UploadMultipleImages(ctx context.Context, auctionID int64, files []image.File, onProgress func(percent int)) image.UploadResult
	GetAuctionImages(ctx context.Context, auctionID int64) ([]image.Image, error)
	SetPrimaryImage(ctx context.Context, imageID int64) error
	DeleteImage(ctx context.Context, imageID int64) error
	ReorderImages(ctx context.Context, auctionID int64, imageIDs []int64) error
}

// AuthService defines the interface for account operations
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*shared.Session, error)
	Login(ctx context.Context, email, password string) (*shared.Session, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*shared.User, error)
	IsAuthenticated(ctx context.Context) bool
}
