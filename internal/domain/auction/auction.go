package auction

import (
	"strings"
	"time"

	"auction-storefront/internal/domain/shared"
)

// Status represents the current status of an auction as reported by the backend.
// Values outside the known set are preserved as-is.
type Status string

const (
	StatusActive    Status = "Active"
	StatusEnded     Status = "Ended"
	StatusPending   Status = "Pending"
	StatusCancelled Status = "Cancelled"
)

// SellerSummary is the embedded seller of an auction. Endpoints that send the
// seller as a plain string only fill Name.
type SellerSummary struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Auction represents an auction listing in canonical camelCase shape
type Auction struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Category      string        `json:"category"`
	Location      string        `json:"location"`
	Condition     string        `json:"condition,omitempty"`
	StartingPrice float64       `json:"startingPrice"`
	CurrentPrice  float64       `json:"currentPrice"`
	ReservePrice  float64       `json:"reservePrice,omitempty"`
	BidCount      int           `json:"bidCount"`
	Status        Status        `json:"status"`
	StartTime     time.Time     `json:"startTime"`
	EndTime       time.Time     `json:"endTime"`
	SellerID      int64         `json:"sellerId"`
	Seller        SellerSummary `json:"seller"`
	Images        []string      `json:"images"`
}

// IsActive returns true if the backend reports the auction as active
func (a *Auction) IsActive() bool {
	return strings.EqualFold(string(a.Status), string(StatusActive))
}

// HasEnded returns true if the auction is marked ended or its end time has passed
func (a *Auction) HasEnded(now time.Time) bool {
	if strings.EqualFold(string(a.Status), string(StatusEnded)) {
		return true
	}
	return !a.EndTime.IsZero() && !now.Before(a.EndTime)
}

// DisplayPrice returns the current price, falling back to the starting price
// when no bid has moved it yet
func (a *Auction) DisplayPrice() float64 {
	if a.CurrentPrice <= 0 {
		return a.StartingPrice
	}
	return a.CurrentPrice
}

// PrimaryImage returns the first image URL, or an empty string
func (a *Auction) PrimaryImage() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0]
}

// ValidateBid checks a bid amount the way the bid form does before submitting.
// The data client forwards amounts without calling this.
func (a *Auction) ValidateBid(amount float64) error {
	if amount <= 0 {
		return shared.ErrBidAmountInvalid
	}
	if amount <= a.DisplayPrice() {
		return shared.ErrBidAmountTooLow
	}
	return nil
}

// Countdown returns the time left until the auction ends
func (a *Auction) Countdown(now time.Time) Countdown {
	return NewCountdown(now, a.EndTime)
}
