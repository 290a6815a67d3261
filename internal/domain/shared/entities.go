package shared

import (
	"strings"
	"time"
)

// User is the reduced profile kept alongside the bearer token
type User struct {
	ID          int64  `json:"userId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	AccountType string `json:"accountType"`
}

// Name returns the display name of the user
func (u *User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsSeller reports whether the account may create auctions
func (u *User) IsSeller() bool {
	return strings.EqualFold(u.AccountType, "seller")
}

// Session is an authenticated session as returned by login or register
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Notification is a dashboard notification for the current user
type Notification struct {
	ID        int64     `json:"id"`
	AuctionID int64     `json:"auctionId,omitempty"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
