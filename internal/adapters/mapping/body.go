package mapping

import (
	"fmt"
	"strings"
	"time"

	"auction-storefront/internal/domain/shared"
	"auction-storefront/internal/ports/inbound"

	"github.com/tidwall/sjson"
)

// CreateAuctionBody translates the create-auction form into the backend's
// PascalCase schema. The end time is now plus the duration in days (1 to 30), prices
// are coerced to numbers, and empty optional fields are left out because the
// backend rejects empty strings and nulls there.
func CreateAuctionBody(in inbound.AuctionInput, now time.Time) ([]byte, error) {
	starting, ok := inbound.ParsePrice(in.StartingPrice)
	if !ok || starting <= 0 {
		return nil, shared.ErrInvalidStartingPrice
	}

	if in.DurationDays < inbound.MinDurationDays || in.DurationDays > inbound.MaxDurationDays {
		return nil, shared.ErrInvalidDuration
	}

	start := now.UTC()
	if in.StartTime != nil && !in.StartTime.IsZero() {
		start = in.StartTime.UTC()
	}

	b := newBodyBuilder(in)
	b.set("startingPrice", starting)
	b.set("startTime", start.Format(time.RFC3339))
	b.set("duration", in.DurationDays)
	b.set("endTime", start.AddDate(0, 0, in.DurationDays).Format(time.RFC3339))
	return b.build()
}

// UpdateAuctionBody translates an edit of an existing auction. Only the
// fields that were filled in are sent; the start time is kept unless given.
func UpdateAuctionBody(in inbound.AuctionInput, now time.Time) ([]byte, error) {
	b := newBodyBuilder(in)

	if in.StartingPrice != "" {
		starting, ok := inbound.ParsePrice(in.StartingPrice)
		if !ok || starting <= 0 {
			return nil, shared.ErrInvalidStartingPrice
		}
		b.set("startingPrice", starting)
	}

	start := now.UTC()
	if in.StartTime != nil && !in.StartTime.IsZero() {
		start = in.StartTime.UTC()
		b.set("startTime", start.Format(time.RFC3339))
	}
	if in.DurationDays > 0 {
		b.set("duration", in.DurationDays)
		b.set("endTime", start.AddDate(0, 0, in.DurationDays).Format(time.RFC3339))
	}
	return b.build()
}

type bodyBuilder struct {
	table *Table
	body  []byte
	err   error
}

// newBodyBuilder writes the text fields shared by create and update
func newBodyBuilder(in inbound.AuctionInput) *bodyBuilder {
	b := &bodyBuilder{table: AuctionFields, body: []byte(`{}`)}
	b.setString("title", in.Title)
	b.setString("description", in.Description)
	b.setString("category", in.Category)
	b.setString("condition", in.Condition)
	b.setString("location", in.Location)
	b.setString("shippingInfo", in.ShippingInfo)
	b.setPrice("reservePrice", in.ReservePrice)
	b.setPrice("buyNowPrice", in.BuyNowPrice)
	if tags := nonEmpty(in.Tags); len(tags) > 0 {
		b.set("tags", tags)
	}
	return b
}

func (b *bodyBuilder) build() ([]byte, error) {
	if b.err != nil {
		return nil, fmt.Errorf("failed to build auction body: %w", b.err)
	}
	return b.body, nil
}

func (b *bodyBuilder) set(canonical string, value interface{}) {
	if b.err != nil {
		return
	}
	b.body, b.err = sjson.SetBytes(b.body, b.table.BackendKey(canonical), value)
}

func (b *bodyBuilder) setString(canonical, value string) {
	if value = strings.TrimSpace(value); value != "" {
		b.set(canonical, value)
	}
}

// setPrice writes an optional price, dropping blanks and values that do not parse
func (b *bodyBuilder) setPrice(canonical, value string) {
	if price, ok := inbound.ParsePrice(value); ok && price > 0 {
		b.set(canonical, price)
	}
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
