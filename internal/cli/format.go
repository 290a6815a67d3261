package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"auction-storefront/internal/adapters/scheduler"
	"auction-storefront/internal/domain/auction"
	"auction-storefront/internal/domain/bid"
	"auction-storefront/internal/domain/image"
	"auction-storefront/internal/domain/shared"
	"auction-storefront/internal/ports/outbound"
)

// printer writes command output as text or JSON
type printer struct {
	out  io.Writer
	json bool
}

// print writes v as indented JSON in JSON mode, otherwise calls human
func (p *printer) print(v interface{}, human func(w io.Writer)) error {
	if p.json {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		fmt.Fprintln(p.out, string(data))
		return nil
	}
	human(p.out)
	return nil
}

func formatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func formatAuctions(w io.Writer, auctions []auction.Auction, now time.Time) {
	if len(auctions) == 0 {
		fmt.Fprintln(w, "No auctions found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tBIDS\tSTATUS\tTIME LEFT")
	for i := range auctions {
		a := &auctions[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			a.ID, a.Title, formatPrice(a.DisplayPrice()), a.BidCount, a.Status, a.Countdown(now))
	}
	tw.Flush()
}

func formatAuction(w io.Writer, a *auction.Auction, now time.Time) {
	fmt.Fprintf(w, "Auction:     #%d %s\n", a.ID, a.Title)
	fmt.Fprintf(w, "Status:      %s\n", a.Status)
	fmt.Fprintf(w, "Category:    %s\n", a.Category)
	if a.Condition != "" {
		fmt.Fprintf(w, "Condition:   %s\n", a.Condition)
	}
	if a.Location != "" {
		fmt.Fprintf(w, "Location:    %s\n", a.Location)
	}
	fmt.Fprintf(w, "Price:       %s (starting %s)\n", formatPrice(a.DisplayPrice()), formatPrice(a.StartingPrice))
	fmt.Fprintf(w, "Bids:        %d\n", a.BidCount)
	fmt.Fprintf(w, "Time left:   %s\n", a.Countdown(now))
	if a.Seller.Name != "" {
		fmt.Fprintf(w, "Seller:      %s\n", a.Seller.Name)
	}
	if primary := a.PrimaryImage(); primary != "" {
		fmt.Fprintf(w, "Image:       %s (%d total)\n", primary, len(a.Images))
	}
	if a.Description != "" {
		fmt.Fprintf(w, "\n%s\n", a.Description)
	}
}

func formatBids(w io.Writer, bids []bid.Bid) {
	if len(bids) == 0 {
		fmt.Fprintln(w, "No bids yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AMOUNT\tBIDDER\tTIME\t")
	for _, b := range bids {
		marker := ""
		if b.IsWinning {
			marker = "winning"
		}
		bidder := b.BidderName
		if bidder == "" {
			bidder = fmt.Sprintf("#%d", b.BidderID)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", formatPrice(b.Amount), bidder, b.Timestamp.Local().Format(time.DateTime), marker)
	}
	tw.Flush()
}

func formatBidStats(w io.Writer, stats *bid.Stats) {
	fmt.Fprintf(w, `Total bids:     %d
Unique bidders: %d
Highest bid:    %s
Lowest bid:     %s
Average bid:    %s
`, stats.TotalBids, stats.UniqueBidders, formatPrice(stats.HighestBid), formatPrice(stats.LowestBid), formatPrice(stats.AverageBid))
}

func formatImages(w io.Writer, images []image.Image) {
	if len(images) == 0 {
		fmt.Fprintln(w, "No images.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tORDER\tPRIMARY\tURL")
	for _, img := range images {
		fmt.Fprintf(tw, "%d\t%d\t%t\t%s\n", img.ID, img.DisplayOrder, img.IsPrimary, img.URL)
	}
	tw.Flush()
}

func formatUploadResult(w io.Writer, result image.UploadResult) {
	fmt.Fprintf(w, "Uploaded %d image(s), %d failed.\n", len(result.Successful), len(result.Failed))
	for _, img := range result.Successful {
		fmt.Fprintf(w, "  ok    #%d %s\n", img.ID, img.URL)
	}
	for _, failed := range result.Failed {
		fmt.Fprintf(w, "  fail  %s: %s\n", failed.File, failed.Error)
	}
}

func formatUser(w io.Writer, user *shared.User) {
	if user == nil {
		fmt.Fprintln(w, "Not logged in.")
		return
	}
	fmt.Fprintf(w, "%s <%s> (%s, id %d)\n", user.Name(), user.Email, user.AccountType, user.ID)
}

// formatSection prints one dashboard panel, telling a failed call apart from
// an empty one
func formatSection[T any](w io.Writer, title string, c shared.Collection[T], item func(T) string) {
	fmt.Fprintf(w, "%s\n", title)
	switch c.Status {
	case shared.FetchFailed:
		fmt.Fprintf(w, "  unavailable: %v\n", c.Err)
	case shared.FetchEmpty:
		fmt.Fprintln(w, "  none")
	default:
		for _, v := range c.Items {
			fmt.Fprintf(w, "  %s\n", item(v))
		}
	}
}

func formatEvent(w io.Writer, event outbound.Event) {
	ts := time.Unix(event.Timestamp, 0).Local().Format(time.TimeOnly)
	switch event.Type {
	case outbound.EventTypeBidPlaced:
		fmt.Fprintf(w, "%s  #%d new bid: %v (%v bids)\n", ts, event.AuctionID, priceOf(event.Data[scheduler.DataCurrentPrice]), event.Data[scheduler.DataBidCount])
	case outbound.EventTypeAuctionEnded:
		fmt.Fprintf(w, "%s  #%d ended at %v\n", ts, event.AuctionID, priceOf(event.Data[scheduler.DataCurrentPrice]))
	case outbound.EventTypeError:
		fmt.Fprintf(w, "%s  #%d refresh failed: %v\n", ts, event.AuctionID, event.Data[scheduler.DataError])
	default:
		fmt.Fprintf(w, "%s  #%d updated: %v, %v\n", ts, event.AuctionID, event.Data[scheduler.DataStatus], event.Data[scheduler.DataEndTime])
	}
}

func priceOf(v interface{}) string {
	if amount, ok := v.(float64); ok {
		return formatPrice(amount)
	}
	return fmt.Sprint(v)
}
