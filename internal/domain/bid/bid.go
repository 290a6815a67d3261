package bid

import (
	"sort"
	"time"
)

// Bid represents a bid on an auction. IsWinning is derived on the client and
// never sent back to the backend.
type Bid struct {
	ID         int64     `json:"id"`
	AuctionID  int64     `json:"auctionId"`
	Amount     float64   `json:"amount"`
	BidderID   int64     `json:"bidderId"`
	BidderName string    `json:"bidderName,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	IsWinning  bool      `json:"isWinning"`
}

// Stats summarizes the bidding activity of an auction
type Stats struct {
	AuctionID     int64   `json:"auctionId"`
	TotalBids     int     `json:"totalBids"`
	UniqueBidders int     `json:"uniqueBidders"`
	HighestBid    float64 `json:"highestBid"`
	LowestBid     float64 `json:"lowestBid"`
	AverageBid    float64 `json:"averageBid"`
}

// MarkWinning flags the highest bid of the slice as winning. Ties go to the
// earliest bid.
func MarkWinning(bids []Bid) {
	winner := -1
	for i := range bids {
		bids[i].IsWinning = false
		if winner == -1 ||
			bids[i].Amount > bids[winner].Amount ||
			(bids[i].Amount == bids[winner].Amount && bids[i].Timestamp.Before(bids[winner].Timestamp)) {
			winner = i
		}
	}
	if winner >= 0 {
		bids[winner].IsWinning = true
	}
}

// SortNewestFirst orders bids for the bid history list
func SortNewestFirst(bids []Bid) {
	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].Timestamp.After(bids[j].Timestamp)
	})
}

// Summarize computes stats locally when the backend stats endpoint sent no
// figures
func Summarize(auctionID int64, bids []Bid) Stats {
	stats := Stats{AuctionID: auctionID, TotalBids: len(bids)}
	if len(bids) == 0 {
		return stats
	}

	bidders := make(map[int64]struct{})
	var total float64
	stats.LowestBid = bids[0].Amount
	for _, b := range bids {
		bidders[b.BidderID] = struct{}{}
		total += b.Amount
		if b.Amount > stats.HighestBid {
			stats.HighestBid = b.Amount
		}
		if b.Amount < stats.LowestBid {
			stats.LowestBid = b.Amount
		}
	}
	stats.UniqueBidders = len(bidders)
	stats.AverageBid = total / float64(len(bids))
	return stats
}
