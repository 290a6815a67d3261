package bid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkWinning(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("highest_wins", func(t *testing.T) {
		bids := []Bid{
			{ID: 1, Amount: 10, Timestamp: base},
			{ID: 2, Amount: 30, Timestamp: base.Add(time.Minute)},
			{ID: 3, Amount: 20, Timestamp: base.Add(2 * time.Minute), IsWinning: true},
		}
		MarkWinning(bids)
		assert.False(t, bids[0].IsWinning)
		assert.True(t, bids[1].IsWinning)
		assert.False(t, bids[2].IsWinning)
	})

	t.Run("tie_goes_to_earliest", func(t *testing.T) {
		bids := []Bid{
			{ID: 1, Amount: 50, Timestamp: base.Add(time.Minute)},
			{ID: 2, Amount: 50, Timestamp: base},
		}
		MarkWinning(bids)
		assert.False(t, bids[0].IsWinning)
		assert.True(t, bids[1].IsWinning)
	})

	t.Run("empty", func(t *testing.T) {
		assert.NotPanics(t, func() { MarkWinning(nil) })
	})
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	bids := []Bid{
		{ID: 1, Timestamp: base},
		{ID: 2, Timestamp: base.Add(2 * time.Minute)},
		{ID: 3, Timestamp: base.Add(time.Minute)},
	}

	SortNewestFirst(bids)
	require.Len(t, bids, 3)
	assert.Equal(t, []int64{2, 3, 1}, []int64{bids[0].ID, bids[1].ID, bids[2].ID})
}

func TestSummarize(t *testing.T) {
	stats := Summarize(7, []Bid{
		{BidderID: 1, Amount: 10},
		{BidderID: 2, Amount: 30},
		{BidderID: 1, Amount: 20},
	})

	assert.Equal(t, Stats{
		AuctionID:     7,
		TotalBids:     3,
		UniqueBidders: 2,
		HighestBid:    30,
		LowestBid:     10,
		AverageBid:    20,
	}, stats)

	assert.Equal(t, Stats{AuctionID: 7}, Summarize(7, nil))
}
