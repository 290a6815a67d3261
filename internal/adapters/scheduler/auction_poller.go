package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"auction-storefront/internal/domain/auction"
	"auction-storefront/internal/ports/outbound"

	"github.com/alitto/pond"
	"github.com/rs/zerolog"
)

// Event data keys
const (
	DataTitle        = "title"
	DataStatus       = "status"
	DataCurrentPrice = "current_price"
	DataBidCount     = "bid_count"
	DataEndTime      = "end_time"
	DataError        = "error"
)

// AuctionFetcher loads the current state of an auction
type AuctionFetcher interface {
	GetAuction(ctx context.Context, auctionID int64) (*auction.Auction, error)
}

// snapshot is the last state seen for a watched auction
type snapshot struct {
	auction      *auction.Auction
	endAnnounced bool
}

// AuctionPoller re-fetches watched auctions on a fixed interval and publishes
// what changed between two fetches. The backend pushes nothing, so this is
// the only source of live events.
type AuctionPoller struct {
	fetcher     AuctionFetcher
	broadcaster outbound.Broadcaster
	interval    time.Duration
	workerPool  *pond.WorkerPool
	now         func() time.Time
	logger      zerolog.Logger

	mu      sync.Mutex
	watched map[int64]*snapshot

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type AuctionPollerParams struct {
	Fetcher     AuctionFetcher
	Broadcaster outbound.Broadcaster
	Interval    time.Duration
	// Workers bounds the number of concurrent fetches
	Workers int
	// Clock defaults to time.Now
	Clock  func() time.Time
	Logger zerolog.Logger
}

func NewAuctionPoller(params AuctionPollerParams) *AuctionPoller {
	ctx, cancel := context.WithCancel(context.Background())

	workers := params.Workers
	if workers <= 0 {
		workers = 1
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}

	pool := pond.New(
		workers,
		workers*10,
		pond.Strategy(pond.Balanced()),
	)

	return &AuctionPoller{
		fetcher:     params.Fetcher,
		broadcaster: params.Broadcaster,
		interval:    params.Interval,
		workerPool:  pool,
		now:         clock,
		logger:      params.Logger.With().Str("component", "auction_poller").Logger(),
		watched:     make(map[int64]*snapshot),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Watch adds an auction to the polling set
func (p *AuctionPoller) Watch(auctionID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.watched[auctionID]; !exists {
		p.watched[auctionID] = &snapshot{}
		p.logger.Info().Int64("auction_id", auctionID).Msg("Watching auction")
	}
}

// Unwatch removes an auction from the polling set
func (p *AuctionPoller) Unwatch(auctionID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.watched, auctionID)
}

// Watched lists the watched auction IDs in ascending order
func (p *AuctionPoller) Watched() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	ids := make([]int64, 0, len(p.watched))
	for id := range p.watched {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Start polls once right away and then on every tick
func (p *AuctionPoller) Start() {
	p.logger.Info().Dur("interval", p.interval).Msg("Starting auction poller")

	p.wg.Add(1)
	go p.pollLoop()
}

// Stop cancels in-flight fetches and waits for the loop and workers to finish
func (p *AuctionPoller) Stop() {
	p.logger.Info().Msg("Stopping auction poller")
	p.cancel()
	p.wg.Wait()
	p.workerPool.StopAndWait()
}

func (p *AuctionPoller) pollLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Poll(p.ctx)
	for {
		select {
		case <-ticker.C:
			p.Poll(p.ctx)
		case <-p.ctx.Done():
			p.logger.Info().Msg("Poll loop stopped")
			return
		}
	}
}

// Poll fetches every watched auction once through the worker pool and
// returns when all fetches are done
func (p *AuctionPoller) Poll(ctx context.Context) {
	ids := p.Watched()
	if len(ids) == 0 || ctx.Err() != nil {
		return
	}

	group := p.workerPool.Group()
	for _, id := range ids {
		auctionID := id
		group.Submit(func() {
			p.refresh(ctx, auctionID)
		})
	}
	group.Wait()
}

func (p *AuctionPoller) refresh(ctx context.Context, auctionID int64) {
	current, err := p.fetcher.GetAuction(ctx, auctionID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Warn().Err(err).Int64("auction_id", auctionID).Msg("Failed to refresh auction")
		p.publish(ctx, auctionID, outbound.EventTypeError, map[string]interface{}{DataError: err.Error()})
		return
	}

	p.mu.Lock()
	snap, watched := p.watched[auctionID]
	if !watched {
		p.mu.Unlock()
		return
	}
	previous := snap.auction
	snap.auction = current
	announceEnd := !snap.endAnnounced && current.HasEnded(p.now())
	if announceEnd {
		snap.endAnnounced = true
	}
	p.mu.Unlock()

	for _, eventType := range Changes(previous, current) {
		p.publish(ctx, auctionID, eventType, eventData(current))
	}
	if announceEnd {
		p.logger.Info().Int64("auction_id", auctionID).Float64("final_price", current.DisplayPrice()).Msg("Auction ended")
		p.publish(ctx, auctionID, outbound.EventTypeAuctionEnded, eventData(current))
	}
}

// Changes lists the events implied by going from previous to current. The
// first fetch of an auction has nothing to compare against.
func Changes(previous, current *auction.Auction) []outbound.EventType {
	if previous == nil || current == nil {
		return nil
	}

	var events []outbound.EventType
	if current.DisplayPrice() > previous.DisplayPrice() || current.BidCount > previous.BidCount {
		events = append(events, outbound.EventTypeBidPlaced)
	}
	if current.Title != previous.Title ||
		current.Status != previous.Status ||
		!current.EndTime.Equal(previous.EndTime) {
		events = append(events, outbound.EventTypeAuctionUpdated)
	}
	return events
}

func eventData(a *auction.Auction) map[string]interface{} {
	return map[string]interface{}{
		DataTitle:        a.Title,
		DataStatus:       string(a.Status),
		DataCurrentPrice: a.DisplayPrice(),
		DataBidCount:     a.BidCount,
		DataEndTime:      a.EndTime.Format(time.RFC3339),
	}
}

func (p *AuctionPoller) publish(ctx context.Context, auctionID int64, eventType outbound.EventType, data map[string]interface{}) {
	event := outbound.Event{
		Type:      eventType,
		AuctionID: auctionID,
		Data:      data,
		Timestamp: p.now().Unix(),
	}
	if err := p.broadcaster.Publish(ctx, auctionID, event); err != nil {
		p.logger.Error().Err(err).Int64("auction_id", auctionID).Str("event_type", string(eventType)).Msg("Failed to broadcast event")
	}
}
