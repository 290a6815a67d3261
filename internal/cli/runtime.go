package cli

import (
	"context"

	"auction-storefront/internal/adapters/broadcaster"
	"auction-storefront/internal/adapters/httpapi"
	redisadapter "auction-storefront/internal/adapters/redis"
	"auction-storefront/internal/adapters/scheduler"
	"auction-storefront/internal/adapters/session"
	"auction-storefront/internal/app"
	"auction-storefront/internal/config"
	"auction-storefront/internal/ports/inbound"
	"auction-storefront/internal/ports/outbound"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Runtime holds the wired services a command runs against
type Runtime struct {
	cfg    *config.Config
	logger zerolog.Logger
	redis  *redis.Client

	Tokens    *app.TokenStore
	Auth      inbound.AuthService
	Auctions  inbound.AuctionService
	Bids      inbound.BidService
	Dashboard inbound.DashboardService
	Images    inbound.ImageService
}

type RuntimeParams struct {
	Config *config.Config
	Logger zerolog.Logger
	// Store overrides the configured session store
	Store outbound.KeyValueStore
}

// NewRuntime wires storage, backend clients and services from configuration
func NewRuntime(ctx context.Context, params RuntimeParams) (*Runtime, error) {
	cfg := params.Config
	rt := &Runtime{cfg: cfg, logger: params.Logger}

	if cfg.NeedsRedis() {
		client, err := redisadapter.Connect(ctx, cfg.Redis, rt.logger)
		if err != nil {
			return nil, err
		}
		rt.redis = client
	}

	store := params.Store
	if store == nil {
		store = rt.sessionStore()
	}
	rt.Tokens = app.NewTokenStore(app.TokenStoreParams{Store: store, Logger: rt.logger})

	api := httpapi.NewClient(httpapi.ClientParams{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Tokens:  rt.Tokens,
		Logger:  rt.logger,
	})
	imageAPI := httpapi.NewClient(httpapi.ClientParams{
		BaseURL: cfg.API.ImageBaseURL,
		Timeout: cfg.API.Timeout,
		Tokens:  rt.Tokens,
		Logger:  rt.logger,
	})

	rt.Auth = app.NewAuthService(app.AuthServiceParams{API: api, Tokens: rt.Tokens, Logger: rt.logger})
	rt.Auctions = app.NewAuctionService(app.AuctionServiceParams{API: api, Logger: rt.logger})
	rt.Bids = app.NewBidService(app.BidServiceParams{API: api, Logger: rt.logger})
	rt.Dashboard = app.NewDashboardService(app.DashboardServiceParams{API: api, Logger: rt.logger})
	rt.Images = app.NewImageService(app.ImageServiceParams{API: imageAPI, Logger: rt.logger})

	return rt, nil
}

func (rt *Runtime) sessionStore() outbound.KeyValueStore {
	switch rt.cfg.Session.Store {
	case config.StoreRedis:
		return session.NewRedisStore(session.RedisStoreParams{
			RedisClient: rt.redis,
			KeyPrefix:   rt.cfg.Session.KeyPrefix,
			TTL:         rt.cfg.Session.TTL,
			Logger:      rt.logger,
		})
	case config.StoreMemory:
		return session.NewMemoryStore()
	default:
		return session.NewFileStore(session.FileStoreParams{
			Path:   rt.cfg.Session.File,
			Logger: rt.logger,
		})
	}
}

// NewBroadcaster creates the configured event broadcaster
func (rt *Runtime) NewBroadcaster() outbound.Broadcaster {
	if rt.cfg.Live.Broadcaster == config.BroadcasterRedis {
		return broadcaster.NewRedisBroadcaster(broadcaster.RedisBroadcasterParams{
			RedisClient: rt.redis,
			Logger:      rt.logger,
		})
	}
	return broadcaster.NewLocalBroadcaster(broadcaster.LocalBroadcasterParams{Logger: rt.logger})
}

// NewPoller creates a poller over the auction service
func (rt *Runtime) NewPoller(b outbound.Broadcaster) *scheduler.AuctionPoller {
	return scheduler.NewAuctionPoller(scheduler.AuctionPollerParams{
		Fetcher:     rt.Auctions,
		Broadcaster: b,
		Interval:    rt.cfg.Live.PollInterval,
		Workers:     rt.cfg.Live.PollWorkers,
		Logger:      rt.logger,
	})
}

// Close releases the Redis connection
func (rt *Runtime) Close() error {
	if rt.redis != nil {
		return rt.redis.Close()
	}
	return nil
}
