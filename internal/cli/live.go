package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"auction-storefront/internal/adapters/ws"
	"auction-storefront/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func (s *state) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <auction-id>...",
		Short: "Follow auctions and print bids and endings as they happen",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs("auction id", args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			b := s.rt.NewBroadcaster()
			defer b.Close()

			clientID := uuid.New().String()
			events := make(chan outbound.Event, 100)
			for _, id := range ids {
				if err := b.Subscribe(ctx, id, clientID, events); err != nil {
					return err
				}
			}

			poller := s.rt.NewPoller(b)
			for _, id := range ids {
				poller.Watch(id)
			}
			poller.Start()
			defer poller.Stop()

			fmt.Fprintf(s.opts.Err, "Watching %d auction(s), press Ctrl+C to stop.\n", len(ids))
			for {
				select {
				case event, ok := <-events:
					if !ok {
						return nil
					}
					if err := s.printer().print(event, func(w io.Writer) { formatEvent(w, event) }); err != nil {
						return err
					}
				case <-ctx.Done():
					return nil
				}
			}
		},
	}
}

func (s *state) feedCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Serve live auction events to dashboards over WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = s.rt.cfg.Live.FeedAddr
			}

			b := s.rt.NewBroadcaster()
			defer b.Close()

			poller := s.rt.NewPoller(b)
			poller.Start()
			defer poller.Stop()

			server := ws.NewServer(ws.ServerParams{
				Addr:        addr,
				Auctions:    s.rt.Auctions,
				Watcher:     poller,
				Broadcaster: b,
				Logger:      s.rt.logger,
			})

			errChan := make(chan error, 1)
			go func() {
				errChan <- server.Start()
			}()

			select {
			case err := <-errChan:
				return err
			case <-cmd.Context().Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Stop(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides FEED_ADDR)")
	return cmd
}
