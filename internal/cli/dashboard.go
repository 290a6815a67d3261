package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"auction-storefront/internal/domain/auction"
	"auction-storefront/internal/domain/bid"
	"auction-storefront/internal/domain/shared"

	"github.com/spf13/cobra"
)

type dashboardView struct {
	User          *shared.User                           `json:"user"`
	Bids          shared.Collection[bid.Bid]             `json:"-"`
	Watchlist     shared.Collection[auction.Auction]     `json:"-"`
	Notifications shared.Collection[shared.Notification] `json:"-"`
}

// MarshalJSON reports each panel with its fetch status
func (d dashboardView) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"user":          d.User,
		"bids":          panel(d.Bids),
		"watchlist":     panel(d.Watchlist),
		"notifications": panel(d.Notifications),
	})
}

func panel[T any](c shared.Collection[T]) map[string]interface{} {
	p := map[string]interface{}{
		"status": c.Status,
		"items":  c.Items,
	}
	if c.Err != nil {
		p["error"] = c.Err.Error()
	}
	return p
}

func (s *state) dashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your bids, watchlist and notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.requireLogin(cmd); err != nil {
				return err
			}

			ctx := cmd.Context()
			user, err := s.rt.Auth.CurrentUser(ctx)
			if err != nil {
				return err
			}

			view := dashboardView{
				User:          user,
				Bids:          s.rt.Dashboard.GetUserBids(ctx),
				Watchlist:     s.rt.Dashboard.GetUserWatchlist(ctx),
				Notifications: s.rt.Dashboard.GetUserNotifications(ctx),
			}

			return s.printer().print(view, func(w io.Writer) {
				formatUser(w, user)
				fmt.Fprintln(w)
				formatSection(w, "My bids", view.Bids, func(b bid.Bid) string {
					return fmt.Sprintf("%s on auction #%d", formatPrice(b.Amount), b.AuctionID)
				})
				formatSection(w, "Watchlist", view.Watchlist, func(a auction.Auction) string {
					return fmt.Sprintf("#%d %s at %s", a.ID, a.Title, formatPrice(a.DisplayPrice()))
				})
				formatSection(w, "Notifications", view.Notifications, func(n shared.Notification) string {
					if n.IsRead {
						return n.Message
					}
					return "* " + n.Message
				})
			})
		},
	}
}
