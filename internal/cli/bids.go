package cli

import (
	"fmt"
	"io"
	"time"

	"auction-storefront/internal/domain/shared"
	"auction-storefront/internal/ports/inbound"

	"github.com/spf13/cobra"
)

func (s *state) bidCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bid",
		Aliases: []string{"bids"},
		Short:   "Place bids and inspect bidding",
	}

	cmd.AddCommand(
		s.placeBidCommand(),
		&cobra.Command{
			Use:   "history <auction-id>",
			Short: "Show the bid history, newest first",
			Args:  cobra.ExactArgs(1),
			RunE: idArg("auction id", func(cmd *cobra.Command, id int64) error {
				bids, err := s.rt.Bids.GetAuctionBids(cmd.Context(), id)
				if err != nil {
					return err
				}
				return s.printer().print(bids, func(w io.Writer) {
					formatBids(w, bids)
				})
			}),
		},
		&cobra.Command{
			Use:   "stats <auction-id>",
			Short: "Show bidding statistics",
			Args:  cobra.ExactArgs(1),
			RunE: idArg("auction id", func(cmd *cobra.Command, id int64) error {
				stats, err := s.rt.Bids.GetBidStats(cmd.Context(), id)
				if err != nil {
					return err
				}
				return s.printer().print(stats, func(w io.Writer) {
					formatBidStats(w, stats)
				})
			}),
		},
		&cobra.Command{
			Use:   "highest <auction-id>",
			Short: "Show the highest bid",
			Args:  cobra.ExactArgs(1),
			RunE: idArg("auction id", func(cmd *cobra.Command, id int64) error {
				highest, err := s.rt.Bids.GetHighestBid(cmd.Context(), id)
				if err != nil {
					return err
				}
				return s.printer().print(highest, func(w io.Writer) {
					if highest == nil {
						fmt.Fprintln(w, "No bids yet.")
						return
					}
					fmt.Fprintf(w, "%s by %s\n", formatPrice(highest.Amount), highest.BidderName)
				})
			}),
		},
	)
	return cmd
}

func (s *state) placeBidCommand() *cobra.Command {
	var skipCheck bool

	cmd := &cobra.Command{
		Use:   "place <auction-id> <amount>",
		Short: "Place a bid",
		Long: `Place a bid. The amount must be above the current price; the check runs
against a fresh copy of the auction unless --skip-check is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("auction id", args[0])
			if err != nil {
				return err
			}
			amount, ok := inbound.ParsePrice(args[1])
			if !ok {
				return fmt.Errorf("invalid amount %q", args[1])
			}
			if err := s.requireLogin(cmd); err != nil {
				return err
			}

			if !skipCheck {
				a, err := s.rt.Auctions.GetAuction(cmd.Context(), id)
				if err != nil {
					return err
				}
				if a.HasEnded(time.Now()) {
					return fmt.Errorf("%w: auction #%d has ended", shared.ErrAuctionNotActive, id)
				}
				if err := a.ValidateBid(amount); err != nil {
					return fmt.Errorf("%w (current price %s)", err, formatPrice(a.DisplayPrice()))
				}
			}

			raw, err := s.rt.Bids.PlaceBid(cmd.Context(), id, amount)
			if err != nil {
				return err
			}
			if s.jsonOutput {
				fmt.Fprintln(s.opts.Out, string(raw))
				return nil
			}
			fmt.Fprintf(s.opts.Out, "Bid of %s placed on auction #%d.\n", formatPrice(amount), id)
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipCheck, "skip-check", false, "Send the bid without checking the current price")
	return cmd
}
