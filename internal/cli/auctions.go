package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"auction-storefront/internal/domain/shared"
	"auction-storefront/internal/ports/inbound"

	"github.com/spf13/cobra"
)

func (s *state) auctionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "auctions",
		Aliases: []string{"auction"},
		Short:   "Browse and manage auctions",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all auctions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				auctions, err := s.rt.Auctions.ListAuctions(cmd.Context())
				if err != nil {
					return err
				}
				return s.printer().print(auctions, func(w io.Writer) {
					formatAuctions(w, auctions, time.Now())
				})
			},
		},
		&cobra.Command{
			Use:   "get <auction-id>",
			Short: "Show one auction",
			Args:  cobra.ExactArgs(1),
			RunE: idArg("auction id", func(cmd *cobra.Command, id int64) error {
				a, err := s.rt.Auctions.GetAuction(cmd.Context(), id)
				if err != nil {
					return err
				}
				return s.printer().print(a, func(w io.Writer) {
					formatAuction(w, a, time.Now())
				})
			}),
		},
		s.createAuctionCommand(),
		s.updateAuctionCommand(),
		&cobra.Command{
			Use:   "delete <auction-id>",
			Short: "Delete an auction",
			Args:  cobra.ExactArgs(1),
			RunE: idArg("auction id", func(cmd *cobra.Command, id int64) error {
				if err := s.requireLogin(cmd); err != nil {
					return err
				}
				if err := s.rt.Auctions.DeleteAuction(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(s.opts.Out, "Auction #%d deleted.\n", id)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "categories",
			Short: "List auction categories",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				categories, err := s.rt.Auctions.GetCategories(cmd.Context())
				if err != nil {
					return err
				}
				return s.printer().print(categories, func(w io.Writer) {
					fmt.Fprintln(w, strings.Join(categories, "\n"))
				})
			},
		},
		&cobra.Command{
			Use:   "seller <seller-id>",
			Short: "List the auctions of a seller",
			Args:  cobra.ExactArgs(1),
			RunE: idArg("seller id", func(cmd *cobra.Command, id int64) error {
				auctions, err := s.rt.Auctions.GetSellerAuctions(cmd.Context(), id)
				if err != nil {
					return err
				}
				return s.printer().print(auctions, func(w io.Writer) {
					formatAuctions(w, auctions, time.Now())
				})
			}),
		},
	)
	return cmd
}

func (s *state) createAuctionCommand() *cobra.Command {
	var input inbound.AuctionInput
	var images []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an auction, optionally uploading images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.requireLogin(cmd); err != nil {
				return err
			}
			if err := s.requireSeller(cmd); err != nil {
				return err
			}
			if err := input.Validate(); err != nil {
				return err
			}

			created, err := s.rt.Auctions.CreateAuction(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.opts.Err, "Auction #%d created.\n", created.ID)

			if len(images) > 0 && created.ID > 0 {
				result, err := s.uploadFiles(cmd, created.ID, images)
				if err != nil {
					return err
				}
				formatUploadResult(s.opts.Err, result)
			}

			return s.printer().print(created, func(w io.Writer) {
				formatAuction(w, created, time.Now())
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input.Title, "title", "", "Title")
	flags.StringVar(&input.Description, "description", "", "Description")
	flags.StringVar(&input.Category, "category", "", "Category")
	flags.StringVar(&input.Condition, "condition", "", "Item condition")
	flags.StringVar(&input.Location, "location", "", "Item location")
	flags.StringVar(&input.StartingPrice, "starting-price", "", "Starting price")
	flags.StringVar(&input.ReservePrice, "reserve-price", "", "Reserve price")
	flags.StringVar(&input.BuyNowPrice, "buy-now-price", "", "Buy-now price")
	flags.IntVar(&input.DurationDays, "duration", 7, "Duration in days (1-30)")
	flags.StringVar(&input.ShippingInfo, "shipping", "", "Shipping information")
	flags.StringSliceVar(&input.Tags, "tag", nil, "Tag (repeatable)")
	flags.StringSliceVar(&images, "image", nil, "Image file to upload after creation (repeatable)")
	return cmd
}

func (s *state) updateAuctionCommand() *cobra.Command {
	var input inbound.AuctionInput

	cmd := &cobra.Command{
		Use:   "update <auction-id>",
		Short: "Change the fields of an auction",
		Long: `Change the fields of an auction. Only the flags that are given are sent;
--duration moves the end time to that many days from now.`,
		Args: cobra.ExactArgs(1),
		RunE: idArg("auction id", func(cmd *cobra.Command, id int64) error {
			if err := s.requireLogin(cmd); err != nil {
				return err
			}
			if cmd.Flags().Changed("duration") &&
				(input.DurationDays < inbound.MinDurationDays || input.DurationDays > inbound.MaxDurationDays) {
				return shared.ErrInvalidDuration
			}

			updated, err := s.rt.Auctions.UpdateAuction(cmd.Context(), id, input)
			if err != nil {
				return err
			}
			return s.printer().print(updated, func(w io.Writer) {
				fmt.Fprintf(w, "Auction #%d updated.\n", updated.ID)
			})
		}),
	}

	flags := cmd.Flags()
	flags.StringVar(&input.Title, "title", "", "Title")
	flags.StringVar(&input.Description, "description", "", "Description")
	flags.StringVar(&input.Category, "category", "", "Category")
	flags.StringVar(&input.Condition, "condition", "", "Item condition")
	flags.StringVar(&input.Location, "location", "", "Item location")
	flags.StringVar(&input.StartingPrice, "starting-price", "", "Starting price")
	flags.StringVar(&input.ReservePrice, "reserve-price", "", "Reserve price")
	flags.StringVar(&input.BuyNowPrice, "buy-now-price", "", "Buy-now price")
	flags.IntVar(&input.DurationDays, "duration", 0, "New duration in days from now (1-30)")
	flags.StringVar(&input.ShippingInfo, "shipping", "", "Shipping information")
	flags.StringSliceVar(&input.Tags, "tag", nil, "Tag (repeatable)")
	return cmd
}

func (s *state) watchlistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage the watchlist",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <auction-id>",
			Short: "Watch an auction",
			Args:  cobra.ExactArgs(1),
			RunE: idArg("auction id", func(cmd *cobra.Command, id int64) error {
				if err := s.requireLogin(cmd); err != nil {
					return err
				}
				if err := s.rt.Auctions.AddToWatchlist(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(s.opts.Out, "Auction #%d added to the watchlist.\n", id)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "remove <auction-id>",
			Short: "Stop watching an auction",
			Args:  cobra.ExactArgs(1),
			RunE: idArg("auction id", func(cmd *cobra.Command, id int64) error {
				if err := s.requireLogin(cmd); err != nil {
					return err
				}
				if err := s.rt.Auctions.RemoveFromWatchlist(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(s.opts.Out, "Auction #%d removed from the watchlist.\n", id)
				return nil
			}),
		},
	)
	return cmd
}

// requireSeller rejects buyer accounts before a listing is sent. A session
// without a stored profile is left for the backend to judge.
func (s *state) requireSeller(cmd *cobra.Command) error {
	user, err := s.rt.Auth.CurrentUser(cmd.Context())
	if err != nil {
		return err
	}
	if user != nil && !user.IsSeller() {
		return fmt.Errorf("%w: %s is a %s account", shared.ErrSellerAccountRequired, user.Email, user.AccountType)
	}
	return nil
}

// requireLogin fails early for commands the backend would reject anonymously
func (s *state) requireLogin(cmd *cobra.Command) error {
	if !s.rt.Auth.IsAuthenticated(cmd.Context()) {
		return fmt.Errorf("%w: run storefront login first", shared.ErrNotAuthenticated)
	}
	return nil
}
