package cli

import (
	"fmt"
	"io"

	"auction-storefront/internal/ports/inbound"

	"github.com/spf13/cobra"
)

func (s *state) loginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := s.rt.Auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return s.printer().print(session.User, func(w io.Writer) {
				fmt.Fprintf(w, "Logged in as %s.\n", session.User.Name())
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func (s *state) registerCommand() *cobra.Command {
	var input inbound.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := s.rt.Auth.Register(cmd.Context(), input)
			if err != nil {
				return err
			}
			return s.printer().print(session.User, func(w io.Writer) {
				fmt.Fprintf(w, "Registered and logged in as %s.\n", session.User.Name())
			})
		},
	}
	cmd.Flags().StringVar(&input.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&input.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&input.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&input.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&input.AccountType, "account-type", "Buyer", "Buyer or Seller")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func (s *state) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.rt.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(s.opts.Out, "Logged out.")
			return nil
		},
	}
}

func (s *state) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := s.rt.Auth.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			return s.printer().print(user, func(w io.Writer) {
				formatUser(w, user)
			})
		},
	}
}
