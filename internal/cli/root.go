package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"auction-storefront/internal/config"
	"auction-storefront/internal/ports/outbound"

	"github.com/spf13/cobra"
)

// Options configures the command tree
type Options struct {
	Out io.Writer
	Err io.Writer
	// Config skips loading configuration from the environment
	Config *config.Config
	// Store overrides the configured session store
	Store outbound.KeyValueStore
}

type state struct {
	opts       Options
	apiURL     string
	imageURL   string
	jsonOutput bool
	rt         *Runtime
}

// Execute runs the storefront CLI and returns the process exit code
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := NewRootCommand(Options{Out: os.Stdout, Err: os.Stderr})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCommand builds the command tree
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	s := &state{opts: opts}

	root := &cobra.Command{
		Use:   "storefront",
		Short: "Command-line storefront for the auction marketplace",
		Long: `storefront browses auctions, places bids and manages listings against the
auction backend API.

Environment Variables:
  API_BASE_URL    Backend API URL (default: http://localhost:5000/api)
  IMAGE_BASE_URL  Image host URL (default: http://localhost:5000)
  SESSION_STORE   Where the login is kept: file, memory or redis (default: file)`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  s.setup,
		PersistentPostRunE: s.teardown,
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.PersistentFlags().StringVar(&s.apiURL, "api-url", "", "Backend API URL (overrides API_BASE_URL)")
	root.PersistentFlags().StringVar(&s.imageURL, "image-url", "", "Image host URL (overrides IMAGE_BASE_URL)")
	root.PersistentFlags().BoolVar(&s.jsonOutput, "json", false, "Output JSON instead of human-readable text")

	root.AddCommand(
		s.loginCommand(),
		s.registerCommand(),
		s.logoutCommand(),
		s.whoamiCommand(),
		s.auctionsCommand(),
		s.bidCommand(),
		s.watchlistCommand(),
		s.dashboardCommand(),
		s.imagesCommand(),
		s.watchCommand(),
		s.feedCommand(),
	)
	return root
}

func (s *state) setup(cmd *cobra.Command, _ []string) error {
	cfg := s.opts.Config
	if cfg == nil {
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		copied := *cfg
		cfg = &copied
	}

	if s.apiURL != "" {
		cfg.API.BaseURL = s.apiURL
	}
	if s.imageURL != "" {
		cfg.API.ImageBaseURL = s.imageURL
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := initLogging(cfg, s.opts.Err)

	rt, err := NewRuntime(cmd.Context(), RuntimeParams{Config: cfg, Logger: logger, Store: s.opts.Store})
	if err != nil {
		return err
	}
	s.rt = rt
	return nil
}

func (s *state) teardown(*cobra.Command, []string) error {
	if s.rt == nil {
		return nil
	}
	return s.rt.Close()
}

func (s *state) printer() *printer {
	return &printer{out: s.opts.Out, json: s.jsonOutput}
}
