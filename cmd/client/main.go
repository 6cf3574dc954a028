package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-video-fetcher/internal/adapter"
	"github.com/MKhiriev/go-video-fetcher/internal/client"
	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, cfgErr := config.GetClientConfig()
	if cfg == nil {
		cfg = &config.ClientConfig{}
	}

	var app *client.App

	root := &cobra.Command{
		Use:          "vfetch",
		Short:        "Download TikTok and Instagram videos through a video fetcher server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logger.NewClientLogger("vfetch", logger.DefaultClientLogPath())

			server, err := adapter.NewHTTPServerAdapter(*cfg, log)
			if err != nil {
				return err
			}

			buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
			app = client.NewApp(server, *cfg, buildInfo, os.Stdout, log)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfg.ServerURL, "server", "s", cfg.ServerURL, "server base URL")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout of a single request")
	flags.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "status polling interval")
	flags.StringVarP(&cfg.OutputDir, "output", "o", cfg.OutputDir, "directory for downloaded files")

	root.AddCommand(
		&cobra.Command{
			Use:   "get [url]",
			Short: "Download a video; the URL is read from the clipboard when omitted",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var url string
				if len(args) == 1 {
					url = args[0]
				}
				_, err := app.Get(cmd.Context(), url)
				return err
			},
		},
		&cobra.Command{
			Use:   "status <task-id>",
			Short: "Show the state of a task",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Status(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "fetch <task-id>",
			Short: "Save the file of a finished task",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := app.Fetch(cmd.Context(), args[0])
				return err
			},
		},
		&cobra.Command{
			Use:   "health",
			Short: "Show the server dependency report",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Health(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print client and server versions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Version(cmd.Context())
			},
		},
	)

	return root
}
