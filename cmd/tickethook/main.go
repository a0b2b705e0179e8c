package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wahlandcase/tickethook/internal/chat"
	"github.com/wahlandcase/tickethook/internal/comment"
	"github.com/wahlandcase/tickethook/internal/config"
	"github.com/wahlandcase/tickethook/internal/git"
	"github.com/wahlandcase/tickethook/internal/hook"
	"github.com/wahlandcase/tickethook/internal/httpclient"
	"github.com/wahlandcase/tickethook/internal/tracker"
	"github.com/wahlandcase/tickethook/internal/ui"
)

var (
	configPath string
	repoPath   string
	backend    string
	dryRun     bool
	noColor    bool
	verbose    bool
)

func main() {
	rootCmd := newRootCmd()

	// A failing hook must never make the push look failed: report and exit 0.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tickethook:", err)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tickethook",
		Short: "post-receive hook that comments pushed commits on the tickets they mention",
		Long: "Reads \"<old> <new> <ref>\" lines on stdin, walks the commits pushed to the tracked\n" +
			"branch oldest first, and posts a comment to every ticket id found in each message.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file (defaults are built in)")
	rootCmd.Flags().StringVar(&repoPath, "repo", "", "Repository to read commits from (default: current directory / GIT_DIR)")
	rootCmd.Flags().StringVar(&backend, "backend", "", "Override git.backend: \"git\" or \"go-git\"")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build comments but do not post anything")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored summary output")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	kind := cfg.Git.Backend
	if backend != "" {
		kind = backend
	}

	vcs, err := git.NewBackend(kind, repoPath)
	if err != nil {
		return err
	}

	events, err := hook.ReadPushEvents(cmd.InOrStdin(), logger)
	if err != nil {
		logger.WithError(err).Warn("Processing the ref updates read so far")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	builder := comment.NewBuilder(vcs, cfg.TicketRegex(),
		comment.WithSourceURL(cfg.Source.BaseURL),
		comment.WithDedupe(cfg.Tickets.Dedupe),
	)

	processor := hook.NewProcessor(vcs, builder, cfg.Branch.Tracked, logger, notifiers(cfg, logger)...)
	report := processor.Process(ctx, events)

	printer := ui.NewPrinter(cmd.OutOrStdout(), noColor)
	return printer.Print(report, cfg.Branch.Tracked, dryRun)
}

// notifiers returns the configured destinations, tracker first
func notifiers(cfg *config.Config, logger *logrus.Logger) []hook.Notifier {
	var list []hook.Notifier

	if cfg.TrackerEnabled() {
		if dryRun {
			list = append(list, hook.NewDryRunNotifier(tracker.Name))
		} else {
			list = append(list, tracker.NewClient(
				cfg.Tracker.BaseURL,
				cfg.Tracker.CommentPath,
				cfg.Tracker.Login,
				cfg.Tracker.Password,
				logger,
				tracker.WithVisibilityRole(cfg.Tracker.VisibilityRole),
				tracker.WithHTTPClient(httpclient.NewDefaultClient(httpclient.WithTimeout(cfg.TrackerTimeout()))),
				tracker.WithBreakerThreshold(cfg.Tracker.BreakerThreshold),
			))
		}
	}

	if cfg.ChatEnabled() {
		if dryRun {
			list = append(list, hook.NewDryRunNotifier(chat.Name))
		} else {
			list = append(list, chat.NewClient(
				cfg.Chat.WebhookURL,
				cfg.Tracker.BrowseURL,
				logger,
				chat.WithIdentity(cfg.Chat.Channel, cfg.Chat.Username, cfg.Chat.IconEmoji),
				chat.WithHTTPClient(httpclient.NewDefaultClient(httpclient.WithTimeout(cfg.TrackerTimeout()))),
				chat.WithBreakerThreshold(cfg.Tracker.BreakerThreshold),
			))
		}
	}

	return list
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
