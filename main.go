package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/vuet/vuet-client/pkg/api"
	"github.com/vuet/vuet-client/pkg/auth"
	"github.com/vuet/vuet-client/pkg/config"
	"github.com/vuet/vuet-client/pkg/loader"
	"github.com/vuet/vuet-client/pkg/logging"
	"github.com/vuet/vuet-client/pkg/metrics"
	"github.com/vuet/vuet-client/pkg/models"
	"github.com/vuet/vuet-client/pkg/selectors"
	"github.com/vuet/vuet-client/pkg/store"
	"github.com/vuet/vuet-client/pkg/taskfilter"
)

// Version is set at build time via ldflags
var Version = "dev"

const syncTimeout = 2 * time.Minute

func main() {
	os.Exit(run())
}

// run wires the client together and performs one sync. It returns the
// process exit code so deferred cleanup, including the log flush, runs
// before exiting.
func run() int {
	cfg, err := config.Load("config.yaml", Version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("version", cfg.Version),
		zap.String("base_url", logging.SanitizeURL(cfg.API.BaseURL)),
		zap.Bool("refresh_enabled", cfg.Auth.RefreshToken != ""),
		zap.Int("concurrency", cfg.Loader.Concurrency))

	tokens, err := newTokenSource(cfg, logger)
	if err != nil {
		logger.Error("Failed to set up credentials", zap.Error(err))
		return 1
	}

	recorder, err := metrics.NewPrometheusRecorder(prometheus.NewRegistry())
	if err != nil {
		logger.Error("Failed to set up metrics", zap.Error(err))
		return 1
	}

	client := api.NewClient(cfg.API.BaseURL, tokens, cfg.API.Timeout, logger)
	st := store.New(logger, recorder)
	l := loader.New(client, st, loader.Config{
		Retry:       cfg.Retry.RetryPolicy(),
		Concurrency: cfg.Loader.Concurrency,
	}, recorder, logger)

	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	syncErr := l.RefreshAll(ctx)
	for _, kind := range models.AllKinds() {
		state := l.State(kind)
		logger.Info("Collection synced",
			zap.String("kind", string(kind)),
			zap.String("status", string(state.Status)),
			zap.Int("records", state.Records))
	}
	summarize(st.Snapshot(), tokens, logger)

	if syncErr != nil {
		logger.Error("Sync incomplete", zap.String("error", logging.SanitizeError(syncErr)))
		if errors.Is(syncErr, context.DeadlineExceeded) {
			logger.Error("Sync timed out", zap.Duration("timeout", syncTimeout))
		}
		return 1
	}
	return 0
}

func newTokenSource(cfg *config.Config, logger *zap.Logger) (auth.TokenSource, error) {
	if cfg.Auth.RefreshToken == "" {
		return auth.StaticToken(cfg.Auth.AccessToken), nil
	}
	return auth.NewRefreshingSource(cfg.API.BaseURL, cfg.Auth.AccessToken, cfg.Auth.RefreshToken, cfg.Auth.RefreshSkew, cfg.Retry.RetryPolicy(), logger)
}

// summarize logs the signed-in member's open tasks and unread alerts.
func summarize(snap *store.Snapshot, tokens auth.TokenSource, logger *zap.Logger) {
	src, ok := tokens.(*auth.RefreshingSource)
	if !ok || src.UserID() == 0 {
		return
	}
	userID := src.UserID()

	open := taskfilter.Apply(snap.Tasks.Values(), taskfilter.Filters{
		Users:            []int{userID},
		CompletionStates: []taskfilter.CompletionState{taskfilter.CompletionIncomplete},
	}, taskfilter.FromSnapshot(snap))

	unread := 0
	for _, task := range open {
		unread += len(selectors.UnreadAlertsForTask(snap, task.ID, userID))
	}
	logger.Info("Member summary",
		zap.String("member", selectors.MemberName(snap, userID)),
		zap.Int("open_tasks", len(open)),
		zap.Int("unread_alerts", unread))
}
