package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/vilaca/github-2fa-auditor/internal/api"
	"github.com/vilaca/github-2fa-auditor/internal/api/github"
	"github.com/vilaca/github-2fa-auditor/internal/config"
	"github.com/vilaca/github-2fa-auditor/internal/notify"
	"github.com/vilaca/github-2fa-auditor/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run performs one audit pass with cfg and prints a summary to out.
// Only a fetch failure is returned; everything after it is best-effort.
func run(ctx context.Context, cfg config.Config, out io.Writer, summary bool) error {
	runID := uuid.NewString()
	logger := service.NewStdLogger(fmt.Sprintf("[2fa-auditor %s] ", runID[:8]))

	auditor := buildAuditService(ctx, cfg, runID, logger)

	policy := cfg.Policy()
	logger.Printf("Starting audit of %s (dry_run=%t safe_mode=%t threshold=%d excluded=%d)",
		policy.Organization, policy.DryRun, policy.SafeMode, policy.MaxUsersToRemove, len(policy.ExcludedAccounts))

	outcome, err := auditor.Run(ctx)
	if err != nil {
		logger.Printf("Audit aborted: %v", err)
		return err
	}

	if summary {
		printSummary(out, policy.Organization, outcome)
	}
	return nil
}

// buildAuditService wires up all dependencies and returns the audit service.
// This is the composition root where all dependencies are created and injected.
func buildAuditService(ctx context.Context, cfg config.Config, runID string, logger service.Logger) *service.AuditService {
	// GitHub requests authenticate through oauth2; the webhook client stays
	// credential-free.
	webhookHTTP := &http.Client{Timeout: cfg.HTTPTimeout}

	baseHTTP := &http.Client{Timeout: cfg.HTTPTimeout}
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHubToken})
	githubHTTP := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, baseHTTP), tokenSource)
	githubHTTP.Timeout = cfg.HTTPTimeout

	githubClient := github.NewClient(api.ClientConfig{
		BaseURL: cfg.GitHubURL,
	}, githubHTTP)

	notifier := notify.NewSlackNotifier(notify.Config{
		WebhookURL: cfg.WebhookURL,
		Footer:     "github-2fa-auditor run " + runID,
	}, webhookHTTP)

	return service.NewAuditService(service.AuditServiceConfig{
		Client:   githubClient,
		Notifier: notifier,
		Logger:   logger,
		Policy:   cfg.Policy(),
	})
}
