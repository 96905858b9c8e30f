package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vilaca/github-2fa-auditor/internal/config"
)

// rootOptions holds command-line overrides. A flag only applies when it was
// set explicitly; otherwise the environment or policy file value stands.
type rootOptions struct {
	org         string
	githubURL   string
	webhookURL  string
	policyFile  string
	exclude     []string
	maxRemove   int
	safeMode    bool
	dryRun      bool
	httpTimeout time.Duration
	noSummary   bool
}

func newRootCmd() *cobra.Command {
	return newRootCmdFor(&rootOptions{})
}

func newRootCmdFor(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "github-2fa-auditor",
		Short: "Remove GitHub organization members without two-factor authentication",
		Long: `github-2fa-auditor lists the members of a GitHub organization that have
two-factor authentication disabled, reports each one to a Slack webhook and,
unless dry-run is on, removes them. In safe mode nobody is removed when more
members than the configured threshold are found.

Configuration comes from a YAML policy file, then environment variables,
then flags. The GitHub token is only read from GITHUB_TOKEN.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), !opts.noSummary)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.org, "org", "", "GitHub organization to audit (env GITHUB_ORGANIZATION)")
	f.StringVar(&opts.githubURL, "github-url", config.DefaultGitHubURL, "GitHub API base URL (env GITHUB_URL)")
	f.StringVar(&opts.webhookURL, "webhook-url", "", "Slack incoming webhook URL (env SLACK_WEBHOOK_URL)")
	f.StringVar(&opts.policyFile, "policy-file", "", "YAML policy file (env "+config.PolicyFileEnv+")")
	f.StringArrayVar(&opts.exclude, "exclude", nil, "Login exempt from enforcement, repeatable (env AUDITOR_EXCLUDED_ACCOUNTS)")
	f.IntVar(&opts.maxRemove, "max-remove", config.DefaultMaxUsersToRemove, "Safety threshold of members to remove in one run (env AUDITOR_MAX_USERS_TO_REMOVE)")
	f.BoolVar(&opts.safeMode, "safe-mode", true, "Skip all removals when more than --max-remove members are found (env AUDITOR_SAFE_MODE)")
	f.BoolVar(&opts.dryRun, "dry-run", true, "Report only, never remove (env AUDITOR_DRY_RUN)")
	f.DurationVar(&opts.httpTimeout, "http-timeout", config.DefaultHTTPTimeout, "Timeout for each HTTP request (env AUDITOR_HTTP_TIMEOUT)")
	f.BoolVar(&opts.noSummary, "no-summary", false, "Do not print the result table")

	return cmd
}

// loadConfig loads configuration and applies explicitly set flags on top.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.policyFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("org") {
		cfg.Organization = o.org
	}
	if flags.Changed("github-url") {
		cfg.GitHubURL = o.githubURL
	}
	if flags.Changed("webhook-url") {
		cfg.WebhookURL = o.webhookURL
	}
	if flags.Changed("exclude") {
		cfg.ExcludedAccounts = o.exclude
	}
	if flags.Changed("max-remove") {
		cfg.MaxUsersToRemove = o.maxRemove
	}
	if flags.Changed("safe-mode") {
		cfg.SafeMode = o.safeMode
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = o.dryRun
	}
	if flags.Changed("http-timeout") {
		cfg.HTTPTimeout = o.httpTimeout
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
