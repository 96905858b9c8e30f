package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vilaca/github-2fa-auditor/internal/domain"
)

// Defaults
const (
	DefaultGitHubURL        = "https://api.github.com"
	DefaultMaxUsersToRemove = 3
	DefaultHTTPTimeout      = 30 * time.Second

	// PolicyFileEnv names the environment variable holding the policy file path.
	PolicyFileEnv = "AUDITOR_POLICY_FILE"
)

var (
	ErrMissingOrganization = errors.New("missing GitHub organization (set GITHUB_ORGANIZATION)")
	ErrMissingToken        = errors.New("missing GitHub token (set GITHUB_TOKEN)")
	ErrMissingWebhookURL   = errors.New("missing webhook URL (set SLACK_WEBHOOK_URL)")
	ErrInvalidThreshold    = errors.New("max users to remove must not be negative")
)

// Config holds application configuration.
// Loaded once at startup; treat it as read-only afterwards.
type Config struct {
	Organization string `env:"GITHUB_ORGANIZATION"`
	GitHubToken  string `env:"GITHUB_TOKEN"`
	GitHubURL    string `env:"GITHUB_URL"`
	WebhookURL   string `env:"SLACK_WEBHOOK_URL"`

	// Accounts that cannot enable 2FA (comma-separated in the environment)
	ExcludedAccounts []string `env:"AUDITOR_EXCLUDED_ACCOUNTS" envSeparator:","`
	MaxUsersToRemove int      `env:"AUDITOR_MAX_USERS_TO_REMOVE"`
	SafeMode         bool     `env:"AUDITOR_SAFE_MODE"`
	DryRun           bool     `env:"AUDITOR_DRY_RUN"`

	PolicyFile  string        `env:"AUDITOR_POLICY_FILE"`
	HTTPTimeout time.Duration `env:"AUDITOR_HTTP_TIMEOUT"`
}

// Default returns the configuration used when nothing is set.
// Safe mode and dry-run are on so a fresh deployment never removes anyone.
func Default() Config {
	return Config{
		GitHubURL:        DefaultGitHubURL,
		MaxUsersToRemove: DefaultMaxUsersToRemove,
		SafeMode:         true,
		DryRun:           true,
		HTTPTimeout:      DefaultHTTPTimeout,
	}
}

// Load builds the configuration: defaults, then the policy file (policyFile,
// or AUDITOR_POLICY_FILE when empty), then environment variables.
// Unset variables keep the earlier value.
func Load(policyFile string) (Config, error) {
	cfg := Default()

	if policyFile == "" {
		policyFile = strings.TrimSpace(os.Getenv(PolicyFileEnv))
	}
	if policyFile != "" {
		if err := ApplyPolicyFile(&cfg, policyFile); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if policyFile != "" {
		cfg.PolicyFile = policyFile
	}

	cfg.ExcludedAccounts = cleanAccounts(cfg.ExcludedAccounts)
	return cfg, nil
}

// Validate reports every missing or invalid setting.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Organization) == "" {
		errs = append(errs, ErrMissingOrganization)
	}
	if strings.TrimSpace(c.GitHubToken) == "" {
		errs = append(errs, ErrMissingToken)
	}
	if strings.TrimSpace(c.WebhookURL) == "" {
		errs = append(errs, ErrMissingWebhookURL)
	}
	if c.MaxUsersToRemove < 0 {
		errs = append(errs, ErrInvalidThreshold)
	}
	return errors.Join(errs...)
}

// Policy returns the enforcement policy for a run.
func (c Config) Policy() domain.PolicyConfig {
	excluded := make([]string, len(c.ExcludedAccounts))
	copy(excluded, c.ExcludedAccounts)

	return domain.PolicyConfig{
		Organization:     strings.TrimSpace(c.Organization),
		ExcludedAccounts: excluded,
		MaxUsersToRemove: c.MaxUsersToRemove,
		SafeMode:         c.SafeMode,
		DryRun:           c.DryRun,
	}
}

func cleanAccounts(accounts []string) []string {
	result := make([]string, 0, len(accounts))
	for _, a := range accounts {
		a = strings.TrimSpace(a)
		if a != "" {
			result = append(result, a)
		}
	}
	return result
}
