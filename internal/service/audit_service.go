package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vilaca/github-2fa-auditor/internal/api"
	"github.com/vilaca/github-2fa-auditor/internal/domain"
)

// Notifier delivers notification events (Dependency Inversion Principle).
type Notifier interface {
	Notify(ctx context.Context, event domain.NotificationEvent) error
}

// AuditServiceConfig holds the dependencies for NewAuditService.
type AuditServiceConfig struct {
	Client   api.MembershipClient
	Notifier Notifier
	Logger   Logger
	Policy   domain.PolicyConfig
	Now      func() time.Time // defaults to time.Now
}

// AuditService runs one audit pass: fetch, notify findings, remediate.
// Follows Single Responsibility Principle - orchestrates the run, the
// client and notifier do the I/O.
type AuditService struct {
	client   api.MembershipClient
	notifier Notifier
	logger   Logger
	policy   domain.PolicyConfig
	now      func() time.Time
}

// NewAuditService creates a new audit service with injected dependencies.
func NewAuditService(cfg AuditServiceConfig) *AuditService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = NopLogger{}
	}

	return &AuditService{
		client:   cfg.Client,
		notifier: cfg.Notifier,
		logger:   logger,
		policy:   cfg.Policy,
		now:      now,
	}
}

// Run performs one audit pass. A fetch failure is returned before any
// notification or removal happens. Everything after the fetch is best-effort
// and does not produce an error.
func (s *AuditService) Run(ctx context.Context) (domain.Outcome, error) {
	fetched, err := s.client.ListMembersWithout2FA(ctx, s.policy.Organization)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("fetch non-compliant members of %s: %w", s.policy.Organization, err)
	}

	set := domain.NewNonCompliantSet(fetched, s.policy.ExcludedAccounts)
	s.logger.Printf("Fetched %d members without 2FA in %s, %d after exclusions",
		len(fetched), s.policy.Organization, set.Len())

	if set.Len() == 0 {
		s.logger.Printf("No non-compliant members, nothing to do")
		return domain.Outcome{State: domain.StateEmpty}, nil
	}

	findings := set.Members()
	for _, m := range findings {
		s.notify(ctx, domain.NewFindingEvent(m, s.now()))
	}

	outcome := s.remediate(ctx, findings)
	outcome.Findings = findings

	s.logger.Printf("Run finished: state=%s findings=%d removed=%d failed=%d",
		outcome.State, len(findings), outcome.Removed(), outcome.Failed())
	return outcome, nil
}

// notify sends an event and logs delivery failures without escalating them.
func (s *AuditService) notify(ctx context.Context, event domain.NotificationEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Printf("Failed to deliver %s notification: %v", event.Kind, err)
	}
}
