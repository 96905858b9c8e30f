package service

import (
	"context"

	"github.com/vilaca/github-2fa-auditor/internal/domain"
)

// Decision is what the remediator does with a non-empty set.
type Decision int

const (
	DecisionDryRun Decision = iota
	DecisionThresholdTripped
	DecisionRemove
)

func (d Decision) String() string {
	switch d {
	case DecisionDryRun:
		return "dry-run"
	case DecisionThresholdTripped:
		return "threshold-tripped"
	case DecisionRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Decide applies the policy to a set of the given size.
// Dry-run wins over everything; safe mode caps removals at the threshold.
func Decide(policy domain.PolicyConfig, size int) Decision {
	if policy.DryRun {
		return DecisionDryRun
	}
	if policy.SafeMode && size > policy.MaxUsersToRemove {
		return DecisionThresholdTripped
	}
	return DecisionRemove
}

func (s *AuditService) remediate(ctx context.Context, members []domain.Member) domain.Outcome {
	decision := Decide(s.policy, len(members))
	s.logger.Printf("Remediation decision: %s (dry_run=%t safe_mode=%t threshold=%d members=%d)",
		decision, s.policy.DryRun, s.policy.SafeMode, s.policy.MaxUsersToRemove, len(members))

	switch decision {
	case DecisionDryRun:
		s.notify(ctx, domain.NewDryRunEvent(s.now()))
		return domain.Outcome{State: domain.StateDryRun}
	case DecisionThresholdTripped:
		s.notify(ctx, domain.NewThresholdTrippedEvent(s.policy.MaxUsersToRemove, s.now()))
		return domain.Outcome{State: domain.StateThresholdTripped}
	}

	results := s.removeAll(ctx, members)
	for _, r := range results {
		member := r.Member
		if r.Succeeded() {
			s.notify(ctx, domain.NewRemovedEvent(member, s.now()))
		} else {
			s.notify(ctx, domain.NewErrorEvent(r.Err, &member, s.now()))
		}
	}

	return domain.Outcome{State: domain.StateRemoved, Removals: results}
}

// removeAll attempts every removal exactly once, in order. A failure is
// recorded in its result and does not stop later members.
func (s *AuditService) removeAll(ctx context.Context, members []domain.Member) []domain.RemovalResult {
	results := make([]domain.RemovalResult, 0, len(members))
	for _, m := range members {
		err := s.client.RemoveMember(ctx, s.policy.Organization, m.Login)
		if err != nil {
			s.logger.Printf("Failed to remove %s: %v", m.Login, err)
		} else {
			s.logger.Printf("Removed %s from %s", m.Login, s.policy.Organization)
		}
		results = append(results, domain.RemovalResult{Member: m, Err: err})
	}
	return results
}
