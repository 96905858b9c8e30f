package api

import (
	"context"

	"github.com/vilaca/github-2fa-auditor/internal/domain"
)

// MembershipClient defines the interface for organization membership directories.
// Consumers depend on this interface, not on the GitHub implementation.
type MembershipClient interface {
	// ListMembersWithout2FA returns every member of org that has two-factor
	// authentication disabled. A malformed or failed response is an error,
	// never an empty list.
	ListMembersWithout2FA(ctx context.Context, org string) ([]domain.Member, error)

	// RemoveMember removes login from org. Only a confirmed removal returns nil.
	RemoveMember(ctx context.Context, org, login string) error
}

// ClientConfig holds common configuration for API clients.
type ClientConfig struct {
	BaseURL string
	// Token is sent as a bearer token when set. Leave empty when the
	// HTTPClient already authenticates requests (e.g. an oauth2 client).
	Token string
}
