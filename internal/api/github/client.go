package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/vilaca/github-2fa-auditor/internal/api"
	"github.com/vilaca/github-2fa-auditor/internal/domain"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// maxPages bounds how many member pages one listing may request.
const maxPages = 1000

// Client implements api.MembershipClient for GitHub organizations.
type Client struct {
	base *api.BaseClient
}

// NewClient creates a new GitHub membership client.
// Uses dependency injection for HTTPClient.
func NewClient(config api.ClientConfig, httpClient api.HTTPClient) *Client {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	base := api.NewBaseClient(baseURL, config.Token, httpClient)
	base.Headers["Accept"] = "application/vnd.github+json"
	base.Headers["X-GitHub-Api-Version"] = "2022-11-28"

	return &Client{base: base}
}

// ListMembersWithout2FA retrieves all organization members with 2FA disabled,
// following pagination until the last page.
func (c *Client) ListMembersWithout2FA(ctx context.Context, org string) ([]domain.Member, error) {
	if strings.TrimSpace(org) == "" {
		return nil, errors.New("organization is required")
	}

	next := fmt.Sprintf("%s/orgs/%s/members?filter=%s&per_page=%d",
		c.base.BaseURL, url.PathEscape(org), domain.Filter2FADisabled, api.DefaultPageSize)

	var members []domain.Member
	seen := make(map[string]struct{})
	for next != "" {
		if _, ok := seen[next]; ok {
			return nil, fmt.Errorf("failed to list members without 2FA: %w: next page %s was already fetched",
				api.ErrMalformedResponse, next)
		}
		if len(seen) >= maxPages {
			return nil, fmt.Errorf("failed to list members without 2FA: %w: more than %d pages",
				api.ErrMalformedResponse, maxPages)
		}
		seen[next] = struct{}{}

		var page []githubMember
		link, err := c.getJSONArray(ctx, next, &page)
		if err != nil {
			return nil, fmt.Errorf("failed to list members without 2FA: %w", err)
		}

		for i, m := range page {
			if m.Login == "" {
				return nil, fmt.Errorf("failed to list members without 2FA: %w: entry %d has no login",
					api.ErrMalformedResponse, i)
			}
			members = append(members, domain.Member{Login: m.Login, ProfileURL: m.HTMLURL})
		}

		next = nextPageURL(link)
		if next != "" && !c.sameOrigin(next) {
			return nil, fmt.Errorf("failed to list members without 2FA: %w: next page %s is not on %s",
				api.ErrMalformedResponse, next, c.base.BaseURL)
		}
	}

	return members, nil
}

// RemoveMember removes a user's membership from the organization.
// GitHub answers 204 No Content on success; anything else is an error.
func (c *Client) RemoveMember(ctx context.Context, org, login string) error {
	if strings.TrimSpace(org) == "" || strings.TrimSpace(login) == "" {
		return errors.New("organization and login are required")
	}

	endpoint := fmt.Sprintf("%s/orgs/%s/memberships/%s", c.base.BaseURL, url.PathEscape(org), url.PathEscape(login))

	resp, err := c.base.Do(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", login, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("failed to remove %s: %w", login, api.NewStatusError(resp))
	}

	return nil
}

// getJSONArray performs a GET request and decodes a JSON array body into result.
// Returns the Link header for pagination.
func (c *Client) getJSONArray(ctx context.Context, endpoint string, result interface{}) (string, error) {
	resp, err := c.base.Do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", api.NewStatusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	// An object (e.g. an error message) or null must not decode into an empty list.
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return "", fmt.Errorf("%w: expected JSON array", api.ErrMalformedResponse)
	}

	if err := json.Unmarshal(trimmed, result); err != nil {
		return "", fmt.Errorf("%w: %v", api.ErrMalformedResponse, err)
	}

	return resp.Header.Get("Link"), nil
}

// sameOrigin reports whether target has the scheme and host of the API base URL.
// Requests carry the token, so pagination never leaves that host.
func (c *Client) sameOrigin(target string) bool {
	base, err := url.Parse(c.base.BaseURL)
	if err != nil {
		return false
	}
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, base.Scheme) && strings.EqualFold(u.Host, base.Host)
}

// nextPageURL extracts the rel="next" target from a Link header.
func nextPageURL(link string) string {
	for _, part := range strings.Split(link, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}

		target := strings.TrimSpace(segments[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}

		for _, param := range segments[1:] {
			param = strings.TrimSpace(param)
			if param == `rel="next"` || param == "rel=next" {
				return strings.TrimSuffix(strings.TrimPrefix(target, "<"), ">")
			}
		}
	}
	return ""
}

// GitHub API response types
type githubMember struct {
	ID      int64  `json:"id"`
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}
