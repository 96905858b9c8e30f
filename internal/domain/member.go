package domain

import (
	"sort"
	"strings"
)

// Member represents an organization member as reported by the membership directory.
type Member struct {
	Login      string
	ProfileURL string
}

// NonCompliantSet maps member login to profile URL.
// Built once per run and only read afterwards.
type NonCompliantSet map[string]string

// NewNonCompliantSet builds the set from the fetched members, dropping every
// login on the exclusion list. Logins are compared case-insensitively.
func NewNonCompliantSet(members []Member, excluded []string) NonCompliantSet {
	skip := make(map[string]struct{}, len(excluded))
	for _, login := range excluded {
		login = strings.TrimSpace(login)
		if login != "" {
			skip[strings.ToLower(login)] = struct{}{}
		}
	}

	set := make(NonCompliantSet, len(members))
	for _, m := range members {
		if _, ok := skip[strings.ToLower(m.Login)]; ok {
			continue
		}
		set[m.Login] = m.ProfileURL
	}
	return set
}

// Len returns the number of non-compliant members.
func (s NonCompliantSet) Len() int {
	return len(s)
}

// Contains reports whether login is in the set. Like the exclusion list,
// logins match case-insensitively.
func (s NonCompliantSet) Contains(login string) bool {
	if _, ok := s[login]; ok {
		return true
	}
	for member := range s {
		if strings.EqualFold(member, login) {
			return true
		}
	}
	return false
}

// Members returns the set as members sorted by login.
func (s NonCompliantSet) Members() []Member {
	members := make([]Member, 0, len(s))
	for login, url := range s {
		members = append(members, Member{Login: login, ProfileURL: url})
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].Login < members[j].Login
	})
	return members
}
