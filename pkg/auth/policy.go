package auth

import "strings"

// AdminPolicy is an immutable allow-list of admin emails.
type AdminPolicy struct {
	emails map[string]struct{}
}

// NewAdminPolicy builds a policy from emails. Entries are trimmed and
// lowercased; blanks are dropped.
func NewAdminPolicy(emails ...string) *AdminPolicy {
	p := &AdminPolicy{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		if e = normalizeEmail(e); e != "" {
			p.emails[e] = struct{}{}
		}
	}
	return p
}

// ParseAdminList splits a comma-separated list of emails.
func ParseAdminList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = normalizeEmail(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsAdmin reports whether email is on the allow-list.
// An empty email or an empty list never matches.
func (p *AdminPolicy) IsAdmin(email string) bool {
	if p == nil || len(p.emails) == 0 {
		return false
	}
	email = normalizeEmail(email)
	if email == "" {
		return false
	}
	_, ok := p.emails[email]
	return ok
}

// Len returns the number of admin emails.
func (p *AdminPolicy) Len() int {
	if p == nil {
		return 0
	}
	return len(p.emails)
}
