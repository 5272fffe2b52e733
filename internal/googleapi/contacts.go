package googleapi

import (
	"context"
	"fmt"
	"strings"

	people "google.golang.org/api/people/v1"

	"june-voice-backend/internal/assistant"
)

const maxContactMatches = 5

// FindContact resolves a spoken name against the user's connections.
// Exact matches on display, given or family name rank before partial
// matches; duplicates by display name are dropped.
func (s *Services) FindContact(ctx context.Context, name string) ([]assistant.Contact, error) {
	svc, err := s.peopleService(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.People.Connections.List("people/me").
		PersonFields("names,emailAddresses,phoneNumbers").
		PageSize(500).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return rankContacts(resp.Connections, name), nil
}

// rankContacts is the pure matching core, split out for tests.
func rankContacts(connections []*people.Person, query string) []assistant.Contact {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var exact, partial []assistant.Contact
	for _, person := range connections {
		for _, n := range person.Names {
			display := strings.ToLower(n.DisplayName)
			given := strings.ToLower(n.GivenName)
			family := strings.ToLower(n.FamilyName)

			matchType := ""
			switch {
			case q == display || q == given || q == family:
				matchType = "exact"
			case strings.Contains(display, q) || strings.Contains(given, q) || strings.Contains(family, q):
				matchType = "partial"
			default:
				continue
			}

			c := assistant.Contact{DisplayName: n.DisplayName, MatchType: matchType}
			for _, p := range person.PhoneNumbers {
				c.PhoneNumbers = append(c.PhoneNumbers, p.Value)
			}
			for _, e := range person.EmailAddresses {
				c.Emails = append(c.Emails, e.Value)
			}
			if matchType == "exact" {
				exact = append(exact, c)
			} else {
				partial = append(partial, c)
			}
			break
		}
	}

	seen := make(map[string]bool)
	var out []assistant.Contact
	for _, c := range append(exact, partial...) {
		key := strings.ToLower(c.DisplayName)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
		if len(out) == maxContactMatches {
			break
		}
	}
	return out
}
