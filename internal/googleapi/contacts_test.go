package googleapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	people "google.golang.org/api/people/v1"
)

func person(display, given, family string, phones, emails []string) *people.Person {
	p := &people.Person{
		Names: []*people.Name{{DisplayName: display, GivenName: given, FamilyName: family}},
	}
	for _, n := range phones {
		p.PhoneNumbers = append(p.PhoneNumbers, &people.PhoneNumber{Value: n})
	}
	for _, e := range emails {
		p.EmailAddresses = append(p.EmailAddresses, &people.EmailAddress{Value: e})
	}
	return p
}

func TestRankContactsExactBeforePartial(t *testing.T) {
	connections := []*people.Person{
		person("Johnson Smith", "Johnson", "Smith", []string{"111"}, nil),
		person("John Doe", "John", "Doe", []string{"222"}, []string{"john@example.com"}),
	}

	got := rankContacts(connections, "john")
	require.Len(t, got, 2)
	assert.Equal(t, "John Doe", got[0].DisplayName)
	assert.Equal(t, "exact", got[0].MatchType)
	assert.Equal(t, "Johnson Smith", got[1].DisplayName)
	assert.Equal(t, "partial", got[1].MatchType)
}

func TestRankContactsCaseInsensitive(t *testing.T) {
	connections := []*people.Person{
		person("Mom", "Mom", "", []string{"5551234"}, nil),
	}
	got := rankContacts(connections, "  MOM ")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"5551234"}, got[0].PhoneNumbers)
}

func TestRankContactsDedupeAndCap(t *testing.T) {
	var connections []*people.Person
	// Same display name twice, then more partials than the cap allows.
	connections = append(connections, person("Ana Lee", "Ana", "Lee", nil, nil))
	connections = append(connections, person("Ana Lee", "Ana", "Lee", nil, nil))
	for _, fam := range []string{"Banana", "Montana", "Santana", "Fontana", "Anagram", "Canasta"} {
		connections = append(connections, person("Zed "+fam, "Zed", fam, nil, nil))
	}

	got := rankContacts(connections, "ana")
	require.Len(t, got, maxContactMatches)
	assert.Equal(t, "Ana Lee", got[0].DisplayName)
	assert.Equal(t, "exact", got[0].MatchType)
	seen := map[string]bool{}
	for _, c := range got {
		assert.False(t, seen[c.DisplayName], "duplicate %s", c.DisplayName)
		seen[c.DisplayName] = true
	}
}

func TestRankContactsEmptyQuery(t *testing.T) {
	assert.Nil(t, rankContacts([]*people.Person{person("A", "A", "", nil, nil)}, "  "))
}

func TestRankContactsNoNames(t *testing.T) {
	assert.Empty(t, rankContacts([]*people.Person{{}}, "ana"))
}
