package intent

import (
	"strings"
	"unicode"
)

// Kind is the coarse action category an utterance is classified into.
type Kind string

const (
	KindCall     Kind = "call"
	KindEmail    Kind = "email"
	KindCalendar Kind = "calendar"
	KindSMS      Kind = "sms"
	KindNotes    Kind = "notes"
	KindList     Kind = "list"
	KindGeneral  Kind = "general"
)

// Kinds lists every valid intent kind.
var Kinds = []Kind{KindCall, KindEmail, KindCalendar, KindSMS, KindNotes, KindList, KindGeneral}

// ValidKind reports whether s names a known intent kind.
func ValidKind(s string) bool {
	for _, k := range Kinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

// rules are evaluated in order and the first match wins. Order matters:
// "email me about the meeting" contains both "email" and "meeting" and must
// classify as email.
var rules = []struct {
	kind     Kind
	keywords []string
}{
	{KindCall, []string{"call", "dial", "phone"}},
	{KindEmail, []string{"email", "compose", "send email"}},
	{KindCalendar, []string{"schedule", "meeting", "appointment", "calendar"}},
	{KindSMS, []string{"text", "sms", "message"}},
	{KindNotes, []string{"note", "notes", "reminder", "write down", "remember", "jot down", "draft", "resume", "document", "write", "create document"}},
	{KindList, []string{"list", "shopping", "todo", "grocery", "checklist", "add to list", "shop", "buy", "purchase", "store", "market"}},
}

// Normalize lowers and trims an utterance. Every extractor expects its
// input normalized this way.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Classify maps an utterance to an intent kind. Single-word keywords match
// whole words only, so "recall" does not classify as call; multi-word
// phrases match as substrings. The same policy applies to every rule.
func Classify(text string) Kind {
	m := Normalize(text)
	if m == "" {
		return KindGeneral
	}
	words := tokenize(m)
	for _, r := range rules {
		if matchesAny(m, words, r.keywords) {
			return r.kind
		}
	}
	return KindGeneral
}

func matchesAny(text string, words map[string]bool, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(kw, " ") {
			if strings.Contains(text, kw) {
				return true
			}
		} else if words[kw] {
			return true
		}
	}
	return false
}

// tokenize splits on anything that is not a letter or digit.
func tokenize(text string) map[string]bool {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// sliceable returns the string content slices should be taken from. Indexes
// are always located on the lowered form; when lowering changed the byte
// length (rare unicode case folds) slicing the original with those indexes
// is unsafe, so the lowered form is used for content too.
func sliceable(original, lowered string) string {
	if len(original) != len(lowered) {
		return lowered
	}
	return original
}
