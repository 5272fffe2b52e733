package intent

import "strings"

// CallSlots holds the resolved target of a call request. Exactly one of
// PhoneNumber or ContactName is set when extraction succeeds; both empty
// means the caller should ask who to call.
type CallSlots struct {
	PhoneNumber string
	ContactName string
}

// Empty reports whether no call target was found.
func (c CallSlots) Empty() bool {
	return c.PhoneNumber == "" && c.ContactName == ""
}

// ExtractCall pulls a dial target out of an utterance. Numbers win over
// names: any whitespace token containing a digit is treated as a phone
// number, even a short one like "200". Only when no digits appear is the
// text after "call" or "dial" taken as a contact name.
func ExtractCall(utterance string) CallSlots {
	for _, word := range strings.Fields(utterance) {
		if !containsDigit(word) {
			continue
		}
		var b strings.Builder
		for _, r := range word {
			if (r >= '0' && r <= '9') || r == '+' || r == '-' || r == '(' || r == ')' {
				b.WriteRune(r)
			}
		}
		return CallSlots{PhoneNumber: b.String()}
	}

	m := Normalize(utterance)
	for _, verb := range []string{"call ", "dial "} {
		if i := strings.Index(m, verb); i >= 0 {
			if name := strings.TrimSpace(m[i+len(verb):]); name != "" {
				return CallSlots{ContactName: name}
			}
		}
	}
	return CallSlots{}
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
