package intent

import (
	"strings"
	"time"
)

// NoteSlots holds the title and body of a note request.
type NoteSlots struct {
	Title   string
	Content string
}

var noteTriggers = []string{"note", "notes", "reminder", "write down", "remember", "jot down", "draft", "create"}

// noteFillers are stripped from the front of located content until none
// match, then any leading trigger words left over from stacked phrasings
// like "write down remember ..." are consumed the same way.
var noteFillers = []string{"a", "an", "the", "that", "to", "this", ":"}

var docDraftWords = []string{"draft", "resume", "document", "create document"}

const timestampLayout = "2006-01-02 15:04"

// ExtractNote slices note content after the first trigger word. A document
// draft mentioning "resume" short-circuits to a canned template instead of
// extraction.
func ExtractNote(utterance string, now time.Time) NoteSlots {
	trimmed := strings.TrimSpace(utterance)
	lower := strings.ToLower(trimmed)
	stamp := now.Format(timestampLayout)

	if containsAny(lower, docDraftWords) && strings.Contains(lower, "resume") {
		return NoteSlots{
			Title:   "Resume Draft - " + stamp,
			Content: resumeTemplate,
		}
	}

	src := sliceable(trimmed, lower)
	content := trimmed
	for _, trigger := range noteTriggers {
		i := strings.Index(lower, trigger)
		if i < 0 {
			continue
		}
		content = strings.TrimSpace(src[i+len(trigger):])
		content = stripLeading(content, noteFillers)
		content = stripLeading(content, noteTriggers)
		break
	}
	if content == "" {
		content = trimmed
	}
	return NoteSlots{Title: "Voice Note - " + stamp, Content: content}
}

// stripLeading removes leading words from content until none of the given
// words match. Words only strip at a word boundary.
func stripLeading(content string, words []string) string {
	for {
		stripped := false
		lower := strings.ToLower(content)
		for _, w := range words {
			if strings.HasPrefix(lower, w+" ") {
				content = strings.TrimSpace(content[len(w):])
				stripped = true
				break
			}
		}
		if !stripped {
			return content
		}
	}
}

// resumeTemplate is the canned content substituted for resume drafting
// requests. The bracketed placeholders are filled in by the user.
const resumeTemplate = `RESUME DRAFT

[Your Name]
[Your Address]
[Your Phone Number]
[Your Email]

OBJECTIVE
[Brief statement about your career goals and what you bring to the role]

EXPERIENCE
[Company Name] - [Job Title] ([Start Date] - [End Date])
• [Achievement or responsibility]
• [Achievement or responsibility]
• [Achievement or responsibility]

EDUCATION
[University/School Name]
[Degree] in [Field of Study] ([Graduation Year])

SKILLS
• [Skill 1]
• [Skill 2]
• [Skill 3]

ACHIEVEMENTS
• [Notable achievement]
• [Notable achievement]

---
Note: Please fill in the bracketed sections with your specific information.`
