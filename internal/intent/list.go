package intent

import "strings"

// SentinelItem is substituted when a list utterance yields no parseable
// items, so Items is never empty.
const SentinelItem = "Item from voice note"

// List types.
const (
	ListShopping = "shopping"
	ListTodo     = "todo"
)

// ListSlots holds the parsed list request: the list kind and the ordered
// items as they appeared left to right in the utterance.
type ListSlots struct {
	ListType string
	Items    []string
}

var listNouns = []string{"shopping list", "grocery list", "todo list", "list"}

// listTriggers is ordered longest and most specific first; the first
// phrase found in the utterance anchors where the item content begins.
var listTriggers = []string{
	"add to list", "shopping list", "grocery list", "todo list", "checklist",
	"shopping", "grocery", "purchase", "store", "market", "buy", "shop",
	"add", "list",
}

// listFillers are stripped from the front of located content, each checked
// once in order (one shot per prefix, not a loop).
var listFillers = []string{"of", "for", ":", "-", "to", "the", "my", "some"}

// ExtractList locates list content with a three-tier strategy and
// tokenizes it on commas after normalizing " and ", " & " and ";" to
// commas. Content slices preserve the original casing of the utterance.
func ExtractList(utterance string) ListSlots {
	trimmed := strings.TrimSpace(utterance)
	lower := strings.ToLower(trimmed)
	src := sliceable(trimmed, lower)

	listType := ListShopping
	if containsAny(lower, []string{"todo", "task", "checklist"}) {
		listType = ListTodo
	}

	items := splitListItems(locateListContent(src, lower))
	if len(items) == 0 {
		items = []string{SentinelItem}
	}
	return ListSlots{ListType: listType, Items: items}
}

// locateListContent applies the three content-location patterns in order:
//
//	A: "add X, Y to <list noun>"   -> everything between "add " and " to "
//	B: "<anything>: X, Y"          -> everything after the first colon
//	C: content after the first trigger phrase, fillers stripped
//
// Pattern B is only tried when A's shape is absent; pattern C runs
// whenever A or B produced nothing.
func locateListContent(src, lower string) string {
	content := ""
	if strings.Contains(lower, " to ") && containsAny(lower, listNouns) && strings.HasPrefix(lower, "add ") {
		if i := strings.Index(lower, " to "); i >= 4 {
			content = strings.TrimSpace(src[4:i])
		}
	} else if i := strings.Index(src, ":"); i >= 0 {
		content = strings.TrimSpace(src[i+1:])
	}
	if content != "" {
		return content
	}

	for _, trigger := range listTriggers {
		i := strings.Index(lower, trigger)
		if i < 0 {
			continue
		}
		content = strings.TrimSpace(src[i+len(trigger):])
		for _, filler := range listFillers {
			if strings.HasPrefix(strings.ToLower(content), filler+" ") {
				content = strings.TrimSpace(content[len(filler):])
			}
		}
		return content
	}
	return ""
}

func splitListItems(content string) []string {
	if content == "" {
		return nil
	}
	normalized := strings.ReplaceAll(content, " and ", ", ")
	normalized = strings.ReplaceAll(normalized, " & ", ", ")
	normalized = strings.ReplaceAll(normalized, ";", ",")

	var items []string
	for _, piece := range strings.Split(normalized, ",") {
		if p := strings.TrimSpace(piece); p != "" {
			items = append(items, p)
		}
	}
	return items
}
