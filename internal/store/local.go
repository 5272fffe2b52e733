package store

import (
	"context"
	"strconv"
	"sync"
	"time"

	"june-voice-backend/internal/assistant"
)

// LocalNote is a note captured without any backing database or Drive
// connection. Kept only for the lifetime of the process.
type LocalNote struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
}

// LocalList mirrors LocalNote for shopping/todo lists.
type LocalList struct {
	ID        string
	Title     string
	Items     []string
	UpdatedAt time.Time
}

// LocalStore is the in-process fallback for notes and lists, used when
// neither DB_URL nor a Google token is configured.
type LocalStore struct {
	mu     sync.Mutex
	nextID int
	notes  map[string]LocalNote
	lists  map[string]*LocalList // keyed by title
}

// NewLocalStore creates an empty local store.
func NewLocalStore() *LocalStore {
	return &LocalStore{
		notes: make(map[string]LocalNote),
		lists: make(map[string]*LocalList),
	}
}

// CreateNote stores a note in memory and returns its id.
func (ls *LocalStore) CreateNote(ctx context.Context, title, content string) (assistant.StoreResult, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.nextID++
	id := "note-" + strconv.Itoa(ls.nextID)
	ls.notes[id] = LocalNote{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
	}
	return assistant.StoreResult{ID: id, Action: "created"}, nil
}

// SaveList appends to the list with the given title, creating it first
// when missing or when appending is not requested.
func (ls *LocalStore) SaveList(ctx context.Context, title string, items []string, appendToExisting bool) (assistant.StoreResult, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if appendToExisting {
		if list, ok := ls.lists[title]; ok {
			list.Items = append(list.Items, items...)
			list.UpdatedAt = time.Now()
			return assistant.StoreResult{ID: list.ID, Action: "appended"}, nil
		}
	}

	ls.nextID++
	id := "list-" + strconv.Itoa(ls.nextID)
	ls.lists[title] = &LocalList{
		ID:        id,
		Title:     title,
		Items:     append([]string(nil), items...),
		UpdatedAt: time.Now(),
	}
	return assistant.StoreResult{ID: id, Action: "created"}, nil
}

// Lists returns a snapshot copy of all lists.
func (ls *LocalStore) Lists() []LocalList {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	out := make([]LocalList, 0, len(ls.lists))
	for _, list := range ls.lists {
		copied := *list
		copied.Items = append([]string(nil), list.Items...)
		out = append(out, copied)
	}
	return out
}
