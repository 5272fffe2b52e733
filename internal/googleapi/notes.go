package googleapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"

	"june-voice-backend/internal/assistant"
)

// notesFolderName is the Drive folder all assistant documents live in.
const notesFolderName = "June Notes"

const docMimeType = "application/vnd.google-apps.document"
const folderMimeType = "application/vnd.google-apps.folder"

// CreateNote stores a note as a Google Doc inside the assistant folder.
func (s *Services) CreateNote(ctx context.Context, title, content string) (assistant.StoreResult, error) {
	driveSvc, err := s.driveService(ctx)
	if err != nil {
		return assistant.StoreResult{}, err
	}
	docsSvc, err := s.docsService(ctx)
	if err != nil {
		return assistant.StoreResult{}, err
	}

	folderID, err := s.ensureNotesFolder(ctx, driveSvc)
	if err != nil {
		return assistant.StoreResult{}, err
	}

	doc, err := driveSvc.Files.Create(&drive.File{
		Name:     title,
		Parents:  []string{folderID},
		MimeType: docMimeType,
	}).Context(ctx).Do()
	if err != nil {
		return assistant.StoreResult{}, fmt.Errorf("create note doc: %w", err)
	}

	body := fmt.Sprintf("# %s\nCreated: %s\nCreated by: June AI Assistant\n\n%s\n",
		title, time.Now().Format("2006-01-02 15:04"), content)
	if err := insertText(ctx, docsSvc, doc.Id, 1, body); err != nil {
		return assistant.StoreResult{}, err
	}
	return assistant.StoreResult{ID: doc.Id, Action: "created"}, nil
}

// SaveList writes list items into a Google Doc. When a doc with the same
// title already exists and appending is requested, items are added to the
// end of it instead of creating a new doc.
func (s *Services) SaveList(ctx context.Context, title string, items []string, appendToExisting bool) (assistant.StoreResult, error) {
	driveSvc, err := s.driveService(ctx)
	if err != nil {
		return assistant.StoreResult{}, err
	}
	docsSvc, err := s.docsService(ctx)
	if err != nil {
		return assistant.StoreResult{}, err
	}

	folderID, err := s.ensureNotesFolder(ctx, driveSvc)
	if err != nil {
		return assistant.StoreResult{}, err
	}
	stamp := time.Now().Format("2006-01-02 15:04")

	if appendToExisting {
		existing, err := s.findListDoc(ctx, driveSvc, folderID, title)
		if err != nil {
			return assistant.StoreResult{}, err
		}
		if existing != "" {
			doc, err := docsSvc.Documents.Get(existing).Context(ctx).Do()
			if err != nil {
				return assistant.StoreResult{}, fmt.Errorf("get list doc: %w", err)
			}
			end := int64(1)
			if doc.Body != nil && len(doc.Body.Content) > 0 {
				end = doc.Body.Content[len(doc.Body.Content)-1].EndIndex - 1
			}
			var b strings.Builder
			b.WriteString("\n")
			for _, item := range items {
				b.WriteString(" " + item + "\n")
			}
			b.WriteString("\nUpdated: " + stamp + "\n")
			if err := insertText(ctx, docsSvc, existing, end, b.String()); err != nil {
				return assistant.StoreResult{}, err
			}
			return assistant.StoreResult{ID: existing, Action: "appended"}, nil
		}
	}

	doc, err := driveSvc.Files.Create(&drive.File{
		Name:     title,
		Parents:  []string{folderID},
		MimeType: docMimeType,
	}).Context(ctx).Do()
	if err != nil {
		return assistant.StoreResult{}, fmt.Errorf("create list doc: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\nCreated: %s\nCreated by: June AI Assistant\n\n", title, stamp)
	for _, item := range items {
		b.WriteString(" " + item + "\n")
	}
	if err := insertText(ctx, docsSvc, doc.Id, 1, b.String()); err != nil {
		return assistant.StoreResult{}, err
	}
	return assistant.StoreResult{ID: doc.Id, Action: "created"}, nil
}

func (s *Services) ensureNotesFolder(ctx context.Context, driveSvc *drive.Service) (string, error) {
	query := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false", notesFolderName, folderMimeType)
	found, err := driveSvc.Files.List().Q(query).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("find notes folder: %w", err)
	}
	if len(found.Files) > 0 {
		return found.Files[0].Id, nil
	}

	folder, err := driveSvc.Files.Create(&drive.File{
		Name:     notesFolderName,
		MimeType: folderMimeType,
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create notes folder: %w", err)
	}
	return folder.Id, nil
}

func (s *Services) findListDoc(ctx context.Context, driveSvc *drive.Service, folderID, title string) (string, error) {
	escaped := strings.ReplaceAll(title, "'", "\\'")
	query := fmt.Sprintf("name='%s' and '%s' in parents and trashed=false", escaped, folderID)
	found, err := driveSvc.Files.List().Q(query).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("find list doc: %w", err)
	}
	if len(found.Files) == 0 {
		return "", nil
	}
	return found.Files[0].Id, nil
}

func insertText(ctx context.Context, docsSvc *docs.Service, docID string, index int64, text string) error {
	_, err := docsSvc.Documents.BatchUpdate(docID, &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{{
			InsertText: &docs.InsertTextRequest{
				Location: &docs.Location{Index: index},
				Text:     text,
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("insert doc text: %w", err)
	}
	return nil
}
