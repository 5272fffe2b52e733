package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"june-voice-backend/internal/assistant"
	"june-voice-backend/internal/db"
)

// DatabaseStore persists Google auth, notes and lists in PostgreSQL.
type DatabaseStore struct {
	db *db.DB
}

// NewDatabaseStore creates a new database store
func NewDatabaseStore(database *db.DB) *DatabaseStore {
	return &DatabaseStore{db: database}
}

// GoogleAuth represents Google authentication data for one session.
type GoogleAuth struct {
	SessionID    string
	AccessToken  string
	RefreshToken string
	AccountEmail string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SaveGoogleAuth saves or updates Google authentication data for a session
func (ds *DatabaseStore) SaveGoogleAuth(sessionID, accessToken, refreshToken, accountEmail string) error {
	if sessionID == "" || accessToken == "" {
		return fmt.Errorf("session_id and access_token are required")
	}

	query := `
		INSERT INTO google_auth (session_id, access_token, refresh_token, account_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (session_id)
		DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			account_email = EXCLUDED.account_email,
			updated_at = NOW()
	`

	if _, err := ds.db.Exec(query, sessionID, accessToken, refreshToken, accountEmail); err != nil {
		return fmt.Errorf("failed to save Google auth: %w", err)
	}
	return nil
}

// GetGoogleAuth retrieves Google authentication data for a session
func (ds *DatabaseStore) GetGoogleAuth(sessionID string) (*GoogleAuth, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session_id is required")
	}

	var auth GoogleAuth
	query := `
		SELECT session_id, access_token, refresh_token, account_email, created_at, updated_at
		FROM google_auth
		WHERE session_id = $1
	`

	err := ds.db.QueryRow(query, sessionID).Scan(
		&auth.SessionID,
		&auth.AccessToken,
		&auth.RefreshToken,
		&auth.AccountEmail,
		&auth.CreatedAt,
		&auth.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get Google auth: %w", err)
	}
	return &auth, nil
}

// LatestGoogleAuth returns the most recently updated auth row, for the
// single-user deployments this service typically runs as.
func (ds *DatabaseStore) LatestGoogleAuth() (*GoogleAuth, error) {
	var auth GoogleAuth
	query := `
		SELECT session_id, access_token, refresh_token, account_email, created_at, updated_at
		FROM google_auth
		ORDER BY updated_at DESC
		LIMIT 1
	`

	err := ds.db.QueryRow(query).Scan(
		&auth.SessionID,
		&auth.AccessToken,
		&auth.RefreshToken,
		&auth.AccountEmail,
		&auth.CreatedAt,
		&auth.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest Google auth: %w", err)
	}
	return &auth, nil
}

// DeleteGoogleAuth removes Google authentication data for a session
func (ds *DatabaseStore) DeleteGoogleAuth(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	if _, err := ds.db.Exec(`DELETE FROM google_auth WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to delete Google auth: %w", err)
	}
	return nil
}

// CreateNote stores a note row and returns its id.
func (ds *DatabaseStore) CreateNote(ctx context.Context, title, content string) (assistant.StoreResult, error) {
	var id int64
	err := ds.db.QueryRowContext(ctx,
		`INSERT INTO notes (title, content) VALUES ($1, $2) RETURNING id`,
		title, content,
	).Scan(&id)
	if err != nil {
		return assistant.StoreResult{}, fmt.Errorf("failed to create note: %w", err)
	}
	return assistant.StoreResult{ID: strconv.FormatInt(id, 10), Action: "created"}, nil
}

// SaveList appends items to the list with the given title, creating the
// list first when it does not exist (or when appending is not requested).
func (ds *DatabaseStore) SaveList(ctx context.Context, title string, items []string, appendToExisting bool) (assistant.StoreResult, error) {
	tx, err := ds.db.BeginTx(ctx, nil)
	if err != nil {
		return assistant.StoreResult{}, fmt.Errorf("failed to begin list transaction: %w", err)
	}
	defer tx.Rollback()

	var listID int64
	action := "created"
	if appendToExisting {
		err = tx.QueryRowContext(ctx, `SELECT id FROM lists WHERE title = $1`, title).Scan(&listID)
		switch {
		case err == sql.ErrNoRows:
			// fall through to create
		case err != nil:
			return assistant.StoreResult{}, fmt.Errorf("failed to find list: %w", err)
		default:
			action = "appended"
		}
	}
	if action == "created" {
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO lists (title) VALUES ($1) RETURNING id`, title,
		).Scan(&listID); err != nil {
			return assistant.StoreResult{}, fmt.Errorf("failed to create list: %w", err)
		}
	}

	var position int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) FROM list_items WHERE list_id = $1`, listID,
	).Scan(&position); err != nil {
		return assistant.StoreResult{}, fmt.Errorf("failed to read list position: %w", err)
	}
	for i, item := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO list_items (list_id, item, position) VALUES ($1, $2, $3)`,
			listID, item, position+i+1,
		); err != nil {
			return assistant.StoreResult{}, fmt.Errorf("failed to insert list item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return assistant.StoreResult{}, fmt.Errorf("failed to commit list: %w", err)
	}
	return assistant.StoreResult{ID: strconv.FormatInt(listID, 10), Action: action}, nil
}
