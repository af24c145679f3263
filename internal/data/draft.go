package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cronpost/cronpost-go/internal/biz/domain"
	"github.com/cronpost/cronpost-go/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// draftRepo implements the local draft store
type draftRepo struct {
	db *sql.DB
}

// draftBody is the serialized composite part of a draft. The schedule
// union and message core change shape across versions, so they live in
// one JSON column instead of a wide migration-prone table.
type draftBody struct {
	Message  domain.MessageCore  `json:"message"`
	Schedule domain.ScheduleSpec `json:"schedule"`
	WCT      domain.WCTDuration  `json:"wct"`
}

// NewDraftRepo creates a new draft repository
func NewDraftRepo(dbPath string) (repo.DraftRepo, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS drafts (
			local_id TEXT PRIMARY KEY,
			remote_id TEXT NOT NULL DEFAULT '',
			family TEXT NOT NULL,
			mode TEXT NOT NULL,
			is_draft INTEGER NOT NULL DEFAULT 0,
			body TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	// Create index
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_drafts_updated_at ON drafts(updated_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &draftRepo{db: db}, nil
}

// Save creates or replaces a draft by its local id
func (r *draftRepo) Save(ctx context.Context, draft *domain.MessageDraft) error {
	body, err := json.Marshal(draftBody{
		Message:  draft.Message,
		Schedule: draft.Schedule,
		WCT:      draft.WCT,
	})
	if err != nil {
		return fmt.Errorf("failed to encode draft body: %w", err)
	}

	isDraft := 0
	if draft.IsDraft {
		isDraft = 1
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO drafts (local_id, remote_id, family, mode, is_draft, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		draft.LocalID,
		draft.RemoteID,
		string(draft.Family),
		string(draft.Mode),
		isDraft,
		string(body),
		draft.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Get returns the draft, or nil when it does not exist
func (r *draftRepo) Get(ctx context.Context, localID string) (*domain.MessageDraft, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT local_id, remote_id, family, mode, is_draft, body, updated_at
		FROM drafts
		WHERE local_id = ?
	`, localID)

	draft, err := scanDraft(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query draft: %w", err)
	}
	return draft, nil
}

// List returns all drafts, most recently updated first
func (r *draftRepo) List(ctx context.Context) ([]*domain.MessageDraft, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT local_id, remote_id, family, mode, is_draft, body, updated_at
		FROM drafts
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*domain.MessageDraft
	for rows.Next() {
		draft, err := scanDraft(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, draft)
	}
	return drafts, rows.Err()
}

// Delete removes a draft; deleting a missing draft is not an error
func (r *draftRepo) Delete(ctx context.Context, localID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE local_id = ?`, localID)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *draftRepo) Close() error {
	return r.db.Close()
}

func scanDraft(scan func(dest ...any) error) (*domain.MessageDraft, error) {
	var draft domain.MessageDraft
	var family, mode, body string
	var isDraft int
	var updatedAt int64
	if err := scan(&draft.LocalID, &draft.RemoteID, &family, &mode, &isDraft, &body, &updatedAt); err != nil {
		return nil, err
	}

	var b draftBody
	if err := json.Unmarshal([]byte(body), &b); err != nil {
		return nil, fmt.Errorf("failed to decode draft body: %w", err)
	}

	draft.Family = domain.ScheduleFamily(family)
	draft.Mode = domain.ScheduleMode(mode)
	draft.IsDraft = isDraft == 1
	draft.Message = b.Message
	draft.Schedule = b.Schedule
	draft.WCT = b.WCT
	draft.UpdatedAt = time.Unix(updatedAt, 0)
	return &draft, nil
}
