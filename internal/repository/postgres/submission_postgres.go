package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pitchapi/internal/model"
	"pitchapi/internal/repository"
)

// SubmissionPostgres is a PostgreSQL implementation of repository.SubmissionRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type SubmissionPostgres struct {
	db *sql.DB
}

// NewSubmissionPostgres creates a new SubmissionPostgres repository.
func NewSubmissionPostgres(db *sql.DB) *SubmissionPostgres {
	return &SubmissionPostgres{db: db}
}

var _ repository.SubmissionRepository = (*SubmissionPostgres)(nil)

const submissionColumns = `id, submission_id, startup_name, submitter_name, status, created_at, updated_at`

// Create inserts the startup row and its files inside a single transaction.
func (r *SubmissionPostgres) Create(ctx context.Context, sub *model.Submission) (*model.Submission, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const qStartup = `
		INSERT INTO startups (submission_id, startup_name, submitter_name, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	out := *sub
	out.Files = make([]model.SubmissionFile, 0, len(sub.Files))
	if err := tx.QueryRowContext(ctx, qStartup,
		sub.SubmissionID,
		sub.StartupName,
		sub.SubmitterName,
		sub.Status,
	).Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert startup: %w", err)
	}

	const qFile = `
		INSERT INTO startup_files (startup_id, original_name, saved_name, storage_path, file_size, content_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	for _, f := range sub.Files {
		stored := f
		if err := tx.QueryRowContext(ctx, qFile,
			out.ID,
			f.OriginalName,
			f.SavedName,
			f.StoragePath,
			f.FileSize,
			f.ContentType,
		).Scan(&stored.ID, &stored.CreatedAt); err != nil {
			return nil, fmt.Errorf("insert file %q: %w", f.OriginalName, err)
		}
		out.Files = append(out.Files, stored)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &out, nil
}

// FindBySubmissionID fetches a submission by its public UUID.
func (r *SubmissionPostgres) FindBySubmissionID(ctx context.Context, submissionID string) (*model.Submission, error) {
	q := `SELECT ` + submissionColumns + ` FROM startups WHERE submission_id = $1`
	return r.findOne(ctx, q, submissionID)
}

// FindByStartupName fetches the first submission whose name contains name.
func (r *SubmissionPostgres) FindByStartupName(ctx context.Context, name string) (*model.Submission, error) {
	q := `SELECT ` + submissionColumns + ` FROM startups WHERE startup_name ILIKE $1 ORDER BY id ASC LIMIT 1`
	return r.findOne(ctx, q, containsPattern(name))
}

func (r *SubmissionPostgres) findOne(ctx context.Context, q string, arg any) (*model.Submission, error) {
	var (
		s       model.Submission
		updated sql.NullTime
	)
	if err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&s.ID,
		&s.SubmissionID,
		&s.StartupName,
		&s.SubmitterName,
		&s.Status,
		&s.CreatedAt,
		&updated,
	); err != nil {
		return nil, err
	}
	if updated.Valid {
		t := updated.Time
		s.UpdatedAt = &t
	}

	files, err := r.files(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Files = files
	return &s, nil
}

func (r *SubmissionPostgres) files(ctx context.Context, startupID int64) ([]model.SubmissionFile, error) {
	const q = `
		SELECT id, original_name, saved_name, storage_path, file_size, content_type, created_at
		FROM startup_files
		WHERE startup_id = $1
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, startupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]model.SubmissionFile, 0)
	for rows.Next() {
		var (
			f  model.SubmissionFile
			ct sql.NullString
		)
		if err := rows.Scan(
			&f.ID,
			&f.OriginalName,
			&f.SavedName,
			&f.StoragePath,
			&f.FileSize,
			&ct,
			&f.CreatedAt,
		); err != nil {
			return nil, err
		}
		f.ContentType = ct.String
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

// List returns submission summaries using LIMIT/OFFSET pagination and a total count.
func (r *SubmissionPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.SubmissionSummary], error) {
	const qCount = `SELECT COUNT(*) FROM startups`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT s.id, s.submission_id, s.startup_name, s.submitter_name, s.status, s.created_at, COUNT(f.id)
		FROM startups s
		LEFT JOIN startup_files f ON f.startup_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.SubmissionSummary, 0)
	for rows.Next() {
		var s model.SubmissionSummary
		if err := rows.Scan(
			&s.ID,
			&s.SubmissionID,
			&s.StartupName,
			&s.SubmitterName,
			&s.Status,
			&s.CreatedAt,
			&s.FilesCount,
		); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.SubmissionSummary]{
		Items: items,
		Total: total,
	}, nil
}

// Search returns startup names matching query for autocomplete.
func (r *SubmissionPostgres) Search(ctx context.Context, query string, limit int) ([]model.StartupRef, error) {
	const q = `
		SELECT startup_name, submission_id
		FROM startups
		WHERE startup_name ILIKE $1
		ORDER BY id ASC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, q, containsPattern(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make([]model.StartupRef, 0)
	for rows.Next() {
		var ref model.StartupRef
		if err := rows.Scan(&ref.Name, &ref.ID); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

// Stats counts submissions and files.
func (r *SubmissionPostgres) Stats(ctx context.Context, since time.Time) (*model.Stats, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM startups),
			(SELECT COUNT(*) FROM startup_files),
			(SELECT COUNT(*) FROM startups WHERE created_at >= $1)
	`
	var st model.Stats
	if err := r.db.QueryRowContext(ctx, q, since).Scan(
		&st.TotalSubmissions,
		&st.TotalFiles,
		&st.RecentSubmissionsToday,
	); err != nil {
		return nil, err
	}
	return &st, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
