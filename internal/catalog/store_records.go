package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"clipshelf/internal/textutil"
)

const recordColumns = "id, path, description, missing, created_at, updated_at"

// Add inserts a new record. The path is cleaned and made absolute; tags are
// normalized. Duplicate paths are allowed.
func (s *Store) Add(ctx context.Context, path string, tags []string, description string) (*Record, error) {
	cleaned := textutil.CleanPath(path)
	if cleaned == "" {
		return nil, ErrEmptyPath
	}
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	normalized := textutil.NormalizeTags(tags)

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	var id int64
	err = retryOnBusy(ensureContext(ctx), func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		res, err := tx.ExecContext(ctx,
			`INSERT INTO records (path, description, missing, created_at, updated_at) VALUES (?, ?, 0, ?, ?)`,
			absolute, description, timestamp, timestamp,
		)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		if err := insertTags(ctx, tx, id, normalized); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a record by identifier. Returns nil when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	if err := s.loadTags(ctx, []*Record{record}); err != nil {
		return nil, err
	}
	return record, nil
}

// GetByPath returns the first record matching path, or nil.
func (s *Store) GetByPath(ctx context.Context, path string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE path = ? ORDER BY id LIMIT 1`, path)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by path: %w", err)
	}
	if err := s.loadTags(ctx, []*Record{record}); err != nil {
		return nil, err
	}
	return record, nil
}

// List returns records matching the filter, ordered by creation.
func (s *Store) List(ctx context.Context, filter Filter) ([]*Record, error) {
	var (
		clauses []string
		args    []any
	)

	tags := textutil.NormalizeTags(filter.Tags)
	if len(tags) > 0 {
		placeholders := makePlaceholders(len(tags))
		clauses = append(clauses, fmt.Sprintf(
			`id IN (SELECT record_id FROM record_tags WHERE tag IN (%s) GROUP BY record_id HAVING COUNT(DISTINCT tag) = %d)`,
			placeholders, len(tags)))
		for _, tag := range tags {
			args = append(args, tag)
		}
	}
	if filter.MissingOnly {
		clauses = append(clauses, "missing = 1")
	}

	query := `SELECT ` + recordColumns + ` FROM records`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.loadTags(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// Update persists changes to an existing record, including its tag list.
func (s *Store) Update(ctx context.Context, record *Record) error {
	if record == nil {
		return errors.New("record is nil")
	}
	cleaned := textutil.CleanPath(record.Path)
	if cleaned == "" {
		return ErrEmptyPath
	}
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	record.Path = absolute
	record.Tags = textutil.NormalizeTags(record.Tags)
	record.UpdatedAt = time.Now().UTC()

	return retryOnBusy(ensureContext(ctx), func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		res, err := tx.ExecContext(ctx,
			`UPDATE records SET path = ?, description = ?, missing = ?, updated_at = ? WHERE id = ?`,
			record.Path,
			record.Description,
			boolToInt(record.Missing),
			record.UpdatedAt.Format(time.RFC3339Nano),
			record.ID,
		)
		if err != nil {
			return fmt.Errorf("update record: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return ErrNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM record_tags WHERE record_id = ?`, record.ID); err != nil {
			return fmt.Errorf("clear tags: %w", err)
		}
		if err := insertTags(ctx, tx, record.ID, record.Tags); err != nil {
			return err
		}
		return tx.Commit()
	})
}

// MarkPresence updates the missing flag for a record.
func (s *Store) MarkPresence(ctx context.Context, id int64, missing bool) error {
	res, err := s.execWithRetry(ctx,
		`UPDATE records SET missing = ?, updated_at = ? WHERE id = ?`,
		boolToInt(missing), time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("mark presence: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove deletes records by identifier and returns the count removed.
func (s *Store) Remove(ctx context.Context, ids ...int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := makePlaceholders(len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	res, err := s.execWithRetry(ctx, `DELETE FROM records WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("delete records: %w", err)
	}
	return res.RowsAffected()
}

// Clear removes all records from the catalog.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM records`)
	if err != nil {
		return 0, fmt.Errorf("clear catalog: %w", err)
	}
	return res.RowsAffected()
}

// Summarize aggregates record, tag, and missing counts.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	var summary Summary
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&summary.Records); err != nil {
		return Summary{}, fmt.Errorf("count records: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT tag) FROM record_tags`).Scan(&summary.Tags); err != nil {
		return Summary{}, fmt.Errorf("count tags: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE missing = 1`).Scan(&summary.Missing); err != nil {
		return Summary{}, fmt.Errorf("count missing: %w", err)
	}
	return summary, nil
}

func insertTags(ctx context.Context, tx *sql.Tx, recordID int64, tags []string) error {
	for position, tag := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO record_tags (record_id, tag, position) VALUES (?, ?, ?)`,
			recordID, tag, position,
		); err != nil {
			return fmt.Errorf("insert tag %q: %w", tag, err)
		}
	}
	return nil
}

// loadTags populates Tags for the given records in position order.
func (s *Store) loadTags(ctx context.Context, records []*Record) error {
	if len(records) == 0 {
		return nil
	}
	byID := make(map[int64]*Record, len(records))
	ids := make([]any, 0, len(records))
	for _, record := range records {
		byID[record.ID] = record
		ids = append(ids, record.ID)
	}

	query := `SELECT record_id, tag FROM record_tags WHERE record_id IN (` +
		makePlaceholders(len(ids)) + `) ORDER BY record_id, position`
	rows, err := s.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			recordID int64
			tag      string
		)
		if err := rows.Scan(&recordID, &tag); err != nil {
			return err
		}
		if record, ok := byID[recordID]; ok {
			record.Tags = append(record.Tags, tag)
		}
	}
	return rows.Err()
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		id          int64
		path        string
		description sql.NullString
		missing     sql.NullInt64
		createdRaw  sql.NullString
		updatedRaw  sql.NullString
	)

	if err := scanner.Scan(&id, &path, &description, &missing, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	record := &Record{
		ID:          id,
		Path:        path,
		Description: description.String,
	}
	if missing.Valid {
		record.Missing = missing.Int64 != 0
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		record.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		record.UpdatedAt = updated
	}
	return record, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
