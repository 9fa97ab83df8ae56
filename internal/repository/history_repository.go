//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"time"

	"tubefetch/backend/internal/model"
	"tubefetch/backend/pkg/snowflake"
)

// HistoryRepository stores completed download records.
type HistoryRepository interface {
	Create(ctx context.Context, record model.VideoHistory) (model.VideoHistory, error)
	ListByUser(ctx context.Context, userID string) ([]model.VideoHistory, error)
	Delete(ctx context.Context, id int64, userID string) error
	DeleteAllByUser(ctx context.Context, userID string) error
}

type historyRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new history repository.
func NewHistoryRepository(db *sql.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, record model.VideoHistory) (model.VideoHistory, error) {
	record.ID = snowflake.NextID()
	record.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO video_history (id, user_id, video_id, video_url, title, thumbnail, duration, uploader, download_type, quality, format, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.UserID, record.VideoID, record.VideoURL, record.Title, record.Thumbnail,
		nullableInt(record.Duration), nullableString(record.Uploader),
		record.DownloadType, record.Quality, record.Format, formatTime(record.CreatedAt))
	if err != nil {
		return model.VideoHistory{}, err
	}

	return record, nil
}

func (r *historyRepository) ListByUser(ctx context.Context, userID string) ([]model.VideoHistory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, video_id, video_url, title, thumbnail, duration, uploader, download_type, quality, format, created_at
		FROM video_history WHERE user_id = ? ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.VideoHistory
	for rows.Next() {
		var record model.VideoHistory
		var duration sql.NullInt64
		var uploader sql.NullString
		var createdAt string
		if err := rows.Scan(&record.ID, &record.UserID, &record.VideoID, &record.VideoURL, &record.Title,
			&record.Thumbnail, &duration, &uploader, &record.DownloadType, &record.Quality, &record.Format, &createdAt); err != nil {
			return nil, err
		}
		if duration.Valid {
			d := int(duration.Int64)
			record.Duration = &d
		}
		if uploader.Valid {
			u := uploader.String
			record.Uploader = &u
		}
		record.CreatedAt, _ = parseTime(createdAt)
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *historyRepository) Delete(ctx context.Context, id int64, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM video_history WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *historyRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM video_history WHERE user_id = ?`, userID)
	return err
}
