package audit

import (
	"context"
	"time"

	"github.com/khanghh/shopdash/model"
	"gorm.io/gorm"
)

type activityEventRepository struct {
	db *gorm.DB
}

func (r *activityEventRepository) Record(ctx context.Context, event *model.ActivityEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func NewActivityEventRepository(db *gorm.DB) Recorder {
	return &activityEventRepository{db: db}
}

// NopRecorder discards events; used in tests that don't assert on audit rows.
type NopRecorder struct{}

func (NopRecorder) Record(ctx context.Context, event *model.ActivityEvent) error {
	return nil
}

// Reader serves the activity pages and retention cleanup.
type Reader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

// ListByUser returns a page of events for one user, newest first, optionally
// filtered by category.
func (r *Reader) ListByUser(ctx context.Context, userID uint, category string, limit, offset int) ([]model.ActivityEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var events []model.ActivityEvent
	err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&events).Error
	return events, err
}

// PurgeOlderThan is the only delete path on the activity log.
func (r *Reader) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.ActivityEvent{})
	return result.RowsAffected, result.Error
}
