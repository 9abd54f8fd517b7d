package persistence

import (
	"context"
	"time"

	"github.com/chatu326/Stationary-Manager/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormEntryRepository implements EntryRepository using GORM.
// The ledger is append-only; nothing here updates or deletes rows.
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// Append persists a new entry and assigns its transaction identifier
func (r *GormEntryRepository) Append(ctx context.Context, entry *ledger.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByItem returns all entries for an item, oldest first
func (r *GormEntryRepository) FindByItem(ctx context.Context, itemID uint) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("trans_id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SumDecreasedBetween sums quantities of DECREASE entries with entry dates in
// [from, to).
func (r *GormEntryRepository) SumDecreasedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var result struct {
		Total int64
	}
	if err := r.db.WithContext(ctx).
		Model(&ledger.Entry{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("direction = ? AND entry_date >= ? AND entry_date < ?", ledger.DirectionDecrease, from, to).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// Count returns the total number of ledger entries
func (r *GormEntryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ledger.Entry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormEntryRepository implements EntryRepository
var _ ledger.EntryRepository = (*GormEntryRepository)(nil)
