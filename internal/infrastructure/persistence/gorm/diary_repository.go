package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunara/wellness/internal/domain/diary"
	"github.com/lunara/wellness/internal/ports/outbound"
)

// DiaryRepository implements diary entry storage
type DiaryRepository struct {
	db *gorm.DB
}

// NewDiaryRepository creates a new diary repository
func NewDiaryRepository(db *gorm.DB) outbound.DiaryRepository {
	return &DiaryRepository{db: db}
}

// Create stores a diary entry
func (r *DiaryRepository) Create(ctx context.Context, e *diary.Entry) error {
	return r.db.WithContext(ctx).Create(entryToModel(e)).Error
}

// Update updates an existing entry
func (r *DiaryRepository) Update(ctx context.Context, e *diary.Entry) error {
	result := r.db.WithContext(ctx).Save(entryToModel(e))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("diary entry not found")
	}
	return nil
}

// Delete removes an entry
func (r *DiaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&DiaryEntryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("diary entry not found")
	}
	return nil
}

// FindByID returns one entry, or nil when it does not exist
func (r *DiaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*diary.Entry, error) {
	var model DiaryEntryModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return modelToEntry(&model), nil
}

// ListByUser returns the user's entries in a date range, newest first
func (r *DiaryRepository) ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]diary.Entry, error) {
	var models []DiaryEntryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]diary.Entry, len(models))
	for i := range models {
		entries[i] = *modelToEntry(&models[i])
	}
	return entries, nil
}

func entryToModel(e *diary.Entry) *DiaryEntryModel {
	return &DiaryEntryModel{
		ID:           e.ID,
		UserID:       e.UserID,
		Date:         e.Date,
		Mood:         e.Mood,
		EnergyLevel:  e.EnergyLevel,
		SleepQuality: e.SleepQuality,
		Symptoms:     e.Symptoms,
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func modelToEntry(model *DiaryEntryModel) *diary.Entry {
	return &diary.Entry{
		ID:           model.ID,
		UserID:       model.UserID,
		Date:         model.Date,
		Mood:         model.Mood,
		EnergyLevel:  model.EnergyLevel,
		SleepQuality: model.SleepQuality,
		Symptoms:     model.Symptoms,
		Notes:        model.Notes,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
