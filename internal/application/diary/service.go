// Package diary provides the application layer for the wellbeing diary
package diary

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lunara/wellness/internal/domain/diary"
	"github.com/lunara/wellness/internal/ports/inbound"
	"github.com/lunara/wellness/internal/ports/outbound"
	"github.com/lunara/wellness/pkg/errors"
)

// insightWindow is how far back trend analysis looks
const insightWindow = 7 * 24 * time.Hour

// DiaryService implements the diary use cases
type DiaryService struct {
	diaryRepo outbound.DiaryRepository
	logger    *zap.Logger
}

// NewDiaryService creates a new diary service
func NewDiaryService(diaryRepo outbound.DiaryRepository, logger *zap.Logger) inbound.DiaryService {
	return &DiaryService{
		diaryRepo: diaryRepo,
		logger:    logger.Named("diary-service"),
	}
}

// CreateEntry stores a new diary entry
func (s *DiaryService) CreateEntry(ctx context.Context, cmd inbound.UpsertDiaryEntryCommand) (*diary.Entry, error) {
	entry, err := diary.NewEntry(cmd.UserID, cmd.Date, cmd.Mood, cmd.EnergyLevel, cmd.SleepQuality, cmd.Symptoms, cmd.Notes)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.diaryRepo.Create(ctx, entry); err != nil {
		return nil, errors.NewDatabaseError("create diary entry", err)
	}
	return entry, nil
}

// UpdateEntry replaces the values of an existing entry
func (s *DiaryService) UpdateEntry(ctx context.Context, entryID uuid.UUID, cmd inbound.UpsertDiaryEntryCommand) (*diary.Entry, error) {
	entry, err := s.diaryRepo.FindByID(ctx, entryID)
	if err != nil {
		return nil, errors.NewDatabaseError("find diary entry", err)
	}
	if entry == nil {
		return nil, errors.NewNotFoundError("diary entry")
	}
	if entry.UserID != cmd.UserID {
		return nil, errors.NewForbiddenError("You can only edit your own diary entries")
	}

	if err := entry.Apply(cmd.Mood, cmd.EnergyLevel, cmd.SleepQuality, cmd.Symptoms, cmd.Notes); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.diaryRepo.Update(ctx, entry); err != nil {
		return nil, errors.NewDatabaseError("update diary entry", err)
	}
	return entry, nil
}

// DeleteEntry removes an entry the user owns
func (s *DiaryService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	entry, err := s.diaryRepo.FindByID(ctx, entryID)
	if err != nil {
		return errors.NewDatabaseError("find diary entry", err)
	}
	if entry == nil {
		return errors.NewNotFoundError("diary entry")
	}
	if entry.UserID != userID {
		return errors.NewForbiddenError("You can only delete your own diary entries")
	}
	if err := s.diaryRepo.Delete(ctx, entryID); err != nil {
		return errors.NewDatabaseError("delete diary entry", err)
	}
	return nil
}

// ListEntries returns the user's entries in a date range, newest first
func (s *DiaryService) ListEntries(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]diary.Entry, error) {
	entries, err := s.diaryRepo.ListByUser(ctx, userID, from, to)
	if err != nil {
		return nil, errors.NewDatabaseError("list diary entries", err)
	}
	return entries, nil
}

// Insights scans the recent entries for recurring symptoms and trends
func (s *DiaryService) Insights(ctx context.Context, userID uuid.UUID) ([]diary.Insight, error) {
	now := time.Now()
	entries, err := s.diaryRepo.ListByUser(ctx, userID, now.Add(-insightWindow), now)
	if err != nil {
		return nil, errors.NewDatabaseError("list diary entries", err)
	}
	return diary.AnalyzeTrends(entries, now), nil
}
