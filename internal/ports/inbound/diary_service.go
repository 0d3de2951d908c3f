package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lunara/wellness/internal/domain/diary"
	"github.com/lunara/wellness/internal/domain/knowledge"
)

// DiaryService stores diary entries and derives wellbeing insights
type DiaryService interface {
	CreateEntry(ctx context.Context, cmd UpsertDiaryEntryCommand) (*diary.Entry, error)
	UpdateEntry(ctx context.Context, entryID uuid.UUID, cmd UpsertDiaryEntryCommand) (*diary.Entry, error)
	DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error
	ListEntries(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]diary.Entry, error)

	// Insights scans the recent entries for recurring symptoms and trends
	Insights(ctx context.Context, userID uuid.UUID) ([]diary.Insight, error)
}

// UpsertDiaryEntryCommand carries one day's diary values
type UpsertDiaryEntryCommand struct {
	UserID       uuid.UUID
	Date         time.Time
	Mood         int
	EnergyLevel  int
	SleepQuality int
	Symptoms     []string
	Notes        string
}

// KnowledgeService serves the published article library
type KnowledgeService interface {
	GetArticle(ctx context.Context, id uuid.UUID) (*knowledge.Article, error)
	ListArticles(ctx context.Context) ([]knowledge.Article, error)
}
