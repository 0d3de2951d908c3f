// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeModel represents the GORM model for recipes. The global curated pool
// and per-user recipes (custom copies, AI batches) share this table; global
// rows have no owner.
type RecipeModel struct {
	ID    uuid.UUID `gorm:"type:char(36);primaryKey"`
	Title RawJSON   `gorm:"type:json;not null"`

	Category   string      `gorm:"type:varchar(50);index;not null"`
	Difficulty string      `gorm:"type:varchar(20)"`
	Tags       StringSlice `gorm:"type:json"`

	MacrosPerPortion RawJSON `gorm:"type:json"`
	Ingredients      RawJSON `gorm:"type:json"`
	Instructions     RawJSON `gorm:"type:json"`

	HormoneFriendly bool    `gorm:"default:false;index"`
	HormoneBenefits RawJSON `gorm:"type:json"`

	PrepTimeMinutes int    `gorm:"column:prep_time_minutes;default:0"`
	CookTimeMinutes int    `gorm:"column:cook_time_minutes;default:0"`
	DefaultPortions int    `gorm:"default:1"`
	ImageURL        string `gorm:"type:text"`

	IsCustom         bool       `gorm:"default:false"`
	IsAIGenerated    bool       `gorm:"default:false;index"`
	OriginalRecipeID *uuid.UUID `gorm:"type:char(36)"`
	OwnerID          *uuid.UUID `gorm:"type:char(36);index"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// QuestionnaireModel represents the GORM model for questionnaires
type QuestionnaireModel struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID `gorm:"type:char(36);uniqueIndex;not null"`
	Nutrition     RawJSON   `gorm:"type:json"`
	RecoveryGoals RawJSON   `gorm:"type:json"`
	Movement      RawJSON   `gorm:"type:json"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FavoriteModel represents the GORM model for favorites. The item snapshot
// is stored inline so favorites survive edits to the source recipe.
type FavoriteModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);index:idx_favorites_user_type;not null"`
	ItemID    uuid.UUID `gorm:"type:char(36);not null"`
	ItemType  string    `gorm:"type:varchar(50);index:idx_favorites_user_type;not null"`
	ItemData  RawJSON   `gorm:"type:json"`
	CreatedAt time.Time `gorm:"index"`
}

// PlanModel represents the GORM model for weekly plans
type PlanModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);index:idx_plans_user_week;not null"`
	Type      string    `gorm:"type:varchar(20);default:'weekly'"`
	WeekStart time.Time `gorm:"index:idx_plans_user_week;not null"`
	Meals     RawJSON   `gorm:"type:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DiaryEntryModel represents the GORM model for diary entries
type DiaryEntryModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID `gorm:"type:char(36);index:idx_diary_user_date;not null"`
	Date         time.Time `gorm:"index:idx_diary_user_date;not null"`
	Mood         int       `gorm:"default:0"`
	EnergyLevel  int       `gorm:"default:0"`
	SleepQuality int       `gorm:"default:0"`
	Symptoms     StringSlice `gorm:"type:json"`
	Notes        string      `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ArticleModel represents the GORM model for knowledge articles
type ArticleModel struct {
	ID          uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Title       RawJSON     `gorm:"type:json;not null"`
	Summary     RawJSON     `gorm:"type:json"`
	Content     RawJSON     `gorm:"type:json"`
	Category    string      `gorm:"type:varchar(50);index"`
	Tags        StringSlice `gorm:"type:json"`
	ImageURL    string      `gorm:"type:text"`
	PublishedAt *time.Time  `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides for consistent naming
func (RecipeModel) TableName() string        { return "recipes" }
func (QuestionnaireModel) TableName() string { return "questionnaires" }
func (FavoriteModel) TableName() string      { return "favorites" }
func (PlanModel) TableName() string          { return "plans" }
func (DiaryEntryModel) TableName() string    { return "diary_entries" }
func (ArticleModel) TableName() string       { return "articles" }

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// RawJSON stores an arbitrary JSON document. Mappers marshal domain value
// objects through it.
type RawJSON json.RawMessage

// Scan implements the sql.Scanner interface
func (r *RawJSON) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*r = append((*r)[:0], v...)
		return nil
	case string:
		*r = RawJSON(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into RawJSON", value)
	}
}

// Value implements the driver.Valuer interface
func (r RawJSON) Value() (driver.Value, error) {
	if len(r) == 0 {
		return nil, nil
	}
	return []byte(r), nil
}

// MarshalJSON keeps the raw document intact when a model is serialized
func (r RawJSON) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON stores the raw document as-is
func (r *RawJSON) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for QuestionnaireModel
func (q *QuestionnaireModel) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for FavoriteModel
func (f *FavoriteModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for PlanModel
func (p *PlanModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for DiaryEntryModel
func (d *DiaryEntryModel) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// AutoMigrate creates or updates the schema for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&RecipeModel{},
		&QuestionnaireModel{},
		&FavoriteModel{},
		&PlanModel{},
		&DiaryEntryModel{},
		&ArticleModel{},
	)
}
