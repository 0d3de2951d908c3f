// Package diary contains the daily wellbeing diary and the trend analysis
// shown on entry cards.
package diary

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is one day's diary record. Scales run 1-10.
type Entry struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Date         time.Time `json:"date"`
	Mood         int       `json:"mood"`
	EnergyLevel  int       `json:"energy_level"`
	SleepQuality int       `json:"sleep_quality"`
	Symptoms     []string  `json:"symptoms,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewEntry creates a validated diary entry. Scale values of zero mean
// "not recorded" and are excluded from trend analysis.
func NewEntry(userID uuid.UUID, date time.Time, mood, energy, sleep int, symptoms []string, notes string) (*Entry, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("diary: entry date is required")
	}
	now := time.Now()
	e := &Entry{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.Apply(mood, energy, sleep, symptoms, notes); err != nil {
		return nil, err
	}
	return e, nil
}

// Apply replaces the entry's recorded values
func (e *Entry) Apply(mood, energy, sleep int, symptoms []string, notes string) error {
	for _, v := range []int{mood, energy, sleep} {
		if v < 0 || v > 10 {
			return fmt.Errorf("diary: scale values must be between 0 and 10, got %d", v)
		}
	}
	e.Mood = mood
	e.EnergyLevel = energy
	e.SleepQuality = sleep
	e.Symptoms = symptoms
	e.Notes = notes
	e.UpdatedAt = time.Now()
	return nil
}

// Insight flags a pattern worth surfacing to the user
type Insight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Trend thresholds over the analysis window
const (
	trendWindowDays        = 7
	recurringSymptomCount  = 3
	lowEnergyMinSamples    = 5
	lowEnergyThreshold     = 4.0
	poorSleepMinSamples    = 4
	poorSleepThreshold     = 4.0
)

// AnalyzeTrends inspects the last seven days of entries for recurring
// symptoms and sustained low energy or poor sleep. Entries outside the
// window are ignored.
func AnalyzeTrends(entries []Entry, now time.Time) []Insight {
	cutoff := now.AddDate(0, 0, -trendWindowDays)
	var window []Entry
	for _, e := range entries {
		if !e.Date.Before(cutoff) {
			window = append(window, e)
		}
	}

	var insights []Insight

	symptomCounts := map[string]int{}
	for _, e := range window {
		for _, s := range e.Symptoms {
			symptomCounts[s]++
		}
	}
	for symptom, count := range symptomCounts {
		if count >= recurringSymptomCount {
			insights = append(insights, Insight{
				Type:    "recurring_symptom",
				Message: fmt.Sprintf("%s tritt wiederholt auf (%dx in den letzten %d Tagen)", symptom, count, trendWindowDays),
			})
		}
	}

	var energy []int
	var sleep []int
	for _, e := range window {
		if e.EnergyLevel > 0 {
			energy = append(energy, e.EnergyLevel)
		}
		if e.SleepQuality > 0 {
			sleep = append(sleep, e.SleepQuality)
		}
	}

	if len(energy) >= lowEnergyMinSamples {
		if avg := average(energy); avg < lowEnergyThreshold {
			insights = append(insights, Insight{
				Type:    "low_energy_trend",
				Message: fmt.Sprintf("Anhaltend niedrige Energie (Ø %.1f/10 über %d Tage)", avg, len(energy)),
			})
		}
	}
	if len(sleep) >= poorSleepMinSamples {
		if avg := average(sleep); avg < poorSleepThreshold {
			insights = append(insights, Insight{
				Type:    "poor_sleep_trend",
				Message: fmt.Sprintf("Anhaltend schlechter Schlaf (Ø %.1f/10 über %d Tage)", avg, len(sleep)),
			})
		}
	}

	return insights
}

func average(values []int) float64 {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
