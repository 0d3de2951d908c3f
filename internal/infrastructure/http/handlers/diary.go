package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lunara/wellness/internal/ports/inbound"
	"github.com/lunara/wellness/pkg/errors"
)

// DiaryHandlers handles diary endpoints
type DiaryHandlers struct {
	service inbound.DiaryService
	logger  *zap.Logger
}

// NewDiaryHandlers creates a new diary handlers instance
func NewDiaryHandlers(service inbound.DiaryService, logger *zap.Logger) *DiaryHandlers {
	return &DiaryHandlers{service: service, logger: logger}
}

type diaryEntryBody struct {
	Date         string   `json:"date" validate:"required"`
	Mood         int      `json:"mood" validate:"min=0,max=10"`
	EnergyLevel  int      `json:"energy_level" validate:"min=0,max=10"`
	SleepQuality int      `json:"sleep_quality" validate:"min=0,max=10"`
	Symptoms     []string `json:"symptoms" validate:"max=20,dive,max=100"`
	Notes        string   `json:"notes" validate:"max=2000"`
}

func (b diaryEntryBody) toCommand() (inbound.UpsertDiaryEntryCommand, error) {
	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		return inbound.UpsertDiaryEntryCommand{}, errors.NewBadRequestError("Date must be in YYYY-MM-DD format")
	}
	return inbound.UpsertDiaryEntryCommand{
		Date:         date,
		Mood:         b.Mood,
		EnergyLevel:  b.EnergyLevel,
		SleepQuality: b.SleepQuality,
		Symptoms:     b.Symptoms,
		Notes:        b.Notes,
	}, nil
}

// List handles GET /api/v1/diary
func (h *DiaryHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	// Default window is the last 30 days
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = time.Parse("2006-01-02", raw); err != nil {
			writeError(w, h.logger, errors.NewBadRequestError("Invalid from date"))
			return
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = time.Parse("2006-01-02", raw); err != nil {
			writeError(w, h.logger, errors.NewBadRequestError("Invalid to date"))
			return
		}
	}

	entries, err := h.service.ListEntries(r.Context(), userID, from, to)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: entries})
}

// Create handles POST /api/v1/diary
func (h *DiaryHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var body diaryEntryBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}
	cmd, err := body.toCommand()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	cmd.UserID = userID

	entry, err := h.service.CreateEntry(r.Context(), cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: entry})
}

// Update handles PUT /api/v1/diary/{id}
func (h *DiaryHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var body diaryEntryBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}
	cmd, err := body.toCommand()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	cmd.UserID = userID

	entry, err := h.service.UpdateEntry(r.Context(), id, cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: entry})
}

// Delete handles DELETE /api/v1/diary/{id}
func (h *DiaryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.service.DeleteEntry(r.Context(), userID, id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Entry deleted"})
}

// Insights handles GET /api/v1/diary/insights
func (h *DiaryHandlers) Insights(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	insights, err := h.service.Insights(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: insights})
}
