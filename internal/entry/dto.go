// AngelaMos | 2026
// dto.go

package entry

import (
	"time"

	"github.com/google/uuid"
)

type CreateEntryRequest struct {
	Entry    string  `json:"entry"    validate:"required"`
	Mood     string  `json:"mood"     validate:"required"`
	Location *Point  `json:"location" validate:"required"`
	Weather  *string `json:"weather"`
}

// UpdateEntryRequest is a full replacement. Unlike create, weather must be
// present and non-empty.
type UpdateEntryRequest struct {
	Entry    string  `json:"entry"    validate:"required"`
	Mood     string  `json:"mood"     validate:"required"`
	Location *Point  `json:"location" validate:"required"`
	Weather  *string `json:"weather"  validate:"required,min=1"`
}

type EntryResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Date      time.Time `json:"date"`
	Mood      string    `json:"mood"`
	Entry     string    `json:"entry"`
	Location  Point     `json:"location"`
	Weather   *string   `json:"weather,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToEntryResponse(e *Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Date:      e.Date,
		Mood:      e.Mood,
		Entry:     e.Entry,
		Location:  e.Location,
		Weather:   e.Weather,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToEntryResponseList(entries []Entry) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, ToEntryResponse(&e))
	}
	return responses
}
