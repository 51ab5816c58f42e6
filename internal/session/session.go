package session

import (
	"errors"
	"time"

	eventDatamodel "github.com/frahmantamala/conference-management/internal/core/datamodel/event"
)

// Role label attached to every speaker assignment created through the
// session workflow.
const SpeakerRolePresenter = "Presenter"

// SessionResponse is the create/update/list output shape.
type SessionResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Capacity    int       `json:"capacity"`
	IsActive    bool      `json:"is_active"`
}

// SpeakerResponse is the speaker output shape; Role is set only when the
// speaker is listed as part of a session's detail.
type SpeakerResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      *string `json:"role,omitempty"`
	Biography *string `json:"biography,omitempty"`
}

// SessionDetail is a session with its assigned speakers.
type SessionDetail struct {
	SessionResponse
	Speakers []SpeakerResponse `json:"speakers"`
}

// AssignedSpeaker pairs a speaker with the role label on its assignment.
type AssignedSpeaker struct {
	Speaker *eventDatamodel.Speaker
	Role    string
}

// CreateSessionDTO is the payload for creating a session. Speakers holds
// optional speaker ids to assign after the session row is persisted.
type CreateSessionDTO struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Capacity    int       `json:"capacity"`
	Speakers    []string  `json:"speakers,omitempty"`
}

// UpdateSessionDTO carries optional fields; only non-nil ones are applied.
type UpdateSessionDTO struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateSessionDTO) Validate() error {
	if d.Title == "" {
		return ValidationError{Msg: "title is required"}
	}
	if d.StartTime.IsZero() || d.EndTime.IsZero() {
		return ValidationError{Msg: "start_time and end_time are required"}
	}
	if !d.EndTime.After(d.StartTime) {
		return ValidationError{Msg: "end_time must be after start_time"}
	}
	if d.Capacity <= 0 {
		return ValidationError{Msg: "capacity must be greater than 0"}
	}
	return nil
}

var (
	ErrNotFound        = errors.New("session not found")
	ErrSpeakerNotFound = errors.New("speaker not found")
)

func ToResponse(s *eventDatamodel.Session) SessionResponse {
	return SessionResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Capacity:    s.Capacity,
		IsActive:    s.IsActive,
	}
}

func ToSpeakerResponse(sp *eventDatamodel.Speaker) SpeakerResponse {
	return SpeakerResponse{
		ID:        sp.ID,
		Name:      sp.Name,
		Email:     sp.Email,
		Biography: sp.Biography,
	}
}
