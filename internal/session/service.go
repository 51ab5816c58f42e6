package session

import (
	"fmt"
	"log/slog"

	"github.com/frahmantamala/conference-management/internal"
	"github.com/frahmantamala/conference-management/internal/core/common/pagination"
	eventDatamodel "github.com/frahmantamala/conference-management/internal/core/datamodel/event"
)

// Repository is the data access surface for sessions and speakers. Reads
// exclude soft-deleted rows.
type Repository interface {
	Create(session *eventDatamodel.Session) error
	GetByID(id string) (*eventDatamodel.Session, error)
	UpdateFields(id string, updates map[string]interface{}) (*eventDatamodel.Session, error)
	Delete(id string) error
	List(limit, offset int) (int64, []*eventDatamodel.Session, error)
	GetSpeakersForSession(sessionID string) ([]AssignedSpeaker, error)
	GetSpeakerByID(id string) (*eventDatamodel.Speaker, error)
	AssignSpeaker(sessionID, speakerID, role string) error
	ListSpeakers(limit, offset int) (int64, []*eventDatamodel.Speaker, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateSession persists the session, then assigns each listed speaker.
// The session row is committed before speaker ids are validated, so an
// invalid later id leaves the session and earlier assignments in place.
func (s *Service) CreateSession(dto CreateSessionDTO) (*SessionResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record := &eventDatamodel.Session{
		Title:       dto.Title,
		Description: dto.Description,
		StartTime:   dto.StartTime,
		EndTime:     dto.EndTime,
		Capacity:    dto.Capacity,
		IsActive:    true,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create session", "error", err, "title", dto.Title)
		return nil, err
	}

	for _, speakerID := range dto.Speakers {
		if _, err := s.repo.GetSpeakerByID(speakerID); err != nil {
			s.logger.Warn("speaker assignment failed: speaker missing",
				"session_id", record.ID,
				"speaker_id", speakerID)
			return nil, internal.NewValidationError(
				fmt.Sprintf("speaker with ID %s does not exist", speakerID),
				internal.ErrCodeSpeakerNotFound)
		}

		if err := s.repo.AssignSpeaker(record.ID, speakerID, SpeakerRolePresenter); err != nil {
			s.logger.Error("failed to assign speaker", "error", err,
				"session_id", record.ID,
				"speaker_id", speakerID)
			return nil, err
		}
	}

	s.logger.Info("session created", "session_id", record.ID, "speakers", len(dto.Speakers))

	resp := ToResponse(record)
	return &resp, nil
}

// GetSession returns a session with its assigned speakers.
func (s *Service) GetSession(sessionID string) (*SessionDetail, error) {
	record, err := s.repo.GetByID(sessionID)
	if err != nil {
		return nil, internal.ErrSessionNotFound
	}

	assigned, err := s.repo.GetSpeakersForSession(sessionID)
	if err != nil {
		s.logger.Error("failed to load session speakers", "error", err, "session_id", sessionID)
		return nil, err
	}

	speakers := make([]SpeakerResponse, 0, len(assigned))
	for _, a := range assigned {
		sp := ToSpeakerResponse(a.Speaker)
		role := a.Role
		sp.Role = &role
		speakers = append(speakers, sp)
	}

	return &SessionDetail{
		SessionResponse: ToResponse(record),
		Speakers:        speakers,
	}, nil
}

// UpdateSession applies only the fields present in the DTO.
func (s *Service) UpdateSession(sessionID string, dto UpdateSessionDTO) (*SessionResponse, error) {
	updates := map[string]interface{}{}

	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.StartTime != nil {
		updates["start_time"] = *dto.StartTime
	}
	if dto.EndTime != nil {
		updates["end_time"] = *dto.EndTime
	}
	if dto.Capacity != nil {
		updates["capacity"] = *dto.Capacity
	}

	if len(updates) == 0 {
		return nil, internal.ErrNoUpdateFields
	}

	record, err := s.repo.UpdateFields(sessionID, updates)
	if err != nil {
		if err == ErrNotFound {
			return nil, internal.ErrSessionNotFound
		}
		s.logger.Error("failed to update session", "error", err, "session_id", sessionID)
		return nil, err
	}

	resp := ToResponse(record)
	return &resp, nil
}

func (s *Service) DeleteSession(sessionID string) error {
	if err := s.repo.Delete(sessionID); err != nil {
		if err == ErrNotFound {
			return internal.ErrSessionNotFound
		}
		s.logger.Error("failed to delete session", "error", err, "session_id", sessionID)
		return err
	}
	return nil
}

func (s *Service) ListSessions(params pagination.Params) (*pagination.Response[SessionResponse], error) {
	total, records, err := s.repo.List(params.Limit, params.Offset())
	if err != nil {
		s.logger.Error("failed to list sessions", "error", err)
		return nil, err
	}

	items := make([]SessionResponse, 0, len(records))
	for _, record := range records {
		items = append(items, ToResponse(record))
	}

	resp := pagination.NewResponse(items, total, params)
	return &resp, nil
}

func (s *Service) ListSpeakers(params pagination.Params) (*pagination.Response[SpeakerResponse], error) {
	total, records, err := s.repo.ListSpeakers(params.Limit, params.Offset())
	if err != nil {
		s.logger.Error("failed to list speakers", "error", err)
		return nil, err
	}

	items := make([]SpeakerResponse, 0, len(records))
	for _, record := range records {
		items = append(items, ToSpeakerResponse(record))
	}

	resp := pagination.NewResponse(items, total, params)
	return &resp, nil
}
