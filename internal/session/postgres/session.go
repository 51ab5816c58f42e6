package postgres

import (
	"time"

	eventDatamodel "github.com/frahmantamala/conference-management/internal/core/datamodel/event"
	"github.com/frahmantamala/conference-management/internal/session"
	"gorm.io/gorm"
)

// SessionRepository implements the session.Repository interface using GORM.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) session.Repository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(record *eventDatamodel.Session) error {
	return r.db.Create(record).Error
}

func (r *SessionRepository) GetByID(id string) (*eventDatamodel.Session, error) {
	var record eventDatamodel.Session
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, session.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// UpdateFields applies a partial update and returns the refreshed row.
func (r *SessionRepository) UpdateFields(id string, updates map[string]interface{}) (*eventDatamodel.Session, error) {
	existing, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates["updated_at"] = time.Now()
	if err := r.db.Model(existing).Updates(updates).Error; err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// Delete is a soft delete: gorm sets deleted_at and the row stays in storage.
func (r *SessionRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&eventDatamodel.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) List(limit, offset int) (int64, []*eventDatamodel.Session, error) {
	var total int64
	if err := r.db.Model(&eventDatamodel.Session{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var records []*eventDatamodel.Session
	err := r.db.Order("start_time ASC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return 0, nil, err
	}

	return total, records, nil
}

// GetSpeakersForSession returns the speakers assigned to a session along
// with the role label on each assignment.
func (r *SessionRepository) GetSpeakersForSession(sessionID string) ([]session.AssignedSpeaker, error) {
	var assignments []eventDatamodel.SpeakerAssignment
	err := r.db.Where("session_id = ?", sessionID).Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	assigned := make([]session.AssignedSpeaker, 0, len(assignments))
	for _, a := range assignments {
		var speaker eventDatamodel.Speaker
		if err := r.db.Where("id = ?", a.SpeakerID).First(&speaker).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return nil, err
		}
		assigned = append(assigned, session.AssignedSpeaker{Speaker: &speaker, Role: a.Role})
	}

	return assigned, nil
}

func (r *SessionRepository) GetSpeakerByID(id string) (*eventDatamodel.Speaker, error) {
	var record eventDatamodel.Speaker
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, session.ErrSpeakerNotFound
		}
		return nil, err
	}
	return &record, nil
}

// AssignSpeaker inserts an assignment row; each insert commits on its own,
// matching the create-session workflow.
func (r *SessionRepository) AssignSpeaker(sessionID, speakerID, role string) error {
	assignment := &eventDatamodel.SpeakerAssignment{
		SessionID: sessionID,
		SpeakerID: speakerID,
		Role:      role,
	}
	return r.db.Create(assignment).Error
}

func (r *SessionRepository) ListSpeakers(limit, offset int) (int64, []*eventDatamodel.Speaker, error) {
	var total int64
	if err := r.db.Model(&eventDatamodel.Speaker{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var records []*eventDatamodel.Speaker
	err := r.db.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return 0, nil, err
	}

	return total, records, nil
}
