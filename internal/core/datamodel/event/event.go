package event

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is a scheduled conference session.
type Session struct {
	ID          string         `gorm:"column:id;type:uuid;primaryKey"`
	Title       string         `gorm:"column:title;not null"`
	Description *string        `gorm:"column:description"`
	StartTime   time.Time      `gorm:"column:start_time;not null"`
	EndTime     time.Time      `gorm:"column:end_time;not null"`
	Capacity    int            `gorm:"column:capacity;not null"`
	IsActive    bool           `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Session) TableName() string { return "scheduled_sessions" }

func (s *Session) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type Speaker struct {
	ID        string         `gorm:"column:id;type:uuid;primaryKey"`
	Name      string         `gorm:"column:name;not null"`
	Email     string         `gorm:"column:email;uniqueIndex;not null"`
	Biography *string        `gorm:"column:biography"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Speaker) TableName() string { return "speakers" }

func (s *Speaker) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// SpeakerAssignment links a speaker to a session with a role label.
// (session_id, speaker_id) is intentionally not unique.
type SpeakerAssignment struct {
	ID        string         `gorm:"column:id;type:uuid;primaryKey"`
	SessionID string         `gorm:"column:session_id;type:uuid;not null;index"`
	SpeakerID string         `gorm:"column:speaker_id;type:uuid;not null;index"`
	Role      string         `gorm:"column:role;not null"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (SpeakerAssignment) TableName() string { return "speaker_assignments" }

func (sa *SpeakerAssignment) BeforeCreate(_ *gorm.DB) error {
	if sa.ID == "" {
		sa.ID = uuid.NewString()
	}
	return nil
}

type SessionAttendee struct {
	ID             string         `gorm:"column:id;type:uuid;primaryKey"`
	SessionID      string         `gorm:"column:session_id;type:uuid;not null;index"`
	UserID         string         `gorm:"column:user_id;type:uuid;not null;index"`
	AttendanceTime time.Time      `gorm:"column:attendance_time"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (SessionAttendee) TableName() string { return "session_attendees" }

func (sa *SessionAttendee) BeforeCreate(_ *gorm.DB) error {
	if sa.ID == "" {
		sa.ID = uuid.NewString()
	}
	return nil
}
