package tuning

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/soundfield/attune-backend/internal/domain/user"
)

// SessionRow is the persisted shape of a Session. Domains, answers and
// results ride in JSON columns since their shape is owned by the quiz core,
// not the schema.
type SessionRow struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          *uuid.UUID     `gorm:"type:uuid;index;column:user_id" json:"user_id,omitempty"`
	User            *user.User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SelectedDomains datatypes.JSON `gorm:"column:selected_domains" json:"selected_domains"`
	Answers         datatypes.JSON `gorm:"column:answers" json:"answers"`
	Results         datatypes.JSON `gorm:"column:results" json:"results,omitempty"`
	Completed       bool           `gorm:"not null;default:false" json:"completed"`
	CompletedAt     *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt       time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SessionRow) TableName() string { return "tuning_session" }

// ToRow flattens a Session for storage.
func ToRow(s *Session) (*SessionRow, error) {
	if s == nil {
		return nil, fmt.Errorf("nil session")
	}
	domainsJSON, err := json.Marshal(s.SelectedDomains)
	if err != nil {
		return nil, fmt.Errorf("marshal selected domains: %w", err)
	}
	answersJSON, err := json.Marshal(s.Answers)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}
	row := &SessionRow{
		ID:              s.ID,
		UserID:          s.UserID,
		SelectedDomains: datatypes.JSON(domainsJSON),
		Answers:         datatypes.JSON(answersJSON),
		Completed:       s.Completed,
		CreatedAt:       s.CreatedAt,
	}
	if s.Results != nil {
		resultsJSON, err := json.Marshal(s.Results)
		if err != nil {
			return nil, fmt.Errorf("marshal results: %w", err)
		}
		row.Results = datatypes.JSON(resultsJSON)
		ts := s.Results.Timestamp
		row.CompletedAt = &ts
	}
	return row, nil
}

// FromRow rehydrates a stored Session.
func FromRow(row *SessionRow) (*Session, error) {
	if row == nil {
		return nil, fmt.Errorf("nil session row")
	}
	s := &Session{
		ID:        row.ID,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
		Completed: row.Completed,
	}
	if len(row.SelectedDomains) > 0 {
		if err := json.Unmarshal(row.SelectedDomains, &s.SelectedDomains); err != nil {
			return nil, fmt.Errorf("unmarshal selected domains: %w", err)
		}
	}
	if len(row.Answers) > 0 {
		if err := json.Unmarshal(row.Answers, &s.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
	}
	if len(row.Results) > 0 {
		var r Results
		if err := json.Unmarshal(row.Results, &r); err != nil {
			return nil, fmt.Errorf("unmarshal results: %w", err)
		}
		s.Results = &r
	}
	return s, nil
}
