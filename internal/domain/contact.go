package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ContactMessage is a message left through the public contact form
type ContactMessage struct {
	ID        string         `json:"_id" bson:"_id"`
	Name      string         `json:"name" bson:"name" validate:"max=200"`
	Email     string         `json:"email" bson:"email" validate:"required,email"`
	Subject   string         `json:"subject" bson:"subject" validate:"max=300"`
	Message   string         `json:"message" bson:"message" validate:"required,max=10000"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	Extra     map[string]any `json:"-" bson:",inline"`
}

func (m *ContactMessage) UnmarshalJSON(data []byte) error {
	type alias ContactMessage
	if err := json.Unmarshal(data, (*alias)(m)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	extra, err := splitExtra(data, m)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	m.Extra = extra
	return nil
}

func (m ContactMessage) MarshalJSON() ([]byte, error) {
	type alias ContactMessage
	return mergeExtra(alias(m), m.Extra)
}

func (m *ContactMessage) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
