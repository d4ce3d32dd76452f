package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
)

// VolunteerRequest is a volunteer's application to a post. Pending and approved
// applications both hold one slot of the post's counter.
type VolunteerRequest struct {
	ID             string         `json:"_id" bson:"_id"`
	PostID         string         `json:"postId" bson:"postId" validate:"required"`
	PostTitle      string         `json:"postTitle" bson:"postTitle"`
	VolunteerName  string         `json:"volunteerName" bson:"volunteerName" validate:"max=200"`
	VolunteerEmail string         `json:"volunteerEmail" bson:"volunteerEmail" validate:"required,email"`
	OrganizerName  string         `json:"organizerName" bson:"organizerName"`
	OrganizerEmail string         `json:"organizerEmail" bson:"organizerEmail"`
	Suggestion     string         `json:"suggestion" bson:"suggestion" validate:"max=2000"`
	Status         RequestStatus  `json:"status" bson:"status"`
	CreatedAt      time.Time      `json:"createdAt" bson:"createdAt"`
	Extra          map[string]any `json:"-" bson:",inline"`
}

func (r *VolunteerRequest) UnmarshalJSON(data []byte) error {
	type alias VolunteerRequest
	if err := json.Unmarshal(data, (*alias)(r)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	extra, err := splitExtra(data, r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	r.Extra = extra
	return nil
}

func (r VolunteerRequest) MarshalJSON() ([]byte, error) {
	type alias VolunteerRequest
	return mergeExtra(alias(r), r.Extra)
}

// Validate checks an application before it is stored
func (r *VolunteerRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// ReserveFrom copies the post identity onto the application. The organizer
// fields always come from the stored post, never from the client.
func (r *VolunteerRequest) ReserveFrom(p *Post) {
	r.PostID = p.ID
	r.PostTitle = p.PostTitle
	r.OrganizerName = p.Organizer.Name
	r.OrganizerEmail = p.Organizer.Email
}
