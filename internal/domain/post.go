package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Organizer is the embedded identity that owns a post
type Organizer struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email" validate:"required,email"`
}

// Post is a volunteer opportunity with a remaining-capacity counter.
// Keys the client sends beyond the typed fields are kept in Extra.
type Post struct {
	ID               string         `json:"_id" bson:"_id"`
	PostTitle        string         `json:"postTitle" bson:"postTitle" validate:"required,max=200"`
	Description      string         `json:"description" bson:"description" validate:"max=5000"`
	Category         string         `json:"category" bson:"category"`
	Location         string         `json:"location" bson:"location"`
	Thumbnail        string         `json:"thumbnail" bson:"thumbnail"`
	Deadline         time.Time      `json:"deadline" bson:"deadline"`
	Organizer        Organizer      `json:"organizer" bson:"organizer"`
	VolunteersNeeded int            `json:"volunteersNeeded" bson:"volunteersNeeded" validate:"gte=0"`
	CreatedAt        time.Time      `json:"createdAt" bson:"createdAt"`
	Extra            map[string]any `json:"-" bson:",inline"`
}

// UnmarshalJSON coerces deadline to a timestamp and volunteersNeeded to an integer
func (p *Post) UnmarshalJSON(data []byte) error {
	type alias Post
	aux := struct {
		*alias
		Deadline         json.RawMessage `json:"deadline"`
		VolunteersNeeded json.RawMessage `json:"volunteersNeeded"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !isNull(aux.Deadline) {
		deadline, err := ParseDeadline(aux.Deadline)
		if err != nil {
			return err
		}
		p.Deadline = deadline
	}
	if !isNull(aux.VolunteersNeeded) {
		n, err := ParseCount(aux.VolunteersNeeded)
		if err != nil {
			return err
		}
		p.VolunteersNeeded = n
	}

	extra, err := splitExtra(data, p)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	p.Extra = extra
	return nil
}

func (p Post) MarshalJSON() ([]byte, error) {
	type alias Post
	return mergeExtra(alias(p), p.Extra)
}

// Validate checks a post before it is stored
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if p.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", ErrInvalidInput)
	}
	if _, err := checkDeadlineRange(p.Deadline); err != nil {
		return err
	}
	return nil
}

// OwnedBy reports whether email is the post organizer
func (p *Post) OwnedBy(email string) bool {
	return email != "" && p.Organizer.Email == email
}

// PostPatch carries the fields supplied to an update. Nil fields are left untouched.
type PostPatch struct {
	PostTitle        *string
	Description      *string
	Category         *string
	Location         *string
	Thumbnail        *string
	Deadline         *time.Time
	VolunteersNeeded *int
	Extra            map[string]any
}

// keys a client may not change through an update
var immutablePostKeys = []string{"_id", "id", "createdAt", "organizer"}

// ParsePostPatch decodes an update body, stripping identifier and ownership
// keys and coercing deadline and volunteersNeeded.
func ParsePostPatch(data []byte) (*PostPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, k := range immutablePostKeys {
		delete(raw, k)
	}

	patch := &PostPatch{}
	strFields := map[string]**string{
		"postTitle":   &patch.PostTitle,
		"description": &patch.Description,
		"category":    &patch.Category,
		"location":    &patch.Location,
		"thumbnail":   &patch.Thumbnail,
	}
	for key, dst := range strFields {
		v, ok := raw[key]
		if !ok {
			continue
		}
		delete(raw, key)
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, fmt.Errorf("%w: %s must be a string", ErrInvalidInput, key)
		}
		*dst = &s
	}

	if v, ok := raw["deadline"]; ok {
		delete(raw, "deadline")
		deadline, err := ParseDeadline(v)
		if err != nil {
			return nil, err
		}
		patch.Deadline = &deadline
	}
	if v, ok := raw["volunteersNeeded"]; ok {
		delete(raw, "volunteersNeeded")
		n, err := ParseCount(v)
		if err != nil {
			return nil, err
		}
		patch.VolunteersNeeded = &n
	}

	for k, v := range raw {
		if err := checkExtraKey(k); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if patch.Extra == nil {
			patch.Extra = make(map[string]any)
		}
		patch.Extra[k] = val
	}

	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return patch, nil
}

// Validate checks the supplied fields
func (p *PostPatch) Validate() error {
	if p.PostTitle != nil && strings.TrimSpace(*p.PostTitle) == "" {
		return fmt.Errorf("%w: postTitle cannot be empty", ErrInvalidInput)
	}
	if p.VolunteersNeeded != nil && *p.VolunteersNeeded < 0 {
		return fmt.Errorf("%w: volunteersNeeded cannot be negative", ErrInvalidInput)
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing
func (p *PostPatch) IsEmpty() bool {
	return p.PostTitle == nil && p.Description == nil && p.Category == nil &&
		p.Location == nil && p.Thumbnail == nil && p.Deadline == nil &&
		p.VolunteersNeeded == nil && len(p.Extra) == 0
}

// PostSearchPattern escapes s for a case-insensitive LIKE substring match
func PostSearchPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
