package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_UnmarshalCoercion(t *testing.T) {
	body := `{
		"_id": "ignored-by-service",
		"postTitle": "Beach cleanup",
		"description": "Bring gloves",
		"deadline": "2025-03-01",
		"volunteersNeeded": "5",
		"organizer": {"name": "Org", "email": "org@x.com"},
		"requirements": ["gloves", "hat"],
		"remote": false
	}`

	var p Post
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	assert.Equal(t, "Beach cleanup", p.PostTitle)
	assert.Equal(t, 5, p.VolunteersNeeded)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), p.Deadline)
	assert.Equal(t, "org@x.com", p.Organizer.Email)
	assert.Equal(t, map[string]any{"requirements": []any{"gloves", "hat"}, "remote": false}, p.Extra)
	assert.NoError(t, p.Validate())
	assert.True(t, p.OwnedBy("org@x.com"))
	assert.False(t, p.OwnedBy(""))
}

func TestPost_MarshalKeepsExtra(t *testing.T) {
	p := Post{
		ID:               "p1",
		PostTitle:        "Food bank",
		VolunteersNeeded: 3,
		Deadline:         time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Organizer:        Organizer{Email: "org@x.com"},
		Extra:            map[string]any{"shift": "morning", "postTitle": "shadowed"},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "p1", out["_id"])
	assert.Equal(t, "Food bank", out["postTitle"])
	assert.Equal(t, "morning", out["shift"])
	assert.EqualValues(t, 3, out["volunteersNeeded"])
	assert.Equal(t, "2025-01-02T00:00:00Z", out["deadline"])
}

func TestPost_Validate(t *testing.T) {
	base := func() Post {
		return Post{
			PostTitle:        "t",
			Deadline:         time.Now(),
			Organizer:        Organizer{Email: "org@x.com"},
			VolunteersNeeded: 1,
		}
	}

	t.Run("Missing title", func(t *testing.T) {
		p := base()
		p.PostTitle = ""
		assert.ErrorIs(t, p.Validate(), ErrInvalidInput)
	})
	t.Run("Bad organizer email", func(t *testing.T) {
		p := base()
		p.Organizer.Email = "nope"
		assert.ErrorIs(t, p.Validate(), ErrInvalidInput)
	})
	t.Run("Negative counter", func(t *testing.T) {
		p := base()
		p.VolunteersNeeded = -1
		assert.ErrorIs(t, p.Validate(), ErrInvalidInput)
	})
	t.Run("Missing deadline", func(t *testing.T) {
		p := base()
		p.Deadline = time.Time{}
		assert.ErrorIs(t, p.Validate(), ErrInvalidInput)
	})
}

func TestPost_UnmarshalRejectsBadDeadline(t *testing.T) {
	var p Post
	err := json.Unmarshal([]byte(`{"postTitle":"x","deadline":"someday"}`), &p)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPost_UnmarshalRejectsDeadlineOutOfRange(t *testing.T) {
	for _, deadline := range []string{`1e15`, `-1e15`, `"10000-01-01"`} {
		var p Post
		err := json.Unmarshal([]byte(`{"postTitle":"x","volunteersNeeded":1,"deadline":`+deadline+`}`), &p)
		assert.ErrorIs(t, err, ErrInvalidInput, deadline)
	}
}

func TestPost_ValidateRejectsDeadlineOutOfRange(t *testing.T) {
	p := Post{
		PostTitle:        "Far future",
		Deadline:         time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC),
		Organizer:        Organizer{Email: "org@x.com"},
		VolunteersNeeded: 1,
	}
	assert.ErrorIs(t, p.Validate(), ErrInvalidInput)

	_, err := json.Marshal(p)
	assert.Error(t, err)
}

func TestPost_UnmarshalRejectsPathLikeKeys(t *testing.T) {
	for _, body := range []string{
		`{"postTitle":"x","organizer.email":"victim@x.com"}`,
		`{"postTitle":"x","$where":"1"}`,
	} {
		var p Post
		assert.ErrorIs(t, json.Unmarshal([]byte(body), &p), ErrInvalidInput, body)
	}
}

func TestParsePostPatch(t *testing.T) {
	body := `{
		"_id": "p1",
		"id": "p1",
		"organizer": {"email": "thief@x.com"},
		"createdAt": "2020-01-01T00:00:00Z",
		"postTitle": "Renamed",
		"volunteersNeeded": "7",
		"deadline": 1735689600000,
		"shift": "evening"
	}`

	patch, err := ParsePostPatch([]byte(body))
	require.NoError(t, err)

	require.NotNil(t, patch.PostTitle)
	assert.Equal(t, "Renamed", *patch.PostTitle)
	require.NotNil(t, patch.VolunteersNeeded)
	assert.Equal(t, 7, *patch.VolunteersNeeded)
	require.NotNil(t, patch.Deadline)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *patch.Deadline)
	assert.Nil(t, patch.Description)
	assert.Equal(t, map[string]any{"shift": "evening"}, patch.Extra)
	assert.False(t, patch.IsEmpty())
}

func TestParsePostPatch_Invalid(t *testing.T) {
	tests := map[string]string{
		"not an object":    `[1,2]`,
		"empty title":      `{"postTitle": "  "}`,
		"negative counter": `{"volunteersNeeded": -2}`,
		"bad counter":      `{"volunteersNeeded": "many"}`,
		"title not string": `{"postTitle": 12}`,
		"dotted key":       `{"organizer.email": "victim@x.com"}`,
		"operator key":     `{"$inc": {"volunteersNeeded": 5}}`,
		"far deadline":     `{"deadline": 1e15}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePostPatch([]byte(body))
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestParsePostPatch_OnlyImmutableKeys(t *testing.T) {
	patch, err := ParsePostPatch([]byte(`{"_id":"x","organizer":{"email":"a@b.c"}}`))
	require.NoError(t, err)
	assert.True(t, patch.IsEmpty())
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{`3`, 3, true},
		{`3.9`, 3, true},
		{`"12"`, 12, true},
		{`" 8 people"`, 8, true},
		{`"-4"`, -4, true},
		{`"abc"`, 0, false},
		{`true`, 0, false},
	}
	for _, tt := range tests {
		got, err := ParseCount(json.RawMessage(tt.raw))
		if tt.ok {
			assert.NoError(t, err, tt.raw)
			assert.Equal(t, tt.want, got, tt.raw)
		} else {
			assert.ErrorIs(t, err, ErrInvalidInput, tt.raw)
		}
	}
}

func TestParseDeadline(t *testing.T) {
	got, err := ParseDeadline(json.RawMessage(`"2025-06-01T10:30:00+02:00"`))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC), got)

	got, err = ParseDeadline(json.RawMessage(`"2025-06-01T10:30"`))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), got)

	got, err = ParseDeadline(json.RawMessage(`253402300799999`))
	require.NoError(t, err)
	assert.Equal(t, 9999, got.Year())

	for _, raw := range []string{`{}`, `1e15`, `-1e15`, `253402300800000`} {
		_, err = ParseDeadline(json.RawMessage(raw))
		assert.ErrorIs(t, err, ErrInvalidInput, raw)
	}
}

func TestPostSearchPattern(t *testing.T) {
	assert.Equal(t, "%abc%", PostSearchPattern("abc"))
	assert.Equal(t, `%50\% off\_now%`, PostSearchPattern("50% off_now"))
}
