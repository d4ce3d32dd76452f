package mongodb

import (
	"testing"
	"time"

	"volunteer-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestTitleFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, titleFilter(""))
	assert.Equal(t,
		bson.M{"postTitle": bson.M{"$regex": `c\+\+ \(beginner\)`, "$options": "i"}},
		titleFilter("c++ (beginner)"))
}

func TestReserveFilter(t *testing.T) {
	assert.Equal(t, bson.M{"_id": "p1", "volunteersNeeded": bson.M{"$gt": 0}}, reserveFilter("p1"))
	assert.Equal(t, bson.M{"$inc": bson.M{"volunteersNeeded": -1}}, adjustSlots(-1))
}

func TestDeadlineBetween(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(48 * time.Hour)
	assert.Equal(t, bson.M{"deadline": bson.M{"$gte": from, "$lt": to}}, deadlineBetween(from, to))
}

func TestPatchUpdate(t *testing.T) {
	title := "Renamed"
	needed := 0
	update := patchUpdate(&domain.PostPatch{
		PostTitle:        &title,
		VolunteersNeeded: &needed,
		Extra:            map[string]any{"shift": "pm"},
	})
	assert.Equal(t, bson.M{"$set": bson.M{
		"postTitle":        "Renamed",
		"volunteersNeeded": 0,
		"shift":            "pm",
	}}, update)
}

func TestPostBSONKeepsExtraAtTopLevel(t *testing.T) {
	p := domain.Post{
		ID:               "p1",
		PostTitle:        "Cleanup",
		Deadline:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Organizer:        domain.Organizer{Name: "Org", Email: "org@x.com"},
		VolunteersNeeded: 2,
		Extra:            map[string]any{"shift": "am"},
	}

	data, err := bson.Marshal(p)
	require.NoError(t, err)

	var raw bson.M
	require.NoError(t, bson.Unmarshal(data, &raw))
	assert.Equal(t, "p1", raw["_id"])
	assert.Equal(t, "am", raw["shift"])

	var back domain.Post
	require.NoError(t, bson.Unmarshal(data, &back))
	assert.Equal(t, "am", back.Extra["shift"])
	assert.Equal(t, 2, back.VolunteersNeeded)
	assert.Equal(t, "org@x.com", back.Organizer.Email)
	assert.True(t, p.Deadline.Equal(back.Deadline))
}
