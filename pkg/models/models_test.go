package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntity_UnmarshalKeepsTypeSpecificFields(t *testing.T) {
	body := `{
		"id": 12,
		"name": "Rex",
		"resourcetype": "Pet",
		"category": 1,
		"parent": null,
		"members": [1, 2],
		"hidden": false,
		"created_at": "2024-03-01T09:30:00Z",
		"dob": "2019-07-04",
		"microchip_number": 981000,
		"school_attended": "44"
	}`

	var e Entity
	require.NoError(t, json.Unmarshal([]byte(body), &e))

	assert.Equal(t, 12, e.ID)
	assert.Equal(t, EntityPet, e.ResourceType)
	assert.Nil(t, e.Parent)
	assert.Equal(t, []int{1, 2}, e.Members)
	assert.Equal(t, "2019-07-04", e.Field("dob"))
	assert.Equal(t, "981000", e.Field("microchip_number"))
	assert.Equal(t, "", e.Field("missing"))

	school, ok := e.IntField("school_attended")
	assert.True(t, ok)
	assert.Equal(t, 44, school)

	dob, ok := e.DateField("dob")
	require.True(t, ok)
	assert.Equal(t, time.July, dob.Month())
}

func TestEntity_MarshalRoundTripsAttributes(t *testing.T) {
	e := Entity{ID: 3, Name: "Paris", ResourceType: EntityTrip, Category: 5}.
		WithField("start_date", "2024-08-01")

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded Entity
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Paris", decoded.Name)
	assert.Equal(t, "2024-08-01", decoded.Field("start_date"))
}

func TestEntity_WithFieldDoesNotMutateOriginal(t *testing.T) {
	base := Entity{ID: 1}.WithField("dob", "2000-01-01")
	changed := base.WithField("dob", "2001-01-01")

	assert.Equal(t, "2000-01-01", base.Field("dob"))
	assert.Equal(t, "2001-01-01", changed.Field("dob"))
}

func TestTask_Unmarshal(t *testing.T) {
	body := `{"id": 5, "title": "Vet", "type": "APPOINTMENT", "members": [1], "entities": [12],
		"tags": [], "is_complete": false, "action_id": 9, "created_at": "2024-01-01T00:00:00Z"}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(body), &task))
	assert.Equal(t, TaskTypeAppointment, task.Type)
	require.True(t, task.HasAction())
	assert.Equal(t, 9, *task.ActionID)
}

func TestKinds(t *testing.T) {
	assert.True(t, ValidKind(KindTask))
	assert.False(t, ValidKind(Kind("nope")))
	assert.True(t, EntityPet.Known())
	assert.False(t, EntityKind("Spaceship").Known())
	assert.True(t, CategoryTravel.Known())
	assert.False(t, CategoryName("MUSIC").Known())
	assert.Len(t, AllCategoryNames(), 12)
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-02-29")
	require.True(t, ok)
	assert.Equal(t, 29, d.Day())

	_, ok = ParseDate("")
	assert.False(t, ok)
	_, ok = ParseDate("29/02/2024")
	assert.False(t, ok)
}

func TestMember_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Member{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", Member{FirstName: "Ada"}.FullName())
}
