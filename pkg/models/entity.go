package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vuet/vuet-client/pkg/jsonutil"
)

// EntityKind is the `resourcetype` discriminant of an entity.
type EntityKind string

const (
	EntityCar             EntityKind = "Car"
	EntityBoat            EntityKind = "Boat"
	EntityPublicTransport EntityKind = "PublicTransport"
	EntityPet             EntityKind = "Pet"
	EntityVet             EntityKind = "Vet"
	EntityWalker          EntityKind = "Walker"
	EntityGroomer         EntityKind = "Groomer"
	EntitySitter          EntityKind = "Sitter"
	EntityInsurance       EntityKind = "Insurance"
	EntityTrip            EntityKind = "Trip"
	EntityFlight          EntityKind = "Flight"
	EntityHotel           EntityKind = "Hotel"
	EntityRental          EntityKind = "Rental"
	EntityTrainBusFerry   EntityKind = "TrainBusFerry"
	EntityEvent           EntityKind = "Event"
	EntityHobby           EntityKind = "Hobby"
	EntityHoliday         EntityKind = "Holiday"
	EntityBirthday        EntityKind = "Birthday"
	EntityAnniversary     EntityKind = "Anniversary"
	EntityPatient         EntityKind = "Patient"
	EntityAppointment     EntityKind = "Appointment"
	EntitySchool          EntityKind = "School"
	EntityStudent         EntityKind = "Student"
	EntityAcademicPlan    EntityKind = "AcademicPlan"
	EntityEmployee        EntityKind = "Employee"
	EntityGarden          EntityKind = "Garden"
	EntityHome            EntityKind = "Home"
	EntityFood            EntityKind = "Food"
	EntityFinance         EntityKind = "Finance"
	EntityLaundry         EntityKind = "Laundry"
	EntitySocialMedia     EntityKind = "SocialMedia"
	EntitySocialPlan      EntityKind = "SocialPlan"
	EntitySubscription    EntityKind = "Subscription"
)

var allEntityKinds = []EntityKind{
	EntityCar, EntityBoat, EntityPublicTransport,
	EntityPet, EntityVet, EntityWalker, EntityGroomer, EntitySitter, EntityInsurance,
	EntityTrip, EntityFlight, EntityHotel, EntityRental, EntityTrainBusFerry,
	EntityEvent, EntityHobby, EntityHoliday, EntityBirthday, EntityAnniversary,
	EntityPatient, EntityAppointment,
	EntitySchool, EntityStudent, EntityAcademicPlan,
	EntityEmployee, EntityGarden, EntityHome, EntityFood, EntityFinance, EntityLaundry,
	EntitySocialMedia, EntitySocialPlan, EntitySubscription,
}

// AllEntityKinds returns the closed set of entity kinds.
func AllEntityKinds() []EntityKind {
	return append([]EntityKind(nil), allEntityKinds...)
}

// Known reports whether k is a recognised entity kind.
func (k EntityKind) Known() bool {
	for _, known := range allEntityKinds {
		if known == k {
			return true
		}
	}
	return false
}

// Entity is a thing the family tracks: a pet, a car, a trip, a school.
// Type-specific attributes (dob, start_date, registration, ...) are retained
// verbatim and read through Field.
type Entity struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	ResourceType EntityKind `json:"resourcetype"`
	Category     int        `json:"category"`
	Parent       *int       `json:"parent"`
	Members      []int      `json:"members"`
	Hidden       bool       `json:"hidden"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`

	fields map[string]json.RawMessage
}

type entityJSON Entity

func (e Entity) RecordID() int      { return e.ID }
func (e Entity) Created() time.Time { return e.CreatedAt }

// Field returns a type-specific attribute rendered as a string, or "" when
// the attribute is absent or null.
func (e Entity) Field(name string) string {
	raw, ok := e.fields[name]
	if !ok {
		return ""
	}
	return jsonutil.FlexibleStringValue(raw)
}

// IntField reads an integer attribute, typically a reference to another
// entity (a Student's school_attended, for instance).
func (e Entity) IntField(name string) (int, bool) {
	return jsonutil.FlexibleIntValue(e.fields[name])
}

// DateField parses a date-only attribute such as dob or start_date.
func (e Entity) DateField(name string) (time.Time, bool) {
	return ParseDate(e.Field(name))
}

// WithField returns a copy of e with a type-specific attribute set.
func (e Entity) WithField(name string, value any) Entity {
	raw, err := json.Marshal(value)
	if err != nil {
		panic(fmt.Sprintf("models: encode entity field %q: %v", name, err))
	}
	fields := make(map[string]json.RawMessage, len(e.fields)+1)
	for k, v := range e.fields {
		fields[k] = v
	}
	fields[name] = raw
	e.fields = fields
	return e
}

// UnmarshalJSON decodes the common fields and keeps every attribute for Field.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var common entityJSON
	if err := json.Unmarshal(data, &common); err != nil {
		return fmt.Errorf("failed to decode entity: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to decode entity attributes: %w", err)
	}
	*e = Entity(common)
	e.fields = fields
	return nil
}

// MarshalJSON writes the retained attributes with the common fields on top.
func (e Entity) MarshalJSON() ([]byte, error) {
	common, err := json.Marshal(entityJSON(e))
	if err != nil {
		return nil, err
	}
	if len(e.fields) == 0 {
		return common, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(common, &merged); err != nil {
		return nil, err
	}
	for k, v := range e.fields {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}
