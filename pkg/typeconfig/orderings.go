package typeconfig

import (
	"slices"
	"strings"

	"github.com/vuet/vuet-client/pkg/models"
)

// Comparator returns -1 when a sorts before b and 1 otherwise. It never
// returns 0, so ties keep their input order only under a stable sort.
type Comparator func(a, b models.Entity) int

func before(less bool) int {
	if less {
		return -1
	}
	return 1
}

func byName(a, b models.Entity) int {
	return before(strings.ToLower(a.Name) < strings.ToLower(b.Name))
}

// byField orders by a string attribute. ISO dates and datetimes sort
// correctly as strings; entities missing the attribute go last.
func byField(name string) Comparator {
	return func(a, b models.Entity) int {
		av, bv := a.Field(name), b.Field(name)
		switch {
		case av == "":
			return 1
		case bv == "":
			return -1
		}
		return before(av < bv)
	}
}

// byMonthDay orders by the month and day of a date attribute, ignoring the
// year, so birthdays list in calendar order.
func byMonthDay(name string) Comparator {
	return func(a, b models.Entity) int {
		at, aok := a.DateField(name)
		bt, bok := b.DateField(name)
		switch {
		case !aok:
			return 1
		case !bok:
			return -1
		}
		if at.Month() != bt.Month() {
			return before(at.Month() < bt.Month())
		}
		return before(at.Day() < bt.Day())
	}
}

// Orderings is the display comparator table, keyed by entity kind.
var Orderings = NewTable[models.EntityKind, Comparator](byName, map[models.EntityKind]Comparator{
	models.EntityTrip:          byField("start_date"),
	models.EntityHoliday:       byField("start_date"),
	models.EntityFlight:        byField("start_datetime"),
	models.EntityHotel:         byField("start_datetime"),
	models.EntityRental:        byField("start_datetime"),
	models.EntityTrainBusFerry: byField("start_datetime"),
	models.EntityEvent:         byField("start_datetime"),
	models.EntityAppointment:   byField("start_datetime"),
	models.EntityBirthday:      byMonthDay("start_date"),
	models.EntityAnniversary:   byMonthDay("start_date"),
})

// SortEntities returns entities sorted for display with kind's comparator.
// The input is not modified.
func SortEntities(kind models.EntityKind, entities []models.Entity) []models.Entity {
	cmp := Orderings.Lookup(kind)
	out := slices.Clone(entities)
	slices.SortStableFunc(out, func(a, b models.Entity) int { return cmp(a, b) })
	return out
}
