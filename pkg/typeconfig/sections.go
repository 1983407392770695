package typeconfig

import (
	"github.com/vuet/vuet-client/pkg/models"
)

// SectionFunc names the list section an entity is shown under. An empty
// name means the list is not sectioned.
type SectionFunc func(models.Entity) string

func noSection(models.Entity) string { return "" }

func byMonthYear(name string) SectionFunc {
	return func(e models.Entity) string {
		t, ok := e.DateField(name)
		if !ok {
			return ""
		}
		return t.Format("January 2006")
	}
}

func byMonth(name string) SectionFunc {
	return func(e models.Entity) string {
		t, ok := e.DateField(name)
		if !ok {
			return ""
		}
		return t.Month().String()
	}
}

func byDatetimeMonthYear(name string) SectionFunc {
	return func(e models.Entity) string {
		v := e.Field(name)
		if len(v) < len(models.DateLayout) {
			return ""
		}
		t, ok := models.ParseDate(v[:len(models.DateLayout)])
		if !ok {
			return ""
		}
		return t.Format("January 2006")
	}
}

// SectionNames is the section-name table, keyed by entity kind.
var SectionNames = NewTable[models.EntityKind, SectionFunc](noSection, map[models.EntityKind]SectionFunc{
	models.EntityTrip:        byMonthYear("start_date"),
	models.EntityHoliday:     byMonthYear("start_date"),
	models.EntityEvent:       byDatetimeMonthYear("start_datetime"),
	models.EntityAppointment: byDatetimeMonthYear("start_datetime"),
	models.EntityBirthday:    byMonth("start_date"),
	models.EntityAnniversary: byMonth("start_date"),
})

// Section is a titled run of entities.
type Section struct {
	Title    string
	Entities []models.Entity
}

// GroupSections splits an ordered slice into sections named by kind's
// section function. Sections appear in first-seen order and keep the input
// order within each section.
func GroupSections(kind models.EntityKind, entities []models.Entity) []Section {
	name := SectionNames.Lookup(kind)
	var out []Section
	index := map[string]int{}
	for _, e := range entities {
		title := name(e)
		i, ok := index[title]
		if !ok {
			i = len(out)
			index[title] = i
			out = append(out, Section{Title: title})
		}
		out[i].Entities = append(out[i].Entities, e)
	}
	return out
}
