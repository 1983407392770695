package selectors

import (
	"sort"

	"github.com/vuet/vuet-client/pkg/models"
	"github.com/vuet/vuet-client/pkg/store"
)

// ChildEntities returns the entities whose parent is entityID.
func ChildEntities(snap *store.Snapshot, entityID int) []models.Entity {
	return snap.Entities.Lookup(snap.EntitiesByParent.Get(entityID))
}

// EntityDescendants returns the ids of every entity below entityID in the
// parent tree, breadth first. Parent links are weak references, so cycles in
// the data are tolerated and each id is reported once.
func EntityDescendants(snap *store.Snapshot, entityID int) []int {
	seen := map[int]struct{}{entityID: {}}
	queue := []int{entityID}
	out := []int{}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range snap.EntitiesByParent.Get(current) {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

// EntitiesForCategory returns every entity in a category.
func EntitiesForCategory(snap *store.Snapshot, categoryID int) []models.Entity {
	return snap.Entities.Lookup(snap.EntitiesByCategory.Get(categoryID))
}

// TopLevelEntitiesForCategory returns the category's entities that are not
// shown under a parent. An entity whose parent is not cached is treated as
// top level.
func TopLevelEntitiesForCategory(snap *store.Snapshot, categoryID int) []models.Entity {
	out := []models.Entity{}
	for _, e := range EntitiesForCategory(snap, categoryID) {
		if e.Parent != nil && snap.Entities.Contains(*e.Parent) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// EntitiesOfKind returns the entities with the given resourcetype.
func EntitiesOfKind(snap *store.Snapshot, kind models.EntityKind) []models.Entity {
	return ValuesWhere(snap.Entities, func(e models.Entity) bool { return e.ResourceType == kind })
}

// StudentsForSchool returns the Student entities attending a School entity.
func StudentsForSchool(snap *store.Snapshot, schoolID int) []models.Entity {
	return ValuesWhere(snap.Entities, func(e models.Entity) bool {
		if e.ResourceType != models.EntityStudent {
			return false
		}
		school, ok := e.IntField("school_attended")
		return ok && school == schoolID
	})
}

// ReferencesForEntity returns the references of every group linked to an
// entity, each reference once, in group then reference order.
func ReferencesForEntity(snap *store.Snapshot, entityID int) []models.Reference {
	seen := map[int]struct{}{}
	out := []models.Reference{}
	for _, groupID := range snap.ReferenceGroupsByEntity.Get(entityID) {
		for _, ref := range snap.References.Lookup(snap.ReferencesByGroup.Get(groupID)) {
			if _, ok := seen[ref.ID]; ok {
				continue
			}
			seen[ref.ID] = struct{}{}
			out = append(out, ref)
		}
	}
	return out
}

// CategoryByName finds the category record for a category name.
func CategoryByName(snap *store.Snapshot, name models.CategoryName) (models.Category, bool) {
	for _, id := range snap.Categories.IDs {
		if c := snap.Categories.ByID[id]; c.Name == name {
			return c, true
		}
	}
	return models.Category{}, false
}

// MemberName returns the member's full name, or "" when the member is not cached.
func MemberName(snap *store.Snapshot, memberID int) string {
	m, ok := snap.Members.Get(memberID)
	if !ok {
		return ""
	}
	return m.FullName()
}

// SchoolYearsForSchool returns a school's years ordered by start date.
func SchoolYearsForSchool(snap *store.Snapshot, schoolID int) []models.SchoolYear {
	years := snap.SchoolYears.Lookup(snap.SchoolYearsBySchool.Get(schoolID))
	sort.SliceStable(years, func(i, j int) bool { return years[i].StartDate < years[j].StartDate })
	return years
}

// TermsForSchoolYear returns a school year's terms ordered by start date.
func TermsForSchoolYear(snap *store.Snapshot, yearID int) []models.SchoolTerm {
	terms := snap.SchoolTerms.Lookup(snap.SchoolTermsByYear.Get(yearID))
	sort.SliceStable(terms, func(i, j int) bool { return terms[i].StartDate < terms[j].StartDate })
	return terms
}

// BreaksForSchoolYear returns a school year's breaks ordered by start date.
func BreaksForSchoolYear(snap *store.Snapshot, yearID int) []models.SchoolBreak {
	breaks := snap.SchoolBreaks.Lookup(snap.SchoolBreaksByYear.Get(yearID))
	sort.SliceStable(breaks, func(i, j int) bool { return breaks[i].StartDate < breaks[j].StartDate })
	return breaks
}
