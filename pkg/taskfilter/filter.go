// Package taskfilter implements the composite predicate used by task lists
// and calendars to narrow tasks by member, category, type and completion.
package taskfilter

import (
	"slices"

	"github.com/vuet/vuet-client/pkg/models"
	"github.com/vuet/vuet-client/pkg/selectors"
	"github.com/vuet/vuet-client/pkg/store"
)

// CompletionState is one of the completion filter values.
type CompletionState string

const (
	CompletionComplete   CompletionState = "COMPLETE"
	CompletionIncomplete CompletionState = "INCOMPLETE"
)

// TypeOther selects every task type except TASK and APPOINTMENT.
const TypeOther models.TaskType = "OTHER"

// Filters is the set of user-selected task filters. Each field is ignored
// when empty.
type Filters struct {
	Users            []int             `json:"users" yaml:"users"`
	Categories       []int             `json:"categories" yaml:"categories"`
	TaskTypes        []models.TaskType `json:"task_types" yaml:"task_types"`
	CompletionStates []CompletionState `json:"completion_states" yaml:"completion_states"`
}

// Empty reports whether no filter is set.
func (f Filters) Empty() bool {
	return len(f.Users) == 0 && len(f.Categories) == 0 &&
		len(f.TaskTypes) == 0 && len(f.CompletionStates) == 0
}

// Lookup resolves the category data the categories clause needs.
type Lookup interface {
	EntityCategory(entityID int) (int, bool)
	CategoryID(name models.CategoryName) (int, bool)
	AllCategoryIDs() []int
}

type snapshotLookup struct {
	snap *store.Snapshot
}

var _ Lookup = (*snapshotLookup)(nil)

// FromSnapshot returns a Lookup backed by a store snapshot.
func FromSnapshot(snap *store.Snapshot) Lookup {
	return &snapshotLookup{snap: snap}
}

func (l *snapshotLookup) EntityCategory(entityID int) (int, bool) {
	e, ok := l.snap.Entities.Get(entityID)
	if !ok {
		return 0, false
	}
	return e.Category, true
}

func (l *snapshotLookup) CategoryID(name models.CategoryName) (int, bool) {
	c, ok := selectors.CategoryByName(l.snap, name)
	if !ok {
		return 0, false
	}
	return c.ID, true
}

func (l *snapshotLookup) AllCategoryIDs() []int {
	return l.snap.Categories.IDs
}

// Matches reports whether task passes every non-empty filter.
func Matches(task models.Task, filters Filters, lookup Lookup) bool {
	return matchesUsers(task, filters.Users) &&
		matchesCategories(task, filters.Categories, lookup) &&
		matchesTaskTypes(task, filters.TaskTypes) &&
		matchesCompletion(task, filters.CompletionStates)
}

// Apply returns the tasks that match filters, preserving order.
func Apply(tasks []models.Task, filters Filters, lookup Lookup) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if Matches(t, filters, lookup) {
			out = append(out, t)
		}
	}
	return out
}

func matchesUsers(task models.Task, users []int) bool {
	if len(users) == 0 {
		return true
	}
	for _, m := range task.Members {
		if slices.Contains(users, m) {
			return true
		}
	}
	return false
}

func matchesCategories(task models.Task, categories []int, lookup Lookup) bool {
	if len(categories) == 0 {
		return true
	}
	if coversAll(categories, lookup.AllCategoryIDs()) {
		return true
	}
	for _, entityID := range task.Entities {
		if cat, ok := lookup.EntityCategory(entityID); ok && slices.Contains(categories, cat) {
			return true
		}
	}
	for _, tag := range task.Tags {
		name, ok := CategoryForTag(tag)
		if !ok {
			continue
		}
		if cat, ok := lookup.CategoryID(name); ok && slices.Contains(categories, cat) {
			return true
		}
	}
	return false
}

// coversAll reports whether selected contains every known category. With no
// known categories nothing is covered.
func coversAll(selected, known []int) bool {
	if len(known) == 0 {
		return false
	}
	for _, id := range known {
		if !slices.Contains(selected, id) {
			return false
		}
	}
	return true
}

func matchesTaskTypes(task models.Task, types []models.TaskType) bool {
	if len(types) == 0 {
		return true
	}
	if slices.Contains(types, task.Type) {
		return true
	}
	return slices.Contains(types, TypeOther) &&
		task.Type != models.TaskTypeTask && task.Type != models.TaskTypeAppointment
}

func matchesCompletion(task models.Task, states []CompletionState) bool {
	if len(states) == 0 {
		return true
	}
	wantComplete := slices.Contains(states, CompletionComplete)
	wantIncomplete := slices.Contains(states, CompletionIncomplete)
	if wantComplete && wantIncomplete {
		return true
	}
	if wantComplete && task.IsComplete {
		return true
	}
	// Only actionable tasks count as incomplete; an incomplete flight or
	// appointment without an action is never listed here.
	return wantIncomplete && !task.IsComplete &&
		(task.HasAction() || task.Type == models.TaskTypeTask || task.Type == models.TaskTypeDueDate)
}
