package taskfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/vuet/vuet-client/pkg/models"
	"github.com/vuet/vuet-client/pkg/store"
)

type fakeLookup struct {
	entityCategories map[int]int
	categoryIDs      map[models.CategoryName]int
	all              []int
}

func (f fakeLookup) EntityCategory(id int) (int, bool) {
	c, ok := f.entityCategories[id]
	return c, ok
}

func (f fakeLookup) CategoryID(name models.CategoryName) (int, bool) {
	id, ok := f.categoryIDs[name]
	return id, ok
}

func (f fakeLookup) AllCategoryIDs() []int { return f.all }

func intPtr(v int) *int { return &v }

func newLookup() fakeLookup {
	return fakeLookup{
		entityCategories: map[int]int{100: 1, 200: 2},
		categoryIDs: map[models.CategoryName]int{
			models.CategoryPets:   1,
			models.CategoryTravel: 2,
			models.CategoryHome:   3,
		},
		all: []int{1, 2, 3},
	}
}

func plainTask() models.Task {
	return models.Task{
		ID:         1,
		Members:    []int{1},
		Entities:   []int{},
		Tags:       []string{},
		Type:       models.TaskTypeTask,
		IsComplete: false,
	}
}

func TestMatches_EmptyFiltersMatchEverything(t *testing.T) {
	lookup := newLookup()
	tasks := []models.Task{
		plainTask(),
		{ID: 2, Type: models.TaskTypeFlight, IsComplete: true},
		{ID: 3, Type: models.TaskTypeHotel, Members: []int{9}, Entities: []int{200}},
		{},
	}
	for _, task := range tasks {
		assert.True(t, Matches(task, Filters{}, lookup), "task %d", task.ID)
	}
	assert.True(t, Filters{}.Empty())
}

func TestMatches_UsersClauseFails(t *testing.T) {
	assert.False(t, Matches(plainTask(), Filters{Users: []int{2}}, newLookup()))
}

func TestMatches_UsersClause(t *testing.T) {
	task := plainTask()
	task.Members = []int{1, 5}

	assert.True(t, Matches(task, Filters{Users: []int{5}}, newLookup()))
	assert.True(t, Matches(task, Filters{Users: []int{9, 1}}, newLookup()))

	task.Members = nil
	assert.False(t, Matches(task, Filters{Users: []int{1}}, newLookup()))
}

func TestMatches_OtherExcludesTask(t *testing.T) {
	assert.False(t, Matches(plainTask(), Filters{TaskTypes: []models.TaskType{TypeOther}}, newLookup()))
}

func TestMatches_TaskTypes(t *testing.T) {
	lookup := newLookup()
	tests := []struct {
		name     string
		taskType models.TaskType
		filter   []models.TaskType
		want     bool
	}{
		{"exact match", models.TaskTypeFlight, []models.TaskType{models.TaskTypeFlight}, true},
		{"no match", models.TaskTypeFlight, []models.TaskType{models.TaskTypeTask}, false},
		{"other matches flight", models.TaskTypeFlight, []models.TaskType{TypeOther}, true},
		{"other matches due date", models.TaskTypeDueDate, []models.TaskType{TypeOther}, true},
		{"other excludes appointment", models.TaskTypeAppointment, []models.TaskType{TypeOther}, false},
		{"task with other and task", models.TaskTypeTask, []models.TaskType{TypeOther, models.TaskTypeTask}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := plainTask()
			task.Type = tt.taskType
			assert.Equal(t, tt.want, Matches(task, Filters{TaskTypes: tt.filter}, lookup))
		})
	}
}

func TestMatches_Completion(t *testing.T) {
	lookup := newLookup()
	complete := []CompletionState{CompletionComplete}
	incomplete := []CompletionState{CompletionIncomplete}
	both := []CompletionState{CompletionComplete, CompletionIncomplete}

	tests := []struct {
		name   string
		task   models.Task
		states []CompletionState
		want   bool
	}{
		{"incomplete flight without action", models.Task{Type: models.TaskTypeFlight}, incomplete, false},
		{"incomplete flight with action", models.Task{Type: models.TaskTypeFlight, ActionID: intPtr(3)}, incomplete, true},
		{"incomplete task", models.Task{Type: models.TaskTypeTask}, incomplete, true},
		{"incomplete due date", models.Task{Type: models.TaskTypeDueDate}, incomplete, true},
		{"incomplete appointment", models.Task{Type: models.TaskTypeAppointment}, incomplete, false},
		{"complete task not incomplete", models.Task{Type: models.TaskTypeTask, IsComplete: true}, incomplete, false},
		{"complete task", models.Task{Type: models.TaskTypeTask, IsComplete: true}, complete, true},
		{"complete flight", models.Task{Type: models.TaskTypeFlight, IsComplete: true}, complete, true},
		{"incomplete task not complete", models.Task{Type: models.TaskTypeTask}, complete, false},
		{"both states are vacuous", models.Task{Type: models.TaskTypeFlight}, both, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.task, Filters{CompletionStates: tt.states}, lookup))
		})
	}
}

func TestMatches_Categories(t *testing.T) {
	lookup := newLookup()
	tests := []struct {
		name       string
		task       models.Task
		categories []int
		want       bool
	}{
		{"entity in category", models.Task{Entities: []int{100}}, []int{1}, true},
		{"entity in other category", models.Task{Entities: []int{100}}, []int{2}, false},
		{"unknown entity", models.Task{Entities: []int{999}}, []int{1}, false},
		{"tag maps to category", models.Task{Tags: []string{"TRAVEL__FLIGHT"}}, []int{2}, true},
		{"tag maps elsewhere", models.Task{Tags: []string{"PETS__FEEDING"}}, []int{2}, false},
		{"unknown tag", models.Task{Tags: []string{"SOMETHING"}}, []int{1}, false},
		{"tag category not loaded", models.Task{Tags: []string{"GARDEN__WATERING"}}, []int{1}, false},
		{"all categories selected", models.Task{}, []int{3, 2, 1}, true},
		{"all but one selected", models.Task{}, []int{1, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.task, Filters{Categories: tt.categories}, lookup))
		})
	}
}

func TestMatches_NoKnownCategoriesCoversNothing(t *testing.T) {
	assert.False(t, Matches(models.Task{}, Filters{Categories: []int{1}}, fakeLookup{}))
}

func TestMatches_ClausesAreAnded(t *testing.T) {
	task := models.Task{Members: []int{1}, Entities: []int{100}, Type: models.TaskTypeTask}
	filters := Filters{
		Users:            []int{1},
		Categories:       []int{1},
		TaskTypes:        []models.TaskType{models.TaskTypeTask},
		CompletionStates: []CompletionState{CompletionIncomplete},
	}
	assert.True(t, Matches(task, filters, newLookup()))

	filters.Users = []int{2}
	assert.False(t, Matches(task, filters, newLookup()))
}

func TestApply_PreservesOrder(t *testing.T) {
	tasks := []models.Task{
		{ID: 3, Type: models.TaskTypeFlight},
		{ID: 1, Type: models.TaskTypeTask},
		{ID: 2, Type: models.TaskTypeHotel},
	}
	got := Apply(tasks, Filters{TaskTypes: []models.TaskType{TypeOther}}, newLookup())

	assert.Len(t, got, 2)
	assert.Equal(t, 3, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
}

func TestFromSnapshot(t *testing.T) {
	s := store.New(zap.NewNop(), nil)
	s.ReplaceCategories([]models.Category{
		{ID: 1, Name: models.CategoryPets},
		{ID: 2, Name: models.CategoryTravel},
	})
	s.ReplaceEntities([]models.Entity{{ID: 10, Category: 2}})
	lookup := FromSnapshot(s.Snapshot())

	cat, ok := lookup.EntityCategory(10)
	assert.True(t, ok)
	assert.Equal(t, 2, cat)

	_, ok = lookup.EntityCategory(11)
	assert.False(t, ok)

	id, ok := lookup.CategoryID(models.CategoryPets)
	assert.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Equal(t, []int{1, 2}, lookup.AllCategoryIDs())

	assert.True(t, Matches(models.Task{Entities: []int{10}}, Filters{Categories: []int{2}}, lookup))
	assert.True(t, Matches(models.Task{Tags: []string{"PETS__HEALTH"}}, Filters{Categories: []int{1}}, lookup))
}

func TestTagCategoriesAreKnown(t *testing.T) {
	for tag, name := range TagCategories {
		assert.True(t, name.Known(), "tag %s", tag)
	}
	name, ok := CategoryForTag("LAUNDRY__IRON")
	assert.True(t, ok)
	assert.Equal(t, models.CategoryLaundry, name)
}
