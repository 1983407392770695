package store

import (
	"github.com/vuet/vuet-client/pkg/models"
	"github.com/vuet/vuet-client/pkg/normalize"
)

func alertTask(a models.Alert) []int               { return normalize.One(a.Task) }
func actionAlertAction(a models.ActionAlert) []int { return normalize.One(a.Action) }
func actionTask(a models.TaskAction) []int         { return normalize.One(a.Task) }
func taskAction(t models.Task) []int               { return normalize.Optional(t.ActionID) }
func taskEntities(t models.Task) []int             { return normalize.Many(t.Entities) }
func taskMembers(t models.Task) []int              { return normalize.Many(t.Members) }
func entityCategory(e models.Entity) []int         { return normalize.One(e.Category) }
func entityParent(e models.Entity) []int           { return normalize.Optional(e.Parent) }
func referenceGroup(r models.Reference) []int      { return normalize.One(r.Group) }
func groupEntities(g models.ReferenceGroup) []int  { return normalize.Many(g.Entities) }
func yearSchool(y models.SchoolYear) []int         { return normalize.One(y.School) }
func termYear(t models.SchoolTerm) []int           { return normalize.One(t.SchoolYear) }
func breakYear(b models.SchoolBreak) []int         { return normalize.One(b.SchoolYear) }
