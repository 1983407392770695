// Package store holds the process-wide normalized cache of API records.
package store

import (
	"github.com/vuet/vuet-client/pkg/models"
	"github.com/vuet/vuet-client/pkg/normalize"
)

// Snapshot is an immutable view of every cached collection and the indexes
// derived from them. The store never mutates a Snapshot after publishing it;
// callers must treat the collections and indexes as read-only.
type Snapshot struct {
	Version uint64

	Tasks           normalize.Collection[models.Task]
	Entities        normalize.Collection[models.Entity]
	Categories      normalize.Collection[models.Category]
	Alerts          normalize.Collection[models.Alert]
	ActionAlerts    normalize.Collection[models.ActionAlert]
	TaskActions     normalize.Collection[models.TaskAction]
	References      normalize.Collection[models.Reference]
	ReferenceGroups normalize.Collection[models.ReferenceGroup]
	SchoolYears     normalize.Collection[models.SchoolYear]
	SchoolTerms     normalize.Collection[models.SchoolTerm]
	SchoolBreaks    normalize.Collection[models.SchoolBreak]
	Routines        normalize.Collection[models.Routine]
	Members         normalize.Collection[models.Member]

	AlertsByTask            normalize.Index // task id → alert ids
	ActionAlertsByAction    normalize.Index // task action id → action alert ids
	ActionsByTask           normalize.Index // task id → task action ids
	TasksByAction           normalize.Index // task action id → task ids
	TasksByEntity           normalize.Index // entity id → task ids
	TasksByMember           normalize.Index // member id → task ids
	EntitiesByCategory      normalize.Index // category id → entity ids
	EntitiesByParent        normalize.Index // parent entity id → child entity ids
	ReferencesByGroup       normalize.Index // reference group id → reference ids
	ReferenceGroupsByEntity normalize.Index // entity id → reference group ids
	SchoolYearsBySchool     normalize.Index // school entity id → school year ids
	SchoolTermsByYear       normalize.Index // school year id → term ids
	SchoolBreaksByYear      normalize.Index // school year id → break ids
}

func emptySnapshot(version uint64) *Snapshot {
	return &Snapshot{
		Version:         version,
		Tasks:           normalize.Empty[models.Task](),
		Entities:        normalize.Empty[models.Entity](),
		Categories:      normalize.Empty[models.Category](),
		Alerts:          normalize.Empty[models.Alert](),
		ActionAlerts:    normalize.Empty[models.ActionAlert](),
		TaskActions:     normalize.Empty[models.TaskAction](),
		References:      normalize.Empty[models.Reference](),
		ReferenceGroups: normalize.Empty[models.ReferenceGroup](),
		SchoolYears:     normalize.Empty[models.SchoolYear](),
		SchoolTerms:     normalize.Empty[models.SchoolTerm](),
		SchoolBreaks:    normalize.Empty[models.SchoolBreak](),
		Routines:        normalize.Empty[models.Routine](),
		Members:         normalize.Empty[models.Member](),

		AlertsByTask:            normalize.Index{},
		ActionAlertsByAction:    normalize.Index{},
		ActionsByTask:           normalize.Index{},
		TasksByAction:           normalize.Index{},
		TasksByEntity:           normalize.Index{},
		TasksByMember:           normalize.Index{},
		EntitiesByCategory:      normalize.Index{},
		EntitiesByParent:        normalize.Index{},
		ReferencesByGroup:       normalize.Index{},
		ReferenceGroupsByEntity: normalize.Index{},
		SchoolYearsBySchool:     normalize.Index{},
		SchoolTermsByYear:       normalize.Index{},
		SchoolBreaksByYear:      normalize.Index{},
	}
}

// Count returns the number of cached records of kind, or 0 for an unknown kind.
func (s *Snapshot) Count(kind models.Kind) int {
	switch kind {
	case models.KindTask:
		return s.Tasks.Len()
	case models.KindEntity:
		return s.Entities.Len()
	case models.KindCategory:
		return s.Categories.Len()
	case models.KindAlert:
		return s.Alerts.Len()
	case models.KindActionAlert:
		return s.ActionAlerts.Len()
	case models.KindTaskAction:
		return s.TaskActions.Len()
	case models.KindReference:
		return s.References.Len()
	case models.KindReferenceGroup:
		return s.ReferenceGroups.Len()
	case models.KindSchoolYear:
		return s.SchoolYears.Len()
	case models.KindSchoolTerm:
		return s.SchoolTerms.Len()
	case models.KindSchoolBreak:
		return s.SchoolBreaks.Len()
	case models.KindRoutine:
		return s.Routines.Len()
	case models.KindMember:
		return s.Members.Len()
	default:
		return 0
	}
}

// Counts returns the record count of every kind.
func (s *Snapshot) Counts() map[models.Kind]int {
	out := make(map[models.Kind]int, len(models.AllKinds()))
	for _, kind := range models.AllKinds() {
		out[kind] = s.Count(kind)
	}
	return out
}
