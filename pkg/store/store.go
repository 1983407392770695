package store

import (
	"sync"

	"go.uber.org/zap"

	"github.com/vuet/vuet-client/pkg/models"
	"github.com/vuet/vuet-client/pkg/normalize"
)

// Observer is notified of the record count of a kind after every replace.
type Observer interface {
	ObserveRecords(kind models.Kind, count int)
}

// Store publishes Snapshots. A replace builds a new Snapshot from the current
// one, swaps it in under the write lock and never touches the old Snapshot,
// so readers holding a Snapshot always see a consistent view.
type Store struct {
	mu       sync.RWMutex
	current  *Snapshot
	observer Observer
	logger   *zap.Logger
}

// New creates an empty store. observer may be nil.
func New(logger *zap.Logger, observer Observer) *Store {
	return &Store{
		current:  emptySnapshot(0),
		observer: observer,
		logger:   logger.Named("store"),
	}
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Version returns the version of the current snapshot. It increases on every
// replace and on Clear.
func (s *Store) Version() uint64 {
	return s.Snapshot().Version
}

// Clear drops every cached record, as on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	next := emptySnapshot(s.current.Version + 1)
	s.current = next
	s.mu.Unlock()

	s.logger.Info("Cleared store", zap.Uint64("version", next.Version))
	if s.observer != nil {
		for _, kind := range models.AllKinds() {
			s.observer.ObserveRecords(kind, 0)
		}
	}
}

func (s *Store) replace(kind models.Kind, apply func(next *Snapshot) normalize.Stats) normalize.Stats {
	s.mu.Lock()
	next := *s.current
	stats := apply(&next)
	next.Version = s.current.Version + 1
	s.current = &next
	s.mu.Unlock()

	count := next.Count(kind)
	s.logger.Debug("Replaced collection",
		zap.String("kind", string(kind)),
		zap.Int("records", count),
		zap.Uint64("version", next.Version))
	if !stats.Clean() {
		s.logger.Warn("Normalized malformed records",
			zap.String("kind", string(kind)),
			zap.Int("input", stats.Input),
			zap.Int("duplicates", stats.Duplicates),
			zap.Int("missing_ids", stats.MissingIDs))
	}
	if s.observer != nil {
		s.observer.ObserveRecords(kind, count)
	}
	return stats
}

// ReplaceTasks swaps in a new task collection and its task indexes.
func (s *Store) ReplaceTasks(records []models.Task) normalize.Stats {
	return s.replace(models.KindTask, func(next *Snapshot) normalize.Stats {
		c, stats := normalize.NormalizeWithStats(records)
		next.Tasks = c
		next.TasksByAction = normalize.IndexCollection(c, taskAction)
		next.TasksByEntity = normalize.IndexCollection(c, taskEntities)
		next.TasksByMember = normalize.IndexCollection(c, taskMembers)
		return stats
	})
}

// ReplaceEntities swaps in a new entity collection and its indexes.
func (s *Store) ReplaceEntities(records []models.Entity) normalize.Stats {
	return s.replace(models.KindEntity, func(next *Snapshot) normalize.Stats {
		c, stats := normalize.NormalizeWithStats(records)
		next.Entities = c
		next.EntitiesByCategory = normalize.IndexCollection(c, entityCategory)
		next.EntitiesByParent = normalize.IndexCollection(c, entityParent)
		return stats
	})
}

// ReplaceCategories swaps in a new category collection.
func (s *Store) ReplaceCategories(records []models.Category) normalize.Stats {
	return s.replace(models.KindCategory, func(next *Snapshot) normalize.Stats {
		c, stats := normalize.NormalizeWithStats(records)
		next.Categories = c
		return stats
	})
}

// ReplaceAlerts swaps in a new alert collection and the alerts-by-task index.
func (s *Store) ReplaceAlerts(records []models.Alert) normalize.Stats {
	return s.replace(models.KindAlert, func(next *Snapshot) normalize.Stats {
		c, stats := normalize.NormalizeWithStats(records)
		next.Alerts = c
		next.AlertsByTask = normalize.IndexCollection(c, alertTask)
		return stats
	})
}

// ReplaceActionAlerts swaps in a new action alert collection and its index.
func (s *Store) ReplaceActionAlerts(records []models.ActionAlert) normalize.Stats {
	return s.replace(models.KindActionAlert, func(next *Snapshot) normalize.Stats {
		c, stats := normalize.NormalizeWithStats(records)
		next.ActionAlerts = c
		next.ActionAlertsByAction = normalize.IndexCollection(c, actionAlertAction)
		return stats
	})
}

// ReplaceTaskActions swaps in a new task action collection and its index.
func (s *Store) ReplaceTaskActions(records []models.TaskAction) normalize.Stats {
	return s.replace(models.KindTaskAction, func(next *Snapshot) normalize.Stats {
		c, stats := normalize.NormalizeWithStats(records)
		next.TaskActions = c
		next.ActionsByTask = normalize.IndexCollection(c, actionTask)
		return stats
	})
}

// ReplaceReferences swaps in a new reference collection and its index.
func (s *Store) ReplaceReferences(records []models.Reference) normalize.Stats {
	return s.replace(models.KindReference, func(next *Snapshot) normalize.Stats {
		c, stats := normalize.NormalizeWithStats(records)
		next.References = c
		next.ReferencesByGroup = normalize.IndexCollection(c, referenceGroup)
		return stats
	})
}

// ReplaceReferenceGroups swaps in a new reference group collection and its index.
func (s *Store) ReplaceReferenceGroups(records []models.ReferenceGroup) normalize.Stats {
	return s.replace(models.KindReferenceGroup, func(next *Snapshot) normalize.Stats {
		c, stats := normalize.NormalizeWithStats(records)
		next.ReferenceGroups = c
		next.ReferenceGroupsByEntity = normalize.IndexCollection(c, groupEntities)
		return stats
	})
}

// ReplaceSchoolYears swaps in a new school year collection and its index.
func (s *Store) ReplaceSchoolYears(records []models.SchoolYear) normalize.Stats {
	return s.replace(models.KindSchoolYear, func(next *Snapshot) normalize.Stats {
		c, stats := normalize.NormalizeWithStats(records)
		next.SchoolYears = c
		next.SchoolYearsBySchool = normalize.IndexCollection(c, yearSchool)
		return stats
	})
}

// ReplaceSchoolTerms swaps in a new school term collection and its index.
func (s *Store) ReplaceSchoolTerms(records []models.SchoolTerm) normalize.Stats {
	return s.replace(models.KindSchoolTerm, func(next *Snapshot) normalize.Stats {
		c, stats := normalize.NormalizeWithStats(records)
		next.SchoolTerms = c
		next.SchoolTermsByYear = normalize.IndexCollection(c, termYear)
		return stats
	})
}

// ReplaceSchoolBreaks swaps in a new school break collection and its index.
func (s *Store) ReplaceSchoolBreaks(records []models.SchoolBreak) normalize.Stats {
	return s.replace(models.KindSchoolBreak, func(next *Snapshot) normalize.Stats {
		c, stats := normalize.NormalizeWithStats(records)
		next.SchoolBreaks = c
		next.SchoolBreaksByYear = normalize.IndexCollection(c, breakYear)
		return stats
	})
}

// ReplaceRoutines swaps in a new routine collection.
func (s *Store) ReplaceRoutines(records []models.Routine) normalize.Stats {
	return s.replace(models.KindRoutine, func(next *Snapshot) normalize.Stats {
		c, stats := normalize.NormalizeWithStats(records)
		next.Routines = c
		return stats
	})
}

// ReplaceMembers swaps in a new family member collection.
func (s *Store) ReplaceMembers(records []models.Member) normalize.Stats {
	return s.replace(models.KindMember, func(next *Snapshot) normalize.Stats {
		c, stats := normalize.NormalizeWithStats(records)
		next.Members = c
		return stats
	})
}
