// Package models contains the record types returned by the Vuet REST API.
package models

import "time"

// Record is any domain object identified by a server-assigned integer id.
// Ids are unique within a record kind only.
type Record interface {
	RecordID() int
}

// Timestamped is a Record that carries its server creation time.
type Timestamped interface {
	Record
	Created() time.Time
}

// Kind names a record kind. It is used as the metrics/log label and as the
// loader's dispatch key.
type Kind string

const (
	KindTask           Kind = "task"
	KindEntity         Kind = "entity"
	KindCategory       Kind = "category"
	KindAlert          Kind = "alert"
	KindActionAlert    Kind = "action_alert"
	KindTaskAction     Kind = "task_action"
	KindReference      Kind = "reference"
	KindReferenceGroup Kind = "reference_group"
	KindSchoolYear     Kind = "school_year"
	KindSchoolTerm     Kind = "school_term"
	KindSchoolBreak    Kind = "school_break"
	KindRoutine        Kind = "routine"
	KindMember         Kind = "member"
)

// AllKinds lists every record kind held by the store, in refresh order.
func AllKinds() []Kind {
	return []Kind{
		KindCategory,
		KindMember,
		KindEntity,
		KindTask,
		KindTaskAction,
		KindAlert,
		KindActionAlert,
		KindReferenceGroup,
		KindReference,
		KindSchoolYear,
		KindSchoolTerm,
		KindSchoolBreak,
		KindRoutine,
	}
}

// ValidKind reports whether k is one of AllKinds.
func ValidKind(k Kind) bool {
	for _, known := range AllKinds() {
		if known == k {
			return true
		}
	}
	return false
}
