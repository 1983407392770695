// Package normalize turns ordered API result sets into id-keyed collections
// and builds secondary indexes over them.
package normalize

import "github.com/vuet/vuet-client/pkg/models"

// Collection is an ordered id list plus an id → record map for one record
// kind. Every id in IDs has an entry in ByID and vice versa. IDs keeps the
// server response order; it is not sorted.
type Collection[T models.Record] struct {
	IDs  []int
	ByID map[int]T
}

// Stats describes how Normalize treated its input.
type Stats struct {
	Input      int // records received
	Duplicates int // records folded into an earlier occurrence of the same id
	MissingIDs int // records dropped because their id was <= 0
}

// Clean reports whether the input needed no de-duplication or dropping.
func (s Stats) Clean() bool {
	return s.Duplicates == 0 && s.MissingIDs == 0
}

// Empty returns a collection with no records.
func Empty[T models.Record]() Collection[T] {
	return Collection[T]{IDs: []int{}, ByID: map[int]T{}}
}

// Normalize builds a Collection from records. See NormalizeWithStats for the
// de-duplication policy.
func Normalize[T models.Record](records []T) Collection[T] {
	c, _ := NormalizeWithStats(records)
	return c
}

// NormalizeWithStats builds a Collection from records.
//
// A duplicated id keeps the position of its first occurrence in IDs while the
// last occurrence's value wins in ByID. Records without an id (id <= 0) are
// dropped. Neither case is an error.
func NormalizeWithStats[T models.Record](records []T) (Collection[T], Stats) {
	stats := Stats{Input: len(records)}
	c := Collection[T]{
		IDs:  make([]int, 0, len(records)),
		ByID: make(map[int]T, len(records)),
	}
	for _, r := range records {
		id := r.RecordID()
		if id <= 0 {
			stats.MissingIDs++
			continue
		}
		if _, seen := c.ByID[id]; seen {
			stats.Duplicates++
		} else {
			c.IDs = append(c.IDs, id)
		}
		c.ByID[id] = r
	}
	return c, stats
}

// Len returns the number of records.
func (c Collection[T]) Len() int { return len(c.IDs) }

// Get returns the record with id, or false when absent.
func (c Collection[T]) Get(id int) (T, bool) {
	r, ok := c.ByID[id]
	return r, ok
}

// Contains reports whether id is present.
func (c Collection[T]) Contains(id int) bool {
	_, ok := c.ByID[id]
	return ok
}

// Values returns the records in IDs order.
func (c Collection[T]) Values() []T {
	out := make([]T, 0, len(c.IDs))
	for _, id := range c.IDs {
		out = append(out, c.ByID[id])
	}
	return out
}

// Lookup resolves ids to records in the given order, skipping ids that are
// not present.
func (c Collection[T]) Lookup(ids []int) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if r, ok := c.ByID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}
