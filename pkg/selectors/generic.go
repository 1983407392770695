// Package selectors computes read-only views over a store.Snapshot. Every
// function is pure: the same snapshot and arguments always give the same
// result, and nothing here mutates the snapshot.
package selectors

import (
	"sort"
	"time"

	"github.com/vuet/vuet-client/pkg/models"
	"github.com/vuet/vuet-client/pkg/normalize"
)

// ByID returns the record with id. A missing record is reported through the
// second result; callers render a placeholder rather than treating it as an
// error.
func ByID[T models.Record](c normalize.Collection[T], id int) (T, bool) {
	return c.Get(id)
}

// IDsWhere returns the ids whose record satisfies pred, in collection order.
func IDsWhere[T models.Record](c normalize.Collection[T], pred func(T) bool) []int {
	out := []int{}
	for _, id := range c.IDs {
		if pred(c.ByID[id]) {
			out = append(out, id)
		}
	}
	return out
}

// ValuesWhere is IDsWhere returning the records themselves.
func ValuesWhere[T models.Record](c normalize.Collection[T], pred func(T) bool) []T {
	out := []T{}
	for _, id := range c.IDs {
		if r := c.ByID[id]; pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// NewestSince returns the ids of records created within thresholdDays of now.
//
// Ids are visited in descending order and the scan stops at the first record
// older than the threshold: ids are assumed to increase with creation time, so
// nothing after it can be new. A record with a lower id but a later
// created_at than a stale one is therefore never returned.
func NewestSince[T models.Timestamped](c normalize.Collection[T], thresholdDays int, now time.Time) []int {
	ids := append([]int(nil), c.IDs...)
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))

	cutoff := now.Add(-time.Duration(thresholdDays) * 24 * time.Hour)
	out := []int{}
	for _, id := range ids {
		if c.ByID[id].Created().Before(cutoff) {
			break
		}
		out = append(out, id)
	}
	return out
}
