package normalize

import (
	"sort"

	"github.com/vuet/vuet-client/pkg/models"
)

// Index maps a foreign key to the ids of the records that reference it.
// Indexes are derived data: they are rebuilt whenever the owning collection
// is replaced.
type Index map[int][]int

// KeyFunc extracts the foreign keys of a record. A nil or empty result puts
// the record in no bucket.
type KeyFunc[T any] func(T) []int

// One is a KeyFunc result for a mandatory foreign key.
func One(key int) []int { return []int{key} }

// Optional is a KeyFunc result for a nullable foreign key.
func Optional(key *int) []int {
	if key == nil {
		return nil
	}
	return []int{*key}
}

// Many is a KeyFunc result for a many-valued foreign key.
func Many(keys []int) []int { return keys }

// BuildIndex groups record ids by key in input order. A record id appears at
// most once per bucket even if the key func repeats a key or the input
// repeats a record.
func BuildIndex[T models.Record](records []T, key KeyFunc[T]) Index {
	idx := Index{}
	seen := make(map[[2]int]struct{})
	for _, r := range records {
		id := r.RecordID()
		for _, k := range key(r) {
			pair := [2]int{k, id}
			if _, dup := seen[pair]; dup {
				continue
			}
			seen[pair] = struct{}{}
			idx[k] = append(idx[k], id)
		}
	}
	return idx
}

// IndexCollection builds an index over a collection in IDs order, so every
// id in a bucket is guaranteed to exist in the collection.
func IndexCollection[T models.Record](c Collection[T], key KeyFunc[T]) Index {
	return BuildIndex(c.Values(), key)
}

// Get returns the bucket for key, or nil.
func (idx Index) Get(key int) []int {
	return idx[key]
}

// Keys returns the bucket keys in ascending order.
func (idx Index) Keys() []int {
	keys := make([]int, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
