// Package index provides occurrence indexes of identifier columns implemented on btrees.
package index

import (
	"github.com/dball/enumcheck/internal/iterator"
	. "github.com/dball/enumcheck/internal/types"
	"github.com/google/btree"
)

// DefaultDegree is the btree degree used when none is given.
const DefaultDegree = 32

// Entry is the number of times a localized string occurs in a column.
type Entry struct {
	Key   LocalizedString
	Count int
}

// LessKey orders entries by locale, then value, ignoring counts.
func LessKey(e1 Entry, e2 Entry) bool {
	return LessLocalizedString(e1.Key, e2.Key)
}

// Column is a sorted multiset of the localized strings of one identifier
// column.
//
// Column instances are safe for concurrent reads, not for concurrent writes.
// A column that has been published to readers must not be written again.
type Column struct {
	tree  *btree.BTreeG[Entry]
	total int
}

// NewColumn returns an empty column backed by a btree of the given degree.
func NewColumn(degree int) (column *Column) {
	if degree < 2 {
		degree = DefaultDegree
	}
	column = &Column{tree: btree.NewG(degree, btree.LessFunc[Entry](LessKey))}
	return
}

// BuildColumn returns a column of the given degree holding every string in the
// collection.
func BuildColumn(degree int, strs iterator.Collection[LocalizedString]) (column *Column) {
	column = NewColumn(degree)
	strs.Each(func(s LocalizedString) bool {
		column.Add(s)
		return true
	})
	return
}

// Add records one more occurrence of the key, returning the new count.
func (column *Column) Add(key LocalizedString) (count int) {
	entry, _ := column.tree.Get(Entry{Key: key})
	entry.Key = key
	entry.Count++
	column.tree.ReplaceOrInsert(entry)
	column.total++
	count = entry.Count
	return
}

// Count returns the number of occurrences of the key.
func (column *Column) Count(key LocalizedString) (count int) {
	entry, _ := column.tree.Get(Entry{Key: key})
	count = entry.Count
	return
}

// Len returns the number of distinct keys.
func (column *Column) Len() int {
	return column.tree.Len()
}

// Total returns the number of occurrences of all keys.
func (column *Column) Total() int {
	return column.total
}

// Duplicates returns the entries with more than one occurrence in ascending
// key order.
func (column *Column) Duplicates() (dups []Entry) {
	dups = []Entry{}
	column.tree.Ascend(func(entry Entry) bool {
		if entry.Count > 1 {
			dups = append(dups, entry)
		}
		return true
	})
	return
}
