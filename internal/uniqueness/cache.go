// Package uniqueness detects duplicate values in the unique columns of a
// container's rows.
//
// A Cache materializes one occurrence index per column on first use by
// scanning every row sharing the container's identifier namespace, and drops
// indexes when the project reports changes that may have made them stale.
package uniqueness

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dball/enumcheck/internal/event"
	"github.com/dball/enumcheck/internal/index"
	"github.com/dball/enumcheck/internal/iterator"
	"github.com/dball/enumcheck/internal/model"
	. "github.com/dball/enumcheck/internal/types"
	"golang.org/x/sync/singleflight"
)

// Cache is the uniqueness cache of one container. Caches are safe for
// concurrent use.
type Cache struct {
	container model.Container
	degree    int
	logger    *slog.Logger
	sub       event.Subscription
	builds    singleflight.Group

	lock        sync.RWMutex
	columns     map[int]*index.Column
	generations map[int]uint64
	epoch       uint64
	closed      bool
}

// New returns a cache for the container's rows, subscribed to the container's
// project. Indexes use btrees of the given degree, or index.DefaultDegree if
// it is less than 2.
func New(container model.Container, logger *slog.Logger, degree int) (cache *Cache) {
	if logger == nil {
		logger = slog.Default()
	}
	cache = &Cache{
		container:   container,
		degree:      degree,
		logger:      logger,
		columns:     map[int]*index.Column{},
		generations: map[int]uint64{},
	}
	cache.sub = container.Project().Events().Subscribe(cache.onChange)
	return
}

// Container returns the container whose rows the cache indexes.
func (cache *Cache) Container() model.Container {
	return cache.container
}

// Close unsubscribes the cache from its project. A closed cache still answers
// queries, but no longer retains indexes.
func (cache *Cache) Close() {
	cache.lock.Lock()
	if cache.closed {
		cache.lock.Unlock()
		return
	}
	cache.closed = true
	cache.columns = map[int]*index.Column{}
	cache.epoch++
	cache.lock.Unlock()
	cache.container.Project().Events().Unsubscribe(cache.sub)
}

// ViolationsFor returns every localized string of the value that occurs more
// than once in the value's column across the container's namespace. Empty
// strings are not counted. It is not ok if the value does not resolve to a
// column of the container or is null.
func (cache *Cache) ViolationsFor(v *model.AttributeValue) (violations []LocalizedString, ok bool) {
	a := v.ResolveAttribute()
	if a == nil {
		return
	}
	value := v.Value()
	if value == nil {
		return
	}
	i, name := cache.columnOf(a.Name())
	if i < 0 {
		return
	}
	column := cache.column(i, name)
	for _, s := range value.Strings() {
		if s.Value != "" && column.Count(s) > 1 {
			violations = append(violations, s)
		}
	}
	ok = true
	return
}

// Count returns the number of occurrences of the string in the named
// attribute's column, or zero if the attribute has no column.
func (cache *Cache) Count(attribute string, s LocalizedString) int {
	i, name := cache.columnOf(attribute)
	if i < 0 {
		return 0
	}
	return cache.column(i, name).Count(s)
}

// Duplicates returns the strings occurring more than once in the named
// attribute's column in ascending order.
func (cache *Cache) Duplicates(attribute string) []index.Entry {
	i, name := cache.columnOf(attribute)
	if i < 0 {
		return []index.Entry{}
	}
	return cache.column(i, name).Duplicates()
}

// columnOf returns the index of the attribute's column in the cache's
// container, or -1.
func (cache *Cache) columnOf(attribute string) (i int, name string) {
	for j, a := range model.Columns(cache.container) {
		if a.Name() == attribute {
			i, name = j, attribute
			return
		}
	}
	i = -1
	return
}

func (cache *Cache) column(i int, name string) *index.Column {
	cache.lock.RLock()
	column, found := cache.columns[i]
	epoch, generation := cache.epoch, cache.generations[i]
	cache.lock.RUnlock()
	if found {
		return column
	}
	key := fmt.Sprintf("%d/%d/%d", i, epoch, generation)
	built, _, _ := cache.builds.Do(key, func() (any, error) {
		column := cache.build(name)
		cache.lock.Lock()
		defer cache.lock.Unlock()
		if !cache.closed && cache.epoch == epoch && cache.generations[i] == generation {
			cache.columns[i] = column
		}
		return column, nil
	})
	return built.(*index.Column)
}

// build scans the namespace rows as they are now. Rows whose values do not
// match their columns are skipped.
func (cache *Cache) build(name string) (column *index.Column) {
	strs := iterator.Func[LocalizedString](func(accept iterator.Accept[LocalizedString]) {
		cache.container.AggregatedRows().Each(func(row *model.Row) bool {
			v := row.ValueFor(name)
			if v == nil || v.Value() == nil {
				return true
			}
			for _, s := range v.Value().Strings() {
				if s.Value != "" && !accept(s) {
					return false
				}
			}
			return true
		})
	})
	column = index.BuildColumn(cache.degree, strs)
	cache.logger.Debug("Built uniqueness column",
		"container", cache.container.QualifiedName(),
		"attribute", name,
		"keys", column.Len(),
		"occurrences", column.Total())
	return
}

func (cache *Cache) onChange(e model.ChangeEvent) {
	if e.Kind == model.ProjectChanged {
		cache.invalidateAll(e)
		return
	}
	if e.Container == nil || !cache.affectedBy(e.Container) {
		return
	}
	if e.IsStructural() {
		cache.invalidateAll(e)
		return
	}
	a := e.Value.ResolveAttribute()
	if a == nil {
		cache.invalidateAll(e)
		return
	}
	if i, _ := cache.columnOf(a.Name()); i >= 0 {
		cache.invalidateColumn(i, a.Name())
	}
}

// affectedBy is true if changes to the container may change the cache's
// namespace rows or columns.
func (cache *Cache) affectedBy(container model.Container) bool {
	for _, related := range model.RelatedContainers(cache.container) {
		if related == container {
			return true
		}
	}
	own := cache.container.FindEnumType()
	switch changed := container.(type) {
	case *model.EnumType:
		if own != nil && own.IsSubtypeOf(changed) {
			return true
		}
		if content, ok := cache.container.(*model.EnumContent); ok {
			return content.EnumType() == changed.QualifiedName()
		}
	case *model.EnumContent:
		return own != nil && own.ContentName() == changed.QualifiedName()
	}
	return false
}

func (cache *Cache) invalidateAll(e model.ChangeEvent) {
	cache.lock.Lock()
	dropped := len(cache.columns)
	cache.columns = map[int]*index.Column{}
	cache.epoch++
	cache.lock.Unlock()
	cache.logger.Debug("Invalidated uniqueness cache",
		"container", cache.container.QualifiedName(),
		"change", e.Kind.String(),
		"dropped", dropped)
}

func (cache *Cache) invalidateColumn(i int, name string) {
	cache.lock.Lock()
	delete(cache.columns, i)
	cache.generations[i]++
	cache.lock.Unlock()
	cache.logger.Debug("Invalidated uniqueness column",
		"container", cache.container.QualifiedName(),
		"attribute", name)
}
