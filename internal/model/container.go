package model

import (
	"sync"

	"github.com/dball/enumcheck/internal/diag"
	"github.com/dball/enumcheck/internal/iterator"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
)

// Container holds rows of an enum type. Enum types hold the rows of the type
// side of the identifier boundary, enum contents those of the content side.
type Container interface {
	diag.Named
	Project() *Project
	// FindEnumType returns the enum type of the rows, or nil if it does not
	// resolve.
	FindEnumType() *EnumType
	Rows() []*Row
	NewRow() *Row
	RemoveRow(row *Row) bool
	// IncludesLiteralName is true if the rows have a literal name column.
	IncludesLiteralName() bool
	// IdentifierBelowBoundary is true if row identifiers must compare below
	// the enum type's identifier boundary.
	IdentifierBelowBoundary() bool
	// DefersValueValidation is true if the rows are not required to be complete.
	DefersValueValidation() bool
	DefaultLocale() language.Tag
	// AggregatedRows returns the rows sharing the identifier namespace of this
	// container's rows, including rows of related containers.
	AggregatedRows() iterator.Collection[*Row]
}

// Columns returns the attributes of the container's columns in order, or nil
// if the container's enum type does not resolve.
func Columns(c Container) []*Attribute {
	t := c.FindEnumType()
	if t == nil {
		return nil
	}
	return t.Columns(c.IncludesLiteralName())
}

// RelatedContainers returns the container and the containers whose rows
// share its identifier namespace.
func RelatedContainers(c Container) (related []Container) {
	related = []Container{c}
	switch container := c.(type) {
	case *EnumType:
		if content := container.FindEnumContent(); content != nil {
			related = append(related, content)
		}
	case *EnumContent:
		if t := container.FindEnumType(); t != nil {
			related = append(related, t)
		}
	}
	return
}

// namespaceRows returns the type's rows followed by the rows of its content.
func namespaceRows(t *EnumType) iterator.Collection[*Row] {
	colls := iterator.Concat[*Row]{iterator.Slice[*Row](t.Rows())}
	if content := t.FindEnumContent(); content != nil {
		colls = append(colls, iterator.Slice[*Row](content.Rows()))
	}
	return colls
}

type rowList struct {
	lock sync.RWMutex
	rows []*Row
}

func (list *rowList) all() []*Row {
	list.lock.RLock()
	defer list.lock.RUnlock()
	return slices.Clone(list.rows)
}

func (list *rowList) add(row *Row) {
	list.lock.Lock()
	defer list.lock.Unlock()
	list.rows = append(list.rows, row)
}

func (list *rowList) remove(row *Row) (extant bool) {
	list.lock.Lock()
	defer list.lock.Unlock()
	i := slices.Index(list.rows, row)
	if extant = i >= 0; extant {
		list.rows = slices.Delete(list.rows, i, i+1)
	}
	return
}

func (list *rowList) indexOf(row *Row) int {
	list.lock.RLock()
	defer list.lock.RUnlock()
	return slices.Index(list.rows, row)
}

func newRow(c Container, n int) (row *Row) {
	row = &Row{container: c, values: make([]*AttributeValue, n)}
	for i := range row.values {
		row.values[i] = newValue(row)
	}
	return
}
