package model

import (
	"sync"

	"github.com/dball/enumcheck/internal/iterator"
	"golang.org/x/text/language"
)

// EnumContent holds the rows of an extensible enum type that lie on the
// content side of its identifier boundary. Content rows have no literal name
// column.
type EnumContent struct {
	project *Project
	name    string
	rows    rowList

	lock     sync.RWMutex
	enumType string
}

var _ Container = (*EnumContent)(nil)

func (c *EnumContent) QualifiedName() string { return c.name }
func (c *EnumContent) Project() *Project     { return c.project }

// EnumType is the qualified name of the content's enum type.
func (c *EnumContent) EnumType() string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.enumType
}

func (c *EnumContent) SetEnumType(name string) {
	c.lock.Lock()
	c.enumType = name
	c.lock.Unlock()
	c.project.publish(ChangeEvent{Kind: ContentChanged, Container: c})
}

func (c *EnumContent) FindEnumType() *EnumType {
	return c.project.FindEnumType(c.EnumType())
}

func (c *EnumContent) Rows() []*Row { return c.rows.all() }

// NewRow appends a row with an empty value per column of the enum type, or an
// empty row if the enum type does not resolve.
func (c *EnumContent) NewRow() (row *Row) {
	row = newRow(c, len(Columns(c)))
	c.rows.add(row)
	c.project.publish(ChangeEvent{Kind: RowsChanged, Container: c, Row: row})
	return
}

func (c *EnumContent) RemoveRow(row *Row) (extant bool) {
	extant = c.rows.remove(row)
	if extant {
		c.project.publish(ChangeEvent{Kind: RowsChanged, Container: c, Row: row})
	}
	return
}

// FixRows pads or truncates every row to the enum type's column count,
// returning the number of rows changed. Rows are matched by position, so this
// is only correct after columns were appended or removed at the end.
func (c *EnumContent) FixRows() (fixed int) {
	n := len(Columns(c))
	for _, row := range c.Rows() {
		m := len(row.Values())
		if m == n {
			continue
		}
		for ; m < n; m++ {
			row.appendValue()
		}
		for ; m > n; m-- {
			row.removeValue(m - 1)
		}
		fixed++
	}
	if fixed > 0 {
		c.project.publish(ChangeEvent{Kind: RowsChanged, Container: c})
	}
	return
}

func (c *EnumContent) IncludesLiteralName() bool     { return false }
func (c *EnumContent) IdentifierBelowBoundary() bool { return false }
func (c *EnumContent) DefersValueValidation() bool   { return false }
func (c *EnumContent) DefaultLocale() language.Tag   { return c.project.DefaultLocale() }

func (c *EnumContent) AggregatedRows() iterator.Collection[*Row] {
	if t := c.FindEnumType(); t != nil && t.FindEnumContent() == c {
		return namespaceRows(t)
	}
	return iterator.Slice[*Row](c.Rows())
}
