package model

import (
	"fmt"
	"sync"

	"github.com/dball/enumcheck/internal/sys"
	. "github.com/dball/enumcheck/internal/types"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
)

// Row is one enumeration value: an attribute value per column of its
// container, in column order.
type Row struct {
	container Container

	lock   sync.RWMutex
	values []*AttributeValue
}

func (r *Row) Container() Container { return r.container }

// QualifiedName is the container's qualified name and the row's index.
func (r *Row) QualifiedName() string {
	return fmt.Sprintf("%s[%d]", r.container.QualifiedName(), r.Index())
}

// Index returns the row's position in its container, or -1 if it has been
// removed.
func (r *Row) Index() int {
	return slices.Index(r.container.Rows(), r)
}

func (r *Row) Values() []*AttributeValue {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return slices.Clone(r.values)
}

// IndexOf returns the position of the value in the row, or -1.
func (r *Row) IndexOf(v *AttributeValue) int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return slices.Index(r.values, v)
}

// HasColumnMismatch is true if the row's value count does not match its
// container's column count.
func (r *Row) HasColumnMismatch() bool {
	columns := Columns(r.container)
	return columns == nil || len(columns) != len(r.Values())
}

// ValueFor returns the row's value for the named attribute, or nil if the name
// is not a column or the row does not match its container's columns.
func (r *Row) ValueFor(name string) *AttributeValue {
	columns := Columns(r.container)
	values := r.Values()
	if len(columns) != len(values) {
		return nil
	}
	for i, a := range columns {
		if a.Name() == name {
			return values[i]
		}
	}
	return nil
}

// LiteralName returns the row's literal name, or empty if there is none.
func (r *Row) LiteralName() string {
	t := r.container.FindEnumType()
	if t == nil || !r.container.IncludesLiteralName() {
		return ""
	}
	a := t.LiteralNameAttribute()
	if a == nil {
		return ""
	}
	if v := r.ValueFor(a.Name()); v != nil {
		if plain, ok := v.Value().(Plain); ok {
			return string(plain)
		}
	}
	return ""
}

// DisplayName returns the value of the display name attribute in the default
// locale, falling back to the literal name.
func (r *Row) DisplayName() string {
	if t := r.container.FindEnumType(); t != nil {
		if a := t.DisplayNameAttribute(); a != nil {
			if v := r.ValueFor(a.Name()); v != nil {
				if s := v.StringIn(r.container.DefaultLocale()); s != "" {
					return s
				}
			}
		}
	}
	return r.LiteralName()
}

// FixLiteralName sets an empty literal name to the one derived from the
// default value provider's value, returning true if it changed.
func (r *Row) FixLiteralName() (changed bool) {
	t := r.container.FindEnumType()
	if t == nil || !r.container.IncludesLiteralName() {
		return
	}
	a := t.LiteralNameAttribute()
	if a == nil {
		return
	}
	v := r.ValueFor(a.Name())
	if v == nil || (v.Value() != nil && !v.Value().IsEmpty()) {
		return
	}
	provider := a.FindDefaultValueProvider()
	if provider == nil {
		return
	}
	source := r.ValueFor(provider.Name())
	if source == nil {
		return
	}
	name := sys.LiteralNameFrom(source.StringIn(r.container.DefaultLocale()))
	if name == "" {
		return
	}
	v.SetValue(Plain(name))
	changed = true
	return
}

func (r *Row) appendValue() {
	r.lock.Lock()
	r.values = append(r.values, newValue(r))
	r.lock.Unlock()
}

func (r *Row) removeValue(i int) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if i < len(r.values) {
		r.values = slices.Delete(r.values, i, i+1)
	}
}

func (r *Row) swapValues(i int, j int) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if i < len(r.values) && j < len(r.values) {
		r.values[i], r.values[j] = r.values[j], r.values[i]
	}
}

// Mismatch describes how a value's variant differs from its attribute's.
type Mismatch int8

const (
	NoMismatch       Mismatch = 0
	PlainToLocalized Mismatch = 1
	LocalizedToPlain Mismatch = 2
)

// AttributeValue is the value of one column of one row. The column is
// determined by the value's position in the row.
type AttributeValue struct {
	row *Row

	lock  sync.RWMutex
	value Value
}

func newValue(row *Row) *AttributeValue {
	return &AttributeValue{row: row, value: Plain("")}
}

func (v *AttributeValue) Row() *Row { return v.row }

// QualifiedName is the row's qualified name and the attribute name, or the
// value's index if the attribute does not resolve.
func (v *AttributeValue) QualifiedName() string {
	if a := v.ResolveAttribute(); a != nil {
		return v.row.QualifiedName() + "." + a.Name()
	}
	return fmt.Sprintf("%s.%d", v.row.QualifiedName(), v.Index())
}

// Index returns the value's position in its row.
func (v *AttributeValue) Index() int {
	return v.row.IndexOf(v)
}

func (v *AttributeValue) Value() Value {
	v.lock.RLock()
	defer v.lock.RUnlock()
	return v.value
}

func (v *AttributeValue) SetValue(value Value) {
	v.lock.Lock()
	v.value = value
	v.lock.Unlock()
	v.row.container.Project().publish(ChangeEvent{Kind: ValueChanged, Container: v.row.container, Row: v.row, Value: v})
}

// StringIn returns the plain string, or the localized string for the locale.
func (v *AttributeValue) StringIn(locale language.Tag) string {
	switch value := v.Value().(type) {
	case Plain:
		return string(value)
	case Localized:
		return value.Get(locale)
	}
	return ""
}

// ResolveAttribute returns the attribute of the value's column, or nil if the
// row does not match its container's columns.
func (v *AttributeValue) ResolveAttribute() *Attribute {
	columns := Columns(v.row.container)
	values := v.row.Values()
	if columns == nil || len(columns) != len(values) {
		return nil
	}
	i := slices.Index(values, v)
	if i < 0 || i >= len(columns) {
		return nil
	}
	return columns[i]
}

// CheckValueTypeMismatch compares the value's variant against the attribute's
// effective multilingual flag. Null values never mismatch.
func (v *AttributeValue) CheckValueTypeMismatch(a *Attribute) Mismatch {
	multilingual := a.IsMultilingualEffective()
	switch v.Value().(type) {
	case Plain:
		if multilingual {
			return PlainToLocalized
		}
	case Localized:
		if !multilingual {
			return LocalizedToPlain
		}
	}
	return NoMismatch
}

// FixValueType converts the value to the localized variant keyed by the
// container's default locale, or to the plain variant holding the default
// locale's string. Strings of other locales are lost.
func (v *AttributeValue) FixValueType(multilingual bool) {
	locale := v.row.container.DefaultLocale()
	switch value := v.Value().(type) {
	case Plain:
		if multilingual {
			v.SetValue(ToLocalized(value, locale))
		}
	case Localized:
		if !multilingual {
			v.SetValue(ToPlain(value, locale))
		}
	case nil:
		if multilingual {
			v.SetValue(Localized{locale: ""})
		} else {
			v.SetValue(Plain(""))
		}
	}
}
