// Package model provides the enumeration object graph: types, their attribute
// definitions, contents, rows and values.
//
// Model parts are safe for concurrent reads and writes. Every mutation
// publishes a ChangeEvent on the project's bus after the change is applied.
package model

import (
	"sync"

	"github.com/dball/enumcheck/internal/datatype"
	"github.com/dball/enumcheck/internal/event"
	"github.com/dball/enumcheck/internal/iterator"
	. "github.com/dball/enumcheck/internal/types"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
)

// Project is the registry of enum types and contents that resolve each other
// by name.
type Project struct {
	bus *event.Bus[ChangeEvent]

	lock          sync.RWMutex
	defaultLocale language.Tag
	types         map[string]*EnumType
	typeOrder     []string
	contents      map[string]*EnumContent
	contentOrder  []string
}

// NewProject returns an empty project whose multilingual values default to
// the given locale.
func NewProject(defaultLocale language.Tag) *Project {
	return &Project{
		bus:           event.NewBus[ChangeEvent](),
		defaultLocale: defaultLocale,
		types:         map[string]*EnumType{},
		contents:      map[string]*EnumContent{},
	}
}

// Events returns the bus on which every change to the project's parts is
// published.
func (p *Project) Events() *event.Bus[ChangeEvent] {
	return p.bus
}

func (p *Project) publish(e ChangeEvent) {
	p.bus.Publish(e)
}

func (p *Project) DefaultLocale() language.Tag {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.defaultLocale
}

func (p *Project) SetDefaultLocale(locale language.Tag) {
	p.lock.Lock()
	p.defaultLocale = locale
	p.lock.Unlock()
	p.publish(ChangeEvent{Kind: ProjectChanged})
}

// NewEnumType adds an enum type with the given qualified name.
func (p *Project) NewEnumType(name string) (t *EnumType, err error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if _, extant := p.types[name]; extant {
		err = NewError("project.duplicateEnumType", "name", name)
		return
	}
	t = &EnumType{project: p, name: name}
	p.types[name] = t
	p.typeOrder = append(p.typeOrder, name)
	return
}

// NewEnumContent adds an enum content with the given qualified name holding
// rows of the named enum type.
func (p *Project) NewEnumContent(name string, enumType string) (c *EnumContent, err error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if _, extant := p.contents[name]; extant {
		err = NewError("project.duplicateEnumContent", "name", name)
		return
	}
	c = &EnumContent{project: p, name: name, enumType: enumType}
	p.contents[name] = c
	p.contentOrder = append(p.contentOrder, name)
	return
}

// FindEnumType returns the enum type with the qualified name, or nil.
func (p *Project) FindEnumType(name string) *EnumType {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.types[name]
}

// FindEnumContent returns the enum content with the qualified name, or nil.
func (p *Project) FindEnumContent(name string) *EnumContent {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.contents[name]
}

// EnumTypes returns the enum types in the order they were added.
func (p *Project) EnumTypes() (types []*EnumType) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	types = make([]*EnumType, len(p.typeOrder))
	for i, name := range p.typeOrder {
		types[i] = p.types[name]
	}
	return
}

// EnumContents returns the enum contents in the order they were added.
func (p *Project) EnumContents() (contents []*EnumContent) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	contents = make([]*EnumContent, len(p.contentOrder))
	for i, name := range p.contentOrder {
		contents[i] = p.contents[name]
	}
	return
}

// RemoveEnumType removes the enum type, returning true if it was present.
func (p *Project) RemoveEnumType(t *EnumType) (extant bool) {
	p.lock.Lock()
	extant = p.types[t.QualifiedName()] == t
	if extant {
		delete(p.types, t.QualifiedName())
		i := slices.Index(p.typeOrder, t.QualifiedName())
		p.typeOrder = slices.Delete(p.typeOrder, i, i+1)
	}
	p.lock.Unlock()
	if extant {
		p.publish(ChangeEvent{Kind: TypeChanged, Container: t})
	}
	return
}

// FindDatatype resolves a datatype name to a built-in datatype or to an enum
// type adapted as a datatype. It returns nil if neither exists.
func (p *Project) FindDatatype(name string) Datatype {
	if d, found := datatype.Lookup(name); found {
		return d
	}
	if t := p.FindEnumType(name); t != nil {
		return &EnumDatatype{enumType: t}
	}
	return nil
}

// EnumDatatype adapts an enum type as the datatype of attributes referring to
// its rows by identifier.
type EnumDatatype struct {
	enumType *EnumType
}

var _ Datatype = (*EnumDatatype)(nil)

func (d *EnumDatatype) EnumType() *EnumType            { return d.enumType }
func (d *EnumDatatype) Name() string                   { return d.enumType.QualifiedName() }
func (d *EnumDatatype) IsVoid() bool                   { return false }
func (d *EnumDatatype) IsAbstract() bool               { return false }
func (d *EnumDatatype) IsNull(s string) bool           { return s == "" }
func (d *EnumDatatype) SupportsCompare() bool          { return false }
func (d *EnumDatatype) Compare(a string, b string) int { return datatype.Compare(a, b) }

// IsParsable is true if s identifies one of the enum type's rows. Any string
// parses when the rows are only known at run time.
func (d *EnumDatatype) IsParsable(s string) bool {
	if s == "" || !d.enumType.ContainsValues() {
		return true
	}
	id := d.enumType.IdentifierAttribute()
	if id == nil {
		return false
	}
	name := id.Name()
	return iterator.Any[*Row](iterator.Slice[*Row](d.enumType.Rows()), func(row *Row) bool {
		if v := row.ValueFor(name); v != nil {
			plain, ok := v.Value().(Plain)
			return ok && string(plain) == s
		}
		return false
	})
}
