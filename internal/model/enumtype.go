package model

import (
	"sync"

	"github.com/dball/enumcheck/internal/iterator"
	"github.com/dball/enumcheck/internal/sys"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
)

// EnumType defines the attributes of an enumeration and, unless it is
// abstract, holds the rows of the type side of its identifier boundary.
type EnumType struct {
	project *Project
	rows    rowList

	lock        sync.RWMutex
	name        string
	superType   string
	abstract    bool
	extensible  bool
	boundary    string
	contentName string
	attributes  []*Attribute
}

var _ Container = (*EnumType)(nil)

func (t *EnumType) QualifiedName() string { return t.name }
func (t *EnumType) Project() *Project     { return t.project }

func (t *EnumType) SuperType() string {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.superType
}

// SetSuperType sets the qualified name of the supertype, empty for none.
func (t *EnumType) SetSuperType(name string) {
	t.setProperty(func() { t.superType = name })
}

func (t *EnumType) IsAbstract() bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.abstract
}

func (t *EnumType) SetAbstract(abstract bool) {
	t.setProperty(func() { t.abstract = abstract })
}

// IsExtensible is true if rows may also be defined in an enum content.
func (t *EnumType) IsExtensible() bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.extensible
}

func (t *EnumType) SetExtensible(extensible bool) {
	t.setProperty(func() { t.extensible = extensible })
}

// IdentifierBoundary is the identifier value splitting the type's rows from
// its content's rows. It is empty if there is no boundary.
func (t *EnumType) IdentifierBoundary() string {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.boundary
}

func (t *EnumType) SetIdentifierBoundary(boundary string) {
	t.setProperty(func() { t.boundary = boundary })
}

// ContentName is the qualified name of the enum content holding the content
// side rows of an extensible type.
func (t *EnumType) ContentName() string {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.contentName
}

func (t *EnumType) SetContentName(name string) {
	t.setProperty(func() { t.contentName = name })
}

func (t *EnumType) setProperty(set func()) {
	t.lock.Lock()
	set()
	t.lock.Unlock()
	t.project.publish(ChangeEvent{Kind: TypeChanged, Container: t})
}

// ContainsValues is true if every row of the type is defined in the type
// itself.
func (t *EnumType) ContainsValues() bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return !t.abstract && !t.extensible
}

// FindSuperType returns the supertype, or nil if there is none or it does not
// resolve.
func (t *EnumType) FindSuperType() *EnumType {
	name := t.SuperType()
	if name == "" {
		return nil
	}
	return t.project.FindEnumType(name)
}

// SupertypeHierarchy returns the resolvable supertypes, nearest first. The
// walk stops before revisiting a type, so cyclic hierarchies terminate.
func (t *EnumType) SupertypeHierarchy() (supers []*EnumType) {
	seen := map[*EnumType]bool{t: true}
	for s := t.FindSuperType(); s != nil && !seen[s]; s = s.FindSuperType() {
		seen[s] = true
		supers = append(supers, s)
	}
	return
}

// HasSupertypeCycle is true if the supertype chain leads back to a type
// already in it.
func (t *EnumType) HasSupertypeCycle() bool {
	supers := t.SupertypeHierarchy()
	last := t
	if n := len(supers); n > 0 {
		last = supers[n-1]
	}
	next := last.FindSuperType()
	return next != nil && (next == t || slices.Contains(supers, next))
}

// IsSubtypeOf is true if other is a proper supertype of the type.
func (t *EnumType) IsSubtypeOf(other *EnumType) bool {
	return slices.Contains(t.SupertypeHierarchy(), other)
}

// FindEnumContent returns the content holding the content side rows, or nil.
func (t *EnumType) FindEnumContent() *EnumContent {
	name := t.ContentName()
	if name == "" || !t.IsExtensible() {
		return nil
	}
	content := t.project.FindEnumContent(name)
	if content == nil || content.EnumType() != t.QualifiedName() {
		return nil
	}
	return content
}

// Attributes returns the declared attributes, including inherited copies and
// the literal name attribute, in column order.
func (t *EnumType) Attributes() []*Attribute {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return slices.Clone(t.attributes)
}

// Columns returns the attributes that have a column in the type's rows. The
// result is never nil.
func (t *EnumType) Columns(includeLiteralName bool) []*Attribute {
	attrs := iterator.Slice[*Attribute](t.Attributes())
	return iterator.Drain(iterator.Filter[*Attribute](attrs, func(a *Attribute) bool {
		return includeLiteralName || !a.IsLiteralName()
	}))
}

// FindAttribute returns the first declared attribute with the name, or nil.
func (t *EnumType) FindAttribute(name string) *Attribute {
	for _, a := range t.Attributes() {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

// IdentifierAttribute returns the first column attribute resolving as
// identifier, or nil.
func (t *EnumType) IdentifierAttribute() *Attribute {
	return t.findColumn(func(a *Attribute) bool { return a.FindIsIdentifier() })
}

// DisplayNameAttribute returns the first column attribute resolving as used as
// display name, or nil.
func (t *EnumType) DisplayNameAttribute() *Attribute {
	return t.findColumn(func(a *Attribute) bool { return a.FindIsUsedAsDisplayName() })
}

// LiteralNameAttribute returns the first literal name attribute, or nil.
func (t *EnumType) LiteralNameAttribute() *Attribute {
	return t.findColumn(func(a *Attribute) bool { return a.IsLiteralName() })
}

func (t *EnumType) findColumn(pred func(a *Attribute) bool) *Attribute {
	for _, a := range t.Attributes() {
		if pred(a) {
			return a
		}
	}
	return nil
}

// NewAttribute appends a regular attribute with an empty value in every row
// of the type.
func (t *EnumType) NewAttribute(name string) *Attribute {
	return t.addAttribute(&Attribute{owner: t, kind: Regular, name: name})
}

// NewLiteralNameAttribute appends a literal name attribute with an empty value
// in every row of the type.
func (t *EnumType) NewLiteralNameAttribute() *Attribute {
	return t.addAttribute(&Attribute{
		owner:    t,
		kind:     LiteralName,
		name:     sys.DefaultLiteralNameAttribute,
		datatype: sys.DatatypeString,
		unique:   true,
	})
}

func (t *EnumType) addAttribute(a *Attribute) *Attribute {
	t.lock.Lock()
	t.attributes = append(t.attributes, a)
	t.lock.Unlock()
	for _, row := range t.Rows() {
		row.appendValue()
	}
	t.project.publish(ChangeEvent{Kind: AttributesChanged, Container: t, Attribute: a})
	return a
}

// RemoveAttribute removes the attribute and its column in the type's rows.
func (t *EnumType) RemoveAttribute(a *Attribute) (extant bool) {
	t.lock.Lock()
	i := slices.Index(t.attributes, a)
	if extant = i >= 0; extant {
		t.attributes = slices.Delete(t.attributes, i, i+1)
	}
	t.lock.Unlock()
	if !extant {
		return
	}
	for _, row := range t.Rows() {
		row.removeValue(i)
	}
	t.project.publish(ChangeEvent{Kind: AttributesChanged, Container: t, Attribute: a})
	return
}

// MoveAttribute moves the attribute one position up or down, along with its
// column in the type's rows. It returns the attribute's new index, or -1 if it
// is not an attribute of the type.
func (t *EnumType) MoveAttribute(a *Attribute, up bool) (index int) {
	t.lock.Lock()
	index = slices.Index(t.attributes, a)
	if index < 0 {
		t.lock.Unlock()
		return
	}
	from := index
	if up && index > 0 {
		index--
	} else if !up && index < len(t.attributes)-1 {
		index++
	}
	t.attributes[from], t.attributes[index] = t.attributes[index], t.attributes[from]
	t.lock.Unlock()
	if from == index {
		return
	}
	for _, row := range t.Rows() {
		row.swapValues(from, index)
	}
	t.project.publish(ChangeEvent{Kind: AttributesChanged, Container: t, Attribute: a})
	return
}

// InheritAttributes adds an inherited copy of every supertype hierarchy
// attribute the type does not yet declare, returning the copies.
func (t *EnumType) InheritAttributes() (inherited []*Attribute) {
	supers := t.SupertypeHierarchy()
	for i := len(supers) - 1; i >= 0; i-- {
		for _, super := range supers[i].Columns(false) {
			if super.IsInherited() || t.FindAttribute(super.Name()) != nil {
				continue
			}
			a := t.NewAttribute(super.Name())
			a.setInheritedFlag()
			a.SetMultilingual(super.IsMultilingual())
			inherited = append(inherited, a)
		}
	}
	return
}

// IdentifierBoundaryRelevant is true if the type's rows are split by an
// identifier boundary that the identifier datatype can compare against.
func (t *EnumType) IdentifierBoundaryRelevant() bool {
	if t.IdentifierBoundary() == "" || !t.IsExtensible() {
		return false
	}
	id := t.IdentifierAttribute()
	if id == nil {
		return false
	}
	d := id.FindDatatype()
	return d != nil && d.SupportsCompare()
}

func (t *EnumType) Rows() []*Row { return t.rows.all() }

// NewRow appends a row with an empty value per column.
func (t *EnumType) NewRow() (row *Row) {
	row = newRow(t, len(t.Columns(true)))
	t.rows.add(row)
	t.project.publish(ChangeEvent{Kind: RowsChanged, Container: t, Row: row})
	return
}

func (t *EnumType) RemoveRow(row *Row) (extant bool) {
	extant = t.rows.remove(row)
	if extant {
		t.project.publish(ChangeEvent{Kind: RowsChanged, Container: t, Row: row})
	}
	return
}

func (t *EnumType) IncludesLiteralName() bool     { return true }
func (t *EnumType) IdentifierBelowBoundary() bool { return true }
func (t *EnumType) FindEnumType() *EnumType       { return t }
func (t *EnumType) DefaultLocale() language.Tag   { return t.project.DefaultLocale() }

// DefersValueValidation is true for abstract types, whose rows only hold
// defaults.
func (t *EnumType) DefersValueValidation() bool { return t.IsAbstract() }

func (t *EnumType) AggregatedRows() iterator.Collection[*Row] {
	return namespaceRows(t)
}
