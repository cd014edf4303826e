package model

import (
	"sync"

	"github.com/dball/enumcheck/internal/datatype"
	"github.com/dball/enumcheck/internal/sys"
	. "github.com/dball/enumcheck/internal/types"
	"golang.org/x/exp/slices"
)

// Kind distinguishes regular attributes from literal name attributes.
type Kind int8

const (
	Regular     Kind = 1
	LiteralName Kind = 2
)

// Attribute defines one column of an enum type's rows.
//
// An inherited attribute is a copy of the attribute of the same name declared
// by the nearest supertype. Its datatype, uniqueness, identifier and display
// name flags are always read from that declaration.
//
// A literal name attribute supplies a code-safe token per row. It is always a
// unique String column and never inherited, identifier or display name.
type Attribute struct {
	owner *EnumType
	kind  Kind

	lock                 sync.RWMutex
	name                 string
	datatype             string
	inherited            bool
	unique               bool
	identifier           bool
	usedAsDisplayName    bool
	multilingual         bool
	defaultValueProvider string
}

func (a *Attribute) EnumType() *EnumType { return a.owner }
func (a *Attribute) Kind() Kind          { return a.kind }
func (a *Attribute) IsLiteralName() bool { return a.kind == LiteralName }

// QualifiedName is the enum type's qualified name and the attribute name.
func (a *Attribute) QualifiedName() string {
	return a.owner.QualifiedName() + "." + a.Name()
}

func (a *Attribute) Name() string {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.name
}

func (a *Attribute) SetName(name string) {
	a.set(func() { a.name = name })
}

// Datatype is the locally declared datatype name, empty for inherited
// attributes.
func (a *Attribute) Datatype() string {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.datatype
}

func (a *Attribute) SetDatatype(datatype string) {
	a.set(func() { a.datatype = datatype })
}

func (a *Attribute) IsInherited() bool {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.inherited
}

// SetInherited marks the attribute as inherited or declared. Inherited
// attributes carry no local datatype, uniqueness, identifier or display name
// flags, so those are cleared.
func (a *Attribute) SetInherited(inherited bool) (err error) {
	if a.IsLiteralName() {
		err = NewError("attribute.literalName.inherited", "attribute", a.QualifiedName())
		return
	}
	a.set(func() {
		a.inherited = inherited
		if inherited {
			a.clearInheritedFields()
		}
	})
	return
}

func (a *Attribute) setInheritedFlag() {
	a.set(func() {
		a.inherited = true
		a.clearInheritedFields()
	})
}

func (a *Attribute) clearInheritedFields() {
	a.datatype = ""
	a.unique = false
	a.identifier = false
	a.usedAsDisplayName = false
}

// IsUnique is the local uniqueness flag. Use FindIsUnique for the effective one.
func (a *Attribute) IsUnique() bool {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.unique
}

func (a *Attribute) SetUnique(unique bool) {
	a.set(func() { a.unique = unique })
}

// IsIdentifier is the local identifier flag. Use FindIsIdentifier for the
// effective one.
func (a *Attribute) IsIdentifier() bool {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.identifier
}

func (a *Attribute) SetIdentifier(identifier bool) (err error) {
	if a.IsLiteralName() {
		err = NewError("attribute.literalName.identifier", "attribute", a.QualifiedName())
		return
	}
	a.set(func() { a.identifier = identifier })
	return
}

// IsUsedAsDisplayName is the local display name flag. Use
// FindIsUsedAsDisplayName for the effective one.
func (a *Attribute) IsUsedAsDisplayName() bool {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.usedAsDisplayName
}

func (a *Attribute) SetUsedAsDisplayName(usedAsDisplayName bool) (err error) {
	if a.IsLiteralName() {
		err = NewError("attribute.literalName.displayName", "attribute", a.QualifiedName())
		return
	}
	a.set(func() { a.usedAsDisplayName = usedAsDisplayName })
	return
}

// IsMultilingual is the stored multilingual flag, which is ignored unless the
// attribute resolves to the String datatype.
func (a *Attribute) IsMultilingual() bool {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.multilingual
}

func (a *Attribute) SetMultilingual(multilingual bool) {
	a.set(func() { a.multilingual = multilingual })
}

// DefaultValueProvider names the attribute whose values seed generated literal
// names. It is only defined for literal name attributes.
func (a *Attribute) DefaultValueProvider() string {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.defaultValueProvider
}

func (a *Attribute) SetDefaultValueProvider(name string) (err error) {
	if !a.IsLiteralName() {
		err = NewError("attribute.regular.defaultValueProvider", "attribute", a.QualifiedName())
		return
	}
	a.set(func() { a.defaultValueProvider = name })
	return
}

func (a *Attribute) set(set func()) {
	a.lock.Lock()
	set()
	a.lock.Unlock()
	a.owner.project.publish(ChangeEvent{Kind: AttributesChanged, Container: a.owner, Attribute: a})
}

// Index returns the attribute's position in the enum type's attributes.
func (a *Attribute) Index() int {
	return slices.Index(a.owner.Attributes(), a)
}

// FindSuperAttribute returns the attribute of the same name declared by the
// nearest supertype, or nil if the attribute is not inherited or no supertype
// declares the name.
func (a *Attribute) FindSuperAttribute() *Attribute {
	if !a.IsInherited() {
		return nil
	}
	name := a.Name()
	for _, t := range a.owner.SupertypeHierarchy() {
		if super := t.FindAttribute(name); super != nil && !super.IsLiteralName() {
			return super
		}
	}
	return nil
}

// FindDeclaringAttribute returns the attribute itself if it is declared, else
// the declaration its inheritance resolves to, or nil.
func (a *Attribute) FindDeclaringAttribute() *Attribute {
	seen := map[*Attribute]bool{}
	for current := a; current != nil && !seen[current]; current = current.FindSuperAttribute() {
		if !current.IsInherited() {
			return current
		}
		seen[current] = true
	}
	return nil
}

// FindDatatype resolves the effective datatype, or nil.
func (a *Attribute) FindDatatype() Datatype {
	declaring := a.FindDeclaringAttribute()
	if declaring == nil {
		return nil
	}
	name := declaring.Datatype()
	if name == "" {
		return nil
	}
	return a.owner.project.FindDatatype(name)
}

// FindIsUnique resolves the effective uniqueness. Literal names are always unique.
func (a *Attribute) FindIsUnique() bool {
	if a.IsLiteralName() {
		return true
	}
	declaring := a.FindDeclaringAttribute()
	return declaring != nil && declaring.IsUnique()
}

func (a *Attribute) FindIsIdentifier() bool {
	declaring := a.FindDeclaringAttribute()
	return declaring != nil && declaring.IsIdentifier()
}

func (a *Attribute) FindIsUsedAsDisplayName() bool {
	declaring := a.FindDeclaringAttribute()
	return declaring != nil && declaring.IsUsedAsDisplayName()
}

// IsMultilingualEffective is true if the attribute is multilingual and
// resolves to the String datatype.
func (a *Attribute) IsMultilingualEffective() bool {
	return a.IsMultilingual() && datatype.IsString(a.FindDatatype())
}

// FindDefaultValueProvider resolves the default value provider by name on
// every call, or returns nil.
func (a *Attribute) FindDefaultValueProvider() *Attribute {
	name := a.DefaultValueProvider()
	if !a.IsLiteralName() || name == "" {
		return nil
	}
	return a.owner.FindAttribute(name)
}

// isStringDatatypeName is true for the name of the String datatype.
func isStringDatatypeName(name string) bool {
	return name == sys.DatatypeString
}
