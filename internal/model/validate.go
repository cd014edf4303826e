package model

import (
	"github.com/dball/enumcheck/internal/diag"
	"github.com/dball/enumcheck/internal/sys"
	. "github.com/dball/enumcheck/internal/types"
)

// Validate reports the attribute's name, datatype, inheritance and role
// problems.
func (a *Attribute) Validate() (list diag.List) {
	a.validateName(&list)
	switch {
	case a.IsLiteralName():
		a.validateLiteralName(&list)
	case a.IsInherited():
		a.validateInherited(&list)
	default:
		a.validateDatatype(&list)
		if a.IsIdentifier() && a.IsMultilingualEffective() {
			list.Errorf(sys.AttrIdentifierMultilingual, a, "multilingual",
				"The identifier attribute %s cannot be multilingual.", a.Name())
		}
	}
	a.validateDuplicateIndicator(&list, (*Attribute).FindIsIdentifier,
		sys.AttrIdentifierDuplicate, "identifier", "identifier")
	a.validateDuplicateIndicator(&list, (*Attribute).FindIsUsedAsDisplayName,
		sys.AttrDisplayNameDuplicate, "usedAsDisplayName", "display name")
	return
}

func (a *Attribute) validateName(list *diag.List) {
	name := a.Name()
	if name == "" {
		list.Errorf(sys.AttrNameMissing, a, "name", "The attribute has no name.")
		return
	}
	if !sys.ValidIdentifier(name) {
		list.Errorf(sys.AttrNameInvalid, a, "name", "%q is not a valid attribute name.", name)
	}
	count := 0
	for _, other := range a.owner.Attributes() {
		if other.Name() == name {
			count++
		}
	}
	if count > 1 {
		list.Errorf(sys.AttrNameDuplicate, a, "name", "There is more than one attribute named %s.", name)
	}
	if a.IsInherited() {
		return
	}
	for _, t := range a.owner.SupertypeHierarchy() {
		if t.FindAttribute(name) != nil {
			list.Errorf(sys.AttrNameDuplicateInHierarchy, a, "name",
				"The supertype %s already declares an attribute named %s.", t.QualifiedName(), name)
			return
		}
	}
}

func (a *Attribute) validateDatatype(list *diag.List) {
	name := a.Datatype()
	if name == "" {
		list.Errorf(sys.AttrDatatypeMissing, a, "datatype", "The attribute %s has no datatype.", a.Name())
		return
	}
	d := a.owner.project.FindDatatype(name)
	switch {
	case d == nil:
		list.Errorf(sys.AttrDatatypeDoesNotExist, a, "datatype", "The datatype %s does not exist.", name)
		return
	case d.IsVoid():
		list.Errorf(sys.AttrDatatypeVoid, a, "datatype", "The datatype of an attribute cannot be void.")
		return
	case d.IsAbstract():
		list.Errorf(sys.AttrDatatypeAbstract, a, "datatype", "The datatype %s is abstract.", name)
		return
	}
	enum, ok := d.(*EnumDatatype)
	if !ok {
		return
	}
	ref := enum.EnumType()
	if ref == a.owner || ref.IsSubtypeOf(a.owner) {
		list.Errorf(sys.AttrDatatypeContainingType, a, "datatype",
			"The datatype %s cannot be the attribute's own enum type or one of its subtypes.", name)
		return
	}
	if a.owner.ContainsValues() && !ref.ContainsValues() {
		list.Errorf(sys.AttrEnumDatatypeWithoutValues, a, "datatype",
			"The enum type %s contains values, so its attributes cannot refer to %s, whose values are not part of the model.",
			a.owner.QualifiedName(), name)
	}
}

func (a *Attribute) validateInherited(list *diag.List) {
	super := a.FindSuperAttribute()
	if super == nil {
		list.Errorf(sys.AttrNoSuchAttributeInHierarchy, a, "inherited",
			"There is no attribute %s in the supertype hierarchy of %s.", a.Name(), a.owner.QualifiedName())
		return
	}
	declaring := a.FindDeclaringAttribute()
	if declaring != nil && declaring.IsMultilingual() != a.IsMultilingual() {
		list.Errorf(sys.AttrInheritedMultilingualMismatch, a, "multilingual",
			"The attribute %s must be multilingual if and only if %s is.", a.Name(), declaring.QualifiedName())
	}
}

func (a *Attribute) validateLiteralName(list *diag.List) {
	if !isStringDatatypeName(a.Datatype()) {
		list.Errorf(sys.AttrLiteralNameDatatypeNotString, a, "datatype",
			"The datatype of the literal name attribute must be %s.", sys.DatatypeString)
	}
	name := a.DefaultValueProvider()
	if name == "" {
		return
	}
	provider := a.FindDefaultValueProvider()
	switch {
	case provider == nil:
		list.Errorf(sys.AttrDefaultValueProviderMissing, a, "defaultValueProvider",
			"The default value provider %s is not an attribute of %s.", name, a.owner.QualifiedName())
	case provider.IsLiteralName():
		list.Errorf(sys.AttrDefaultValueProviderIsLiteral, a, "defaultValueProvider",
			"The literal name attribute cannot provide its own default values.")
	case !IsStringAttribute(provider):
		list.Errorf(sys.AttrDefaultValueProviderNotString, a, "defaultValueProvider",
			"The default value provider %s must have the datatype %s.", name, sys.DatatypeString)
	}
}

// validateDuplicateIndicator reports the attribute if it and another column
// attribute of its enum type both have the indicator.
func (a *Attribute) validateDuplicateIndicator(list *diag.List, indicator func(*Attribute) bool, code string, property string, role string) {
	if !indicator(a) {
		return
	}
	for _, other := range a.owner.Columns(true) {
		if other != a && indicator(other) {
			list.Errorf(code, a, property,
				"Only one attribute may be used as %s, but %s is as well.", role, other.Name())
			return
		}
	}
}

// IsStringAttribute is true if the attribute resolves to the String datatype.
func IsStringAttribute(a *Attribute) bool {
	d := a.FindDatatype()
	return d != nil && isStringDatatypeName(d.Name())
}

// Validate reports the value's type mismatch, parse and literal name
// problems. Values whose attribute does not resolve are not reported here;
// their row reports the structural problem.
func (v *AttributeValue) Validate() (list diag.List) {
	a := v.ResolveAttribute()
	if a == nil {
		return
	}
	switch v.CheckValueTypeMismatch(a) {
	case PlainToLocalized:
		list.Errorf(sys.ValueMultilingualExpected, v, "value",
			"The attribute %s is multilingual, but the value is not.", a.Name())
	case LocalizedToPlain:
		list.Errorf(sys.ValuePlainExpected, v, "value",
			"The attribute %s is not multilingual, but the value is.", a.Name())
	}
	if v.row.container.DefersValueValidation() {
		return
	}
	value := v.Value()
	if value == nil {
		return
	}
	if d := a.FindDatatype(); d != nil {
		for _, s := range value.Strings() {
			if !d.IsNull(s.Value) && !d.IsParsable(s.Value) {
				list.Errorf(sys.ValueNotParsable, v, "value",
					"%q is not a valid value of the datatype %s.", s.String(), d.Name())
			}
		}
	}
	if a.IsLiteralName() {
		if plain, ok := value.(Plain); ok && plain != "" && !sys.ValidIdentifier(string(plain)) {
			list.Errorf(sys.ValueLiteralNameInvalid, v, "value", "%q is not a valid literal name.", string(plain))
		}
	}
	return
}

// Validate reports a row whose value count does not match its container's
// column count. Rows of a container whose enum type does not resolve are
// reported by the container.
func (r *Row) Validate() (list diag.List) {
	if r.container.FindEnumType() == nil {
		return
	}
	if n, m := len(r.Values()), len(Columns(r.container)); n != m {
		list.Errorf(sys.RowValueCountMismatch, r, "values",
			"The row has %d values, but %s defines %d columns.", n, r.container.QualifiedName(), m)
	}
	return
}

// Validate reports the type's own problems, not those of its attributes or
// rows.
func (t *EnumType) Validate() (list diag.List) {
	if !sys.ValidQualifiedName(t.QualifiedName()) {
		list.Errorf(sys.TypeNameInvalid, t, "name", "%q is not a valid enum type name.", t.QualifiedName())
	}
	t.validateSuperType(&list)
	t.validateLiteralName(&list)
	if !t.IsAbstract() {
		for _, supers := range t.SupertypeHierarchy() {
			for _, a := range supers.Columns(false) {
				if !a.IsInherited() && t.FindAttribute(a.Name()) == nil {
					list.Errorf(sys.TypeAttributeNotInherited, t, "attributes",
						"The attribute %s of the supertype %s is not inherited.", a.Name(), supers.QualifiedName())
				}
			}
		}
	}
	t.validateBoundary(&list)
	return
}

func (t *EnumType) validateSuperType(list *diag.List) {
	name := t.SuperType()
	if name == "" {
		return
	}
	super := t.FindSuperType()
	switch {
	case super == nil:
		list.Errorf(sys.TypeSupertypeDoesNotExist, t, "superType", "The supertype %s does not exist.", name)
	case t.HasSupertypeCycle():
		list.Errorf(sys.TypeSupertypeCycle, t, "superType", "The supertype hierarchy of %s is cyclic.", t.QualifiedName())
	case !super.IsAbstract():
		list.Errorf(sys.TypeSupertypeNotAbstract, t, "superType", "The supertype %s is not abstract.", name)
	}
}

func (t *EnumType) validateLiteralName(list *diag.List) {
	count := 0
	for _, a := range t.Attributes() {
		if a.IsLiteralName() {
			count++
		}
	}
	switch {
	case count > 1:
		list.Errorf(sys.TypeLiteralNameDuplicate, t, "attributes", "There is more than one literal name attribute.")
	case count == 1 && t.IsAbstract():
		list.Errorf(sys.TypeLiteralNameNotNeeded, t, "attributes",
			"The abstract enum type %s does not need a literal name attribute.", t.QualifiedName())
	case count == 0 && !t.IsAbstract():
		list.Errorf(sys.TypeLiteralNameMissing, t, "attributes",
			"The enum type %s needs a literal name attribute.", t.QualifiedName())
	}
}

func (t *EnumType) validateBoundary(list *diag.List) {
	boundary := t.IdentifierBoundary()
	if boundary == "" {
		return
	}
	if !t.IsExtensible() {
		list.Warnf(sys.TypeBoundaryWithoutExtension, t, "identifierBoundary",
			"The identifier boundary is ignored because %s is not extensible.", t.QualifiedName())
	}
	if id := t.IdentifierAttribute(); id != nil {
		if d := id.FindDatatype(); d != nil && !d.IsParsable(boundary) {
			list.Errorf(sys.TypeBoundaryNotParsable, t, "identifierBoundary",
				"The identifier boundary %q is not a valid value of the datatype %s.", boundary, d.Name())
		}
	}
}

// Validate reports a content whose enum type is missing or does not refer
// back to it.
func (c *EnumContent) Validate() (list diag.List) {
	t := c.FindEnumType()
	switch {
	case t == nil:
		list.Errorf(sys.ContentTypeDoesNotExist, c, "enumType", "The enum type %s does not exist.", c.EnumType())
	case !t.IsExtensible():
		list.Errorf(sys.ContentTypeNotExtensible, c, "enumType",
			"The enum type %s is not extensible, so it cannot have an enum content.", t.QualifiedName())
	case t.ContentName() != c.QualifiedName():
		list.Errorf(sys.ContentTypeContentNameMismatch, c, "enumType",
			"The enum type %s names %q as its content.", t.QualifiedName(), t.ContentName())
	}
	return
}
