// Package boundary checks that identifiers lie on their container's side of
// an enum type's identifier boundary.
package boundary

import (
	"github.com/dball/enumcheck/internal/diag"
	"github.com/dball/enumcheck/internal/model"
	"github.com/dball/enumcheck/internal/sys"
	. "github.com/dball/enumcheck/internal/types"
)

// Validator compares identifiers against the boundary of one enum type. The
// identifier attribute and its datatype are resolved when the validator is
// created; create a new validator after the type changes.
type Validator struct {
	enumType   *model.EnumType
	boundary   string
	identifier *model.Attribute
	datatype   Datatype
}

// NewValidator resolves the type's identifier attribute. The validator
// validates nothing unless the boundary is relevant for the type.
func NewValidator(enumType *model.EnumType) (v *Validator) {
	v = &Validator{enumType: enumType}
	if !enumType.IdentifierBoundaryRelevant() {
		return
	}
	v.boundary = enumType.IdentifierBoundary()
	v.identifier = enumType.IdentifierAttribute()
	v.datatype = v.identifier.FindDatatype()
	if !v.datatype.IsParsable(v.boundary) {
		v.identifier, v.datatype = nil, nil
	}
	return
}

// EnumType returns the type whose boundary the validator checks.
func (v *Validator) EnumType() *model.EnumType {
	return v.enumType
}

// CanValidate is true if the value is a parsable identifier of a row of the
// validator's type or its content.
func (v *Validator) CanValidate(value *model.AttributeValue) bool {
	_, ok := v.candidate(value)
	return ok
}

func (v *Validator) candidate(value *model.AttributeValue) (s string, ok bool) {
	if v.identifier == nil {
		return
	}
	container := value.Row().Container()
	if container.FindEnumType() != v.enumType {
		return
	}
	a := value.ResolveAttribute()
	if a == nil || a.Name() != v.identifier.Name() {
		return
	}
	plain, isPlain := value.Value().(Plain)
	if !isPlain {
		return
	}
	s = string(plain)
	ok = !v.datatype.IsNull(s) && v.datatype.IsParsable(s)
	return
}

// Validate reports an identifier that does not compare below the boundary in
// a type row, or compares below it in a content row.
func (v *Validator) Validate(value *model.AttributeValue) (list diag.List) {
	s, ok := v.candidate(value)
	if !ok {
		return
	}
	below := v.datatype.Compare(s, v.boundary) < 0
	typeSide := value.Row().Container().IdentifierBelowBoundary()
	if below == typeSide {
		return
	}
	if typeSide {
		list.Errorf(sys.ValueBoundaryTypeViolated, value, "value",
			"The identifier %s must be less than the identifier boundary %s of %s.",
			s, v.boundary, v.enumType.QualifiedName())
	} else {
		list.Errorf(sys.ValueBoundaryContentViolated, value, "value",
			"The identifier %s must be greater than or equal to the identifier boundary %s of %s.",
			s, v.boundary, v.enumType.QualifiedName())
	}
	return
}
