// Package sys defines the system names, diagnostic codes and naming rules.
package sys

import (
	"strings"
	"unicode"
)

// Built-in datatype names.
const (
	DatatypeString  = "String"
	DatatypeInteger = "Integer"
	DatatypeDecimal = "Decimal"
	DatatypeBoolean = "Boolean"
	DatatypeDate    = "Date"
	DatatypeVoid    = "void"
	DatatypeObject  = "Object"
)

// DefaultLiteralNameAttribute is the name given to new literal name attributes.
const DefaultLiteralNameAttribute = "LITERAL_NAME"

// Attribute diagnostic codes.
const (
	AttrNameMissing                   = "enumattribute.name.missing"
	AttrNameInvalid                   = "enumattribute.name.invalid"
	AttrNameDuplicate                 = "enumattribute.name.duplicate"
	AttrNameDuplicateInHierarchy      = "enumattribute.name.duplicateInSupertypeHierarchy"
	AttrDatatypeMissing               = "enumattribute.datatype.missing"
	AttrDatatypeDoesNotExist          = "enumattribute.datatype.doesNotExist"
	AttrDatatypeVoid                  = "enumattribute.datatype.void"
	AttrDatatypeAbstract              = "enumattribute.datatype.abstract"
	AttrDatatypeContainingType        = "enumattribute.datatype.containingTypeOrSubtype"
	AttrEnumDatatypeWithoutValues     = "enumattribute.datatype.enumWithoutValues"
	AttrIdentifierDuplicate           = "enumattribute.identifier.duplicate"
	AttrDisplayNameDuplicate          = "enumattribute.displayName.duplicate"
	AttrIdentifierMultilingual        = "enumattribute.identifier.multilingual"
	AttrNoSuchAttributeInHierarchy    = "enumattribute.inherited.noSuchAttributeInSupertypeHierarchy"
	AttrInheritedMultilingualMismatch = "enumattribute.inherited.multilingualMismatch"
	AttrDefaultValueProviderMissing   = "enumattribute.literalName.defaultValueProviderDoesNotExist"
	AttrDefaultValueProviderNotString = "enumattribute.literalName.defaultValueProviderNotString"
	AttrDefaultValueProviderIsLiteral = "enumattribute.literalName.defaultValueProviderIsLiteralName"
	AttrLiteralNameDatatypeNotString  = "enumattribute.literalName.datatypeNotString"
)

// Value diagnostic codes.
const (
	ValueMultilingualExpected    = "enumvalue.type.multilingualExpected"
	ValuePlainExpected           = "enumvalue.type.plainExpected"
	ValueNotParsable             = "enumvalue.value.notParsable"
	ValueIdentifierDuplicate     = "enumvalue.identifier.duplicate"
	ValueIdentifierEmpty         = "enumvalue.identifier.empty"
	ValueLiteralNameInvalid      = "enumvalue.literalName.invalid"
	ValueBoundaryTypeViolated    = "enumvalue.identifierBoundary.typeSide"
	ValueBoundaryContentViolated = "enumvalue.identifierBoundary.contentSide"
	RowValueCountMismatch        = "enumvalue.row.valueCountMismatch"
)

// Type and content diagnostic codes.
const (
	TypeNameInvalid                = "enumtype.name.invalid"
	TypeSupertypeDoesNotExist      = "enumtype.supertype.doesNotExist"
	TypeSupertypeNotAbstract       = "enumtype.supertype.notAbstract"
	TypeSupertypeCycle             = "enumtype.supertype.cycle"
	TypeLiteralNameMissing         = "enumtype.literalName.missing"
	TypeLiteralNameNotNeeded       = "enumtype.literalName.notNeeded"
	TypeLiteralNameDuplicate       = "enumtype.literalName.duplicate"
	TypeAttributeNotInherited      = "enumtype.attribute.notInherited"
	TypeBoundaryNotParsable        = "enumtype.identifierBoundary.notParsable"
	TypeBoundaryWithoutExtension   = "enumtype.identifierBoundary.notExtensible"
	ContentTypeDoesNotExist        = "enumcontent.enumtype.doesNotExist"
	ContentTypeNotExtensible       = "enumcontent.enumtype.notExtensible"
	ContentTypeContentNameMismatch = "enumcontent.enumtype.contentNameMismatch"
)

// IsIdentifierStart is true if r may begin an identifier token.
func IsIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

// IsIdentifierPart is true if r may continue an identifier token.
func IsIdentifierPart(r rune) bool {
	return IsIdentifierStart(r) || unicode.IsDigit(r)
}

// reservedWords are the Java and Go keywords and literals, which generated
// code cannot use as names. Matching is case sensitive, so the upper case
// tokens of LiteralNameFrom never collide.
var reservedWords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "chan": true, "char": true, "class": true,
	"const": true, "continue": true, "default": true, "defer": true, "do": true,
	"double": true, "else": true, "enum": true, "extends": true, "fallthrough": true,
	"false": true, "final": true, "finally": true, "float": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "implements": true,
	"import": true, "instanceof": true, "int": true, "interface": true, "long": true,
	"map": true, "native": true, "new": true, "null": true, "package": true,
	"private": true, "protected": true, "public": true, "range": true, "return": true,
	"select": true, "short": true, "static": true, "strictfp": true, "struct": true,
	"super": true, "switch": true, "synchronized": true, "this": true, "throw": true,
	"throws": true, "transient": true, "true": true, "try": true, "type": true,
	"var": true, "void": true, "volatile": true, "while": true,
}

// IsReservedWord is true if s is a keyword or literal of generated code.
func IsReservedWord(s string) bool {
	return reservedWords[s]
}

// ValidIdentifier is true if s is a non-empty identifier token that is not a
// reserved word.
func ValidIdentifier(s string) bool {
	if s == "" || IsReservedWord(s) {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !IsIdentifierStart(r) {
				return false
			}
		} else if !IsIdentifierPart(r) {
			return false
		}
	}
	return true
}

// ValidQualifiedName is true if s is a dot separated sequence of identifiers.
func ValidQualifiedName(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if !ValidIdentifier(part) {
			return false
		}
	}
	return true
}

// LiteralNameFrom derives an upper case identifier token from s, replacing
// runs of characters that cannot appear in identifiers with underscores and
// prefixing an underscore if s begins with a digit. The result is empty if s
// has no identifier characters.
func LiteralNameFrom(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range s {
		if !IsIdentifierPart(r) || r == '$' {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteRune('_')
			pendingSep = false
		}
		if b.Len() == 0 && !IsIdentifierStart(r) {
			b.WriteRune('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
