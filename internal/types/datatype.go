package types

// Datatype is a value datatype as seen by the validation engine. Values are
// handled in their string form throughout.
type Datatype interface {
	// Name is the qualified name of the datatype. Datatypes are equal iff their
	// names are equal.
	Name() string
	// IsVoid is true for the void datatype.
	IsVoid() bool
	// IsAbstract is true for datatypes that cannot have values of their own.
	IsAbstract() bool
	// IsParsable is true if s is a valid value of the datatype. Null values
	// are parsable.
	IsParsable(s string) bool
	// IsNull is true if s represents the null value of the datatype.
	IsNull(s string) bool
	// SupportsCompare is true if Compare may be called.
	SupportsCompare() bool
	// Compare returns -1, 0, or 1 as a is less than, equal to, or greater
	// than b. Both must be parsable, non-null values.
	Compare(a string, b string) int
}

// SameDatatype is true if both datatypes are present and equal.
func SameDatatype(d1 Datatype, d2 Datatype) bool {
	return d1 != nil && d2 != nil && d1.Name() == d2.Name()
}
