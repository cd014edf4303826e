// Package datatype provides the built-in value datatypes.
package datatype

import (
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/dball/enumcheck/internal/sys"
	. "github.com/dball/enumcheck/internal/types"
	"golang.org/x/exp/constraints"
)

// DateLayout is the string form of Date values.
const DateLayout = "2006-01-02"

// Compare is the three-way comparison of ordered go values.
func Compare[X constraints.Ordered](x1 X, x2 X) (diff int) {
	switch {
	case x1 < x2:
		diff = -1
	case x1 > x2:
		diff = 1
	default:
		diff = 0
	}
	return
}

// scalar is a datatype whose values parse into an ordered go type. Null
// values are the empty string for every scalar.
type scalar[X constraints.Ordered] struct {
	name  string
	parse func(s string) (x X, ok bool)
}

func (d scalar[X]) Name() string          { return d.name }
func (d scalar[X]) IsVoid() bool          { return false }
func (d scalar[X]) IsAbstract() bool      { return false }
func (d scalar[X]) IsNull(s string) bool  { return s == "" }
func (d scalar[X]) SupportsCompare() bool { return true }

func (d scalar[X]) IsParsable(s string) bool {
	if s == "" {
		return true
	}
	_, ok := d.parse(s)
	return ok
}

func (d scalar[X]) Compare(a string, b string) int {
	x1, _ := d.parse(a)
	x2, _ := d.parse(b)
	return Compare(x1, x2)
}

// String has the empty string as its null value, so every string parses.
var String Datatype = scalar[string]{
	name:  sys.DatatypeString,
	parse: func(s string) (string, bool) { return s, true },
}

var Integer Datatype = scalar[int64]{
	name: sys.DatatypeInteger,
	parse: func(s string) (i int64, ok bool) {
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		ok = err == nil
		return
	},
}

// Date values compare as instants at midnight UTC.
var Date Datatype = scalar[int64]{
	name: sys.DatatypeDate,
	parse: func(s string) (unix int64, ok bool) {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return
		}
		unix = t.Unix()
		ok = true
		return
	},
}

var Decimal Datatype = decimal{}

type decimal struct{}

func (decimal) Name() string          { return sys.DatatypeDecimal }
func (decimal) IsVoid() bool          { return false }
func (decimal) IsAbstract() bool      { return false }
func (decimal) IsNull(s string) bool  { return s == "" }
func (decimal) SupportsCompare() bool { return true }

func (decimal) IsParsable(s string) bool {
	if s == "" {
		return true
	}
	_, ok := parseDecimal(s)
	return ok
}

func (decimal) Compare(a string, b string) int {
	r1, ok1 := parseDecimal(a)
	r2, ok2 := parseDecimal(b)
	if !ok1 || !ok2 {
		return Compare(a, b)
	}
	return r1.Cmp(r2)
}

func parseDecimal(s string) (r *big.Rat, ok bool) {
	s = strings.TrimSpace(s)
	// big.Rat also accepts fractions like 1/3 and base prefixes like 0x10,
	// which are not decimals.
	if s == "" || strings.ContainsAny(s, "/") || hasBasePrefix(s) {
		return
	}
	r, ok = new(big.Rat).SetString(s)
	return
}

func hasBasePrefix(s string) bool {
	digits := strings.TrimLeft(s, "+-")
	return len(digits) > 1 && digits[0] == '0' && strings.ContainsRune("bBoOxX", rune(digits[1]))
}

var Boolean Datatype = boolean{}

type boolean struct{}

func (boolean) Name() string                   { return sys.DatatypeBoolean }
func (boolean) IsVoid() bool                   { return false }
func (boolean) IsAbstract() bool               { return false }
func (boolean) IsNull(s string) bool           { return s == "" }
func (boolean) SupportsCompare() bool          { return false }
func (boolean) Compare(a string, b string) int { return Compare(a, b) }

func (boolean) IsParsable(s string) bool {
	return s == "" || s == "true" || s == "false"
}

// Void is the datatype of nothing, which is not a valid attribute datatype.
var Void Datatype = marker{name: sys.DatatypeVoid, void: true}

// Object is the abstract root datatype.
var Object Datatype = marker{name: sys.DatatypeObject, abstract: true}

type marker struct {
	name     string
	void     bool
	abstract bool
}

func (d marker) Name() string                   { return d.name }
func (d marker) IsVoid() bool                   { return d.void }
func (d marker) IsAbstract() bool               { return d.abstract }
func (d marker) IsNull(s string) bool           { return s == "" }
func (d marker) IsParsable(s string) bool       { return s == "" }
func (d marker) SupportsCompare() bool          { return false }
func (d marker) Compare(a string, b string) int { return Compare(a, b) }

var builtins = map[string]Datatype{
	sys.DatatypeString:  String,
	sys.DatatypeInteger: Integer,
	sys.DatatypeDecimal: Decimal,
	sys.DatatypeBoolean: Boolean,
	sys.DatatypeDate:    Date,
	sys.DatatypeVoid:    Void,
	sys.DatatypeObject:  Object,
}

// Lookup returns the built-in datatype with the given name, if any.
func Lookup(name string) (datatype Datatype, found bool) {
	datatype, found = builtins[name]
	return
}

// IsString is true if the datatype is the String datatype.
func IsString(datatype Datatype) bool {
	return SameDatatype(datatype, String)
}
