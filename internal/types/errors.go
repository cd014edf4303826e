package types

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Error is a contract violation, e.g. an operation that the receiver's kind
// does not support. Problems with model data are diagnostics, not errors.
type Error struct {
	Code    string
	Context map[string]any
}

func (err Error) Error() string {
	keys := make([]string, 0, len(err.Context))
	for k := range err.Context {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%+v", k, err.Context[k])
	}
	return fmt.Sprintf("%s: {%s}", err.Code, strings.Join(parts, " "))
}

// Is matches errors with the same code, so errors.Is(err, Error{Code: c})
// works for any context.
func (err Error) Is(target error) bool {
	other, ok := target.(Error)
	return ok && other.Code == err.Code
}

// NewError builds an error with the given code and alternating context keys
// and values.
func NewError(code string, args ...any) Error {
	n := len(args)
	if n%2 != 0 {
		panic("Invalid error context args")
	}
	err := Error{Code: code, Context: make(map[string]any, n/2)}
	for i := 0; i < n; i += 2 {
		s, ok := args[i].(string)
		if !ok {
			panic("Invalid error context args")
		}
		err.Context[s] = args[i+1]
	}
	return err
}
