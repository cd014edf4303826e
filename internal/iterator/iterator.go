// Package iterator provides push iterators over collections that may span several
// containers, allowing for early termination.
package iterator

// Accept is a predicate that receives a value from a collection
// and returns true if more values are desired.
type Accept[T any] func(T) bool

// Collection is a source for iterable values.
type Collection[T any] interface {
	Each(Accept[T])
}

// Func adapts an each function to a collection.
type Func[T any] func(Accept[T])

func (f Func[T]) Each(accept Accept[T]) {
	f(accept)
}

// Slice is a wrapper type for slices.
type Slice[T any] []T

func (slice Slice[T]) Each(accept Accept[T]) {
	for _, value := range slice {
		if !accept(value) {
			return
		}
	}
}

// Concat is a collection of collections that will be iterated consecutively.
type Concat[T any] []Collection[T]

func (colls Concat[T]) Each(accept Accept[T]) {
	stopped := false
	for _, coll := range colls {
		coll.Each(func(value T) bool {
			if !accept(value) {
				stopped = true
			}
			return !stopped
		})
		if stopped {
			return
		}
	}
}

// Filter returns a collection of the values for which keep returns true.
func Filter[T any](coll Collection[T], keep func(T) bool) Collection[T] {
	return Func[T](func(accept Accept[T]) {
		coll.Each(func(value T) bool {
			if !keep(value) {
				return true
			}
			return accept(value)
		})
	})
}

// Drain returns a slice of the values in the collection.
func Drain[T any](coll Collection[T]) []T {
	values := []T{}
	coll.Each(func(value T) bool {
		values = append(values, value)
		return true
	})
	return values
}

// Any is true if pred holds for some value, stopping at the first.
func Any[T any](coll Collection[T], pred func(T) bool) (found bool) {
	coll.Each(func(value T) bool {
		found = pred(value)
		return !found
	})
	return
}
