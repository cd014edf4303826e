// Package validate composes the model's own validations with the uniqueness
// and identifier boundary checks into one diagnostic list per model part.
package validate

import (
	"log/slog"
	"sync"

	"github.com/dball/enumcheck/internal/boundary"
	"github.com/dball/enumcheck/internal/diag"
	"github.com/dball/enumcheck/internal/event"
	"github.com/dball/enumcheck/internal/model"
	"github.com/dball/enumcheck/internal/sys"
	"github.com/dball/enumcheck/internal/uniqueness"
)

// Validator validates the parts of one project. It keeps a uniqueness cache
// per container and a boundary validator per enum type, both created on
// first use. Validators are safe for concurrent use.
type Validator struct {
	project *model.Project
	logger  *slog.Logger
	degree  int
	sub     event.Subscription

	lock       sync.Mutex
	caches     map[model.Container]*uniqueness.Cache
	boundaries map[*model.EnumType]*boundary.Validator
	closed     bool
}

// New returns a validator for the project. Uniqueness indexes use btrees of
// the given degree.
func New(project *model.Project, logger *slog.Logger, degree int) (v *Validator) {
	if logger == nil {
		logger = slog.Default()
	}
	v = &Validator{
		project:    project,
		logger:     logger,
		degree:     degree,
		caches:     map[model.Container]*uniqueness.Cache{},
		boundaries: map[*model.EnumType]*boundary.Validator{},
	}
	v.sub = project.Events().Subscribe(v.onChange)
	return
}

// Close releases the validator's caches. The validator must not be used
// afterwards.
func (v *Validator) Close() {
	v.lock.Lock()
	caches := v.caches
	v.caches = map[model.Container]*uniqueness.Cache{}
	v.boundaries = map[*model.EnumType]*boundary.Validator{}
	v.closed = true
	v.lock.Unlock()
	v.project.Events().Unsubscribe(v.sub)
	for _, cache := range caches {
		cache.Close()
	}
}

// ValidateAttribute reports the attribute's definition problems.
func (v *Validator) ValidateAttribute(a *model.Attribute) diag.List {
	return a.Validate()
}

// ValidateValue reports the value's type, parse, literal name, uniqueness and
// identifier boundary problems. Values of rows whose validation is deferred
// get the type mismatch check only.
func (v *Validator) ValidateValue(value *model.AttributeValue) (list diag.List) {
	list = value.Validate()
	a := value.ResolveAttribute()
	container := value.Row().Container()
	if a == nil || container.DefersValueValidation() {
		return
	}
	if a.FindIsUnique() {
		list.Merge(v.validateUnique(value, a))
	}
	if b := v.boundaryFor(container); b != nil {
		list.Merge(b.Validate(value))
	}
	return
}

func (v *Validator) validateUnique(value *model.AttributeValue, a *model.Attribute) (list diag.List) {
	cache := v.cacheFor(value.Row().Container())
	duplicates, ok := cache.ViolationsFor(value)
	if !ok || isNull(value, a) {
		list.Errorf(sys.ValueIdentifierEmpty, value, "value",
			"The value of the unique attribute %s must not be empty.", a.Name())
		return
	}
	for _, s := range duplicates {
		list.Errorf(sys.ValueIdentifierDuplicate, value, "value",
			"The value %s of the unique attribute %s is not unique.", s.String(), a.Name())
	}
	return
}

// isNull is true if every string of the value is null for the attribute's
// datatype.
func isNull(value *model.AttributeValue, a *model.Attribute) bool {
	d := a.FindDatatype()
	for _, s := range value.Value().Strings() {
		if d == nil && s.Value != "" || d != nil && !d.IsNull(s.Value) {
			return false
		}
	}
	return true
}

// ValidateRow reports the row's structural problems and those of its values.
func (v *Validator) ValidateRow(row *model.Row) (list diag.List) {
	list = row.Validate()
	if !list.IsEmpty() {
		return
	}
	for _, value := range row.Values() {
		list.Merge(v.ValidateValue(value))
	}
	return
}

// ValidateType reports the problems of the type, its attributes and its rows.
func (v *Validator) ValidateType(t *model.EnumType) (list diag.List) {
	list = t.Validate()
	for _, a := range t.Attributes() {
		list.Merge(v.ValidateAttribute(a))
	}
	for _, row := range t.Rows() {
		list.Merge(v.ValidateRow(row))
	}
	return
}

// ValidateContent reports the problems of the content and its rows.
func (v *Validator) ValidateContent(c *model.EnumContent) (list diag.List) {
	list = c.Validate()
	for _, row := range c.Rows() {
		list.Merge(v.ValidateRow(row))
	}
	return
}

// ValidateProject validates every enum type, then every enum content, in the
// order they were added.
func (v *Validator) ValidateProject() (list diag.List) {
	types := v.project.EnumTypes()
	for _, t := range types {
		list.Merge(v.ValidateType(t))
	}
	contents := v.project.EnumContents()
	for _, c := range contents {
		list.Merge(v.ValidateContent(c))
	}
	v.logger.Debug("Validated project",
		"types", len(types),
		"contents", len(contents),
		"diagnostics", list.Len(),
		"severity", list.MaxSeverity().String())
	return
}

func (v *Validator) cacheFor(container model.Container) (cache *uniqueness.Cache) {
	v.lock.Lock()
	defer v.lock.Unlock()
	cache = v.caches[container]
	if cache != nil {
		return
	}
	cache = uniqueness.New(container, v.logger, v.degree)
	if v.closed {
		cache.Close()
		return
	}
	v.caches[container] = cache
	v.logger.Debug("Created uniqueness cache", "container", container.QualifiedName())
	return
}

func (v *Validator) boundaryFor(container model.Container) (b *boundary.Validator) {
	t := container.FindEnumType()
	if t == nil {
		return
	}
	v.lock.Lock()
	defer v.lock.Unlock()
	b = v.boundaries[t]
	if b == nil {
		b = boundary.NewValidator(t)
		if !v.closed {
			v.boundaries[t] = b
		}
	}
	return
}

// onChange drops the boundary validators, which resolve the identifier
// attribute once, on any change other than to a single value. Removed
// containers release their uniqueness caches.
func (v *Validator) onChange(e model.ChangeEvent) {
	if !e.IsStructural() {
		return
	}
	var released []*uniqueness.Cache
	v.lock.Lock()
	v.boundaries = map[*model.EnumType]*boundary.Validator{}
	if t, ok := e.Container.(*model.EnumType); ok && e.Kind == model.TypeChanged && v.project.FindEnumType(t.QualifiedName()) != t {
		if cache := v.caches[t]; cache != nil {
			released = append(released, cache)
			delete(v.caches, t)
		}
	}
	v.lock.Unlock()
	for _, cache := range released {
		cache.Close()
	}
}
