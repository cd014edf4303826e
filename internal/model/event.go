package model

// ChangeKind classifies a change to the model.
type ChangeKind int8

const (
	// ValueChanged events carry the changed value, its row and container.
	ValueChanged ChangeKind = 1
	// RowsChanged events signal rows added to or removed from the container.
	RowsChanged ChangeKind = 2
	// AttributesChanged events signal attributes added to, removed from,
	// reordered within or changed on the container, which is an enum type.
	AttributesChanged ChangeKind = 3
	// TypeChanged events signal changed properties of the container, which is
	// an enum type, e.g. its supertype.
	TypeChanged ChangeKind = 4
	// ContentChanged events signal changed properties of the container, which
	// is an enum content.
	ContentChanged ChangeKind = 5
	// ProjectChanged events signal project wide changes without a container.
	ProjectChanged ChangeKind = 6
)

func (k ChangeKind) String() string {
	switch k {
	case ValueChanged:
		return "valueChanged"
	case RowsChanged:
		return "rowsChanged"
	case AttributesChanged:
		return "attributesChanged"
	case TypeChanged:
		return "typeChanged"
	case ContentChanged:
		return "contentChanged"
	case ProjectChanged:
		return "projectChanged"
	}
	return "unknown"
}

// ChangeEvent names the part of the model affected by a change.
type ChangeEvent struct {
	Kind      ChangeKind
	Container Container
	Row       *Row
	Value     *AttributeValue
	Attribute *Attribute
}

// IsStructural is true for changes other than to a single value.
func (e ChangeEvent) IsStructural() bool {
	return e.Kind != ValueChanged || e.Value == nil
}
