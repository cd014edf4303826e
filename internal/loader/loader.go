// Package loader reads project documents into the model.
//
// A project document is YAML:
//
//	default_locale: en
//	types:
//	  - name: Color
//	    extensible: true
//	    identifier_boundary: "1000"
//	    content: Colors
//	    attributes:
//	      - {name: code, datatype: Integer, unique: true, identifier: true}
//	      - {name: name, datatype: String, multilingual: true}
//	      - {name: LITERAL_NAME, literal_name: true, default_value_provider: name}
//	    rows:
//	      - [1, {en: Red, de: Rot}, RED]
//	contents:
//	  - name: Colors
//	    type: Color
//	    rows:
//	      - [2000, {en: Blue}]
//
// Rows list one cell per column in attribute order. Scalar cells are plain
// values, mappings from locale to string are localized values, and null cells
// are null values. Content rows have no literal name cell.
package loader

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dball/enumcheck/internal/model"
	. "github.com/dball/enumcheck/internal/types"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a project.
type Document struct {
	DefaultLocale string            `yaml:"default_locale"`
	Types         []TypeDocument    `yaml:"types"`
	Contents      []ContentDocument `yaml:"contents"`
}

type TypeDocument struct {
	Name               string              `yaml:"name"`
	SuperType          string              `yaml:"supertype"`
	Abstract           bool                `yaml:"abstract"`
	Extensible         bool                `yaml:"extensible"`
	IdentifierBoundary string              `yaml:"identifier_boundary"`
	Content            string              `yaml:"content"`
	Attributes         []AttributeDocument `yaml:"attributes"`
	Rows               []RowDocument       `yaml:"rows"`
}

type AttributeDocument struct {
	Name                 string `yaml:"name"`
	Datatype             string `yaml:"datatype"`
	Inherited            bool   `yaml:"inherited"`
	Unique               bool   `yaml:"unique"`
	Identifier           bool   `yaml:"identifier"`
	DisplayName          bool   `yaml:"display_name"`
	Multilingual         bool   `yaml:"multilingual"`
	LiteralName          bool   `yaml:"literal_name"`
	DefaultValueProvider string `yaml:"default_value_provider"`
}

type ContentDocument struct {
	Name string        `yaml:"name"`
	Type string        `yaml:"type"`
	Rows []RowDocument `yaml:"rows"`
}

// RowDocument is the list of cells of one row.
type RowDocument []Cell

// UnmarshalYAML decodes the cells one by one. yaml.v3 drops null elements of a
// sequence of structs, so null cells are kept here as the zero Cell.
func (row *RowDocument) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: rows are sequences of cells", node.Line)
	}
	cells := make(RowDocument, len(node.Content))
	for i, child := range node.Content {
		if child.ShortTag() == "!!null" {
			continue
		}
		if err := child.Decode(&cells[i]); err != nil {
			return err
		}
	}
	*row = cells
	return nil
}

// Cell is one attribute value of a row.
type Cell struct {
	Value Value
}

func (cell *Cell) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		cell.Value = Plain(node.Value)
		return nil
	case yaml.MappingNode:
		var strs map[string]string
		if err := node.Decode(&strs); err != nil {
			return fmt.Errorf("line %d: localized values map locales to strings: %w", node.Line, err)
		}
		localized := make(Localized, len(strs))
		for s, value := range strs {
			locale, err := ParseLocale(s)
			if err != nil {
				return fmt.Errorf("line %d: %w", node.Line, err)
			}
			localized[locale] = value
		}
		cell.Value = localized
		return nil
	}
	return fmt.Errorf("line %d: cells are strings or maps of locales to strings", node.Line)
}

// Loader builds projects from documents.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new project loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadFile reads the project document at path. The document's default locale,
// if any, takes precedence over the given one.
func (l *Loader) LoadFile(path string, defaultLocale language.Tag) (*model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	project, err := l.Load(data, defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Debug("Loaded project", slog.String("path", path),
		slog.Int("types", len(project.EnumTypes())),
		slog.Int("contents", len(project.EnumContents())))
	return project, nil
}

// Load parses a project document.
func (l *Loader) Load(data []byte, defaultLocale language.Tag) (*model.Project, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse project document: %w", err)
	}
	return l.Build(doc, defaultLocale)
}

// Build creates the project described by the document. Types are created
// before any of them is populated, so attributes may refer to types declared
// later in the document.
func (l *Loader) Build(doc Document, defaultLocale language.Tag) (project *model.Project, err error) {
	if doc.DefaultLocale != "" {
		if defaultLocale, err = ParseLocale(doc.DefaultLocale); err != nil {
			return
		}
	}
	project = model.NewProject(defaultLocale)
	types := make([]*model.EnumType, len(doc.Types))
	for i, t := range doc.Types {
		if types[i], err = project.NewEnumType(t.Name); err != nil {
			return nil, err
		}
	}
	for i, t := range doc.Types {
		if err = buildType(types[i], t); err != nil {
			return nil, fmt.Errorf("enum type %s: %w", t.Name, err)
		}
	}
	for _, c := range doc.Contents {
		content, err := project.NewEnumContent(c.Name, c.Type)
		if err != nil {
			return nil, err
		}
		if err = buildRows(content, c.Rows); err != nil {
			return nil, fmt.Errorf("enum content %s: %w", c.Name, err)
		}
	}
	return
}

func buildType(t *model.EnumType, doc TypeDocument) (err error) {
	t.SetSuperType(doc.SuperType)
	t.SetAbstract(doc.Abstract)
	t.SetExtensible(doc.Extensible)
	t.SetIdentifierBoundary(doc.IdentifierBoundary)
	t.SetContentName(doc.Content)
	for _, a := range doc.Attributes {
		if err = buildAttribute(t, a); err != nil {
			return fmt.Errorf("attribute %s: %w", a.Name, err)
		}
	}
	return buildRows(t, doc.Rows)
}

func buildAttribute(t *model.EnumType, doc AttributeDocument) (err error) {
	if doc.LiteralName {
		a := t.NewLiteralNameAttribute()
		if doc.Name != "" {
			a.SetName(doc.Name)
		}
		if doc.Datatype != "" {
			a.SetDatatype(doc.Datatype)
		}
		if doc.Inherited {
			if err = a.SetInherited(true); err != nil {
				return
			}
		}
		if doc.Identifier {
			if err = a.SetIdentifier(true); err != nil {
				return
			}
		}
		if doc.DisplayName {
			if err = a.SetUsedAsDisplayName(true); err != nil {
				return
			}
		}
		return a.SetDefaultValueProvider(doc.DefaultValueProvider)
	}
	a := t.NewAttribute(doc.Name)
	if doc.Inherited {
		if err = a.SetInherited(true); err != nil {
			return
		}
	} else {
		a.SetDatatype(doc.Datatype)
		a.SetUnique(doc.Unique)
		if err = a.SetIdentifier(doc.Identifier); err != nil {
			return
		}
		if err = a.SetUsedAsDisplayName(doc.DisplayName); err != nil {
			return
		}
	}
	a.SetMultilingual(doc.Multilingual)
	if doc.DefaultValueProvider != "" {
		err = a.SetDefaultValueProvider(doc.DefaultValueProvider)
	}
	return
}

func buildRows(c model.Container, rows []RowDocument) error {
	for i, cells := range rows {
		row := c.NewRow()
		values := row.Values()
		if len(cells) != len(values) {
			return fmt.Errorf("row %d has %d cells, but there are %d columns", i, len(cells), len(values))
		}
		for j, cell := range cells {
			values[j].SetValue(cell.Value)
		}
	}
	return nil
}
