package validate

import (
	"fmt"
	"sync"
	"testing"

	"github.com/dball/enumcheck/internal/diag"
	"github.com/dball/enumcheck/internal/model"
	"github.com/dball/enumcheck/internal/sys"
	. "github.com/dball/enumcheck/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type colors struct {
	project *model.Project
	color   *model.EnumType
	content *model.EnumContent
}

// newColors builds the extensible Color type with the integer identifier
// code, a name and a literal name derived from it.
func newColors(t *testing.T) (c colors) {
	c.project = model.NewProject(language.English)
	var err error
	c.color, err = c.project.NewEnumType("Color")
	require.NoError(t, err)
	c.color.SetExtensible(true)
	c.color.SetContentName("Colors")
	c.color.SetIdentifierBoundary("1000")
	code := c.color.NewAttribute("code")
	code.SetDatatype(sys.DatatypeInteger)
	code.SetUnique(true)
	require.NoError(t, code.SetIdentifier(true))
	name := c.color.NewAttribute("name")
	name.SetDatatype(sys.DatatypeString)
	require.NoError(t, c.color.NewLiteralNameAttribute().SetDefaultValueProvider("name"))
	c.content, err = c.project.NewEnumContent("Colors", "Color")
	require.NoError(t, err)
	return
}

func addRow(t *testing.T, container model.Container, code string, name string) (row *model.Row) {
	row = container.NewRow()
	row.ValueFor("code").SetValue(Plain(code))
	row.ValueFor("name").SetValue(Plain(name))
	if container.IncludesLiteralName() {
		require.True(t, row.FixLiteralName())
	}
	return
}

func codes(list diag.List) (codes []string) {
	for _, d := range list.Entries() {
		codes = append(codes, d.Code)
	}
	return
}

func TestColorScenario(t *testing.T) {
	c := newColors(t)
	v := New(c.project, nil, 0)
	defer v.Close()
	red := addRow(t, c.color, "1", "Red")
	addRow(t, c.color, "2", "Green")
	list := v.ValidateProject()
	require.True(t, list.IsEmpty(), list.Entries())

	addRow(t, c.content, "2000", "Blue")
	list = v.ValidateProject()
	require.True(t, list.IsEmpty(), list.Entries())

	dup := addRow(t, c.content, "1", "Crimson")
	list = v.ValidateProject()
	for _, row := range []*model.Row{red, dup} {
		found := list.For(row.ValueFor("code")).ByCode(sys.ValueIdentifierDuplicate)
		require.Equal(t, 1, found.Len(), row.QualifiedName())
		assert.Contains(t, found.Entries()[0].Message, "The value 1 ")
	}
	assert.True(t, list.For(dup.ValueFor("code")).ContainsCode(sys.ValueBoundaryContentViolated))
	assert.Equal(t, 3, list.Len(), codes(list))

	c.content.RemoveRow(dup)
	assert.True(t, v.ValidateProject().IsEmpty())
}

func TestDuplicatesAreReportedOnEveryRow(t *testing.T) {
	c := newColors(t)
	v := New(c.project, nil, 4)
	defer v.Close()
	rows := []*model.Row{
		addRow(t, c.color, "7", "A"),
		addRow(t, c.color, "8", "B"),
		addRow(t, c.color, "7", "C"),
	}
	assert.True(t, v.ValidateRow(rows[0]).ContainsCode(sys.ValueIdentifierDuplicate))
	assert.False(t, v.ValidateRow(rows[1]).ContainsCode(sys.ValueIdentifierDuplicate))
	assert.True(t, v.ValidateRow(rows[2]).ContainsCode(sys.ValueIdentifierDuplicate))

	rows[2].ValueFor("code").SetValue(Plain("9"))
	for _, row := range rows {
		assert.True(t, v.ValidateRow(row).IsEmpty(), row.QualifiedName())
	}

	t.Run("literal names are unique", func(t *testing.T) {
		rows[1].ValueFor(sys.DefaultLiteralNameAttribute).SetValue(Plain("A"))
		list := v.ValidateRow(rows[1])
		assert.Equal(t, []string{sys.ValueIdentifierDuplicate}, codes(list))
		assert.Equal(t, sys.DefaultLiteralNameAttribute, list.Entries()[0].Object.(*model.AttributeValue).ResolveAttribute().Name())
	})
}

func TestEmptyUniqueValues(t *testing.T) {
	c := newColors(t)
	v := New(c.project, nil, 0)
	defer v.Close()
	row := addRow(t, c.color, "1", "Red")

	row.ValueFor("code").SetValue(Plain(""))
	assert.Equal(t, []string{sys.ValueIdentifierEmpty}, codes(v.ValidateValue(row.ValueFor("code"))))
	row.ValueFor("code").SetValue(nil)
	assert.Equal(t, []string{sys.ValueIdentifierEmpty}, codes(v.ValidateValue(row.ValueFor("code"))))

	t.Run("non unique values may be empty", func(t *testing.T) {
		row.ValueFor("name").SetValue(Plain(""))
		assert.True(t, v.ValidateValue(row.ValueFor("name")).IsEmpty())
	})
}

func TestValueOrder(t *testing.T) {
	c := newColors(t)
	v := New(c.project, nil, 0)
	defer v.Close()
	row := addRow(t, c.color, "5000", "Red")
	addRow(t, c.color, "5000", "Rouge")
	row.ValueFor("code").SetValue(Plain("5000"))

	assert.Equal(t,
		[]string{sys.ValueIdentifierDuplicate, sys.ValueBoundaryTypeViolated},
		codes(v.ValidateValue(row.ValueFor("code"))))

	row.ValueFor("code").SetValue(Plain("lots"))
	assert.Equal(t, []string{sys.ValueNotParsable}, codes(v.ValidateValue(row.ValueFor("code"))))
}

func TestRoleExclusivity(t *testing.T) {
	c := newColors(t)
	v := New(c.project, nil, 0)
	defer v.Close()
	code := c.color.FindAttribute("code")
	other := c.color.NewAttribute("altCode")
	other.SetDatatype(sys.DatatypeInteger)
	require.NoError(t, other.SetIdentifier(true))

	assert.True(t, v.ValidateAttribute(code).ContainsCode(sys.AttrIdentifierDuplicate))
	assert.True(t, v.ValidateAttribute(other).ContainsCode(sys.AttrIdentifierDuplicate))

	require.NoError(t, other.SetIdentifier(false))
	assert.True(t, v.ValidateAttribute(code).IsEmpty())
	assert.True(t, v.ValidateAttribute(other).IsEmpty())

	t.Run("display names", func(t *testing.T) {
		name := c.color.FindAttribute("name")
		require.NoError(t, name.SetUsedAsDisplayName(true))
		require.NoError(t, other.SetUsedAsDisplayName(true))
		assert.True(t, v.ValidateAttribute(name).ContainsCode(sys.AttrDisplayNameDuplicate))
		assert.True(t, v.ValidateAttribute(other).ContainsCode(sys.AttrDisplayNameDuplicate))
		assert.False(t, v.ValidateAttribute(code).ContainsCode(sys.AttrDisplayNameDuplicate))
	})
}

func TestInheritedRoles(t *testing.T) {
	p := model.NewProject(language.English)
	v := New(p, nil, 0)
	defer v.Close()
	base, err := p.NewEnumType("Base")
	require.NoError(t, err)
	base.SetAbstract(true)
	id := base.NewAttribute("id")
	id.SetDatatype(sys.DatatypeString)
	id.SetUnique(true)
	require.NoError(t, id.SetIdentifier(true))
	label := base.NewAttribute("label")
	label.SetDatatype(sys.DatatypeString)
	label.SetMultilingual(true)

	sub, err := p.NewEnumType("Sub")
	require.NoError(t, err)
	sub.SetSuperType("Base")
	sub.InheritAttributes()
	sub.NewLiteralNameAttribute()
	require.True(t, v.ValidateProject().IsEmpty(), v.ValidateProject().Entries())

	t.Run("uniqueness resolves through inheritance", func(t *testing.T) {
		for _, s := range []string{"x", "x"} {
			row := sub.NewRow()
			row.ValueFor("id").SetValue(Plain(s))
			row.ValueFor("label").SetValue(Localized{language.English: s})
			row.ValueFor(sys.DefaultLiteralNameAttribute).SetValue(Plain("L" + fmt.Sprint(len(sub.Rows()))))
		}
		list := v.ValidateType(sub)
		assert.Equal(t, 2, list.ByCode(sys.ValueIdentifierDuplicate).Len(), list.Entries())
	})

	t.Run("multilingual must match the declaration", func(t *testing.T) {
		sub.FindAttribute("label").SetMultilingual(false)
		assert.True(t, v.ValidateAttribute(sub.FindAttribute("label")).ContainsCode(sys.AttrInheritedMultilingualMismatch))
	})

	t.Run("abstract rows are deferred", func(t *testing.T) {
		row := base.NewRow()
		row.ValueFor("id").SetValue(Plain(""))
		row.ValueFor("label").SetValue(Localized{language.English: "default"})
		assert.True(t, v.ValidateRow(row).IsEmpty())
		row.ValueFor("label").SetValue(Plain("plain"))
		assert.Equal(t, []string{sys.ValueMultilingualExpected}, codes(v.ValidateRow(row)))
	})
}

func TestStructuralProblems(t *testing.T) {
	c := newColors(t)
	v := New(c.project, nil, 0)
	defer v.Close()
	row := addRow(t, c.content, "2000", "Blue")
	c.color.NewAttribute("hex").SetDatatype(sys.DatatypeString)

	assert.Equal(t, []string{sys.RowValueCountMismatch}, codes(v.ValidateRow(row)))
	assert.Equal(t, 1, c.content.FixRows())
	assert.True(t, v.ValidateRow(row).IsEmpty())

	t.Run("content of another type", func(t *testing.T) {
		c.color.SetContentName("Other")
		assert.Equal(t, []string{sys.ContentTypeContentNameMismatch}, codes(v.ValidateContent(c.content)))
		c.color.SetContentName("Colors")
	})

	t.Run("missing literal name", func(t *testing.T) {
		c.color.RemoveAttribute(c.color.LiteralNameAttribute())
		assert.True(t, v.ValidateType(c.color).ContainsCode(sys.TypeLiteralNameMissing))
	})
}

func TestConcurrentValidation(t *testing.T) {
	c := newColors(t)
	v := New(c.project, nil, 0)
	defer v.Close()
	for i := 0; i < 20; i++ {
		addRow(t, c.color, fmt.Sprint(i), fmt.Sprintf("Color %d", i))
	}
	rows := c.color.Rows()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				v.ValidateProject()
			}
		}(w)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				row := rows[(w+i)%len(rows)]
				row.ValueFor("name").SetValue(Plain(fmt.Sprintf("Color %d", w*100+i)))
			}
		}(w)
	}
	wg.Wait()
	assert.True(t, v.ValidateProject().IsEmpty())
}

func TestClose(t *testing.T) {
	c := newColors(t)
	v := New(c.project, nil, 0)
	addRow(t, c.color, "1", "Red")
	v.ValidateProject()
	assert.Greater(t, c.project.Events().Len(), 1)
	v.Close()
	assert.Equal(t, 0, c.project.Events().Len())
}
