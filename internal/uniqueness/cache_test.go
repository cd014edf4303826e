package uniqueness

import (
	"fmt"
	"sync"
	"testing"

	"github.com/dball/enumcheck/internal/index"
	"github.com/dball/enumcheck/internal/model"
	"github.com/dball/enumcheck/internal/sys"
	. "github.com/dball/enumcheck/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type fixture struct {
	project *model.Project
	color   *model.EnumType
	colors  *model.EnumContent
}

func newFixture(t *testing.T) (f fixture) {
	f.project = model.NewProject(language.English)
	var err error
	f.color, err = f.project.NewEnumType("Color")
	require.NoError(t, err)
	f.color.SetExtensible(true)
	f.color.SetContentName("Colors")
	code := f.color.NewAttribute("code")
	code.SetDatatype(sys.DatatypeInteger)
	code.SetUnique(true)
	require.NoError(t, code.SetIdentifier(true))
	name := f.color.NewAttribute("name")
	name.SetDatatype(sys.DatatypeString)
	name.SetUnique(true)
	name.SetMultilingual(true)
	f.color.NewLiteralNameAttribute()
	f.colors, err = f.project.NewEnumContent("Colors", "Color")
	require.NoError(t, err)
	return
}

func addRow(c model.Container, code string) (row *model.Row) {
	row = c.NewRow()
	row.ValueFor("code").SetValue(Plain(code))
	return
}

func violations(t *testing.T, cache *Cache, row *model.Row, attribute string) []LocalizedString {
	found, ok := cache.ViolationsFor(row.ValueFor(attribute))
	require.True(t, ok)
	return found
}

func plain(s string) LocalizedString {
	return LocalizedString{Locale: NoLocale, Value: s}
}

func TestViolations(t *testing.T) {
	f := newFixture(t)
	cache := New(f.color, nil, 2)
	defer cache.Close()
	red := addRow(f.color, "1")
	green := addRow(f.color, "2")
	again := addRow(f.color, "1")

	assert.Equal(t, []LocalizedString{plain("1")}, violations(t, cache, red, "code"))
	assert.Equal(t, []LocalizedString{plain("1")}, violations(t, cache, again, "code"))
	assert.Empty(t, violations(t, cache, green, "code"))
	assert.Equal(t, 2, cache.Count("code", plain("1")))
	assert.Equal(t, 0, cache.Count("nope", plain("1")))

	t.Run("empty strings are never duplicates", func(t *testing.T) {
		blank1 := f.color.NewRow()
		blank2 := f.color.NewRow()
		assert.Empty(t, violations(t, cache, blank1, "code"))
		f.color.RemoveRow(blank1)
		f.color.RemoveRow(blank2)
	})

	t.Run("null and unresolved values are not ok", func(t *testing.T) {
		v := green.ValueFor("code")
		v.SetValue(nil)
		_, ok := cache.ViolationsFor(v)
		assert.False(t, ok)
		v.SetValue(Plain("2"))

		other, err := f.project.NewEnumType("Other")
		require.NoError(t, err)
		other.NewAttribute("other")
		_, ok = cache.ViolationsFor(other.NewRow().ValueFor("other"))
		assert.False(t, ok)
	})
}

func TestCoherence(t *testing.T) {
	f := newFixture(t)
	cache := New(f.color, nil, 0)
	defer cache.Close()
	red := addRow(f.color, "1")
	green := addRow(f.color, "2")
	assert.Empty(t, violations(t, cache, red, "code"))

	green.ValueFor("code").SetValue(Plain("1"))
	assert.Equal(t, []LocalizedString{plain("1")}, violations(t, cache, red, "code"))

	green.ValueFor("code").SetValue(Plain("3"))
	assert.Empty(t, violations(t, cache, red, "code"))
	assert.Empty(t, violations(t, cache, green, "code"))
}

func TestValueChangeDropsOnlyItsColumn(t *testing.T) {
	f := newFixture(t)
	cache := New(f.color, nil, 0)
	defer cache.Close()
	red := addRow(f.color, "1")
	red.ValueFor("name").SetValue(Localized{language.English: "Red"})
	violations(t, cache, red, "code")
	violations(t, cache, red, "name")
	require.Len(t, cache.columns, 2)

	red.ValueFor("name").SetValue(Localized{language.English: "Rouge"})
	assert.Len(t, cache.columns, 1)
	assert.Contains(t, cache.columns, 0)
}

func TestStructuralInvalidation(t *testing.T) {
	f := newFixture(t)
	cache := New(f.color, nil, 0)
	defer cache.Close()
	red := addRow(f.color, "1")
	again := addRow(f.color, "1")
	require.NotEmpty(t, violations(t, cache, red, "code"))

	f.color.RemoveRow(again)
	assert.Empty(t, cache.columns)
	assert.Empty(t, violations(t, cache, red, "code"))

	t.Run("attribute changes", func(t *testing.T) {
		addRow(f.color, "1")
		require.NotEmpty(t, violations(t, cache, red, "code"))
		f.color.MoveAttribute(f.color.FindAttribute("name"), true)
		assert.Empty(t, cache.columns)
		assert.NotEmpty(t, violations(t, cache, red, "code"))
	})

	t.Run("attribute removal", func(t *testing.T) {
		red.ValueFor("name").SetValue(Plain("1"))
		assert.Empty(t, violations(t, cache, red, "name"))
		assert.Equal(t, 2, cache.Count("code", plain("1")))
		require.Len(t, cache.columns, 2)

		require.True(t, f.color.RemoveAttribute(f.color.FindAttribute("name")))
		assert.Empty(t, cache.columns)
		assert.Equal(t, 2, cache.Count("code", plain("1")))
		assert.Equal(t, 0, cache.Count("name", plain("1")))
		assert.NotEmpty(t, violations(t, cache, red, "code"))
	})
}

func TestAncestorChangesInvalidate(t *testing.T) {
	p := model.NewProject(language.English)
	base, err := p.NewEnumType("Base")
	require.NoError(t, err)
	base.SetAbstract(true)
	id := base.NewAttribute("id")
	id.SetDatatype(sys.DatatypeString)
	id.SetUnique(true)
	sub, err := p.NewEnumType("Sub")
	require.NoError(t, err)
	sub.SetSuperType("Base")
	sub.InheritAttributes()
	unrelated, err := p.NewEnumType("Unrelated")
	require.NoError(t, err)
	unrelated.NewAttribute("id")

	cache := New(sub, nil, 0)
	defer cache.Close()
	row := sub.NewRow()
	row.ValueFor("id").SetValue(Plain("a"))
	violations(t, cache, row, "id")
	require.Len(t, cache.columns, 1)

	unrelated.NewRow().Values()[0].SetValue(Plain("a"))
	assert.Len(t, cache.columns, 1)

	id.SetUnique(false)
	assert.Empty(t, cache.columns)

	violations(t, cache, row, "id")
	p.SetDefaultLocale(language.German)
	assert.Empty(t, cache.columns)
}

func TestNamespaceSpansContent(t *testing.T) {
	f := newFixture(t)
	typeCache := New(f.color, nil, 0)
	defer typeCache.Close()
	contentCache := New(f.colors, nil, 0)
	defer contentCache.Close()
	red := addRow(f.color, "1")
	addRow(f.color, "2")
	big := addRow(f.colors, "2000")

	assert.Empty(t, violations(t, typeCache, red, "code"))
	assert.Empty(t, violations(t, contentCache, big, "code"))

	dup := addRow(f.colors, "1")
	assert.Equal(t, []LocalizedString{plain("1")}, violations(t, typeCache, red, "code"))
	assert.Equal(t, []LocalizedString{plain("1")}, violations(t, contentCache, dup, "code"))

	red.ValueFor("code").SetValue(Plain("3"))
	assert.Empty(t, violations(t, contentCache, dup, "code"))
}

func TestLocalesAreIndependent(t *testing.T) {
	f := newFixture(t)
	cache := New(f.color, nil, 0)
	defer cache.Close()
	r1 := addRow(f.color, "1")
	r2 := addRow(f.color, "2")
	r1.ValueFor("name").SetValue(Localized{language.English: "Red", language.German: "Rot"})
	r2.ValueFor("name").SetValue(Localized{language.English: "Rot", language.German: "Rot"})

	de := LocalizedString{Locale: language.German, Value: "Rot"}
	assert.Equal(t, []LocalizedString{de}, violations(t, cache, r1, "name"))
	assert.Equal(t, []LocalizedString{de}, violations(t, cache, r2, "name"))
	assert.Equal(t, []index.Entry{{Key: de, Count: 2}}, cache.Duplicates("name"))
}

func TestConcurrentQueries(t *testing.T) {
	f := newFixture(t)
	cache := New(f.color, nil, 0)
	defer cache.Close()
	rows := make([]*model.Row, 50)
	for i := range rows {
		rows[i] = addRow(f.color, fmt.Sprint(i))
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				row := rows[(w*7+i)%len(rows)]
				if w%2 == 0 {
					row.ValueFor("code").SetValue(Plain(fmt.Sprint((w*7 + i) % len(rows))))
				} else {
					_, ok := cache.ViolationsFor(row.ValueFor("code"))
					assert.True(t, ok)
				}
			}
		}(w)
	}
	wg.Wait()

	for _, row := range rows {
		assert.Empty(t, violations(t, cache, row, "code"))
	}
}

func TestClose(t *testing.T) {
	f := newFixture(t)
	subscribers := f.project.Events().Len()
	cache := New(f.color, nil, 0)
	assert.Equal(t, subscribers+1, f.project.Events().Len())
	red := addRow(f.color, "1")
	violations(t, cache, red, "code")

	cache.Close()
	cache.Close()
	assert.Equal(t, subscribers, f.project.Events().Len())
	assert.Empty(t, cache.columns)

	addRow(f.color, "1")
	assert.NotEmpty(t, violations(t, cache, red, "code"))
	assert.Empty(t, cache.columns)
}
