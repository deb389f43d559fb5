package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRendersInInsertionOrder(t *testing.T) {
	a := New()
	require.NoError(t, a.Add("site:example.com"))
	require.NoError(t, a.Add("filetype:pdf"))

	assert.Equal(t, "site:example.com filetype:pdf", a.Render())
	assert.Equal(t, 2, a.Len())
}

func TestAddRejectsDuplicates(t *testing.T) {
	a := New()
	require.NoError(t, a.Add("inurl:login"))

	err := a.Add("inurl:login")
	assert.ErrorIs(t, err, ErrDuplicateFragment)
	assert.Equal(t, "inurl:login", a.Render(), "query should be unchanged")
}

func TestAddTrimsAndIgnoresBlank(t *testing.T) {
	a := New()
	require.NoError(t, a.Add("  ext:pdf  "))
	assert.Equal(t, "ext:pdf", a.Render())

	require.NoError(t, a.Add("   "))
	assert.Equal(t, 1, a.Len(), "blank input should be a no-op")

	err := a.Add("ext:pdf")
	assert.ErrorIs(t, err, ErrDuplicateFragment, "trimmed text should count as duplicate")
}

func TestAddNot(t *testing.T) {
	a := New()
	require.NoError(t, a.Add("password"))
	require.NoError(t, a.AddNot("site:github.com"))

	assert.Equal(t, "password -site:github.com", a.Render())
	assert.True(t, a.IsNegated("site:github.com"))
	assert.False(t, a.IsNegated("password"))
}

func TestNegatedAndPlainAreSameFragment(t *testing.T) {
	a := New()
	require.NoError(t, a.Add("inurl:admin"))

	err := a.AddNot("inurl:admin")
	assert.ErrorIs(t, err, ErrDuplicateFragment)
}

func TestToggleNot(t *testing.T) {
	a := New()
	require.NoError(t, a.Add("intitle:index"))

	require.NoError(t, a.ToggleNot("intitle:index"))
	assert.Equal(t, "-intitle:index", a.Render())

	require.NoError(t, a.ToggleNot("intitle:index"))
	assert.Equal(t, "intitle:index", a.Render())
}

func TestToggleNotMissingFragment(t *testing.T) {
	a := New()
	err := a.ToggleNot("nope")
	assert.ErrorIs(t, err, ErrFragmentNotFound)
}

func TestRemove(t *testing.T) {
	a := New()
	require.NoError(t, a.Add("one"))
	require.NoError(t, a.Add("two"))
	require.NoError(t, a.Add("three"))

	require.NoError(t, a.Remove("two"))
	assert.Equal(t, "one three", a.Render())

	err := a.Remove("two")
	assert.ErrorIs(t, err, ErrFragmentNotFound)
}

func TestRemoveThenReAdd(t *testing.T) {
	a := New()
	require.NoError(t, a.Add("ext:sql"))
	require.NoError(t, a.Remove("ext:sql"))
	require.NoError(t, a.Add("ext:sql"), "removed fragment should be addable again")
	assert.Equal(t, "ext:sql", a.Render())
}

func TestAddOrGroup(t *testing.T) {
	a := New()
	require.NoError(t, a.Add("site:example.com"))
	require.NoError(t, a.AddOrGroup([]string{"ext:pdf", "ext:docx"}))

	assert.Equal(t, "site:example.com (ext:pdf OR ext:docx)", a.Render())
	assert.True(t, a.InGroup("ext:pdf"))
	assert.False(t, a.InGroup("site:example.com"))
	assert.Equal(t, 3, a.Len())
}

func TestAddOrGroupTooFewMembers(t *testing.T) {
	a := New()

	err := a.AddOrGroup([]string{"only-one"})
	assert.ErrorIs(t, err, ErrTooFewForGroup)

	err = a.AddOrGroup([]string{"dup", "dup", "  "})
	assert.ErrorIs(t, err, ErrTooFewForGroup, "dedupe and blank drop should apply before the size check")
}

func TestAddOrGroupRejectsExistingFragment(t *testing.T) {
	a := New()
	require.NoError(t, a.Add("ext:pdf"))

	err := a.AddOrGroup([]string{"ext:pdf", "ext:docx"})
	assert.ErrorIs(t, err, ErrDuplicateFragment)
}

func TestRemoveGroupMemberDegradesToTerm(t *testing.T) {
	a := New()
	require.NoError(t, a.AddOrGroup([]string{"a", "b", "c"}))

	require.NoError(t, a.Remove("b"))
	assert.Equal(t, "(a OR c)", a.Render())

	require.NoError(t, a.Remove("c"))
	assert.Equal(t, "a", a.Render(), "single survivor should become a plain term")
	assert.False(t, a.InGroup("a"))

	require.NoError(t, a.ToggleNot("a"), "the degraded term should behave like any other")
	assert.Equal(t, "-a", a.Render())
}

func TestClearKeepsVariables(t *testing.T) {
	a := New()
	a.SetVar("domain", "example.com")
	require.NoError(t, a.Add("site:{domain}"))

	a.Clear()
	assert.Equal(t, "", a.Render())
	assert.Equal(t, 0, a.Len())

	require.NoError(t, a.Add("site:{domain}"))
	assert.Equal(t, "site:example.com", a.Render(), "variables survive a clear")
}

func TestVariableSubstitution(t *testing.T) {
	a := New()
	require.NoError(t, a.Add("site:{domain}"))
	require.NoError(t, a.Add("intext:{keyword}"))

	assert.Equal(t, "site:{domain} intext:{keyword}", a.Render(), "unset placeholders stay verbatim")
	assert.Equal(t, []string{"domain", "keyword"}, a.Placeholders())

	a.SetVar("domain", "example.org")
	assert.Equal(t, "site:example.org intext:{keyword}", a.Render())

	a.SetVar("keyword", "backup")
	assert.Equal(t, "site:example.org intext:backup", a.Render())
}

func TestVariableSubstitutionInGroups(t *testing.T) {
	a := New()
	require.NoError(t, a.AddOrGroup([]string{"site:{domain}", "inurl:{domain}"}))
	a.SetVar("domain", "test.io")

	assert.Equal(t, "(site:test.io OR inurl:test.io)", a.Render())
}

func TestEmptyVariableLeavesPlaceholder(t *testing.T) {
	a := New()
	require.NoError(t, a.Add("site:{domain}"))
	a.SetVar("domain", "")

	assert.Equal(t, "site:{domain}", a.Render())
	assert.Equal(t, []string{"domain"}, a.Placeholders())
}

func TestFragments(t *testing.T) {
	a := New()
	require.NoError(t, a.Add("one"))
	require.NoError(t, a.AddOrGroup([]string{"two", "three"}))
	require.NoError(t, a.AddNot("four"))

	assert.Equal(t, []string{"one", "two", "three", "four"}, a.Fragments())
}

func TestGoogleURL(t *testing.T) {
	a := New()
	assert.Equal(t, "", a.GoogleURL())

	require.NoError(t, a.Add("site:example.com"))
	require.NoError(t, a.Add(`intitle:"index of"`))

	url := a.GoogleURL()
	assert.Equal(t, "https://www.google.com/search?q=site%3Aexample.com+intitle%3A%22index+of%22", url)
}

func TestVarsReturnsCopy(t *testing.T) {
	a := New()
	a.SetVar("x", "1")

	vars := a.Vars()
	vars["x"] = "changed"
	assert.Equal(t, map[string]string{"x": "1"}, a.Vars())
}
