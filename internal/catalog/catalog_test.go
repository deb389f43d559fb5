package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dorkdeck/internal/domain"
)

func tempCatalog(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(filepath.Join(t.TempDir(), "dorks.json"), nil)
}

func TestLoadMissingFileSeedsDefaults(t *testing.T) {
	r := tempCatalog(t)
	require.NoError(t, r.Load())

	cats := r.Categories()
	require.Len(t, cats, 3)
	assert.Equal(t, "files", cats[0].Key)
	assert.Contains(t, cats[0].Items, "ext:pdf")

	// Defaults are written out on first run
	_, err := os.Stat(r.Path())
	assert.NoError(t, err)
}

func TestLoadCorruptFileSeedsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dorks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	r := NewRepository(path, nil)
	require.NoError(t, r.Load())
	require.Len(t, r.Categories(), 3)
	assert.Equal(t, "files", r.Categories()[0].Key)

	// The defaults were written back, so a reload parses cleanly
	other := NewRepository(path, nil)
	require.NoError(t, other.Load())
	assert.Len(t, other.Categories(), 3)
}

func TestLoadEmptyObjectSeedsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dorks.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	r := NewRepository(path, nil)
	require.NoError(t, r.Load())
	assert.Len(t, r.Categories(), 3)
}

func TestLoadEmptyCategoriesKeepsProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dorks.json")
	content := `{"categories": {}, "profiles": {"audit": {"fragments": ["ext:pdf"]}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r := NewRepository(path, nil)
	require.NoError(t, r.Load())
	assert.Len(t, r.Categories(), 3, "empty category map restocks the defaults")

	p, ok := r.Profile("audit")
	require.True(t, ok)
	assert.Equal(t, []string{"ext:pdf"}, p.Fragments)
}

func TestLoadLegacyFlatShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dorks.json")
	legacy := `{"files": ["ext:pdf", "ext:xls"], "auth": ["inurl:login"]}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	r := NewRepository(path, nil)
	require.NoError(t, r.Load())

	cats := r.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "auth", cats[0].Key, "legacy categories load in sorted key order")
	assert.Equal(t, "Auth", cats[0].Label)
	assert.Equal(t, []string{"ext:pdf", "ext:xls"}, cats[1].Items)
}

func TestLegacyShapeUpgradesOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dorks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"files": ["ext:pdf"]}`), 0644))

	r := NewRepository(path, nil)
	require.NoError(t, r.Load())
	require.NoError(t, r.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var f map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &f))
	assert.Contains(t, f, "categories")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	r := tempCatalog(t)
	require.NoError(t, r.Load())

	_, err := r.AddCategory("Cloud Buckets")
	require.NoError(t, err)
	require.NoError(t, r.AddDork("cloud-buckets", "site:s3.amazonaws.com"))
	require.NoError(t, r.SaveProfile(domain.Profile{
		Name:      "buckets",
		Fragments: []string{"site:s3.amazonaws.com"},
	}))

	other := NewRepository(r.Path(), nil)
	require.NoError(t, other.Load())

	c := other.Category("cloud-buckets")
	require.NotNil(t, c)
	assert.Equal(t, "Cloud Buckets", c.Label)
	assert.Equal(t, []string{"site:s3.amazonaws.com"}, c.Items)

	p, ok := other.Profile("buckets")
	require.True(t, ok)
	assert.Equal(t, []string{"site:s3.amazonaws.com"}, p.Fragments)
}

func TestAddCategoryUniqueKeys(t *testing.T) {
	r := tempCatalog(t)
	require.NoError(t, r.Load())

	a, err := r.AddCategory("My Dorks!")
	require.NoError(t, err)
	assert.Equal(t, "my-dorks", a.Key)

	b, err := r.AddCategory("my dorks")
	require.NoError(t, err)
	assert.Equal(t, "my-dorks-2", b.Key)

	_, err = r.AddCategory("   ")
	assert.Error(t, err)
}

func TestRenameCategoryReKeys(t *testing.T) {
	r := tempCatalog(t)
	require.NoError(t, r.Load())

	require.NoError(t, r.RenameCategory("files", "Documents"))
	assert.Nil(t, r.Category("files"))

	c := r.Category("documents")
	require.NotNil(t, c)
	assert.Equal(t, "Documents", c.Label)
	assert.Contains(t, c.Items, "ext:pdf", "items survive a rename")

	assert.ErrorIs(t, r.RenameCategory("missing", "x"), ErrCategoryNotFound)
}

func TestDeleteCategory(t *testing.T) {
	r := tempCatalog(t)
	require.NoError(t, r.Load())

	require.NoError(t, r.DeleteCategory("files"))
	assert.Nil(t, r.Category("files"))
	assert.Len(t, r.Categories(), 2)

	assert.ErrorIs(t, r.DeleteCategory("files"), ErrCategoryNotFound)
}

func TestAddDork(t *testing.T) {
	r := tempCatalog(t)
	require.NoError(t, r.Load())

	require.NoError(t, r.AddDork("files", "ext:csv"))
	assert.Contains(t, r.Category("files").Items, "ext:csv")

	assert.ErrorIs(t, r.AddDork("files", "ext:csv"), ErrDuplicateDork)
	assert.ErrorIs(t, r.AddDork("nope", "x"), ErrCategoryNotFound)
	assert.Error(t, r.AddDork("files", "  "))
}

func TestRenameDorkCarriesTooltip(t *testing.T) {
	r := tempCatalog(t)
	require.NoError(t, r.Load())

	require.NoError(t, r.RenameDork("files", "ext:pdf", "filetype:pdf"))

	c := r.Category("files")
	assert.NotContains(t, c.Items, "ext:pdf")
	assert.Contains(t, c.Items, "filetype:pdf")
	assert.Equal(t, "PDF documents only", c.Tooltips["filetype:pdf"])

	assert.ErrorIs(t, r.RenameDork("files", "ghost", "x"), ErrDorkNotFound)
	assert.ErrorIs(t, r.RenameDork("files", "ext:docx", "filetype:pdf"), ErrDuplicateDork)
}

func TestDeleteDorks(t *testing.T) {
	r := tempCatalog(t)
	require.NoError(t, r.Load())

	require.NoError(t, r.DeleteDorks("files", []string{"ext:pdf", "ext:txt"}))

	c := r.Category("files")
	assert.Equal(t, []string{"ext:docx", "ext:xlsx"}, c.Items)
	assert.NotContains(t, c.Tooltips, "ext:pdf")

	assert.ErrorIs(t, r.DeleteDorks("files", []string{"ghost"}), ErrDorkNotFound)
}

func TestMoveDorks(t *testing.T) {
	r := tempCatalog(t)
	require.NoError(t, r.Load())

	require.NoError(t, r.MoveDorks("files", "secrets", []string{"ext:pdf"}))

	assert.NotContains(t, r.Category("files").Items, "ext:pdf")
	secrets := r.Category("secrets")
	assert.Equal(t, "ext:pdf", secrets.Items[len(secrets.Items)-1], "moved items append at the end")
	assert.Equal(t, "PDF documents only", secrets.Tooltips["ext:pdf"], "tooltip moves with the item")

	// Moving to the same category is a no-op
	require.NoError(t, r.MoveDorks("secrets", "secrets", []string{"ext:pdf"}))
	assert.ErrorIs(t, r.MoveDorks("files", "secrets", []string{"ghost"}), ErrDorkNotFound)
}

func TestProfiles(t *testing.T) {
	r := tempCatalog(t)
	require.NoError(t, r.Load())

	require.NoError(t, r.SaveProfile(domain.Profile{Name: "b", Fragments: []string{"two"}}))
	require.NoError(t, r.SaveProfile(domain.Profile{Name: "a", Fragments: []string{"one"}}))
	assert.Equal(t, []string{"a", "b"}, r.ProfileNames())

	p, ok := r.Profile("a")
	require.True(t, ok)
	assert.Equal(t, []string{"one"}, p.Fragments)

	require.NoError(t, r.DeleteProfile("a"))
	_, ok = r.Profile("a")
	assert.False(t, ok)

	// Deleting an absent profile is a no-op
	require.NoError(t, r.DeleteProfile("a"))

	assert.Error(t, r.SaveProfile(domain.Profile{Name: "  "}))
}
