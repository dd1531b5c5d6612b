package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nimbuscms/nimbus-backend/errs"
	"github.com/nimbuscms/nimbus-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestImport_RoundTrip(t *testing.T) {
	source := newFakeStore("acme")
	seedTenantGraph(t, source, "acme")

	envelope, err := NewExportService(source).Assemble("acme", "https://acme.example.com")
	require.NoError(t, err)

	// Seed an unrelated tenant first so the target's id sequence diverges
	// from the source's and every reference genuinely has to be remapped.
	target := newFakeStore("other", "globex")
	seedTenantGraph(t, target, "other")

	result, err := NewImportService(target).Import("globex", envelope)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, envelope.Counts, result.Stats)

	// The post's featured image must point at the media row created in the
	// target, not at the source's id.
	media, err := target.MediaBySlug("globex", "hero")
	require.NoError(t, err)
	require.NotNil(t, media)
	assert.NotEqual(t, envelope.Media[0].ID, media.ID)

	post, err := target.PostBySlug("globex", "launch-day")
	require.NoError(t, err)
	require.NotNil(t, post)
	require.NotNil(t, post.FeaturedImageID)
	assert.Equal(t, media.ID, *post.FeaturedImageID)
	assert.Contains(t, string(post.Content), fmt.Sprintf(`"mediaId":%d`, media.ID))

	// Layout and component documents were rewritten the same way.
	page, err := target.PageBySlug("globex", "home")
	require.NoError(t, err)
	require.NotNil(t, page)
	layout, err := target.PageLayoutByPageAndLanguage(page.ID, "en")
	require.NoError(t, err)
	require.NotNil(t, layout)
	assert.Contains(t, string(layout.LayoutJSON), fmt.Sprintf(`"mediaId":%d`, media.ID))
}

func TestImport_RerunIsIdempotent(t *testing.T) {
	source := newFakeStore("acme")
	seedTenantGraph(t, source, "acme")

	envelope, err := NewExportService(source).Assemble("acme", "")
	require.NoError(t, err)

	target := newFakeStore("globex")
	importer := NewImportService(target)

	first, err := importer.Import("globex", envelope)
	require.NoError(t, err)
	require.True(t, first.Success)

	second, err := importer.Import("globex", envelope)
	require.NoError(t, err)

	assert.True(t, second.Success)
	assert.Empty(t, second.Errors)
	for collection, count := range second.Stats {
		assert.Zero(t, count, "rerun should create nothing in %s", collection)
	}

	// No duplicates either.
	posts, err := target.PostsByTenant("globex")
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	joins, err := target.PostTagsByPostIDs([]uint{posts[0].ID})
	require.NoError(t, err)
	assert.Len(t, joins, 1)
}

func TestImport_PartialFailureContinues(t *testing.T) {
	envelope := &models.Envelope{Version: models.FormatVersion, TenantID: "acme"}
	for i := 0; i < 10; i++ {
		envelope.Posts = append(envelope.Posts, models.Post{
			ID:    uint(i + 1),
			Slug:  fmt.Sprintf("post-%d", i),
			Title: fmt.Sprintf("Post %d", i),
		})
	}

	target := newFakeStore("globex")
	target.addPostHook = func(post *models.Post) error {
		if post.Slug == "post-7" {
			return errors.New("value too long for column title")
		}
		return nil
	}

	result, err := NewImportService(target).Import("globex", envelope)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 9, result.Stats[models.CollectionPosts])
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `posts "post-7"`)
	assert.Contains(t, result.Errors[0], "failed to create")
}

func TestImport_NaturalKeyReuse(t *testing.T) {
	target := newFakeStore("globex")
	existing := models.Media{TenantID: "globex", Slug: "hero", URL: "/uploads/hero.png"}
	require.NoError(t, target.AddMedia(&existing))

	envelope := &models.Envelope{
		Version:  models.FormatVersion,
		TenantID: "acme",
		Media:    []models.Media{{ID: 42, Slug: "hero", URL: "https://acme.example.com/hero.png"}},
		Posts: []models.Post{{
			ID:              1,
			Slug:            "launch-day",
			Title:           "Launch Day",
			FeaturedImageID: ptrUint(42),
		}},
	}

	result, err := NewImportService(target).Import("globex", envelope)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Zero(t, result.Stats[models.CollectionMedia], "existing media row is reused, not recreated")
	assert.Equal(t, 1, result.Stats[models.CollectionPosts])

	media, err := target.MediaByTenant("globex")
	require.NoError(t, err)
	require.Len(t, media, 1)

	// The reused row keeps its own fields; only the reference remaps onto it.
	assert.Equal(t, "/uploads/hero.png", media[0].URL)

	post, err := target.PostBySlug("globex", "launch-day")
	require.NoError(t, err)
	require.NotNil(t, post)
	require.NotNil(t, post.FeaturedImageID)
	assert.Equal(t, existing.ID, *post.FeaturedImageID)
}

func TestImport_FolderHierarchyRemapped(t *testing.T) {
	envelope := &models.Envelope{
		Version:  models.FormatVersion,
		TenantID: "acme",
		MediaFolders: []models.MediaFolder{
			{ID: 11, Slug: "child", Name: "Child", Path: "/root/child", ParentFolderID: ptrUint(10)},
			{ID: 10, Slug: "root", Name: "Root", Path: "/root"},
		},
	}

	target := newFakeStore("globex")
	result, err := NewImportService(target).Import("globex", envelope)
	require.NoError(t, err)
	require.True(t, result.Success)

	root, err := target.MediaFolderBySlug("globex", "root")
	require.NoError(t, err)
	require.NotNil(t, root)
	child, err := target.MediaFolderBySlug("globex", "child")
	require.NoError(t, err)
	require.NotNil(t, child)
	require.NotNil(t, child.ParentFolderID)
	assert.Equal(t, root.ID, *child.ParentFolderID)
}

func TestImport_JoinRowWithUnresolvedSideSkipped(t *testing.T) {
	envelope := &models.Envelope{
		Version:        models.FormatVersion,
		TenantID:       "acme",
		Posts:          []models.Post{{ID: 1, Slug: "launch-day", Title: "Launch Day"}},
		PostCategories: []models.PostCategory{{PostID: 1, CategoryID: 9}},
	}

	target := newFakeStore("globex")
	result, err := NewImportService(target).Import("globex", envelope)
	require.NoError(t, err)

	// The category never arrived, so the join row is dropped without noise.
	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.Zero(t, result.Stats[models.CollectionPostCategories])
	assert.Equal(t, 1, result.Stats[models.CollectionPosts])
}

func TestImport_DefaultLayoutDemoted(t *testing.T) {
	target := newFakeStore("globex")
	page := models.Page{TenantID: "globex", Slug: "home", Name: "Home", Status: "published"}
	require.NoError(t, target.AddPage(&page))
	require.NoError(t, target.AddPageLayout(&models.PageLayout{
		PageID:            page.ID,
		Language:          "en",
		LayoutJSON:        datatypes.JSON(`{}`),
		IsDefaultLanguage: true,
	}))

	envelope := &models.Envelope{
		Version:  models.FormatVersion,
		TenantID: "acme",
		Pages:    []models.Page{{ID: 1, Slug: "home", Name: "Home", Status: "published"}},
		PageLayouts: []models.PageLayout{{
			PageID:            1,
			Language:          "fr",
			LayoutJSON:        datatypes.JSON(`{}`),
			IsDefaultLanguage: true,
		}},
	}

	result, err := NewImportService(target).Import("globex", envelope)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 1, result.Stats[models.CollectionPageLayouts])

	imported, err := target.PageLayoutByPageAndLanguage(page.ID, "fr")
	require.NoError(t, err)
	require.NotNil(t, imported)
	assert.False(t, imported.IsDefaultLanguage, "a page keeps exactly one default layout")

	existing, err := target.PageLayoutByPageAndLanguage(page.ID, "en")
	require.NoError(t, err)
	require.NotNil(t, existing)
	assert.True(t, existing.IsDefaultLanguage)
}

func TestImport_VersionMismatchRecordedButRunContinues(t *testing.T) {
	envelope := &models.Envelope{
		Version:  models.FormatVersion + 1,
		TenantID: "acme",
		Tags:     []models.Tag{{ID: 1, Slug: "launch", Name: "Launch"}},
	}

	target := newFakeStore("globex")
	result, err := NewImportService(target).Import("globex", envelope)
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "version")
	assert.Equal(t, 1, result.Stats[models.CollectionTags], "rows still import despite the mismatch")
}

func TestImport_StructurallyUnusableEnvelopes(t *testing.T) {
	importer := NewImportService(newFakeStore("globex"))

	result, err := importer.Import("globex", nil)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errs.IsMalformedEnvelope(err))

	result, err = importer.Import("globex", &models.Envelope{TenantID: "acme"})
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errs.IsMalformedEnvelope(err))
}

func ptrUint(v uint) *uint {
	return &v
}
