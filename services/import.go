package services

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/nimbuscms/nimbus-backend/errs"
	"github.com/nimbuscms/nimbus-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ImportResult reports one import run. Stats counts rows actually created
// per collection (reused rows are not counted); Errors holds one entry per
// failed row. A non-empty Errors always means Success is false, even when
// most rows landed.
type ImportResult struct {
	RunID   string         `json:"runId"`
	Success bool           `json:"success"`
	Stats   map[string]int `json:"stats"`
	Errors  []string       `json:"errors"`
}

// remapTable maps an identifier from the source envelope to the identifier
// assigned (or reused) in the target tenant. One table per entity type.
type remapTable map[uint]uint

// ImportService replays an envelope into a target tenant: collections in
// dependency order, natural-key dedup, references resolved through remap
// tables, embedded media ids rewritten inside opaque documents. Reruns are
// safe because existing rows are reused, never duplicated.
type ImportService struct {
	store  Store
	logger zerolog.Logger
}

func NewImportService(store Store) ImportService {
	logger := log.With().Str("serviceName", "importService").Logger()
	return ImportService{store: store, logger: logger}
}

// Import runs the whole pipeline. It returns an error only for structurally
// unusable input (nil envelope, missing version); every data-level problem
// lands in the result's Errors list while the run keeps going.
func (s ImportService) Import(targetTenantID string, envelope *models.Envelope) (*ImportResult, error) {
	if envelope == nil {
		return nil, errs.NewMalformedEnvelopeError("envelope body is not an object")
	}
	if envelope.Version == 0 {
		return nil, errs.NewMalformedEnvelopeError("envelope is missing its version field")
	}

	run := &importRun{
		store:    s.store,
		tenantID: targetTenantID,
		stats:    emptyStats(),

		folderRemap:   remapTable{},
		mediaRemap:    remapTable{},
		categoryRemap: remapTable{},
		tagRemap:      remapTable{},
		pageRemap:     remapTable{},
		postRemap:     remapTable{},
	}

	if envelope.Version != models.FormatVersion {
		run.errors = append(run.errors, errs.NewVersionMismatchError(envelope.Version, models.FormatVersion).Error())
	}

	run.importMediaFolders(envelope.MediaFolders)
	run.importMedia(envelope.Media)
	run.importCategories(envelope.Categories)
	run.importTags(envelope.Tags)
	run.importPages(envelope.Pages)
	run.importPageLayouts(envelope.PageLayouts)
	run.importPageVersions(envelope.PageVersions)
	run.importPageComponents(envelope.PageComponents)
	run.importPosts(envelope.Posts)
	run.importPostCategories(envelope.PostCategories)
	run.importPostTags(envelope.PostTags)

	result := &ImportResult{
		RunID:   uuid.NewString(),
		Success: len(run.errors) == 0,
		Stats:   run.stats,
		Errors:  run.errors,
	}
	if result.Errors == nil {
		result.Errors = []string{}
	}

	s.logger.Info().
		Str("runID", result.RunID).
		Str("tenantID", targetTenantID).
		Bool("success", result.Success).
		Int("errorCount", len(result.Errors)).
		Msg("Import run finished")

	return result, nil
}

func emptyStats() map[string]int {
	return map[string]int{
		models.CollectionMediaFolders:   0,
		models.CollectionMedia:          0,
		models.CollectionCategories:     0,
		models.CollectionTags:           0,
		models.CollectionPages:          0,
		models.CollectionPageLayouts:    0,
		models.CollectionPageVersions:   0,
		models.CollectionPageComponents: 0,
		models.CollectionPosts:          0,
		models.CollectionPostCategories: 0,
		models.CollectionPostTags:       0,
	}
}

// importRun carries the per-run remap tables and counters. Rows inside a
// collection are processed sequentially: row N may need the remap entry row
// N-1 just created.
type importRun struct {
	store    Store
	tenantID string
	stats    map[string]int
	errors   []string

	folderRemap   remapTable
	mediaRemap    remapTable
	categoryRemap remapTable
	tagRemap      remapTable
	pageRemap     remapTable
	postRemap     remapTable
}

func (r *importRun) fail(collection, key string, action string, err error) {
	r.errors = append(r.errors, fmt.Sprintf("%s %q: failed to %s: %v", collection, key, action, err))
}

// resolve looks a reference up in a remap table; a miss yields a nil
// reference rather than an error, leaving the row orphaned from that one
// relationship.
func resolve(table remapTable, oldID *uint) *uint {
	if oldID == nil {
		return nil
	}
	if newID, ok := table[*oldID]; ok {
		return &newID
	}
	return nil
}

func (r *importRun) importMediaFolders(folders []models.MediaFolder) {
	// Parent id ascending is a cheap topological approximation: a child's
	// parent always sorts before it because parents get lower ids first.
	ordered := make([]models.MediaFolder, len(folders))
	copy(ordered, folders)
	sort.SliceStable(ordered, func(i, j int) bool {
		return parentSortKey(ordered[i].ParentFolderID) < parentSortKey(ordered[j].ParentFolderID)
	})

	for _, folder := range ordered {
		existing, err := r.store.MediaFolderBySlug(r.tenantID, folder.Slug)
		if err != nil {
			r.fail(models.CollectionMediaFolders, folder.Slug, "look up", err)
			continue
		}
		if existing != nil {
			r.folderRemap[folder.ID] = existing.ID
			continue
		}

		row := models.MediaFolder{
			TenantID:       r.tenantID,
			Slug:           folder.Slug,
			ParentFolderID: resolve(r.folderRemap, folder.ParentFolderID),
			Name:           folder.Name,
			Path:           folder.Path,
		}
		if err := r.store.AddMediaFolder(&row); err != nil {
			r.fail(models.CollectionMediaFolders, folder.Slug, "create", err)
			continue
		}
		r.folderRemap[folder.ID] = row.ID
		r.stats[models.CollectionMediaFolders]++
	}
}

func parentSortKey(parentID *uint) uint {
	if parentID == nil {
		return 0
	}
	return *parentID + 1
}

func (r *importRun) importMedia(media []models.Media) {
	for _, item := range media {
		existing, err := r.store.MediaBySlug(r.tenantID, item.Slug)
		if err != nil {
			r.fail(models.CollectionMedia, item.Slug, "look up", err)
			continue
		}
		if existing != nil {
			r.mediaRemap[item.ID] = existing.ID
			continue
		}

		row := models.Media{
			TenantID:     r.tenantID,
			Slug:         item.Slug,
			URL:          item.URL,
			RelativePath: item.RelativePath,
			MimeType:     item.MimeType,
			FolderID:     resolve(r.folderRemap, item.FolderID),
			Width:        item.Width,
			Height:       item.Height,
			SizeBytes:    item.SizeBytes,
		}
		if err := r.store.AddMedia(&row); err != nil {
			r.fail(models.CollectionMedia, item.Slug, "create", err)
			continue
		}
		r.mediaRemap[item.ID] = row.ID
		r.stats[models.CollectionMedia]++
	}
}

func (r *importRun) importCategories(categories []models.Category) {
	ordered := make([]models.Category, len(categories))
	copy(ordered, categories)
	sort.SliceStable(ordered, func(i, j int) bool {
		return parentSortKey(ordered[i].ParentID) < parentSortKey(ordered[j].ParentID)
	})

	for _, category := range ordered {
		existing, err := r.store.CategoryBySlug(r.tenantID, category.Slug)
		if err != nil {
			r.fail(models.CollectionCategories, category.Slug, "look up", err)
			continue
		}
		if existing != nil {
			r.categoryRemap[category.ID] = existing.ID
			continue
		}

		row := models.Category{
			TenantID: r.tenantID,
			Slug:     category.Slug,
			Name:     category.Name,
			ParentID: resolve(r.categoryRemap, category.ParentID),
		}
		if err := r.store.AddCategory(&row); err != nil {
			r.fail(models.CollectionCategories, category.Slug, "create", err)
			continue
		}
		r.categoryRemap[category.ID] = row.ID
		r.stats[models.CollectionCategories]++
	}
}

func (r *importRun) importTags(tags []models.Tag) {
	for _, tag := range tags {
		existing, err := r.store.TagBySlug(r.tenantID, tag.Slug)
		if err != nil {
			r.fail(models.CollectionTags, tag.Slug, "look up", err)
			continue
		}
		if existing != nil {
			r.tagRemap[tag.ID] = existing.ID
			continue
		}

		row := models.Tag{
			TenantID: r.tenantID,
			Slug:     tag.Slug,
			Name:     tag.Name,
		}
		if err := r.store.AddTag(&row); err != nil {
			r.fail(models.CollectionTags, tag.Slug, "create", err)
			continue
		}
		r.tagRemap[tag.ID] = row.ID
		r.stats[models.CollectionTags]++
	}
}

func (r *importRun) importPages(pages []models.Page) {
	for _, page := range pages {
		existing, err := r.store.PageBySlug(r.tenantID, page.Slug)
		if err != nil {
			r.fail(models.CollectionPages, page.Slug, "look up", err)
			continue
		}
		if existing != nil {
			r.pageRemap[page.ID] = existing.ID
			continue
		}

		row := models.Page{
			TenantID:        r.tenantID,
			Slug:            page.Slug,
			Name:            page.Name,
			Status:          page.Status,
			MetaTitle:       page.MetaTitle,
			MetaDescription: page.MetaDescription,
			Version:         page.Version,
		}
		if err := r.store.AddPage(&row); err != nil {
			r.fail(models.CollectionPages, page.Slug, "create", err)
			continue
		}
		r.pageRemap[page.ID] = row.ID
		r.stats[models.CollectionPages]++
	}
}

func (r *importRun) importPageLayouts(layouts []models.PageLayout) {
	for _, layout := range layouts {
		pageID, ok := r.pageRemap[layout.PageID]
		if !ok {
			// The page itself failed upstream and was already reported;
			// a layout cannot exist without its page.
			continue
		}

		key := fmt.Sprintf("page %d/%s", layout.PageID, layout.Language)

		existing, err := r.store.PageLayoutByPageAndLanguage(pageID, layout.Language)
		if err != nil {
			r.fail(models.CollectionPageLayouts, key, "look up", err)
			continue
		}
		if existing != nil {
			continue
		}

		isDefault := layout.IsDefaultLanguage
		if isDefault {
			hasDefault, err := r.store.PageHasDefaultLayout(pageID)
			if err != nil {
				r.fail(models.CollectionPageLayouts, key, "look up", err)
				continue
			}
			// A page keeps exactly one default layout; an incoming default
			// landing on a page that already has one is demoted.
			if hasDefault {
				isDefault = false
			}
		}

		doc, err := RewriteMediaRefs(layout.LayoutJSON, r.mediaRemap)
		if err != nil {
			r.fail(models.CollectionPageLayouts, key, "rewrite layout document", err)
		}

		row := models.PageLayout{
			PageID:            pageID,
			Language:          layout.Language,
			LayoutJSON:        doc,
			IsDefaultLanguage: isDefault,
			Version:           layout.Version,
		}
		if err := r.store.AddPageLayout(&row); err != nil {
			r.fail(models.CollectionPageLayouts, key, "create", err)
			continue
		}
		r.stats[models.CollectionPageLayouts]++
	}
}

func (r *importRun) importPageVersions(versions []models.PageVersion) {
	for _, version := range versions {
		pageID, ok := r.pageRemap[version.PageID]
		if !ok {
			continue
		}

		key := fmt.Sprintf("page %d/v%d", version.PageID, version.VersionNumber)

		existing, err := r.store.PageVersionByPageAndNumber(pageID, version.VersionNumber)
		if err != nil {
			r.fail(models.CollectionPageVersions, key, "look up", err)
			continue
		}
		if existing != nil {
			continue
		}

		doc, err := RewriteMediaRefs(version.LayoutJSON, r.mediaRemap)
		if err != nil {
			r.fail(models.CollectionPageVersions, key, "rewrite layout document", err)
		}

		row := models.PageVersion{
			PageID:        pageID,
			VersionNumber: version.VersionNumber,
			Name:          version.Name,
			Status:        version.Status,
			LayoutJSON:    doc,
		}
		if err := r.store.AddPageVersion(&row); err != nil {
			r.fail(models.CollectionPageVersions, key, "create", err)
			continue
		}
		r.stats[models.CollectionPageVersions]++
	}
}

func (r *importRun) importPageComponents(components []models.PageComponent) {
	for _, component := range components {
		pageID, ok := r.pageRemap[component.PageID]
		if !ok {
			continue
		}

		key := fmt.Sprintf("page %d/%s[%d]", component.PageID, component.ComponentKey, component.SortOrder)

		existing, err := r.store.PageComponentByPlacement(pageID, component.ComponentKey, component.SortOrder)
		if err != nil {
			r.fail(models.CollectionPageComponents, key, "look up", err)
			continue
		}
		if existing != nil {
			continue
		}

		doc, err := RewriteMediaRefs(component.Props, r.mediaRemap)
		if err != nil {
			r.fail(models.CollectionPageComponents, key, "rewrite props document", err)
		}

		row := models.PageComponent{
			PageID:       pageID,
			ComponentKey: component.ComponentKey,
			Props:        doc,
			SortOrder:    component.SortOrder,
		}
		if err := r.store.AddPageComponent(&row); err != nil {
			r.fail(models.CollectionPageComponents, key, "create", err)
			continue
		}
		r.stats[models.CollectionPageComponents]++
	}
}

func (r *importRun) importPosts(posts []models.Post) {
	for _, post := range posts {
		existing, err := r.store.PostBySlug(r.tenantID, post.Slug)
		if err != nil {
			r.fail(models.CollectionPosts, post.Slug, "look up", err)
			continue
		}
		if existing != nil {
			r.postRemap[post.ID] = existing.ID
			continue
		}

		doc, err := RewriteMediaRefs(post.Content, r.mediaRemap)
		if err != nil {
			r.fail(models.CollectionPosts, post.Slug, "rewrite content document", err)
		}

		row := models.Post{
			TenantID:        r.tenantID,
			Slug:            post.Slug,
			Title:           post.Title,
			Content:         doc,
			FeaturedImageID: resolve(r.mediaRemap, post.FeaturedImageID),
			MetaTitle:       post.MetaTitle,
			MetaDescription: post.MetaDescription,
		}
		if err := r.store.AddPost(&row); err != nil {
			r.fail(models.CollectionPosts, post.Slug, "create", err)
			continue
		}
		r.postRemap[post.ID] = row.ID
		r.stats[models.CollectionPosts]++
	}
}

// Join rows only land when both sides resolved; a miss means the referenced
// entity already failed upstream, so the skip is silent and unreported.
func (r *importRun) importPostCategories(rows []models.PostCategory) {
	for _, row := range rows {
		postID, postOK := r.postRemap[row.PostID]
		categoryID, categoryOK := r.categoryRemap[row.CategoryID]
		if !postOK || !categoryOK {
			continue
		}

		exists, err := r.store.PostCategoryExists(postID, categoryID)
		if err != nil {
			r.fail(models.CollectionPostCategories, fmt.Sprintf("%d/%d", row.PostID, row.CategoryID), "look up", err)
			continue
		}
		if exists {
			continue
		}

		if err := r.store.AddPostCategory(&models.PostCategory{PostID: postID, CategoryID: categoryID}); err != nil {
			r.fail(models.CollectionPostCategories, fmt.Sprintf("%d/%d", row.PostID, row.CategoryID), "create", err)
			continue
		}
		r.stats[models.CollectionPostCategories]++
	}
}

func (r *importRun) importPostTags(rows []models.PostTag) {
	for _, row := range rows {
		postID, postOK := r.postRemap[row.PostID]
		tagID, tagOK := r.tagRemap[row.TagID]
		if !postOK || !tagOK {
			continue
		}

		exists, err := r.store.PostTagExists(postID, tagID)
		if err != nil {
			r.fail(models.CollectionPostTags, fmt.Sprintf("%d/%d", row.PostID, row.TagID), "look up", err)
			continue
		}
		if exists {
			continue
		}

		if err := r.store.AddPostTag(&models.PostTag{PostID: postID, TagID: tagID}); err != nil {
			r.fail(models.CollectionPostTags, fmt.Sprintf("%d/%d", row.PostID, row.TagID), "create", err)
			continue
		}
		r.stats[models.CollectionPostTags]++
	}
}
