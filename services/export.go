package services

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/nimbuscms/nimbus-backend/errs"
	"github.com/nimbuscms/nimbus-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Graph holds a tenant's full content graph in memory, every collection
// tenant-filtered and ordered by primary id for reproducible exports.
type Graph struct {
	MediaFolders   []models.MediaFolder
	Media          []models.Media
	Categories     []models.Category
	Tags           []models.Tag
	Pages          []models.Page
	PageLayouts    []models.PageLayout
	PageVersions   []models.PageVersion
	PageComponents []models.PageComponent
	Posts          []models.Post
	PostCategories []models.PostCategory
	PostTags       []models.PostTag
}

// ExportService assembles a tenant's content graph into a portable envelope.
// It only reads; retry policy belongs to the caller.
type ExportService struct {
	store  Store
	logger zerolog.Logger
}

func NewExportService(store Store) ExportService {
	logger := log.With().Str("serviceName", "exportService").Logger()
	return ExportService{store: store, logger: logger}
}

// FetchGraph reads every tenant-scoped collection. Independent top-level
// collections are fetched concurrently; dependent rows (layouts, versions,
// components, join rows) go out in a second concurrent batch once the
// page and post id sets are known.
func (s ExportService) FetchGraph(tenantID string) (*Graph, error) {
	var graph Graph

	var topLevel errgroup.Group
	topLevel.Go(func() (err error) {
		graph.MediaFolders, err = s.store.MediaFoldersByTenant(tenantID)
		return wrapFetchError("media_folders", err)
	})
	topLevel.Go(func() (err error) {
		graph.Media, err = s.store.MediaByTenant(tenantID)
		return wrapFetchError("media", err)
	})
	topLevel.Go(func() (err error) {
		graph.Categories, err = s.store.CategoriesByTenant(tenantID)
		return wrapFetchError("categories", err)
	})
	topLevel.Go(func() (err error) {
		graph.Tags, err = s.store.TagsByTenant(tenantID)
		return wrapFetchError("tags", err)
	})
	topLevel.Go(func() (err error) {
		graph.Pages, err = s.store.PagesByTenant(tenantID)
		return wrapFetchError("pages", err)
	})
	topLevel.Go(func() (err error) {
		graph.Posts, err = s.store.PostsByTenant(tenantID)
		return wrapFetchError("posts", err)
	})
	if err := topLevel.Wait(); err != nil {
		return nil, err
	}

	pageIDs := make([]uint, len(graph.Pages))
	for i, page := range graph.Pages {
		pageIDs[i] = page.ID
	}
	postIDs := make([]uint, len(graph.Posts))
	for i, post := range graph.Posts {
		postIDs[i] = post.ID
	}

	var dependents errgroup.Group
	dependents.Go(func() (err error) {
		graph.PageLayouts, err = s.store.PageLayoutsByPageIDs(pageIDs)
		return wrapFetchError("page_layouts", err)
	})
	dependents.Go(func() (err error) {
		graph.PageVersions, err = s.store.PageVersionsByPageIDs(pageIDs)
		return wrapFetchError("page_versions", err)
	})
	dependents.Go(func() (err error) {
		graph.PageComponents, err = s.store.PageComponentsByPageIDs(pageIDs)
		return wrapFetchError("page_components", err)
	})
	dependents.Go(func() (err error) {
		graph.PostCategories, err = s.store.PostCategoriesByPostIDs(postIDs)
		return wrapFetchError("post_categories", err)
	})
	dependents.Go(func() (err error) {
		graph.PostTags, err = s.store.PostTagsByPostIDs(postIDs)
		return wrapFetchError("post_tags", err)
	})
	if err := dependents.Wait(); err != nil {
		return nil, err
	}

	return &graph, nil
}

func wrapFetchError(collection string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewDatabaseError("fetch", collection, err)
}

// Assemble fetches the graph, normalizes every media URL to absolute form
// against baseURL, and wraps the result in a versioned envelope.
func (s ExportService) Assemble(tenantID, baseURL string) (*models.Envelope, error) {
	graph, err := s.FetchGraph(tenantID)
	if err != nil {
		return nil, err
	}

	absolutizeMediaURLs(graph.Media, baseURL)

	envelope := &models.Envelope{
		Version:    models.FormatVersion,
		TenantID:   tenantID,
		ExportedAt: time.Now().UTC(),
		Counts: map[string]int{
			models.CollectionMediaFolders:   len(graph.MediaFolders),
			models.CollectionMedia:          len(graph.Media),
			models.CollectionCategories:     len(graph.Categories),
			models.CollectionTags:           len(graph.Tags),
			models.CollectionPages:          len(graph.Pages),
			models.CollectionPageLayouts:    len(graph.PageLayouts),
			models.CollectionPageVersions:   len(graph.PageVersions),
			models.CollectionPageComponents: len(graph.PageComponents),
			models.CollectionPosts:          len(graph.Posts),
			models.CollectionPostCategories: len(graph.PostCategories),
			models.CollectionPostTags:       len(graph.PostTags),
		},
		MediaFolders:   graph.MediaFolders,
		Media:          graph.Media,
		Categories:     graph.Categories,
		Tags:           graph.Tags,
		Pages:          graph.Pages,
		PageLayouts:    graph.PageLayouts,
		PageVersions:   graph.PageVersions,
		PageComponents: graph.PageComponents,
		Posts:          graph.Posts,
		PostCategories: graph.PostCategories,
		PostTags:       graph.PostTags,
	}

	s.logger.Info().
		Str("tenantID", tenantID).
		Int("pages", len(graph.Pages)).
		Int("posts", len(graph.Posts)).
		Int("media", len(graph.Media)).
		Msg("Assembled export envelope")

	return envelope, nil
}

// WriteEnvelope assembles and serializes the envelope straight to w, so a
// large tenant never has to fit as one string in memory.
func (s ExportService) WriteEnvelope(w io.Writer, tenantID, baseURL string) error {
	envelope, err := s.Assemble(tenantID, baseURL)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(envelope)
}

// absolutizeMediaURLs prefixes every non-absolute media url/relative_path
// with baseURL, making the exported document independent of the exporting
// deployment's origin. Already-absolute URLs are left alone.
func absolutizeMediaURLs(media []models.Media, baseURL string) {
	base := strings.TrimSuffix(baseURL, "/")
	if base == "" {
		return
	}
	for i := range media {
		media[i].URL = absolutizeURL(media[i].URL, base)
		media[i].RelativePath = absolutizeURL(media[i].RelativePath, base)
	}
}

func absolutizeURL(raw, base string) string {
	if raw == "" || isAbsoluteURL(raw) {
		return raw
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return base + raw
}

func isAbsoluteURL(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
