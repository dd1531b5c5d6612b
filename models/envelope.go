package models

import "time"

// FormatVersion is the envelope format this build writes and understands.
const FormatVersion = 1

// Collection names used for envelope counts and import stats. They match the
// envelope's JSON keys so callers can correlate the two without a mapping.
const (
	CollectionMediaFolders   = "media_folders"
	CollectionMedia          = "media"
	CollectionCategories     = "categories"
	CollectionTags           = "tags"
	CollectionPages          = "pages"
	CollectionPageLayouts    = "page_layouts"
	CollectionPageVersions   = "page_versions"
	CollectionPageComponents = "page_components"
	CollectionPosts          = "posts"
	CollectionPostCategories = "post_categories"
	CollectionPostTags       = "post_tags"
)

// Envelope is the versioned, self-contained document produced by export and
// consumed by import. Counts is a denormalized per-collection row count so
// callers can sanity-check a document without walking its body.
type Envelope struct {
	Version    int            `json:"version"`
	TenantID   string         `json:"tenantId"`
	ExportedAt time.Time      `json:"exportedAt"`
	Counts     map[string]int `json:"counts"`

	MediaFolders   []MediaFolder   `json:"media_folders"`
	Media          []Media         `json:"media"`
	Categories     []Category      `json:"categories"`
	Tags           []Tag           `json:"tags"`
	Pages          []Page          `json:"pages"`
	PageLayouts    []PageLayout    `json:"page_layouts"`
	PageVersions   []PageVersion   `json:"page_versions"`
	PageComponents []PageComponent `json:"page_components"`
	Posts          []Post          `json:"posts"`
	PostCategories []PostCategory  `json:"post_categories"`
	PostTags       []PostTag       `json:"post_tags"`
}
