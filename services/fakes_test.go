package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nimbuscms/nimbus-backend/models"
)

// fakeStore is an in-memory Store. IDs are assigned from a single counter so
// remapped identifiers are easy to predict in assertions.
type fakeStore struct {
	mu     sync.Mutex
	nextID uint

	tenants map[string]*models.Tenant

	folders        []models.MediaFolder
	media          []models.Media
	categories     []models.Category
	tags           []models.Tag
	pages          []models.Page
	layouts        []models.PageLayout
	versions       []models.PageVersion
	components     []models.PageComponent
	posts          []models.Post
	postCategories []models.PostCategory
	postTags       []models.PostTag

	// error injection hooks, nil means succeed
	tenantIDsErr    error
	mediaByTenantErr error
	addMediaHook    func(*models.Media) error
	addPostHook     func(*models.Post) error
}

func newFakeStore(tenantIDs ...string) *fakeStore {
	s := &fakeStore{tenants: map[string]*models.Tenant{}}
	for _, id := range tenantIDs {
		s.tenants[id] = &models.Tenant{ID: id, Name: id}
	}
	return s
}

func (s *fakeStore) allocateID() uint {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) TenantByID(id string) (*models.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tenants[id], nil
}

func (s *fakeStore) TenantIDs() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tenantIDsErr != nil {
		return nil, s.tenantIDsErr
	}
	ids := make([]string, 0, len(s.tenants))
	for id := range s.tenants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *fakeStore) MediaFoldersByTenant(tenantID string) ([]models.MediaFolder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.MediaFolder
	for _, row := range s.folders {
		if row.TenantID == tenantID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *fakeStore) MediaFolderBySlug(tenantID, slug string) (*models.MediaFolder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.folders {
		if s.folders[i].TenantID == tenantID && s.folders[i].Slug == slug {
			row := s.folders[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) AddMediaFolder(folder *models.MediaFolder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	folder.ID = s.allocateID()
	s.folders = append(s.folders, *folder)
	return nil
}

func (s *fakeStore) MediaByTenant(tenantID string) ([]models.Media, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mediaByTenantErr != nil {
		return nil, s.mediaByTenantErr
	}
	var out []models.Media
	for _, row := range s.media {
		if row.TenantID == tenantID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *fakeStore) MediaBySlug(tenantID, slug string) (*models.Media, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.media {
		if s.media[i].TenantID == tenantID && s.media[i].Slug == slug {
			row := s.media[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) AddMedia(media *models.Media) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addMediaHook != nil {
		if err := s.addMediaHook(media); err != nil {
			return err
		}
	}
	media.ID = s.allocateID()
	s.media = append(s.media, *media)
	return nil
}

func (s *fakeStore) CategoriesByTenant(tenantID string) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Category
	for _, row := range s.categories {
		if row.TenantID == tenantID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *fakeStore) CategoryBySlug(tenantID, slug string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].TenantID == tenantID && s.categories[i].Slug == slug {
			row := s.categories[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) AddCategory(category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	category.ID = s.allocateID()
	s.categories = append(s.categories, *category)
	return nil
}

func (s *fakeStore) TagsByTenant(tenantID string) ([]models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Tag
	for _, row := range s.tags {
		if row.TenantID == tenantID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *fakeStore) TagBySlug(tenantID, slug string) (*models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tags {
		if s.tags[i].TenantID == tenantID && s.tags[i].Slug == slug {
			row := s.tags[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) AddTag(tag *models.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tag.ID = s.allocateID()
	s.tags = append(s.tags, *tag)
	return nil
}

func (s *fakeStore) PagesByTenant(tenantID string) ([]models.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Page
	for _, row := range s.pages {
		if row.TenantID == tenantID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *fakeStore) PageBySlug(tenantID, slug string) (*models.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pages {
		if s.pages[i].TenantID == tenantID && s.pages[i].Slug == slug {
			row := s.pages[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) AddPage(page *models.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	page.ID = s.allocateID()
	s.pages = append(s.pages, *page)
	return nil
}

func (s *fakeStore) PageLayoutsByPageIDs(pageIDs []uint) ([]models.PageLayout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.PageLayout
	for _, row := range s.layouts {
		if containsID(pageIDs, row.PageID) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *fakeStore) PageLayoutByPageAndLanguage(pageID uint, language string) (*models.PageLayout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.layouts {
		if s.layouts[i].PageID == pageID && s.layouts[i].Language == language {
			row := s.layouts[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) PageHasDefaultLayout(pageID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.layouts {
		if row.PageID == pageID && row.IsDefaultLanguage {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) AddPageLayout(layout *models.PageLayout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	layout.ID = s.allocateID()
	s.layouts = append(s.layouts, *layout)
	return nil
}

func (s *fakeStore) PageVersionsByPageIDs(pageIDs []uint) ([]models.PageVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.PageVersion
	for _, row := range s.versions {
		if containsID(pageIDs, row.PageID) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *fakeStore) PageVersionByPageAndNumber(pageID uint, versionNumber int) (*models.PageVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.versions {
		if s.versions[i].PageID == pageID && s.versions[i].VersionNumber == versionNumber {
			row := s.versions[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) AddPageVersion(version *models.PageVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	version.ID = s.allocateID()
	s.versions = append(s.versions, *version)
	return nil
}

func (s *fakeStore) PageComponentsByPageIDs(pageIDs []uint) ([]models.PageComponent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.PageComponent
	for _, row := range s.components {
		if containsID(pageIDs, row.PageID) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *fakeStore) PageComponentByPlacement(pageID uint, componentKey string, sortOrder int) (*models.PageComponent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.components {
		row := s.components[i]
		if row.PageID == pageID && row.ComponentKey == componentKey && row.SortOrder == sortOrder {
			return &row, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) AddPageComponent(component *models.PageComponent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	component.ID = s.allocateID()
	s.components = append(s.components, *component)
	return nil
}

func (s *fakeStore) PostsByTenant(tenantID string) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Post
	for _, row := range s.posts {
		if row.TenantID == tenantID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *fakeStore) PostBySlug(tenantID, slug string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].TenantID == tenantID && s.posts[i].Slug == slug {
			row := s.posts[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) AddPost(post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addPostHook != nil {
		if err := s.addPostHook(post); err != nil {
			return err
		}
	}
	post.ID = s.allocateID()
	s.posts = append(s.posts, *post)
	return nil
}

func (s *fakeStore) PostCategoriesByPostIDs(postIDs []uint) ([]models.PostCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.PostCategory
	for _, row := range s.postCategories {
		if containsID(postIDs, row.PostID) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *fakeStore) PostCategoryExists(postID, categoryID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.postCategories {
		if row.PostID == postID && row.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) AddPostCategory(row *models.PostCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postCategories = append(s.postCategories, *row)
	return nil
}

func (s *fakeStore) PostTagsByPostIDs(postIDs []uint) ([]models.PostTag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.PostTag
	for _, row := range s.postTags {
		if containsID(postIDs, row.PostID) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *fakeStore) PostTagExists(postID, tagID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.postTags {
		if row.PostID == postID && row.TagID == tagID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) AddPostTag(row *models.PostTag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postTags = append(s.postTags, *row)
	return nil
}

func containsID(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// fakeObjectStorage is an in-memory ObjectStorage with per-key upload times
// so retention tests can age snapshots.
type fakeObjectStorage struct {
	mu         sync.Mutex
	objects    map[string][]byte
	uploadedAt map[string]time.Time
	putCount   int

	putErr    func(key string) error
	listErr   error
	deleteErr func(key string) error
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{
		objects:    map[string][]byte{},
		uploadedAt: map[string]time.Time{},
	}
}

func (f *fakeObjectStorage) Put(ctx context.Context, key string, body []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		if err := f.putErr(key); err != nil {
			return "", err
		}
	}
	f.putCount++
	f.objects[key] = body
	if _, seen := f.uploadedAt[key]; !seen {
		f.uploadedAt[key] = time.Now()
	}
	return "https://storage.test/" + key, nil
}

func (f *fakeObjectStorage) List(ctx context.Context, prefix string) ([]StoredObject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []StoredObject
	for key, body := range f.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		out = append(out, StoredObject{
			Key:        key,
			URL:        "https://storage.test/" + key,
			Size:       int64(len(body)),
			UploadedAt: f.uploadedAt[key],
		})
	}
	return out, nil
}

func (f *fakeObjectStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		if err := f.deleteErr(key); err != nil {
			return err
		}
	}
	if _, ok := f.objects[key]; !ok {
		return fmt.Errorf("no such object %q", key)
	}
	delete(f.objects, key)
	delete(f.uploadedAt, key)
	return nil
}
