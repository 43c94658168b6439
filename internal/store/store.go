// Package store holds the page-level post state: the full post set, the
// currently rendered list, bookmarks and the active post. A single copy
// of each post lives in an id-keyed index and every collection is an id
// list resolved against it, so a mutation applied through the index is
// observed by all collections at once instead of by convention.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/techikansh/blogging-platform/internal/adapter"
	"github.com/techikansh/blogging-platform/internal/types"
	"github.com/techikansh/blogging-platform/internal/utils"
)

// PageState tracks the fetch lifecycle. The page re-enters StateLoading
// on any refetch; while loading, further fetch triggers are refused.
type PageState string

const (
	StateIdle    PageState = "idle"
	StateLoading PageState = "loading"
	StateReady   PageState = "ready"
	StateErrored PageState = "errored"
)

// FilterAll is the neutral filter value; exactly one of FilterAll or a
// concrete category/tag is active at a time.
const FilterAll = "all"

// ErrFetchInFlight is returned when a fetch is triggered while another
// has not settled yet.
var ErrFetchInFlight = errors.New("fetch already in flight")

// Backend is the slice of the API client the store depends on.
type Backend interface {
	GetPosts(ctx context.Context, category, tag string) (types.PostEnvelope, error)
	GetPost(ctx context.Context, id int) (types.PostEnvelope, error)
	GetBookmarks(ctx context.Context) (types.PostEnvelope, error)
	CreatePost(ctx context.Context, req types.CreatePostRequest) (types.MutationResponse, error)
	LikePost(ctx context.Context, id int) error
	BookmarkPost(ctx context.Context, id int) error
	SharePost(ctx context.Context, id int) error
}

// Notifier receives the transient notifications raised by store actions.
// Implementations must not block.
type Notifier interface {
	Notify(n types.Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n types.Notification)

func (f NotifierFunc) Notify(n types.Notification) { f(n) }

type PostStore struct {
	backend  Backend
	notifier Notifier

	mu       sync.Mutex
	state    PageState
	lastErr  error
	fetchSeq uint64

	index      map[int]*types.Post
	all        []int
	visible    []int
	bookmarked []int
	activeID   int
	hasActive  bool

	comments map[int][]types.Comment

	activeFilter string
	searchQuery  string
}

func NewPostStore(backend Backend, notifier Notifier) *PostStore {
	return &PostStore{
		backend:      backend,
		notifier:     notifier,
		state:        StateIdle,
		index:        make(map[int]*types.Post),
		comments:     make(map[int][]types.Comment),
		activeFilter: FilterAll,
	}
}

// ====== FETCHING ======

// LoadPosts fetches the full post set and re-applies the current filter
// and search locally.
func (s *PostStore) LoadPosts(ctx context.Context) error {
	seq, err := s.beginFetch()
	if err != nil {
		return err
	}

	env, fetchErr := s.backend.GetPosts(ctx, "", "")

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.settleFetch(seq) {
		return nil
	}
	if err := s.checkFetch(fetchErr, env.Success, env.Message, "Failed to load posts"); err != nil {
		return err
	}

	posts := adapter.AdaptAll(env)
	s.all = s.all[:0]
	for i := range posts {
		s.upsert(posts[i])
		s.all = append(s.all, posts[i].ID)
	}
	s.applyFilters()
	return nil
}

// LoadBookmarks fetches the current user's bookmarked posts. On failure
// the previous bookmark set stays intact.
func (s *PostStore) LoadBookmarks(ctx context.Context) error {
	seq, err := s.beginFetch()
	if err != nil {
		return err
	}

	env, fetchErr := s.backend.GetBookmarks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.settleFetch(seq) {
		return nil
	}
	if err := s.checkFetch(fetchErr, env.Success, env.Message, "Failed to load bookmarks"); err != nil {
		return err
	}

	posts := adapter.AdaptAll(env)
	s.bookmarked = s.bookmarked[:0]
	for i := range posts {
		s.upsert(posts[i])
		s.bookmarked = append(s.bookmarked, posts[i].ID)
	}
	return nil
}

// OpenPost fetches a single post and makes it the active one. When the
// single-post endpoint returns empty content the full list is scanned as
// a fallback.
func (s *PostStore) OpenPost(ctx context.Context, id int) (types.Post, error) {
	seq, err := s.beginFetch()
	if err != nil {
		return types.Post{}, err
	}

	env, fetchErr := s.backend.GetPost(ctx, id)
	if fetchErr == nil && env.Success && len(env.Content) == 0 {
		env, fetchErr = s.backend.GetPosts(ctx, "", "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.settleFetch(seq) {
		return types.Post{}, nil
	}
	if err := s.checkFetch(fetchErr, env.Success, env.Message, "Failed to load post"); err != nil {
		return types.Post{}, err
	}

	for _, post := range adapter.AdaptAll(env) {
		if post.ID == id {
			s.upsert(post)
			s.activeID = id
			s.hasActive = true
			return *s.index[id], nil
		}
	}

	// Not an envelope failure, just an empty result; the page settles to
	// ready with nothing local touched.
	return types.Post{}, fmt.Errorf("post %d not found", id)
}

// SetActive marks an already-loaded post as the one being viewed.
func (s *PostStore) SetActive(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; !ok {
		return false
	}
	s.activeID = id
	s.hasActive = true
	return true
}

func (s *PostStore) ClearActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasActive = false
}

// beginFetch refuses re-entry while loading and hands out the sequence
// this fetch must still hold when it completes.
func (s *PostStore) beginFetch() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoading {
		return 0, ErrFetchInFlight
	}
	s.state = StateLoading
	s.fetchSeq++
	return s.fetchSeq, nil
}

// settleFetch reports whether this completion is still the latest. A
// stale completion settles the state machine but must not touch data.
// Callers hold the lock.
func (s *PostStore) settleFetch(seq uint64) bool {
	if seq != s.fetchSeq {
		if s.state == StateLoading {
			s.state = StateReady
		}
		utils.Zlog.Debug("dropping stale fetch response",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", s.fetchSeq))
		return false
	}
	return true
}

// checkFetch folds transport errors and envelope-level failures into the
// state machine. Callers hold the lock.
func (s *PostStore) checkFetch(fetchErr error, success bool, message, userMsg string) error {
	if fetchErr != nil {
		s.state = StateErrored
		s.lastErr = fetchErr
		utils.Zlog.Error("fetch failed", zap.Error(fetchErr))
		s.notify(types.NotifyError, userMsg)
		return fetchErr
	}
	if !success {
		s.state = StateErrored
		s.lastErr = fmt.Errorf("server rejected request: %s", message)
		utils.Zlog.Error("fetch rejected by server", zap.String("message", message))
		s.notify(types.NotifyError, userMsg)
		return s.lastErr
	}
	s.state = StateReady
	s.lastErr = nil
	return nil
}

// upsert stores the single canonical copy of a post. Callers hold the
// lock.
func (s *PostStore) upsert(post types.Post) {
	if existing, ok := s.index[post.ID]; ok {
		*existing = post
		return
	}
	p := post
	s.index[post.ID] = &p
}

// ====== FILTERING ======

// FilterByCategory activates a category filter. The filter is applied
// locally when the full set has been loaded, otherwise it triggers a
// server-side filtered fetch.
func (s *PostStore) FilterByCategory(ctx context.Context, category string) error {
	return s.filter(ctx, category, category, "")
}

// FilterByTag activates a tag filter.
func (s *PostStore) FilterByTag(ctx context.Context, tag string) error {
	return s.filter(ctx, tag, "", tag)
}

func (s *PostStore) filter(ctx context.Context, value, category, tag string) error {
	s.mu.Lock()
	if s.state == StateLoading {
		s.mu.Unlock()
		return ErrFetchInFlight
	}
	s.activeFilter = value
	if len(s.all) > 0 {
		s.applyFilters()
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	seq, err := s.beginFetch()
	if err != nil {
		return err
	}

	env, fetchErr := s.backend.GetPosts(ctx, category, tag)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.settleFetch(seq) {
		return nil
	}
	if err := s.checkFetch(fetchErr, env.Success, env.Message, "Failed to load posts"); err != nil {
		return err
	}

	// Server-side filtered result only feeds the rendered list; the full
	// set and its facets stay as they are.
	posts := adapter.AdaptAll(env)
	s.visible = s.visible[:0]
	for i := range posts {
		s.upsert(posts[i])
		s.visible = append(s.visible, posts[i].ID)
	}
	return nil
}

// Search applies a case-insensitive substring match on title, content
// and tags on top of the active filter.
func (s *PostStore) Search(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
	s.applyFilters()
}

// ResetFilters restores the rendered list to the full set, clears the
// search text and invalidates any fetch still in flight.
func (s *PostStore) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeFilter = FilterAll
	s.searchQuery = ""
	s.fetchSeq++ // anything outstanding is now stale
	s.applyFilters()
}

// applyFilters recomputes the rendered list from the full set. Callers
// hold the lock.
func (s *PostStore) applyFilters() {
	s.visible = s.visible[:0]
	for _, id := range s.all {
		if s.matches(s.index[id]) {
			s.visible = append(s.visible, id)
		}
	}
}

func (s *PostStore) matches(p *types.Post) bool {
	if p == nil {
		return false
	}

	matchesSearch := s.searchQuery == "" ||
		containsFold(p.Title, s.searchQuery) ||
		containsFold(p.Content, s.searchQuery)
	if !matchesSearch {
		for _, tag := range p.Tags {
			if containsFold(tag, s.searchQuery) {
				matchesSearch = true
				break
			}
		}
	}

	matchesFilter := s.activeFilter == FilterAll || p.Category == s.activeFilter
	if !matchesFilter {
		for _, tag := range p.Tags {
			if tag == s.activeFilter {
				matchesFilter = true
				break
			}
		}
	}

	return matchesSearch && matchesFilter
}

// ====== MUTATIONS ======

// Like registers a like and, once the server acknowledges it, bumps the
// counter on the single indexed copy so every collection sees it.
func (s *PostStore) Like(ctx context.Context, id int) error {
	if err := s.backend.LikePost(ctx, id); err != nil {
		utils.Zlog.Error("failed to like post", zap.Int("postId", id), zap.Error(err))
		s.notify(types.NotifyError, "Failed to like post")
		return err
	}

	s.mu.Lock()
	s.apply(id, func(p *types.Post) { p.Likes++ })
	s.mu.Unlock()

	s.notify(types.NotifySuccess, "Post liked!")
	return nil
}

// Bookmark registers a bookmark and bumps the counter.
func (s *PostStore) Bookmark(ctx context.Context, id int) error {
	if err := s.backend.BookmarkPost(ctx, id); err != nil {
		utils.Zlog.Error("failed to bookmark post", zap.Int("postId", id), zap.Error(err))
		s.notify(types.NotifyError, "Failed to bookmark post")
		return err
	}

	s.mu.Lock()
	s.apply(id, func(p *types.Post) { p.Bookmarks++ })
	s.mu.Unlock()

	s.notify(types.NotifySuccess, "Post saved to bookmarks!")
	return nil
}

// Unbookmark hits the same toggle endpoint and removes the post from the
// bookmarks collection. The underlying entity is untouched.
func (s *PostStore) Unbookmark(ctx context.Context, id int) error {
	if err := s.backend.BookmarkPost(ctx, id); err != nil {
		utils.Zlog.Error("failed to remove bookmark", zap.Int("postId", id), zap.Error(err))
		s.notify(types.NotifyError, "Failed to remove from bookmarks")
		return err
	}

	s.mu.Lock()
	for i, bookmarkedID := range s.bookmarked {
		if bookmarkedID == id {
			s.bookmarked = append(s.bookmarked[:i], s.bookmarked[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notify(types.NotifySuccess, "Post removed from bookmarks!")
	return nil
}

// Share registers a share and bumps the counter.
func (s *PostStore) Share(ctx context.Context, id int) error {
	if err := s.backend.SharePost(ctx, id); err != nil {
		utils.Zlog.Error("failed to share post", zap.Int("postId", id), zap.Error(err))
		s.notify(types.NotifyError, "Failed to share post")
		return err
	}

	s.mu.Lock()
	s.apply(id, func(p *types.Post) { p.Shares++ })
	s.mu.Unlock()

	s.notify(types.NotifySuccess, "Post shared successfully!")
	return nil
}

// Publish creates a new post. ReadTime is derived from the content when
// the draft leaves it empty; counters go out zeroed and the server owns
// the final id and created date.
func (s *PostStore) Publish(ctx context.Context, draft types.CreatePostRequest) error {
	if draft.ReadTime == "" {
		draft.ReadTime = utils.EstimateReadTime(draft.Content)
	}
	if draft.ImageURL == "" {
		draft.ImageURL = adapter.DefaultImageURL
	}
	draft.Likes = 0
	draft.Bookmarks = 0
	draft.Shares = 0

	resp, err := s.backend.CreatePost(ctx, draft)
	if err != nil {
		utils.Zlog.Error("failed to publish post", zap.Error(err))
		s.notify(types.NotifyError, "Failed to publish post")
		return err
	}
	if !resp.Success {
		utils.Zlog.Error("publish rejected by server", zap.String("message", resp.Message))
		s.notify(types.NotifyError, resp.Message)
		return fmt.Errorf("create post rejected: %s", resp.Message)
	}

	s.notify(types.NotifySuccess, "Post published!")
	return nil
}

// apply runs a patch against the indexed copy of id, if present. Callers
// hold the lock.
func (s *PostStore) apply(id int, patch func(p *types.Post)) {
	if p, ok := s.index[id]; ok {
		patch(p)
	}
}

func (s *PostStore) notify(kind types.NotificationType, message string) {
	if s.notifier != nil {
		s.notifier.Notify(types.Notification{Type: kind, Message: message})
	}
}

// ====== READ VIEWS ======

func (s *PostStore) State() PageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *PostStore) LastErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *PostStore) ActiveFilter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeFilter
}

func (s *PostStore) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

// Posts returns the rendered list.
func (s *PostStore) Posts() []types.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(s.visible)
}

// AllPosts returns the unfiltered full set.
func (s *PostStore) AllPosts() []types.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(s.all)
}

// Bookmarked returns the bookmarks collection.
func (s *PostStore) Bookmarked() []types.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(s.bookmarked)
}

// ActivePost returns the post being viewed, if any.
func (s *PostStore) ActivePost() (types.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasActive {
		return types.Post{}, false
	}
	p, ok := s.index[s.activeID]
	if !ok {
		return types.Post{}, false
	}
	return *p, true
}

// Featured returns the featured posts, always sourced from the full set
// so the surface is stable under filter changes.
func (s *PostStore) Featured() []types.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	var featured []types.Post
	for _, id := range s.all {
		if p := s.index[id]; p != nil && p.Featured {
			featured = append(featured, *p)
		}
	}
	return featured
}

// Categories derives the category facet from the full set, first-seen
// order, so filter controls never shrink as a side effect of filtering.
func (s *PostStore) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var categories []string
	for _, id := range s.all {
		p := s.index[id]
		if p == nil || p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}

// Tags derives the tag facet from the full set.
func (s *PostStore) Tags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var tags []string
	for _, id := range s.all {
		p := s.index[id]
		if p == nil {
			continue
		}
		for _, tag := range p.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// RelatedPosts returns up to limit posts sharing the category or any tag
// with the given post, excluding the post itself.
func (s *PostStore) RelatedPosts(id, limit int) []types.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	base, ok := s.index[id]
	if !ok {
		return nil
	}

	baseTags := make(map[string]bool, len(base.Tags))
	for _, tag := range base.Tags {
		baseTags[tag] = true
	}

	var related []types.Post
	for _, candidateID := range s.all {
		if candidateID == id || (limit > 0 && len(related) >= limit) {
			continue
		}
		p := s.index[candidateID]
		if p == nil {
			continue
		}
		match := base.Category != "" && p.Category == base.Category
		if !match {
			for _, tag := range p.Tags {
				if baseTags[tag] {
					match = true
					break
				}
			}
		}
		if match {
			related = append(related, *p)
		}
	}
	return related
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// resolve materializes copies for an id list. Callers hold the lock.
func (s *PostStore) resolve(ids []int) []types.Post {
	posts := make([]types.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.index[id]; ok {
			posts = append(posts, *p)
		}
	}
	return posts
}
