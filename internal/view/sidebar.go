package view

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"board-web/internal/client"
	"board-web/internal/domain"
	"board-web/internal/metrics"
)

const defaultAvatar = "/static/img/avatar.svg"

// NavEntry is one sidebar navigation button
type NavEntry struct {
	Path  string
	Label string
	Icon  string
}

// NavEntries are the fixed sidebar entries, in display order
var NavEntries = []NavEntry{
	{Path: "/post", Label: "Write", Icon: "pen"},
	{Path: "/", Label: "Team project", Icon: "users"},
	{Path: "/developers", Label: "Developers", Icon: "code"},
	{Path: "/designs", Label: "Designers", Icon: "palette"},
	{Path: "/study", Label: "Study", Icon: "book"},
}

// FindNavEntry returns the entry for path, if any
func FindNavEntry(path string) (NavEntry, bool) {
	for _, e := range NavEntries {
		if e.Path == path {
			return e, true
		}
	}
	return NavEntry{}, false
}

// SidebarState is the per-visitor part of the sidebar
type SidebarState struct {
	Collapsed bool `json:"collapsed"`
	// SelectedPath is the current route; empty means none
	SelectedPath string `json:"selectedPath,omitempty"`
}

// Navigate records a route change
func (s *SidebarState) Navigate(path string) {
	s.SelectedPath = path
}

// Toggle flips between the collapsed and expanded layout
func (s *SidebarState) Toggle() {
	s.Collapsed = !s.Collapsed
}

// NavItem is a NavEntry with its selection flag
type NavItem struct {
	NavEntry
	Selected bool
}

// Items marks each entry selected iff its path equals SelectedPath
func (s SidebarState) Items() []NavItem {
	items := make([]NavItem, len(NavEntries))
	for i, e := range NavEntries {
		items[i] = NavItem{
			NavEntry: e,
			Selected: s.SelectedPath != "" && e.Path == s.SelectedPath,
		}
	}
	return items
}

// ProfileSnapshot is a consistent copy of the profile panel data
type ProfileSnapshot struct {
	User      *domain.User
	Posts     []domain.Post
	PostCount int
}

// ProfilePanel holds the viewer's profile and authored posts. It is shared
// by every visitor since the viewer is fixed.
type ProfilePanel struct {
	client  client.BoardClient
	userID  int64
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu        sync.RWMutex
	user      *domain.User
	posts     []domain.Post
	postCount int
	attempted bool
}

// NewProfilePanel creates an empty panel for userID
func NewProfilePanel(c client.BoardClient, userID int64, logger *zap.Logger, m *metrics.Metrics) *ProfilePanel {
	return &ProfilePanel{
		client:  c,
		userID:  userID,
		logger:  logger,
		metrics: m,
		posts:   []domain.Post{},
	}
}

// Refresh refetches the user and the authored posts. Failures are logged
// and leave the previous data in place. The post list is only replaced when
// it differs structurally from the current one.
func (p *ProfilePanel) Refresh(ctx context.Context) string {
	p.mu.Lock()
	p.attempted = true
	p.mu.Unlock()

	result := metrics.ResultSuccess

	user, err := p.client.GetUser(ctx, p.userID)
	if err != nil {
		p.logger.Warn("Failed to load sidebar user",
			zap.Int64("user_id", p.userID),
			zap.Error(err),
		)
		result = metrics.ResultFailure
	} else {
		p.mu.Lock()
		p.user = user
		p.mu.Unlock()
	}

	posts, err := p.client.GetMyPosts(ctx, p.userID)
	if err != nil {
		p.logger.Warn("Failed to load sidebar post count",
			zap.Int64("user_id", p.userID),
			zap.Error(err),
		)
		p.record(metrics.ResultFailure)
		return metrics.ResultFailure
	}

	p.mu.Lock()
	changed := !reflect.DeepEqual(posts, p.posts)
	if changed {
		p.posts = posts
		p.postCount = len(posts)
	}
	count := p.postCount
	p.mu.Unlock()

	if !changed && result == metrics.ResultSuccess {
		result = metrics.ResultUnchanged
	}
	if p.metrics != nil {
		p.metrics.SetSidebarPostCount(count)
	}
	p.record(result)
	return result
}

// EnsureLoaded runs a first Refresh if none has been attempted yet
func (p *ProfilePanel) EnsureLoaded(ctx context.Context) {
	p.mu.RLock()
	attempted := p.attempted
	p.mu.RUnlock()
	if !attempted {
		p.Refresh(ctx)
	}
}

// Snapshot returns a copy of the current panel data
func (p *ProfilePanel) Snapshot() ProfileSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := ProfileSnapshot{
		Posts:     append([]domain.Post(nil), p.posts...),
		PostCount: p.postCount,
	}
	if p.user != nil {
		u := *p.user
		snap.User = &u
	}
	return snap
}

func (p *ProfilePanel) record(result string) {
	if p.metrics != nil {
		p.metrics.RecordSidebarRefresh(result)
	}
}

// SidebarPage is everything the sidebar template needs
type SidebarPage struct {
	Collapsed     bool
	User          *domain.User
	ProfilePicURL string
	ProfileURL    string
	PostCount     int
	Items         []NavItem
	// CurrentPath is where the collapse toggle returns to
	CurrentPath string
}

// SidebarPresenter combines the shared profile panel with visitor state
type SidebarPresenter struct {
	panel    *ProfilePanel
	pictures client.ProfilePicResolver
	logger   *zap.Logger
}

func NewSidebarPresenter(panel *ProfilePanel, pictures client.ProfilePicResolver, logger *zap.Logger) *SidebarPresenter {
	return &SidebarPresenter{
		panel:    panel,
		pictures: pictures,
		logger:   logger,
	}
}

// Present builds the sidebar for the given visitor state
func (s *SidebarPresenter) Present(ctx context.Context, st SidebarState) SidebarPage {
	s.panel.EnsureLoaded(ctx)
	snap := s.panel.Snapshot()

	page := SidebarPage{
		Collapsed:   st.Collapsed,
		User:        snap.User,
		PostCount:   snap.PostCount,
		Items:       st.Items(),
		CurrentPath: st.SelectedPath,
	}
	if snap.User != nil {
		page.ProfileURL = fmt.Sprintf("/user/%d", snap.User.ID)
		page.ProfilePicURL = profilePicURL(ctx, s.pictures, snap.User.ID, s.logger)
	}
	return page
}

// profilePicURL resolves a picture, degrading to the default avatar
func profilePicURL(ctx context.Context, pictures client.ProfilePicResolver, userID int64, logger *zap.Logger) string {
	if pictures == nil {
		return defaultAvatar
	}
	url, err := pictures.ProfilePicURL(ctx, userID)
	if err != nil || url == "" {
		logger.Warn("Failed to resolve profile picture",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return defaultAvatar
	}
	return url
}
