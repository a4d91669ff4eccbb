package view

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"time"

	"go.uber.org/zap"

	"board-web/internal/client"
	"board-web/internal/domain"
	"board-web/internal/metrics"
)

// LoadErrorMessage is shown instead of the post when a load fails
const LoadErrorMessage = "Failed to load the post."

// LoadingMessage is shown while a mounted view has no post and no error
const LoadingMessage = "Loading the post..."

var (
	// ErrEmptyComment is returned for blank comment text; nothing is sent
	ErrEmptyComment = errors.New("comment text is empty")
	// ErrNotMounted is returned for actions on a view without a loaded post
	ErrNotMounted = errors.New("post view is not loaded")
)

// PostView is the state of one mounted post page
type PostView struct {
	PostID         int64            `json:"postId"`
	Post           *domain.Post     `json:"post,omitempty"`
	Comments       []domain.Comment `json:"comments"`
	CommentCount   int              `json:"commentCount"`
	NewCommentText string           `json:"newCommentText,omitempty"`
	Error          string           `json:"error,omitempty"`
	Liked          bool             `json:"liked"`
	// Generation increases on every mount; loads started under an older
	// generation are discarded.
	Generation uint64 `json:"generation"`
}

// Mounted reports whether the view holds a successfully loaded postID
func (v *PostView) Mounted(postID int64) bool {
	return v != nil && v.PostID == postID && v.Post != nil && v.Error == ""
}

// Begin resets the view for postID and returns the load token
func (v *PostView) Begin(postID int64) uint64 {
	gen := v.Generation + 1
	*v = PostView{
		PostID:     postID,
		Comments:   []domain.Comment{},
		Generation: gen,
	}
	return gen
}

// Apply stores a load result if token is still the current generation
func (v *PostView) Apply(token uint64, res LoadResult) bool {
	if token != v.Generation || res.PostID != v.PostID {
		return false
	}
	v.Post = res.Post
	if res.Comments != nil {
		v.Comments = res.Comments
	}
	v.CommentCount = res.CommentCount
	if res.Err != nil {
		v.Error = LoadErrorMessage
	}
	return true
}

// ToggleLike flips the local like flag
func (v *PostView) ToggleLike() {
	v.Liked = !v.Liked
}

// LoadResult is the outcome of one sequential post load
type LoadResult struct {
	PostID       int64
	Post         *domain.Post
	Comments     []domain.Comment
	CommentCount int
	Err          error
}

// NotFound reports whether the load failed because the post does not exist
func (r LoadResult) NotFound() bool {
	return r.Err != nil && errors.Is(r.Err, client.ErrNotFound)
}

// PostViewService performs the collaborator calls behind a post page
type PostViewService struct {
	client   client.BoardClient
	viewerID int64
	pictures client.ProfilePicResolver
	markdown *MarkdownRenderer
	location *time.Location
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func NewPostViewService(
	c client.BoardClient,
	viewerID int64,
	pictures client.ProfilePicResolver,
	location *time.Location,
	logger *zap.Logger,
	m *metrics.Metrics,
) *PostViewService {
	if location == nil {
		location = time.Local
	}
	return &PostViewService{
		client:   c,
		viewerID: viewerID,
		pictures: pictures,
		markdown: NewMarkdownRenderer(),
		location: location,
		logger:   logger,
		metrics:  m,
	}
}

// Fetch loads the post, its comments and the comment count, in that order.
// The first failure stops the sequence.
func (s *PostViewService) Fetch(ctx context.Context, postID int64) LoadResult {
	res := LoadResult{PostID: postID}

	post, err := s.client.GetPost(ctx, postID)
	if err != nil {
		return s.failed(res, err)
	}
	res.Post = post

	comments, err := s.client.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return s.failed(res, err)
	}
	res.Comments = comments

	count, err := s.client.GetCommentCountByPostID(ctx, postID)
	if err != nil {
		return s.failed(res, err)
	}
	res.CommentCount = count

	s.recordLoad(metrics.ResultSuccess)
	return res
}

func (s *PostViewService) failed(res LoadResult, err error) LoadResult {
	s.logger.Warn("Failed to load post view",
		zap.Int64("post_id", res.PostID),
		zap.Error(err),
	)
	s.recordLoad(metrics.ResultFailure)
	res.Err = err
	return res
}

// Load mounts postID on v in one step
func (s *PostViewService) Load(ctx context.Context, v *PostView, postID int64) LoadResult {
	token := v.Begin(postID)
	res := s.Fetch(ctx, postID)
	v.Apply(token, res)
	return res
}

// Superseded records a load whose result was discarded
func (s *PostViewService) Superseded(postID int64) {
	s.logger.Info("Discarding superseded post view load", zap.Int64("post_id", postID))
	s.recordLoad(metrics.ResultSuperseded)
}

// AddComment submits text as the viewer. On success the returned comment is
// appended, the count goes up by one and the input is cleared. On failure
// the view keeps its previous state with the typed text.
func (s *PostViewService) AddComment(ctx context.Context, v *PostView, text string) error {
	if v == nil || v.Post == nil || v.Error != "" {
		return ErrNotMounted
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyComment
	}
	v.NewCommentText = text

	comment, err := s.client.AddComment(ctx, domain.NewComment{
		UserID:  s.viewerID,
		PostID:  v.PostID,
		Comment: text,
	})
	if s.metrics != nil {
		s.metrics.RecordCommentAdded(err)
	}
	if err != nil {
		s.logger.Error("Failed to add comment",
			zap.Int64("post_id", v.PostID),
			zap.Int64("user_id", s.viewerID),
			zap.Error(err),
		)
		return err
	}

	v.Comments = append(v.Comments, *comment)
	v.CommentCount++
	v.NewCommentText = ""
	return nil
}

// ToggleLike flips the like flag without any collaborator call
func (s *PostViewService) ToggleLike(v *PostView) {
	v.ToggleLike()
	if s.metrics != nil {
		s.metrics.IncrementLikeToggles()
	}
}

func (s *PostViewService) recordLoad(result string) {
	if s.metrics != nil {
		s.metrics.RecordPostViewLoad(result)
	}
}

// CommentItem is one rendered comment
type CommentItem struct {
	ID            int64
	Author        string
	ProfilePicURL string
	RelativeTime  string
	Text          string
}

// PostPage is everything the post template needs
type PostPage struct {
	PostID         int64
	Error          string
	Loaded         bool
	Title          string
	Author         string
	Date           string
	Category       string
	CategoryIcon   *Icon
	Field          string
	HasStatus      bool
	StatusLabel    string
	Content        template.HTML
	Liked          bool
	CommentCount   int
	Comments       []CommentItem
	NewCommentText string
	ViewerPicURL   string
}

// Present turns v into a PostPage as of now
func (s *PostViewService) Present(ctx context.Context, v *PostView, now time.Time) PostPage {
	page := PostPage{PostID: v.PostID}
	if v.Error != "" {
		page.Error = v.Error
		return page
	}
	if v.Post == nil {
		return page
	}
	page.Loaded = true

	post := v.Post
	page.Title = post.Title
	page.Author = AuthorName(post.User)
	page.Date = PostDate(post.CreatedDate)
	page.Category = post.Category
	page.CategoryIcon = CategoryIcon(post.Category)
	page.Field = post.Field
	page.HasStatus = post.Status != ""
	page.StatusLabel = StatusLabel(post.Status)
	page.Content = s.markdown.Render(post.Content)
	page.Liked = v.Liked
	page.CommentCount = v.CommentCount
	page.NewCommentText = v.NewCommentText
	page.ViewerPicURL = profilePicURL(ctx, s.pictures, s.viewerID, s.logger)

	page.Comments = make([]CommentItem, 0, len(v.Comments))
	for _, c := range v.Comments {
		userID := c.User.ID
		if userID == 0 {
			userID = c.UserID
		}
		page.Comments = append(page.Comments, CommentItem{
			ID:            c.ID,
			Author:        AuthorName(c.User),
			ProfilePicURL: profilePicURL(ctx, s.pictures, userID, s.logger),
			RelativeTime:  TimeDifference(c.CreatedDate, now, s.location),
			Text:          c.Comment,
		})
	}
	return page
}
