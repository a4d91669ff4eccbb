package view

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"board-web/internal/client"
	"board-web/internal/domain"
)

func newTestService(mock *MockBoardClient) *PostViewService {
	return NewPostViewService(mock, 1, fixedPictures{}, time.UTC, zap.NewNop(), newTestMetrics())
}

func samplePost(id int64) *domain.Post {
	return &domain.Post{
		ID:          id,
		Title:       "Looking for a designer",
		Content:     "We are building **something**.",
		Category:    domain.CategoryTeamProject,
		Field:       "web",
		Status:      domain.PostStatusOpen,
		CreatedDate: "2024-01-01T00:00:00Z",
		User:        domain.User{ID: 3, Name: "Lee"},
	}
}

func TestPostViewService_Load(t *testing.T) {
	var order []string
	mock := &MockBoardClient{
		GetPostFunc: func(ctx context.Context, postID int64) (*domain.Post, error) {
			order = append(order, "post")
			return samplePost(postID), nil
		},
		GetCommentsByPostIDFunc: func(ctx context.Context, postID int64) ([]domain.Comment, error) {
			order = append(order, "comments")
			return []domain.Comment{{ID: 1, PostID: postID, Comment: "hi"}}, nil
		},
		GetCommentCountByPostIDFunc: func(ctx context.Context, postID int64) (int, error) {
			order = append(order, "count")
			return 5, nil
		},
	}
	svc := newTestService(mock)

	var v PostView
	res := svc.Load(context.Background(), &v, 42)

	require.NoError(t, res.Err)
	assert.Equal(t, []string{"post", "comments", "count"}, order)
	assert.True(t, v.Mounted(42))
	assert.Equal(t, int64(42), v.Post.ID)
	assert.Len(t, v.Comments, 1)
	assert.Equal(t, 5, v.CommentCount, "count comes from the collaborator, not the slice length")
	assert.False(t, v.Liked)
	assert.Empty(t, v.Error)
}

func TestPostViewService_LoadFailureStopsSequence(t *testing.T) {
	tests := []struct {
		name      string
		failAt    string
		wantCalls int64
		wantPost  bool
	}{
		{"post fails", "post", 1, false},
		{"comments fail", "comments", 2, true},
		{"count fails", "count", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boom := errors.New("boom")
			mock := &MockBoardClient{
				GetPostFunc: func(ctx context.Context, postID int64) (*domain.Post, error) {
					if tt.failAt == "post" {
						return nil, boom
					}
					return samplePost(postID), nil
				},
				GetCommentsByPostIDFunc: func(ctx context.Context, postID int64) ([]domain.Comment, error) {
					if tt.failAt == "comments" {
						return nil, boom
					}
					return []domain.Comment{}, nil
				},
				GetCommentCountByPostIDFunc: func(ctx context.Context, postID int64) (int, error) {
					return 0, boom
				},
			}
			svc := newTestService(mock)

			var v PostView
			res := svc.Load(context.Background(), &v, 7)

			assert.ErrorIs(t, res.Err, boom)
			assert.Equal(t, tt.wantCalls, mock.Calls())
			assert.Equal(t, LoadErrorMessage, v.Error)
			assert.Equal(t, tt.wantPost, v.Post != nil)
			assert.False(t, v.Mounted(7))

			page := svc.Present(context.Background(), &v, testNow)
			assert.Equal(t, LoadErrorMessage, page.Error)
			assert.Empty(t, page.Title, "post body is not rendered on error")
		})
	}
}

func TestLoadResult_NotFound(t *testing.T) {
	notFound := fmt.Errorf("failed to get post: %w", &client.APIError{StatusCode: 404})
	assert.True(t, LoadResult{Err: notFound}.NotFound())
	assert.False(t, LoadResult{Err: errors.New("boom")}.NotFound())
	assert.False(t, LoadResult{}.NotFound())
}

func TestPostView_SupersededLoadIsDiscarded(t *testing.T) {
	var v PostView
	first := v.Begin(1)
	second := v.Begin(2)

	applied := v.Apply(first, LoadResult{PostID: 1, Post: samplePost(1)})
	assert.False(t, applied)
	assert.Nil(t, v.Post)
	assert.Equal(t, int64(2), v.PostID)

	applied = v.Apply(second, LoadResult{PostID: 2, Post: samplePost(2)})
	assert.True(t, applied)
	assert.Equal(t, int64(2), v.Post.ID)
}

func TestPostView_BeginResetsState(t *testing.T) {
	v := PostView{
		PostID:         1,
		Post:           samplePost(1),
		Comments:       []domain.Comment{{ID: 1}},
		CommentCount:   1,
		NewCommentText: "draft",
		Liked:          true,
		Generation:     4,
	}

	token := v.Begin(2)

	assert.Equal(t, uint64(5), token)
	assert.Equal(t, PostView{PostID: 2, Comments: []domain.Comment{}, Generation: 5}, v)
}

func TestPostViewService_AddComment(t *testing.T) {
	var sent domain.NewComment
	mock := &MockBoardClient{
		AddCommentFunc: func(ctx context.Context, req domain.NewComment) (*domain.Comment, error) {
			sent = req
			return &domain.Comment{ID: 99, PostID: req.PostID, UserID: req.UserID, Comment: req.Comment}, nil
		},
	}
	svc := newTestService(mock)
	v := PostView{PostID: 42, Post: samplePost(42), Comments: []domain.Comment{}, CommentCount: 3}

	err := svc.AddComment(context.Background(), &v, "nice post")
	require.NoError(t, err)

	assert.Equal(t, domain.NewComment{UserID: 1, PostID: 42, Comment: "nice post"}, sent)
	require.Len(t, v.Comments, 1)
	assert.Equal(t, int64(99), v.Comments[0].ID)
	assert.Equal(t, 4, v.CommentCount)
	assert.Empty(t, v.NewCommentText)
}

func TestPostViewService_AddCommentFailureKeepsState(t *testing.T) {
	mock := &MockBoardClient{
		AddCommentFunc: func(ctx context.Context, req domain.NewComment) (*domain.Comment, error) {
			return nil, errors.New("board-api down")
		},
	}
	svc := newTestService(mock)
	v := PostView{PostID: 42, Post: samplePost(42), Comments: []domain.Comment{{ID: 1}}, CommentCount: 1}

	err := svc.AddComment(context.Background(), &v, "draft text")
	require.Error(t, err)

	assert.Len(t, v.Comments, 1)
	assert.Equal(t, 1, v.CommentCount)
	assert.Equal(t, "draft text", v.NewCommentText, "typed text stays in the input")
	assert.Empty(t, v.Error, "no user-visible error for this path")
}

func TestPostViewService_AddCommentRejectedLocally(t *testing.T) {
	mock := &MockBoardClient{}
	svc := newTestService(mock)

	v := PostView{PostID: 42, Post: samplePost(42), Comments: []domain.Comment{}}
	assert.ErrorIs(t, svc.AddComment(context.Background(), &v, "   \n\t"), ErrEmptyComment)

	var unloaded PostView
	assert.ErrorIs(t, svc.AddComment(context.Background(), &unloaded, "hello"), ErrNotMounted)

	failed := PostView{PostID: 42, Post: samplePost(42), Error: LoadErrorMessage}
	assert.ErrorIs(t, svc.AddComment(context.Background(), &failed, "hello"), ErrNotMounted)

	assert.Zero(t, mock.Calls())
}

func TestPostViewService_AddCommentProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("non-empty text appends exactly one comment and adds one to the count", prop.ForAll(
		func(text string, existing int, count int) bool {
			mock := &MockBoardClient{}
			svc := newTestService(mock)

			v := PostView{PostID: 1, Post: samplePost(1), Comments: make([]domain.Comment, existing), CommentCount: count}
			if err := svc.AddComment(context.Background(), &v, "x"+text); err != nil {
				return false
			}
			return len(v.Comments) == existing+1 &&
				v.CommentCount == count+1 &&
				v.Comments[existing].Comment == "x"+text &&
				mock.Calls() == 1
		},
		gen.AnyString(),
		gen.IntRange(0, 50),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}

func TestPostViewService_ToggleLike(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("toggling twice restores the flag without collaborator calls", prop.ForAll(
		func(liked bool) bool {
			mock := &MockBoardClient{}
			svc := newTestService(mock)
			v := PostView{PostID: 1, Post: samplePost(1), Liked: liked}

			svc.ToggleLike(&v)
			if v.Liked == liked {
				return false
			}
			svc.ToggleLike(&v)
			return v.Liked == liked && mock.Calls() == 0
		},
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestPostViewService_PresentScenario(t *testing.T) {
	mock := &MockBoardClient{
		GetPostFunc: func(ctx context.Context, postID int64) (*domain.Post, error) {
			return samplePost(postID), nil
		},
		GetCommentsByPostIDFunc: func(ctx context.Context, postID int64) ([]domain.Comment, error) {
			return []domain.Comment{
				{ID: 1, PostID: postID, UserID: 2, Comment: "count me in", CreatedDate: "2024-03-15T11:30:00Z", User: domain.User{ID: 2, Name: "Park"}},
				{ID: 2, PostID: postID, UserID: 4, Comment: "me too", CreatedDate: "2024-03-15T11:59:30Z"},
			}, nil
		},
		GetCommentCountByPostIDFunc: func(ctx context.Context, postID int64) (int, error) {
			return 2, nil
		},
	}
	svc := newTestService(mock)

	var v PostView
	svc.Load(context.Background(), &v, 42)
	page := svc.Present(context.Background(), &v, testNow)

	assert.True(t, page.Loaded)
	assert.Equal(t, "Looking for a designer", page.Title)
	assert.Equal(t, "Lee", page.Author)
	assert.Equal(t, "2024-01-01", page.Date)
	assert.True(t, page.HasStatus)
	assert.Equal(t, "recruiting", page.StatusLabel)
	require.NotNil(t, page.CategoryIcon)
	assert.Equal(t, "team", page.CategoryIcon.Name)
	assert.Contains(t, string(page.Content), "<strong>something</strong>")
	assert.Equal(t, 2, page.CommentCount)
	assert.Equal(t, "/pics/1", page.ViewerPicURL)

	require.Len(t, page.Comments, 2)
	assert.Equal(t, "Park", page.Comments[0].Author)
	assert.Equal(t, "30 minutes ago", page.Comments[0].RelativeTime)
	assert.Equal(t, "/pics/2", page.Comments[0].ProfilePicURL)
	assert.Equal(t, "Unknown user", page.Comments[1].Author)
	assert.Equal(t, "just now", page.Comments[1].RelativeTime)
	assert.Equal(t, "/pics/4", page.Comments[1].ProfilePicURL, "falls back to the comment's userId")
}

func TestPostViewService_PresentWithoutStatus(t *testing.T) {
	svc := newTestService(&MockBoardClient{})
	post := samplePost(1)
	post.Status = ""
	post.Category = "marketing"

	page := svc.Present(context.Background(), &PostView{PostID: 1, Post: post}, testNow)

	assert.False(t, page.HasStatus)
	assert.Empty(t, page.StatusLabel)
	assert.Nil(t, page.CategoryIcon)
	assert.Equal(t, "marketing", page.Category)
}

func TestPostViewService_PresentBeforeLoad(t *testing.T) {
	svc := newTestService(&MockBoardClient{})

	var v PostView
	v.Begin(5)
	page := svc.Present(context.Background(), &v, testNow)

	assert.Equal(t, int64(5), page.PostID)
	assert.False(t, page.Loaded)
	assert.Empty(t, page.Error)
	assert.Empty(t, page.Title)
}
