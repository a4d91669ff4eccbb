package handler

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"

	"board-web/internal/domain"
	"board-web/internal/session"
)

// MockBoardClient is a mock implementation of client.BoardClient
type MockBoardClient struct {
	GetUserFunc                 func(ctx context.Context, userID int64) (*domain.User, error)
	GetMyPostsFunc              func(ctx context.Context, userID int64) ([]domain.Post, error)
	GetPostFunc                 func(ctx context.Context, postID int64) (*domain.Post, error)
	GetCommentsByPostIDFunc     func(ctx context.Context, postID int64) ([]domain.Comment, error)
	GetCommentCountByPostIDFunc func(ctx context.Context, postID int64) (int, error)
	AddCommentFunc              func(ctx context.Context, req domain.NewComment) (*domain.Comment, error)
	PingFunc                    func(ctx context.Context) error

	calls int64
}

func (m *MockBoardClient) Calls() int64 {
	return atomic.LoadInt64(&m.calls)
}

func (m *MockBoardClient) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, userID)
	}
	return &domain.User{ID: userID, Name: "Kim"}, nil
}

func (m *MockBoardClient) GetMyPosts(ctx context.Context, userID int64) ([]domain.Post, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.GetMyPostsFunc != nil {
		return m.GetMyPostsFunc(ctx, userID)
	}
	return []domain.Post{{ID: 1}, {ID: 2}}, nil
}

func (m *MockBoardClient) GetPost(ctx context.Context, postID int64) (*domain.Post, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.GetPostFunc != nil {
		return m.GetPostFunc(ctx, postID)
	}
	return &domain.Post{
		ID:          postID,
		Title:       "Post " + strconv.FormatInt(postID, 10),
		Category:    domain.CategoryTeamProject,
		Status:      domain.PostStatusOpen,
		CreatedDate: "2024-01-01T00:00:00Z",
		User:        domain.User{ID: 3, Name: "Lee"},
	}, nil
}

func (m *MockBoardClient) GetCommentsByPostID(ctx context.Context, postID int64) ([]domain.Comment, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.GetCommentsByPostIDFunc != nil {
		return m.GetCommentsByPostIDFunc(ctx, postID)
	}
	return []domain.Comment{}, nil
}

func (m *MockBoardClient) GetCommentCountByPostID(ctx context.Context, postID int64) (int, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.GetCommentCountByPostIDFunc != nil {
		return m.GetCommentCountByPostIDFunc(ctx, postID)
	}
	return 0, nil
}

func (m *MockBoardClient) AddComment(ctx context.Context, req domain.NewComment) (*domain.Comment, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, req)
	}
	return &domain.Comment{ID: 100, PostID: req.PostID, UserID: req.UserID, Comment: req.Comment, User: domain.User{ID: req.UserID, Name: "Kim"}}, nil
}

func (m *MockBoardClient) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

type fixedPictures struct{}

func (fixedPictures) ProfilePicURL(_ context.Context, userID int64) (string, error) {
	return "/pics/" + strconv.FormatInt(userID, 10), nil
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error {
	return errors.New("unreachable")
}

// failingStore is a session.Store whose backend is unreachable
type failingStore struct{}

func (failingStore) Load(context.Context, string) (*session.State, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) Save(context.Context, string, *session.State) error {
	return errors.New("connection refused")
}

func (failingStore) Ping(context.Context) error {
	return errors.New("connection refused")
}
