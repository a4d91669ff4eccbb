package view

import (
	"context"
	"strconv"
	"sync/atomic"

	"board-web/internal/domain"
)

// MockBoardClient is a mock implementation of client.BoardClient
type MockBoardClient struct {
	GetUserFunc                 func(ctx context.Context, userID int64) (*domain.User, error)
	GetMyPostsFunc              func(ctx context.Context, userID int64) ([]domain.Post, error)
	GetPostFunc                 func(ctx context.Context, postID int64) (*domain.Post, error)
	GetCommentsByPostIDFunc     func(ctx context.Context, postID int64) ([]domain.Comment, error)
	GetCommentCountByPostIDFunc func(ctx context.Context, postID int64) (int, error)
	AddCommentFunc              func(ctx context.Context, req domain.NewComment) (*domain.Comment, error)

	calls int64
}

// Calls returns how many collaborator calls were made
func (m *MockBoardClient) Calls() int64 {
	return atomic.LoadInt64(&m.calls)
}

func (m *MockBoardClient) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, userID)
	}
	return &domain.User{ID: userID}, nil
}

func (m *MockBoardClient) GetMyPosts(ctx context.Context, userID int64) ([]domain.Post, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.GetMyPostsFunc != nil {
		return m.GetMyPostsFunc(ctx, userID)
	}
	return []domain.Post{}, nil
}

func (m *MockBoardClient) GetPost(ctx context.Context, postID int64) (*domain.Post, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.GetPostFunc != nil {
		return m.GetPostFunc(ctx, postID)
	}
	return &domain.Post{ID: postID}, nil
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
	return &domain.Comment{PostID: req.PostID, UserID: req.UserID, Comment: req.Comment}, nil
}

func (m *MockBoardClient) Ping(ctx context.Context) error {
	return nil
}

// fixedPictures resolves every user to a predictable URL
type fixedPictures struct {
	err error
}

func (p fixedPictures) ProfilePicURL(_ context.Context, userID int64) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return "/pics/" + strconv.FormatInt(userID, 10), nil
}
