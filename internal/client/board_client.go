package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"board-web/internal/domain"
	"board-web/internal/metrics"
)

// ErrNotFound is matched by errors.Is for any 404 returned by the board API
var ErrNotFound = errors.New("resource not found")

// APIError is returned when the board API answers with a non-2xx status
type APIError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("board-api %s %s returned status %d", e.Method, e.URL, e.StatusCode)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// BoardClient handles communication with the board API
type BoardClient interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	GetMyPosts(ctx context.Context, userID int64) ([]domain.Post, error)
	GetPost(ctx context.Context, postID int64) (*domain.Post, error)
	GetCommentsByPostID(ctx context.Context, postID int64) ([]domain.Comment, error)
	GetCommentCountByPostID(ctx context.Context, postID int64) (int, error)
	AddComment(ctx context.Context, req domain.NewComment) (*domain.Comment, error)
	// Ping checks that the board API is reachable
	Ping(ctx context.Context) error
}

type boardClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewBoardClient creates a new board API client
func NewBoardClient(baseURL string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) BoardClient {
	return &boardClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

func (c *boardClient) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", userID), nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return &user, nil
}

func (c *boardClient) GetMyPosts(ctx context.Context, userID int64) ([]domain.Post, error) {
	var posts []domain.Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/user/%d", userID), nil, &posts); err != nil {
		return nil, fmt.Errorf("failed to get posts of user %d: %w", userID, err)
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

func (c *boardClient) GetPost(ctx context.Context, postID int64) (*domain.Post, error) {
	var post domain.Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", postID), nil, &post); err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", postID, err)
	}
	return &post, nil
}

func (c *boardClient) GetCommentsByPostID(ctx context.Context, postID int64) ([]domain.Comment, error) {
	var comments []domain.Comment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/comments/post/%d", postID), nil, &comments); err != nil {
		return nil, fmt.Errorf("failed to get comments of post %d: %w", postID, err)
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}

func (c *boardClient) GetCommentCountByPostID(ctx context.Context, postID int64) (int, error) {
	var count int
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/comments/post/%d/count", postID), nil, &count); err != nil {
		return 0, fmt.Errorf("failed to get comment count of post %d: %w", postID, err)
	}
	return count, nil
}

func (c *boardClient) AddComment(ctx context.Context, req domain.NewComment) (*domain.Comment, error) {
	var comment domain.Comment
	if err := c.do(ctx, http.MethodPost, "/comments", req, &comment); err != nil {
		return nil, fmt.Errorf("failed to add comment to post %d: %w", req.PostID, err)
	}
	return &comment, nil
}

func (c *boardClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach board-api: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return &APIError{Method: http.MethodHead, URL: c.baseURL, StatusCode: resp.StatusCode}
	}
	return nil
}

// do sends a JSON request and decodes a JSON response into out
func (c *boardClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("Calling board-api",
		zap.String("method", method),
		zap.String("url", url),
	)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(url, method, statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Failed to call board-api",
			zap.Error(err),
			zap.String("method", method),
			zap.String("url", url),
			zap.Duration("duration", duration),
		)
		return fmt.Errorf("failed to call board-api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Board-api returned non-success status",
			zap.Int("status_code", resp.StatusCode),
			zap.String("method", method),
			zap.String("url", url),
			zap.Duration("duration", duration),
		)
		return &APIError{Method: method, URL: url, StatusCode: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode board-api response",
			zap.Error(err),
			zap.String("url", url),
		)
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
