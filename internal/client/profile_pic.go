package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "board-web/internal/config"
)

// ProfilePicResolver resolves the image URL of a user's profile picture
type ProfilePicResolver interface {
	ProfilePicURL(ctx context.Context, userID int64) (string, error)
}

// APIProfilePics serves profile pictures straight from the board API
type APIProfilePics struct {
	baseURL string
}

// NewAPIProfilePics creates a resolver pointing at {baseURL}/users/{id}/profile-pic
func NewAPIProfilePics(baseURL string) *APIProfilePics {
	return &APIProfilePics{baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (p *APIProfilePics) ProfilePicURL(_ context.Context, userID int64) (string, error) {
	return fmt.Sprintf("%s/users/%d/profile-pic", p.baseURL, userID), nil
}

// S3ProfilePics hands out presigned GET URLs for profiles/{userID}
type S3ProfilePics struct {
	presignClient *s3.PresignClient
	bucket        string
	expiry        time.Duration
}

// NewS3ProfilePics creates an S3 backed resolver. A non-empty Endpoint
// targets an S3 compatible store such as MinIO.
func NewS3ProfilePics(ctx context.Context, cfg *appConfig.S3Config) (*S3ProfilePics, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}
	if cfg.Endpoint != "" && (cfg.AccessKey == "" || cfg.SecretKey == "") {
		return nil, fmt.Errorf("access key and secret key are required for a custom S3 endpoint")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	return &S3ProfilePics{
		presignClient: s3.NewPresignClient(s3Client),
		bucket:        cfg.Bucket,
		expiry:        expiry,
	}, nil
}

// ProfileKey returns the object key of a user's profile picture
func ProfileKey(userID int64) string {
	return fmt.Sprintf("profiles/%d", userID)
}

func (p *S3ProfilePics) ProfilePicURL(ctx context.Context, userID int64) (string, error) {
	req, err := p.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(ProfileKey(userID)),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign profile picture of user %d: %w", userID, err)
	}
	return req.URL, nil
}
