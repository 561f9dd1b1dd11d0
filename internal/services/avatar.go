package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignTTL = 5 * time.Minute

// AvatarService issues pre-signed URLs for avatar uploads
type AvatarService struct {
	profiles ProfileStore
	s3Client *s3.Client
	bucket   string
	region   string
}

// NewAvatarService creates a new avatar service
func NewAvatarService(
	profiles ProfileStore,
	region, bucket, accessKey, secretKey, endpoint string,
) (*AvatarService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &AvatarService{
		profiles: profiles,
		s3Client: s3Client,
		bucket:   bucket,
		region:   region,
	}, nil
}

// UploadResponse holds the pre-signed URL the client PUTs the image to.
type UploadResponse struct {
	UploadURL string `json:"upload_url"`
	AvatarURL string `json:"avatar_url"`
	ExpiresIn int    `json:"expires_in"`
}

// PresignUpload generates a pre-signed PUT URL for a new avatar image.
func (s *AvatarService) PresignUpload(ctx context.Context, userID, contentType string) (*UploadResponse, error) {
	key := fmt.Sprintf("avatars/%s/%s.jpg", userID, uuid.New().String())

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignTTL
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	return &UploadResponse{
		UploadURL: request.URL,
		AvatarURL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key),
		ExpiresIn: int(presignTTL.Seconds()),
	}, nil
}

// ConfirmUpload records the uploaded avatar URL on the profile.
func (s *AvatarService) ConfirmUpload(ctx context.Context, userID, avatarURL string) error {
	return s.profiles.SetAvatarURL(ctx, userID, avatarURL)
}
