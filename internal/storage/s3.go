package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path"

	"github.com/Azim18821/track3-sub004/internal/config"
	"github.com/Azim18821/track3-sub004/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// s3Archive implements PlanArchive against an S3-compatible backend.
type s3Archive struct {
	client     *s3.Client
	bucketName string
}

// NewS3Archive creates a new S3-backed plan archive.
func NewS3Archive(cfg config.S3Config) (PlanArchive, error) {
	// Custom resolver for S3-compatible endpoints (MinIO, DigitalOcean Spaces).
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           cfg.Endpoint,
				SigningRegion: cfg.Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.TODO(),
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		log.Printf("ERROR: Failed to load AWS SDK config for S3: %v", err)
		return nil, err
	}

	// Path-style addressing is required by most S3-compatible services.
	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	log.Printf("Plan archive initialized for endpoint: %s, bucket: %s", cfg.Endpoint, cfg.BucketName)

	return &s3Archive{
		client:     s3Client,
		bucketName: cfg.BucketName,
	}, nil
}

// ArchivePlan serializes the plan and writes it under plans/<userId>/<uuid>.json.
func (a *s3Archive) ArchivePlan(ctx context.Context, plan *domain.FitnessPlan) (string, error) {
	body, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("failed to serialize plan for archive: %w", err)
	}

	objectKey := path.Join("plans", plan.UserID.Hex(), fmt.Sprintf("%s.json", uuid.NewString()))

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		log.Printf("ERROR: Failed to archive plan '%s' to bucket '%s': %v", objectKey, a.bucketName, err)
		return "", err
	}

	return objectKey, nil
}

// DeleteArchive removes a stored snapshot.
func (a *s3Archive) DeleteArchive(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Printf("ERROR: Failed to delete archive '%s' from bucket '%s': %v", objectKey, a.bucketName, err)
		return err
	}
	return nil
}
