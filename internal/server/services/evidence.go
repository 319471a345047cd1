package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/proofkeeper/internal/common"
	"github.com/dmitrijs2005/proofkeeper/internal/digest"
	"github.com/dmitrijs2005/proofkeeper/internal/extrinsic"
	sc "github.com/dmitrijs2005/proofkeeper/internal/server/config"
	"github.com/dmitrijs2005/proofkeeper/internal/server/models"
	"github.com/dmitrijs2005/proofkeeper/internal/server/repositories/repomanager"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// EvidenceKey is the object key a claimed file's bytes are archived under.
func EvidenceKey(d string) string {
	return "evidence/" + d
}

// EvidenceService hands out presigned URLs for archived claim evidence.
type EvidenceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	now         func() time.Time
}

func NewEvidenceService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *EvidenceService {
	return &EvidenceService{db: db, repomanager: m, config: cfg, now: time.Now}
}

func (s *EvidenceService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// claimed loads the proof for d, mapping absence to common.ErrNotClaimed.
func (s *EvidenceService) claimed(ctx context.Context, d string) (*models.Proof, error) {
	p, err := s.repomanager.Proofs(s.db).Get(ctx, d)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrNotClaimed
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UploadURL verifies a signed archiveEvidence request and, if the signer owns
// the claim, returns a presigned PUT URL for its evidence object.
func (s *EvidenceService) UploadURL(ctx context.Context, token string) (string, error) {
	if s.config.S3Bucket == "" {
		return "", common.ErrEvidenceDisabled
	}

	ext, err := extrinsic.Verify(token, s.now())
	if err != nil {
		return "", err
	}
	d, err := proofCall(ext, common.CallArchiveEvidence)
	if err != nil {
		return "", err
	}

	p, err := s.claimed(ctx, d)
	if err != nil {
		return "", err
	}
	if p.Owner != ext.Signer {
		return "", common.ErrNotOwner
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket, key := s.config.S3Bucket, EvidenceKey(d)
	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.EvidenceURLValidity))
	if err != nil {
		return "", fmt.Errorf("presign put: %w", err)
	}

	return req.URL, nil
}

// DownloadURL returns a presigned GET URL for the evidence of a claimed digest.
func (s *EvidenceService) DownloadURL(ctx context.Context, d string) (string, error) {
	if s.config.S3Bucket == "" {
		return "", common.ErrEvidenceDisabled
	}

	d, err := digest.Normalize(d)
	if err != nil {
		return "", err
	}
	if _, err := s.claimed(ctx, d); err != nil {
		return "", err
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket, key := s.config.S3Bucket, EvidenceKey(d)
	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.EvidenceURLValidity))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}

	return req.URL, nil
}
