package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/logging"
	sc "github.com/bharat3214/Genei/internal/server/config"
	"github.com/bharat3214/Genei/internal/server/metrics"
	"github.com/bharat3214/Genei/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
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

const presignExpiry = 15 * time.Minute

// Presigner issues time-limited object storage URLs.
type Presigner interface {
	PresignPut(ctx context.Context, key string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// S3Presigner presigns against an S3-compatible endpoint (MinIO in
// development) with static credentials.
type S3Presigner struct {
	config *sc.Config
}

func NewS3Presigner(cfg *sc.Config) *S3Presigner {
	return &S3Presigner{config: cfg}
}

func (p *S3Presigner) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(p.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.config.S3RootUser,
			p.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(p.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

func (p *S3Presigner) PresignPut(ctx context.Context, key string) (string, error) {
	pc, err := p.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := p.config.S3Bucket
	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (p *S3Presigner) PresignGet(ctx context.Context, key string) (string, error) {
	pc, err := p.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := p.config.S3Bucket
	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// DocumentURL is a presigned link to a paper's full text.
type DocumentURL struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// BreakerSettings tunes the circuit breaker guarding object storage.
type BreakerSettings struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:      1,
		Interval:         30 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// DocumentService manages research paper full texts stored in object
// storage. A nil presigner means storage is not configured and every call
// reports common.ErrorUnavailable.
type DocumentService struct {
	repomanager repomanager.RepositoryManager
	presigner   Presigner
	breaker     *gobreaker.CircuitBreaker
	metrics     *metrics.Collector
	logger      logging.Logger
}

func NewDocumentService(m repomanager.RepositoryManager, presigner Presigner, settings BreakerSettings,
	collector *metrics.Collector, logger logging.Logger) *DocumentService {
	logger = logger.With("module", "documents")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "object-storage",
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= settings.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(context.Background(), "circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &DocumentService{
		repomanager: m,
		presigner:   presigner,
		breaker:     breaker,
		metrics:     collector,
		logger:      logger,
	}
}

// GetRandomStorageKey returns a fresh object key for a paper's document.
func GetRandomStorageKey(paperID int64) string {
	d := time.Now()
	return fmt.Sprintf("papers/%d/%d/%d/%d/%v", paperID, d.Year(), d.Month(), d.Day(), uuid.New())
}

// RequestUpload presigns an upload URL for a new document of the paper and
// records its key. Any earlier document is superseded.
func (s *DocumentService) RequestUpload(ctx context.Context, paperID int64) (*DocumentURL, error) {
	repo := s.repomanager.ResearchPapers(s.repomanager.DB())
	if _, err := repo.GetByID(ctx, paperID); err != nil {
		return nil, err
	}

	key := GetRandomStorageKey(paperID)
	url, err := s.presign(ctx, "put", func(p Presigner) (string, error) { return p.PresignPut(ctx, key) })
	if err != nil {
		return nil, err
	}

	if err := repo.SetDocumentKey(ctx, paperID, key); err != nil {
		return nil, err
	}
	return &DocumentURL{Key: key, URL: url, ExpiresAt: time.Now().Add(presignExpiry)}, nil
}

// DownloadURL presigns a download URL for the paper's document.
// Papers without a document yield common.ErrorNotFound.
func (s *DocumentService) DownloadURL(ctx context.Context, paperID int64) (*DocumentURL, error) {
	paper, err := s.repomanager.ResearchPapers(s.repomanager.DB()).GetByID(ctx, paperID)
	if err != nil {
		return nil, err
	}
	if paper.DocumentKey == "" {
		return nil, common.ErrorNotFound
	}

	url, err := s.presign(ctx, "get", func(p Presigner) (string, error) { return p.PresignGet(ctx, paper.DocumentKey) })
	if err != nil {
		return nil, err
	}
	return &DocumentURL{Key: paper.DocumentKey, URL: url, ExpiresAt: time.Now().Add(presignExpiry)}, nil
}

func (s *DocumentService) presign(ctx context.Context, op string, fn func(Presigner) (string, error)) (string, error) {
	if s.presigner == nil {
		s.metrics.StorageRequests.WithLabelValues(op, metrics.OutcomeUnavailable).Inc()
		return "", common.ErrorUnavailable
	}

	out, err := s.breaker.Execute(func() (any, error) {
		return fn(s.presigner)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			s.metrics.StorageRequests.WithLabelValues(op, metrics.OutcomeUnavailable).Inc()
			return "", fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
		}
		s.metrics.StorageRequests.WithLabelValues(op, metrics.OutcomeError).Inc()
		s.logger.Error(ctx, "presign failed", "operation", op, "error", err)
		return "", fmt.Errorf("presign %s: %w", op, err)
	}

	s.metrics.StorageRequests.WithLabelValues(op, metrics.OutcomeOK).Inc()
	return out.(string), nil
}
