package usecase

import (
	"context"
	"fmt"
	"time"

	"messenger-client/internal/domain/entity"
	"messenger-client/internal/domain/repository"
	"messenger-client/pkg/logger"
	"messenger-client/pkg/metrics"
)

// AttachmentCache maps media URLs to the attachment IDs the platform issued
// for them, so that static assets are uploaded once.
//
// Lookup and Record are not serialized per URL: two concurrent sends of the
// same unseen URL can both miss, both upload and both record. The platform
// then holds two attachments and the cache keeps the last recorded ID.
type AttachmentCache struct {
	repo    repository.ReusableAttachmentRepository
	logger  logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewAttachmentCache creates a cache on top of repo. m may be nil.
func NewAttachmentCache(repo repository.ReusableAttachmentRepository, logger logger.Logger, m *metrics.Metrics) *AttachmentCache {
	return &AttachmentCache{
		repo:    repo,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// Lookup returns the attachment ID recorded for url. ok is false if url was
// never recorded.
func (c *AttachmentCache) Lookup(ctx context.Context, url string) (id string, ok bool, err error) {
	rec, err := c.repo.Get(ctx, url)
	if err != nil {
		return "", false, fmt.Errorf("failed to look up reusable attachment: %w", err)
	}

	result := "miss"
	if rec != nil && rec.AttachmentID != "" {
		id, ok, result = rec.AttachmentID, true, "hit"
	}
	if c.metrics != nil {
		c.metrics.ReuseLookups.WithLabelValues(result).Inc()
	}

	c.logger.Debug("Reusable attachment lookup", "url", url, "result", result)
	return id, ok, nil
}

// Record stores id for url. Recording the same pair again has no effect and
// a different id replaces the previous one.
func (c *AttachmentCache) Record(ctx context.Context, url, id string) error {
	if url == "" || id == "" {
		return &entity.ValidationError{Kind: "reusable attachment", Reason: "url and attachment id are required"}
	}

	now := c.now()
	err := c.repo.Save(ctx, &entity.ReusableAttachment{
		URL:          url,
		AttachmentID: id,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("failed to record reusable attachment: %w", err)
	}

	c.logger.Info("Recorded reusable attachment", "url", url, "attachmentId", id)
	return nil
}
