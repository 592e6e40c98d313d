package repository

import (
	"context"
	"sync"
	"time"

	"messenger-client/internal/domain/entity"
	"messenger-client/internal/domain/repository"
)

// MemoryReusableRepository keeps reusable attachments in process memory.
// Records are lost on restart.
type MemoryReusableRepository struct {
	mu      sync.RWMutex
	records map[string]entity.ReusableAttachment
	now     func() time.Time
}

// NewMemoryReusableRepository creates an empty in-memory repository
func NewMemoryReusableRepository() repository.ReusableAttachmentRepository {
	return &MemoryReusableRepository{
		records: make(map[string]entity.ReusableAttachment),
		now:     time.Now,
	}
}

// Get returns a copy of the record saved for url
func (r *MemoryReusableRepository) Get(_ context.Context, url string) (*entity.ReusableAttachment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[url]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Save upserts the record keyed by its URL
func (r *MemoryReusableRepository) Save(_ context.Context, attachment *entity.ReusableAttachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	rec := *attachment
	if prev, ok := r.records[rec.URL]; ok {
		rec.CreatedAt = prev.CreatedAt
	} else {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	r.records[rec.URL] = rec

	attachment.CreatedAt = rec.CreatedAt
	attachment.UpdatedAt = rec.UpdatedAt
	return nil
}
