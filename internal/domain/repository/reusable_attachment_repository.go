package repository

import (
	"context"

	"messenger-client/internal/domain/entity"
)

// ReusableAttachmentRepository defines the interface for reusable attachment
// persistence. Get must return (nil, nil) when the URL was never saved.
type ReusableAttachmentRepository interface {
	Get(ctx context.Context, url string) (*entity.ReusableAttachment, error)
	Save(ctx context.Context, attachment *entity.ReusableAttachment) error
}
