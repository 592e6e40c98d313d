package repository

import (
	"context"
	"errors"
	"time"

	"messenger-client/internal/domain/entity"
	"messenger-client/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReusableRepository implements the ReusableAttachmentRepository interface
type GormReusableRepository struct {
	db *gorm.DB
}

// ReusableAttachments GORM model for database mapping
type ReusableAttachments struct {
	URL          string `gorm:"column:url;primaryKey"`
	AttachmentID string `gorm:"column:attachment_id;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the default table name
func (ReusableAttachments) TableName() string {
	return "reusable_attachments"
}

// NewGormReusableRepository creates a new GORM reusable attachment repository
// and migrates its table.
func NewGormReusableRepository(ctx context.Context, db *gorm.DB) (repository.ReusableAttachmentRepository, error) {
	if err := db.WithContext(ctx).AutoMigrate(&ReusableAttachments{}); err != nil {
		return nil, err
	}
	return &GormReusableRepository{
		db: db,
	}, nil
}

// Get finds a reusable attachment by URL
func (r *GormReusableRepository) Get(ctx context.Context, url string) (*entity.ReusableAttachment, error) {
	var model ReusableAttachments
	result := r.db.WithContext(ctx).Where("url = ?", url).First(&model)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	// Convert GORM model to domain entity
	return &entity.ReusableAttachment{
		URL:          model.URL,
		AttachmentID: model.AttachmentID,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}, nil
}

// Save inserts the record or overwrites the attachment ID of an existing URL
func (r *GormReusableRepository) Save(ctx context.Context, attachment *entity.ReusableAttachment) error {
	model := ReusableAttachments{
		URL:          attachment.URL,
		AttachmentID: attachment.AttachmentID,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{"attachment_id", "updated_at"}),
	}).Create(&model)
	if result.Error != nil {
		return result.Error
	}

	attachment.UpdatedAt = model.UpdatedAt
	return nil
}
