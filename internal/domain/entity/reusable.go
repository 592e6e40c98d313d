// internal/domain/entity/reusable.go
package entity

import "time"

// ReusableAttachment maps a media URL to the attachment ID the platform
// issued for it. URL is the key.
type ReusableAttachment struct {
	URL          string    `json:"url" bson:"url"`
	AttachmentID string    `json:"attachmentId" bson:"attachmentId"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
