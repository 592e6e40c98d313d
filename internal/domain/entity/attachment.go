package entity

import "encoding/json"

// AttachmentType is the discriminant of a message attachment.
type AttachmentType string

const (
	AttachmentImage    AttachmentType = "image"
	AttachmentAudio    AttachmentType = "audio"
	AttachmentVideo    AttachmentType = "video"
	AttachmentFile     AttachmentType = "file"
	AttachmentTemplate AttachmentType = "template"
)

// IsMedia reports whether t is one of the four media kinds.
func (t AttachmentType) IsMedia() bool {
	switch t {
	case AttachmentImage, AttachmentAudio, AttachmentVideo, AttachmentFile:
		return true
	}
	return false
}

// Attachment is either a MediaAttachment or a TemplateAttachment.
type Attachment interface {
	AttachmentType() AttachmentType
	isAttachment()
}

// MediaPayload references media either by source URL or by a previously
// issued attachment ID.
type MediaPayload struct {
	URL          string `json:"url,omitempty"`
	IsReusable   bool   `json:"is_reusable,omitempty"`
	AttachmentID string `json:"attachment_id,omitempty"`
}

// MediaAttachment is an image, audio, video or file attachment.
type MediaAttachment struct {
	Type    AttachmentType
	Payload MediaPayload
}

// NewMediaURLAttachment references media by URL. Set reusable to ask the
// platform for an attachment ID that can be sent again later.
func NewMediaURLAttachment(t AttachmentType, url string, reusable bool) MediaAttachment {
	return MediaAttachment{Type: t, Payload: MediaPayload{URL: url, IsReusable: reusable}}
}

// NewMediaIDAttachment references previously uploaded media.
func NewMediaIDAttachment(t AttachmentType, attachmentID string) MediaAttachment {
	return MediaAttachment{Type: t, Payload: MediaPayload{AttachmentID: attachmentID}}
}

// TemplateAttachment carries a structured template.
type TemplateAttachment struct {
	Template Template
}

func (a MediaAttachment) AttachmentType() AttachmentType  { return a.Type }
func (TemplateAttachment) AttachmentType() AttachmentType { return AttachmentTemplate }

func (MediaAttachment) isAttachment()    {}
func (TemplateAttachment) isAttachment() {}

func (a MediaAttachment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    AttachmentType `json:"type"`
		Payload MediaPayload   `json:"payload"`
	}{a.Type, a.Payload})
}

func (a TemplateAttachment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    AttachmentType `json:"type"`
		Payload Template       `json:"payload"`
	}{AttachmentTemplate, a.Template})
}
