package builder

import "messenger-client/internal/domain/entity"

// MessageBuilder accumulates a text or attachment message with optional
// quick replies. Setting text replaces an attachment and vice versa.
type MessageBuilder struct {
	text         string
	attachment   entity.Attachment
	quickReplies []entity.QuickReply
	metadata     string
}

// NewMessageBuilder returns an empty builder.
func NewMessageBuilder() *MessageBuilder {
	return &MessageBuilder{}
}

func (b *MessageBuilder) Text(text string) *MessageBuilder {
	b.text, b.attachment = text, nil
	return b
}

func (b *MessageBuilder) Attachment(a entity.Attachment) *MessageBuilder {
	b.text, b.attachment = "", a
	return b
}

func (b *MessageBuilder) Image(url string, reusable bool) *MessageBuilder {
	return b.Attachment(entity.NewMediaURLAttachment(entity.AttachmentImage, url, reusable))
}

func (b *MessageBuilder) Audio(url string, reusable bool) *MessageBuilder {
	return b.Attachment(entity.NewMediaURLAttachment(entity.AttachmentAudio, url, reusable))
}

func (b *MessageBuilder) Video(url string, reusable bool) *MessageBuilder {
	return b.Attachment(entity.NewMediaURLAttachment(entity.AttachmentVideo, url, reusable))
}

func (b *MessageBuilder) File(url string, reusable bool) *MessageBuilder {
	return b.Attachment(entity.NewMediaURLAttachment(entity.AttachmentFile, url, reusable))
}

func (b *MessageBuilder) ImageByID(attachmentID string) *MessageBuilder {
	return b.Attachment(entity.NewMediaIDAttachment(entity.AttachmentImage, attachmentID))
}

func (b *MessageBuilder) AudioByID(attachmentID string) *MessageBuilder {
	return b.Attachment(entity.NewMediaIDAttachment(entity.AttachmentAudio, attachmentID))
}

func (b *MessageBuilder) VideoByID(attachmentID string) *MessageBuilder {
	return b.Attachment(entity.NewMediaIDAttachment(entity.AttachmentVideo, attachmentID))
}

func (b *MessageBuilder) FileByID(attachmentID string) *MessageBuilder {
	return b.Attachment(entity.NewMediaIDAttachment(entity.AttachmentFile, attachmentID))
}

// Template attaches a structured template.
func (b *MessageBuilder) Template(t entity.Template) *MessageBuilder {
	return b.Attachment(entity.TemplateAttachment{Template: t})
}

// AddTextQuickReply appends a text quick reply. imageURL may be empty.
func (b *MessageBuilder) AddTextQuickReply(title, payload, imageURL string) *MessageBuilder {
	b.quickReplies = append(b.quickReplies, entity.TextQuickReply{
		Title:    title,
		Payload:  payload,
		ImageURL: imageURL,
	})
	return b
}

// AddLocationQuickReply appends a location quick reply.
func (b *MessageBuilder) AddLocationQuickReply() *MessageBuilder {
	b.quickReplies = append(b.quickReplies, entity.LocationQuickReply{})
	return b
}

// Metadata sets the opaque metadata echoed back to the webhook.
func (b *MessageBuilder) Metadata(metadata string) *MessageBuilder {
	b.metadata = metadata
	return b
}

// Build returns a copy of the accumulated message. It fails with
// *entity.ValidationError if the message has neither text nor attachment.
func (b *MessageBuilder) Build() (entity.Message, error) {
	msg := entity.Message{
		Text:         b.text,
		Attachment:   b.attachment,
		QuickReplies: b.quickReplies,
		Metadata:     b.metadata,
	}.Clone()

	if err := msg.Validate(); err != nil {
		return entity.Message{}, err
	}
	return msg, nil
}
