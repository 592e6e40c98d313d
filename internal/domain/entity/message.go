package entity

import "encoding/json"

// ContentType is the discriminant of a quick reply.
type ContentType string

const (
	ContentTypeText     ContentType = "text"
	ContentTypeLocation ContentType = "location"
)

// QuickReply is either a TextQuickReply or a LocationQuickReply.
type QuickReply interface {
	ContentType() ContentType
	isQuickReply()
}

type TextQuickReply struct {
	Title    string `json:"title"`
	Payload  string `json:"payload"`
	ImageURL string `json:"image_url,omitempty"`
}

type LocationQuickReply struct{}

func (TextQuickReply) ContentType() ContentType     { return ContentTypeText }
func (LocationQuickReply) ContentType() ContentType { return ContentTypeLocation }

func (TextQuickReply) isQuickReply()     {}
func (LocationQuickReply) isQuickReply() {}

func (q TextQuickReply) MarshalJSON() ([]byte, error) {
	type reply TextQuickReply
	return json.Marshal(struct {
		ContentType ContentType `json:"content_type"`
		reply
	}{ContentTypeText, reply(q)})
}

func (LocationQuickReply) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ContentType ContentType `json:"content_type"`
	}{ContentTypeLocation})
}

// Message is a text message or an attachment message, optionally with
// quick replies and metadata. Exactly one of Text and Attachment is set.
type Message struct {
	Text         string
	Attachment   Attachment
	QuickReplies []QuickReply
	Metadata     string
}

// Validate checks that exactly one of Text and Attachment is set and that a
// media attachment carries a URL or an attachment ID.
func (m Message) Validate() error {
	switch {
	case m.Text == "" && m.Attachment == nil:
		return invalid("message", "either text or attachment is required")
	case m.Text != "" && m.Attachment != nil:
		return invalid("message", "text and attachment are mutually exclusive")
	}

	switch a := m.Attachment.(type) {
	case MediaAttachment:
		if !a.Type.IsMedia() {
			return invalid("message", "unknown media type %q", a.Type)
		}
		if (a.Payload.URL == "") == (a.Payload.AttachmentID == "") {
			return invalid("message", "media attachment needs exactly one of url and attachment_id")
		}
	case TemplateAttachment:
		if a.Template == nil {
			return invalid("message", "template attachment without template")
		}
	}
	return nil
}

// Clone returns a copy that shares no slices with m.
func (m Message) Clone() Message {
	if m.QuickReplies != nil {
		m.QuickReplies = append([]QuickReply(nil), m.QuickReplies...)
	}
	return m
}

func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Text         string       `json:"text,omitempty"`
		Attachment   Attachment   `json:"attachment,omitempty"`
		QuickReplies []QuickReply `json:"quick_replies,omitempty"`
		Metadata     string       `json:"metadata,omitempty"`
	}{m.Text, m.Attachment, m.QuickReplies, m.Metadata})
}

// NotificationType controls how the recipient is notified.
type NotificationType string

const (
	NotificationRegular    NotificationType = "REGULAR"
	NotificationSilentPush NotificationType = "SILENT_PUSH"
	NotificationNoPush     NotificationType = "NO_PUSH"
)

// MessageTag allows sending outside the standard messaging window.
type MessageTag string

const (
	TagShippingUpdate    MessageTag = "SHIPPING_UPDATE"
	TagReservationUpdate MessageTag = "RESERVATION_UPDATE"
	TagIssueResolution   MessageTag = "ISSUE_RESOLUTION"
)

// SenderAction is a typing indicator or read receipt.
type SenderAction string

const (
	SenderActionTypingOn  SenderAction = "typing_on"
	SenderActionTypingOff SenderAction = "typing_off"
	SenderActionMarkSeen  SenderAction = "mark_seen"
)

// Recipient identifies the user a message is sent to.
type Recipient struct {
	ID string `json:"id"`
}

// SendResponse is the acknowledgement of a Send API call.
type SendResponse struct {
	RecipientID  string `json:"recipient_id"`
	MessageID    string `json:"message_id,omitempty"`
	AttachmentID string `json:"attachment_id,omitempty"`
}
