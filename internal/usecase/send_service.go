package usecase

import (
	"context"
	"fmt"

	"messenger-client/internal/domain/entity"
	"messenger-client/internal/interface/graphapi"
	"messenger-client/pkg/logger"
	"messenger-client/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

// SendOption customises a single send.
type SendOption func(*sendOptions)

type sendOptions struct {
	notification entity.NotificationType
	tag          entity.MessageTag
}

// WithNotificationType sets how the recipient is notified. The default is
// REGULAR.
func WithNotificationType(n entity.NotificationType) SendOption {
	return func(o *sendOptions) { o.notification = n }
}

// WithTag tags the message so it can be sent outside the standard
// messaging window.
func WithTag(t entity.MessageTag) SendOption {
	return func(o *sendOptions) { o.tag = t }
}

// SendService sends messages and sender actions through the Send API.
type SendService struct {
	api     graphapi.Dispatcher
	cache   *AttachmentCache
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewSendService creates a new send service. Without a cache, reusable media
// is still flagged as reusable but never looked up or recorded. m may be nil.
func NewSendService(api graphapi.Dispatcher, cache *AttachmentCache, logger logger.Logger, m *metrics.Metrics) *SendService {
	return &SendService{
		api:     api,
		cache:   cache,
		logger:  logger,
		metrics: m,
	}
}

// Send validates msg and sends it to recipientID.
func (s *SendService) Send(ctx context.Context, recipientID string, msg entity.Message, opts ...SendOption) (*entity.SendResponse, error) {
	if recipientID == "" {
		return nil, &entity.ValidationError{Kind: "recipient", Reason: "recipient id is required"}
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	o := sendOptions{notification: entity.NotificationRegular}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	envelope := graphapi.Envelope{
		"recipient":         entity.Recipient{ID: recipientID},
		"message":           msg,
		"notification_type": o.notification,
	}
	if o.tag != "" {
		envelope["tag"] = o.tag
	}

	kind := messageKind(msg)
	resp, err := graphapi.DispatchJSON[entity.SendResponse](ctx, s.api, graphapi.EndpointMessages, graphapi.MethodPost, envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s message: %w", kind, err)
	}

	if s.metrics != nil {
		s.metrics.MessagesSent.WithLabelValues(kind).Inc()
	}
	s.logger.Debug("Message sent", "recipientId", recipientID, "kind", kind, "messageId", resp.MessageID)

	return &resp, nil
}

func (s *SendService) SendText(ctx context.Context, recipientID, text string, opts ...SendOption) (*entity.SendResponse, error) {
	return s.Send(ctx, recipientID, entity.Message{Text: text}, opts...)
}

// SendImage sends the image at url. With reusable set, a previously
// recorded attachment ID for url is sent instead of the URL, and a newly
// issued one is recorded. The returned ID is empty unless the platform
// issued or the cache held one.
func (s *SendService) SendImage(ctx context.Context, recipientID, url string, reusable bool, opts ...SendOption) (string, error) {
	return s.sendMedia(ctx, entity.AttachmentImage, recipientID, url, reusable, opts)
}

// SendAudio is SendImage for audio.
func (s *SendService) SendAudio(ctx context.Context, recipientID, url string, reusable bool, opts ...SendOption) (string, error) {
	return s.sendMedia(ctx, entity.AttachmentAudio, recipientID, url, reusable, opts)
}

// SendVideo is SendImage for video.
func (s *SendService) SendVideo(ctx context.Context, recipientID, url string, reusable bool, opts ...SendOption) (string, error) {
	return s.sendMedia(ctx, entity.AttachmentVideo, recipientID, url, reusable, opts)
}

// SendFile is SendImage for files.
func (s *SendService) SendFile(ctx context.Context, recipientID, url string, reusable bool, opts ...SendOption) (string, error) {
	return s.sendMedia(ctx, entity.AttachmentFile, recipientID, url, reusable, opts)
}

func (s *SendService) sendMedia(ctx context.Context, t entity.AttachmentType, recipientID, url string, reusable bool, opts []SendOption) (string, error) {
	useCache := reusable && s.cache != nil

	if useCache {
		id, ok, err := s.cache.Lookup(ctx, url)
		if err != nil {
			return "", err
		}
		if ok {
			s.logger.Info("Re-using attachment", "url", url, "attachmentId", id)
			if _, err := s.Send(ctx, recipientID, entity.Message{Attachment: entity.NewMediaIDAttachment(t, id)}, opts...); err != nil {
				return "", err
			}
			return id, nil
		}
	}

	resp, err := s.Send(ctx, recipientID, entity.Message{Attachment: entity.NewMediaURLAttachment(t, url, reusable)}, opts...)
	if err != nil {
		return "", err
	}

	// Only a decoded success response reaches this point, so an abandoned
	// call never records.
	if useCache && resp.AttachmentID != "" {
		if err := s.cache.Record(ctx, url, resp.AttachmentID); err != nil {
			return resp.AttachmentID, err
		}
	}
	return resp.AttachmentID, nil
}

func (s *SendService) TypingOn(ctx context.Context, recipientID string) error {
	return s.senderAction(ctx, recipientID, entity.SenderActionTypingOn)
}

func (s *SendService) TypingOff(ctx context.Context, recipientID string) error {
	return s.senderAction(ctx, recipientID, entity.SenderActionTypingOff)
}

func (s *SendService) MarkSeen(ctx context.Context, recipientID string) error {
	return s.senderAction(ctx, recipientID, entity.SenderActionMarkSeen)
}

func (s *SendService) senderAction(ctx context.Context, recipientID string, action entity.SenderAction) error {
	if recipientID == "" {
		return &entity.ValidationError{Kind: "recipient", Reason: "recipient id is required"}
	}

	_, err := s.api.Dispatch(ctx, graphapi.EndpointMessages, graphapi.MethodPost, graphapi.Envelope{
		"recipient":     entity.Recipient{ID: recipientID},
		"sender_action": action,
	})
	if err != nil {
		return fmt.Errorf("failed to send %s: %w", action, err)
	}

	s.logger.Debug("Sender action sent", "recipientId", recipientID, "action", action)
	return nil
}

// BroadcastResult is the outcome of one send of a Broadcast.
type BroadcastResult struct {
	RecipientID string
	Response    *entity.SendResponse
	Err         error
}

// Broadcast sends msg to every recipient with at most concurrency sends in
// flight. Sends are independent: a failure does not stop the others. The
// results are in recipient order.
func (s *SendService) Broadcast(ctx context.Context, recipients []string, msg entity.Message, concurrency int, opts ...SendOption) []BroadcastResult {
	results := make([]BroadcastResult, len(recipients))
	for i, id := range recipients {
		results[i].RecipientID = id
	}

	if err := msg.Validate(); err != nil {
		for i := range results {
			results[i].Err = err
		}
		return results
	}

	if concurrency < 1 {
		concurrency = 1
	}

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := range results {
		i := i
		g.Go(func() error {
			results[i].Response, results[i].Err = s.Send(ctx, results[i].RecipientID, msg, opts...)
			return nil
		})
	}
	g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.logger.Info("Broadcast finished", "recipients", len(recipients), "failed", failed)

	return results
}

func messageKind(msg entity.Message) string {
	if msg.Attachment != nil {
		return string(msg.Attachment.AttachmentType())
	}
	return "text"
}
