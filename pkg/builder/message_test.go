package builder

import (
	"encoding/json"
	"errors"
	"testing"

	"messenger-client/internal/domain/entity"
)

func TestMessageBuilderEmpty(t *testing.T) {
	_, err := NewMessageBuilder().AddLocationQuickReply().Build()
	var ve *entity.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Build() err = %v, want *entity.ValidationError", err)
	}
}

func TestMessageBuilderJSON(t *testing.T) {
	cases := map[string]struct {
		build func() *MessageBuilder
		want  string
	}{
		"text with quick replies": {
			build: func() *MessageBuilder {
				return NewMessageBuilder().
					Text("Pick a color").
					AddTextQuickReply("Red", "RED", "").
					AddTextQuickReply("Green", "GREEN", "https://example.com/g.png").
					AddLocationQuickReply().
					Metadata("m1")
			},
			want: `{"text":"Pick a color","quick_replies":[` +
				`{"content_type":"text","title":"Red","payload":"RED"},` +
				`{"content_type":"text","title":"Green","payload":"GREEN","image_url":"https://example.com/g.png"},` +
				`{"content_type":"location"}],"metadata":"m1"}`,
		},
		"reusable image": {
			build: func() *MessageBuilder {
				return NewMessageBuilder().Image("https://example.com/logo.png", true)
			},
			want: `{"attachment":{"type":"image","payload":{"url":"https://example.com/logo.png","is_reusable":true}}}`,
		},
		"file by id": {
			build: func() *MessageBuilder {
				return NewMessageBuilder().FileByID("1857777774821032")
			},
			want: `{"attachment":{"type":"file","payload":{"attachment_id":"1857777774821032"}}}`,
		},
		"text replaces attachment": {
			build: func() *MessageBuilder {
				return NewMessageBuilder().Video("https://example.com/v.mp4", false).Text("hi")
			},
			want: `{"text":"hi"}`,
		},
		"attachment replaces text": {
			build: func() *MessageBuilder {
				return NewMessageBuilder().Text("hi").Audio("https://example.com/a.mp3", false)
			},
			want: `{"attachment":{"type":"audio","payload":{"url":"https://example.com/a.mp3"}}}`,
		},
		"button template": {
			build: func() *MessageBuilder {
				return NewMessageBuilder().Template(entity.ButtonTemplate{
					Text:    "What next?",
					Buttons: []entity.Button{entity.PostbackButton{Title: "Start", Payload: "START"}},
				})
			},
			want: `{"attachment":{"type":"template","payload":{"template_type":"button","text":"What next?",` +
				`"buttons":[{"type":"postback","title":"Start","payload":"START"}]}}}`,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			msg, err := tc.build().Build()
			if err != nil {
				t.Fatal(err)
			}
			got, err := json.Marshal(msg)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tc.want {
				t.Errorf("json mismatch\n got: %s\nwant: %s", got, tc.want)
			}
		})
	}
}

func TestMessageBuilderSnapshot(t *testing.T) {
	b := NewMessageBuilder().Text("hi").AddTextQuickReply("Yes", "YES", "")
	msg, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	b.AddTextQuickReply("No", "NO", "").Text("changed")

	if msg.Text != "hi" {
		t.Errorf("Text = %q, want hi", msg.Text)
	}
	if len(msg.QuickReplies) != 1 {
		t.Errorf("QuickReplies = %d, want 1", len(msg.QuickReplies))
	}
}
