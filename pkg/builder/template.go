package builder

import (
	"fmt"

	"messenger-client/internal/domain/entity"
)

const maxTemplateButtons = 3

// ButtonTemplateBuilder assembles a button template.
type ButtonTemplateBuilder struct {
	text    string
	buttons []entity.Button
}

// NewButtonTemplateBuilder starts a button template showing text.
func NewButtonTemplateBuilder(text string) *ButtonTemplateBuilder {
	return &ButtonTemplateBuilder{text: text}
}

func (b *ButtonTemplateBuilder) AddURLButton(title, url string, opts ...ItemOption) *ButtonTemplateBuilder {
	b.buttons = append(b.buttons, entity.URLButton{
		Title:          title,
		URL:            url,
		WebviewOptions: webviewOptions(opts),
	})
	return b
}

func (b *ButtonTemplateBuilder) AddPostbackButton(title, payload string) *ButtonTemplateBuilder {
	b.buttons = append(b.buttons, entity.PostbackButton{Title: title, Payload: payload})
	return b
}

// AddCallButton appends a button dialing phoneNumber, in +E.164 format.
func (b *ButtonTemplateBuilder) AddCallButton(title, phoneNumber string) *ButtonTemplateBuilder {
	b.buttons = append(b.buttons, entity.CallButton{Title: title, Payload: phoneNumber})
	return b
}

// Build returns the template. Text is required and the platform accepts one
// to three buttons.
func (b *ButtonTemplateBuilder) Build() (entity.ButtonTemplate, error) {
	switch {
	case b.text == "":
		return entity.ButtonTemplate{}, &entity.ValidationError{Kind: "button template", Reason: "text is required"}
	case len(b.buttons) == 0 || len(b.buttons) > maxTemplateButtons:
		return entity.ButtonTemplate{}, &entity.ValidationError{
			Kind:   "button template",
			Reason: fmt.Sprintf("got %d buttons, want 1 to %d", len(b.buttons), maxTemplateButtons),
		}
	}

	return entity.ButtonTemplate{
		Text:    b.text,
		Buttons: append([]entity.Button(nil), b.buttons...),
	}, nil
}
