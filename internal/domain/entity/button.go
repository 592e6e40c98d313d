package entity

import "encoding/json"

// ButtonType is the discriminant of a button.
type ButtonType string

const (
	ButtonWebURL   ButtonType = "web_url"
	ButtonPostback ButtonType = "postback"
	ButtonCall     ButtonType = "phone_number"
	ButtonShare    ButtonType = "element_share"
	ButtonLogin    ButtonType = "account_link"
	ButtonLogout   ButtonType = "account_unlink"
)

// Button is one of URLButton, PostbackButton, CallButton, ShareButton,
// LoginButton or LogoutButton.
type Button interface {
	ButtonType() ButtonType
	isButton()
}

// URLButton opens a URL in a webview.
type URLButton struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	WebviewOptions
}

// PostbackButton sends Payload back to the webhook.
type PostbackButton struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// CallButton dials the phone number in Payload.
type CallButton struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// ShareButton shares the message. ShareContents optionally overrides the
// shared content with a template message.
type ShareButton struct {
	ShareContents *Message `json:"share_contents,omitempty"`
}

// LoginButton starts account linking at URL.
type LoginButton struct {
	URL string `json:"url"`
}

// LogoutButton unlinks the account.
type LogoutButton struct{}

func (URLButton) ButtonType() ButtonType      { return ButtonWebURL }
func (PostbackButton) ButtonType() ButtonType { return ButtonPostback }
func (CallButton) ButtonType() ButtonType     { return ButtonCall }
func (ShareButton) ButtonType() ButtonType    { return ButtonShare }
func (LoginButton) ButtonType() ButtonType    { return ButtonLogin }
func (LogoutButton) ButtonType() ButtonType   { return ButtonLogout }

func (URLButton) isButton()      {}
func (PostbackButton) isButton() {}
func (CallButton) isButton()     {}
func (ShareButton) isButton()    {}
func (LoginButton) isButton()    {}
func (LogoutButton) isButton()   {}

func (b URLButton) MarshalJSON() ([]byte, error) {
	type button URLButton
	return json.Marshal(struct {
		Type ButtonType `json:"type"`
		button
	}{ButtonWebURL, button(b)})
}

func (b PostbackButton) MarshalJSON() ([]byte, error) {
	type button PostbackButton
	return json.Marshal(struct {
		Type ButtonType `json:"type"`
		button
	}{ButtonPostback, button(b)})
}

func (b CallButton) MarshalJSON() ([]byte, error) {
	type button CallButton
	return json.Marshal(struct {
		Type ButtonType `json:"type"`
		button
	}{ButtonCall, button(b)})
}

func (b ShareButton) MarshalJSON() ([]byte, error) {
	type button ShareButton
	return json.Marshal(struct {
		Type ButtonType `json:"type"`
		button
	}{ButtonShare, button(b)})
}

func (b LoginButton) MarshalJSON() ([]byte, error) {
	type button LoginButton
	return json.Marshal(struct {
		Type ButtonType `json:"type"`
		button
	}{ButtonLogin, button(b)})
}

func (LogoutButton) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type ButtonType `json:"type"`
	}{ButtonLogout})
}

// DefaultAction is the URL opened when an element itself is tapped.
type DefaultAction struct {
	URL string `json:"url"`
	WebviewOptions
}

func (a DefaultAction) MarshalJSON() ([]byte, error) {
	type action DefaultAction
	return json.Marshal(struct {
		Type ButtonType `json:"type"`
		action
	}{ButtonWebURL, action(a)})
}
