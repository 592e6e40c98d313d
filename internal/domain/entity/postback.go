package entity

import (
	"encoding/json"
	"fmt"
)

// PostbackSource tells a webhook where a postback came from.
type PostbackSource string

const (
	PostbackSourcePersistentMenu   PostbackSource = "PERSISTENT_MENU"
	PostbackSourceGetStartedButton PostbackSource = "GET_STARTED_BUTTON"
)

// PostbackPayload is the structured value serialized into the opaque payload
// string of postback items. The platform echoes it back untouched.
//
// Menu postbacks always carry "id", even when empty.
type PostbackPayload struct {
	Src  PostbackSource `json:"src"`
	ID   string         `json:"id,omitempty"`
	Data any            `json:"data,omitempty"`
}

func (p PostbackPayload) MarshalJSON() ([]byte, error) {
	if p.Src != PostbackSourcePersistentMenu {
		type payload PostbackPayload
		return json.Marshal(payload(p))
	}
	return json.Marshal(struct {
		Src  PostbackSource `json:"src"`
		ID   string         `json:"id"`
		Data any            `json:"data,omitempty"`
	}{p.Src, p.ID, p.Data})
}

// Encode serializes the payload to the string form the platform expects.
func (p PostbackPayload) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode postback payload: %w", err)
	}
	return string(b), nil
}

// DecodePostbackPayload parses a payload produced by Encode.
func DecodePostbackPayload(s string) (PostbackPayload, error) {
	var p PostbackPayload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return PostbackPayload{}, fmt.Errorf("decode postback payload: %w", err)
	}
	return p, nil
}
