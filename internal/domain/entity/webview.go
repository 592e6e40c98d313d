package entity

// HeightRatio is the size of the webview opened by a URL item or button.
type HeightRatio string

const (
	HeightRatioCompact HeightRatio = "compact"
	HeightRatioTall    HeightRatio = "tall"
	HeightRatioFull    HeightRatio = "full"
)

// ShareButtonVisibility controls the share button inside a webview.
type ShareButtonVisibility string

const (
	ShareButtonShow ShareButtonVisibility = "show"
	ShareButtonHide ShareButtonVisibility = "hide"
)

// WebviewOptions are the optional decorations of anything that opens a
// webview. Zero values are omitted from the wire format.
type WebviewOptions struct {
	HeightRatio         HeightRatio           `json:"webview_height_ratio,omitempty"`
	MessengerExtensions bool                  `json:"messenger_extensions,omitempty"`
	FallbackURL         string                `json:"fallback_url,omitempty"`
	ShareButton         ShareButtonVisibility `json:"webview_share_button,omitempty"`
}
