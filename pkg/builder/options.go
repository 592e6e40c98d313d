package builder

import "messenger-client/internal/domain/entity"

// ItemOption sets an optional webview decoration of a menu item or URL
// button.
type ItemOption func(*itemOptions)

type itemOptions struct {
	heightRatio         entity.HeightRatio
	messengerExtensions bool
	shareButton         *bool
	fallbackURL         string
}

// WithHeightRatio sets the webview height.
func WithHeightRatio(r entity.HeightRatio) ItemOption {
	return func(o *itemOptions) { o.heightRatio = r }
}

// WithMessengerExtensions enables the Messenger Extensions SDK in the webview.
func WithMessengerExtensions() ItemOption {
	return func(o *itemOptions) { o.messengerExtensions = true }
}

// WithShareButton shows or hides the webview share button. The button is
// shown unless this is called with false.
func WithShareButton(show bool) ItemOption {
	return func(o *itemOptions) { o.shareButton = &show }
}

// WithFallbackURL sets the URL used by clients without Messenger Extensions.
func WithFallbackURL(url string) ItemOption {
	return func(o *itemOptions) { o.fallbackURL = url }
}

func webviewOptions(opts []ItemOption) entity.WebviewOptions {
	var o itemOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	w := entity.WebviewOptions{
		HeightRatio:         o.heightRatio,
		MessengerExtensions: o.messengerExtensions,
		FallbackURL:         o.fallbackURL,
		ShareButton:         entity.ShareButtonShow,
	}
	if o.shareButton != nil && !*o.shareButton {
		w.ShareButton = entity.ShareButtonHide
	}
	return w
}
