package entity

import (
	"encoding/json"
	"fmt"
)

// Field is a Messenger Profile property name.
type Field string

const (
	FieldPersistentMenu      Field = "persistent_menu"
	FieldGetStartedButton    Field = "get_started"
	FieldGreeting            Field = "greeting"
	FieldWhitelistedDomains  Field = "whitelisted_domains"
	FieldAccountLinkingURL   Field = "account_linking_url"
	FieldTargetAudience      Field = "target_audience"
	FieldChatExtensionWebURL Field = "home_url"
)

// Fields lists every profile field.
var Fields = []Field{
	FieldPersistentMenu,
	FieldGetStartedButton,
	FieldGreeting,
	FieldWhitelistedDomains,
	FieldAccountLinkingURL,
	FieldTargetAudience,
	FieldChatExtensionWebURL,
}

// ParseField returns the Field named s.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown profile field %q", s)
}

// GetStartedButton is the get_started profile value.
type GetStartedButton struct {
	Payload string `json:"payload"`
}

// DefaultLocale is the fallback locale for greetings and menus.
const DefaultLocale = "default"

// Greeting personalization placeholders.
const (
	GreetingFirstName = "{{user_first_name}}"
	GreetingLastName  = "{{user_last_name}}"
	GreetingFullName  = "{{user_full_name}}"
)

// Greeting is a locale-aware greeting text.
type Greeting struct {
	Locale string `json:"locale"`
	Text   string `json:"text"`
}

// AudienceType selects who can discover the bot.
type AudienceType string

const (
	AudienceAll    AudienceType = "all"
	AudienceCustom AudienceType = "custom"
	AudienceNone   AudienceType = "none"
)

// Countries holds ISO 3166 Alpha-2 country codes.
type Countries struct {
	Whitelist []string `json:"whitelist,omitempty"`
	Blacklist []string `json:"blacklist,omitempty"`
}

// TargetAudience is the target_audience profile value.
type TargetAudience struct {
	AudienceType AudienceType `json:"audience_type"`
	Countries    *Countries   `json:"countries,omitempty"`
}

// ChatExtensionHomeURL is the home_url profile value.
type ChatExtensionHomeURL struct {
	URL                string                `json:"url"`
	WebviewHeightRatio HeightRatio           `json:"webview_height_ratio"`
	WebviewShareButton ShareButtonVisibility `json:"webview_share_button"`
	InTest             bool                  `json:"in_test"`
}

// MenuItemType is the discriminant of a menu item.
type MenuItemType string

const (
	MenuItemWebURL   MenuItemType = "web_url"
	MenuItemPostback MenuItemType = "postback"
	MenuItemNested   MenuItemType = "nested"
)

// MenuItem is one of WebURLMenuItem, PostbackMenuItem or NestedMenuItem.
type MenuItem interface {
	MenuItemType() MenuItemType
	isMenuItem()
}

// WebURLMenuItem opens a URL.
type WebURLMenuItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	WebviewOptions
}

// PostbackMenuItem sends Payload back to the webhook.
type PostbackMenuItem struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
	WebviewOptions
}

// NestedMenuItem opens a submenu.
type NestedMenuItem struct {
	Title       string                `json:"title"`
	Actions     MenuItems             `json:"call_to_actions"`
	ShareButton ShareButtonVisibility `json:"webview_share_button,omitempty"`
}

func (WebURLMenuItem) MenuItemType() MenuItemType   { return MenuItemWebURL }
func (PostbackMenuItem) MenuItemType() MenuItemType { return MenuItemPostback }
func (NestedMenuItem) MenuItemType() MenuItemType   { return MenuItemNested }

func (WebURLMenuItem) isMenuItem()   {}
func (PostbackMenuItem) isMenuItem() {}
func (NestedMenuItem) isMenuItem()   {}

func (i WebURLMenuItem) MarshalJSON() ([]byte, error) {
	type item WebURLMenuItem
	return json.Marshal(struct {
		Type MenuItemType `json:"type"`
		item
	}{MenuItemWebURL, item(i)})
}

func (i PostbackMenuItem) MarshalJSON() ([]byte, error) {
	type item PostbackMenuItem
	return json.Marshal(struct {
		Type MenuItemType `json:"type"`
		item
	}{MenuItemPostback, item(i)})
}

func (i NestedMenuItem) MarshalJSON() ([]byte, error) {
	type item NestedMenuItem
	return json.Marshal(struct {
		Type MenuItemType `json:"type"`
		item
	}{MenuItemNested, item(i)})
}

// MenuItems is an ordered list of menu items that decodes by discriminant.
type MenuItems []MenuItem

func (m *MenuItems) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	items := make(MenuItems, 0, len(raw))
	for _, r := range raw {
		var head struct {
			Type MenuItemType `json:"type"`
		}
		if err := json.Unmarshal(r, &head); err != nil {
			return err
		}

		var item MenuItem
		switch head.Type {
		case MenuItemWebURL:
			var v WebURLMenuItem
			if err := json.Unmarshal(r, &v); err != nil {
				return err
			}
			item = v
		case MenuItemPostback:
			var v PostbackMenuItem
			if err := json.Unmarshal(r, &v); err != nil {
				return err
			}
			item = v
		case MenuItemNested:
			var v NestedMenuItem
			if err := json.Unmarshal(r, &v); err != nil {
				return err
			}
			item = v
		default:
			return fmt.Errorf("unknown menu item type %q", head.Type)
		}
		items = append(items, item)
	}

	*m = items
	return nil
}

// Clone returns a deep copy, including nested submenus.
func (m MenuItems) Clone() MenuItems {
	if m == nil {
		return nil
	}
	out := make(MenuItems, len(m))
	for i, item := range m {
		if n, ok := item.(NestedMenuItem); ok {
			n.Actions = n.Actions.Clone()
			item = n
		}
		out[i] = item
	}
	return out
}

// PersistentMenu is a locale-scoped persistent menu.
type PersistentMenu struct {
	Locale                string    `json:"locale"`
	ComposerInputDisabled bool      `json:"composer_input_disabled"`
	Actions               MenuItems `json:"call_to_actions,omitempty"`
}

// Validate checks that a menu with a disabled composer has at least one
// action.
func (m PersistentMenu) Validate() error {
	if m.ComposerInputDisabled && len(m.Actions) == 0 {
		return invalid("persistent menu", "locale %q: at least one menu item must be added when composer input is disabled", m.Locale)
	}
	return nil
}

// ProfileResponse is the acknowledgement of a profile write or delete.
type ProfileResponse struct {
	Result string `json:"result"`
}
