package builder

import (
	"encoding/json"
	"errors"
	"testing"

	"messenger-client/internal/domain/entity"

	"github.com/google/go-cmp/cmp"
)

func TestAddMenuComposerDisabledNeedsActions(t *testing.T) {
	cases := map[string]struct {
		disabled bool
		menu     *Menu
		wantErr  bool
	}{
		"disabled without items": {
			disabled: true,
			menu:     CreateMenu(),
			wantErr:  true,
		},
		"disabled with nil menu": {
			disabled: true,
			wantErr:  true,
		},
		"disabled with one item": {
			disabled: true,
			menu:     CreateMenu().AddWebURLItem("Site", "https://example.com"),
		},
		"enabled without items": {
			menu: CreateMenu(),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			b := NewPersistentMenuBuilder()
			err := b.AddMenu("default", tc.disabled, tc.menu)
			if tc.wantErr {
				var ve *entity.ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("AddMenu() err = %v, want *entity.ValidationError", err)
				}
				if !errors.Is(err, entity.ErrInvalidPayload) {
					t.Errorf("AddMenu() err = %v, want to match ErrInvalidPayload", err)
				}
				if got := b.Build(); len(got) != 0 {
					t.Errorf("rejected menu was added: %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddMenu() unexpected error: %v", err)
			}
			if got := b.Build(); len(got) != 1 {
				t.Errorf("Build() returned %d menus, want 1", len(got))
			}
		})
	}
}

func TestMenuItemShareButtonDefaultsToShown(t *testing.T) {
	menu := CreateMenu().
		AddWebURLItem("omitted", "https://example.com/a").
		AddWebURLItem("shown", "https://example.com/b", WithShareButton(true)).
		AddWebURLItem("hidden", "https://example.com/c", WithShareButton(false)).
		AddPostbackItem("postback hidden", "id", nil, WithShareButton(false))

	want := []entity.ShareButtonVisibility{
		entity.ShareButtonShow,
		entity.ShareButtonShow,
		entity.ShareButtonHide,
		entity.ShareButtonHide,
	}
	for i, item := range menu.Actions() {
		var got entity.ShareButtonVisibility
		switch v := item.(type) {
		case entity.WebURLMenuItem:
			got = v.ShareButton
		case entity.PostbackMenuItem:
			got = v.ShareButton
		default:
			t.Fatalf("item %d has unexpected type %T", i, item)
		}
		if got != want[i] {
			t.Errorf("item %d share button = %q, want %q", i, got, want[i])
		}
	}
}

func TestMenuItemOptionalDecorations(t *testing.T) {
	menu := CreateMenu().AddWebURLItem("Shop", "https://example.com/shop",
		WithHeightRatio(entity.HeightRatioTall),
		WithMessengerExtensions(),
		WithFallbackURL("https://example.com/fallback"),
	)

	b := NewPersistentMenuBuilder()
	if err := b.AddMenu("default", false, menu); err != nil {
		t.Fatal(err)
	}

	got, err := json.Marshal(b.Build())
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"locale":"default","composer_input_disabled":false,"call_to_actions":[` +
		`{"type":"web_url","title":"Shop","url":"https://example.com/shop",` +
		`"webview_height_ratio":"tall","messenger_extensions":true,` +
		`"fallback_url":"https://example.com/fallback","webview_share_button":"show"}]}]`
	if string(got) != want {
		t.Errorf("json mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestPostbackItemPayload(t *testing.T) {
	menu := CreateMenu().AddPostbackItem("Help", "X", map[string]any{"a": 1})

	item, ok := menu.Actions()[0].(entity.PostbackMenuItem)
	if !ok {
		t.Fatalf("item is %T, want entity.PostbackMenuItem", menu.Actions()[0])
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(item.Payload), &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"src":  "PERSISTENT_MENU",
		"id":   "X",
		"data": map[string]any{"a": float64(1)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestPostbackItemEmptyID(t *testing.T) {
	menu := CreateMenu().AddPostbackItem("Help", "", map[string]any{"a": 1})

	item := menu.Actions()[0].(entity.PostbackMenuItem)
	if want := `{"src":"PERSISTENT_MENU","id":"","data":{"a":1}}`; item.Payload != want {
		t.Errorf("payload = %s, want %s", item.Payload, want)
	}
}

func TestPostbackItemUnencodableData(t *testing.T) {
	menu := CreateMenu().AddPostbackItem("Bad", "X", make(chan int))

	err := NewPersistentMenuBuilder().AddMenu("default", false, menu)
	if !errors.Is(err, entity.ErrInvalidPayload) {
		t.Fatalf("AddMenu() err = %v, want ErrInvalidPayload", err)
	}
}

func TestSubmenu(t *testing.T) {
	sub := CreateMenu().AddWebURLItem("Docs", "https://example.com/docs")
	menu := CreateMenu().AddSubmenu("More", sub)

	nested, ok := menu.Actions()[0].(entity.NestedMenuItem)
	if !ok {
		t.Fatalf("item is %T, want entity.NestedMenuItem", menu.Actions()[0])
	}
	if len(nested.Actions) != 1 {
		t.Fatalf("nested actions = %d, want 1", len(nested.Actions))
	}

	// Later changes to the submenu don't leak into the parent.
	sub.AddWebURLItem("Blog", "https://example.com/blog")
	nested = menu.Actions()[0].(entity.NestedMenuItem)
	if len(nested.Actions) != 1 {
		t.Errorf("nested actions after submenu change = %d, want 1", len(nested.Actions))
	}
}

func TestSubmenuJSON(t *testing.T) {
	menu := CreateMenu().AddSubmenu("More", CreateMenu().AddWebURLItem("Docs", "https://example.com/docs"))

	got, err := json.Marshal(menu.Actions())
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"type":"nested","title":"More","call_to_actions":[` +
		`{"type":"web_url","title":"Docs","url":"https://example.com/docs","webview_share_button":"show"}],` +
		`"webview_share_button":"show"}]`
	if string(got) != want {
		t.Errorf("json mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestBuildReturnsSnapshot(t *testing.T) {
	b := NewPersistentMenuBuilder()
	menu := CreateMenu().
		AddPostbackItem("Start over", "restart", nil).
		AddSubmenu("More", CreateMenu().AddWebURLItem("Docs", "https://example.com/docs"))
	if err := b.AddMenu("default", true, menu); err != nil {
		t.Fatal(err)
	}

	first := b.Build()
	before, _ := json.Marshal(first)

	// Mutating the returned value or the builder must not affect either.
	first[0].Actions[0] = entity.WebURLMenuItem{Title: "changed"}
	menu.AddWebURLItem("Late", "https://example.com/late")
	if err := b.AddMenu("fr_FR", false, CreateMenu()); err != nil {
		t.Fatal(err)
	}

	second := b.Build()
	if len(second) != 2 {
		t.Fatalf("Build() returned %d menus, want 2", len(second))
	}
	after, _ := json.Marshal(second[:1])
	if string(before) != string(after) {
		t.Errorf("built menu changed\nbefore: %s\n after: %s", before, after)
	}
}
