package entity

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMenuItemsRoundTrip(t *testing.T) {
	menu := PersistentMenu{
		Locale:                DefaultLocale,
		ComposerInputDisabled: true,
		Actions: MenuItems{
			PostbackMenuItem{Title: "Start over", Payload: `{"src":"PERSISTENT_MENU","id":"restart"}`},
			NestedMenuItem{
				Title: "More",
				Actions: MenuItems{
					WebURLMenuItem{
						Title: "Docs",
						URL:   "https://example.com/docs",
						WebviewOptions: WebviewOptions{
							HeightRatio: HeightRatioCompact,
							ShareButton: ShareButtonHide,
						},
					},
				},
			},
		},
	}

	data, err := json.Marshal(menu)
	if err != nil {
		t.Fatal(err)
	}

	var got PersistentMenu
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(menu, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMenuItemsUnknownType(t *testing.T) {
	var items MenuItems
	err := json.Unmarshal([]byte(`[{"type":"carousel","title":"x"}]`), &items)
	if err == nil {
		t.Fatal("expected error for unknown item type")
	}
}

func TestMenuItemsClone(t *testing.T) {
	orig := MenuItems{
		NestedMenuItem{Title: "More", Actions: MenuItems{WebURLMenuItem{Title: "a"}}},
	}
	clone := orig.Clone()
	clone[0].(NestedMenuItem).Actions[0] = WebURLMenuItem{Title: "b"}

	if got := orig[0].(NestedMenuItem).Actions[0].(WebURLMenuItem).Title; got != "a" {
		t.Errorf("source nested item changed to %q", got)
	}
}

func TestPersistentMenuValidate(t *testing.T) {
	cases := map[string]struct {
		menu    PersistentMenu
		wantErr bool
	}{
		"disabled without actions": {
			menu:    PersistentMenu{Locale: DefaultLocale, ComposerInputDisabled: true},
			wantErr: true,
		},
		"disabled with actions": {
			menu: PersistentMenu{
				Locale:                DefaultLocale,
				ComposerInputDisabled: true,
				Actions:               MenuItems{WebURLMenuItem{Title: "a", URL: "https://example.com"}},
			},
		},
		"enabled without actions": {
			menu: PersistentMenu{Locale: DefaultLocale},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.menu.Validate()
			if !tc.wantErr {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("Validate() err = %v, want *ValidationError", err)
			}
		})
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(string(f))
		if err != nil || got != f {
			t.Errorf("ParseField(%q) = %q, %v", f, got, err)
		}
	}
	if _, err := ParseField("ice_breakers"); err == nil {
		t.Error("ParseField(unknown) expected error")
	}
}

func TestTargetAudienceJSON(t *testing.T) {
	got, err := json.Marshal(TargetAudience{
		AudienceType: AudienceCustom,
		Countries:    &Countries{Whitelist: []string{"US", "CA"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"audience_type":"custom","countries":{"whitelist":["US","CA"]}}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
