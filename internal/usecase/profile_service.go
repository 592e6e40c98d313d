package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"messenger-client/internal/domain/entity"
	"messenger-client/internal/interface/graphapi"
	"messenger-client/pkg/builder"
	"messenger-client/pkg/logger"
)

// ProfileService reads and writes the Messenger Profile of the page.
type ProfileService struct {
	api    graphapi.Dispatcher
	logger logger.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(api graphapi.Dispatcher, logger logger.Logger) *ProfileService {
	return &ProfileService{
		api:    api,
		logger: logger,
	}
}

// SetGetStartedButton shows the Get Started button. Tapping it sends a
// postback tagged GET_STARTED_BUTTON carrying data.
func (s *ProfileService) SetGetStartedButton(ctx context.Context, data any) error {
	payload, err := entity.PostbackPayload{
		Src:  entity.PostbackSourceGetStartedButton,
		Data: data,
	}.Encode()
	if err != nil {
		return &entity.ValidationError{Kind: "get started button", Reason: err.Error()}
	}
	return s.setField(ctx, entity.FieldGetStartedButton, entity.GetStartedButton{Payload: payload})
}

func (s *ProfileService) GetGetStartedButton(ctx context.Context) (entity.GetStartedButton, bool, error) {
	return getField[entity.GetStartedButton](ctx, s, entity.FieldGetStartedButton)
}

func (s *ProfileService) DeleteGetStartedButton(ctx context.Context) error {
	return s.DeleteFields(ctx, entity.FieldGetStartedButton)
}

// SetGreeting sets text as the greeting for the default locale.
func (s *ProfileService) SetGreeting(ctx context.Context, text string) error {
	return s.SetGreetings(ctx, entity.Greeting{Locale: entity.DefaultLocale, Text: text})
}

// SetGreetings sets locale-specific greetings, sent in the given order.
func (s *ProfileService) SetGreetings(ctx context.Context, greetings ...entity.Greeting) error {
	if len(greetings) == 0 {
		return &entity.ValidationError{Kind: "greeting", Reason: "at least one greeting is required"}
	}
	return s.setField(ctx, entity.FieldGreeting, greetings)
}

func (s *ProfileService) GetGreeting(ctx context.Context) ([]entity.Greeting, bool, error) {
	return getField[[]entity.Greeting](ctx, s, entity.FieldGreeting)
}

func (s *ProfileService) DeleteGreeting(ctx context.Context) error {
	return s.DeleteFields(ctx, entity.FieldGreeting)
}

// SetPersistentMenu replaces the persistent menu. Every menu is validated
// before anything is sent.
func (s *ProfileService) SetPersistentMenu(ctx context.Context, menus ...entity.PersistentMenu) error {
	if len(menus) == 0 {
		return &entity.ValidationError{Kind: "persistent menu", Reason: "at least one menu is required"}
	}
	for _, m := range menus {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return s.setField(ctx, entity.FieldPersistentMenu, menus)
}

// SetPersistentMenuFrom sends the menus committed to b.
func (s *ProfileService) SetPersistentMenuFrom(ctx context.Context, b *builder.PersistentMenuBuilder) error {
	if b == nil {
		return &entity.ValidationError{Kind: "persistent menu", Reason: "menu builder is required"}
	}
	return s.SetPersistentMenu(ctx, b.Build()...)
}

func (s *ProfileService) GetPersistentMenu(ctx context.Context) ([]entity.PersistentMenu, bool, error) {
	return getField[[]entity.PersistentMenu](ctx, s, entity.FieldPersistentMenu)
}

func (s *ProfileService) DeletePersistentMenu(ctx context.Context) error {
	return s.DeleteFields(ctx, entity.FieldPersistentMenu)
}

// WhitelistDomains replaces the list of domains allowed in webviews and
// Messenger Extensions.
func (s *ProfileService) WhitelistDomains(ctx context.Context, domains ...string) error {
	if len(domains) == 0 {
		return &entity.ValidationError{Kind: "whitelisted domains", Reason: "at least one domain is required"}
	}
	return s.setField(ctx, entity.FieldWhitelistedDomains, domains)
}

func (s *ProfileService) GetWhitelistedDomains(ctx context.Context) ([]string, bool, error) {
	return getField[[]string](ctx, s, entity.FieldWhitelistedDomains)
}

func (s *ProfileService) DeleteDomainWhitelist(ctx context.Context) error {
	return s.DeleteFields(ctx, entity.FieldWhitelistedDomains)
}

func (s *ProfileService) SetAccountLinkingURL(ctx context.Context, url string) error {
	return s.setField(ctx, entity.FieldAccountLinkingURL, url)
}

func (s *ProfileService) GetAccountLinkingURL(ctx context.Context) (string, bool, error) {
	return getField[string](ctx, s, entity.FieldAccountLinkingURL)
}

func (s *ProfileService) DeleteAccountLinkingURL(ctx context.Context) error {
	return s.DeleteFields(ctx, entity.FieldAccountLinkingURL)
}

// WhitelistAudienceCountries restricts discovery to the given ISO 3166
// Alpha-2 country codes.
func (s *ProfileService) WhitelistAudienceCountries(ctx context.Context, countries ...string) error {
	return s.setField(ctx, entity.FieldTargetAudience, entity.TargetAudience{
		AudienceType: entity.AudienceCustom,
		Countries:    &entity.Countries{Whitelist: countries},
	})
}

// BlacklistAudienceCountries excludes the given ISO 3166 Alpha-2 country
// codes from discovery.
func (s *ProfileService) BlacklistAudienceCountries(ctx context.Context, countries ...string) error {
	return s.setField(ctx, entity.FieldTargetAudience, entity.TargetAudience{
		AudienceType: entity.AudienceCustom,
		Countries:    &entity.Countries{Blacklist: countries},
	})
}

func (s *ProfileService) OpenAudienceToAll(ctx context.Context) error {
	return s.setField(ctx, entity.FieldTargetAudience, entity.TargetAudience{AudienceType: entity.AudienceAll})
}

func (s *ProfileService) CloseAudienceToAll(ctx context.Context) error {
	return s.setField(ctx, entity.FieldTargetAudience, entity.TargetAudience{AudienceType: entity.AudienceNone})
}

func (s *ProfileService) GetTargetAudience(ctx context.Context) (entity.TargetAudience, bool, error) {
	return getField[entity.TargetAudience](ctx, s, entity.FieldTargetAudience)
}

func (s *ProfileService) DeleteTargetAudience(ctx context.Context) error {
	return s.DeleteFields(ctx, entity.FieldTargetAudience)
}

// SetChatExtensionHomeURL sets the Chat Extension home URL, opened in a tall
// webview. inTest keeps it hidden from users without a role on the page.
func (s *ProfileService) SetChatExtensionHomeURL(ctx context.Context, url string, inTest, shareButton bool) error {
	share := entity.ShareButtonShow
	if !shareButton {
		share = entity.ShareButtonHide
	}
	return s.setField(ctx, entity.FieldChatExtensionWebURL, entity.ChatExtensionHomeURL{
		URL:                url,
		WebviewHeightRatio: entity.HeightRatioTall,
		WebviewShareButton: share,
		InTest:             inTest,
	})
}

func (s *ProfileService) GetChatExtensionHomeURL(ctx context.Context) (entity.ChatExtensionHomeURL, bool, error) {
	return getField[entity.ChatExtensionHomeURL](ctx, s, entity.FieldChatExtensionWebURL)
}

func (s *ProfileService) DeleteChatExtensionHomeURL(ctx context.Context) error {
	return s.DeleteFields(ctx, entity.FieldChatExtensionWebURL)
}

// DeleteFields removes exactly the named fields from the profile.
func (s *ProfileService) DeleteFields(ctx context.Context, fields ...entity.Field) error {
	if len(fields) == 0 {
		return &entity.ValidationError{Kind: "profile fields", Reason: "at least one field is required"}
	}

	s.logger.Debug("Deleting profile fields", "fields", fields)

	_, err := graphapi.DispatchJSON[entity.ProfileResponse](ctx, s.api,
		graphapi.EndpointMessengerProfile, graphapi.MethodDelete,
		graphapi.Envelope{"fields": fields})
	if err != nil {
		return fmt.Errorf("failed to delete profile fields %v: %w", fields, err)
	}

	s.logger.Info("Deleted profile fields", "fields", fields)
	return nil
}

func (s *ProfileService) setField(ctx context.Context, field entity.Field, value any) error {
	s.logger.Debug("Setting profile field", "field", field)

	_, err := graphapi.DispatchJSON[entity.ProfileResponse](ctx, s.api,
		graphapi.EndpointMessengerProfile, graphapi.MethodPost,
		graphapi.Envelope{string(field): value})
	if err != nil {
		return fmt.Errorf("failed to set profile field %s: %w", field, err)
	}

	s.logger.Info("Profile field set", "field", field)
	return nil
}

// fieldsResponse is the body of a profile read: {"data":[{<field>: value}]}.
type fieldsResponse struct {
	Data []map[string]json.RawMessage `json:"data"`
}

// getField reads one profile field. ok is false when the profile has no
// value for it.
func getField[T any](ctx context.Context, s *ProfileService, field entity.Field) (value T, ok bool, err error) {
	s.logger.Debug("Reading profile field", "field", field)

	resp, err := graphapi.DispatchJSON[fieldsResponse](ctx, s.api,
		graphapi.EndpointMessengerProfile, graphapi.MethodGet,
		graphapi.Envelope{"fields": field})
	if err != nil {
		return value, false, fmt.Errorf("failed to read profile field %s: %w", field, err)
	}

	if len(resp.Data) == 0 {
		return value, false, nil
	}
	raw, found := resp.Data[0][string(field)]
	if !found || string(raw) == "null" {
		return value, false, nil
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, fmt.Errorf("failed to decode profile field %s: %w", field, err)
	}
	return value, true, nil
}
