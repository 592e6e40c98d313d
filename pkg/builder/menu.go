// Package builder assembles validated menu, message and template payloads.
//
// Builders accumulate values through chained calls and hand out independent
// copies from Build, so later calls on a builder never change a value it
// already returned.
package builder

import (
	"errors"

	"messenger-client/internal/domain/entity"
)

// PersistentMenuBuilder collects locale-scoped persistent menus.
type PersistentMenuBuilder struct {
	menus []entity.PersistentMenu
}

// NewPersistentMenuBuilder returns an empty builder.
func NewPersistentMenuBuilder() *PersistentMenuBuilder {
	return &PersistentMenuBuilder{}
}

// CreateMenu returns an empty Menu to be filled and passed to AddMenu.
func CreateMenu() *Menu {
	return &Menu{}
}

// AddMenu commits menu for locale. It fails with *entity.ValidationError,
// without adding anything, if composerInputDisabled is set and the menu has
// no items, or if an item could not be encoded.
func (b *PersistentMenuBuilder) AddMenu(locale string, composerInputDisabled bool, menu *Menu) error {
	if menu == nil {
		menu = CreateMenu()
	}
	if err := menu.Err(); err != nil {
		return err
	}

	pm := entity.PersistentMenu{
		Locale:                locale,
		ComposerInputDisabled: composerInputDisabled,
		Actions:               menu.actions.Clone(),
	}
	if err := pm.Validate(); err != nil {
		return err
	}

	b.menus = append(b.menus, pm)
	return nil
}

// Build returns a copy of the committed menus.
func (b *PersistentMenuBuilder) Build() []entity.PersistentMenu {
	out := make([]entity.PersistentMenu, len(b.menus))
	for i, m := range b.menus {
		m.Actions = m.Actions.Clone()
		out[i] = m
	}
	return out
}

// Menu accumulates the items of one menu or submenu.
type Menu struct {
	actions entity.MenuItems
	errs    []error
}

// AddWebURLItem appends an item opening url.
func (m *Menu) AddWebURLItem(title, url string, opts ...ItemOption) *Menu {
	m.actions = append(m.actions, entity.WebURLMenuItem{
		Title:          title,
		URL:            url,
		WebviewOptions: webviewOptions(opts),
	})
	return m
}

// AddPostbackItem appends an item whose payload carries the persistent menu
// source tag together with id and data.
func (m *Menu) AddPostbackItem(title, id string, data any, opts ...ItemOption) *Menu {
	payload, err := entity.PostbackPayload{
		Src:  entity.PostbackSourcePersistentMenu,
		ID:   id,
		Data: data,
	}.Encode()
	if err != nil {
		m.errs = append(m.errs, &entity.ValidationError{Kind: "menu item", Reason: err.Error()})
		return m
	}

	m.actions = append(m.actions, entity.PostbackMenuItem{
		Title:          title,
		Payload:        payload,
		WebviewOptions: webviewOptions(opts),
	})
	return m
}

// AddSubmenu appends a nested item holding a copy of submenu's items. Like
// the other items it shows the share button.
func (m *Menu) AddSubmenu(title string, submenu *Menu) *Menu {
	var actions entity.MenuItems
	if submenu != nil {
		actions = submenu.actions.Clone()
		m.errs = append(m.errs, submenu.errs...)
	}
	m.actions = append(m.actions, entity.NestedMenuItem{
		Title:       title,
		Actions:     actions,
		ShareButton: entity.ShareButtonShow,
	})
	return m
}

// Actions returns a copy of the items added so far.
func (m *Menu) Actions() entity.MenuItems {
	return m.actions.Clone()
}

// Err reports item errors recorded while building the menu.
func (m *Menu) Err() error {
	return errors.Join(m.errs...)
}
