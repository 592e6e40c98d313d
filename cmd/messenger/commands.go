package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"messenger-client/internal/domain/entity"
	"messenger-client/internal/usecase"
)

// command is a CLI subcommand registered on the command router.
type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string) error
}

func (c *command) CanHandle(name string) bool { return name == c.name }

func (c *command) Run(ctx context.Context, args []string) error { return c.run(ctx, args) }

// app holds the services the commands operate on.
type app struct {
	profile              *usecase.ProfileService
	send                 *usecase.SendService
	broadcastConcurrency int
	out                  io.Writer
}

func (a *app) commands() []*command {
	return []*command{
		{name: "profile-apply", usage: "set profile fields from flags", run: a.profileApply},
		{name: "profile-get", usage: "print profile fields as JSON", run: a.profileGet},
		{name: "profile-delete", usage: "delete profile fields", run: a.profileDelete},
		{name: "send-text", usage: "send a text message", run: a.sendText},
		{name: "send-media", usage: "send an image, audio, video or file by URL", run: a.sendMedia},
		{name: "sender-action", usage: "send typing_on, typing_off or mark_seen", run: a.senderAction},
		{name: "broadcast", usage: "send a text message to many recipients", run: a.broadcast},
	}
}

func (a *app) profileApply(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile-apply", flag.ContinueOnError)
	greeting := fs.String("greeting", "", "greeting text for the default locale")
	getStarted := fs.Bool("get-started", false, "show the Get Started button")
	getStartedData := fs.String("get-started-data", "", "JSON data carried by the Get Started postback")
	menuFile := fs.String("menu", "", "path to a JSON file holding the persistent menus")
	domains := fs.String("domains", "", "comma separated list of whitelisted domains")
	linkingURL := fs.String("account-linking-url", "", "account linking URL")
	audience := fs.String("audience", "", "target audience: all, none, whitelist:US,CA or blacklist:FR")
	homeURL := fs.String("home-url", "", "chat extension home URL")
	homeInTest := fs.Bool("home-url-in-test", false, "only show the chat extension to page roles")
	homeShare := fs.Bool("home-url-share", true, "show the share button in the chat extension")
	if err := fs.Parse(args); err != nil {
		return err
	}

	applied := 0
	step := func(err error) error {
		applied++
		return err
	}

	if *greeting != "" {
		if err := step(a.profile.SetGreeting(ctx, *greeting)); err != nil {
			return err
		}
	}

	if *getStarted || *getStartedData != "" {
		var data any
		if *getStartedData != "" {
			if err := json.Unmarshal([]byte(*getStartedData), &data); err != nil {
				return fmt.Errorf("invalid -get-started-data: %w", err)
			}
		}
		if err := step(a.profile.SetGetStartedButton(ctx, data)); err != nil {
			return err
		}
	}

	if *menuFile != "" {
		menus, err := readMenus(*menuFile)
		if err != nil {
			return err
		}
		if err := step(a.profile.SetPersistentMenu(ctx, menus...)); err != nil {
			return err
		}
	}

	if *domains != "" {
		if err := step(a.profile.WhitelistDomains(ctx, splitList(*domains)...)); err != nil {
			return err
		}
	}

	if *linkingURL != "" {
		if err := step(a.profile.SetAccountLinkingURL(ctx, *linkingURL)); err != nil {
			return err
		}
	}

	if *audience != "" {
		if err := step(a.applyAudience(ctx, *audience)); err != nil {
			return err
		}
	}

	if *homeURL != "" {
		if err := step(a.profile.SetChatExtensionHomeURL(ctx, *homeURL, *homeInTest, *homeShare)); err != nil {
			return err
		}
	}

	if applied == 0 {
		return errors.New("nothing to apply")
	}
	fmt.Fprintf(a.out, "applied %d profile fields\n", applied)
	return nil
}

func (a *app) applyAudience(ctx context.Context, audience string) error {
	kind, countries, _ := strings.Cut(audience, ":")
	switch kind {
	case "all":
		return a.profile.OpenAudienceToAll(ctx)
	case "none":
		return a.profile.CloseAudienceToAll(ctx)
	case "whitelist":
		return a.profile.WhitelistAudienceCountries(ctx, splitList(countries)...)
	case "blacklist":
		return a.profile.BlacklistAudienceCountries(ctx, splitList(countries)...)
	}
	return fmt.Errorf("unknown audience %q", audience)
}

func (a *app) profileGet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile-get", flag.ContinueOnError)
	fieldList := fs.String("fields", "", "comma separated profile fields, all when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fields, err := parseFields(*fieldList)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		fields = entity.Fields
	}

	profile := make(map[entity.Field]any, len(fields))
	for _, f := range fields {
		v, ok, err := a.getField(ctx, f)
		if err != nil {
			return err
		}
		if ok {
			profile[f] = v
		}
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(profile)
}

func (a *app) getField(ctx context.Context, f entity.Field) (any, bool, error) {
	switch f {
	case entity.FieldPersistentMenu:
		return unwrap(a.profile.GetPersistentMenu(ctx))
	case entity.FieldGetStartedButton:
		return unwrap(a.profile.GetGetStartedButton(ctx))
	case entity.FieldGreeting:
		return unwrap(a.profile.GetGreeting(ctx))
	case entity.FieldWhitelistedDomains:
		return unwrap(a.profile.GetWhitelistedDomains(ctx))
	case entity.FieldAccountLinkingURL:
		return unwrap(a.profile.GetAccountLinkingURL(ctx))
	case entity.FieldTargetAudience:
		return unwrap(a.profile.GetTargetAudience(ctx))
	case entity.FieldChatExtensionWebURL:
		return unwrap(a.profile.GetChatExtensionHomeURL(ctx))
	}
	return nil, false, fmt.Errorf("unknown profile field %q", f)
}

func unwrap[T any](v T, ok bool, err error) (any, bool, error) {
	return v, ok, err
}

func (a *app) profileDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile-delete", flag.ContinueOnError)
	fieldList := fs.String("fields", "", "comma separated profile fields to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fields, err := parseFields(*fieldList)
	if err != nil {
		return err
	}
	if err := a.profile.DeleteFields(ctx, fields...); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %d profile fields\n", len(fields))
	return nil
}

// sendFlags registers the flags shared by every send command.
func sendFlags(fs *flag.FlagSet) func() []usecase.SendOption {
	notification := fs.String("notification", string(entity.NotificationRegular), "REGULAR, SILENT_PUSH or NO_PUSH")
	tag := fs.String("tag", "", "message tag for sends outside the messaging window")
	return func() []usecase.SendOption {
		opts := []usecase.SendOption{usecase.WithNotificationType(entity.NotificationType(*notification))}
		if *tag != "" {
			opts = append(opts, usecase.WithTag(entity.MessageTag(*tag)))
		}
		return opts
	}
}

func (a *app) sendText(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("send-text", flag.ContinueOnError)
	to := fs.String("to", "", "recipient page-scoped id")
	text := fs.String("text", "", "message text")
	opts := sendFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.send.SendText(ctx, *to, *text, opts()...)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "sent message %s to %s\n", resp.MessageID, resp.RecipientID)
	return nil
}

func (a *app) sendMedia(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("send-media", flag.ContinueOnError)
	to := fs.String("to", "", "recipient page-scoped id")
	kind := fs.String("type", string(entity.AttachmentImage), "image, audio, video or file")
	url := fs.String("url", "", "media URL")
	reuse := fs.Bool("reuse", false, "reuse a previously issued attachment id for this URL")
	opts := sendFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var send func(context.Context, string, string, bool, ...usecase.SendOption) (string, error)
	switch entity.AttachmentType(*kind) {
	case entity.AttachmentImage:
		send = a.send.SendImage
	case entity.AttachmentAudio:
		send = a.send.SendAudio
	case entity.AttachmentVideo:
		send = a.send.SendVideo
	case entity.AttachmentFile:
		send = a.send.SendFile
	default:
		return fmt.Errorf("unknown media type %q", *kind)
	}

	id, err := send(ctx, *to, *url, *reuse, opts()...)
	if err != nil {
		return err
	}
	if id != "" {
		fmt.Fprintf(a.out, "sent %s to %s, attachment id %s\n", *kind, *to, id)
	} else {
		fmt.Fprintf(a.out, "sent %s to %s\n", *kind, *to)
	}
	return nil
}

func (a *app) senderAction(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sender-action", flag.ContinueOnError)
	to := fs.String("to", "", "recipient page-scoped id")
	action := fs.String("action", string(entity.SenderActionTypingOn), "typing_on, typing_off or mark_seen")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch entity.SenderAction(*action) {
	case entity.SenderActionTypingOn:
		return a.send.TypingOn(ctx, *to)
	case entity.SenderActionTypingOff:
		return a.send.TypingOff(ctx, *to)
	case entity.SenderActionMarkSeen:
		return a.send.MarkSeen(ctx, *to)
	}
	return fmt.Errorf("unknown sender action %q", *action)
}

func (a *app) broadcast(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("broadcast", flag.ContinueOnError)
	to := fs.String("to", "", "comma separated recipient ids")
	toFile := fs.String("to-file", "", "file with one recipient id per line")
	text := fs.String("text", "", "message text")
	concurrency := fs.Int("concurrency", a.broadcastConcurrency, "maximum sends in flight")
	opts := sendFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	recipients := splitList(*to)
	if *toFile != "" {
		b, err := os.ReadFile(*toFile)
		if err != nil {
			return err
		}
		recipients = append(recipients, strings.Fields(string(b))...)
	}
	if len(recipients) == 0 {
		return errors.New("no recipients")
	}

	results := a.send.Broadcast(ctx, recipients, entity.Message{Text: *text}, *concurrency, opts()...)

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(a.out, "%s\tfailed\t%v\n", r.RecipientID, r.Err)
			errs = append(errs, fmt.Errorf("%s: %w", r.RecipientID, r.Err))
			continue
		}
		fmt.Fprintf(a.out, "%s\tsent\t%s\n", r.RecipientID, r.Response.MessageID)
	}
	return errors.Join(errs...)
}

func readMenus(path string) ([]entity.PersistentMenu, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var menus []entity.PersistentMenu
	if err := json.Unmarshal(b, &menus); err != nil {
		return nil, fmt.Errorf("invalid menu file %s: %w", path, err)
	}
	return menus, nil
}

func parseFields(s string) ([]entity.Field, error) {
	var fields []entity.Field
	for _, name := range splitList(s) {
		f, err := entity.ParseField(name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
