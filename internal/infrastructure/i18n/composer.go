package i18n

import (
	"embed"
	"log"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain/entities"
	"github.com/PabodaWA/CricketXpert-sub001/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

// Ensure Composer implements the output.MessageComposer port.
var _ output.MessageComposer = (*Composer)(nil)

// Composer renders notification content from go-i18n message catalogs.
type Composer struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

// NewComposer builds a Composer backed by go-i18n using the given default
// locale (e.g. "en").
//
// It currently loads messages from the embedded active.*.toml files.
func NewComposer(defaultLocale string) *Composer {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.si.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			log.Printf("i18n: failed to load %s: %v", file, err)
		}
	}

	return &Composer{
		bundle:          bundle,
		defaultLanguage: tag,
	}
}

// Compose renders the subject and body for one attendance outcome.
func (c *Composer) Compose(locale string, session *entities.Session, user *entities.User, newState entities.AttendanceState, firstMark bool) output.Message {
	key := "attendance.changed." + string(newState)
	if firstMark {
		key = "attendance.marked." + string(newState)
	}
	data := map[string]any{
		"Name":    user.DisplayName,
		"Session": session.Title,
		"Date":    session.ScheduledAt.Format("Mon, 02 Jan 2006"),
	}
	return output.Message{
		Subject: c.translate(locale, "attendance.subject", data),
		Body:    c.translate(locale, key, data),
	}
}

// translate renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then finally to the key itself.
func (c *Composer) translate(locale, key string, data map[string]any) string {
	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, c.defaultLanguage.String())

	localizer := i18n.NewLocalizer(c.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		log.Printf("i18n: localize failed (key=%s, locales=%v): %v", key, languages, err)
		return key
	}
	return msg
}
