package sdlui

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel/constants"
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Localizer translates the placeholder labels.
type Localizer struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	tag       language.Tag
}

// NewLocalizer loads the embedded message files and selects lang, a BCP 47
// tag. An empty lang selects English. Languages without messages fall back
// to English.
func NewLocalizer(lang string) (*Localizer, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	paths, err := fs.Glob(localeFS, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	tag := language.English
	if lang != "" {
		tag, err = language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", lang, err)
		}
	}

	return &Localizer{
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, tag.String()),
		tag:       tag,
	}, nil
}

// DefaultLocalizer selects the language from UIPANEL_LANG and falls back to
// English when it is unset or invalid.
func DefaultLocalizer() *Localizer {
	l, err := NewLocalizer(os.Getenv(constants.LanguageEnvVar))
	if err != nil {
		l, _ = NewLocalizer("")
	}
	return l
}

// Language returns the requested language.
func (l *Localizer) Language() language.Tag { return l.tag }

// Languages returns the languages that have messages.
func (l *Localizer) Languages() []language.Tag { return l.bundle.LanguageTags() }

// Loading returns the label shown while panel loads.
func (l *Localizer) Loading(panel string) string {
	cfg := &i18n.LocalizeConfig{MessageID: "loading_generic"}
	if panel != "" {
		cfg = &i18n.LocalizeConfig{
			MessageID:    "loading",
			TemplateData: map[string]string{"Panel": panel},
		}
	}

	msg, err := l.localizer.Localize(cfg)
	if err != nil {
		return panel
	}
	return msg
}
