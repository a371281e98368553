package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var bundle *i18n.Bundle

// Init loads the embedded translation bundle. English is the fallback language.
func Init() error {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return fmt.Errorf("read locale file %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return fmt.Errorf("parse locale file %s: %w", e.Name(), err)
		}
	}
	return nil
}

// T translates a message by ID for the given language, falling back to the
// message ID itself when no translation exists.
func T(lang, msgID string) string {
	if bundle == nil {
		if err := Init(); err != nil {
			return msgID
		}
	}
	loc := i18n.NewLocalizer(bundle, lang, "en")
	s, err := loc.Localize(&i18n.LocalizeConfig{MessageID: msgID})
	if err != nil {
		return msgID
	}
	return s
}

// DefaultArtifactName returns the localized fallback title for a generated
// artifact when the user left the name blank.
func DefaultArtifactName(lang, tool string) string {
	switch tool {
	case "class_planner":
		return T(lang, "artifact.lesson_plan")
	default:
		return T(lang, "artifact.exam")
	}
}
