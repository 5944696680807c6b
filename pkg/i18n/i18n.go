package i18n

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

const DefaultLang = "es"

var (
	mu     sync.RWMutex
	bundle *goi18n.Bundle
	once   sync.Once
)

// Init builds the bundle with the embedded locales. Safe to call more than once.
func Init() {
	once.Do(func() {
		b := goi18n.NewBundle(language.Spanish)
		b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			panic(fmt.Sprintf("i18n: read embedded locales: %v", err))
		}
		for _, e := range entries {
			data, err := localeFS.ReadFile("locales/" + e.Name())
			if err != nil {
				panic(fmt.Sprintf("i18n: read %s: %v", e.Name(), err))
			}
			if _, err := b.ParseMessageFileBytes(data, e.Name()); err != nil {
				panic(fmt.Sprintf("i18n: parse %s: %v", e.Name(), err))
			}
		}

		mu.Lock()
		bundle = b
		mu.Unlock()
	})
}

// Load adds an extra message file (e.g. active.pt.yaml) on top of the
// embedded ones. Messages in path override embedded ones with the same id.
func Load(path string) error {
	Init()
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	_, err = bundle.ParseMessageFileBytes(data, filepath.Base(path))
	return err
}

// T localizes id for lang. Unknown ids are returned as-is.
func T(lang, id string, data map[string]any) string {
	Init()
	if lang == "" {
		lang = DefaultLang
	}

	cfg := &goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	}

	mu.RLock()
	loc := goi18n.NewLocalizer(bundle, lang, DefaultLang)
	fallback := goi18n.NewLocalizer(bundle, DefaultLang)
	mu.RUnlock()

	msg, err := loc.Localize(cfg)
	if err == nil {
		return msg
	}

	// The localizer settles on one matched tag; a message missing there is
	// looked up again in the default language.
	var notFound *goi18n.MessageNotFoundErr
	if !errors.As(err, &notFound) {
		return id
	}
	if msg, err = fallback.Localize(cfg); err != nil {
		return id
	}
	return msg
}

// Languages lists the tags that have messages loaded.
func Languages() []string {
	Init()
	mu.RLock()
	defer mu.RUnlock()

	tags := bundle.LanguageTags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}
