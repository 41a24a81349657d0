package translator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string // One <lang>.toml per language is loaded from TranslationFolder
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
	LanguageDe = "de"
)

var ErrNoBundle = errors.New("no translation bundle loaded")

var (
	mu      sync.RWMutex
	matcher = language.NewMatcher([]language.Tag{language.English})
)

// InitTranslator loads the bundle of every supported language. A missing or broken file is
// skipped with a warning; the error reports that no language could be loaded at all.
func InitTranslator(cfg Config) error {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if _, err := os.Stat(cfg.TranslationFolder); err != nil {
		zap.L().Error("failed to read translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		Translator = bundle
		return fmt.Errorf("translation folder %q: %w", cfg.TranslationFolder, err)
	}

	// English first so it is the matcher's fallback.
	loaded := []language.Tag{language.English}
	files := 0
	for _, lang := range cfg.SupportedLanguages {
		tag, err := language.Parse(lang)
		if err != nil {
			zap.L().Warn("skipping unknown language", zap.String("lang", lang), zap.Error(err))
			continue
		}

		file := filepath.Join(cfg.TranslationFolder, lang+".toml")
		if _, err := bundle.LoadMessageFile(file); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", file), zap.Error(err))
			continue
		}
		files++
		if tag != language.English {
			loaded = append(loaded, tag)
		}
	}

	Translator = bundle
	mu.Lock()
	matcher = language.NewMatcher(loaded)
	mu.Unlock()

	if files == 0 {
		return ErrNoBundle
	}
	zap.L().Debug("translations loaded", zap.Int("languages", files))
	return nil
}

// Match picks the loaded language closest to an Accept-Language header. It falls back to
// English.
func Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}

	mu.RLock()
	tag, _, _ := matcher.Match(tags...)
	mu.RUnlock()
	base, _ := tag.Base()
	return base.String()
}
