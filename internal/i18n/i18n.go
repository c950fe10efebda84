// Package i18n translates fixed UI keys for the active locale.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Keys used by the client screens.
const (
	KeyLoginTitle            = "login-title"
	KeyLoginLabel            = "login-label"
	KeyPassword              = "password"
	KeyLogIn                 = "log-in"
	KeyDontHaveAccount       = "dont-have-account"
	KeyCreateAccount         = "create-account"
	KeyForgotPassword        = "forgot-password"
	KeyUserNotFoundException = "user-not-found-exception"
	KeyLoginException        = "login-exception"
	KeyLoggingIn             = "logging-in"
	KeyWelcomeRepeatTitle    = "welcome-repeat-title"
	KeyWelcomeRepeatBody     = "welcome-repeat-body"
	KeyRegisterTitle         = "register-title"
	KeyResetPasswordTitle    = "reset-password-title"
	KeyPlaceholderBody       = "placeholder-body"
)

//go:embed locales/*.toml
var localeFS embed.FS

// base is the locale every other catalog inherits missing keys from.
var base = language.English

// Translator looks up translations for one locale.
type Translator struct {
	requested language.Tag
	matched   language.Tag
	printer   *message.Printer
}

// New builds a Translator for the given BCP 47 tag. Unknown languages are
// served from the base catalog.
func New(tag string) (*Translator, error) {
	requested := base
	if s := strings.TrimSpace(tag); s != "" {
		t, err := language.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("i18n: parse locale %q: %w", tag, err)
		}
		requested = t
	}

	cat, supported, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	_, idx, _ := language.NewMatcher(supported).Match(requested)
	matched := supported[idx]

	return &Translator{
		requested: requested,
		matched:   matched,
		printer:   message.NewPrinter(matched, message.Catalog(cat)),
	}, nil
}

// T returns the translation for key, or the key itself when none exists.
func (t *Translator) T(key string) string {
	return t.printer.Sprintf(key)
}

// IsUS reports whether the requested locale names the United States region.
func (t *Translator) IsUS() bool {
	region, conf := t.requested.Region()
	return conf == language.Exact && region.String() == "US"
}

// Locale is the tag the user asked for.
func (t *Translator) Locale() string { return t.requested.String() }

// Matched is the shipped catalog serving the requested locale.
func (t *Translator) Matched() string { return t.matched.String() }

func loadCatalog() (*catalog.Builder, []language.Tag, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, nil, fmt.Errorf("i18n: read locales: %w", err)
	}

	tables := map[string]map[string]string{}
	tags := map[string]language.Tag{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".toml" {
			continue
		}
		tag, err := language.Parse(strings.TrimSuffix(name, ".toml"))
		if err != nil {
			return nil, nil, fmt.Errorf("i18n: locale file %s: %w", name, err)
		}
		data, err := localeFS.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
		table := map[string]string{}
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, nil, fmt.Errorf("i18n: decode %s: %w", name, err)
		}
		tables[tag.String()] = table
		tags[tag.String()] = tag
	}
	baseTable, ok := tables[base.String()]
	if !ok {
		return nil, nil, fmt.Errorf("i18n: missing base locale %s", base)
	}

	// base first so the matcher defaults to it
	supported := []language.Tag{base}
	for name, tag := range tags {
		if name != base.String() {
			supported = append(supported, tag)
		}
	}
	rest := supported[1:]
	sort.Slice(rest, func(i, j int) bool { return rest[i].String() < rest[j].String() })

	b := catalog.NewBuilder(catalog.Fallback(base))
	for _, tag := range supported {
		for key, msg := range baseTable {
			if v, ok := tables[tag.String()][key]; ok {
				msg = v
			}
			if err := b.SetString(tag, key, escapeVerbs(msg)); err != nil {
				return nil, nil, fmt.Errorf("i18n: register %s/%s: %w", tag, key, err)
			}
		}
	}
	return b, supported, nil
}

// escapeVerbs keeps literal percent signs from being read as format verbs.
func escapeVerbs(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
