package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog holds the flattened translation strings for every supported
// locale. Keys use dot notation mirroring the nested JSON structure of the
// catalog files; all locales carry a parallel key set.
type Catalog struct {
	strings map[string]map[string]string
}

func LoadCatalog() (*Catalog, error) {
	catalog := &Catalog{strings: map[string]map[string]string{}}
	for _, locale := range SupportedLocales {
		raw, err := localeFS.ReadFile("locales/" + locale + ".json")
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", locale, err)
		}
		var nested map[string]any
		if err := json.Unmarshal(raw, &nested); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", locale, err)
		}
		flat := map[string]string{}
		flatten("", nested, flat)
		catalog.strings[locale] = flat
	}
	return catalog, nil
}

// T looks up a translation, falling back to the default locale and finally
// to the key itself so missing strings stay visible rather than blank.
func (c *Catalog) T(locale, key string) string {
	if c == nil {
		return key
	}
	if strings, ok := c.strings[locale]; ok {
		if value, ok := strings[key]; ok {
			return value
		}
	}
	if locale != DefaultLocale {
		if value, ok := c.strings[DefaultLocale][key]; ok {
			return value
		}
	}
	return key
}

// Func returns a single-locale lookup for template rendering.
func (c *Catalog) Func(locale string) func(string) string {
	return func(key string) string {
		return c.T(locale, key)
	}
}

func flatten(prefix string, nested map[string]any, out map[string]string) {
	for key, value := range nested {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]any:
			flatten(full, v, out)
		}
	}
}
