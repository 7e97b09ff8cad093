// Package notify renders localized templates and delivers them through the
// originating platform.
package notify

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fallbackLocale = "en"

//go:embed templates.yaml
var defaultTemplates []byte

// Catalog holds the localized message templates.
type Catalog struct {
	templates map[string]map[string]string
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(defaultTemplates)
	if err != nil {
		panic(fmt.Sprintf("notify: embedded templates.yaml: %v", err))
	}
	return c
}

// LoadCatalog parses a templates YAML document.
func LoadCatalog(data []byte) (*Catalog, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	if _, ok := raw[fallbackLocale]; !ok {
		return nil, fmt.Errorf("templates have no %q locale", fallbackLocale)
	}

	c := &Catalog{templates: make(map[string]map[string]string, len(raw))}
	for locale, keys := range raw {
		c.templates[strings.ToLower(locale)] = keys
	}
	return c, nil
}

// Render formats key for locale, falling back to English.
func (c *Catalog) Render(locale, key string, args ...any) (string, error) {
	tpl, ok := c.templates[strings.ToLower(locale)][key]
	if !ok {
		tpl, ok = c.templates[fallbackLocale][key]
	}
	if !ok {
		return "", fmt.Errorf("unknown template %q", key)
	}
	if !strings.Contains(tpl, "%") {
		return tpl, nil
	}
	return fmt.Sprintf(tpl, args...), nil
}

// Has reports whether key exists in the fallback locale.
func (c *Catalog) Has(key string) bool {
	_, ok := c.templates[fallbackLocale][key]
	return ok
}
