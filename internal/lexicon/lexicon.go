// Package lexicon holds the locale-aware command vocabulary.
package lexicon

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"tipbot/internal/core/domain"
)

// DefaultLocale is the locale every lookup falls back to.
const DefaultLocale = "en"

//go:embed commands.yaml
var defaultCommands []byte

type file struct {
	Languages map[string]string                     `yaml:"languages"`
	Global    map[string][]string                   `yaml:"global"`
	Commands  map[string]map[domain.Intent][]string `yaml:"commands"`
}

// Lexicon maps command words to intents. It is immutable after Load and safe
// for concurrent use.
type Lexicon struct {
	words     map[string]map[string]domain.Intent // locale -> word -> intent
	global    map[string]domain.Intent
	tipWord   map[string]string
	anyTip    map[string]bool
	languages map[string]string // name -> locale code
}

// Default returns the lexicon compiled into the binary.
func Default() *Lexicon {
	lx, err := Load(defaultCommands)
	if err != nil {
		panic(fmt.Sprintf("lexicon: embedded commands.yaml: %v", err))
	}
	return lx
}

// Load parses a commands YAML document.
func Load(data []byte) (*Lexicon, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing lexicon: %w", err)
	}
	if _, ok := f.Commands[DefaultLocale]; !ok {
		return nil, fmt.Errorf("lexicon has no %q commands", DefaultLocale)
	}

	lx := &Lexicon{
		words:     make(map[string]map[string]domain.Intent, len(f.Commands)),
		global:    make(map[string]domain.Intent),
		tipWord:   make(map[string]string, len(f.Commands)),
		anyTip:    make(map[string]bool),
		languages: make(map[string]string, len(f.Languages)),
	}

	for locale, intents := range f.Commands {
		locale = strings.ToLower(locale)
		m := make(map[string]domain.Intent)
		for intent, words := range intents {
			for _, w := range words {
				m[strings.ToLower(w)] = intent
				if intent == domain.IntentTip {
					lx.anyTip[strings.ToLower(w)] = true
				}
			}
			if intent == domain.IntentTip && len(words) > 0 {
				lx.tipWord[locale] = words[0]
			}
		}
		lx.words[locale] = m
	}

	for key, words := range f.Global {
		var intent domain.Intent
		switch key {
		case "language":
			intent = domain.IntentSetLanguage
		case "languages":
			intent = domain.IntentListLanguages
		default:
			return nil, fmt.Errorf("unknown global command group %q", key)
		}
		for _, w := range words {
			lx.global[strings.ToLower(w)] = intent
		}
	}

	for name, code := range f.Languages {
		lx.languages[strings.ToLower(name)] = code
	}

	return lx, nil
}

// Lookup finds the intent for word in locale. The locale's own words win over
// the English fallback.
func (lx *Lexicon) Lookup(locale, word string) (domain.Intent, bool) {
	word = strings.ToLower(word)
	if intent, ok := lx.global[word]; ok {
		return intent, true
	}
	if m, ok := lx.words[strings.ToLower(locale)]; ok {
		if intent, ok := m[word]; ok {
			return intent, true
		}
	}
	intent, ok := lx.words[DefaultLocale][word]
	return intent, ok
}

// IsTipWord reports whether word starts a public tip in locale.
func (lx *Lexicon) IsTipWord(locale, word string) bool {
	intent, ok := lx.Lookup(locale, word)
	return ok && intent == domain.IntentTip
}

// TipIndex returns the position of the first token that is a public tip word
// in any locale, or -1. Group messages are scanned before the sender's
// language is known.
func (lx *Lexicon) TipIndex(tokens []string) int {
	for i, tok := range tokens {
		if lx.anyTip[strings.ToLower(tok)] {
			return i
		}
	}
	return -1
}

// TipWord is the tip command shown to users of locale.
func (lx *Lexicon) TipWord(locale string) string {
	if w, ok := lx.tipWord[strings.ToLower(locale)]; ok {
		return w
	}
	return lx.tipWord[DefaultLocale]
}

// LanguageCode resolves a language name such as "chinese simplified".
func (lx *Lexicon) LanguageCode(name string) (string, bool) {
	code, ok := lx.languages[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// Languages lists the known language names in sorted order.
func (lx *Lexicon) Languages() []string {
	names := make([]string, 0, len(lx.languages))
	for name := range lx.languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
