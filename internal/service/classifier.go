package service

import (
	"tipbot/internal/core/domain"
	"tipbot/internal/lexicon"
)

// Classifier maps the first token of a command to an intent.
type Classifier struct {
	lx *lexicon.Lexicon
}

// NewClassifier creates a classifier over lx.
func NewClassifier(lx *lexicon.Lexicon) *Classifier {
	return &Classifier{lx: lx}
}

// Classify is case-insensitive and always accepts English words as well as
// the locale's own. Unknown words yield IntentUnrecognized.
func (c *Classifier) Classify(locale, word string) domain.Intent {
	if word == "" {
		return domain.IntentUnrecognized
	}
	if intent, ok := c.lx.Lookup(locale, word); ok {
		return intent
	}
	return domain.IntentUnrecognized
}
