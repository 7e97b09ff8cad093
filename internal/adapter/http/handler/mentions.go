package handler

import "strings"

// mentionNames returns the @names that follow the amount of a tip command,
// in order and without the @ or trailing punctuation. tokens[0] is the tip
// word and tokens[1] the amount.
func mentionNames(tokens []string) []string {
	if len(tokens) < 3 {
		return nil
	}
	var names []string
	for _, tok := range tokens[2:] {
		if !strings.HasPrefix(tok, "@") {
			continue
		}
		name := strings.TrimRight(strings.TrimPrefix(tok, "@"), ".,!?;:)")
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
