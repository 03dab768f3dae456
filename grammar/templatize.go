package grammar

import (
	"fmt"
	"strings"
)

// Resolver converts one lowercased token (the text between a template's
// `[` and `]`, e.g. "one", "a thing", "s") into its substitution text.
type Resolver func(token string) (string, error)

// Templatize scans template for `[…]` tokens and replaces each with
// resolve's substitution, capitalizing the substitution's first letter
// when the token itself was capitalized (`[One]` vs `[one]`) so callers
// don't have to hand-capitalize sentence-initial tokens.
func Templatize(resolve Resolver, template string) (string, error) {
	var out strings.Builder
	rest := template
	for {
		start := strings.IndexByte(rest, '[')
		if start < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:start])
		rest = rest[start+1:]

		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", fmt.Errorf("grammar: unterminated token in %q", template)
		}
		token := rest[:end]
		rest = rest[end+1:]

		capitalize := isCapitalized(token)
		sub, err := resolve(strings.ToLower(token))
		if err != nil {
			return "", err
		}
		if capitalize && sub != "" {
			sub = strings.ToUpper(sub[:1]) + sub[1:]
		}
		out.WriteString(sub)
	}
	return out.String(), nil
}
