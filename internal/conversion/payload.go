package conversion

import (
	"fmt"
	"net/url"
	"strings"

	"texbridge/internal/daemonopts"
)

// BuildPayload renders the form body: the escaped source, the optional
// preamble, then every setup option in order.
func BuildPayload(literal, preamble string, setup daemonopts.Setup) string {
	tokens := make([]string, 0, setup.Len()+2)
	tokens = append(tokens, "source="+url.QueryEscape("literal:"+literal))
	if strings.TrimSpace(preamble) != "" {
		tokens = append(tokens, "preamble="+url.QueryEscape(preamble))
	}
	tokens = append(tokens, setup.Tokens()...)
	return strings.Join(tokens, "&")
}

// ParsePayload splits a form body back into ordered options with unescaped
// values. Tokens without "=" become flags.
func ParsePayload(body string) ([]daemonopts.Option, error) {
	if body == "" {
		return nil, nil
	}
	parts := strings.Split(body, "&")
	opts := make([]daemonopts.Option, 0, len(parts))
	for _, part := range parts {
		key, raw, hasValue := strings.Cut(part, "=")
		if key == "" {
			return nil, fmt.Errorf("payload token %q: empty key", part)
		}
		if !hasValue {
			opts = append(opts, daemonopts.Flag(key))
			continue
		}
		value, err := url.QueryUnescape(raw)
		if err != nil {
			return nil, fmt.Errorf("payload token %q: %w", part, err)
		}
		opts = append(opts, daemonopts.Value(key, value))
	}
	return opts, nil
}
