package testsupport

import (
	"net/url"
	"strings"
)

// parseForm decodes the first value of each key in a form body.
func parseForm(body string) (map[string]string, error) {
	values := make(map[string]string)
	for _, part := range strings.Split(body, "&") {
		key, raw, _ := strings.Cut(part, "=")
		if key == "" {
			continue
		}
		if _, seen := values[key]; seen {
			continue
		}
		value, err := url.QueryUnescape(raw)
		if err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, nil
}

// FormValue returns the first value recorded for key in a form body.
func FormValue(body, key string) string {
	values, err := parseForm(body)
	if err != nil {
		return ""
	}
	return values[key]
}
