package logparse

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	headerPattern   = regexp.MustCompile(`^([^ :]+):([^ :]+):([^ ]+)(\s(.+))?$`)
	positionPattern = regexp.MustCompile(`at Literal String(.*); line (\d+) col (\d+)`)
)

// Parse splits a daemon log into messages. It returns nil when content is
// blank, and a non-nil slice (possibly empty) otherwise.
func Parse(content string) []Message {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	// A Caser holds state, so each call gets its own.
	lower := cases.Lower(language.Und)

	messages := make([]Message, 0, 8)
	inDetails := false
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if inDetails {
			if strings.HasPrefix(line, "\t") {
				last := &messages[len(messages)-1]
				last.Details += "\n" + line
				if strings.TrimSpace(last.Line) == "" {
					if pos := positionPattern.FindStringSubmatch(line); pos != nil {
						last.Line = pos[2]
						last.Col = pos[3]
					}
				}
				continue
			}
			inDetails = false
		}

		match := headerPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		messages = append(messages, Message{
			Severity: lower.String(match[1]),
			Category: lower.String(match[2]),
			What:     lower.String(match[3]),
			Details:  lower.String(match[5]),
		})
		inDetails = true
	}
	return messages
}
