package logparse

import "strings"

// Format renders messages in the daemon log grammar. Details that span several
// lines are written as the header detail followed by their continuation lines.
func Format(messages []Message) string {
	var b strings.Builder
	for _, msg := range messages {
		head, rest, _ := strings.Cut(msg.Details, "\n")
		b.WriteString(msg.Severity)
		b.WriteByte(':')
		b.WriteString(msg.Category)
		b.WriteByte(':')
		b.WriteString(msg.What)
		if head != "" {
			b.WriteByte(' ')
			b.WriteString(head)
		}
		b.WriteByte('\n')
		if rest != "" {
			b.WriteString(rest)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
