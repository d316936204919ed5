package logparse

// Known severities emitted by the daemon. The set is open: Message.Severity
// carries whatever the daemon reports.
const (
	SeverityFatal     = "fatal"
	SeverityError     = "error"
	SeverityWarning   = "warning"
	SeverityInfo      = "info"
	SeverityStatus    = "status"
	SeverityNoProblem = "no_problem"
)

// Message is one diagnostic entry. Line and Col are empty when the daemon did
// not report a position.
type Message struct {
	Severity string `json:"severity"`
	Category string `json:"category"`
	What     string `json:"what"`
	Details  string `json:"details"`
	Line     string `json:"line,omitempty"`
	Col      string `json:"col,omitempty"`
}

// HasPosition reports whether the message carries a line/column pair.
func (m Message) HasPosition() bool {
	return m.Line != ""
}

// Count returns how many messages carry the given severity.
func Count(messages []Message, severity string) int {
	n := 0
	for _, msg := range messages {
		if msg.Severity == severity {
			n++
		}
	}
	return n
}

// Filter returns the messages with the given severity, preserving order.
func Filter(messages []Message, severity string) []Message {
	var out []Message
	for _, msg := range messages {
		if msg.Severity == severity {
			out = append(out, msg)
		}
	}
	return out
}

// First returns the first message with the given severity.
func First(messages []Message, severity string) (Message, bool) {
	for _, msg := range messages {
		if msg.Severity == severity {
			return msg, true
		}
	}
	return Message{}, false
}
