package conversion

import (
	"encoding/json"

	"texbridge/internal/logparse"
)

// Request is one conversion. Host and Port override the client defaults when set.
type Request struct {
	Literal  string
	Preamble string
	Host     string
	Port     int
}

// Result is the converted markup plus the daemon's parsed diagnostics.
type Result struct {
	Result   string             `json:"result"`
	Messages []logparse.Message `json:"messages"`
}

// Fatal reports whether any message has fatal severity.
func (r Result) Fatal() bool {
	return logparse.Count(r.Messages, logparse.SeverityFatal) > 0
}

// daemonResponse is the daemon's reply. Status is informational and its
// type varies between daemon versions, so it is kept undecoded.
type daemonResponse struct {
	Result string          `json:"result"`
	Log    string          `json:"log"`
	Status json.RawMessage `json:"status"`
}
