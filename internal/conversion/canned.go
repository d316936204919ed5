package conversion

import "texbridge/internal/logparse"

const (
	unreachableDetails = "The LaTeXML server was unreachable at this time"
	daemonCategory     = "latexmls"
)

// ServerUnreachable is returned when the daemon could not be brought up
// before the first send.
func ServerUnreachable() Result {
	return fatalResult("server unreachable")
}

// ConnectionReset is returned when sends kept failing until the conversion
// deadline, or the daemon vanished mid-conversion.
func ConnectionReset() Result {
	return fatalResult("connection reset")
}

// EmptyInput is returned for blank input without contacting the daemon.
func EmptyInput() Result {
	return Result{
		Messages: []logparse.Message{{Severity: logparse.SeverityNoProblem}},
	}
}

func fatalResult(what string) Result {
	return Result{
		Messages: []logparse.Message{{
			Severity: logparse.SeverityFatal,
			Category: daemonCategory,
			What:     what,
			Details:  unreachableDetails,
		}},
	}
}
