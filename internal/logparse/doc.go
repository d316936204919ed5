// Package logparse turns the conversion daemon's diagnostic log into
// structured messages.
//
// The log is line oriented. A header line has the shape
// "severity:category:what details" and may be followed by tab-indented
// continuation lines that belong to the same message. Continuation lines
// that point into the submitted literal ("at Literal String ...; line N col M")
// supply the message position. Lines that fit neither shape are noise and are
// dropped.
//
// Parse is pure and safe for concurrent use. Format writes messages back in
// the same grammar, so Parse(Format(msgs)) reproduces well-formed input.
package logparse
