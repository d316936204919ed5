// Package conversion submits markup to the conversion daemon and returns the
// converted output with parsed diagnostics.
//
// Client.Convert makes sure the daemon is up, posts a form-encoded body built
// from the source text and the ordered daemon options, and retries transport
// failures while the daemon restarts itself, all under one deadline of
// preload plus conversion time. Unavailability degrades into the canned
// ServerUnreachable and ConnectionReset results rather than errors.
package conversion
