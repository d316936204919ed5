// Package probe answers whether a TCP endpoint currently accepts connections.
//
// A probe never waits longer than the caller's budget: refused, unreachable,
// and slow endpoints all report closed.
package probe
