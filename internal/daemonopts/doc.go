// Package daemonopts models the ordered option list handed to the conversion
// daemon, both on its command line at launch and in every request body.
//
// Order and duplicates matter: the daemon applies options in sequence, so a
// later entry overrides an earlier one and each preload is loaded in turn.
// A Setup is immutable; With returns an extended copy.
package daemonopts
