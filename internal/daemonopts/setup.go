package daemonopts

import (
	"net/url"
	"strconv"
	"strings"
)

// Option is a single daemon option. Flag options carry no value.
type Option struct {
	Key   string
	Value string
	Flag  bool
}

// Value builds a keyed option.
func Value(key, value string) Option {
	return Option{Key: key, Value: value}
}

// Int builds a keyed option with a decimal value.
func Int(key string, value int) Option {
	return Option{Key: key, Value: strconv.Itoa(value)}
}

// Flag builds a bare flag option.
func Flag(key string) Option {
	return Option{Key: key, Flag: true}
}

// Parse reads "key=value" or "key" into an Option.
func Parse(raw string) (Option, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Option{}, false
	}
	key, value, hasValue := strings.Cut(raw, "=")
	key = strings.TrimSpace(strings.TrimLeft(key, "-"))
	if key == "" {
		return Option{}, false
	}
	if !hasValue {
		return Flag(key), true
	}
	return Value(key, strings.TrimSpace(value)), true
}

// Token renders the option for a form-encoded request body.
func (o Option) Token() string {
	if o.Flag {
		return o.Key
	}
	return o.Key + "=" + url.QueryEscape(o.Value)
}

// Args renders the option as daemon command-line arguments.
func (o Option) Args() []string {
	if o.Flag {
		return []string{"--" + o.Key}
	}
	return []string{"--" + o.Key, o.Value}
}

// Setup is an ordered, immutable sequence of options.
type Setup struct {
	options []Option
}

// New builds a Setup from opts, copying the slice.
func New(opts ...Option) Setup {
	cp := make([]Option, len(opts))
	copy(cp, opts)
	return Setup{options: cp}
}

// With returns a new Setup with opts appended. The receiver is unchanged.
func (s Setup) With(opts ...Option) Setup {
	cp := make([]Option, 0, len(s.options)+len(opts))
	cp = append(cp, s.options...)
	cp = append(cp, opts...)
	return Setup{options: cp}
}

// Len returns the number of options.
func (s Setup) Len() int {
	return len(s.options)
}

// Options returns a copy of the option list.
func (s Setup) Options() []Option {
	cp := make([]Option, len(s.options))
	copy(cp, s.options)
	return cp
}

// Lookup returns the last value recorded for key, mirroring daemon override
// semantics.
func (s Setup) Lookup(key string) (Option, bool) {
	for i := len(s.options) - 1; i >= 0; i-- {
		if s.options[i].Key == key {
			return s.options[i], true
		}
	}
	return Option{}, false
}

// Tokens renders every option in order for a request body.
func (s Setup) Tokens() []string {
	tokens := make([]string, 0, len(s.options))
	for _, opt := range s.options {
		tokens = append(tokens, opt.Token())
	}
	return tokens
}

// Args renders every option in order as command-line arguments.
func (s Setup) Args() []string {
	args := make([]string, 0, len(s.options)*2)
	for _, opt := range s.options {
		args = append(args, opt.Args()...)
	}
	return args
}
