package authservice

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var parser = newParser()

func newParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseWhen parses an RFC 3339 timestamp or a natural expression such as
// "tomorrow 9am" or "in 2 hours" relative to base. Empty input means base.
func ParseWhen(input string, base time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return base, nil
	}
	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t.In(base.Location()), nil
	}

	r, err := parser.Parse(strings.ToLower(input), base)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %w", ErrInvalidPreviewTime, input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidPreviewTime, input)
	}
	return r.Time, nil
}
