package input

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB, far more than any tree worth animating.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default.
	EnvMaxInputSize = "ARBOR_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Sanitize enforces the size limit, validates UTF-8 and strips control
// characters other than newline, tab and carriage return.
func Sanitize(raw string) (string, error) {
	limit := maxInputSize()
	if len(raw) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(raw), limit)
	}

	if !utf8.ValidString(raw) {
		return "", ErrInvalidUTF8
	}

	if strings.IndexFunc(raw, unsafeControl) < 0 {
		return raw, nil
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if !unsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// CheckCount rejects value lists longer than the input size limit allows.
// Every value takes at least a digit and a separator, so the cap is half the limit.
func CheckCount(n int) error {
	if limit := maxInputSize() / 2; n > limit {
		return fmt.Errorf("%w: values=%d limit=%d", ErrInputTooLarge, n, limit)
	}
	return nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
