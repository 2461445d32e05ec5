package input

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

var (
	_ ports.InputSource = Text("")
	_ ports.InputSource = (*Reader)(nil)
)

// Parse splits raw on commas and keeps every token that starts with an integer.
// A token is read like "  -12abc" → -12: surrounding space, an optional sign and
// the leading digits; anything after them is ignored. Tokens without leading
// digits, or too large for an int, are dropped.
func Parse(raw string) ([]int, error) {
	clean, err := Sanitize(raw)
	if err != nil {
		return nil, err
	}

	var values []int
	for _, token := range strings.Split(clean, ",") {
		if v, ok := leadingInt(token); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, domain.ErrEmptyInput
	}
	return values, nil
}

func leadingInt(token string) (int, bool) {
	s := strings.TrimSpace(token)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

// Text is an InputSource over a literal string such as "50, 30, 70".
type Text string

// ReadIntegers parses the text.
func (t Text) ReadIntegers() ([]int, error) {
	return Parse(string(t))
}

// Reader is an InputSource that consumes r once, up to the input size limit.
type Reader struct {
	r io.Reader
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadIntegers reads r to the end and parses it. Newlines count as separators.
func (rd *Reader) ReadIntegers() ([]int, error) {
	limit := int64(maxInputSize())
	data, err := io.ReadAll(io.LimitReader(rd.r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit=%d", ErrInputTooLarge, limit)
	}

	raw := strings.NewReplacer("\r\n", ",", "\n", ",").Replace(string(data))
	return Parse(raw)
}
