package input_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/adapters/input"
	"github.com/aretw0/arbor/pkg/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int
	}{
		{"Plain", "50,30,70", []int{50, 30, 70}},
		{"Spaces", " 50 , 30 ,70 ", []int{50, 30, 70}},
		{"Signs", "-5,+4,0", []int{-5, 4, 0}},
		{"Trailing junk", "12abc, 3.7, 8px", []int{12, 3, 8}},
		{"Dropped tokens", "a, 1, , --2, -, 3", []int{1, 3}},
		{"Duplicates kept", "5,5,5", []int{5, 5, 5}},
		{"Overflow dropped", "99999999999999999999999, 1", []int{1}},
		{"Control chars", "1\x00,2\x1b", []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := input.Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "abc, def", ",,,"} {
		_, err := input.Parse(raw)
		assert.ErrorIs(t, err, domain.ErrEmptyInput, "input %q", raw)
	}
}

func TestParse_Rejects(t *testing.T) {
	_, err := input.Parse(strings.Repeat("1,", input.DefaultMaxInputSize))
	assert.ErrorIs(t, err, input.ErrInputTooLarge)

	_, err = input.Parse("1,\xff")
	assert.ErrorIs(t, err, input.ErrInvalidUTF8)
}

func TestSanitize_EnvLimit(t *testing.T) {
	t.Setenv(input.EnvMaxInputSize, "4")

	_, err := input.Sanitize("1,2,3")
	assert.ErrorIs(t, err, input.ErrInputTooLarge)

	got, err := input.Sanitize("1,2\a")
	require.NoError(t, err)
	assert.Equal(t, "1,2", got)
}

func TestSources(t *testing.T) {
	values, err := input.Text("3, 1, 2").ReadIntegers()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, values)

	values, err = input.NewReader(strings.NewReader("3\n1, 2\r\n4\n")).ReadIntegers()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2, 4}, values)

	_, err = input.NewReader(strings.NewReader(strings.Repeat("7", input.DefaultMaxInputSize+1))).ReadIntegers()
	assert.ErrorIs(t, err, input.ErrInputTooLarge)
}

func TestCheckCount(t *testing.T) {
	assert.NoError(t, input.CheckCount(input.DefaultMaxInputSize/2))
	assert.ErrorIs(t, input.CheckCount(input.DefaultMaxInputSize/2+1), input.ErrInputTooLarge)

	t.Setenv(input.EnvMaxInputSize, "8")
	assert.NoError(t, input.CheckCount(4))
	assert.ErrorIs(t, input.CheckCount(5), input.ErrInputTooLarge)
}
