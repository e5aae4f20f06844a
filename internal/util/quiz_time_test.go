package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuizDuration(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"00:30", "0:30:00"},
		{"1:05", "1:05:00"},
		{"0:90", "1:30:00"},
		{"24:00", "1 day, 0:00:00"},
		{"49:15", "2 days, 1:15:00"},
		{" 02 : 10 ", "2:10:00"},
	}
	for _, tc := range cases {
		got, err := NormalizeQuizDuration(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestNormalizeQuizDurationRejectsMalformed(t *testing.T) {
	for _, in := range []string{"90", "", "1:2:3", "aa:bb", "-1:00", "01:-5", ":30"} {
		_, err := NormalizeQuizDuration(in)
		assert.ErrorIs(t, err, ErrInvalidQuizDuration, in)
	}
}

func TestParseQuizDate(t *testing.T) {
	got, err := ParseQuizDate("2024-05-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseQuizDate("2024-5-3")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Day())

	for _, in := range []string{"", "03/05/2024", "2024-13-01", "2024-02-30"} {
		_, err := ParseQuizDate(in)
		assert.ErrorIs(t, err, ErrInvalidQuizDate, in)
	}
}
