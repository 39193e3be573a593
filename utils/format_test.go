package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompact(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1500, "1.50K"},
		{2_150_000, "2.15M"},
		{7_430_000_000, "7.43B"},
		{1_230_000_000_000, "1.23T"},
		{-2_000_000, "-2.00M"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Compact(c.in), "Compact(%v)", c.in)
	}
}

func TestINR(t *testing.T) {
	assert.Equal(t, "₹1.23T", INR(1_230_000_000_000))
}

func TestComma(t *testing.T) {
	assert.Equal(t, "999", Comma(999))
	assert.Equal(t, "1,000", Comma(1000))
	assert.Equal(t, "12,345,678", Comma(12345678))
	assert.Equal(t, "-1,234", Comma(-1234))
}
