package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 10, ParseInt("", 10))
	assert.Equal(t, 10, ParseInt("abc", 10))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
	assert.Equal(t, 42, ParseInt("42", 10))
}

func TestGenerateOrderCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{8}-\d{6}-\d{4}$`)

	for i := 0; i < 50; i++ {
		code := GenerateOrderCode()
		assert.Regexp(t, pattern, code)
	}
}
