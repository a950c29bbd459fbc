package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateShortCode(t *testing.T) {
	length := 8
	code := GenerateShortCode(length)

	assert.Equal(t, length, len(code))

	// Ensure only charset characters are used
	for _, char := range code {
		assert.True(t, strings.Contains(charset, string(char)))
	}
}

func TestNewID(t *testing.T) {
	id := NewID("link")

	assert.True(t, strings.HasPrefix(id, "link_"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "link_"))
	assert.NoError(t, err)
}
