// internal/models/common_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+5", FormatChange(5))
	assert.Equal(t, "-3", FormatChange(-3))
	assert.Equal(t, "+0", FormatChange(0))
	assert.Equal(t, "+120", FormatChange(120))
}
