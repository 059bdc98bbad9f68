package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****", MaskSecret(""))
	assert.Equal(t, "****", MaskSecret("TEST-short"))
	assert.Equal(t, "TEST...wxyz", MaskSecret("TEST-1234567890-abcdefwxyz"))
}
