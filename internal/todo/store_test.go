package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineBreakFor(t *testing.T) {
	assert.Equal(t, "\r\n", lineBreakFor("windows"))
	assert.Equal(t, "\n", lineBreakFor("linux"))
	assert.Equal(t, "\n", lineBreakFor("darwin"))
}
