package tuitest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	in := "\x1b[1mbold\x1b[0m   \n\x1b[31mred\x1b[0m\n\n"
	assert.Equal(t, "bold\nred", StripANSI(in))
}
