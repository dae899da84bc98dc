package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGZipRoundTrip(t *testing.T) {
	codec := GZip{}

	original := []byte("meeting minutes payload")
	encoded, err := codec.Encode(original)
	assert.NoError(t, err)
	assert.NotEqual(t, original, encoded)

	decoded, err := codec.Decode(encoded)
	assert.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestForName(t *testing.T) {
	assert.IsType(t, GZip{}, ForName("gzip"))
	assert.IsType(t, Nop{}, ForName("none"))
	assert.IsType(t, Nop{}, ForName(""))
}
