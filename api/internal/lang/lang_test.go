package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptionCode(t *testing.T) {
	c, ok := TranscriptionCode("Maithili")
	assert.True(t, ok)
	assert.Equal(t, "mai", c)

	_, ok = TranscriptionCode("hindi")
	assert.False(t, ok)

	_, ok = TranscriptionCode("")
	assert.False(t, ok)
	assert.Len(t, transcriptionCodes, 13)
}

func TestSpeechCode(t *testing.T) {
	assert.Equal(t, "hi", SpeechCode("Hindi"))
	assert.Equal(t, "en", SpeechCode("Odia"))
	assert.Equal(t, "en", SpeechCode(""))
	assert.Equal(t, "hi-IN", SpeechLocale("hi"))
	assert.Equal(t, "en-IN", SpeechLocale("xx"))
}

func TestSupported(t *testing.T) {
	n, ok := Supported(" tamil ")
	assert.True(t, ok)
	assert.Equal(t, "Tamil", n)

	_, ok = Supported("Klingon")
	assert.False(t, ok)
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "English", OrDefault("  "))
	assert.Equal(t, "Hindi", OrDefault("Hindi"))
}

func TestFromSpeechCode(t *testing.T) {
	name, ok := FromSpeechCode("HI")
	require.True(t, ok)
	assert.Equal(t, "Hindi", name)

	_, ok = FromSpeechCode("pa")
	assert.False(t, ok)
	_, ok = FromSpeechCode("")
	assert.False(t, ok)
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	assert.Len(t, names, 10)
	assert.Equal(t, "Bengali", names[0])
	assert.Contains(t, names, "English")
}
