// Package lang maps the full language names used by clients to provider codes.
package lang

import (
	"sort"
	"strings"
)

const Default = "English"

// transcription hints accepted by the speech-to-text endpoint.
var transcriptionCodes = map[string]string{
	"English":   "en",
	"Hindi":     "hi",
	"Bengali":   "bn",
	"Tamil":     "ta",
	"Punjabi":   "pa",
	"Marathi":   "mr",
	"Gujarati":  "gu",
	"Kannada":   "kn",
	"Telugu":    "te",
	"Malayalam": "ml",
	"Odia":      "or",
	"Urdu":      "ur",
	"Maithili":  "mai",
}

// languages the speech synthesiser has voices for.
var speechCodes = map[string]string{
	"English":   "en",
	"Hindi":     "hi",
	"Bengali":   "bn",
	"Tamil":     "ta",
	"Telugu":    "te",
	"Marathi":   "mr",
	"Gujarati":  "gu",
	"Kannada":   "kn",
	"Malayalam": "ml",
	"Urdu":      "ur",
}

var speechLocales = map[string]string{
	"en": "en-IN",
	"hi": "hi-IN",
	"bn": "bn-IN",
	"ta": "ta-IN",
	"te": "te-IN",
	"mr": "mr-IN",
	"gu": "gu-IN",
	"kn": "kn-IN",
	"ml": "ml-IN",
	"ur": "ur-IN",
}

// TranscriptionCode returns the hint code for name, or false when the name is unknown.
// Lookup is exact, as in the client contract.
func TranscriptionCode(name string) (string, bool) {
	c, ok := transcriptionCodes[name]
	return c, ok
}

// SpeechCode returns the synthesiser code for name, "en" when unmapped.
func SpeechCode(name string) string {
	if c, ok := speechCodes[name]; ok {
		return c
	}
	return "en"
}

// SpeechLocale expands a short speech code to the locale used for voice selection.
func SpeechLocale(code string) string {
	if l, ok := speechLocales[code]; ok {
		return l
	}
	return "en-IN"
}

// Supported reports whether name has a speech voice. Matching ignores case and
// returns the canonical spelling.
func Supported(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for k := range speechCodes {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return "", false
}

// OrDefault returns name, or Default when name is blank.
func OrDefault(name string) string {
	if strings.TrimSpace(name) == "" {
		return Default
	}
	return name
}

// FromSpeechCode returns the language name for a two-letter code when the
// synthesiser supports it.
func FromSpeechCode(code string) (string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "", false
	}
	for name, c := range speechCodes {
		if c == code {
			return name, true
		}
	}
	return "", false
}

// Names lists the languages with a speech voice, sorted.
func Names() []string {
	out := make([]string, 0, len(speechCodes))
	for name := range speechCodes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
