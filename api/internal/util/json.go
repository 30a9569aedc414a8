package util

import (
	"strings"
)

// ExtractJSONObject pulls the outermost {...} block out of a model reply.
// Models sometimes wrap the object in prose even when asked not to.
func ExtractJSONObject(s string) string {
	s = StripCodeFences(s)
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return s
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end <= start {
		return s
	}
	return s[start : end+1]
}
