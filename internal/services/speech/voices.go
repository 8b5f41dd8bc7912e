// File: internal/services/speech/voices.go
package speech

import "strings"

// SelectLocalVoice picks the most deep/male/authoritative voice the local
// engine offers: named preferred voices first, then any voice whose name
// suggests a male English voice, then any English voice, then the engine's
// default, then whatever comes first.
func SelectLocalVoice(voices []Voice, preferred []string) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}

	for _, name := range preferred {
		for _, v := range voices {
			if v.Name == name {
				return v, true
			}
		}
	}

	for _, v := range voices {
		if isEnglish(v) && strings.Contains(strings.ToLower(v.Name), "male") &&
			!strings.Contains(strings.ToLower(v.Name), "female") {
			return v, true
		}
	}

	for _, v := range voices {
		if isEnglish(v) {
			return v, true
		}
	}

	for _, v := range voices {
		if v.Default {
			return v, true
		}
	}

	return voices[0], true
}

func isEnglish(v Voice) bool {
	return strings.HasPrefix(strings.ToLower(v.Lang), "en")
}
