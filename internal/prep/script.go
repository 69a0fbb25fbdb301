//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package prep

import (
	"strings"
)

//
// SCRIPT CLASSIFICATION
//

// Script - the closed set of classifications a cleaned word can receive
type Script int

const (
	ScriptOther Script = iota
	ScriptLatin
	ScriptCyrillic
	ScriptMixed
)

func (s Script) String() string {
	switch s {
	case ScriptLatin:
		return "latin"
	case ScriptCyrillic:
		return "cyrillic"
	case ScriptMixed:
		return "mixed"
	default:
		return "other"
	}
}

func islatin(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func iscyrillic(r rune) bool {
	return r >= 'а' && r <= 'я'
}

// Classify - which alphabet(s) does a lowercased word use?
func Classify(word string) Script {
	var lat, cyr bool
	for _, r := range word {
		switch {
		case islatin(r):
			lat = true
		case iscyrillic(r):
			cyr = true
		}
		if lat && cyr {
			return ScriptMixed
		}
	}

	switch {
	case lat:
		return ScriptLatin
	case cyr:
		return ScriptCyrillic
	default:
		return ScriptOther
	}
}

// CleanWord - a mixed word loses its latin letters
func CleanWord(word string) string {
	// a heuristic and not a language detector: "вebинар" (latin e and b) comes out as "винар"
	// but "pythonразработчик" also comes out as "разработчик"
	if Classify(word) != ScriptMixed {
		return word
	}
	return strings.Map(func(r rune) rune {
		if islatin(r) {
			return -1
		}
		return r
	}, word)
}
