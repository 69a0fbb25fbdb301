//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package prep

import (
	"embed"
	"fmt"

	"github.com/e-gun/CourseNLPServer/internal/gen"
)

//go:embed efs
var efs embed.FS

//
// STOPWORDS
//

const (
	STOPSRU = "efs/stopwords-ru.txt"
	STOPSEN = "efs/stopwords-en.txt"
)

// RussianStops - the russian list as shipped
func RussianStops() []string {
	return tablekeys(readembeddedtable(STOPSRU))
}

// EnglishStops - the english list as shipped
func EnglishStops() []string {
	return tablekeys(readembeddedtable(STOPSEN))
}

func tablekeys(pairs [][2]string) []string {
	kk := make([]string, len(pairs))
	for i, p := range pairs {
		kk[i] = p[0]
	}
	return kk
}

// buildstopset - russian + english + whatever the optional file adds
func buildstopset(extra string) (map[string]struct{}, error) {
	stops := append(RussianStops(), EnglishStops()...)

	if extra != "" {
		pairs, err := readtablefile(extra)
		if err != nil {
			return nil, fmt.Errorf("stopwords: %w", err)
		}
		stops = append(stops, tablekeys(pairs)...)
	}

	return gen.ToSet(stops), nil
}
