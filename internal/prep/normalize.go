//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package prep

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/e-gun/CourseNLPServer/internal/vv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

//
// TOKEN NORMALIZER
//

var (
	notaletter = regexp.MustCompile(`[^a-zа-я\s]`)
	shared     *Normalizer
	sharedonce sync.Once
	sharederr  error
)

// Options - extra stopword and lemma files; zero value = embedded stopwords and the golem dictionaries only
type Options struct {
	StopwordsFile string
	LemmataEN     string
	LemmataRU     string
	Fallback      bool // snowball stems for words the dictionaries do not know
}

// Reporter - progress callback: 'done' of 'total' lines have been processed
type Reporter func(done int, total int)

// Normalizer - stopword sets and one lemmatizer per script; read-only once built
type Normalizer struct {
	stops map[string]struct{}
	lemm  map[Script]Lemmatizer
}

// New - build a Normalizer; the embedded tables are always loaded, the files in Options are added to them
func New(o Options) (*Normalizer, error) {
	const (
		FAIL = "prep.New() could not load %s: %w"
	)

	stops, err := buildstopset(o.StopwordsFile)
	if err != nil {
		return nil, fmt.Errorf(FAIL, "stopwords", err)
	}

	var enfb, rufb Stemmer
	if o.Fallback {
		enfb = StemEnglish
		rufb = StemRussian
	}

	en, err := NewEnglishLemmatizer(o.LemmataEN, enfb)
	if err != nil {
		return nil, fmt.Errorf(FAIL, "english lemmata", err)
	}

	ru, err := NewRussianLemmatizer(o.LemmataRU, rufb)
	if err != nil {
		return nil, fmt.Errorf(FAIL, "russian lemmata", err)
	}

	n := &Normalizer{
		stops: stops,
		lemm: map[Script]Lemmatizer{
			ScriptLatin:    en,
			ScriptCyrillic: ru,
			ScriptMixed:    ru,
			ScriptOther:    ru,
		},
	}
	return n, nil
}

// Init - build the process-wide Normalizer; only the first call does any work
func Init(o Options) (*Normalizer, error) {
	sharedonce.Do(func() {
		shared, sharederr = New(o)
	})
	return shared, sharederr
}

// Default - the process-wide Normalizer; built with the zero Options if Init() was never called
func Default() *Normalizer {
	n, err := Init(Options{})
	if err != nil {
		// only the embedded tables are involved at this point
		panic(err)
	}
	return n
}

// IsStop - is this word on one of the stopword lists?
func (n *Normalizer) IsStop(word string) bool {
	_, ok := n.stops[word]
	return ok
}

// ProcessText - lowercase, restrict to latin + cyrillic letters, drop stopwords, lemmatize; len(out) == len(lines)
func (n *Normalizer) ProcessText(lines []string) []string {
	return n.ProcessWithProgress(lines, nil)
}

// ProcessWithProgress - ProcessText that calls 'rep' every so often; 'rep' may be nil
func (n *Normalizer) ProcessWithProgress(lines []string, rep Reporter) []string {
	// a Caser holds state and is not safe for concurrent use: one transformer per call
	t := preptransformer()

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = n.line(t, l)
		if rep != nil && ((i+1)%vv.PROGRESSEVERYNLINES == 0 || i+1 == len(lines)) {
			rep(i+1, len(lines))
		}
	}
	return out
}

// Line - ProcessText for a single string
func (n *Normalizer) Line(s string) string {
	return n.line(preptransformer(), s)
}

func (n *Normalizer) line(t transform.Transformer, s string) string {
	// [a] lowercase and fold
	s, _, err := transform.String(t, s)
	if err != nil {
		// the chain only fails on invalid input it cannot repair; fall back to the plain version
		s = strings.ToLower(s)
	}

	// [b] nothing but letters and whitespace
	s = notaletter.ReplaceAllString(s, "")

	// [c] per word: clean, filter, lemmatize, filter
	words := strings.Fields(s)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		w = CleanWord(w)
		if w == "" || n.IsStop(w) {
			continue
		}
		lm := n.lemm[Classify(w)].Lemma(w)
		if lm == "" || n.IsStop(lm) {
			continue
		}
		kept = append(kept, lm)
	}

	// [d] single spaces
	return strings.Join(kept, " ")
}

// preptransformer - NFC, lowercase, 'ё' as 'е', every unicode space as ' '
func preptransformer() transform.Transformer {
	fold := runes.Map(func(r rune) rune {
		switch {
		case r == 'ё':
			return 'е'
		case unicode.IsSpace(r):
			return ' '
		default:
			return r
		}
	})
	return transform.Chain(norm.NFC, cases.Lower(language.Russian), fold)
}
