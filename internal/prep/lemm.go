//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package prep

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aaaton/golem/v4"
	golemen "github.com/aaaton/golem/v4/dicts/en"
	golemru "github.com/aaaton/golem/v4/dicts/ru"
	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/english"
	"github.com/blevesearch/snowballstem/russian"
)

//
// LEMMATIZERS
//

// Lemmatizer - word in, dictionary form out; unknown words come back untouched unless a fallback says otherwise
type Lemmatizer interface {
	Lemma(word string) string
}

// Stemmer - what a Lemmatizer does with a word it cannot find
type Stemmer func(word string) string

// StemEnglish - snowball "english"
func StemEnglish(word string) string {
	env := snowballstem.NewEnv(word)
	english.Stem(env)
	return env.Current()
}

// StemRussian - snowball "russian"
func StemRussian(word string) string {
	env := snowballstem.NewEnv(word)
	russian.Stem(env)
	return env.Current()
}

// DictLemmatizer - a golem dictionary followed to its fixed point; unknown words go to the fallback or pass through
type DictLemmatizer struct {
	dict     *golem.Lemmatizer
	fallback Stemmer
}

func (dl *DictLemmatizer) Lemma(word string) string {
	const (
		MAXHOPS = 8
	)

	if word == "" {
		return word
	}

	if !dl.dict.InDict(word) {
		if dl.fallback != nil {
			return dl.fallback(word)
		}
		return word
	}

	// a normal form can itself be listed as a form of another entry: "данных" → "данные" → ...
	for i := 0; i < MAXHOPS; i++ {
		next := dl.dict.LemmaLower(word)
		if next == word {
			break
		}
		word = next
	}
	return word
}

// foldedpack - a golem.LanguagePack rewritten for what the cleaner can produce: lowercase, 'ё' as 'е',
// and only words made of a-z or а-я; the 'extra' pairs are written first and so take precedence
type foldedpack struct {
	pack  golem.LanguagePack
	extra [][2]string
}

func (fp foldedpack) GetLocale() string {
	return fp.pack.GetLocale()
}

// GetResource - golem's "lemma<TAB>form<TAB>form..." lines
func (fp foldedpack) GetResource() ([]byte, error) {
	raw, err := fp.pack.GetResource()
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	b.Grow(len(raw))

	for _, p := range fp.extra {
		form, lemma := foldyo(strings.ToLower(p[0])), foldyo(strings.ToLower(p[1]))
		if !dictword(form) || !dictword(lemma) {
			continue
		}
		b.WriteString(lemma + "\t" + form + "\n")
	}

	for _, line := range strings.Split(string(raw), "\n") {
		fields := strings.Split(foldyo(strings.ToLower(line)), "\t")
		if !dictword(fields[0]) {
			continue
		}
		kept := []string{fields[0]}
		for _, f := range fields[1:] {
			if dictword(f) {
				kept = append(kept, f)
			}
		}
		if len(kept) == 1 {
			// golem wants at least two columns
			kept = append(kept, fields[0])
		}
		b.WriteString(strings.Join(kept, "\t"))
		b.WriteByte('\n')
	}

	return b.Bytes(), nil
}

func foldyo(s string) string {
	return strings.ReplaceAll(s, "ё", "е")
}

// dictword - a non-empty run of latin letters or of cyrillic letters
func dictword(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !islatin(r) && !iscyrillic(r) {
			return false
		}
	}
	return Classify(w) != ScriptMixed
}

func newdictlemmatizer(pack golem.LanguagePack, extra string, fallback Stemmer) (*DictLemmatizer, error) {
	fp := foldedpack{pack: pack}
	if extra != "" {
		pairs, err := readtablefile(extra)
		if err != nil {
			return nil, err
		}
		fp.extra = pairs
	}

	d, err := golem.New(fp)
	if err != nil {
		return nil, err
	}
	return &DictLemmatizer{dict: d, fallback: fallback}, nil
}

//
// TABLE LOADING
//

// readtable - "a<TAB>b" lines become pairs; single-column lines become (a, a); '#' lines are comments
func readtable(r io.Reader) ([][2]string, error) {
	var pairs [][2]string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		a := strings.TrimSpace(parts[0])
		b := a
		if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
			b = strings.TrimSpace(parts[1])
		}
		pairs = append(pairs, [2]string{a, b})
	}
	return pairs, sc.Err()
}

func readtablefile(fn string) ([][2]string, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf("open lemma table: %w", err)
	}
	defer f.Close()
	return readtable(f)
}

func readembeddedtable(fn string) [][2]string {
	f, err := efs.Open(fn)
	if err != nil {
		// the embedded files are part of the binary; this cannot happen
		panic(err)
	}
	defer f.Close()
	p, err := readtable(f)
	if err != nil {
		panic(err)
	}
	return p
}

// NewEnglishLemmatizer - golem's english dictionary plus an optional TSV of "form<TAB>lemma" lines
func NewEnglishLemmatizer(extra string, fallback Stemmer) (*DictLemmatizer, error) {
	return newdictlemmatizer(golemen.New(), extra, fallback)
}

// NewRussianLemmatizer - golem's russian dictionary plus an optional TSV of the same shape
func NewRussianLemmatizer(extra string, fallback Stemmer) (*DictLemmatizer, error) {
	return newdictlemmatizer(golemru.New(), extra, fallback)
}
