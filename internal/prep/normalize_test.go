//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package prep

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplelines = []string{
	"Курсы по программированию на Python для начинающих!",
	"Обучение анализу данных: 12 уроков, 3 проекта.",
	"The children learn data analysis in these lessons.",
	"Вebинар и pythonкурс",
	"",
	"и в по для the and",
	"   \t  ",
	"Ёлка — 2024 год; «кавычки» и (скобки) ... !!!",
	"Data-driven COURSES, Lessons & Quizzes",
}

func TestProcessTextShape(t *testing.T) {
	n := Default()
	out := n.ProcessText(samplelines)
	require.Len(t, out, len(samplelines))

	valid := regexp.MustCompile(`^([a-zа-я]+( [a-zа-я]+)*)?$`)
	for i, o := range out {
		assert.Truef(t, valid.MatchString(o), "line %d: %q", i, o)
	}
}

func TestProcessTextDoesNotMutateInput(t *testing.T) {
	in := []string{"Курсы Python"}
	_ = Default().ProcessText(in)
	assert.Equal(t, "Курсы Python", in[0])
}

func TestProcessTextEdgeCases(t *testing.T) {
	n := Default()
	out := n.ProcessText([]string{"", "и в по для the and", "!!! 123 ..."})
	assert.Equal(t, []string{"", "", ""}, out)
}

func TestProcessTextNoStopwords(t *testing.T) {
	n := Default()
	out := n.ProcessText(samplelines)
	for _, o := range out {
		for _, w := range strings.Fields(o) {
			assert.Falsef(t, n.IsStop(w), "stopword %q survived in %q", w, o)
		}
	}
}

func TestProcessTextLemmata(t *testing.T) {
	n := Default()
	assert.Equal(t, "курс python", n.Line("Курсы по Python"))
	assert.Equal(t, "обучение данные", n.Line("обучения данных"))
	assert.Equal(t, "child course lesson", n.Line("children, courses and lessons"))
	assert.Equal(t, "child learn datum analysis lesson", n.Line("The children learn data analysis in these lessons."))
}

func TestProcessTextLemmataBeyondCourseWords(t *testing.T) {
	n := Default()
	assert.Equal(t, "ученик выполнять домашний задание", n.Line("Ученики выполняют домашние задания"))
	assert.Equal(t, "студент понравиться лекция", n.Line("студентам понравились лекции"))
	assert.Equal(t, "teacher teach student", n.Line("teachers taught students"))
}

func TestProcessTextFoldsYo(t *testing.T) {
	n := Default()
	assert.Equal(t, "елка", n.Line("Ёлка"))
	assert.Equal(t, "елка", n.Line("ёлки"))
}

func TestProcessTextMixedScript(t *testing.T) {
	n := Default()
	// latin letters are dropped from words that also carry cyrillic
	assert.Equal(t, "курс", n.Line("pythonкурсы"))
	// a cyrillic word with a latin homoglyph loses the homoglyph
	assert.NotContains(t, n.Line("Вebинар"), "e")
}

func TestProcessTextStabilizes(t *testing.T) {
	n := Default()
	once := n.ProcessText(samplelines)
	twice := n.ProcessText(once)
	thrice := n.ProcessText(twice)
	assert.Equal(t, twice, thrice)
}

func TestProcessWithProgress(t *testing.T) {
	n := Default()
	lines := make([]string, 600)
	for i := range lines {
		lines[i] = "курсы"
	}

	var calls [][2]int
	out := n.ProcessWithProgress(lines, func(done int, total int) {
		calls = append(calls, [2]int{done, total})
	})
	require.Len(t, out, 600)
	assert.Equal(t, [][2]int{{250, 600}, {500, 600}, {600, 600}}, calls)
}

func TestNewWithExtraFiles(t *testing.T) {
	dir := t.TempDir()
	sw := filepath.Join(dir, "stops.txt")
	ru := filepath.Join(dir, "ru.tsv")
	require.NoError(t, os.WriteFile(sw, []byte("курс\n"), 0644))
	require.NoError(t, os.WriteFile(ru, []byte("вебинары\tвебинар\n"), 0644))

	n, err := New(Options{StopwordsFile: sw, LemmataRU: ru})
	require.NoError(t, err)
	assert.Equal(t, "вебинар", n.Line("курсы и вебинары"))
}

func TestNewMissingFile(t *testing.T) {
	_, err := New(Options{StopwordsFile: filepath.Join(t.TempDir(), "nope.txt")})
	assert.Error(t, err)
}

func TestNewWithFallback(t *testing.T) {
	n, err := New(Options{Fallback: true})
	require.NoError(t, err)
	// unknown to the dictionaries, so snowball gets a turn
	assert.Equal(t, StemEnglish("zorbings"), n.Line("zorbings"))
	assert.Equal(t, "zorbings", Default().Line("zorbings"))
	assert.Equal(t, StemRussian("зорбинги"), n.Line("зорбинги"))
	// known words never reach the stemmer
	assert.Equal(t, "walk", n.Line("walking"))
}
