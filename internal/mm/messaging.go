//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

//
// TERMINAL OUTPUT/MESSAGES
//

const (
	MSGMAND              = -1
	MSGCRIT              = 0
	MSGWARN              = 1
	MSGNOTE              = 2
	MSGFYI               = 3
	MSGPEEK              = 4
	MSGTMI               = 5
	TIMETRACKERMSGTHRESH = MSGPEEK
	RESET                = "\033[0m"
	BLUE1                = "\033[38;5;38m"  // DeepSkyBlue2
	CYAN2                = "\033[38;5;117m" // SkyBlue1
	GREEN                = "\033[38;5;70m"  // Chartreuse3
	RED1                 = "\033[38;5;160m" // Red3
	YELLOW1              = "\033[38;5;178m" // Gold3
	GREY3                = "\033[38;5;242m" // Grey42
	BLINK                = "\033[30;0;5m"
	FORMATJSON           = "json"
)

// MessageMaker - leveled messages; the threshold decides what is shown, zerolog decides how it looks
type MessageMaker struct {
	Lnc  time.Time
	BW   bool
	Fmt  string
	LLvl int
	LNm  string
	SNm  string
	Ver  string
	Win  bool
	Out  io.Writer
	log  zerolog.Logger
	mtx  sync.RWMutex
}

// NewMessageMaker - a MessageMaker that writes to stdout
func NewMessageMaker(longname string, shortname string, version string) *MessageMaker {
	m := &MessageMaker{
		Lnc:  time.Now(),
		LNm:  longname,
		SNm:  shortname,
		Ver:  version,
		Win:  runtime.GOOS == "windows",
		Out:  os.Stdout,
		LLvl: 0,
	}
	m.Rebuild()
	return m
}

// Rebuild - refresh the underlying logger after the exported fields have been changed
func (m *MessageMaker) Rebuild() {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	out := m.Out
	if out == nil {
		out = os.Stdout
	}

	if m.Fmt == FORMATJSON {
		m.log = zerolog.New(out).With().Timestamp().Str("app", m.SNm).Logger()
		return
	}

	cw := zerolog.ConsoleWriter{
		Out:           out,
		NoColor:       m.BW || m.Win,
		TimeFormat:    time.TimeOnly,
		PartsOrder:    []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, zerolog.MessageFieldName},
		FieldsExclude: []string{"lvl"},
	}

	sn := m.SNm
	nocolor := cw.NoColor
	cw.FormatLevel = func(i interface{}) string {
		if nocolor {
			return fmt.Sprintf("[%s]", sn)
		}
		return fmt.Sprintf("[%s%s%s]", YELLOW1, sn, RESET)
	}

	m.log = zerolog.New(cw).With().Timestamp().Logger()
}

// Emit - send a message to the log if the threshold allows it
func (m *MessageMaker) Emit(message string, threshold int) {
	// sample output: "10:15:02 [CNS] RtTopics() fitted 20 topics"

	m.mtx.RLock()
	defer m.mtx.RUnlock()

	if m.LLvl < threshold {
		return
	}

	var ev *zerolog.Event
	switch threshold {
	case MSGMAND, MSGNOTE, MSGFYI:
		ev = m.log.Info()
	case MSGCRIT:
		ev = m.log.Error()
	case MSGWARN:
		ev = m.log.Warn()
	default:
		// zerolog's global level hides Trace() unless told otherwise; PEEK and TMI are both "debug"
		ev = m.log.Debug()
	}
	ev.Int("lvl", threshold).Msg(message)
}

func (m *MessageMaker) MAND(s string) { m.Emit(s, MSGMAND) }
func (m *MessageMaker) CRIT(s string) { m.Emit(s, MSGCRIT) }
func (m *MessageMaker) WARN(s string) { m.Emit(s, MSGWARN) }
func (m *MessageMaker) NOTE(s string) { m.Emit(s, MSGNOTE) }
func (m *MessageMaker) FYI(s string)  { m.Emit(s, MSGFYI) }
func (m *MessageMaker) PEEK(s string) { m.Emit(s, MSGPEEK) }
func (m *MessageMaker) TMI(s string)  { m.Emit(s, MSGTMI) }

// Logger - the underlying zerolog.Logger, for libraries that want one
func (m *MessageMaker) Logger() zerolog.Logger {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.log
}

// Color - color text with ANSI codes by swapping out pseudo-tags
func (m *MessageMaker) Color(tagged string) string {
	// "[git: C4%sC0]" ==> green text for the %s
	swap := strings.NewReplacer("C1", "", "C2", "", "C3", "", "C4", "", "C5", "", "C6", "", "C7", "", "C0", "")

	if !m.Win && !m.BW {
		swap = strings.NewReplacer("C1", YELLOW1, "C2", CYAN2, "C3", BLUE1, "C4", GREEN, "C5", RED1,
			"C6", GREY3, "C7", BLINK, "C0", RESET)
	}
	return swap.Replace(tagged)
}

// Styled - style text with ANSI codes by swapping out pseudo-tags
func (m *MessageMaker) Styled(tagged string) string {
	const (
		BOLD  = "\033[1m"
		ITAL  = "\033[3m"
		UNDER = "\033[4m"
	)
	swap := strings.NewReplacer("S1", "", "S2", "", "S3", "", "S0", "")

	if !m.Win && !m.BW {
		swap = strings.NewReplacer("S1", BOLD, "S2", ITAL, "S3", UNDER, "S0", RESET)
	}
	return swap.Replace(tagged)
}

func (m *MessageMaker) ColStyle(tagged string) string {
	return m.Styled(m.Color(tagged))
}

// EC - report an unrecoverable error and exit; launch code only
func (m *MessageMaker) EC(err error) {
	if err != nil {
		m.log.Error().Err(err).Msg("UNRECOVERABLE ERROR")
		m.ExitOrHang(1)
	}
}

// EF - report error and function
func (m *MessageMaker) EF(err error, fn string) {
	if err != nil {
		m.log.Error().Err(err).Str("fnc", fn).Msg("UNRECOVERABLE ERROR")
		m.ExitOrHang(1)
	}
}

// ExitOrHang - Windows should hang to keep the error visible before the window closes and hides it
func (m *MessageMaker) ExitOrHang(e int) {
	const (
		HANG = `Execution suspended. %s is now frozen. Note any errors above. Execution will halt after %d seconds.`
		SUSP = 60
	)
	if m.Win {
		m.MAND(fmt.Sprintf(HANG, m.LNm, SUSP))
		time.Sleep(SUSP * time.Second)
	}
	os.Exit(e)
}

// Timer - report how much time elapsed between A and B
func (m *MessageMaker) Timer(letter string, o string, start time.Time, previous time.Time) {
	// sample output: "[B2: 3.764s][Δ: 1.024s] fitted k-means for k=4"
	d := fmt.Sprintf("[Δ: %.3fs] ", time.Since(previous).Seconds())
	o = fmt.Sprintf("[%s: %.3fs]", letter, time.Since(start).Seconds()) + d + o
	m.Emit(o, TIMETRACKERMSGTHRESH)
}

// LogPaths - report the heap after a route has run
func (m *MessageMaker) LogPaths(fn string) {
	// sample output: "RtClusters() current heap: 40M"
	const (
		HEAP = "%s current heap: %s"
	)
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	m.PEEK(fmt.Sprintf(HEAP, fn, fmt.Sprintf("%dM", mem.HeapAlloc/1024/1024)))
}
