//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newtestmaker(ll int, format string) (*MessageMaker, *bytes.Buffer) {
	var buf bytes.Buffer
	m := NewMessageMaker("Test Server", "TST", "0.0.1")
	m.Out = &buf
	m.BW = true
	m.LLvl = ll
	m.Fmt = format
	m.Rebuild()
	return m, &buf
}

func TestEmitRespectsThreshold(t *testing.T) {
	m, buf := newtestmaker(MSGNOTE, "")

	m.WARN("warned")
	m.NOTE("noted")
	m.PEEK("peeked")
	m.TMI("too much")

	out := buf.String()
	assert.Contains(t, out, "warned")
	assert.Contains(t, out, "noted")
	assert.NotContains(t, out, "peeked")
	assert.NotContains(t, out, "too much")
	assert.Contains(t, out, "[TST]")
}

func TestMandatoryAlwaysShown(t *testing.T) {
	m, buf := newtestmaker(MSGCRIT, "")
	m.MAND("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestJSONFormat(t *testing.T) {
	m, buf := newtestmaker(MSGFYI, FORMATJSON)
	m.FYI("structured")
	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "{"))
	assert.Contains(t, line, `"message":"structured"`)
	assert.Contains(t, line, `"app":"TST"`)
}

func TestColorInBlackAndWhite(t *testing.T) {
	m, _ := newtestmaker(0, "")
	assert.Equal(t, "[git: abc]", m.Color("[git: C4abcC0]"))
	assert.Equal(t, "bold", m.Styled("S1boldS0"))
}

func TestErrorCheckersIgnoreNil(t *testing.T) {
	m, buf := newtestmaker(MSGTMI, "")
	m.EC(nil)
	m.EF(nil, "prep.Init()")
	assert.Empty(t, buf.String())
}
