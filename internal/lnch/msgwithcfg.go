//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"github.com/e-gun/CourseNLPServer/internal/mm"
	"github.com/e-gun/CourseNLPServer/internal/vv"
)

// NewMessageMakerConfigured - a MessageMaker that follows the current Config
func NewMessageMakerConfigured() *mm.MessageMaker {
	m := mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION)
	UpdateMessageMakerWithConfig(m)
	return m
}

// NewMessageMakerWithDefaults - for package-level vars that exist before the configuration does
func NewMessageMakerWithDefaults() *mm.MessageMaker {
	m := mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION)
	m.LLvl = vv.DEFAULTGOLOGLEVEL
	m.Rebuild()
	return m
}

// UpdateMessageMakerWithConfig - main.go calls this for every package-level MessageMaker once the config is known
func UpdateMessageMakerWithConfig(m *mm.MessageMaker) {
	m.BW = Config.BlackAndWhite
	m.Fmt = Config.LogFormat
	m.LLvl = Config.LogLevel
	m.Rebuild()
}
