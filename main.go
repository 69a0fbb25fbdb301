//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/e-gun/CourseNLPServer/internal/crp"
	"github.com/e-gun/CourseNLPServer/internal/db"
	"github.com/e-gun/CourseNLPServer/internal/lnch"
	"github.com/e-gun/CourseNLPServer/internal/mm"
	"github.com/e-gun/CourseNLPServer/internal/prep"
	"github.com/e-gun/CourseNLPServer/internal/vec"
	"github.com/e-gun/CourseNLPServer/internal/vv"
	"github.com/e-gun/CourseNLPServer/internal/web"
	"github.com/pkg/profile"
)

// these next variables should be injected at build time: 'go build -ldflags "-X main.GitCommit=$GIT_COMMIT"', etc

var GitCommit string
var VersSuppl string
var BuildDate string
var PGOInfo string

var Msg = lnch.NewMessageMakerWithDefaults()

//	@title			NLP API
//	@version		1.0
//	@description	Text NLP processing API
//	@license.name	GNU GENERAL PUBLIC LICENSE 3
//	@BasePath		/
func main() {
	const (
		MSG1 = "%d courses in the live table"
		MSG2 = "corpus written to '%s' (%d entries)"
		WRN1 = "could not count the courses in the live table: %s"
	)

	//
	// LAUNCH
	//

	lnch.GitCommit = GitCommit
	lnch.VersSuppl = VersSuppl
	lnch.BuildDate = BuildDate
	lnch.PGOInfo = PGOInfo

	lnch.ConfigAtLaunch()

	for _, m := range []*mm.MessageMaker{Msg, crp.Msg, vec.Msg, web.Msg} {
		lnch.UpdateMessageMakerWithConfig(m)
	}

	lnch.PrintVersion(*lnch.Config)
	lnch.PrintBuildInfo(*lnch.Config)
	fmt.Println(Msg.Color(fmt.Sprintf(vv.TERMINALTEXT, vv.PROJYEAR, vv.PROJAUTH, vv.PROJURL)))

	// go tool pprof --pdf ./CourseNLPServer /var/folders/.../cpu.pprof > profile.pdf
	if lnch.Config.ProfileCPU {
		defer profile.Start().Stop()
	} else if lnch.Config.ProfileMEM {
		defer profile.Start(profile.MemProfile).Stop()
	}

	//
	// INITIALIZATION
	//

	start := time.Now()
	previous := time.Now()

	norm, err := prep.Init(prep.Options{
		StopwordsFile: lnch.Config.StopwordsFile,
		LemmataEN:     lnch.Config.LemmataEN,
		LemmataRU:     lnch.Config.LemmataRU,
		Fallback:      lnch.Config.LemmaFallback == vv.LEMMAFALLBACKSTEM,
	})
	Msg.EF(err, "prep.Init()")
	Msg.Timer("A", "normalizer built", start, previous)

	store, err := db.NewStore(*lnch.Config)
	Msg.EF(err, "db.NewStore()")

	//
	// EXTRACTION MODE
	//

	if lnch.Config.Extract {
		previous = time.Now()
		entries, e := crp.Extract(context.Background(), store, norm, lnch.Config.CorpusFile)
		Msg.EC(e)
		Msg.Timer("B", "extraction finished", start, previous)
		Msg.NOTE(fmt.Sprintf(MSG2, lnch.Config.CorpusFile, len(entries)))
		return
	}

	//
	// SERVER MODE
	//

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	n, err := store.CountCourses(ctx)
	cancel()
	if err != nil {
		Msg.WARN(fmt.Sprintf(WRN1, err.Error()))
	} else {
		Msg.FYI(fmt.Sprintf(MSG1, n))
	}

	web.StartEchoServer(store, norm)
}
