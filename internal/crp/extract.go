//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package crp

import (
	"context"
	"fmt"
	"time"

	"github.com/e-gun/CourseNLPServer/internal/db"
	"github.com/e-gun/CourseNLPServer/internal/lnch"
	"github.com/e-gun/CourseNLPServer/internal/prep"
	"github.com/e-gun/CourseNLPServer/internal/str"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var Msg = lnch.NewMessageMakerWithDefaults()

// Extract - live store → markup stripped → normalized → corpus file; any failure leaves 'fn' as it was
func Extract(ctx context.Context, store db.Store, n *prep.Normalizer, fn string) ([]str.CorpusEntry, error) {
	const (
		FAIL1 = "Extract() could not fetch descriptions: %w"
		MSG1  = "Extract(): fetched %d descriptions"
		MSG2  = "Extract(): normalized %d of %d descriptions"
		MSG3  = "Extract(): wrote %d entries to '%s'"
	)

	start := time.Now()
	previous := time.Now()
	pr := message.NewPrinter(language.English)

	// [a] fetch

	entries, err := store.FetchDescriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}
	Msg.FYI(pr.Sprintf(MSG1, len(entries)))
	Msg.Timer("A", "fetched", start, previous)
	previous = time.Now()

	// [b] strip

	raw := make([]string, len(entries))
	for i, e := range entries {
		raw[i] = StripMarkup(e.Description)
	}
	Msg.Timer("B", "markup stripped", start, previous)
	previous = time.Now()

	// [c] normalize

	cleaned := n.ProcessWithProgress(raw, func(done int, total int) {
		Msg.TMI(pr.Sprintf(MSG2, done, total))
	})
	for i := range entries {
		entries[i].Description = cleaned[i]
	}
	Msg.Timer("C", "normalized", start, previous)

	// [d] store

	if err = WriteCorpus(fn, entries); err != nil {
		return nil, err
	}
	Msg.NOTE(pr.Sprintf(MSG3, len(entries), fn))

	return entries, nil
}
