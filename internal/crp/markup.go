//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package crp

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// StripMarkup - every text node, trimmed; empty ones dropped; the rest joined by single spaces
func StripMarkup(h string) string {
	const (
		NOTTEXT = "script, style, template, noscript"
	)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(h))
	if err != nil {
		// html.Parse only fails on a broken reader
		return strings.TrimSpace(h)
	}

	doc.Find(NOTTEXT).Remove()

	var pieces []string
	var collect func(s *goquery.Selection)
	collect = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			switch c.Get(0).Type {
			case html.TextNode:
				if t := strings.TrimSpace(c.Text()); t != "" {
					pieces = append(pieces, t)
				}
			case html.CommentNode, html.DoctypeNode:
				// skip
			default:
				collect(c)
			}
		})
	}

	collect(doc.Selection)
	return strings.Join(pieces, " ")
}
