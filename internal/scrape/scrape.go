// Package scrape extracts hyperlink targets from directory listing pages.
package scrape

import (
	"io"

	"golang.org/x/net/html"

	"suitegen/internal/log"
)

// Links returns base+href for every <a href> tag, in document order.
// Duplicates are kept. The tokenizer tolerates the malformed markup the
// listing pages are full of; a hard tokenizer error is logged and ends the
// scan with the links found so far.
func Links(base string, r io.Reader) []string {
	logger := log.WithComponent("scrape")

	var links []string
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				logger.Warn().Err(err).Msg("stopped parsing listing markup")
			}
			return links
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if len(name) != 1 || name[0] != 'a' || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "href" {
					links = append(links, base+string(val))
					break
				}
				if !more {
					break
				}
			}
		}
	}
}
