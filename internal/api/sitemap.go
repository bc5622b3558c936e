package api

import (
	"encoding/xml"
	"net/url"
	"time"

	"github.com/dmitrymomot/folio/core/handler"
	"github.com/dmitrymomot/folio/core/logger"
	"github.com/dmitrymomot/folio/core/response"
	"github.com/dmitrymomot/folio/internal/content"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// sitemapSources maps content collections to public path prefixes.
var sitemapSources = []struct {
	collection string
	prefix     string
}{
	{"projects", "/projects/"},
	{"articles", "/blog/"},
}

// sitemap lists the static pages, then every project and article with a
// slug. A read failure degrades to the static pages only.
func (a *API) sitemap(ctx Context) handler.Response {
	today := time.Now().UTC().Format(time.DateOnly)
	base := a.cfg.baseURL()

	set := urlSet{XMLNS: sitemapNS}
	for _, p := range []string{"/", "/projects", "/blog", "/resume"} {
		set.URLs = append(set.URLs, newSitemapURL(base+p, today))
	}
	static := len(set.URLs)

	for _, src := range sitemapSources {
		items, err := a.content.List(ctx, src.collection)
		if err != nil {
			a.logger.WarnContext(ctx, "sitemap degraded to static pages",
				logger.Component("sitemap"), logger.Collection(src.collection), logger.Error(err))
			set.URLs = set.URLs[:static]
			break
		}
		for _, it := range items {
			if slug := it.Slug(); slug != "" {
				set.URLs = append(set.URLs, newSitemapURL(base+src.prefix+url.PathEscape(slug), lastMod(it, today)))
			}
		}
	}
	return response.XML(set)
}

func newSitemapURL(loc, lastmod string) sitemapURL {
	return sitemapURL{Loc: loc, LastMod: lastmod, ChangeFreq: "weekly", Priority: "0.8"}
}

// lastMod takes the date part of the item's "date" field, or today.
func lastMod(it content.Item, today string) string {
	d := it.Str("date")
	if len(d) >= 10 {
		if t, err := time.Parse(time.DateOnly, d[:10]); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return today
}
