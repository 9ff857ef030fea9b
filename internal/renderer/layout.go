package renderer

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"

	"github.com/conneroisu/lectern/internal/locale"
	"github.com/conneroisu/lectern/internal/messages"
)

// liveReloadScript reloads the page when the catalog is replaced, showing a
// notice in the page language first. The notice is a JSON string literal.
const liveReloadScript = `<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (e) {
    var msg = JSON.parse(e.data);
    if (msg.type !== "replaced") { return; }
    var notice = document.createElement("div");
    notice.className = "reload-notice";
    notice.setAttribute("role", "status");
    notice.textContent = %s;
    document.body.appendChild(notice);
    location.reload();
  };
})();
</script>`

// Page wraps body in the HTML document shell for locale l.
func (r *Renderer) Page(l locale.Locale, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.printf(`<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8">`, esc(string(l)))
		ew.print(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		ew.printf(`<title>%s</title></head><body>`, esc(title))
		if ew.err != nil {
			return ew.err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		if r.liveReload {
			notice, err := json.Marshal(r.label(l, messages.ContentReloaded))
			if err != nil {
				return err
			}
			ew.printf(liveReloadScript, notice)
		}
		ew.print(`</body></html>`)
		return ew.err
	})
}

// ErrorPage renders a short page carrying message, used for HTML 404s.
func (r *Renderer) ErrorPage(l locale.Locale, status int, message string) templ.Component {
	return r.Page(l, message, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.printf(`<main class="error" data-status="%d"><p>%s</p></main>`, status, esc(message))
		return ew.err
	}))
}

// Link is one entry of an index listing
type Link struct {
	Href  string
	Label string
}

// LinkGroup is a titled list of links
type LinkGroup struct {
	Title string
	Links []Link
}

// IndexPage renders the landing page of the developer section for l.
func (r *Renderer) IndexPage(l locale.Locale, groups []LinkGroup) templ.Component {
	title := r.label(l, messages.SiteTitle)
	return r.Page(l, title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.printf(`<main class="index"><h1>%s</h1>`, esc(title))
		for _, group := range groups {
			ew.printf(`<section><h2>%s</h2><ul>`, esc(group.Title))
			for _, link := range group.Links {
				ew.printf(`<li><a href="%s">%s</a></li>`, esc(string(templ.URL(link.Href))), esc(link.Label))
			}
			ew.print(`</ul></section>`)
		}
		ew.print(`</main>`)
		return ew.err
	}))
}
