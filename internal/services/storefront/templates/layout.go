// Package templates renders storefront HTML components.
package templates

import (
	"context"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/platform/flash"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// Chrome is the shared page state every layout render needs.
type Chrome struct {
	Title     string
	Lang      string
	Loc       *message.Printer
	Viewer    module.Viewer
	CartCount int
	Notice    *flash.Notice
}

// Layout renders the full document around the children in ctx.
func Layout(c Chrome) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		lang := c.Lang
		if lang == "" {
			lang = "en-US"
		}
		appName := tr(c.Loc, "core.app_name")
		h.raw("<!doctype html><html")
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<meta name="description"`)
		h.attr("content", tr(c.Loc, "core.meta_description"))
		h.raw("><title>")
		if c.Title != "" {
			h.text(c.Title + " | " + appName)
		} else {
			h.text(appName)
		}
		h.raw(`</title><link rel="stylesheet" href="/static/css/site.css">`)
		h.raw(`<script defer`)
		h.attr("src", htmxScriptURL)
		h.raw(`></script></head>`)
		h.raw(`<body hx-boost="true" hx-target="#main" hx-select="#main" hx-swap="outerHTML">`)
		h.render(ctx, header(c, appName))
		h.render(ctx, MainContent(c.Notice, c.Loc))
		h.raw(`<footer class="site-footer"><p>`)
		h.text(tr(c.Loc, "core.footer"))
		h.raw("</p></footer></body></html>")
	})
}

func header(c Chrome, appName string) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<header class="site-header"><a class="brand"`)
		h.attr("href", routepath.Root)
		h.raw(">")
		h.text(appName)
		h.raw(`</a><nav class="site-nav">`)
		navLink(h, routepath.ProductsPrefix, tr(c.Loc, "nav.shop"))
		navLink(h, routepath.QuizPrefix, tr(c.Loc, "nav.quiz"))
		h.raw(`<a class="cart-link"`)
		h.attr("href", routepath.CartPrefix)
		h.raw(">")
		h.text(tr(c.Loc, "nav.cart"))
		h.raw(` <span class="badge" id="cart-count">`)
		h.text(itoa(c.CartCount))
		h.raw("</span></a>")
		if c.Viewer.SignedIn() {
			navLink(h, routepath.AppProfile, tr(c.Loc, "nav.account"))
			h.postButton(routepath.Logout, tr(c.Loc, "nav.logout"), "link", nil)
		} else {
			navLink(h, routepath.Login, tr(c.Loc, "nav.login"))
		}
		h.raw("</nav></header>")
	})
}

func navLink(h *htmlWriter, href, label string) {
	h.raw("<a")
	h.attr("href", href)
	h.raw(">")
	h.text(label)
	h.raw("</a>")
}

// MainContent renders the swappable main region: the pending notice, then
// the children in ctx. HTMX requests receive only this region.
func MainContent(notice *flash.Notice, loc *message.Printer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<main id="main">`)
		if notice != nil {
			h.raw(`<div role="status"`)
			h.attr("class", "notice notice-"+string(notice.Kind))
			h.raw(">")
			h.text(tr(loc, notice.Key))
			h.raw("</div>")
		}
		children := templ.GetChildren(ctx)
		h.render(templ.ClearChildren(ctx), children)
		h.raw("</main>")
	})
}
