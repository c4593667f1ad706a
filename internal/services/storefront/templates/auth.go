package templates

import (
	"context"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

// AuthForm is the sign-in or sign-up form state.
type AuthForm struct {
	Email        string
	ErrorMessage string
}

// Login renders the sign-in form.
func Login(form AuthForm, loc *message.Printer) templ.Component {
	return authPage(routepath.Login, "auth.login_heading", "auth.login_submit", "current-password",
		routepath.Signup, "auth.signup_prompt", form, loc)
}

// Signup renders the account creation form.
func Signup(form AuthForm, loc *message.Printer) templ.Component {
	return authPage(routepath.Signup, "auth.signup_heading", "auth.signup_submit", "new-password",
		routepath.Login, "auth.login_prompt", form, loc)
}

func authPage(action, headingKey, submitKey, passwordAutocomplete, altHref, altKey string, form AuthForm, loc *message.Printer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section class="auth"><h1>`)
		h.text(tr(loc, headingKey))
		h.raw("</h1>")
		if form.ErrorMessage != "" {
			h.element("p", "form-error", form.ErrorMessage)
		}
		h.raw(`<form method="post"`)
		h.attr("action", action)
		h.raw(">")
		h.field(tr(loc, "auth.email"), "email", "email", form.Email, "email", true)
		h.field(tr(loc, "auth.password"), "password", "password", "", passwordAutocomplete, true)
		h.raw(`<button type="submit">`)
		h.text(tr(loc, submitKey))
		h.raw(`</button></form><p><a`)
		h.attr("href", altHref)
		h.raw(">")
		h.text(tr(loc, altKey))
		h.raw("</a></p></section>")
	})
}

// AppErrorState renders the shared error body for a status code.
func AppErrorState(statusCode int, message string, loc *message.Printer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section class="app-error"><h1>`)
		h.text(AppErrorPageTitle(statusCode, loc))
		h.raw("</h1>")
		h.element("p", "", message)
		h.raw(`<a class="button"`)
		h.attr("href", routepath.Root)
		h.raw(">")
		h.text(tr(loc, "error.back_home"))
		h.raw("</a></section>")
	})
}

// AppErrorPageTitle returns the localized heading for a status code.
func AppErrorPageTitle(statusCode int, loc *message.Printer) string {
	if statusCode == 404 {
		return tr(loc, "error.not_found_title")
	}
	return tr(loc, "error.server_title")
}
