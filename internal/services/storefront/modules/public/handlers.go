package public

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/platform/flash"
	"github.com/asjuices/storefront/internal/services/storefront/platform/httpx"
	"github.com/asjuices/storefront/internal/services/storefront/platform/i18n"
	"github.com/asjuices/storefront/internal/services/storefront/platform/pagerender"
	"github.com/asjuices/storefront/internal/services/storefront/platform/sessioncookie"
	"github.com/asjuices/storefront/internal/services/storefront/platform/weberror"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
	"github.com/asjuices/storefront/internal/services/storefront/templates"
)

type handlers struct {
	deps module.Dependencies
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{deps: deps}
}

func (h handlers) handleLanding(w http.ResponseWriter, r *http.Request) {
	loc, _ := i18n.ResolveLocalizer(nil, r)
	featured, err := h.deps.Catalog.Featured(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writePage(w, r, pagerender.Page{
		Title:    loc.Sprintf("core.app_name"),
		Fragment: templates.Landing(featured, loc),
	})
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h handlers) handleLoginGet(w http.ResponseWriter, r *http.Request) {
	if h.deps.UserID(r) != "" {
		httpx.WriteRedirect(w, r, routepath.AppProfile)
		return
	}
	h.writeAuthPage(w, r, http.StatusOK, false, templates.AuthForm{})
}

func (h handlers) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	h.handleCredentials(w, r, false)
}

func (h handlers) handleSignupGet(w http.ResponseWriter, r *http.Request) {
	if h.deps.UserID(r) != "" {
		httpx.WriteRedirect(w, r, routepath.AppProfile)
		return
	}
	h.writeAuthPage(w, r, http.StatusOK, true, templates.AuthForm{})
}

func (h handlers) handleSignupPost(w http.ResponseWriter, r *http.Request) {
	h.handleCredentials(w, r, true)
}

// handleCredentials signs the visitor in, creating the account first when
// signup is set, and starts a session.
func (h handlers) handleCredentials(w http.ResponseWriter, r *http.Request, signup bool) {
	if err := httpx.ParseForm(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	var userID string
	var err error
	if signup {
		user, signUpErr := h.deps.Accounts.SignUp(r.Context(), email, password)
		userID, err = user.ID, signUpErr
	} else {
		user, signInErr := h.deps.Accounts.SignIn(r.Context(), email, password)
		userID, err = user.ID, signInErr
	}
	if err != nil {
		status, message, ok := weberror.Inline(r, err)
		if !ok {
			h.writeError(w, r, err)
			return
		}
		h.writeAuthPage(w, r, status, signup, templates.AuthForm{Email: email, ErrorMessage: message})
		return
	}

	session, err := h.deps.Sessions.Create(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sessioncookie.Write(w, r, h.deps.SchemePolicy, session.ID, h.deps.Sessions.TTL())
	notice := "notice.signed_in"
	if signup {
		notice = "notice.signed_up"
	}
	flash.Write(w, r, h.deps.SchemePolicy, flash.Success(notice))
	h.deps.Log().Info("session started", zap.String("user_id", userID), zap.Bool("signup", signup))
	httpx.WriteRedirect(w, r, routepath.AppProfile)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := sessioncookie.Read(r); ok && h.deps.Sessions != nil {
		if err := h.deps.Sessions.Revoke(r.Context(), sessionID); err != nil {
			h.deps.Log().Warn("revoke session", zap.Error(err))
		}
	}
	sessioncookie.Clear(w, r, h.deps.SchemePolicy)
	flash.Write(w, r, h.deps.SchemePolicy, flash.Info("notice.signed_out"))
	httpx.WriteRedirect(w, r, routepath.Root)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteNotFound(w, r, h.deps)
}

func (h handlers) writeAuthPage(w http.ResponseWriter, r *http.Request, status int, signup bool, form templates.AuthForm) {
	loc, _ := i18n.ResolveLocalizer(nil, r)
	title := loc.Sprintf("auth.login_heading")
	var body templ.Component
	if signup {
		title = loc.Sprintf("auth.signup_heading")
		body = templates.Signup(form, loc)
	} else {
		body = templates.Login(form, loc)
	}
	h.writePage(w, r, pagerender.Page{Title: title, StatusCode: status, Fragment: body})
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.Write(w, r, h.deps, page); err != nil {
		h.deps.Log().Warn("render page", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func (h handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, h.deps)
}
