package quiz

import (
	"net/http"

	"go.uber.org/zap"

	shopcart "github.com/asjuices/storefront/internal/services/shop/cart"
	shopquiz "github.com/asjuices/storefront/internal/services/shop/quiz"
	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/platform/cartcookie"
	"github.com/asjuices/storefront/internal/services/storefront/platform/flash"
	"github.com/asjuices/storefront/internal/services/storefront/platform/httpx"
	"github.com/asjuices/storefront/internal/services/storefront/platform/i18n"
	"github.com/asjuices/storefront/internal/services/storefront/platform/pagerender"
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

func (h handlers) handleStepGet(w http.ResponseWriter, r *http.Request) {
	h.renderProgress(w, r, r.URL.Query()["answer"])
}

func (h handlers) handleStepPost(w http.ResponseWriter, r *http.Request) {
	if err := httpx.ParseForm(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	h.renderProgress(w, r, r.PostForm["answer"])
}

// renderProgress shows the next question, or the recommendation once every
// question is answered. Invalid answers restart the quiz with a message.
func (h handlers) renderProgress(w http.ResponseWriter, r *http.Request, answers []string) {
	loc, _ := i18n.ResolveLocalizer(nil, r)
	page := pagerender.Page{Title: loc.Sprintf("quiz.heading")}

	step, done, err := shopquiz.Progress(answers)
	if err != nil {
		status, message, ok := weberror.Inline(r, err)
		if !ok {
			weberror.WriteModuleError(w, r, err, h.deps)
			return
		}
		step, _, _ = shopquiz.Progress(nil)
		page.StatusCode = status
		page.Fragment = templates.QuizStep(step, nil, message, loc)
		h.writePage(w, r, page)
		return
	}
	normalized, _ := shopquiz.Normalize(answers)
	if !done {
		page.Fragment = templates.QuizStep(step, normalized, "", loc)
		h.writePage(w, r, page)
		return
	}

	program, err := h.deps.Recommender.Recommend(normalized)
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	page.Title = program.Name
	page.Fragment = templates.QuizResult(program, normalized, loc)
	h.writePage(w, r, page)
}

func (h handlers) handleAdd(w http.ResponseWriter, r *http.Request) {
	if err := httpx.ParseForm(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	program, err := h.deps.Recommender.Recommend(r.PostForm["answer"])
	if err != nil {
		weberror.WriteFlashError(w, r, err, h.deps, routepath.QuizPrefix)
		return
	}
	cartID, err := cartcookie.Ensure(w, r, h.deps.SchemePolicy, h.deps.CartIDs)
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	if _, err := h.deps.Carts.Update(cartID, func(c *shopcart.Cart) error {
		return c.Add(program.Name, program.Price, 1)
	}); err != nil {
		weberror.WriteFlashError(w, r, err, h.deps, routepath.QuizPrefix)
		return
	}
	h.deps.Log().Info("quiz program added", zap.String("program", program.Key))
	flash.Write(w, r, h.deps.SchemePolicy, flash.Success("notice.program_added"))
	httpx.WriteRedirect(w, r, routepath.CartPrefix)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteNotFound(w, r, h.deps)
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.Write(w, r, h.deps, page); err != nil {
		h.deps.Log().Warn("render page", zap.String("path", r.URL.Path), zap.Error(err))
	}
}
