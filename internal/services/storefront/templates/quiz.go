package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/asjuices/storefront/internal/platform/money"
	"github.com/asjuices/storefront/internal/services/shop/quiz"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

// QuizStep renders the next question, carrying earlier answers as hidden
// fields.
func QuizStep(step quiz.Step, answers []string, errorMessage string, loc *message.Printer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw("<h1>")
		h.text(tr(loc, "quiz.heading"))
		h.raw("</h1>")
		h.element("p", "progress", tr(loc, "quiz.progress", step.Index, step.Total))
		if errorMessage != "" {
			h.element("p", "form-error", errorMessage)
		}
		h.raw(`<form method="post" class="quiz"`)
		h.attr("action", routepath.QuizPrefix)
		h.raw("><fieldset><legend>")
		h.text(tr(loc, "quiz.question."+step.Question.ID))
		h.raw("</legend>")
		for _, answer := range answers {
			h.hidden("answer", answer)
		}
		for i, option := range step.Question.Options {
			h.raw(`<label class="option"><input type="radio" name="answer"`)
			h.attr("value", option.Value)
			if i == 0 {
				h.raw(" required")
			}
			h.raw("><span>")
			h.text(tr(loc, "quiz.option."+step.Question.ID+"."+option.Value))
			h.raw("</span></label>")
		}
		h.raw(`</fieldset><button type="submit">`)
		h.text(tr(loc, "quiz.next"))
		h.raw("</button></form>")
		if len(answers) > 0 {
			h.raw(`<a class="restart"`)
			h.attr("href", routepath.QuizPrefix)
			h.raw(">")
			h.text(tr(loc, "quiz.restart"))
			h.raw("</a>")
		}
	})
}

// QuizResult renders the recommended program with an add-to-cart action.
func QuizResult(program quiz.Program, answers []string, loc *message.Printer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section class="quiz-result"><h1>`)
		h.text(tr(loc, "quiz.result_heading"))
		h.raw("</h1><h2>")
		h.text(program.Name)
		h.raw("</h2>")
		h.element("p", "description", program.Description)
		if program.Days > 0 {
			h.element("p", "days", tr(loc, "quiz.days", program.Days))
		}
		if len(program.Items) > 0 {
			h.raw(`<ul class="program-items">`)
			for _, item := range program.Items {
				h.raw("<li><a")
				h.attr("href", routepath.Product(item.Slug))
				h.raw(">")
				h.text(tr(loc, "quiz.item", item.Quantity, strings.ReplaceAll(item.Slug, "-", " ")))
				h.raw("</a></li>")
			}
			h.raw("</ul>")
		}
		h.element("p", "price", program.Price.Format(loc, money.DefaultCurrency))
		h.raw(`<form method="post"`)
		h.attr("action", routepath.QuizAdd)
		h.raw(">")
		for _, answer := range answers {
			h.hidden("answer", answer)
		}
		h.raw(`<button type="submit">`)
		h.text(tr(loc, "quiz.add_program"))
		h.raw(`</button></form><a class="restart"`)
		h.attr("href", routepath.QuizPrefix)
		h.raw(">")
		h.text(tr(loc, "quiz.restart"))
		h.raw("</a></section>")
	})
}
