package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/asjuices/storefront/internal/platform/money"
	"github.com/asjuices/storefront/internal/services/shop/catalog"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

// Landing renders the home page hero, featured products and quiz teaser.
func Landing(featured []catalog.Product, loc *message.Printer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="hero"><h1>`)
		h.text(tr(loc, "landing.heading"))
		h.raw("</h1><p>")
		h.text(tr(loc, "landing.tagline"))
		h.raw(`</p><div class="actions">`)
		h.raw(`<a class="button"`)
		h.attr("href", routepath.ProductsPrefix)
		h.raw(">")
		h.text(tr(loc, "landing.shop_cta"))
		h.raw(`</a><a class="button secondary"`)
		h.attr("href", routepath.QuizPrefix)
		h.raw(">")
		h.text(tr(loc, "landing.quiz_cta"))
		h.raw("</a></div></section>")

		if len(featured) > 0 {
			h.raw(`<section class="featured"><h2>`)
			h.text(tr(loc, "landing.featured_heading"))
			h.raw("</h2>")
			h.render(ctx, productGrid(featured, loc))
			h.raw("</section>")
		}

		h.raw(`<section class="quiz-teaser"><h2>`)
		h.text(tr(loc, "landing.quiz_heading"))
		h.raw("</h2><p>")
		h.text(tr(loc, "landing.quiz_body"))
		h.raw(`</p><a class="button"`)
		h.attr("href", routepath.QuizPrefix)
		h.raw(">")
		h.text(tr(loc, "landing.quiz_cta"))
		h.raw("</a></section>")
	})
}

// ProductListView is the catalog listing state.
type ProductListView struct {
	Products []catalog.Product
	Category string
	Filter   string
	// ErrorMessage explains a rejected filter.
	ErrorMessage string
}

// ProductList renders the catalog with category links and a filter box.
func ProductList(view ProductListView, loc *message.Printer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw("<h1>")
		h.text(tr(loc, "catalog.heading"))
		h.raw(`</h1><nav class="categories">`)
		categoryLink(h, "", view.Category, tr(loc, "catalog.category.all"))
		for _, category := range catalog.Categories() {
			categoryLink(h, string(category), view.Category, tr(loc, "catalog.category."+string(category)))
		}
		h.raw(`</nav><form method="get" class="filter"`)
		h.attr("action", routepath.ProductsPrefix)
		h.raw(`><label><span>`)
		h.text(tr(loc, "catalog.filter_label"))
		h.raw(`</span><input type="search" name="filter"`)
		h.attr("value", view.Filter)
		h.attr("placeholder", `price < 800 AND category = "shot"`)
		h.raw(`></label><button type="submit">`)
		h.text(tr(loc, "catalog.filter_submit"))
		h.raw("</button></form>")
		if view.ErrorMessage != "" {
			h.element("p", "form-error", view.ErrorMessage)
		}
		if len(view.Products) == 0 {
			h.element("p", "empty", tr(loc, "catalog.empty"))
			return
		}
		h.render(ctx, productGrid(view.Products, loc))
	})
}

func categoryLink(h *htmlWriter, category, active, label string) {
	h.raw("<a")
	h.attr("href", routepath.Products(category))
	if category == active {
		h.raw(` class="active" aria-current="page"`)
	}
	h.raw(">")
	h.text(label)
	h.raw("</a>")
}

func productGrid(products []catalog.Product, loc *message.Printer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<ul class="product-grid">`)
		for _, product := range products {
			h.raw(`<li class="product-card"><a`)
			h.attr("href", routepath.Product(product.Slug))
			h.raw("><h3>")
			h.text(product.Name)
			h.raw("</h3></a>")
			h.element("p", "category", tr(loc, "catalog.category."+string(product.Category)))
			h.element("p", "description", product.Description)
			h.element("p", "price", product.Price.Format(loc, money.DefaultCurrency))
			h.render(ctx, addToCartForm(product.Slug, 1, loc))
			h.raw("</li>")
		}
		h.raw("</ul>")
	})
}

func addToCartForm(slug string, quantity int, loc *message.Printer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<form method="post" class="add-to-cart"`)
		h.attr("action", routepath.CartItems)
		h.raw(">")
		h.hidden("slug", slug)
		h.raw(`<input type="number" name="quantity" min="1" max="99"`)
		h.attr("value", itoa(quantity))
		h.attr("aria-label", tr(loc, "cart.quantity"))
		h.raw(`><button type="submit">`)
		h.text(tr(loc, "catalog.add_to_cart"))
		h.raw("</button></form>")
	})
}

// ProductDetail renders one product.
func ProductDetail(product catalog.Product, loc *message.Printer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<article class="product-detail"><a class="back"`)
		h.attr("href", routepath.ProductsPrefix)
		h.raw(">")
		h.text(tr(loc, "catalog.back"))
		h.raw("</a><h1>")
		h.text(product.Name)
		h.raw("</h1>")
		h.element("p", "category", tr(loc, "catalog.category."+string(product.Category)))
		h.element("p", "description", product.Description)
		if len(product.Ingredients) > 0 {
			h.raw("<h2>")
			h.text(tr(loc, "catalog.ingredients"))
			h.raw("</h2>")
			h.element("p", "ingredients", strings.Join(product.Ingredients, ", "))
		}
		if product.SizeML > 0 {
			h.element("p", "size", tr(loc, "catalog.size_ml", product.SizeML))
		}
		h.element("p", "price", product.Price.Format(loc, money.DefaultCurrency))
		h.render(ctx, addToCartForm(product.Slug, 1, loc))
		h.raw("</article>")
	})
}
