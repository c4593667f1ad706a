package portal

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/asjuices/storefront/internal/services/shop/account"
	"github.com/asjuices/storefront/internal/services/shop/schedule"
	"github.com/asjuices/storefront/internal/services/storefront/module"
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

func (h handlers) redirectRoot(w http.ResponseWriter, r *http.Request) {
	httpx.WriteRedirect(w, r, routepath.AppProfile)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteNotFound(w, r, h.deps)
}

// userID returns the signed-in user. The composer only routes authenticated
// requests here; a session revoked mid-request still gets sent to login.
func (h handlers) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := h.deps.UserID(r)
	if userID == "" {
		httpx.WriteRedirect(w, r, routepath.Login)
		return "", false
	}
	return userID, true
}

func (h handlers) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	profile, err := h.deps.Accounts.GetProfile(r.Context(), userID)
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	h.writeProfile(w, r, http.StatusOK, templates.ProfileView{
		Email: h.deps.Viewer(r).Email,
		Input: profile.Input(),
	})
}

func (h handlers) handleProfilePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if !parse(w, r) {
		return
	}
	input := account.ProfileInput{
		FullName:      r.PostFormValue("full_name"),
		Phone:         r.PostFormValue("phone"),
		AddressLine1:  r.PostFormValue("address_line1"),
		AddressLine2:  r.PostFormValue("address_line2"),
		City:          r.PostFormValue("city"),
		PostalCode:    r.PostFormValue("postal_code"),
		DeliveryNotes: r.PostFormValue("delivery_notes"),
	}
	if _, err := h.deps.Accounts.UpdateProfile(r.Context(), userID, input); err != nil {
		status, message, ok := weberror.Inline(r, err)
		if !ok {
			weberror.WriteModuleError(w, r, err, h.deps)
			return
		}
		h.writeProfile(w, r, status, templates.ProfileView{
			Email:        h.deps.Viewer(r).Email,
			Input:        input,
			ErrorMessage: message,
		})
		return
	}
	flash.Write(w, r, h.deps.SchemePolicy, flash.Success("notice.profile_saved"))
	httpx.WriteRedirect(w, r, routepath.AppProfile)
}

func (h handlers) writeProfile(w http.ResponseWriter, r *http.Request, status int, view templates.ProfileView) {
	loc, _ := i18n.ResolveLocalizer(nil, r)
	h.writePage(w, r, pagerender.Page{
		Title:      loc.Sprintf("portal.profile_heading"),
		StatusCode: status,
		Fragment:   templates.Profile(view, loc),
	})
}

func (h handlers) handleOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	loc, _ := i18n.ResolveLocalizer(nil, r)
	view := templates.OrdersView{Filter: strings.TrimSpace(r.URL.Query().Get("filter"))}
	status := http.StatusOK
	list, err := h.deps.Orders.ListForUser(r.Context(), userID, view.Filter)
	if err != nil {
		var inline bool
		status, view.ErrorMessage, inline = weberror.Inline(r, err)
		if !inline {
			weberror.WriteModuleError(w, r, err, h.deps)
			return
		}
	}
	view.Orders = list
	h.writePage(w, r, pagerender.Page{
		Title:      loc.Sprintf("portal.orders_heading"),
		StatusCode: status,
		Fragment:   templates.Orders(view, loc),
	})
}

func (h handlers) handleOrderCancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	order, err := h.deps.Orders.Cancel(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		weberror.WriteFlashError(w, r, err, h.deps, routepath.AppOrders)
		return
	}
	h.deps.Log().Info("order cancelled", zap.String("order_id", order.ID), zap.String("user_id", userID))
	flash.Write(w, r, h.deps.SchemePolicy, flash.Success("notice.order_cancelled"))
	httpx.WriteRedirect(w, r, routepath.AppOrders)
}

func (h handlers) handleScheduleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.writeSchedule(w, r, userID, http.StatusOK, "")
}

func (h handlers) handleScheduleAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if !parse(w, r) {
		return
	}
	_, err := h.deps.Schedule.Add(r.Context(), userID, scheduleInput(r))
	if err != nil {
		status, message, ok := weberror.Inline(r, err)
		if !ok {
			weberror.WriteModuleError(w, r, err, h.deps)
			return
		}
		h.writeSchedule(w, r, userID, status, message)
		return
	}
	flash.Write(w, r, h.deps.SchemePolicy, flash.Success("notice.delivery_added"))
	httpx.WriteRedirect(w, r, routepath.AppSchedule)
}

// scheduleInput reads the add-delivery form. Unparseable values are passed
// through as out-of-range so the schedule service reports them.
func scheduleInput(r *http.Request) schedule.AddInput {
	weekday, ok := schedule.ParseWeekday(r.PostFormValue("weekday"))
	if !ok {
		weekday = time.Weekday(-1)
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("quantity")))
	if err != nil {
		quantity = 0
	}
	return schedule.AddInput{
		Item:     r.PostFormValue("item"),
		Weekday:  weekday,
		Window:   schedule.Window(r.PostFormValue("window")),
		Quantity: quantity,
	}
}

func (h handlers) handleScheduleToggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if _, err := h.deps.Schedule.Toggle(r.Context(), userID, r.PathValue("id")); err != nil {
		weberror.WriteFlashError(w, r, err, h.deps, routepath.AppSchedule)
		return
	}
	flash.Write(w, r, h.deps.SchemePolicy, flash.Success("notice.delivery_updated"))
	httpx.WriteRedirect(w, r, routepath.AppSchedule)
}

func (h handlers) handleScheduleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.deps.Schedule.Remove(r.Context(), userID, r.PathValue("id")); err != nil {
		weberror.WriteFlashError(w, r, err, h.deps, routepath.AppSchedule)
		return
	}
	flash.Write(w, r, h.deps.SchemePolicy, flash.Success("notice.delivery_removed"))
	httpx.WriteRedirect(w, r, routepath.AppSchedule)
}

func (h handlers) writeSchedule(w http.ResponseWriter, r *http.Request, userID string, status int, errorMessage string) {
	deliveries, err := h.deps.Schedule.List(r.Context(), userID)
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	products, err := h.deps.Catalog.List(r.Context(), "")
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	loc, _ := i18n.ResolveLocalizer(nil, r)
	h.writePage(w, r, pagerender.Page{
		Title:      loc.Sprintf("portal.schedule_heading"),
		StatusCode: status,
		Fragment: templates.Schedule(templates.ScheduleView{
			Deliveries:   deliveries,
			Products:     products,
			Now:          h.deps.Clock(),
			ErrorMessage: errorMessage,
		}, loc),
	})
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.Write(w, r, h.deps, page); err != nil {
		h.deps.Log().Warn("render page", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func parse(w http.ResponseWriter, r *http.Request) bool {
	if err := httpx.ParseForm(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return false
	}
	return true
}
