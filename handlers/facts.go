// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/today-i-learned/category"
	"github.com/danielhkuo/today-i-learned/facts"
	"github.com/danielhkuo/today-i-learned/middleware"
	"github.com/danielhkuo/today-i-learned/models"
	"github.com/danielhkuo/today-i-learned/session"
)

// FactHandler serves the JSON API over a visitor's controller
type FactHandler struct {
	sessions *session.Manager
	timeout  time.Duration
}

func NewFactHandler(sessions *session.Manager, timeout time.Duration) *FactHandler {
	return &FactHandler{sessions: sessions, timeout: timeout}
}

// ListCategories handles GET /api/categories
func (h *FactHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.CategoriesResponse{
		Categories: category.List(),
	})
}

// GetState handles GET /api/facts
func (h *FactHandler) GetState(w http.ResponseWriter, r *http.Request) {
	ctrl := h.sessions.Controller(w, r)
	middleware.JSONResponse(w, http.StatusOK, stateResponse(ctrl))
}

// Refresh handles POST /api/facts/refresh
func (h *FactHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctrl := h.sessions.Controller(w, r)

	ctx, cancel := storeContext(r, h.timeout)
	defer cancel()

	if err := ctrl.Refresh(ctx); err != nil {
		storeFailure(w, ctrl, facts.FetchFailed)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, stateResponse(ctrl))
}

// SetCategory handles PUT /api/facts/category
func (h *FactHandler) SetCategory(w http.ResponseWriter, r *http.Request) {
	var req models.SetCategoryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctrl := h.sessions.Controller(w, r)

	ctx, cancel := storeContext(r, h.timeout)
	defer cancel()

	err := ctrl.SetCategory(ctx, req.Category)
	if errors.Is(err, facts.ErrUnknownCategory) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown category: "+req.Category)
		return
	}
	if err != nil {
		storeFailure(w, ctrl, facts.FetchFailed)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stateResponse(ctrl))
}

// Submit handles POST /api/facts
func (h *FactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitFactRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctrl := h.sessions.Controller(w, r)

	ctx, cancel := storeContext(r, h.timeout)
	defer cancel()

	fact, err := ctrl.Submit(ctx, facts.Form{Text: req.Text, Source: req.Source, Category: req.Category})
	switch {
	case err == nil:
		middleware.JSONResponse(w, http.StatusCreated, factView(fact, false))
	case isValidationError(err):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, facts.ErrUploadInFlight):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		storeFailure(w, ctrl, facts.InsertFailed)
	}
}

// Vote handles POST /api/facts/{id}/votes
func (h *FactHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid fact id")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil || req.Counter == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "counter must be one of votesInteresting, votesMindblowing, votesFalse")
		return
	}

	ctrl := h.sessions.Controller(w, r)

	ctx, cancel := storeContext(r, h.timeout)
	defer cancel()

	fact, err := ctrl.Vote(ctx, id, *req.Counter)
	switch {
	case err == nil:
		middleware.JSONResponse(w, http.StatusOK, factView(fact, false))
	case errors.Is(err, facts.ErrFactNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Fact not found in the current list")
	case errors.Is(err, facts.ErrVoteInFlight):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, facts.ErrUnknownCounter):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		storeFailure(w, ctrl, facts.UpdateFailed)
	}
}

// SetForm handles PUT /api/form
func (h *FactHandler) SetForm(w http.ResponseWriter, r *http.Request) {
	var req models.SetFormRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctrl := h.sessions.Controller(w, r)
	ctrl.SetShowForm(req.Show)
	middleware.JSONResponse(w, http.StatusOK, stateResponse(ctrl))
}

// storeContext detaches store calls from the client connection so a
// request that was started always settles, bounded by timeout
func storeContext(r *http.Request, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(r.Context())
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// storeFailure answers 502 with the message of the alert the failed call
// queued. Alerts of other kinds stay queued for their own requests.
func storeFailure(w http.ResponseWriter, ctrl *facts.Controller, kind facts.AlertKind) {
	message := "Store request failed"
	if alert, ok := ctrl.TakeAlert(kind); ok {
		message = alert.Message
	}
	middleware.ErrorResponse(w, http.StatusBadGateway, message)
}

func isValidationError(err error) bool {
	return errors.Is(err, facts.ErrTextEmpty) ||
		errors.Is(err, facts.ErrTextTooLong) ||
		errors.Is(err, facts.ErrInvalidSource) ||
		errors.Is(err, facts.ErrCategoryEmpty) ||
		errors.Is(err, facts.ErrUnknownCategory)
}

func factView(f models.Fact, updating bool) models.FactView {
	return models.FactView{Fact: f, Disputed: f.IsDisputed(), Updating: updating}
}

// stateResponse snapshots the controller and drains its alerts
func stateResponse(ctrl *facts.Controller) models.StateResponse {
	s := ctrl.State()

	views := make([]models.FactView, 0, len(s.Facts))
	for _, f := range s.Facts {
		views = append(views, factView(f, s.Updating[f.ID]))
	}

	alerts := []models.AlertResponse{}
	for _, a := range ctrl.TakeAlerts() {
		alerts = append(alerts, models.AlertResponse{Kind: string(a.Kind), Message: a.Message})
	}

	return models.StateResponse{
		Facts:           views,
		Count:           len(views),
		IsLoading:       s.IsLoading,
		CurrentCategory: s.CurrentCategory,
		ShowForm:        s.ShowForm,
		IsUploading:     s.IsUploading,
		Alerts:          alerts,
	}
}
