package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/beldeveloper/app-promoter/controller"
	"github.com/beldeveloper/app-promoter/model"
	"github.com/julienschmidt/httprouter"
)

// NewHandler creates a new instance of the REST API handler.
func NewHandler(c controller.Service) Handler {
	return Handler{c: c}
}

// Handler handles the REST API requests.
type Handler struct {
	c controller.Service
}

// Deploy requests a deployment of a commit to an environment.
// Production deployments come back as a pending confirmation.
func (h Handler) Deploy(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, err := operatorID(r)
	if err != nil {
		apiError(w, err)
		return
	}
	var f model.FormDeploy
	err = json.NewDecoder(r.Body).Decode(&f)
	if err != nil {
		apiError(w, fmt.Errorf("%w: %v", model.ErrBadInput, err))
		return
	}
	res, err := h.c.Deploy(r.Context(), identity, f)
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, res)
}

// Rollback requests a rollback of an environment to its previous image.
func (h Handler) Rollback(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, err := operatorID(r)
	if err != nil {
		apiError(w, err)
		return
	}
	var f model.FormRollback
	err = json.NewDecoder(r.Body).Decode(&f)
	if err != nil {
		apiError(w, fmt.Errorf("%w: %v", model.ErrBadInput, err))
		return
	}
	res, err := h.c.Rollback(r.Context(), identity, f)
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, res)
}

// Confirm presents a confirmation token and executes the pending action.
func (h Handler) Confirm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, err := operatorID(r)
	if err != nil {
		apiError(w, err)
		return
	}
	res, err := h.c.Confirm(r.Context(), identity, ps.ByName("token"))
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, res)
}

// Cancel discards a pending confirmation.
func (h Handler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, err := operatorID(r)
	if err != nil {
		apiError(w, err)
		return
	}
	err = h.c.Cancel(r.Context(), identity, ps.ByName("token"))
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, map[string]string{"status": string(model.ConfirmationStatusCancelled)})
}

// Status reports the deployed images and health of the visible environments.
func (h Handler) Status(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, err := operatorID(r)
	if err != nil {
		apiError(w, err)
		return
	}
	res, err := h.c.Status(r.Context(), identity)
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, res)
}

// History reports recent deployment attempts and audit records.
func (h Handler) History(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, err := operatorID(r)
	if err != nil {
		apiError(w, err)
		return
	}
	res, err := h.c.History(r.Context(), identity)
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, res)
}

func operatorID(r *http.Request) (string, error) {
	id := r.Header.Get("X-Operator-Id")
	if id == "" {
		return "", fmt.Errorf("%w: missing X-Operator-Id header", model.ErrBadInput)
	}
	return id, nil
}
