package rest

import (
	"net/http"

	"github.com/beldeveloper/app-promoter/controller"
	"github.com/julienschmidt/httprouter"
)

// CreateRouter creates and configures a new instance of the router.
func CreateRouter(c controller.Service) *httprouter.Router {
	h := NewHandler(c)
	r := httprouter.New()

	r.POST("/deployments", h.Deploy)
	r.POST("/rollbacks", h.Rollback)
	r.POST("/confirmations/:token/confirm", h.Confirm)
	r.POST("/confirmations/:token/cancel", h.Cancel)
	r.GET("/status", h.Status)
	r.GET("/history", h.History)

	r.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetDefaultHeaders(w)
		h := w.Header()
		h.Set("Access-Control-Allow-Methods", h.Get("Allow"))
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}
