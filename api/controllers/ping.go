package controllers

import (
	"net/http"

	"github.com/leafline/leafline-backend/api/middleware"
	"github.com/leafline/leafline-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if vendor := middleware.VendorIDFromContext(r.Context()); vendor != "" {
			payload["vendor_id"] = vendor
		}
		responses.WriteSuccess(w, payload)
	}
}
