package transport

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	corsAllowedMethods = []string{
		http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPost,
		http.MethodPatch, http.MethodPut, http.MethodDelete,
	}
	corsAllowedHeaders = []string{"Authorization", "Content-Type"}
	corsMaxAge         = 10 * 24 * time.Hour
)

// PreflightHandler responde o OPTIONS do navegador com a política CORS do serviço.
// Credenciais só são anunciadas quando a origem não é "*".
func PreflightHandler(allowedOrigin string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", allowedOrigin)
		h.Set("Access-Control-Allow-Methods", strings.Join(corsAllowedMethods, ","))
		h.Set("Access-Control-Allow-Headers", strings.Join(corsAllowedHeaders, ","))
		h.Set("Access-Control-Max-Age", strconv.Itoa(int(corsMaxAge.Seconds())))
		if allowedOrigin != "*" {
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
