package authhandlers

import "net/http"

// Handlers serves the auth HTTP endpoints.
type Handlers interface {
	HandleLogin(w http.ResponseWriter, r *http.Request)
	HandleGate(w http.ResponseWriter, r *http.Request)
	HandlePreview(w http.ResponseWriter, r *http.Request)
}
