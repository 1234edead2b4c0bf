package handler

import (
	"encoding/json"
	"net/http"

	"github.com/joestump/joe-blog/internal/build"
)

type healthBody struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// Health handles GET /healthz.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthBody{Status: "ok", Version: build.Version, Commit: build.Commit})
}
