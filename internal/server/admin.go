package server

import (
	"encoding/json"
	"net/http"

	"github.com/bozkayasalihx/roinstxs/internal/engine"
)

// AdminHandler exposes the on-demand snapshot query for the served mode.
func AdminHandler(eng *engine.Engine) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(eng.Snapshot())
	})

	return mux
}
