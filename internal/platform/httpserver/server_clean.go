package httpserver

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// handleClean wipes all pledge and session data. The caller must present
// the configured admin key; comparison is constant-time and an unset key
// disables the endpoint entirely.
func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("Admin-Key")
	authorized := s.adminKey != "" &&
		subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) == 1
	if !authorized {
		s.logger.Warn("clean endpoint rejected",
			"event", "clean_unauthorized",
			"module", "internal/platform/httpserver",
			"layer", "platform",
		)
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error": "unauthorized",
		})
		return
	}

	if err := s.pledges.Admin.PurgeAll(r.Context()); err != nil {
		s.logger.Error("clean failed",
			"event", "clean_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal server error",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "all pledge data removed",
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
