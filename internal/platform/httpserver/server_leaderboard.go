package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"pledgewall/contexts/donation-pledges/leaderboard-service/application"
)

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		s.streamLeaderboard(w, r)
		return
	}

	snapshot, err := s.leaderboard.Feed.Snapshot(r.Context())
	if err != nil {
		s.logger.Error("leaderboard snapshot failed",
			"event", "leaderboard_snapshot_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		snapshot = application.Snapshot{}
	}
	s.render(w, http.StatusOK, "leaderboard.gohtml", snapshot)
}

// streamLeaderboard pushes the snapshot as server-sent events until the
// client disconnects. The first event goes out immediately so the page
// never waits a full refresh interval for its initial data.
func (s *Server) streamLeaderboard(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	err := s.leaderboard.Feed.Run(r.Context(), func(snapshot application.Snapshot) error {
		payload, err := json.Marshal(snapshot)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		s.logger.Info("leaderboard stream closed",
			"event", "leaderboard_stream_closed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
	}
}
