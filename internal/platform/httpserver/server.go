package httpserver

import (
	"log/slog"
	"net/http"

	admindashboardservice "pledgewall/contexts/donation-pledges/admin-dashboard-service"
	auditservice "pledgewall/contexts/donation-pledges/audit-service"
	leaderboardservice "pledgewall/contexts/donation-pledges/leaderboard-service"
	pledgeservice "pledgewall/contexts/donation-pledges/pledge-service"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	adminKey    string
	pledges     pledgeservice.Module
	audit       auditservice.Module
	leaderboard leaderboardservice.Module
	dashboard   admindashboardservice.Module
}

func New(
	pledges pledgeservice.Module,
	audit auditservice.Module,
	leaderboard leaderboardservice.Module,
	dashboard admindashboardservice.Module,
	adminKey string,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		adminKey:    adminKey,
		pledges:     pledges,
		audit:       audit,
		leaderboard: leaderboard,
		dashboard:   dashboard,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.Handler())
}

// Handler is the full request pipeline, session middleware included.
func (s *Server) Handler() http.Handler {
	return s.withSession(s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /pledge", s.handlePledgePage)
	s.mux.HandleFunc("POST /pledge", s.handlePledgeSubmit)
	s.mux.HandleFunc("GET /leaderboard", s.handleLeaderboard)
	s.mux.HandleFunc("GET /admin", s.handleAdminPage)
	s.mux.HandleFunc("POST /admin", s.handleAdminAction)
	s.mux.HandleFunc("POST /api/clean", s.handleClean)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/pledge", http.StatusSeeOther)
}
