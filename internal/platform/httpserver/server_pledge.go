package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"pledgewall/contexts/donation-pledges/pledge-service/application/commands"
	"pledgewall/contexts/donation-pledges/pledge-service/domain/entities"
	domainerrors "pledgewall/contexts/donation-pledges/pledge-service/domain/errors"
)

type pledgePageData struct {
	Existing *entities.Pledge
	Success  bool
	Error    string
}

func (s *Server) handlePledgePage(w http.ResponseWriter, r *http.Request) {
	data := pledgePageData{
		Success: r.URL.Query().Get("success") != "",
		Error:   r.URL.Query().Get("error"),
	}

	existing, found, err := s.pledges.Queries.GetBySession(r.Context(), sessionID(r))
	if err != nil {
		s.logger.Error("pledge lookup failed",
			"event", "pledge_session_lookup_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
	} else if found {
		data.Existing = &existing
	}

	s.render(w, http.StatusOK, "pledge.gohtml", data)
}

func (s *Server) handlePledgeSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectPledgeError(w, r, "invalid form submission")
		return
	}

	amountRaw := strings.TrimSpace(r.PostFormValue("amount"))
	amount, err := strconv.ParseInt(amountRaw, 10, 64)
	if err != nil {
		redirectPledgeError(w, r, "amount must be a whole number")
		return
	}

	cmd := commands.SubmitPledgeCommand{
		SessionID:    sessionID(r),
		Name:         strings.TrimSpace(r.PostFormValue("name")),
		Organization: strings.TrimSpace(r.PostFormValue("organization")),
		Amount:       amount,
		Phone:        strings.TrimSpace(r.PostFormValue("phone")),
		Email:        strings.TrimSpace(r.PostFormValue("email")),
	}

	if _, err := s.pledges.Submit.Submit(r.Context(), cmd); err != nil {
		if errors.Is(err, domainerrors.ErrInvalidPledgeInput) {
			redirectPledgeError(w, r, err.Error())
			return
		}
		s.logger.Error("pledge submit failed",
			"event", "pledge_submit_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		redirectPledgeError(w, r, "something went wrong, please try again")
		return
	}

	http.Redirect(w, r, "/pledge?success=true", http.StatusSeeOther)
}

func redirectPledgeError(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/pledge?error="+url.QueryEscape(message), http.StatusSeeOther)
}
