package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	dashboard "pledgewall/contexts/donation-pledges/admin-dashboard-service/application"
	"pledgewall/contexts/donation-pledges/pledge-service/application/commands"
	domainerrors "pledgewall/contexts/donation-pledges/pledge-service/domain/errors"
)

type adminPageData struct {
	dashboard.Dashboard
	Query adminQueryEcho
	Error string
}

// adminQueryEcho carries the raw query values back into the filter form
// and the sort links.
type adminQueryEcho struct {
	Search    string
	MinAmount string
	MaxAmount string
	StartDate string
	EndDate   string
	SortBy    string
	SortDir   string
}

// SortLink rebuilds the admin URL sorted on the given column, toggling
// direction when the column is already active.
func (q adminQueryEcho) SortLink(column string) string {
	direction := "asc"
	if q.SortBy == column && q.SortDir != "desc" {
		direction = "desc"
	}

	values := url.Values{}
	for name, value := range map[string]string{
		"search":    q.Search,
		"minAmount": q.MinAmount,
		"maxAmount": q.MaxAmount,
		"startDate": q.StartDate,
		"endDate":   q.EndDate,
	} {
		if value != "" {
			values.Set(name, value)
		}
	}
	values.Set("sortColumn", column)
	values.Set("sortDirection", direction)
	return "/admin?" + values.Encode()
}

func (s *Server) handleAdminPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	echo := adminQueryEcho{
		Search:    query.Get("search"),
		MinAmount: query.Get("minAmount"),
		MaxAmount: query.Get("maxAmount"),
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
		SortBy:    query.Get("sortColumn"),
		SortDir:   query.Get("sortDirection"),
	}

	data := adminPageData{
		Dashboard: s.dashboard.Service.Dashboard(r.Context(), buildAdminFilter(echo)),
		Query:     echo,
		Error:     query.Get("error"),
	}
	s.render(w, http.StatusOK, "admin.gohtml", data)
}

// buildAdminFilter turns raw query strings into a typed filter. Values
// that fail to parse are ignored rather than failing the page.
func buildAdminFilter(echo adminQueryEcho) dashboard.Filter {
	filter := dashboard.Filter{
		Search:        echo.Search,
		SortColumn:    echo.SortBy,
		SortDirection: echo.SortDir,
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(echo.MinAmount), 10, 64); err == nil {
		filter.MinAmount = &v
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(echo.MaxAmount), 10, 64); err == nil {
		filter.MaxAmount = &v
	}
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(echo.StartDate)); err == nil {
		filter.StartDate = &t
	}
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(echo.EndDate)); err == nil {
		// End dates are inclusive of the whole day.
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}
	return filter
}

func (s *Server) handleAdminAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectAdminError(w, r, "invalid form submission")
		return
	}

	action := r.PostFormValue("action")
	pledgeID := r.PostFormValue("id")

	var err error
	switch action {
	case "delete":
		err = s.pledges.Admin.Delete(r.Context(), pledgeID)
	case "update":
		amount, parseErr := strconv.ParseInt(strings.TrimSpace(r.PostFormValue("amount")), 10, 64)
		if parseErr != nil {
			redirectAdminError(w, r, "amount must be a whole number")
			return
		}
		_, err = s.pledges.Admin.Update(r.Context(), commands.UpdatePledgeCommand{
			PledgeID:     pledgeID,
			Name:         strings.TrimSpace(r.PostFormValue("name")),
			Organization: strings.TrimSpace(r.PostFormValue("organization")),
			Amount:       amount,
		})
	default:
		redirectAdminError(w, r, "unknown action")
		return
	}

	if err != nil {
		if errors.Is(err, domainerrors.ErrPledgeNotFound) {
			redirectAdminError(w, r, "pledge not found")
			return
		}
		if errors.Is(err, domainerrors.ErrInvalidPledgeInput) {
			redirectAdminError(w, r, "a name and a positive amount are required")
			return
		}
		s.logger.Error("admin action failed",
			"event", "admin_action_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"action", action,
			"error", err.Error(),
		)
		redirectAdminError(w, r, "something went wrong")
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func redirectAdminError(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/admin?error="+url.QueryEscape(message), http.StatusSeeOther)
}
