package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cloudy-poro/scout/internal/client"
	"github.com/cloudy-poro/scout/internal/fixtures"
)

// Error codes carried in the {"error": {...}} envelope.
const (
	CodeTeamNotFound = fixtures.CodeTeamNotFound
	CodeInvalidQuery = "INVALID_QUERY"
	CodeInternal     = "INTERNAL_ERROR"
)

type errorEnvelope struct {
	Error client.APIError `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, message string, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	writeJSON(w, status, errorEnvelope{Error: client.APIError{Code: code, Message: message, Details: details}})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("id")
	log := s.log.WithValues("team", teamID, "request", r.Header.Get(requestIDHeader))

	q := r.URL.Query()
	tf := &client.Timeframe{
		StartDate:    q.Get("startDate"),
		EndDate:      q.Get("endDate"),
		PatchVersion: q.Get("patchVersion"),
	}
	if v := q.Get("lastNGames"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, CodeInvalidQuery,
				"lastNGames must be a positive integer", map[string]any{"lastNGames": v})
			return
		}
		tf.LastNGames = n
	}
	req := client.TeamAnalysisRequest{TeamID: teamID, Timeframe: tf}
	if q.Get("includePlayerAnalysis") == "false" {
		include := false
		req.IncludePlayerAnalysis = &include
	}

	report, err := s.reports.FetchTeamAnalysis(r.Context(), req)
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		writeError(w, apiErr.Status, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	case r.Context().Err() != nil:
		log.V(1).Info("analysis request abandoned")
		return
	case err != nil:
		log.Error(err, "build analysis")
		writeError(w, http.StatusInternalServerError, CodeInternal, err.Error(), nil)
		return
	}
	log.Info("serving analysis")
	writeJSON(w, http.StatusOK, report)
}
