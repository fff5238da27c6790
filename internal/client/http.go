package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// APIError is the error envelope returned by the backend on non-2xx responses.
type APIError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type errorEnvelope struct {
	Error *APIError `json:"error"`
}

// HTTPClient makes REST calls to the report backend.
type HTTPClient struct {
	baseURL string
	ourTeam string
	client  *http.Client
}

// NewHTTPClient creates a client targeting the given base URL (e.g.
// "http://localhost:8000"). ourTeam is sent with every report request as
// matchup context.
func NewHTTPClient(baseURL, ourTeam string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		ourTeam: ourTeam,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchTeamAnalysis fetches /api/teams/{id}/analysis.
func (c *HTTPClient) FetchTeamAnalysis(ctx context.Context, req TeamAnalysisRequest) (*TeamAnalysisReport, error) {
	if req.TeamID == "" {
		return nil, fmt.Errorf("team id is required")
	}
	path := "/api/teams/" + url.PathEscape(req.TeamID) + "/analysis"

	var out TeamAnalysisReport
	if err := c.get(ctx, path, c.analysisQuery(req), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) analysisQuery(req TeamAnalysisRequest) url.Values {
	q := url.Values{}
	if c.ourTeam != "" {
		q.Set("ourTeam", c.ourTeam)
	}
	if tf := req.Timeframe; tf != nil {
		if tf.StartDate != "" {
			q.Set("startDate", tf.StartDate)
		}
		if tf.EndDate != "" {
			q.Set("endDate", tf.EndDate)
		}
		if tf.PatchVersion != "" {
			q.Set("patchVersion", tf.PatchVersion)
		}
		if tf.LastNGames > 0 {
			q.Set("lastNGames", strconv.Itoa(tf.LastNGames))
		}
	}
	if req.IncludePlayerAnalysis != nil {
		q.Set("includePlayerAnalysis", strconv.FormatBool(*req.IncludePlayerAnalysis))
	}
	return q
}

func (c *HTTPClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

// decodeError unwraps the {"error": {...}} envelope, falling back to a
// status-derived code when the body is not an envelope.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var env errorEnvelope
	if json.Unmarshal(body, &env) == nil && env.Error != nil && env.Error.Code != "" {
		env.Error.Status = resp.StatusCode
		if env.Error.Details == nil {
			env.Error.Details = map[string]any{}
		}
		return env.Error
	}
	return &APIError{
		Status:  resp.StatusCode,
		Code:    fmt.Sprintf("HTTP_%d", resp.StatusCode),
		Message: string(body),
		Details: map[string]any{},
	}
}
