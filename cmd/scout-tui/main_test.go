package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudy-poro/scout/internal/client"
	"github.com/cloudy-poro/scout/internal/fixtures"
)

func TestMockModeFetchesOffline(t *testing.T) {
	t.Setenv("SCOUT_USE_MOCK", "true")
	opts := &options{}
	cmd := buildRootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", "", "--api-url", "http://127.0.0.1:1"}))

	cfg, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	cfg.Server.AnalysisDelay = 0

	f := newFetcher(cfg)
	require.IsType(t, &fixtures.Fetcher{}, f)

	r, err := f.FetchTeamAnalysis(context.Background(), client.TeamAnalysisRequest{TeamID: "karmine-corp"})
	require.NoError(t, err)
	assert.Equal(t, "Karmine Corp", r.ReportInfo.TeamName)

	_, err = f.FetchTeamAnalysis(context.Background(), client.TeamAnalysisRequest{TeamID: fixtures.NotFoundID})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, fixtures.CodeTeamNotFound, apiErr.Code)
}

func TestLiveModeFetchesOverHTTP(t *testing.T) {
	t.Setenv("SCOUT_USE_MOCK", "false")
	opts := &options{}
	cmd := buildRootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", ""}))

	cfg, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.IsType(t, &client.HTTPClient{}, newFetcher(cfg))
}

func TestLoadConfigTheme(t *testing.T) {
	t.Setenv("SCOUT_THEME", "")
	opts := &options{}
	cmd := buildRootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", "", "--theme", "light"}))

	cfg, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme)

	opts = &options{}
	cmd = buildRootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", "", "--theme", "sepia"}))
	_, err = loadConfig(cmd, opts)
	assert.Error(t, err)
}
