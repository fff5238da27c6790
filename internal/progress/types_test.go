package progress

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrame(t *testing.T) {
	tests := []struct {
		name    string
		frame   string
		want    ReportProgress
		wantErr bool
	}{
		{
			name:  "processing with message",
			frame: `{"status":"processing","progress":50,"message":"Fetching match history..."}`,
			want:  ReportProgress{Status: StatusProcessing, Progress: 50, Message: "Fetching match history..."},
		},
		{
			name:  "completed without message",
			frame: `{"status":"completed","progress":100}`,
			want:  ReportProgress{Status: StatusCompleted, Progress: 100},
		},
		{
			name:  "out of range progress passes through",
			frame: `{"status":"processing","progress":150}`,
			want:  ReportProgress{Status: StatusProcessing, Progress: 150},
		},
		{
			name:  "completed below 100 is trusted",
			frame: `{"status":"completed","progress":40}`,
			want:  ReportProgress{Status: StatusCompleted, Progress: 40},
		},
		{
			name:  "unknown keys ignored",
			frame: `{"status":"error","progress":0,"message":"boom","jobId":"j1"}`,
			want:  ReportProgress{Status: StatusError, Progress: 0, Message: "boom"},
		},
		{name: "not json", frame: `garbage`, wantErr: true},
		{name: "missing status", frame: `{"progress":10}`, wantErr: true},
		{name: "missing progress", frame: `{"status":"processing"}`, wantErr: true},
		{name: "unknown status", frame: `{"status":"queued","progress":0}`, wantErr: true},
		{name: "fractional progress", frame: `{"status":"processing","progress":12.5}`, wantErr: true},
		{name: "array", frame: `[1,2,3]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFrame([]byte(tt.frame))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateRequestWireFormat(t *testing.T) {
	data, err := json.Marshal(NewGenerateRequest("G2 Esports", "Cloud9"))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"action":"generate","teamName":"G2 Esports","opponentName":"G2 Esports","ourTeam":"Cloud9"}`,
		string(data))
}

func TestConfigValidate(t *testing.T) {
	assert.ErrorIs(t, Config{}.Validate(), ErrMissingEndpoint)
	assert.NoError(t, Config{Simulate: true}.Validate())
	assert.NoError(t, Config{Endpoint: "ws://localhost:8000/ws/report"}.Validate())
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusError.Terminal())
	assert.False(t, StatusConnecting.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.False(t, Status("done").Valid())
}

func TestConnectionFailedIsFresh(t *testing.T) {
	p := ConnectionFailed()
	p.Message = "changed"

	want := ReportProgress{Status: StatusError, Progress: 0, Message: "Connection failed"}
	assert.Equal(t, want, ConnectionFailed())
}
