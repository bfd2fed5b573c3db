package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dota-scout/internal/api"
	"dota-scout/internal/normalizer"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "not found",
			err:        &api.UpstreamError{Kind: api.ErrNotFound, Provider: "opendota", Path: "/teams/1"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "rate limited",
			err:        &api.UpstreamError{Kind: api.ErrRateLimited, Provider: "opendota", Path: "/teams/1"},
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "validation",
			err:        &normalizer.ValidationError{Provider: "opendota", Entity: "team", Err: errors.New("missing team_id")},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "network",
			err:        &api.UpstreamError{Kind: api.ErrNetwork, Provider: "opendota", Path: "/teams/1"},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	s := &Server{logger: zerolog.Nop()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/teams/1", nil)

			s.writeError(rec, req, tt.err)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			env := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantStatus, env.Status)
			assert.NotEmpty(t, env.Error)
			assert.NotEmpty(t, env.Details)
			assert.Nil(t, env.Data)
		})
	}
}

func TestWriteData_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeData(rec, map[string]string{"name": "Team Spirit"})

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, env.Status)
	assert.Empty(t, env.Error)
	require.IsType(t, map[string]any{}, env.Data)
	assert.Equal(t, "Team Spirit", env.Data.(map[string]any)["name"])
}

func TestPathID_RejectsNonNumericAndNonPositive(t *testing.T) {
	s := &Server{logger: zerolog.Nop()}
	mux := http.NewServeMux()
	s.Register(mux)

	for _, path := range []string{"/teams/abc", "/teams/0", "/teams/-3"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusBadRequest, rec.Code, path)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "invalid request", env.Error)
	}
}

func TestTeamPlayers_RequiresIDList(t *testing.T) {
	s := &Server{logger: zerolog.Nop()}
	mux := http.NewServeMux()
	s.Register(mux)

	for _, path := range []string{"/teams/1/players", "/teams/1/players?ids=", "/teams/1/players?ids=1,x"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList("1, 2,3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	ids, err = parseIDList("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = parseIDList("1,two")
	require.Error(t, err)
}

func TestFetchOptions_QueryFlags(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/teams/1?force=true&stale=true", nil)
	opts := fetchOptions(req)
	assert.True(t, opts.Force)
	assert.True(t, opts.AllowStale)

	req = httptest.NewRequest(http.MethodGet, "/teams/1?force=1", nil)
	opts = fetchOptions(req)
	assert.False(t, opts.Force)
	assert.False(t, opts.AllowStale)
}
