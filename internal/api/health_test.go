// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/api"
)

func healthy(context.Context) error { return nil }

func failing(context.Context) error { return errors.New("dial tcp: connection refused") }

/*
TestReadiness maps dependency failures to status codes.
*/
func TestReadiness(t *testing.T) {
	tests := []struct {
		name     string
		database func(context.Context) error
		cache    func(context.Context) error
		code     int
		status   string
	}{
		{"all_healthy", healthy, healthy, http.StatusOK, "ready"},
		{"cache_down_is_degraded", healthy, failing, http.StatusOK, "degraded"},
		{"database_down", failing, healthy, http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(api.HealthDependencies{
				CheckDatabase: tt.database,
				CheckCache:    tt.cache,
			}, slog.New(slog.NewTextHandler(io.Discard, nil)))

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.code, recorder.Code)

			var envelope struct {
				Data struct {
					Status string `json:"status"`
				} `json:"data"`
			}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
			assert.Equal(t, tt.status, envelope.Data.Status)
		})
	}
}

/*
TestReadiness_HidesDriverErrors keeps connection details out of the body.
*/
func TestReadiness_HidesDriverErrors(t *testing.T) {
	_, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: failing,
		CheckCache:    failing,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	body := recorder.Body.String()
	assert.NotContains(t, body, "dial tcp")
	assert.NotContains(t, body, "connection refused")

	var envelope struct {
		Data struct {
			Checks []struct {
				Name  string `json:"name"`
				OK    bool   `json:"ok"`
				Error string `json:"error"`
			} `json:"checks"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(strings.NewReader(body)).Decode(&envelope))
	require.Len(t, envelope.Data.Checks, 2)
	for _, check := range envelope.Data.Checks {
		assert.False(t, check.OK)
		assert.Equal(t, "unreachable", check.Error)
	}
}
