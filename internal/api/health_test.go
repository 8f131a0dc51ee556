// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

package api_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndquang/staffdesk/internal/api"
)

/*
TestHealthHandlers_Liveness verifies /health answers 200 unconditionally.
*/
func TestHealthHandlers_Liveness(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(api.HealthDependencies{}, slog.New(slog.DiscardHandler))

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ok"`)
}

/*
TestHealthHandlers_Readiness verifies /ready reflects dependency state.
*/
func TestHealthHandlers_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		cacheErr   error
		wantStatus int
		wantBody   string
	}{
		{"all_healthy", nil, nil, http.StatusOK, `"status":"ready"`},
		{"database_down", assert.AnError, nil, http.StatusServiceUnavailable, `"status":"degraded"`},
		{"cache_down", nil, assert.AnError, http.StatusServiceUnavailable, `"status":"degraded"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(api.HealthDependencies{
				CheckDatabase: func() error { return tt.dbErr },
				CheckCache:    func() error { return tt.cacheErr },
			}, slog.New(slog.DiscardHandler))

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest("GET", "/ready", nil))

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}
