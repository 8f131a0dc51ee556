// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

package api

import (
	"log/slog"
	"net/http"

	"github.com/ndquang/staffdesk/internal/platform/respond"
)

// HealthDependencies carries the ping functions the readiness probe runs.
// A nil function skips that check, which keeps tests and partial deployments
// simple.
type HealthDependencies struct {
	// CheckDatabase pings PostgreSQL.
	CheckDatabase func() error
	// CheckCache pings Redis.
	CheckCache func() error
}

// NewHealthHandlers returns the probe endpoints: liveness for GET /health
// (is the process up) and readiness for GET /ready (can it serve traffic).
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	liveness = func(writer http.ResponseWriter, request *http.Request) {
		respond.OK(writer, map[string]string{"status": "ok"})
	}

	type probe struct {
		name  string
		check func() error
	}
	probes := []probe{
		{"postgres", deps.CheckDatabase},
		{"redis", deps.CheckCache},
	}

	type probeResult struct {
		Name  string `json:"name"`
		IsOK  bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		results := make([]probeResult, 0, len(probes))
		ready := true

		for _, p := range probes {
			if p.check == nil {
				continue
			}

			result := probeResult{Name: p.name, IsOK: true}
			if err := p.check(); err != nil {
				result.IsOK = false
				result.Error = err.Error()
				ready = false
				logger.Error("readiness_check_failed",
					slog.String("dependency", p.name),
					slog.Any("error", err),
				)
			}
			results = append(results, result)
		}

		status, httpStatus := "ready", http.StatusOK
		if !ready {
			status, httpStatus = "degraded", http.StatusServiceUnavailable
		}

		respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
			"status": status,
			"checks": results,
		}})
	}

	return liveness, readiness
}
