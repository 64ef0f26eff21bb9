// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/constants"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(context.Context) error

	// CheckCache pings the Redis client. Redis only backs caches, so a
	// failure marks the service degraded but still ready.
	CheckCache func(context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// checkFailed is the only failure text exposed. Driver errors stay in the logs.
const checkFailed = "unreachable"

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health.
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

// readiness handles GET /ready.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, 2)
	status, httpStatus := "ready", http.StatusOK

	if handler.dependencies.CheckDatabase != nil {
		result := handler.check(request.Context(), "postgres", handler.dependencies.CheckDatabase)
		if !result.IsOK {
			status, httpStatus = "unavailable", http.StatusServiceUnavailable
		}
		results = append(results, result)
	}

	if handler.dependencies.CheckCache != nil {
		result := handler.check(request.Context(), "redis", handler.dependencies.CheckCache)
		if !result.IsOK && httpStatus == http.StatusOK {
			status = "degraded"
		}
		results = append(results, result)
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
		constants.FieldStatus: status,
		constants.FieldChecks: results,
	}})
}

func (handler *healthHandler) check(context context.Context, name string, ping func(context.Context) error) checkResult {
	result := checkResult{Name: name, IsOK: true}
	if err := ping(context); err != nil {
		result.IsOK = false
		result.Error = checkFailed
		handler.logger.ErrorContext(context, "readiness_check_failed",
			slog.String("dependency", name),
			slog.Any("error", err),
		)
	}
	return result
}
