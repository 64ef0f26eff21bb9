// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package visa

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/request"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/respond"
)

// Handler serves visa queries over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public visa routes. Authentication is optional: a
// signed-in caller additionally gets the favorite flag on searches.
//
// # Endpoints
//   - GET /search?from=&to=     : Requirement for one journey.
//   - GET /from/{country}       : Every destination from an origin, grouped by level.
//   - GET /stats                : Dataset-wide counts.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/search", handler.search)
	router.Get("/from/{country}", handler.listDestinations)
	router.Get("/stats", handler.statistics)
	return router
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	var userID string
	if claims := requestutil.Claims(request); claims != nil {
		userID = claims.UserID
	}

	result, err := handler.service.Search(
		request.Context(),
		requestutil.Query(request, "from"),
		requestutil.Query(request, "to"),
		userID,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) listDestinations(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.ListDestinations(request.Context(), requestutil.Param(request, "country"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) statistics(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.Statistics(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
