// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package country

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/request"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/respond"
)

// Handler serves the country directory over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the country routes.
//
// # Endpoints
//   - GET /        : Active countries, flat and grouped by continent.
//   - GET /{code}  : One active country.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listCountries)
	router.Get("/{code}", handler.getCountry)
	return router
}

func (handler *Handler) listCountries(writer http.ResponseWriter, request *http.Request) {
	directory, err := handler.service.Directory(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, directory)
}

func (handler *Handler) getCountry(writer http.ResponseWriter, request *http.Request) {
	c, err := handler.service.FindByCode(request.Context(), requestutil.Param(request, "code"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, c)
}
