// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package favorite

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/request"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/respond"
)

// Handler serves the caller's saved journeys. Every route requires an
// authenticated caller; the router mounts it behind RequireAuth.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the favorite routes.
//
// # Endpoints
//   - GET    / : Saved journeys with current requirement data.
//   - POST   / : Save a journey. Body {"from", "to"}.
//   - DELETE / : Remove a journey. Body {"from", "to"} or query ?from=&to=.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	router.Post("/", handler.add)
	router.Delete("/", handler.remove)
	return router
}

type journeyRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ListWithDetail(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input journeyRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Add(request.Context(), userID, input.From, input.To)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, result)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := journeyRequest{
		From: requestutil.Query(request, "from"),
		To:   requestutil.Query(request, "to"),
	}
	if input.From == "" && input.To == "" && request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	result, err := handler.service.Remove(request.Context(), userID, input.From, input.To)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
