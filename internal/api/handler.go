// Package api provides the HTTP handlers for the service broker REST API:
// the platform-facing broker endpoints and the store endpoints consumed by
// bound applications.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/service/broker"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/service/store"
)

// Handler holds the services the HTTP layer dispatches to.
type Handler struct {
	catalog    *broker.CatalogService
	instances  *broker.InstanceService
	bindings   *broker.BindingService
	books      *store.BookStoreService
	keyvalue   *store.KeyValueStore
	authorizer domain.Authorizer
	logger     *slog.Logger
}

// NewHandler creates a Handler. books or keyvalue may be nil depending on
// which service type the broker is configured to offer.
func NewHandler(
	catalog *broker.CatalogService,
	instances *broker.InstanceService,
	bindings *broker.BindingService,
	books *store.BookStoreService,
	keyvalue *store.KeyValueStore,
	authorizer domain.Authorizer,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		catalog:    catalog,
		instances:  instances,
		bindings:   bindings,
		books:      books,
		keyvalue:   keyvalue,
		authorizer: authorizer,
		logger:     logger,
	}
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := httpStatusFromDomainError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
	h.writeJSON(w, status, errorResponse{Code: status, Message: err.Error()})
}

func (h *Handler) decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidBody
	}
	return nil
}
