package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// createInstanceBody is the provisioning request sent by the platform.
type createInstanceBody struct {
	ServiceID  string                 `json:"service_id"`
	PlanID     string                 `json:"plan_id"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

type createBindingBody struct {
	ServiceID    string                 `json:"service_id"`
	PlanID       string                 `json:"plan_id"`
	Parameters   map[string]interface{} `json:"parameters,omitempty"`
	BindResource map[string]interface{} `json:"bind_resource,omitempty"`
}

// GetCatalog serves the static service catalog.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog.Catalog())
}

// CreateServiceInstance provisions a service instance. A replay for an
// existing instance ID returns 200 instead of 201 and performs no work.
func (h *Handler) CreateServiceInstance(w http.ResponseWriter, r *http.Request) {
	instanceID := chi.URLParam(r, "instanceID")

	var body createInstanceBody
	if err := h.decode(r, &body); err != nil {
		h.writeError(w, err)
		return
	}

	existed, err := h.instances.Create(r.Context(), domain.CreateInstanceRequest{
		InstanceID:          instanceID,
		ServiceDefinitionID: body.ServiceID,
		PlanID:              body.PlanID,
		Parameters:          body.Parameters,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	h.writeJSON(w, status, map[string]interface{}{})
}

// GetServiceInstance returns the stored instance record.
func (h *Handler) GetServiceInstance(w http.ResponseWriter, r *http.Request) {
	instanceID := chi.URLParam(r, "instanceID")

	instance, err := h.instances.Get(r.Context(), instanceID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"service_id": instance.ServiceDefinitionID,
		"plan_id":    instance.PlanID,
		"parameters": instance.Parameters,
	})
}

// DeleteServiceInstance deprovisions an instance. Deleting an unknown
// instance returns 410 Gone.
func (h *Handler) DeleteServiceInstance(w http.ResponseWriter, r *http.Request) {
	instanceID := chi.URLParam(r, "instanceID")

	if err := h.instances.Delete(r.Context(), instanceID); err != nil {
		if httpStatusFromDomainError(err) == http.StatusNotFound {
			h.writeJSON(w, http.StatusGone, map[string]interface{}{})
			return
		}
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{})
}

// CreateServiceBinding creates a binding and returns its credentials. A
// replay for an existing binding ID returns 200 with the originally issued
// credential map.
func (h *Handler) CreateServiceBinding(w http.ResponseWriter, r *http.Request) {
	instanceID := chi.URLParam(r, "instanceID")
	bindingID := chi.URLParam(r, "bindingID")

	var body createBindingBody
	if err := h.decode(r, &body); err != nil {
		h.writeError(w, err)
		return
	}

	result, err := h.bindings.Create(r.Context(), domain.CreateBindingRequest{
		InstanceID:          instanceID,
		BindingID:           bindingID,
		ServiceDefinitionID: body.ServiceID,
		Parameters:          body.Parameters,
		BindResource:        body.BindResource,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Existed {
		status = http.StatusOK
	}
	h.writeJSON(w, status, map[string]interface{}{
		"credentials": result.Credentials,
	})
}

// GetServiceBinding returns the stored binding with its credential map.
func (h *Handler) GetServiceBinding(w http.ResponseWriter, r *http.Request) {
	bindingID := chi.URLParam(r, "bindingID")

	binding, err := h.bindings.Get(r.Context(), bindingID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"credentials": binding.Credentials,
		"parameters":  binding.Parameters,
	})
}

// DeleteServiceBinding removes a binding and revokes its credentials.
// Deleting an unknown binding returns 410 Gone.
func (h *Handler) DeleteServiceBinding(w http.ResponseWriter, r *http.Request) {
	instanceID := chi.URLParam(r, "instanceID")
	bindingID := chi.URLParam(r, "bindingID")

	err := h.bindings.Delete(r.Context(), domain.DeleteBindingRequest{
		InstanceID:          instanceID,
		BindingID:           bindingID,
		ServiceDefinitionID: r.URL.Query().Get("service_id"),
	})
	if err != nil {
		if httpStatusFromDomainError(err) == http.StatusNotFound {
			h.writeJSON(w, http.StatusGone, map[string]interface{}{})
			return
		}
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{})
}
