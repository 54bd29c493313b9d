package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetValue returns the value stored under a key.
func (h *Handler) GetValue(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	key := chi.URLParam(r, "key")
	if err := h.checkStoreAccess(r, storeID, false); err != nil {
		h.writeError(w, err)
		return
	}

	value, err := h.keyvalue.Get(storeID, key)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"value": value})
}

// PutValue stores a value under a key.
func (h *Handler) PutValue(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	key := chi.URLParam(r, "key")
	if err := h.checkStoreAccess(r, storeID, true); err != nil {
		h.writeError(w, err)
		return
	}

	var body struct {
		Value interface{} `json:"value"`
	}
	if err := h.decode(r, &body); err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.keyvalue.Put(storeID, key, body.Value); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"value": body.Value})
}

// DeleteValue removes a key and returns the removed value.
func (h *Handler) DeleteValue(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	key := chi.URLParam(r, "key")
	if err := h.checkStoreAccess(r, storeID, true); err != nil {
		h.writeError(w, err)
		return
	}

	value, err := h.keyvalue.Remove(storeID, key)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"value": value})
}
