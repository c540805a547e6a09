package handlers

import (
	"net/http"

	"photofeed/internal/service"
)

func (h *Handlers) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req service.RegisterDeviceRequest
	if !h.decode(w, r, &req) {
		return
	}

	device, err := h.DeviceService.Register(r.Context(), principal, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, device, http.StatusCreated)
}

func (h *Handlers) ListDevices(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	devices, err := h.DeviceService.List(r.Context(), principal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, devices, http.StatusOK)
}
