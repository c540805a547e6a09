package handlers

import "net/http"

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.GetUser(r.Context(), principal.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, newUserResponse(user), http.StatusOK)
}
