package http

import (
	"net/http"

	"github.com/Sentinel-Gate/storefront/internal/service"
)

// loginRequest is the JSON body of POST /api/users/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *APIHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.respondBadBody(w, r)
		return
	}

	sess, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.recordLogin("failure")
		h.respondServiceError(w, r, err)
		return
	}
	h.recordLogin("success")
	LoggerFromContext(r.Context()).Info("user logged in", "user_id", sess.ID)
	h.respondJSON(w, r, http.StatusOK, sess)
}

func (h *APIHandler) recordLogin(result string) {
	if h.metrics != nil {
		h.metrics.LoginAttempts.WithLabelValues(result).Inc()
	}
}

func (h *APIHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := h.readJSON(w, r, &req); err != nil {
		h.respondBadBody(w, r)
		return
	}

	sess, err := h.users.Register(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, sess)
}

func (h *APIHandler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())
	profile, err := h.users.Profile(r.Context(), caller.ID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, profile)
}

func (h *APIHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req service.ProfileUpdate
	if err := h.readJSON(w, r, &req); err != nil {
		h.respondBadBody(w, r)
		return
	}

	caller := UserFromContext(r.Context())
	sess, err := h.users.UpdateProfile(r.Context(), caller.ID, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, sess)
}

func (h *APIHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, users)
}

func (h *APIHandler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	profile, err := h.users.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, profile)
}

func (h *APIHandler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req service.AdminUserUpdate
	if err := h.readJSON(w, r, &req); err != nil {
		h.respondBadBody(w, r)
		return
	}

	profile, err := h.users.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, profile)
}

func (h *APIHandler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.users.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, map[string]string{"message": id + " user deleted successfully"})
}
