package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"mergington-project/activities-service/models"
	"mergington-project/activities-service/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

type ActivityHandler struct {
	service *services.ActivityService
	logger  *logrus.Logger
}

func NewActivityHandler(service *services.ActivityService, logger *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes wires every activity route onto the router.
func (h *ActivityHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/activities", h.GetAllActivities).Methods(http.MethodGet)
	r.HandleFunc("/activities", h.CreateActivity).Methods(http.MethodPost)
	r.HandleFunc("/activities/{name}", h.GetActivity).Methods(http.MethodGet)
	r.HandleFunc("/activities/{name}", h.UpdateActivity).Methods(http.MethodPut)
	r.HandleFunc("/activities/{name}", h.DeleteActivity).Methods(http.MethodDelete)
	r.HandleFunc("/activities/{name}/signup", h.SignupForActivity).Methods(http.MethodPost)
	r.HandleFunc("/activities/{name}/unregister", h.UnregisterFromActivity).Methods(http.MethodDelete)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, format string, args ...interface{}) {
	writeJSON(w, status, map[string]string{"message": fmt.Sprintf(format, args...)})
}

// GetAllActivities returns the activity mapping verbatim; an unreachable
// store yields an empty object rather than an error.
func (h *ActivityHandler) GetAllActivities(w http.ResponseWriter, r *http.Request) {
	activities := h.service.GetAllActivities(r.Context())
	writeJSON(w, http.StatusOK, activities)
}

func (h *ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	activity, err := h.service.GetActivity(r.Context(), name)
	if err != nil {
		http.Error(w, "Activity not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, activity)
}

func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var activity models.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if activity.Name == "" {
		http.Error(w, "Activity name is required", http.StatusBadRequest)
		return
	}
	if activity.MaxParticipants < 1 {
		http.Error(w, "max_participants must be a positive integer", http.StatusBadRequest)
		return
	}

	if err := h.service.CreateActivity(r.Context(), activity.Name, activity.Details()); err != nil {
		if errors.Is(err, services.ErrActivityExists) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create activity", http.StatusInternalServerError)
		return
	}

	writeMessage(w, http.StatusCreated, "Created activity %s", activity.Name)
}

func (h *ActivityHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req struct {
		Description     *string `json:"description"`
		Schedule        *string `json:"schedule"`
		MaxParticipants *int    `json:"max_participants"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	updates := bson.M{}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Schedule != nil {
		updates["schedule"] = *req.Schedule
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants < 1 {
			http.Error(w, "max_participants must be a positive integer", http.StatusBadRequest)
			return
		}
		updates["max_participants"] = *req.MaxParticipants
	}
	if len(updates) == 0 {
		http.Error(w, "No fields to update", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateActivity(r.Context(), name, updates); err != nil {
		if errors.Is(err, services.ErrActivityNotFound) {
			http.Error(w, "Activity not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update activity", http.StatusInternalServerError)
		return
	}

	writeMessage(w, http.StatusOK, "Updated activity %s", name)
}

func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.service.DeleteActivity(r.Context(), name); err != nil {
		if errors.Is(err, services.ErrActivityNotFound) {
			http.Error(w, "Activity not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete activity", http.StatusInternalServerError)
		return
	}

	writeMessage(w, http.StatusOK, "Deleted activity %s", name)
}

// SignupForActivity signs a student up for an activity.
func (h *ActivityHandler) SignupForActivity(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "Missing email parameter", http.StatusBadRequest)
		return
	}

	if err := h.service.SignupForActivity(r.Context(), name, email); err != nil {
		switch {
		case errors.Is(err, services.ErrActivityNotFound):
			http.Error(w, "Activity not found", http.StatusNotFound)
		case errors.Is(err, services.ErrAlreadySignedUp):
			http.Error(w, "Student is already signed up", http.StatusBadRequest)
		default:
			h.logger.Errorf("Signup for %s failed after validation: %v", name, err)
			http.Error(w, "Failed to sign up student", http.StatusInternalServerError)
		}
		return
	}

	writeMessage(w, http.StatusOK, "Signed up %s for %s", email, name)
}

// UnregisterFromActivity removes a student from an activity.
func (h *ActivityHandler) UnregisterFromActivity(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "Missing email parameter", http.StatusBadRequest)
		return
	}

	if err := h.service.UnregisterFromActivity(r.Context(), name, email); err != nil {
		switch {
		case errors.Is(err, services.ErrActivityNotFound):
			http.Error(w, "Activity not found", http.StatusNotFound)
		case errors.Is(err, services.ErrNotSignedUp):
			http.Error(w, "Student is not signed up for this activity", http.StatusBadRequest)
		default:
			h.logger.Errorf("Unregister from %s failed after validation: %v", name, err)
			http.Error(w, "Failed to unregister student", http.StatusInternalServerError)
		}
		return
	}

	writeMessage(w, http.StatusOK, "Unregistered %s from %s", email, name)
}
