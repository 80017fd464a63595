package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/gorilla/mux"

	"stacklens/internal/profile"
	"stacklens/pkg/errors"
	"stacklens/pkg/logger"
	"stacklens/pkg/validator"
)

// ProfileHandler manages wallet profile endpoints.
type ProfileHandler struct {
	service   *profile.Service
	validator *validator.Validator
	logger    logger.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(service *profile.Service, val *validator.Validator, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{service: service, validator: val, logger: log}
}

type createProfileRequest struct {
	Address  string `json:"address" validate:"required,stx_address"`
	Avatar   string `json:"avatar" validate:"omitempty,max=512"`
	Username string `json:"username" validate:"omitempty,min=3,max=32"`
	Bio      string `json:"bio" validate:"omitempty,max=280"`
}

// Create registers a profile for a wallet address.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), profile.CreateInput{
		Address:  req.Address,
		Avatar:   req.Avatar,
		Username: req.Username,
		Bio:      req.Bio,
	})
	if err != nil {
		switch {
		case stderrors.Is(err, errors.ErrProfileAlreadyExists):
			respondError(w, http.StatusConflict, "Profile already exists for this address")
		case stderrors.Is(err, errors.ErrUsernameTaken):
			respondError(w, http.StatusConflict, "Username already taken")
		case stderrors.Is(err, errors.ErrInvalidAddress):
			respondError(w, http.StatusBadRequest, "Invalid Stacks address")
		default:
			h.logger.Error("Profile creation failed", map[string]interface{}{"error": err.Error()})
			respondError(w, http.StatusInternalServerError, "Failed to create profile")
		}
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// Get returns the profile for the address in the path.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	found, err := h.service.Get(r.Context(), address)
	if err != nil {
		switch {
		case stderrors.Is(err, errors.ErrInvalidAddress):
			respondError(w, http.StatusBadRequest, "Invalid Stacks address")
		case stderrors.Is(err, errors.ErrProfileNotFound):
			respondError(w, http.StatusNotFound, "Profile not found")
		default:
			h.logger.Error("Profile lookup failed", map[string]interface{}{"error": err.Error()})
			respondError(w, http.StatusInternalServerError, "Failed to fetch profile")
		}
		return
	}

	respondJSON(w, http.StatusOK, found)
}

type updateProfileRequest struct {
	Avatar   *string `json:"avatar" validate:"omitempty,max=512"`
	Username *string `json:"username" validate:"omitempty,min=3,max=32"`
	Bio      *string `json:"bio" validate:"omitempty,max=280"`
}

// Update applies partial changes to the profile for the address in the path.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), address, profile.UpdateInput{
		Avatar:   req.Avatar,
		Username: req.Username,
		Bio:      req.Bio,
	})
	if err != nil {
		switch {
		case stderrors.Is(err, errors.ErrInvalidAddress):
			respondError(w, http.StatusBadRequest, "Invalid Stacks address")
		case stderrors.Is(err, errors.ErrProfileNotFound):
			respondError(w, http.StatusNotFound, "Profile not found")
		case stderrors.Is(err, errors.ErrUsernameTaken):
			respondError(w, http.StatusConflict, "Username already taken")
		default:
			h.logger.Error("Profile update failed", map[string]interface{}{"error": err.Error()})
			respondError(w, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	respondJSON(w, http.StatusOK, updated)
}
