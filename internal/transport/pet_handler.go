package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"petshop/internal/domain"
	"petshop/internal/middleware"
	"petshop/internal/repository"
	"petshop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PetRequest represents the create/update request payload
type PetRequest struct {
	Name      string `json:"name" validate:"required"`
	Category  string `json:"category" validate:"required"`
	Available bool   `json:"available"`
}

// PetHandler handles HTTP requests for pet operations
type PetHandler struct {
	petService service.PetService
	logger     *zap.Logger
}

// NewPetHandler creates a new PetHandler
func NewPetHandler(petService service.PetService, logger *zap.Logger) *PetHandler {
	return &PetHandler{
		petService: petService,
		logger:     logger,
	}
}

// RegisterRoutes registers all pet routes. The id segment is constrained to
// digits so a non-integer id falls through to the router's 404 handler.
func (h *PetHandler) RegisterRoutes(r chi.Router) {
	r.Route("/pets", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/{id:[0-9]+}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
}

// List handles GET /pets with optional exact-match query filters.
// Filter precedence when several are supplied: category, then name,
// then available.
func (h *PetHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.PetFilter{}

	if category := r.URL.Query().Get("category"); category != "" {
		filter.Category = &category
	} else if name := r.URL.Query().Get("name"); name != "" {
		filter.Name = &name
	} else if available := r.URL.Query().Get("available"); available != "" {
		parsed := parseAvailable(available)
		filter.Available = &parsed
	}

	pets, err := h.petService.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list pets", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, pets)
}

// Get handles GET /pets/{id}
func (h *PetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, petNotFoundMessage(chi.URLParam(r, "id")))
		return
	}

	pet, err := h.petService.Get(r.Context(), id)
	if err != nil {
		if err == repository.ErrPetNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, petNotFoundMessage(chi.URLParam(r, "id")))
			return
		}

		h.logger.Error("Failed to get pet", zap.Int64("pet_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, pet)
}

// Create handles POST /pets. The body is either a JSON object or, for html
// form posts, urlencoded form fields.
func (h *PetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req *PetRequest
	var err error

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		h.logger.Debug("Processing form data")
		req, err = decodePetForm(r)
	} else {
		h.logger.Debug("Processing JSON data")
		req, err = decodePetBody(r)
	}

	if err != nil {
		h.respondValidationError(w, err)
		return
	}

	pet := &domain.Pet{
		Name:      req.Name,
		Category:  req.Category,
		Available: req.Available,
	}

	created, err := h.petService.Create(r.Context(), pet)
	if err != nil {
		h.logger.Error("Failed to create pet", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("Pet created", zap.Int64("pet_id", created.ID))

	w.Header().Set("Location", fmt.Sprintf("/pets/%d", created.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, created)
}

// Update handles PUT /pets/{id}. The existence check runs before body
// validation, so an unknown id reports 404 even for an invalid payload.
func (h *PetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, petNotFoundMessage(chi.URLParam(r, "id")))
		return
	}

	if _, err := h.petService.Get(r.Context(), id); err != nil {
		if err == repository.ErrPetNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, petNotFoundMessage(chi.URLParam(r, "id")))
			return
		}

		h.logger.Error("Failed to get pet", zap.Int64("pet_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	req, err := decodePetBody(r)
	if err != nil {
		h.respondValidationError(w, err)
		return
	}

	pet := &domain.Pet{
		Name:      req.Name,
		Category:  req.Category,
		Available: req.Available,
	}

	updated, err := h.petService.Update(r.Context(), id, pet)
	if err != nil {
		if err == repository.ErrPetNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, petNotFoundMessage(chi.URLParam(r, "id")))
			return
		}

		h.logger.Error("Failed to update pet", zap.Int64("pet_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /pets/{id}. Deleting an absent id still returns 204.
func (h *PetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.petService.Delete(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete pet", zap.Int64("pet_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondValidationError maps a payload error to the 400 envelope
func (h *PetHandler) respondValidationError(w http.ResponseWriter, err error) {
	h.logger.Debug("Pet validation failed", zap.Error(err))

	if verr, ok := err.(*domain.ValidationError); ok {
		middleware.RespondWithError(w, http.StatusBadRequest, verr.Message)
		return
	}

	middleware.RespondWithError(w, http.StatusBadRequest, domain.ErrBadPayload.Message)
}

// decodePetBody turns a JSON request body into a validated PetRequest.
// Anything that is not a JSON object (a string, null, an array, an empty
// body) is a bad payload; an object missing a required key names that key.
func decodePetBody(r *http.Request) (*PetRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, domain.ErrBadPayload
	}

	// A JSON null unmarshals into a nil map without error, so check for it
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, domain.ErrBadPayload
	}

	var req PetRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, domain.ErrBadPayload
	}

	if err := middleware.ValidateRequest(&req); err != nil {
		if missing := middleware.MissingFields(err); len(missing) > 0 {
			return nil, domain.NewMissingFieldError(missing[0])
		}
		return nil, domain.ErrBadPayload
	}

	return &req, nil
}

// decodePetForm reads a pet from urlencoded form fields with the same
// required-field rule as the JSON body
func decodePetForm(r *http.Request) (*PetRequest, error) {
	if err := r.ParseForm(); err != nil {
		return nil, domain.ErrBadPayload
	}

	for _, field := range []string{"name", "category"} {
		if r.PostForm.Get(field) == "" {
			return nil, domain.NewMissingFieldError(field)
		}
	}

	return &PetRequest{
		Name:      r.PostForm.Get("name"),
		Category:  r.PostForm.Get("category"),
		Available: parseAvailable(r.PostForm.Get("available")),
	}, nil
}

// parseAvailable applies the truthy rule used by the query filter and form
// posts: "true", "1" and "t" (any case) are true, everything else is false
func parseAvailable(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "t":
		return true
	}
	return false
}

func petNotFoundMessage(id string) string {
	return fmt.Sprintf("Pet with id '%s' was not found.", id)
}
