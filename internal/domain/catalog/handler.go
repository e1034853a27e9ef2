package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, cat *Catalog) {
	r.Route("/services", func(sr chi.Router) {
		sr.Get("/", listServicesHandler(cat))
		sr.Post("/", createServiceHandler(cat))
		sr.Put("/{serviceID}", updateServiceHandler(cat))
		sr.Delete("/{serviceID}", deleteServiceHandler(cat))
	})
}

type createServiceRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	EstimatedDuration int    `json:"estimated_duration"` // minutos
}

type updateServiceRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	EstimatedDuration *int    `json:"estimated_duration"`
}

type serviceResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	EstimatedDuration int       `json:"estimated_duration"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func listServicesHandler(cat *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := cat.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]serviceResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toServiceResponse(s))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func createServiceHandler(cat *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createServiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		s, err := cat.Create(r.Context(), CreateInput{
			Name:              req.Name,
			Description:       req.Description,
			EstimatedDuration: req.EstimatedDuration,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toServiceResponse(s))
	}
}

func updateServiceHandler(cat *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID := chi.URLParam(r, "serviceID")

		var req updateServiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		s, err := cat.Update(r.Context(), serviceID, UpdateInput{
			Name:              req.Name,
			Description:       req.Description,
			EstimatedDuration: req.EstimatedDuration,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "service not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toServiceResponse(s))
	}
}

func deleteServiceHandler(cat *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID := chi.URLParam(r, "serviceID")

		if err := cat.Delete(r.Context(), serviceID); err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "service not found", http.StatusNotFound)
			case errors.Is(err, ErrConflict):
				http.Error(w, "service in use", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toServiceResponse(s Service) serviceResponse {
	return serviceResponse{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		EstimatedDuration: s.EstimatedDuration,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
