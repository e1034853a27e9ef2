package dailylists

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"puppy-spa/internal/domain/queue"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, queueSvc *queue.Service) {
	r.Route("/partitions", func(pr chi.Router) {
		pr.Get("/", listPartitionsHandler(svc, queueSvc))
		pr.Post("/", createPartitionHandler(svc, queueSvc))
		pr.Get("/{date}", getPartitionHandler(svc, queueSvc))
	})
}

type createPartitionRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

// partitionResponse es la lista diaria con sus entradas resueltas, position asc.
type partitionResponse struct {
	ID        string               `json:"id"`
	Date      string               `json:"date"`
	Entries   []partitionEntryView `json:"entries"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

type partitionEntryView struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	Position    int        `json:"position"`
	ArrivalTime time.Time  `json:"arrival_time"`
	Notes       string     `json:"notes"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	OwnerName         string `json:"owner_name"`
	PuppyName         string `json:"puppy_name"`
	PuppyBreed        string `json:"puppy_breed"`
	ServiceName       string `json:"service_name"`
	EstimatedDuration int    `json:"estimated_duration"`
}

// listPartitionsHandler godoc
// @Summary Todas las listas diarias
// @Description Devuelve todas las listas (fecha más reciente primero), cada una con sus entradas resueltas. Fan-out O(listas × entradas); a la escala del spa alcanza.
// @Tags partitions
// @Produce json
// @Success 200 {array} partitionResponse
// @Router /partitions [get]
func listPartitionsHandler(svc *Service, queueSvc *queue.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lists, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]partitionResponse, 0, len(lists))
		for _, l := range lists {
			entries, err := queueSvc.ListByPartition(r.Context(), l.ID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			out = append(out, toPartitionResponse(l, entries))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getPartitionHandler godoc
// @Summary Lista diaria por fecha
// @Description 404 si nunca se creó una lista para esa fecha; el caller decide si hace POST /partitions.
// @Tags partitions
// @Produce json
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {object} partitionResponse
// @Failure 400 {string} string "fecha inválida"
// @Failure 404 {string} string "partition not found"
// @Router /partitions/{date} [get]
func getPartitionHandler(svc *Service, queueSvc *queue.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := svc.GetByDate(r.Context(), chi.URLParam(r, "date"))
		if err != nil {
			writePartitionError(w, err)
			return
		}

		entries, err := queueSvc.ListByPartition(r.Context(), l.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPartitionResponse(l, entries))
	}
}

// createPartitionHandler godoc
// @Summary Crear lista diaria
// @Description Creación idempotente: si la lista de esa fecha ya existe se devuelve tal cual (mismo id), sin error.
// @Tags partitions
// @Accept json
// @Produce json
// @Param payload body createPartitionRequest true "fecha YYYY-MM-DD"
// @Success 201 {object} partitionResponse
// @Failure 400 {string} string "invalid json / fecha inválida"
// @Router /partitions [post]
func createPartitionHandler(svc *Service, queueSvc *queue.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPartitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		l, err := svc.CreateForDate(r.Context(), req.Date)
		if err != nil {
			writePartitionError(w, err)
			return
		}

		entries, err := queueSvc.ListByPartition(r.Context(), l.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toPartitionResponse(l, entries))
	}
}

func writePartitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "partition not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPartitionResponse(l DailyList, entries []queue.EntryDetail) partitionResponse {
	views := make([]partitionEntryView, 0, len(entries))
	for _, d := range entries {
		views = append(views, partitionEntryView{
			ID:                d.ID,
			Status:            string(d.Entry.Status),
			Position:          d.Position,
			ArrivalTime:       d.ArrivalTime,
			Notes:             d.Entry.Notes,
			CompletedAt:       d.CompletedAt,
			OwnerName:         d.Owner.Name,
			PuppyName:         d.Puppy.Name,
			PuppyBreed:        d.Puppy.Breed,
			ServiceName:       d.Service.Name,
			EstimatedDuration: d.Service.EstimatedDuration,
		})
	}

	return partitionResponse{
		ID:        l.ID,
		Date:      l.Date,
		Entries:   views,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
