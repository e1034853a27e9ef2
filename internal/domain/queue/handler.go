package queue

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"puppy-spa/internal/domain/catalog"
	"puppy-spa/internal/domain/owners"
	"puppy-spa/internal/domain/puppies"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/queue", func(qr chi.Router) {
		qr.Post("/", createEntryHandler(svc))
		qr.Get("/", listEntriesHandler(svc))
		qr.Get("/search", searchEntriesHandler(svc))

		qr.Get("/{entryID}", getEntryHandler(svc))
		qr.Put("/{entryID}", updateEntryHandler(svc))
		qr.Delete("/{entryID}", deleteEntryHandler(svc))

		// Atajos de la UI: checkbox de completado y flechas de reorden.
		qr.Post("/{entryID}/toggle", toggleEntryHandler(svc))
		qr.Post("/{entryID}/move", moveEntryHandler(svc))
	})
}

type ownerPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type puppyPayload struct {
	Name  string `json:"name"`
	Breed string `json:"breed"`
	Age   int    `json:"age"`
	Notes string `json:"notes"`
}

// createEntryRequest es el alta compuesta: owner + puppy + servicio elegido.
type createEntryRequest struct {
	Owner         ownerPayload `json:"owner"`
	Puppy         puppyPayload `json:"puppy"`
	ServiceID     string       `json:"serviceId"`
	Notes         string       `json:"notes"`
	PartitionDate string       `json:"partitionDate"` // YYYY-MM-DD opcional
}

type updateEntryRequest struct {
	// Punteros para update parcial: nil = no tocar.
	Status   *string `json:"status" enums:"waiting,in-progress,completed,cancelled"`
	Position *int    `json:"position"`
	Notes    *string `json:"notes"`
}

type moveEntryRequest struct {
	Direction string `json:"direction" enums:"up,down"`
}

type ownerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type puppyResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Breed string `json:"breed"`
	Age   int    `json:"age"`
	Notes string `json:"notes"`
}

type entryServiceResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	EstimatedDuration int    `json:"estimated_duration"`
}

// entryResponse es una entrada resuelta con owner/puppy/service y la fecha de
// su lista diaria.
type entryResponse struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	PuppyID     string     `json:"puppy_id"`
	ServiceID   string     `json:"service_id"`
	DailyListID string     `json:"daily_list_id,omitempty"`
	ArrivalTime time.Time  `json:"arrival_time"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Position    int        `json:"position"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Owner   ownerResponse        `json:"owner"`
	Puppy   puppyResponse        `json:"puppy"`
	Service entryServiceResponse `json:"service"`
	Date    string               `json:"date,omitempty"`
}

// createEntryHandler godoc
// @Summary Alta en la lista de espera
// @Description Crea owner + puppy + entrada en un solo paso. La entrada queda en `waiting` con la siguiente posición libre. Si viene `partitionDate`, la entrada se cuelga de la lista de ese día (creándola si no existe).
// @Tags queue
// @Accept json
// @Produce json
// @Param payload body createEntryRequest true "Datos del alta; partitionDate en formato YYYY-MM-DD"
// @Success 201 {object} entryResponse
// @Failure 400 {string} string "invalid json / datos inválidos / servicio desconocido"
// @Router /queue [post]
func createEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Create(r.Context(), CreateInput{
			Owner: OwnerInput{
				Name:  req.Owner.Name,
				Email: req.Owner.Email,
				Phone: req.Owner.Phone,
			},
			Puppy: PuppyInput{
				Name:  req.Puppy.Name,
				Breed: req.Puppy.Breed,
				Age:   req.Puppy.Age,
				Notes: req.Puppy.Notes,
			},
			ServiceID: req.ServiceID,
			Notes:     req.Notes,
			Date:      req.PartitionDate,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, catalog.ErrNotFound), errors.Is(err, catalog.ErrInvalidInput):
				http.Error(w, "unknown service", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toEntryResponse(d))
	}
}

// listEntriesHandler godoc
// @Summary Lista de espera completa
// @Description Todas las entradas ordenadas por posición ascendente, resueltas con owner/puppy/service.
// @Tags queue
// @Produce json
// @Success 200 {array} entryResponse
// @Router /queue [get]
func listEntriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toEntryResponse(d))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// searchEntriesHandler godoc
// @Summary Búsqueda histórica
// @Description Busca `q` contra nombre de puppy y de owner (substring, case-insensitive) y devuelve las entradas que los referencian, con la fecha de su lista diaria, más recientes primero. Término vacío devuelve lista vacía.
// @Tags queue
// @Produce json
// @Param q query string false "término de búsqueda"
// @Success 200 {array} entryResponse
// @Router /queue/search [get]
func searchEntriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toEntryResponse(d))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Get(r.Context(), chi.URLParam(r, "entryID"))
		if err != nil {
			writeEntryError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEntryResponse(d))
	}
}

// updateEntryHandler godoc
// @Summary Update parcial de una entrada
// @Description Acepta status y/o position y/o notes. El status debe pertenecer al enum; la posición debe ser positiva y no puede pisar la de otra entrada (para intercambiar, usar /move).
// @Tags queue
// @Accept json
// @Produce json
// @Param entryID path string true "ID de la entrada"
// @Param payload body updateEntryRequest true "Campos a tocar"
// @Success 200 {object} entryResponse
// @Failure 400 {string} string "invalid json / status o position inválidos"
// @Failure 404 {string} string "entry not found"
// @Failure 409 {string} string "position conflict"
// @Router /queue/{entryID} [put]
func updateEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Update(r.Context(), chi.URLParam(r, "entryID"), UpdateInput{
			Status:   req.Status,
			Position: req.Position,
			Notes:    req.Notes,
		})
		if err != nil {
			writeEntryError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEntryResponse(d))
	}
}

func deleteEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "entryID")); err != nil {
			writeEntryError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// toggleEntryHandler godoc
// @Summary Completar rápido
// @Description Alterna la entrada entre waiting y completed sin pasar por in-progress. Estampa completed_at al completar.
// @Tags queue
// @Produce json
// @Param entryID path string true "ID de la entrada"
// @Success 200 {object} entryResponse
// @Failure 404 {string} string "entry not found"
// @Router /queue/{entryID}/toggle [post]
func toggleEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.ToggleComplete(r.Context(), chi.URLParam(r, "entryID"))
		if err != nil {
			writeEntryError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEntryResponse(d))
	}
}

// moveEntryHandler godoc
// @Summary Mover una entrada un lugar
// @Description Intercambia posición con el vecino de arriba o de abajo dentro de su lista diaria. En los extremos es un no-op.
// @Tags queue
// @Accept json
// @Produce json
// @Param entryID path string true "ID de la entrada"
// @Param payload body moveEntryRequest true "direction: up | down"
// @Success 200 {object} entryResponse
// @Failure 400 {string} string "invalid json / direction inválida"
// @Failure 404 {string} string "entry not found"
// @Router /queue/{entryID}/move [post]
func moveEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req moveEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Move(r.Context(), chi.URLParam(r, "entryID"), Direction(req.Direction))
		if err != nil {
			writeEntryError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEntryResponse(d))
	}
}

func writeEntryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "entry not found", http.StatusNotFound)
	case errors.Is(err, owners.ErrNotFound), errors.Is(err, puppies.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		// referencias rotas: la entrada apunta a un registro que ya no está
		http.Error(w, "entry reference not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, "position conflict", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toEntryResponse(d EntryDetail) entryResponse {
	return entryResponse{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		PuppyID:     d.PuppyID,
		ServiceID:   d.ServiceID,
		DailyListID: d.DailyListID,
		ArrivalTime: d.ArrivalTime,
		Status:      string(d.Entry.Status),
		Notes:       d.Entry.Notes,
		CompletedAt: d.CompletedAt,
		Position:    d.Position,
		CreatedAt:   d.Entry.CreatedAt,
		UpdatedAt:   d.Entry.UpdatedAt,
		Owner: ownerResponse{
			ID:    d.Owner.ID,
			Name:  d.Owner.Name,
			Email: d.Owner.Email,
			Phone: d.Owner.Phone,
		},
		Puppy: puppyResponse{
			ID:    d.Puppy.ID,
			Name:  d.Puppy.Name,
			Breed: d.Puppy.Breed,
			Age:   d.Puppy.Age,
			Notes: d.Puppy.Notes,
		},
		Service: entryServiceResponse{
			ID:                d.Service.ID,
			Name:              d.Service.Name,
			EstimatedDuration: d.Service.EstimatedDuration,
		},
		Date: d.Date,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
