package dailylists

import "time"

// DailyList agrupa las entradas de la cola por fecha calendario.
// La fecha es única: a lo sumo una lista por día. Las entradas no se guardan
// acá; son las filas de la cola cuyo daily_list_id apunta a esta lista.
type DailyList struct {
	ID   string
	Date string // YYYY-MM-DD

	CreatedAt time.Time
	UpdatedAt time.Time
}
