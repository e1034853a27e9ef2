package queue

// Status es el estado de una entrada dentro del ciclo del día.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus valida pertenencia al enum.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusWaiting, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrInvalidInput
}

// CanTransition decide si el cambio from→to se acepta.
// Hoy acepta cualquier transición: la recepción corrige estados a mano desde la
// UI y un guard estricto molesta más de lo que protege. Si hiciera falta
// endurecer, este es el único punto a tocar.
func CanTransition(from, to Status) bool {
	return true
}

// toggleTarget es el atajo del control "completar rápido": completed vuelve a
// waiting, cualquier otro estado pasa directo a completed (sin in-progress).
func toggleTarget(current Status) Status {
	if current == StatusCompleted {
		return StatusWaiting
	}
	return StatusCompleted
}
