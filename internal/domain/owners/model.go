package owners

import "time"

// Owner es quien trae al cachorro. Se crea siempre como parte del alta de una
// entrada en la lista de espera (nunca se gestiona por separado).
type Owner struct {
	ID    string
	Name  string
	Email string
	Phone string

	CreatedAt time.Time
	UpdatedAt time.Time
}
