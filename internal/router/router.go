package router

import (
	"database/sql"
	"net/http"
	"os"

	_ "puppy-spa/docs"
	mem "puppy-spa/internal/adapters/storage/memory"
	pg "puppy-spa/internal/adapters/storage/postgres"
	"puppy-spa/internal/domain/catalog"
	"puppy-spa/internal/domain/dailylists"
	"puppy-spa/internal/domain/owners"
	"puppy-spa/internal/domain/puppies"
	"puppy-spa/internal/domain/queue"
	"puppy-spa/internal/middleware"
	"puppy-spa/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory (modo dev/tests).
	DB *sql.DB

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		ownerRepo   owners.Repository
		puppyRepo   puppies.Repository
		catalogRepo catalog.Repository
		entryRepo   queue.Repository
		listRepo    dailylists.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		ownerRepo = pg.NewOwnersRepo(db)
		puppyRepo = pg.NewPuppiesRepo(db)
		catalogRepo = pg.NewCatalogRepo(db)
		entryRepo = pg.NewQueueRepo(db)
		listRepo = pg.NewDailyListsRepo(db)
	} else {
		ownerRepo = mem.NewOwnersRepo()
		puppyRepo = mem.NewPuppiesRepo()
		entryRepo = mem.NewQueueRepo()
		// el repo de cola simula el FK que en Postgres protege a services
		catalogRepo = mem.NewCatalogRepo(entryRepo)
		listRepo = mem.NewDailyListsRepo()
	}

	// Services por módulo
	listSvc := dailylists.NewService(listRepo)
	cat := catalog.NewCatalog(catalogRepo)
	queueSvc := queue.NewService(entryRepo, ownerRepo, puppyRepo, catalogRepo, listSvc, log)

	// Rutas por módulo
	queue.RegisterRoutes(r, queueSvc)
	dailylists.RegisterRoutes(r, listSvc, queueSvc)
	catalog.RegisterRoutes(r, cat)

	return r
}
