package router

import (
	"database/sql"
	"net/http"
	"os"

	_ "github.com/Crypto-Mikael/pet-track/docs"
	mem "github.com/Crypto-Mikael/pet-track/internal/adapters/storage/memory"
	pg "github.com/Crypto-Mikael/pet-track/internal/adapters/storage/postgres"
	"github.com/Crypto-Mikael/pet-track/internal/domain/access"
	"github.com/Crypto-Mikael/pet-track/internal/domain/animals"
	"github.com/Crypto-Mikael/pet-track/internal/domain/baths"
	"github.com/Crypto-Mikael/pet-track/internal/domain/foods"
	"github.com/Crypto-Mikael/pet-track/internal/domain/metrics"
	"github.com/Crypto-Mikael/pet-track/internal/domain/push"
	"github.com/Crypto-Mikael/pet-track/internal/domain/users"
	"github.com/Crypto-Mikael/pet-track/internal/domain/vaccinations"
	"github.com/Crypto-Mikael/pet-track/internal/middleware"
	"github.com/Crypto-Mikael/pet-track/internal/platform/logger"
	"github.com/Crypto-Mikael/pet-track/internal/ports/auth"
	pushport "github.com/Crypto-Mikael/pet-track/internal/ports/push"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger

	// Entrega de web-push. nil => el envío no hace nada útil en dev,
	// pero las rutas siguen registradas.
	PushSender pushport.Sender

	// Verificación de firma del webhook de Clerk. nil => sin verificar.
	WebhookVerifier users.WebhookVerifier

	// Rate limit del grant de share (por IP). RPS <= 0 lo desactiva.
	ShareRateRPS   float64
	ShareRateBurst int
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	var (
		usersRepo  users.Repository
		animalRepo animals.Repository
		accessRepo access.Repository
		bathsRepo  baths.Repository
		foodsRepo  foods.Repository
		vaccsRepo  vaccinations.Repository
		pushRepo   push.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("db open failed, falling back to memory", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		usersRepo = pg.NewUsersRepo(db)
		animalRepo = pg.NewAnimalsRepo(db)
		accessRepo = pg.NewAccessRepo(db)
		bathsRepo = pg.NewBathsRepo(db)
		foodsRepo = pg.NewFoodsRepo(db)
		vaccsRepo = pg.NewVaccinationsRepo(db)
		pushRepo = pg.NewPushRepo(db)
	} else {
		usersRepo = mem.NewUsersRepo()
		animalRepo = mem.NewAnimalsRepo()
		accessRepo = mem.NewAccessRepo()
		bathsRepo = mem.NewBathsRepo()
		foodsRepo = mem.NewFoodsRepo()
		vaccsRepo = mem.NewVaccinationsRepo()
		pushRepo = mem.NewPushRepo()
	}

	// Services por módulo
	usersSvc := users.NewService(usersRepo)
	animalsSvc := animals.NewService(animalRepo)
	accessSvc := access.NewService(accessRepo, usersSvc, animalsSvc)
	bathsSvc := baths.NewService(bathsRepo)
	foodsSvc := foods.NewService(foodsRepo)
	vaccsSvc := vaccinations.NewService(vaccsRepo)
	metricsSvc := metrics.NewService(animalsSvc, bathsSvc, foodsSvc, vaccsSvc)
	pushSvc := push.NewService(pushRepo, usersSvc, opts.PushSender, log)

	var shareLimit func(http.Handler) http.Handler
	if opts.ShareRateRPS > 0 {
		shareLimit = middleware.RateLimit(opts.ShareRateRPS, opts.ShareRateBurst)
	}

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, opts.WebhookVerifier)
	animals.RegisterRoutes(r, animalsSvc, accessSvc)
	access.RegisterRoutes(r, accessSvc, shareLimit)
	baths.RegisterRoutes(r, bathsSvc, accessSvc)
	foods.RegisterRoutes(r, foodsSvc, accessSvc)
	vaccinations.RegisterRoutes(r, vaccsSvc, accessSvc)
	metrics.RegisterRoutes(r, metricsSvc, accessSvc)
	push.RegisterRoutes(r, pushSvc)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
