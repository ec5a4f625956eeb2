package handler

import (
	"database/sql"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/ftis-dev/lab-timetable/backend/internal/config"
	"github.com/ftis-dev/lab-timetable/backend/internal/repository"
)

type Handler struct {
	validate     *validator.Validate
	config       *config.Config
	repository   *repository.Repository
	translator   ut.Translator
	eventChannel *amqp.Channel
	redisClient  *redis.Client

	// operatorHash is the bcrypt hash of the configured operator password,
	// computed once at startup so login never touches the plaintext again.
	operatorHash []byte

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, dbpool *sql.DB, eventChannel *amqp.Channel, redisClient *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, found := uni.GetTranslator("en")
	if !found {
		return nil, fmt.Errorf("failed to get en translator")
	}
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, fmt.Errorf("failed to register en translations: %w", err)
	}

	operatorHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Operator.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash operator password: %w", err)
	}

	handler := &Handler{
		validate:     validate,
		config:       cfg,
		repository:   repository.NewRepository(cfg, dbpool),
		translator:   translator,
		eventChannel: eventChannel,
		redisClient:  redisClient,
		operatorHash: operatorHash,
		Mux:          chi.NewMux(),
	}

	handler.registerRoutes()

	return handler, nil
}

func (h *Handler) registerRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/courses", h.GetAllCourses)
		r.Get("/rooms", h.GetAllRooms)

		r.Route("/runs", func(r chi.Router) {
			r.Post("/", h.CreateScheduleRun)
			r.Get("/", h.GetAllScheduleRuns)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.scheduleRunCtx)

				r.Get("/", h.GetScheduleRun)
				r.Get("/progress", h.GetScheduleRunProgress)
				r.Get("/result", h.GetScheduleRunResult)
			})
		})
	})
}
