package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/Lounwb/AirCourse/internal/config"
	"github.com/Lounwb/AirCourse/internal/extraction"
	"github.com/Lounwb/AirCourse/internal/repository"
	"github.com/Lounwb/AirCourse/internal/session"
)

// QuotaStore 是识别配额计数用到的 redis 命令子集，*redis.Client 直接满足
type QuotaStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient QuotaStore
	sessions    *session.Store
	vision      *extraction.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb QuotaStore, sessions *session.Store, vision *extraction.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		sessions:    sessions,
		vision:      vision,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 校区检索不依赖会话
	h.Mux.Get("/campuses", h.SearchCampuses)

	h.Mux.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.session)
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Patch("/program", h.UpdateProgram)

			r.Route("/periods", func(r chi.Router) {
				r.Post("/", h.AddPeriod)
				r.Patch("/{periodID}", h.UpdatePeriod)
				r.Delete("/{periodID}", h.RemovePeriod)
			})

			r.Post("/analyze", h.AnalyzeTimetable)

			r.Route("/courses", func(r chi.Router) {
				r.Post("/", h.CreateCourse)
				r.Patch("/{courseID}", h.UpdateCourse)
				r.Delete("/{courseID}", h.DeleteCourse)
			})

			r.Get("/grid", h.GetGrid)

			r.Route("/export", func(r chi.Router) {
				r.Get("/", h.ExportICS)
				r.Get("/preview", h.PreviewOccurrences)
				r.Post("/mail", h.MailICS)
			})
		})
	})
}
