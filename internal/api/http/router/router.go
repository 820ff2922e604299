package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/MarciaOrozco/nutrito-backend/config"
	"github.com/MarciaOrozco/nutrito-backend/internal/api/http/handler"
	"github.com/MarciaOrozco/nutrito-backend/internal/api/http/middleware"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/auth"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/availability"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/consulta"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/notification"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/nutricionista"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/paciente"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/plan"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/turno"
	"github.com/MarciaOrozco/nutrito-backend/pkg/authorize"
	"github.com/MarciaOrozco/nutrito-backend/pkg/token"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg   *config.Config
	Redis *redis.Client
	DB    *gorm.DB
	Auth  authorize.IAuthorization

	AuthSvc          auth.Service
	NutricionistaSvc nutricionista.Service
	AvailabilitySvc  availability.Service
	TurnoSvc         turno.Service
	PacienteSvc      paciente.Service
	PlanSvc          plan.Service
	ConsultaSvc      consulta.Service
	NotificationSvc  notification.Service

	TokenMgr *token.Manager
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	r.registerSystemRoutes(app)

	authRequired := middleware.AuthRequired(r.p.TokenMgr, r.p.Redis, r.p.DB)
	requirePerm := func(res authorize.Resource, act authorize.Action) fiber.Handler {
		return middleware.RequirePermission(r.p.Auth, res, act)
	}

	authH := handler.NewAuthHandler(r.p.AuthSvc)
	nutricionistaH := handler.NewNutricionistaHandler(r.p.NutricionistaSvc, r.p.PacienteSvc)
	turnoH := handler.NewTurnoHandler(r.p.TurnoSvc, r.p.AvailabilitySvc)
	pacienteH := handler.NewPacienteHandler(r.p.PacienteSvc)
	planH := handler.NewPlanHandler(r.p.PlanSvc)
	consultaH := handler.NewConsultaHandler(r.p.ConsultaSvc)
	notificationH := handler.NewNotificationHandler(r.p.NotificationSvc)

	api := app.Group("/api")

	r.registerAuthRoutes(api, authH, authRequired)
	r.registerNutricionistaRoutes(api, nutricionistaH, authRequired, requirePerm)
	r.registerTurnoRoutes(api, turnoH, authRequired, requirePerm)
	r.registerPacienteRoutes(api, pacienteH, authRequired, requirePerm)
	r.registerPlanRoutes(api, planH, authRequired, requirePerm)
	r.registerConsultaRoutes(api, consultaH, authRequired, requirePerm)
	r.registerNotificationRoutes(api, notificationH, authRequired, requirePerm)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool {
			return r.p.Redis.Ping(c.Context()).Err() == nil
		},
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
