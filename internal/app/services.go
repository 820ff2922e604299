package app

import (
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/MarciaOrozco/nutrito-backend/config"
	"github.com/MarciaOrozco/nutrito-backend/internal/events"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/auth"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/availability"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/consulta"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/notification"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/nutricionista"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/paciente"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/plan"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/turno"
	"github.com/MarciaOrozco/nutrito-backend/pkg/email"
	s3pkg "github.com/MarciaOrozco/nutrito-backend/pkg/s3"
	"github.com/MarciaOrozco/nutrito-backend/pkg/token"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideTokenManager,
		ProvideEventsPublisher,
		ProvideAuthService,
		ProvideAvailabilityService,
		ProvideNutricionistaService,
		ProvideTurnoService,
		ProvidePacienteService,
		ProvidePlanService,
		ProvideConsultaService,
		ProvideNotificationService,
	),
)

func ProvideTokenManager(cfg *config.Config) (*token.Manager, error) {
	return token.NewTokenManager(cfg)
}

func ProvideEventsPublisher(nc *nats.Conn) *events.Publisher {
	return events.NewPublisher(nc)
}

func ProvideAuthService(db *gorm.DB, rdb *redis.Client, tm *token.Manager, cfg *config.Config) auth.Service {
	return auth.New(db, rdb, tm, cfg)
}

func ProvideAvailabilityService(db *gorm.DB, rdb *redis.Client) availability.Service {
	return availability.New(db, rdb)
}

func ProvideNutricionistaService(db *gorm.DB, emailCli *email.Client, cfg *config.Config) nutricionista.Service {
	return nutricionista.New(db, emailCli, cfg)
}

func ProvideTurnoService(db *gorm.DB, avail availability.Service, publisher *events.Publisher) turno.Service {
	return turno.New(db, avail, publisher)
}

func ProvidePacienteService(db *gorm.DB, s3Cli *s3pkg.Client) paciente.Service {
	return paciente.New(db, s3Cli)
}

func ProvidePlanService(db *gorm.DB, publisher *events.Publisher) plan.Service {
	return plan.New(db, publisher)
}

func ProvideConsultaService(db *gorm.DB, s3Cli *s3pkg.Client, turnos turno.Service) consulta.Service {
	return consulta.New(db, s3Cli, turnos)
}

func ProvideNotificationService(db *gorm.DB) notification.Service {
	return notification.New(db)
}
