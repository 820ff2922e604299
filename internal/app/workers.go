package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/MarciaOrozco/nutrito-backend/internal/events"
	"github.com/MarciaOrozco/nutrito-backend/internal/model"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/notification"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/paciente"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/turno"
	"github.com/MarciaOrozco/nutrito-backend/pkg/email"
)

// WorkerModule registers all NATS event workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc       fx.Lifecycle
	NC       *nats.Conn
	DB       *gorm.DB
	NotifSvc notification.Service
	Paciente paciente.Service
	Email    *email.Client
}

func RegisterWorkers(p WorkerParams) {
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			startTurnoWorker(p.NC, p.DB, p.NotifSvc, p.Paciente, p.Email)
			startPlanWorker(p.NC, p.DB, p.NotifSvc, p.Email)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Drain handled by ProvideNatsClient
			return nil
		},
	})
}

func parseEventID(msg *nats.Msg) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(string(msg.Data)))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// turnoContext carries everything a turno notification needs: the turno
// itself plus both users resolved through their profiles.
type turnoContext struct {
	Turno        model.Turno
	PacienteUser model.User
	NutriUser    model.User
}

func loadTurnoContext(ctx context.Context, db *gorm.DB, id uuid.UUID) (*turnoContext, error) {
	var tc turnoContext
	if err := db.WithContext(ctx).Preload("Modalidad").First(&tc.Turno, "id = ?", id).Error; err != nil {
		return nil, err
	}

	var pac model.PacienteProfile
	if err := db.WithContext(ctx).Preload("User").First(&pac, "id = ?", tc.Turno.PacienteID).Error; err != nil {
		return nil, err
	}
	tc.PacienteUser = pac.User

	var nutri model.NutricionistaProfile
	if err := db.WithContext(ctx).Preload("User").First(&nutri, "id = ?", tc.Turno.NutricionistaID).Error; err != nil {
		return nil, err
	}
	tc.NutriUser = nutri.User

	return &tc, nil
}

// ---------------------------------------------------------------------------
// turno_worker
// ---------------------------------------------------------------------------

func startTurnoWorker(nc *nats.Conn, db *gorm.DB, notifSvc notification.Service, pacienteSvc paciente.Service, emailCli *email.Client) {
	_, err := nc.Subscribe(events.SubjectTurnoCreado+".*", func(msg *nats.Msg) {
		id, ok := parseEventID(msg)
		if !ok {
			return
		}
		ctx := context.Background()

		tc, err := loadTurnoContext(ctx, db, id)
		if err != nil {
			slog.Warn("turno_worker: turno not found", "id", id, "err", err)
			return
		}
		t := tc.Turno

		// A first booking also establishes the paciente-nutricionista
		// link; CreateVinculacion is idempotent so repeats are harmless.
		if _, err := pacienteSvc.CreateVinculacion(ctx, paciente.VinculacionRequest{
			PacienteID:      t.PacienteID,
			NutricionistaID: t.NutricionistaID,
		}); err != nil {
			slog.Warn("turno_worker: vinculacion failed", "turno_id", id, "err", err)
		}

		cal := turno.BuildCalendarNotificacion(&t)
		err = notifSvc.Create(ctx, &model.Notificacion{
			UserID: tc.PacienteUser.ID,
			Tipo:   "turno_creado",
			Titulo: "Turno confirmado",
			Mensaje: "Tu turno del " + t.FechaString() + " a las " + t.Hora +
				" fue confirmado. Agendalo: " + cal.CalendarURL,
		})
		if err != nil {
			slog.Warn("turno_worker: create notification failed", "turno_id", id, "err", err)
		}

		emailMsg := email.BuildTurnoConfirmationEmail(email.TurnoEmailData{
			Email:             tc.PacienteUser.Email,
			PacienteNombre:    tc.PacienteUser.Nombre,
			NutricionistaName: tc.NutriUser.NombreCompleto(),
			Fecha:             t.FechaString(),
			Hora:              t.Hora,
			Modalidad:         t.Modalidad.Nombre,
			CalendarURL:       cal.CalendarURL,
		})
		if err := emailCli.Send(ctx, emailMsg); err != nil {
			slog.Warn("turno_worker: confirmation email failed", "turno_id", id, "err", err)
		}
	})
	if err != nil {
		slog.Error("turno_worker: subscribe turno.creado failed", "err", err)
	}

	_, err = nc.Subscribe(events.SubjectTurnoCancelado+".*", func(msg *nats.Msg) {
		id, ok := parseEventID(msg)
		if !ok {
			return
		}
		ctx := context.Background()

		tc, err := loadTurnoContext(ctx, db, id)
		if err != nil {
			slog.Warn("turno_worker: turno not found", "id", id, "err", err)
			return
		}
		t := tc.Turno

		err = notifSvc.Create(ctx, &model.Notificacion{
			UserID:  tc.PacienteUser.ID,
			Tipo:    "turno_cancelado",
			Titulo:  "Turno cancelado",
			Mensaje: "Tu turno del " + t.FechaString() + " a las " + t.Hora + " fue cancelado.",
		})
		if err != nil {
			slog.Warn("turno_worker: create notification failed", "turno_id", id, "err", err)
		}
	})
	if err != nil {
		slog.Error("turno_worker: subscribe turno.cancelado failed", "err", err)
	}

	_, err = nc.Subscribe(events.SubjectTurnoReprogramado+".*", func(msg *nats.Msg) {
		id, ok := parseEventID(msg)
		if !ok {
			return
		}
		ctx := context.Background()

		tc, err := loadTurnoContext(ctx, db, id)
		if err != nil {
			slog.Warn("turno_worker: turno not found", "id", id, "err", err)
			return
		}
		t := tc.Turno

		cal := turno.BuildCalendarNotificacion(&t)
		err = notifSvc.Create(ctx, &model.Notificacion{
			UserID: tc.PacienteUser.ID,
			Tipo:   "turno_reprogramado",
			Titulo: "Turno reprogramado",
			Mensaje: "Tu turno fue movido al " + t.FechaString() + " a las " + t.Hora +
				". Agendalo: " + cal.CalendarURL,
		})
		if err != nil {
			slog.Warn("turno_worker: create notification failed", "turno_id", id, "err", err)
		}
	})
	if err != nil {
		slog.Error("turno_worker: subscribe turno.reprogramado failed", "err", err)
	}

	slog.Info("turno_worker: started")
}

// ---------------------------------------------------------------------------
// plan_worker
// ---------------------------------------------------------------------------

func startPlanWorker(nc *nats.Conn, db *gorm.DB, notifSvc notification.Service, emailCli *email.Client) {
	_, err := nc.Subscribe(events.SubjectPlanEnviado+".*", func(msg *nats.Msg) {
		id, ok := parseEventID(msg)
		if !ok {
			return
		}
		ctx := context.Background()

		var p model.Plan
		if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
			slog.Warn("plan_worker: plan not found", "id", id, "err", err)
			return
		}

		var pac model.PacienteProfile
		if err := db.WithContext(ctx).Preload("User").First(&pac, "id = ?", p.PacienteID).Error; err != nil {
			slog.Warn("plan_worker: paciente not found", "plan_id", id, "err", err)
			return
		}

		var nutri model.NutricionistaProfile
		if err := db.WithContext(ctx).Preload("User").First(&nutri, "id = ?", p.NutricionistaID).Error; err != nil {
			slog.Warn("plan_worker: nutricionista not found", "plan_id", id, "err", err)
			return
		}

		err := notifSvc.Create(ctx, &model.Notificacion{
			UserID:  pac.User.ID,
			Tipo:    "plan_enviado",
			Titulo:  "Tu plan alimentario está disponible",
			Mensaje: nutri.User.NombreCompleto() + " te envió tu plan alimentario.",
		})
		if err != nil {
			slog.Warn("plan_worker: create notification failed", "plan_id", id, "err", err)
		}

		emailMsg := email.BuildPlanEnviadoEmail(email.PlanEmailData{
			Email:             pac.User.Email,
			PacienteNombre:    pac.User.Nombre,
			NutricionistaName: nutri.User.NombreCompleto(),
		})
		if err := emailCli.Send(ctx, emailMsg); err != nil {
			slog.Warn("plan_worker: plan email failed", "plan_id", id, "err", err)
		}
	})
	if err != nil {
		slog.Error("plan_worker: subscribe plan.enviado failed", "err", err)
	}

	slog.Info("plan_worker: started")
}
