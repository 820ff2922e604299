// Package events defines the NATS subjects the backend publishes and a
// thin publisher used by services. Payloads are the entity id as a raw
// string; workers re-read state from the database.
package events

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Subject prefixes. The entity id is appended as the last token, so
// workers subscribe with a trailing wildcard.
const (
	SubjectTurnoCreado       = "nutrito.turno.creado"
	SubjectTurnoCancelado    = "nutrito.turno.cancelado"
	SubjectTurnoReprogramado = "nutrito.turno.reprogramado"
	SubjectPlanEnviado       = "nutrito.plan.enviado"
)

// Publisher sends domain events. Publishing is best-effort: failures
// are logged and never surfaced to the caller, side effects must stay
// off the request's critical path.
type Publisher struct {
	nc *nats.Conn
}

func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc}
}

func (p *Publisher) publish(prefix string, id uuid.UUID) {
	subject := fmt.Sprintf("%s.%s", prefix, id)
	if err := p.nc.Publish(subject, []byte(id.String())); err != nil {
		slog.Warn("event publish failed", "subject", subject, "err", err)
	}
}

func (p *Publisher) TurnoCreado(turnoID uuid.UUID)    { p.publish(SubjectTurnoCreado, turnoID) }
func (p *Publisher) TurnoCancelado(turnoID uuid.UUID) { p.publish(SubjectTurnoCancelado, turnoID) }
func (p *Publisher) TurnoReprogramado(turnoID uuid.UUID) {
	p.publish(SubjectTurnoReprogramado, turnoID)
}
func (p *Publisher) PlanEnviado(planID uuid.UUID) { p.publish(SubjectPlanEnviado, planID) }
