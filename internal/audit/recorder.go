package audit

import (
	"context"
	"encoding/json"
	"time"

	"go-hris-console/internal/events"
	"go-hris-console/internal/messaging/kafka"
	"go-hris-console/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ActionPayrollEntryUpdated    = events.PayrollEntryUpdated
	ActionPayrollEntryDeleted    = events.PayrollEntryDeleted
	ActionPayrollEntryCalculated = events.PayrollEntryCalculated
	ActionPayrollRunCreated      = events.PayrollRunCreated
	ActionPayrollRunUpdated      = events.PayrollRunUpdated
	ActionPayrollRunDeleted      = events.PayrollRunDeleted
	ActionSalaryStructureCreated = events.SalaryStructureCreated
	ActionSalaryStructureUpdated = events.SalaryStructureUpdated
	ActionSalaryStructureDeleted = events.SalaryStructureDeleted
	ActionEmployeeCreated        = events.EmployeeCreated
	ActionEmployeeUpdated        = events.EmployeeUpdated
	ActionEmployeeDeleted        = events.EmployeeDeleted
	ActionDepartmentCreated      = events.DepartmentCreated
	ActionDepartmentUpdated      = events.DepartmentUpdated
	ActionDepartmentDeleted      = events.DepartmentDeleted
	ActionPositionCreated        = events.PositionCreated
	ActionPositionUpdated        = events.PositionUpdated
	ActionPositionDeleted        = events.PositionDeleted
	ActionServerShutdown         = events.ConsoleServerShutdown

	EntityPayrollEntry    = "payroll_entry"
	EntityPayrollRun      = "payroll_run"
	EntitySalaryStructure = "salary_structure"
	EntityEmployee        = "employee"
	EntityDepartment      = "department"
	EntityPosition        = "position"
	EntityConsole         = "console"
)

type Event struct {
	Action     string
	EntityType string
	EntityID   string
	ActorID    string
	Meta       map[string]any
}

// Recorder records operator actions. Implementations must not fail the
// caller: the action already happened upstream.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

type outboxRecorder struct {
	repo   kafka.OutboxRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewOutboxRecorder(repo kafka.OutboxRepository) Recorder {
	return &outboxRecorder{
		repo:   repo,
		logger: zap.L().Named("audit.recorder"),
		now:    time.Now,
	}
}

func (r *outboxRecorder) Record(ctx context.Context, event Event) {
	log := contextutil.GetLogger(ctx, r.logger)
	md := contextutil.ExtractMetadata(ctx)
	requestID := md.RequestID

	actorID := event.ActorID
	if actorID == "" {
		actorID = md.UserID
	}

	payload, err := json.Marshal(events.ConsoleAuditEvent{
		EventType:  event.Action,
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		ActorID:    actorID,
		RequestID:  requestID,
		Meta:       event.Meta,
		OccurredAt: r.now().UTC(),
	})
	if err != nil {
		log.Warn("encode audit event failed", zap.String("action", event.Action), zap.Error(err))
		return
	}

	err = r.repo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     requestID,
		AggregateType: event.EntityType,
		AggregateID:   event.EntityID,
		EventType:     event.Action,
		Topic:         events.ConsoleAuditTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		log.Warn("write audit event failed",
			zap.String("action", event.Action),
			zap.String("entity_id", event.EntityID),
			zap.Error(err),
		)
	}
}

type nopRecorder struct{}

func NopRecorder() Recorder {
	return nopRecorder{}
}

func (nopRecorder) Record(context.Context, Event) {}
