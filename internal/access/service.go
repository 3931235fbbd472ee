// Package access implements the application access orchestrator: it resolves
// an application name to its backend adapter, wraps every mutation in a
// two-phase intent/outcome audit protocol, and normalizes the heterogeneous
// backend responses into one boolean status contract.
package access

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"accessdesk/internal/access/metrics"
	"accessdesk/internal/backend"
	"accessdesk/internal/directory"
	"accessdesk/internal/ledger"
	"accessdesk/internal/registry"
	"accessdesk/pkg/domerrors"
	"accessdesk/pkg/requestcontext"
	"accessdesk/pkg/sentinel"
)

// Service coordinates registry dispatch, backend adapters and the audit
// ledger. It keeps no mutable state across requests; the registry and the
// adapter table are immutable after construction, and the ledger and
// backends are externally durable.
type Service struct {
	registry *registry.Registry
	adapters map[string]backend.Adapter
	ledger   ledger.Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService validates that the adapter table and the registry agree: every
// registered application must have an adapter, and no adapter may exist for
// an unregistered name. A mismatch is a wiring bug and fails startup instead
// of surfacing as unknown_application at request time.
func NewService(reg *registry.Registry, adapters map[string]backend.Adapter, ledgerStore ledger.Store, opts ...Option) (*Service, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if ledgerStore == nil {
		return nil, fmt.Errorf("ledger store is required")
	}

	for _, name := range reg.Names() {
		if adapters[name] == nil {
			return nil, fmt.Errorf("no backend adapter for application %q", name)
		}
	}
	for name := range adapters {
		if _, err := reg.Resolve(name); err != nil {
			return nil, fmt.Errorf("adapter %q has no registry entry", name)
		}
	}

	s := &Service{
		registry: reg,
		adapters: adapters,
		ledger:   ledgerStore,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ListApplications returns the registry catalog in stable order.
func (s *Service) ListApplications() []registry.Application {
	return s.registry.ListApplications()
}

// ListRoles returns the role list for an application; for announcement this
// reflects the directory's current locations.
func (s *Service) ListRoles(ctx context.Context, application string) ([]registry.Role, error) {
	roles, err := s.registry.ListRoles(ctx, application)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, domerrors.New(domerrors.CodeUnknownApplication, "application not found")
	}
	if err != nil {
		return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to resolve roles")
	}
	return roles, nil
}

// GetStatus reads a user's current status at an application. Pure read: no
// audit record is written.
func (s *Service) GetStatus(ctx context.Context, req GetStatusRequest) (bool, error) {
	if err := req.Validate(); err != nil {
		s.observe("get_status", req.Application, err)
		return false, err
	}

	adapter, err := s.adapter(req.Application)
	if err != nil {
		s.observe("get_status", req.Application, err)
		return false, err
	}

	status, err := adapter.ReadStatus(ctx, req.NTLogin)
	if errors.Is(err, sentinel.ErrNotFound) {
		err = domerrors.New(domerrors.CodeNotFound, "user doesn't exist")
		s.observe("get_status", req.Application, err)
		return false, err
	}
	if err != nil {
		err = domerrors.Wrap(err, domerrors.CodeInternal, "application backend error")
		s.observe("get_status", req.Application, err)
		return false, err
	}

	s.observe("get_status", req.Application, nil)
	return status, nil
}

// CreateAccess provisions a user at an application, seeded enabled. The
// sequence is a saga: the intent is written to the ledger before the adapter
// runs (a failed intent write aborts the whole operation), and the outcome
// is written after the adapter returns, whatever it returned. Only once the
// ledger is resolved does a nil outcome surface as already_exists.
func (s *Service) CreateAccess(ctx context.Context, req CreateAccessRequest) (*ledger.Record, error) {
	start := time.Now()
	defer s.observeSaga(start)

	if err := req.Validate(); err != nil {
		s.observe("create_access", req.Application, err)
		return nil, err
	}
	adapter, err := s.adapter(req.Application)
	if err != nil {
		s.observe("create_access", req.Application, err)
		return nil, err
	}

	rec := s.newRecord(ctx, req.Application, string(req.Permission), true, *req.TargetUser)
	if err := s.recordIntent(ctx, rec); err != nil {
		s.observe("create_access", req.Application, err)
		return nil, err
	}

	outcome, adapterErr := adapter.CreateAccess(ctx, *req.TargetUser, req.Permission)

	message := fmt.Sprintf("Create and enable access for %s", req.Application)
	succeeded := adapterErr == nil && outcome != nil
	if err := s.recordOutcome(ctx, rec, outcome, adapterErr, succeeded, message); err != nil {
		s.observe("create_access", req.Application, err)
		return nil, err
	}

	if adapterErr != nil {
		err := domerrors.Wrap(adapterErr, domerrors.CodeInternal, "application backend error")
		s.observe("create_access", req.Application, err)
		return nil, err
	}
	if outcome == nil {
		err := domerrors.New(domerrors.CodeAlreadyExists, "application user already exists")
		s.observe("create_access", req.Application, err)
		return nil, err
	}

	s.observe("create_access", req.Application, nil)
	return rec, nil
}

// SetStatus enables or disables a user's existing access, mirroring
// CreateAccess's saga around WriteStatus. A nil adapter outcome is not
// special-cased here: toggling a user the backend doesn't know is reported
// as success with the backend's response on record. Only creation
// distinguishes "already exists".
func (s *Service) SetStatus(ctx context.Context, req SetStatusRequest) (*ledger.Record, error) {
	start := time.Now()
	defer s.observeSaga(start)

	if err := req.Validate(); err != nil {
		s.observe("set_status", req.Application, err)
		return nil, err
	}
	adapter, err := s.adapter(req.Application)
	if err != nil {
		s.observe("set_status", req.Application, err)
		return nil, err
	}

	enabled := *req.Enabled
	rec := s.newRecord(ctx, req.Application, req.Role, enabled, *req.TargetUser)
	if err := s.recordIntent(ctx, rec); err != nil {
		s.observe("set_status", req.Application, err)
		return nil, err
	}

	outcome, adapterErr := adapter.WriteStatus(ctx, enabled, req.TargetUser.NTLogin)

	message := fmt.Sprintf("Enable access for %s", req.Application)
	if !enabled {
		message = fmt.Sprintf("Disable access for %s", req.Application)
	}
	if err := s.recordOutcome(ctx, rec, outcome, adapterErr, adapterErr == nil, message); err != nil {
		s.observe("set_status", req.Application, err)
		return nil, err
	}

	if adapterErr != nil {
		err := domerrors.Wrap(adapterErr, domerrors.CodeInternal, "application backend error")
		s.observe("set_status", req.Application, err)
		return nil, err
	}

	s.observe("set_status", req.Application, nil)
	return rec, nil
}

// adapter resolves the backend adapter for an application name. Each
// operation calls this independently so an unknown name fails uniformly at
// its first use, before any ledger write.
func (s *Service) adapter(application string) (backend.Adapter, error) {
	adapter, ok := s.adapters[application]
	if !ok {
		return nil, domerrors.New(domerrors.CodeUnknownApplication, "application not found")
	}
	return adapter, nil
}

func (s *Service) newRecord(ctx context.Context, application, appRole string, action bool, target directory.Employee) *ledger.Record {
	return &ledger.Record{
		EmployeeID:    target.EmployeeID,
		EmployeeEmail: target.Email,
		EmployeeName:  target.Name,
		IPAddress:     clientIP(ctx),
		UserAgent:     requestcontext.UserAgent(ctx),
		AppName:       application,
		AppRole:       appRole,
		Action:        action,
		ActorID:       requestcontext.UserID(ctx),
	}
}

// recordIntent writes the pending ledger record. Failure here aborts the
// whole operation: no adapter call may proceed without a recorded intent.
func (s *Service) recordIntent(ctx context.Context, rec *ledger.Record) error {
	if err := s.ledger.Create(ctx, rec); err != nil {
		s.incrementAuditFailure()
		s.logger.ErrorContext(ctx, "audit intent write failed",
			"request_id", requestcontext.RequestID(ctx),
			"app", rec.AppName,
			"employee_id", rec.EmployeeID,
			"error", err,
		)
		return domerrors.Wrap(err, domerrors.CodeAuditFailure, "cannot create action log")
	}
	return nil
}

// recordOutcome resolves the ledger record with the adapter's result. It is
// called whatever the adapter returned; the backend action has already taken
// effect, so failure here cannot be rolled back; it is surfaced as an audit
// failure and the inconsistency window is logged for operators.
func (s *Service) recordOutcome(ctx context.Context, rec *ledger.Record, outcome any, adapterErr error, status bool, message string) error {
	intentSnapshot, err := json.Marshal(rec)
	if err != nil {
		intentSnapshot = nil
	}

	var responseSnapshot json.RawMessage
	switch {
	case outcome != nil:
		responseSnapshot, err = json.Marshal(outcome)
		if err != nil {
			responseSnapshot = json.RawMessage(fmt.Sprintf("%q", fmt.Sprintf("unserializable outcome: %v", err)))
		}
	case adapterErr != nil:
		responseSnapshot, _ = json.Marshal(map[string]string{"error": adapterErr.Error()})
	default:
		responseSnapshot = json.RawMessage("null")
	}

	res := ledger.Resolution{
		DataRequest:  intentSnapshot,
		DataResponse: responseSnapshot,
		Status:       status,
		Message:      message,
	}

	if err := s.ledger.Resolve(ctx, rec.ID, res); err != nil {
		s.incrementAuditFailure()
		if errors.Is(err, sentinel.ErrNotFound) {
			// The backend action executed but its ledger entry is gone or was
			// already resolved. That is a ledger consistency signal, not a
			// request bug; flag it loudly rather than swallowing it.
			s.logger.ErrorContext(ctx, "audit record missing at outcome resolution; backend action already executed",
				"request_id", requestcontext.RequestID(ctx),
				"action_log_id", rec.ID,
				"app", rec.AppName,
				"employee_id", rec.EmployeeID,
			)
			return domerrors.Wrap(err, domerrors.CodeAuditFailure, "action logs cannot be updated")
		}
		s.logger.ErrorContext(ctx, "audit outcome write failed; backend action already executed",
			"request_id", requestcontext.RequestID(ctx),
			"action_log_id", rec.ID,
			"app", rec.AppName,
			"error", err,
		)
		return domerrors.Wrap(err, domerrors.CodeAuditFailure, "cannot record action outcome")
	}

	now := requestcontext.Now(ctx)
	rec.DataRequest = intentSnapshot
	rec.DataResponse = responseSnapshot
	rec.RequestStatus = &status
	rec.RequestMessage = message
	rec.ResolvedAt = &now
	return nil
}

func (s *Service) observe(operation, application string, err error) {
	if s.metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = string(domerrors.CodeOf(err))
	}
	s.metrics.ObserveRequest(operation, application, result)
}

func (s *Service) observeSaga(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveSaga(start)
	}
}

func (s *Service) incrementAuditFailure() {
	if s.metrics != nil {
		s.metrics.IncrementAuditFailure()
	}
}

func clientIP(ctx context.Context) string {
	if ip := requestcontext.ClientIP(ctx); ip != "" {
		return ip
	}
	return "0.0.0.0"
}
