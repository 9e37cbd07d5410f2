package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/library-duty-api/internal/dto"
	"github.com/noah-isme/library-duty-api/internal/models"
	appErrors "github.com/noah-isme/library-duty-api/pkg/errors"
)

// maxSlotsPerStudent is the hard per-term cap. Configuration may only
// tighten it.
const maxSlotsPerStudent = 2

func effectiveMaxSlots(n int) int {
	if n <= 0 || n > maxSlotsPerStudent {
		return maxSlotsPerStudent
	}
	return n
}

// RosterReader supplies the roster snapshot a generation run works from.
type RosterReader interface {
	ListActiveStudents(ctx context.Context) ([]models.Student, error)
	ListActiveRooms(ctx context.Context) ([]models.Room, error)
	ListClasses(ctx context.Context) ([]models.SchoolClass, error)
}

// AssignmentStore persists duty assignments. Methods accept an optional
// transaction; nil runs against the pool.
type AssignmentStore interface {
	LockTerm(ctx context.Context, exec sqlx.ExtContext, term models.Term) error
	ListByTerm(ctx context.Context, exec sqlx.ExtContext, term models.Term) ([]models.Assignment, error)
	DeleteByTerm(ctx context.Context, exec sqlx.ExtContext, term models.Term) (int64, error)
	BulkInsert(ctx context.Context, exec sqlx.ExtContext, assignments []models.Assignment) error
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// DutyScheduleConfig governs generator behaviour.
type DutyScheduleConfig struct {
	MaxSlotsPerStudent int
}

// DutyScheduleService decides whether a term may be (re)generated, runs the
// generator and commits the result atomically.
type DutyScheduleService struct {
	roster      RosterReader
	assignments AssignmentStore
	tx          txProvider
	cache       *CacheService
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
	cfg         DutyScheduleConfig
	newID       func() string
}

// NewDutyScheduleService wires the duty schedule dependencies.
func NewDutyScheduleService(
	roster RosterReader,
	assignments AssignmentStore,
	tx txProvider,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg DutyScheduleConfig,
) *DutyScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.MaxSlotsPerStudent = effectiveMaxSlots(cfg.MaxSlotsPerStudent)
	return &DutyScheduleService{
		roster:      roster,
		assignments: assignments,
		tx:          tx,
		cache:       cache,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
		newID:       uuid.NewString,
	}
}

// Generate builds and commits the duty schedule for a term. Scheduling
// refusals (existing schedule, empty roster, no capacity) come back as an
// unsuccessful result; validation and storage failures come back as errors.
func (s *DutyScheduleService) Generate(ctx context.Context, req dto.GenerateDutyScheduleRequest) (*dto.GenerateDutyScheduleResult, error) {
	req.Term = strings.ToUpper(strings.TrimSpace(req.Term))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "term must be FIRST_TERM or SECOND_TERM")
	}
	term, err := models.ParseTerm(req.Term)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "term must be FIRST_TERM or SECOND_TERM")
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	start := time.Now()
	result, err := s.generateInTx(ctx, term, req.ForceRegenerate)
	elapsed := time.Since(start)
	switch {
	case err != nil:
		s.metrics.ObserveGeneration(string(term), OutcomeError, appErrors.FromError(err).Code, elapsed)
		s.logger.Error("duty schedule generation failed",
			zap.String("term", string(term)),
			zap.Bool("force", req.ForceRegenerate),
			zap.Error(err))
		return nil, err
	case !result.Success:
		s.metrics.ObserveGeneration(string(term), OutcomeFailure, result.Code, elapsed)
		s.logger.Info("duty schedule generation refused",
			zap.String("term", string(term)),
			zap.Bool("force", req.ForceRegenerate),
			zap.String("code", result.Code),
			zap.String("reason", result.Error))
		return result, nil
	}

	s.metrics.ObserveGeneration(string(term), OutcomeSuccess, "", elapsed)
	s.metrics.SetScheduleGauges(string(term), result.Stats.TotalAssignments, result.Stats.BalanceScore)
	s.cache.BumpVersion(ctx, scheduleVersionKey(term))
	s.cache.Invalidate(ctx, scheduleCachePattern(term))
	s.logger.Info("duty schedule generated",
		zap.String("term", string(term)),
		zap.Bool("force", req.ForceRegenerate),
		zap.Int("assignments", result.Stats.TotalAssignments),
		zap.Int("students", result.Stats.StudentsAssigned),
		zap.Int("unfilled_slots", result.UnfilledSlots),
		zap.Int64("replaced", result.Replaced),
		zap.Float64("balance_score", result.Stats.BalanceScore),
		zap.Duration("elapsed", elapsed))
	return result, nil
}

func (s *DutyScheduleService) generateInTx(ctx context.Context, term models.Term, force bool) (result *dto.GenerateDutyScheduleResult, err error) {
	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, persistenceError(err, "failed to begin transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err = s.assignments.LockTerm(ctx, tx, term); err != nil {
		return nil, persistenceError(err, "failed to lock term")
	}
	existing, err := s.assignments.ListByTerm(ctx, tx, term)
	if err != nil {
		return nil, persistenceError(err, "failed to load existing assignments")
	}
	if len(existing) > 0 && !force {
		msg := fmt.Sprintf("a duty schedule already exists for %s; set forceRegenerate to replace it", term)
		return failedResult(term, appErrors.Clone(appErrors.ErrScheduleExists, msg)), nil
	}

	students, err := s.roster.ListActiveStudents(ctx)
	if err != nil {
		return nil, persistenceError(err, "failed to load committee members")
	}
	rooms, err := s.roster.ListActiveRooms(ctx)
	if err != nil {
		return nil, persistenceError(err, "failed to load rooms")
	}

	// Existing rows are replaced wholesale.
	outcome := generateDutyAssignments(dutyGenerationInput{
		Term:     term,
		Students: students,
		Rooms:    rooms,
		MaxSlots: s.cfg.MaxSlotsPerStudent,
	}, s.newID)
	if outcome.Failure != nil {
		return failedResult(term, outcome.Failure), nil
	}

	var replaced int64
	if len(existing) > 0 {
		if replaced, err = s.assignments.DeleteByTerm(ctx, tx, term); err != nil {
			return nil, persistenceError(err, "failed to clear previous assignments")
		}
	}
	if err = s.assignments.BulkInsert(ctx, tx, outcome.Assignments); err != nil {
		return nil, persistenceError(err, "failed to store assignments")
	}
	if err = tx.Commit(); err != nil {
		return nil, persistenceError(err, "failed to commit duty schedule")
	}
	committed = true

	stats := calculateDutyStats(outcome.Assignments, s.cfg.MaxSlotsPerStudent)
	return &dto.GenerateDutyScheduleResult{
		Success:       true,
		Term:          term,
		Assignments:   outcome.Assignments,
		Stats:         &stats,
		UnfilledSlots: outcome.UnfilledSlots,
		Replaced:      replaced,
	}, nil
}

// Get returns the persisted schedule of a term with its statistics. The
// boolean reports a cache hit.
func (s *DutyScheduleService) Get(ctx context.Context, rawTerm string) (*dto.DutyScheduleView, bool, error) {
	term, err := parseTermParam(rawTerm)
	if err != nil {
		return nil, false, err
	}

	// The version is read before the database so a regeneration committed
	// mid-read bumps it and the stale view lands under a key nobody reads.
	version, cacheable := s.cache.Version(ctx, scheduleVersionKey(term))
	key := scheduleCacheKey(term, version)
	if cacheable {
		var cached dto.DutyScheduleView
		if s.cache.Get(ctx, key, &cached) {
			return &cached, true, nil
		}
	}

	assignments, err := s.assignments.ListByTerm(ctx, nil, term)
	if err != nil {
		return nil, false, persistenceError(err, "failed to load duty schedule")
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	view := &dto.DutyScheduleView{
		Term:        term,
		Assignments: assignments,
		Stats:       calculateDutyStats(assignments, s.cfg.MaxSlotsPerStudent),
	}
	if cacheable {
		s.cache.Set(ctx, key, view)
	}
	return view, false, nil
}

// Audit re-checks the persisted schedule of a term against the roster.
func (s *DutyScheduleService) Audit(ctx context.Context, rawTerm string) (*dto.DutyScheduleAudit, error) {
	term, err := parseTermParam(rawTerm)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ListByTerm(ctx, nil, term)
	if err != nil {
		return nil, persistenceError(err, "failed to load duty schedule")
	}
	students, err := s.roster.ListActiveStudents(ctx)
	if err != nil {
		return nil, persistenceError(err, "failed to load committee members")
	}
	rooms, err := s.roster.ListActiveRooms(ctx)
	if err != nil {
		return nil, persistenceError(err, "failed to load rooms")
	}
	classes, err := s.roster.ListClasses(ctx)
	if err != nil {
		return nil, persistenceError(err, "failed to load classes")
	}
	classNames := make(map[string]string, len(classes))
	for _, class := range classes {
		classNames[class.ID] = class.Name
	}

	violations := auditDutyAssignments(term, activeStudents(students), activeRooms(rooms), classNames, assignments, s.cfg.MaxSlotsPerStudent)
	return &dto.DutyScheduleAudit{
		Term:       term,
		Valid:      len(violations) == 0,
		Checked:    len(assignments),
		Violations: violations,
	}, nil
}

func parseTermParam(raw string) (models.Term, error) {
	term, err := models.ParseTerm(raw)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "term must be FIRST_TERM or SECOND_TERM")
	}
	return term, nil
}

func failedResult(term models.Term, reason *appErrors.Error) *dto.GenerateDutyScheduleResult {
	return &dto.GenerateDutyScheduleResult{
		Success: false,
		Term:    term,
		Error:   reason.Message,
		Code:    reason.Code,
	}
}

func persistenceError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, message)
}

func scheduleVersionKey(term models.Term) string {
	return "schedule-version:" + string(term)
}

func scheduleCacheKey(term models.Term, version int64) string {
	return fmt.Sprintf("schedule:%s:v%d", term, version)
}

func scheduleCachePattern(term models.Term) string {
	return "schedule:" + string(term) + ":*"
}
