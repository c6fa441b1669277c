package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vvka-141/appgen/internal/db"
	"github.com/vvka-141/appgen/internal/ddl"
	"github.com/vvka-141/appgen/internal/sourcemap"
	"github.com/vvka-141/appgen/pkg/appgen"
)

// Applier executes statements against a database.
type Applier interface {
	Apply(ctx context.Context, statements []ddl.Statement) error
	Close() error
}

// OpenFunc connects to the database named by a connection string.
type OpenFunc func(ctx context.Context, connStr string, logger appgen.Logger) (Applier, error)

// OpenDatabase is the default OpenFunc.
func OpenDatabase(ctx context.Context, connStr string, logger appgen.Logger) (Applier, error) {
	a, err := db.Open(ctx, connStr, logger)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ApplyService compiles a specification and applies it to a database.
// Thread-Safety: NOT safe for concurrent Apply calls on the same instance.
type ApplyService struct {
	generator *GeneratorService
	open      OpenFunc
	logger    appgen.Logger
	approver  appgen.Approver
}

// NewApplyService creates an ApplyService. Panics on nil dependencies.
func NewApplyService(generator *GeneratorService, open OpenFunc, logger appgen.Logger) *ApplyService {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if open == nil {
		panic("open cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ApplyService{generator: generator, open: open, logger: logger}
}

// WithApprover asks approver before connecting. Without one, Apply proceeds
// unasked.
func (s *ApplyService) WithApprover(approver appgen.Approver) *ApplyService {
	s.approver = approver
	return s
}

func (s *ApplyService) approve(ctx context.Context, connStr string, statements int) error {
	if s.approver == nil {
		return nil
	}
	target, err := db.ParseTarget(connStr)
	if err != nil {
		return err
	}
	ok, err := s.approver.RequestApproval(ctx, target.String(), statements)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s was not changed", appgen.ErrApprovalDenied, target)
	}
	return nil
}

// Apply compiles cfg.SpecPath and executes every statement in one transaction.
// cfg.Timeout, when set, bounds connecting and executing together.
func (s *ApplyService) Apply(ctx context.Context, cfg appgen.ApplyConfig) (*Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	doc, res, err := s.generator.compile(cfg.SpecPath, cfg.CompileSettings)
	if err != nil {
		return &Outcome{Result: res}, err
	}

	if err := s.approve(ctx, cfg.ConnectionString, len(res.Statements)); err != nil {
		return &Outcome{Result: res}, err
	}

	applier, err := s.open(ctx, cfg.ConnectionString, s.logger)
	if err != nil {
		return &Outcome{Result: res}, err
	}
	defer func() {
		if cerr := applier.Close(); cerr != nil {
			s.logger.Warn("failed to close database: %v", cerr)
		}
	}()

	if err := applier.Apply(ctx, res.Statements); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &Outcome{Result: res}, fmt.Errorf("%w: %v (%v)", appgen.ErrExecutionFailed, ctxErr, err)
		}
		var stmtErr *db.StatementError
		if errors.As(err, &stmtErr) {
			if entry, ok := sourcemap.Build(doc, res).Statement(stmtErr.Index); ok {
				err = fmt.Errorf("%w\n  defined at %s: %s", err, entry.Location(), entry.Description)
			}
		}
		return &Outcome{Result: res}, err
	}
	return &Outcome{Result: res}, nil
}
