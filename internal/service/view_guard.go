package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/lifecycle"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

// View names used as lifecycle keys and metric labels.
const (
	ViewDashboard        = "dashboard"
	ViewCourses          = "courses"
	ViewEnrollment       = "enrollment"
	ViewWithdrawals      = "withdrawals"
	ViewAttendance       = "attendance"
	ViewAttendanceDetail = "attendance-detail"
	ViewMarks            = "marks"
	ViewMarksDetail      = "marks-detail"
	ViewProfile          = "profile"
	ViewTranscript       = "transcript"
)

type studentReader interface {
	Student(ctx context.Context, id string) (*models.Student, error)
}

type supersededRecorder interface {
	RecordSuperseded(view string)
}

// ViewGuard runs a view load for an explicit identity: it rejects unresolved
// identities, loads the root student document and discards results of loads
// that were superseded by a newer load of the same view.
type ViewGuard struct {
	students studentReader
	tracker  *lifecycle.Tracker
	metrics  supersededRecorder
	logger   *zap.Logger
}

// NewViewGuard constructs a ViewGuard. A nil tracker disables lifecycle tracking.
func NewViewGuard(students studentReader, tracker *lifecycle.Tracker, metrics supersededRecorder, logger *zap.Logger) *ViewGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewGuard{students: students, tracker: tracker, metrics: metrics, logger: logger}
}

// Run loads the identity's student document and invokes fn with it.
func (g *ViewGuard) Run(ctx context.Context, identity models.Identity, view string, fn func(ctx context.Context, student *models.Student) error) error {
	if !identity.Resolved || identity.StudentID == "" {
		return appErrors.Clone(appErrors.ErrNoIdentity, "")
	}

	runCtx := ctx
	var ticket *lifecycle.Ticket
	if g.tracker != nil {
		tracked, t, err := g.tracker.Begin(ctx, identity.StudentID+":"+view)
		if err != nil {
			g.logger.Warn("request lifecycle unavailable", zap.String("view", view), zap.Error(err))
		} else {
			runCtx, ticket = tracked, t
		}
	}

	err := g.load(runCtx, identity.StudentID, fn)

	if ticket != nil {
		finishErr := ticket.Finish(ctx)
		switch {
		case errors.Is(finishErr, lifecycle.ErrSuperseded):
			if g.metrics != nil {
				g.metrics.RecordSuperseded(view)
			}
			g.logger.Debug("discarding superseded view load",
				zap.String("view", view),
				zap.String("student_id", identity.StudentID),
				zap.Uint64("generation", ticket.Generation()))
			return appErrors.Clone(appErrors.ErrSuperseded, "")
		case finishErr != nil:
			g.logger.Warn("request lifecycle check failed", zap.String("view", view), zap.Error(finishErr))
		}
	}
	return err
}

func (g *ViewGuard) load(ctx context.Context, studentID string, fn func(ctx context.Context, student *models.Student) error) error {
	student, err := g.students.Student(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return appErrors.Clone(appErrors.ErrStudentNotFound, "")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return fn(ctx, student)
}

// Load resolves the identity's student document for mutations, which are never
// discarded as superseded.
func (g *ViewGuard) Load(ctx context.Context, identity models.Identity) (*models.Student, error) {
	if !identity.Resolved || identity.StudentID == "" {
		return nil, appErrors.Clone(appErrors.ErrNoIdentity, "")
	}
	var loaded *models.Student
	err := g.load(ctx, identity.StudentID, func(_ context.Context, student *models.Student) error {
		loaded = student
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}
