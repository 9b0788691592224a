package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/noah-isme/campus-portal-api/internal/aggregation"
	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
	"github.com/noah-isme/campus-portal-api/pkg/export"
)

type reportRenderer interface {
	Render(report export.Report) ([]byte, error)
	ContentType() string
	Extension() string
}

// TranscriptFile is a rendered transcript.
type TranscriptFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// TranscriptService renders semester results and the cumulative GPA.
type TranscriptService struct {
	guard     *ViewGuard
	renderers map[string]reportRenderer
}

// NewTranscriptService constructs a TranscriptService with CSV and PDF renderers.
func NewTranscriptService(guard *ViewGuard) *TranscriptService {
	return &TranscriptService{
		guard: guard,
		renderers: map[string]reportRenderer{
			"csv": export.NewCSVExporter(),
			"pdf": export.NewPDFExporter(),
		},
	}
}

// Build returns the transcript data.
func (s *TranscriptService) Build(ctx context.Context, identity models.Identity) (*dto.Transcript, error) {
	var transcript *dto.Transcript
	err := s.guard.Run(ctx, identity, ViewTranscript, func(_ context.Context, student *models.Student) error {
		transcript = buildTranscript(student)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transcript, nil
}

// Export renders the transcript in format (csv or pdf).
func (s *TranscriptService) Export(ctx context.Context, identity models.Identity, format string) (*TranscriptFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported transcript format %q", format))
	}

	transcript, err := s.Build(ctx, identity)
	if err != nil {
		return nil, err
	}

	report := export.Report{
		Title: "Academic Transcript",
		Header: []export.Field{
			{Label: "Student", Value: transcript.StudentName},
			{Label: "Roll Number", Value: transcript.RollNumber},
		},
		Columns: []string{"Semester", "GPA"},
		Rows:    make([][]string, 0, len(transcript.Rows)),
		Summary: []export.Field{{Label: "CGPA", Value: transcript.CGPA}},
	}
	for _, row := range transcript.Rows {
		report.Rows = append(report.Rows, []string{row.Semester, row.GPA})
	}

	content, err := renderer.Render(report)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
	}
	return &TranscriptFile{
		Filename:    fmt.Sprintf("transcript-%s.%s", identity.StudentID, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}

func buildTranscript(student *models.Student) *dto.Transcript {
	transcript := &dto.Transcript{
		StudentName: student.Name,
		RollNumber:  student.RollNumber,
		Rows:        make([]dto.TranscriptRow, 0, len(student.Results)),
		CGPA:        aggregation.NoGPAData,
	}
	for _, result := range student.Results {
		transcript.Rows = append(transcript.Rows, dto.TranscriptRow{
			Semester: result.Semester.String(),
			GPA:      result.GPA.String(),
		})
	}
	if cgpa, ok := aggregation.CGPA(student.Results); ok {
		transcript.CGPA = aggregation.FormatFixed2(cgpa)
	}
	return transcript
}
