package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

func TestTranscriptServiceBuild(t *testing.T) {
	fx := newPortalFixture(t)
	svc := NewTranscriptService(fx.guard)

	transcript, err := svc.Build(context.Background(), stuIdentity)
	require.NoError(t, err)
	require.Len(t, transcript.Rows, 3)
	assert.Equal(t, "not-a-number", transcript.Rows[1].GPA)
	assert.Equal(t, "3.70", transcript.CGPA)
}

func TestTranscriptServiceExport(t *testing.T) {
	fx := newPortalFixture(t)
	svc := NewTranscriptService(fx.guard)

	csvFile, err := svc.Export(context.Background(), stuIdentity, "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", csvFile.ContentType)
	assert.Equal(t, "transcript-stu-1.csv", csvFile.Filename)
	assert.Contains(t, string(csvFile.Content), "CGPA,3.70")

	pdfFile, err := svc.Export(context.Background(), stuIdentity, "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdfFile.ContentType)
	assert.True(t, bytes.HasPrefix(pdfFile.Content, []byte("%PDF")))

	_, err = svc.Export(context.Background(), stuIdentity, "xlsx")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
