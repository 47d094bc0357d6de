package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/domain/engagement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReportRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.ReportService.Submit(nil, SubmitReportInput{Type: "Tree Plantation"})
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestSubmitReportRejectsUnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	sess := env.login(t, "Asha", "Pune", "asha@example.com")

	_, err := env.ReportService.Submit(sess, SubmitReportInput{Type: "Pothole Repair"})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	reports, err := env.ReportService.ListForUser(sess)
	require.NoError(t, err)
	assert.Empty(t, reports, "rejected submission must not be persisted")
}

func TestSubmitReportFallbacks(t *testing.T) {
	env := newTestEnv(t)
	sess := env.login(t, "Asha", "Pune", "asha@example.com")

	report, err := env.ReportService.Submit(sess, SubmitReportInput{
		Type:        "Dustbin Installation",
		Location:    "Market Road",
		Description: "bin overflowing daily",
		Priority:    "High",
	})
	require.NoError(t, err)

	// Name always comes from the session; email and photo fall back.
	assert.Equal(t, "Asha", report.Name)
	assert.Equal(t, "asha@example.com", report.Email)
	assert.Equal(t, engagement.NoPhoto, report.Photo)
	assert.NotEmpty(t, report.ID)

	t.Run("whitespace-only email falls back to the profile email", func(t *testing.T) {
		report, err := env.ReportService.Submit(sess, SubmitReportInput{
			Email: "   ",
			Type:  "Dustbin Installation",
		})
		require.NoError(t, err)
		assert.Equal(t, "asha@example.com", report.Email)
	})

	t.Run("explicit email and photo are kept", func(t *testing.T) {
		report, err := env.ReportService.Submit(sess, SubmitReportInput{
			Email:     "other@example.com",
			Type:      "Dustbin Installation",
			PhotoName: "bin.jpg",
		})
		require.NoError(t, err)
		assert.Equal(t, "other@example.com", report.Email)
		assert.Equal(t, "bin.jpg", report.Photo)
	})
}

func TestSubmitReportNotifies(t *testing.T) {
	env := newTestEnv(t)
	sess := env.login(t, "Asha", "Pune", "asha@example.com")

	_, err := env.ReportService.Submit(sess, SubmitReportInput{
		Type:         "Tree Plantation",
		PhotoName:    "park.jpg",
		PhotoContent: "aGVsbG8=",
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, reports, _ := env.Sender.counts()
		return reports == 1
	}, time.Second, 5*time.Millisecond)

	env.Sender.mu.Lock()
	defer env.Sender.mu.Unlock()
	require.Len(t, env.Sender.reports, 1)
	require.NotNil(t, env.Sender.reports[0].Attachment)
	assert.Equal(t, "park.jpg", env.Sender.reports[0].Attachment.Filename)
}

func TestSubmitReportSurvivesSenderFailure(t *testing.T) {
	env := newTestEnv(t)
	sess := env.login(t, "Asha", "Pune", "asha@example.com")
	env.Sender.fail(errors.New("smtp down"))

	report, err := env.ReportService.Submit(sess, SubmitReportInput{Type: "Awareness Sessions"})
	require.NoError(t, err, "a failed notification must not fail the submission")

	reports, err := env.ReportService.ListForUser(sess)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, report.Name, reports[0].Name)
}
