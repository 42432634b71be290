package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saifahn/dendron/internal/core/domain"
)

func newMockHistory() *mockHistory {
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return &mockHistory{
		runs: []domain.ExportRun{{ID: "run-1", StartedAt: at, Documents: 3, Created: 2, Failed: 1}},
		records: map[string][]domain.ExportRecord{
			"run-1": {{RunID: "run-1", DocumentID: "doc-a", RemoteID: "page-a", ExportedAt: at}},
			"run-0": {},
		},
		remote: map[string]string{"doc-a": "page-a"},
	}
}

func TestHistoryCmd_ListRuns(t *testing.T) {
	cleanup := setupServices(Services{History: newMockHistory()})
	defer cleanup()

	stdout, _, err := execute("history")

	require.NoError(t, err)
	assert.Contains(t, stdout, "run-1")
	assert.Contains(t, stdout, "2/3 created")
}

func TestHistoryCmd_ListRunsEmpty(t *testing.T) {
	cleanup := setupServices(Services{History: &mockHistory{}})
	defer cleanup()

	stdout, _, err := execute("history")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No exports recorded.")
}

func TestHistoryCmd_Run(t *testing.T) {
	cleanup := setupServices(Services{History: newMockHistory()})
	defer cleanup()

	stdout, _, err := execute("history", "run-1")

	require.NoError(t, err)
	assert.Contains(t, stdout, "doc-a -> page-a")
}

func TestHistoryCmd_RunWithoutPages(t *testing.T) {
	cleanup := setupServices(Services{History: newMockHistory()})
	defer cleanup()

	stdout, _, err := execute("history", "run-0")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No pages were created by this run.")
}

func TestHistoryCmd_UnknownRun(t *testing.T) {
	cleanup := setupServices(Services{History: newMockHistory()})
	defer cleanup()

	_, _, err := execute("history", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryCmd_JSON(t *testing.T) {
	cleanup := setupServices(Services{History: newMockHistory()})
	defer cleanup()

	stdout, _, err := execute("history", "--json")

	require.NoError(t, err)
	assert.Contains(t, stdout, `"ID": "run-1"`)
}

func TestHistoryPageCmd(t *testing.T) {
	cleanup := setupServices(Services{History: newMockHistory()})
	defer cleanup()

	stdout, _, err := execute("history", "page", "doc-a")
	require.NoError(t, err)
	assert.Contains(t, stdout, "page-a")

	_, _, err = execute("history", "page", "doc-z")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupServices(Services{})
	defer cleanup()

	_, _, err := execute("history")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "history service not configured")
}
