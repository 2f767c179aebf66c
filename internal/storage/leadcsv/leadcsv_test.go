package leadcsv_test

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/payment-orchestrator/internal/models"
	"github.com/magabrotheeeer/payment-orchestrator/internal/storage/leadcsv"
)

func newRecorder(t *testing.T) (*leadcsv.Recorder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leads.csv")
	rec, err := leadcsv.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Close() })
	return rec, path
}

func readLines(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	lines, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return lines
}

func TestAppend_RoundTripsEscapedFields(t *testing.T) {
	rec, path := newRecorder(t)

	reason := `card declined, "insufficient funds"`
	err := rec.Append(models.LeadRecord{
		Timestamp:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Email:          "a@b.com",
		Status:         "failed",
		Amount:         1000,
		ConfirmationID: "pi_123",
		FailureReason:  reason,
		Reference:      "ref-1",
	})
	require.NoError(t, err)

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, []string{
		"2024-05-01T12:00:00Z", "a@b.com", "failed", "1000", "pi_123", reason, "ref-1",
	}, lines[0])
}

func TestAppend_OptionalFieldsEmpty(t *testing.T) {
	rec, path := newRecorder(t)

	require.NoError(t, rec.Append(models.LeadRecord{
		Email:  "a@b.com",
		Status: "abandoned",
	}))

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "a@b.com", lines[0][1])
	assert.Equal(t, "abandoned", lines[0][2])
	assert.Empty(t, lines[0][3])
	assert.Empty(t, lines[0][4])
	assert.Empty(t, lines[0][5])
	assert.Empty(t, lines[0][6])
	// метка времени проставляется при отсутствии
	_, err := time.Parse(time.RFC3339, lines[0][0])
	assert.NoError(t, err)
}

func TestAppend_NeverTruncates(t *testing.T) {
	rec, path := newRecorder(t)
	require.NoError(t, rec.Append(models.LeadRecord{Email: "first@b.com", Status: "success"}))
	require.NoError(t, rec.Close())

	// повторное открытие дописывает, а не перезаписывает
	rec2, err := leadcsv.New(path)
	require.NoError(t, err)
	defer rec2.Close()
	require.NoError(t, rec2.Append(models.LeadRecord{Email: "second@b.com", Status: "failed"}))

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "first@b.com", lines[0][1])
	assert.Equal(t, "second@b.com", lines[1][1])
}

func TestAppend_ConcurrentWritesStayParseable(t *testing.T) {
	rec, path := newRecorder(t)

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			err := rec.Append(models.LeadRecord{
				Email:         fmt.Sprintf("user%d@b.com", i),
				Status:        "success",
				FailureReason: `contains, "quotes" and, commas`,
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	lines := readLines(t, path)
	require.Len(t, lines, writers)
	for _, line := range lines {
		require.Len(t, line, 7)
		assert.Equal(t, `contains, "quotes" and, commas`, line[5])
	}
}
