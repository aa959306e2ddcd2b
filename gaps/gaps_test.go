package gaps_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wardrop/gaps"
)

// TestRecorder_RecordAndSamples verifies arrival order and snapshot
// isolation.
func TestRecorder_RecordAndSamples(t *testing.T) {
	rec := gaps.NewRecorder()
	rec.Record(10*time.Millisecond, 0.5)
	rec.Record(20*time.Millisecond, 0.1)

	require.Equal(t, 2, rec.Len())
	got := rec.Samples()
	assert.Equal(t, gaps.Sample{Elapsed: 10 * time.Millisecond, Gap: 0.5}, got[0])
	assert.Equal(t, gaps.Sample{Elapsed: 20 * time.Millisecond, Gap: 0.1}, got[1])

	// Mutating the snapshot must not touch the recorder.
	got[0].Gap = 99
	assert.Equal(t, 0.5, rec.Samples()[0].Gap)
}

// TestRecorder_ConcurrentRecord verifies that parallel writers lose no
// samples.
func TestRecorder_ConcurrentRecord(t *testing.T) {
	rec := gaps.NewRecorder()

	const writers, each = 8, 100
	var wg sync.WaitGroup
	wg.Add(writers)
	for w := 0; w < writers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				rec.Record(time.Duration(i), 0.01)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, writers*each, rec.Len())
}

// TestRecorder_WriteCSV verifies the header and nine-decimal formatting.
func TestRecorder_WriteCSV(t *testing.T) {
	rec := gaps.NewRecorder()
	rec.Record(1500*time.Millisecond, 0.25)
	rec.Record(3*time.Second, 0.0001)

	var buf bytes.Buffer
	require.NoError(t, rec.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "elapsed_seconds,gap", lines[0])
	assert.Equal(t, "1.500000000,0.250000000", lines[1])
	assert.Equal(t, "3.000000000,0.000100000", lines[2])
}

// TestRecorder_ExportEmpty verifies the empty-recorder sentinel on both
// export paths.
func TestRecorder_ExportEmpty(t *testing.T) {
	rec := gaps.NewRecorder()

	var buf bytes.Buffer
	assert.ErrorIs(t, rec.WriteCSV(&buf), gaps.ErrNoSamples)
	assert.ErrorIs(t, rec.RenderHTML(&buf, "empty"), gaps.ErrNoSamples)
}

// TestRecorder_RenderHTML verifies that the rendered chart is a complete
// HTML document carrying the recorded series.
func TestRecorder_RenderHTML(t *testing.T) {
	rec := gaps.NewRecorder()
	rec.Record(time.Second, 0.5)
	rec.Record(2*time.Second, 0.125)

	var buf bytes.Buffer
	require.NoError(t, rec.RenderHTML(&buf, "convergence"))

	html := buf.String()
	assert.Contains(t, html, "<html>")
	assert.Contains(t, html, "convergence")
	assert.Contains(t, html, "0.125")
}
