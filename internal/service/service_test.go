package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/raphaelgruber/spheres-go/internal/jsontree"
	"github.com/raphaelgruber/spheres-go/internal/metrics"
	"github.com/raphaelgruber/spheres-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decode(t *testing.T, s string) *jsontree.Node {
	t.Helper()
	n, err := jsontree.Decode([]byte(s))
	require.NoError(t, err)
	return n
}

func TestExtractSpheres(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []models.SphereRecord
	}{
		{
			name: "all fields",
			in:   `[{"X":0.1,"Y":-0.2,"Z":0.3,"R":0.05,"L":4}]`,
			want: []models.SphereRecord{{X: 0.1, Y: -0.2, Z: 0.3, R: 0.05, Level: 4}},
		},
		{
			name: "key order does not matter",
			in:   `[{"L":2,"R":0.5,"Z":3,"Y":2,"X":1}]`,
			want: []models.SphereRecord{{X: 1, Y: 2, Z: 3, R: 0.5, Level: 2}},
		},
		{
			name: "missing keys default to zero",
			in:   `[{"X":0.5}]`,
			want: []models.SphereRecord{{X: 0.5}},
		},
		{
			name: "unknown and lowercase keys ignored",
			in:   `[{"x":9,"X":1,"id":"abc","color":"red"}]`,
			want: []models.SphereRecord{{X: 1}},
		},
		{
			name: "non-number values leave zero",
			in:   `[{"X":"1","Y":null,"Z":true,"R":[1],"L":{"v":1}}]`,
			want: []models.SphereRecord{{}},
		},
		{
			name: "duplicate keys all visited",
			in:   `[{"L":1,"L":6}]`,
			want: []models.SphereRecord{{Level: 6}},
		},
		{
			name: "non-object elements skipped",
			in:   `[1,{"R":1},"s",null,[{"R":2}],{"R":3}]`,
			want: []models.SphereRecord{{R: 1}, {R: 3}},
		},
		{
			name: "level truncated",
			in:   `[{"L":3.9},{"L":-2.5}]`,
			want: []models.SphereRecord{{Level: 3}, {Level: -2}},
		},
		{
			name: "empty array",
			in:   `[]`,
			want: []models.SphereRecord{},
		},
		{
			name: "object root",
			in:   `{"X":1,"R":1}`,
			want: []models.SphereRecord{},
		},
		{
			name: "scalar root",
			in:   `42`,
			want: []models.SphereRecord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSpheres(decode(t, tt.in))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelFromNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{1, 1},
		{7, 7},
		{2.9, 2},
		{-1.5, -1},
		{-0.5, 0},
		{math.NaN(), 0},
		{math.Inf(1), math.MaxInt32},
		{math.Inf(-1), math.MinInt32},
		{1e12, math.MaxInt32},
		{-1e12, math.MinInt32},
	}

	for _, tt := range tests {
		if got := LevelFromNumber(tt.in); got != tt.want {
			t.Errorf("LevelFromNumber(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBoundary_Visible(t *testing.T) {
	b := DefaultBoundary()
	threshold := DefaultRadius * VisibilityTolerance

	tests := []struct {
		name string
		rec  models.SphereRecord
		want bool
	}{
		{"center sphere", models.SphereRecord{R: 0.1}, false},
		{"touches boundary", models.SphereRecord{X: 0.7, R: 0.2}, true},
		{"off axis", models.SphereRecord{X: 0.3, Y: 0.4, R: 0.3}, true},
		{"just inside threshold", models.SphereRecord{X: threshold - 0.01, R: 0.005}, false},
		{"just outside threshold", models.SphereRecord{X: threshold, R: 0.001}, true},
		{"point at origin", models.SphereRecord{}, false},
		{"point beyond threshold", models.SphereRecord{Z: -0.795}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Visible(tt.rec))
		})
	}
}

func TestBoundary_ExactThresholdIsFiltered(t *testing.T) {
	// d + r == radius*0.99 is not strictly greater
	b := Boundary{Radius: 1}
	threshold := b.Radius * VisibilityTolerance
	assert.False(t, b.Visible(models.SphereRecord{X: threshold}))
	assert.False(t, b.Visible(models.SphereRecord{Y: -threshold}))
	assert.True(t, b.Visible(models.SphereRecord{X: threshold, R: 1e-9}))
}

func TestFilterSpheres_PreservesOrder(t *testing.T) {
	records := []models.SphereRecord{
		{X: 0.7, R: 0.2, Level: 1},
		{R: 0.1, Level: 2},
		{Y: 0.75, R: 0.1, Level: 3},
		{R: 0.2, Level: 4},
	}

	p := FilterSpheres(DefaultBoundary(), records)

	require.Len(t, p.Displayed, 2)
	require.Len(t, p.Filtered, 2)
	assert.Equal(t, 1, p.Displayed[0].Level)
	assert.Equal(t, 3, p.Displayed[1].Level)
	assert.Equal(t, 2, p.Filtered[0].Level)
	assert.Equal(t, 4, p.Filtered[1].Level)
	assert.Equal(t, models.ImportReport{Displayed: 2, Filtered: 2}, p.Report())
}

func TestFilterSpheres_PartitionProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := DefaultBoundary()

	records := make([]models.SphereRecord, 500)
	for i := range records {
		records[i] = models.SphereRecord{
			X:     rng.Float64()*1.6 - 0.8,
			Y:     rng.Float64()*1.6 - 0.8,
			Z:     rng.Float64()*1.6 - 0.8,
			R:     rng.Float64() * 0.3,
			Level: rng.Intn(9),
		}
	}

	p := FilterSpheres(b, records)
	assert.Equal(t, len(records), p.Report().Total())
	for _, r := range p.Displayed {
		assert.Greater(t, r.Distance()+r.R, b.Radius*VisibilityTolerance)
	}
	for _, r := range p.Filtered {
		assert.LessOrEqual(t, r.Distance()+r.R, b.Radius*VisibilityTolerance)
	}
}

func TestFilterSpheres_Empty(t *testing.T) {
	p := FilterSpheres(DefaultBoundary(), nil)
	assert.Empty(t, p.Displayed)
	assert.Empty(t, p.Filtered)
	assert.Equal(t, 0, p.Report().Total())
}

func TestRun_Scenario(t *testing.T) {
	svc := NewImportService(ImportConfig{Boundary: Boundary{Radius: 0.8}, Logger: quietLogger()})

	result, err := svc.Run([]byte(`[{"X":0,"Y":0,"Z":0,"R":0.1,"L":3},{"X":0.7,"Y":0,"Z":0,"R":0.2,"L":1}]`))
	require.NoError(t, err)

	assert.Equal(t, models.ImportReport{Displayed: 1, Filtered: 1}, result.Report)
	require.Len(t, result.Spheres, 1)
	assert.Equal(t, models.Red, result.Spheres[0].Color)
	assert.Equal(t, 0.2, result.Spheres[0].Record.R)
	assert.Equal(t, 0.7, result.Spheres[0].Record.X)
}

func TestRun_CountsOnlyObjects(t *testing.T) {
	svc := NewImportService(ImportConfig{Logger: quietLogger()})

	result, err := svc.Run([]byte(`[{"X":0.7,"R":0.2,"L":9},1,{"R":0.01},"x",{"Z":0.8,"L":0}]`))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Report.Total())
	assert.Equal(t, 2, result.Report.Displayed)
	for _, s := range result.Spheres {
		assert.Equal(t, models.White, s.Color)
	}
}

func TestRun_NonArrayRoot(t *testing.T) {
	svc := NewImportService(ImportConfig{Logger: quietLogger()})

	for _, in := range []string{`{"X":0.7,"R":0.2}`, `3`, `"spheres"`, `null`} {
		result, err := svc.Run([]byte(in))
		require.NoError(t, err, in)
		assert.Equal(t, models.ImportReport{}, result.Report, in)
		assert.Empty(t, result.Spheres, in)
	}
}

func TestRun_Malformed(t *testing.T) {
	svc := NewImportService(ImportConfig{Logger: quietLogger()})

	result, err := svc.Run([]byte(`[{"X":0.7,"R":0.2,"L":1}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, jsontree.ErrMalformedInput)
	assert.Nil(t, result)
}

type recordingPlacer struct {
	placed []models.ClassifiedSphere
}

func (p *recordingPlacer) Place(s models.ClassifiedSphere) {
	p.placed = append(p.placed, s)
}

type recordingReporter struct {
	reports []models.ImportReport
}

func (r *recordingReporter) Report(report models.ImportReport) {
	r.reports = append(r.reports, report)
}

func TestImport_Success(t *testing.T) {
	placer := &recordingPlacer{}
	reporter := &recordingReporter{}
	collector := metrics.NewCollector()

	svc := NewImportService(ImportConfig{
		Logger:   quietLogger(),
		Metrics:  collector,
		Reporter: reporter,
		Placer:   placer,
	})

	payload := []byte(`[{"X":0.7,"R":0.2,"L":1},{"R":0.1,"L":3},{"Y":-0.6,"R":0.3,"L":5}]`)
	result, err := svc.Import(context.Background(), FetcherFunc(func(ctx context.Context) ([]byte, error) {
		return payload, nil
	}))
	require.NoError(t, err)

	assert.Equal(t, models.ImportReport{Displayed: 2, Filtered: 1}, result.Report)
	require.Len(t, placer.placed, 2)
	assert.Equal(t, models.Red, placer.placed[0].Color)
	assert.Equal(t, models.Magenta, placer.placed[1].Color)
	assert.Equal(t, []models.ImportReport{result.Report}, reporter.reports)

	snap := collector.Snapshot()
	require.NotNil(t, snap.Fetch)
	require.NotNil(t, snap.Decode)
	require.NotNil(t, snap.Filter)
	assert.Equal(t, int64(1), snap.Decode.Count)
	assert.Equal(t, int64(2), snap.SpheresDisplayed)
	assert.Equal(t, int64(1), snap.SpheresFiltered)
}

func TestImport_FetchErrorForwarded(t *testing.T) {
	errFetch := errors.New("connection refused")
	placer := &recordingPlacer{}
	reporter := &recordingReporter{}
	collector := metrics.NewCollector()

	svc := NewImportService(ImportConfig{
		Logger:   quietLogger(),
		Metrics:  collector,
		Reporter: reporter,
		Placer:   placer,
	})

	result, err := svc.Import(context.Background(), FetcherFunc(func(ctx context.Context) ([]byte, error) {
		return nil, errFetch
	}))
	assert.Same(t, errFetch, err)
	assert.Nil(t, result)
	assert.Empty(t, placer.placed)
	assert.Empty(t, reporter.reports)
	assert.Equal(t, int64(1), collector.Snapshot().Fetch.Errors)
}

func TestImport_MalformedNoReport(t *testing.T) {
	reporter := &recordingReporter{}
	svc := NewImportService(ImportConfig{Logger: quietLogger(), Reporter: reporter})

	result, err := svc.Import(context.Background(), FetcherFunc(func(ctx context.Context) ([]byte, error) {
		return []byte(`[`), nil
	}))
	assert.ErrorIs(t, err, jsontree.ErrMalformedInput)
	assert.Nil(t, result)
	assert.Empty(t, reporter.reports)
}

func TestNewImportService_Defaults(t *testing.T) {
	svc := NewImportService(ImportConfig{})
	assert.Equal(t, DefaultRadius, svc.Boundary().Radius)
}

func TestReporters(t *testing.T) {
	var buf bytes.Buffer
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	r := MultiReporter{
		WriterReporter{W: &buf},
		LogReporter{Logger: logger},
	}
	r.Report(models.ImportReport{Displayed: 4, Filtered: 9})

	assert.Equal(t, "Displayed 4 spheres, filtered 9 others.\n", buf.String())
	assert.Contains(t, logBuf.String(), "displayed=4")
	assert.Contains(t, logBuf.String(), "filtered=9")
}
