package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/asteroid-impact-etl/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "data", "mock", "impact_scenarios.json"))
	require.NoError(t, err)
	return data
}

func TestBuildReports_Fixture(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(processedAt))
	t.Cleanup(func() { domain.SetClock(nil) })

	reports, err := buildReports(readFixture(t))
	require.NoError(t, err)
	require.Len(t, reports, 14)

	byName := make(map[string]domain.ImpactReport, len(reports))
	for _, nr := range reports {
		byName[nr.Name] = nr.Report
		assert.Equal(t, processedAt, nr.Report.ProcessedAt)
		require.NotNil(t, nr.Report.RequestedAt)
		assert.Equal(t, requestedAt, *nr.Report.RequestedAt)
	}

	cape := byName["cape-canaveral"]
	assert.Equal(t, domain.DefaultImpactParams(), cape.Params)
	assert.InDelta(t, 3803.32, cape.Results.EnergyMT, 0.01)
	assert.Equal(t, int64(466847), cape.Results.Fatalities)

	assert.True(t, byName["chicxulub"].Results.IsWater)
	assert.Equal(t, "dense iron", byName["barringer"].DensityClass)
	assert.Equal(t, "icy", byName["tunguska"].DensityClass)
}

func TestBuildReports_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not an array", data: `{"name":"x"}`},
		{name: "bad field type", data: `[{"name":"x","lat":"north"}]`},
		{name: "invalid params", data: `[{"name":"x","diameter":-5}]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildReports([]byte(tc.data))
			require.Error(t, err)
		})
	}
}

func TestBuildReports_UnnamedScenario(t *testing.T) {
	reports, err := buildReports([]byte(`[{}]`))
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "scenario-0", reports[0].Name)
}

func TestCollectStats(t *testing.T) {
	reports, err := buildReports(readFixture(t))
	require.NoError(t, err)

	stats := collectStats(reports)
	assert.Equal(t, 11, stats.surfaceCounts["land"])
	assert.Equal(t, 3, stats.surfaceCounts["water"])
	assert.Equal(t, 11, stats.withCrater)
	assert.Equal(t, "north-atlantic", stats.maxEnergy.Name)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reports.json")
	require.NoError(t, writeJSON(path, []namedReport{{Name: "a"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []namedReport
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, byte('\n'), data[len(data)-1])
}
