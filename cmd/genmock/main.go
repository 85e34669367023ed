// Command genmock runs the impact scenario fixture through the domain model
// and writes the resulting reports as a fixture for downstream consumers.
// It uses the actual ETL domain package so the output matches real pipeline
// behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -scenarios data/mock/impact_scenarios.json \
//	  -out data/mock/impact_reports.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/couchcryptid/asteroid-impact-etl/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Fixed clock for reproducible RequestedAt and ProcessedAt timestamps.
var (
	requestedAt = time.Date(2026, time.October, 19, 6, 0, 0, 0, time.UTC)
	processedAt = time.Date(2026, time.October, 19, 6, 0, 1, 0, time.UTC)
)

// namedReport pairs a fixture scenario name with its report.
type namedReport struct {
	Name   string              `json:"name"`
	Report domain.ImpactReport `json:"report"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	scenariosPath := flag.String("scenarios", "data/mock/impact_scenarios.json", "path to scenario request fixture")
	out := flag.String("out", "", "output path for the impact report fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	domain.SetClock(clockwork.NewFakeClockAt(processedAt))
	defer domain.SetClock(nil)

	data, err := os.ReadFile(*scenariosPath)
	if err != nil {
		return fmt.Errorf("read scenarios: %w", err)
	}

	reports, err := buildReports(data)
	if err != nil {
		return err
	}
	log.Printf("built %d reports", len(reports))

	if err := writeJSON(*out, reports); err != nil {
		return fmt.Errorf("writing report fixture: %w", err)
	}
	log.Printf("wrote report fixture: %s", *out)

	printStats(reports)
	return nil
}

// buildReports parses each scenario the way the pipeline parses a Kafka
// message and estimates it with the default estimator.
func buildReports(data []byte) ([]namedReport, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode scenarios: %w", err)
	}

	reports := make([]namedReport, 0, len(raws))
	for i, raw := range raws {
		var meta struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		if meta.Name == "" {
			meta.Name = fmt.Sprintf("scenario-%d", i)
		}

		req, err := domain.ParseRawEvent(domain.RawEvent{Value: raw, Timestamp: requestedAt})
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", meta.Name, err)
		}

		results, err := domain.Estimate(req.ImpactParams)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", meta.Name, err)
		}

		reports = append(reports, namedReport{
			Name:   meta.Name,
			Report: domain.BuildImpactReport(req, results),
		})
	}
	return reports, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// statsResult holds aggregated counts for printStats reporting.
type statsResult struct {
	surfaceCounts map[string]int
	densityCounts map[string]int
	withCrater    int
	withDeaths    int
	maxEnergy     namedReport
}

func collectStats(reports []namedReport) statsResult {
	s := statsResult{
		surfaceCounts: map[string]int{},
		densityCounts: map[string]int{},
	}
	for _, nr := range reports {
		r := nr.Report
		s.surfaceCounts[string(r.Params.Surface)]++
		s.densityCounts[r.DensityClass]++
		if r.Results.CraterDiamKm > 0 {
			s.withCrater++
		}
		if r.Results.Fatalities > 0 {
			s.withDeaths++
		}
		if r.Results.EnergyMT > s.maxEnergy.Report.Results.EnergyMT {
			s.maxEnergy = nr
		}
	}
	return s
}

func printStats(reports []namedReport) {
	stats := collectStats(reports)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(reports))
	fmt.Printf("By surface: land=%d, water=%d\n", stats.surfaceCounts["land"], stats.surfaceCounts["water"])
	fmt.Printf("By density: icy=%d, rocky=%d, dense iron=%d\n",
		stats.densityCounts["icy"], stats.densityCounts["rocky"], stats.densityCounts["dense iron"])
	fmt.Printf("With crater: %d\n", stats.withCrater)
	fmt.Printf("With fatalities: %d\n", stats.withDeaths)
	fmt.Printf("Largest: %s (%s MT)\n", stats.maxEnergy.Name, stats.maxEnergy.Report.Display.EnergyMT)

	sorted := append([]namedReport(nil), reports...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Report.Results.Fatalities > sorted[j].Report.Results.Fatalities
	})
	fmt.Println("\nFatalities:")
	for _, nr := range sorted {
		fmt.Printf("  %-18s %12d  (thermal %s km, M%s)\n",
			nr.Name, nr.Report.Results.Fatalities, nr.Report.Display.ThermalRadKm, nr.Report.Display.Magnitude)
	}
}
