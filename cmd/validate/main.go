// Command validate performs end-to-end integrity checks on the impact mock
// fixtures: the scenario request fixture consumed by the ETL tests and the
// report fixture produced by genmock. It verifies scenario validity, report
// coverage, recomputation of every report, and physical invariants.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -scenarios data/mock/impact_scenarios.json \
//	  -reports data/mock/impact_reports.json
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/couchcryptid/asteroid-impact-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

type scenario struct {
	Name   string
	Params domain.ImpactParams
	parsed bool
}

type namedReport struct {
	Name   string              `json:"name"`
	Report domain.ImpactReport `json:"report"`
}

func main() {
	scenariosPath := flag.String("scenarios", "", "path to scenario request fixture")
	reportsPath := flag.String("reports", "", "path to impact report fixture")
	flag.Parse()

	if *scenariosPath == "" || *reportsPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(os.Stdout, *scenariosPath, *reportsPath))
}

func run(out io.Writer, scenariosPath, reportsPath string) int {
	fmt.Fprintln(out, "=== Impact Fixture Integrity Validation ===")
	fmt.Fprintln(out)

	scenarios, err := loadScenarios(scenariosPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load scenarios: %v\n", err)
		return 1
	}

	reports, err := loadJSON[namedReport](reportsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load reports: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateScenarios(scenarios),
		validateCoverage(scenarios, reports),
		validateRecomputation(scenarios, reports),
		validateInvariants(reports),
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Records: %d scenarios, %d reports\n", len(scenarios), len(reports))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Data loading ──

// loadScenarios parses each scenario exactly as the pipeline parses a message.
func loadScenarios(path string) ([]scenario, error) {
	raws, err := loadJSON[json.RawMessage](path)
	if err != nil {
		return nil, err
	}

	out := make([]scenario, 0, len(raws))
	for i, raw := range raws {
		var meta struct {
			Name string `json:"name"`
		}
		_ = json.Unmarshal(raw, &meta)

		sc := scenario{Name: meta.Name}
		if req, err := domain.ParseRawEvent(domain.RawEvent{Value: raw}); err == nil {
			sc.Params = req.ImpactParams
			sc.parsed = true
		} else if sc.Name == "" {
			sc.Name = fmt.Sprintf("#%d", i)
		}
		out = append(out, sc)
	}
	return out, nil
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Phase 1: scenario fixture ──

func validateScenarios(scenarios []scenario) *phase {
	p := &phase{name: "Phase 1: Scenario fixture"}
	seen := make(map[string]bool, len(scenarios))

	for i, sc := range scenarios {
		if sc.Name == "" {
			p.errorf("scenario %d has no name", i)
		} else if seen[sc.Name] {
			p.errorf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = true

		if !sc.parsed {
			p.errorf("scenario %s: not a valid request payload", sc.Name)
			continue
		}
		if err := domain.Validate(sc.Params); err != nil {
			p.errorf("scenario %s: %v", sc.Name, err)
		}
	}

	surfaces := map[domain.Surface]int{}
	for _, sc := range scenarios {
		surfaces[sc.Params.Surface]++
	}
	if surfaces[domain.SurfaceLand] == 0 || surfaces[domain.SurfaceWater] == 0 {
		p.errorf("fixture must cover both surfaces (land=%d, water=%d)",
			surfaces[domain.SurfaceLand], surfaces[domain.SurfaceWater])
	}
	return p
}

// ── Phase 2: coverage ──

func validateCoverage(scenarios []scenario, reports []namedReport) *phase {
	p := &phase{name: "Phase 2: Report coverage"}

	byName := make(map[string]int, len(reports))
	for _, r := range reports {
		byName[r.Name]++
	}
	for _, sc := range scenarios {
		switch byName[sc.Name] {
		case 0:
			p.errorf("scenario %s has no report", sc.Name)
		case 1:
		default:
			p.errorf("scenario %s has %d reports", sc.Name, byName[sc.Name])
		}
		delete(byName, sc.Name)
	}
	for name := range byName {
		p.errorf("report %s has no matching scenario", name)
	}
	return p
}

// ── Phase 3: recomputation ──

func validateRecomputation(scenarios []scenario, reports []namedReport) *phase {
	p := &phase{name: "Phase 3: Report recomputation"}

	params := make(map[string]domain.ImpactParams, len(scenarios))
	for _, sc := range scenarios {
		if sc.parsed {
			params[sc.Name] = sc.Params
		}
	}

	for _, nr := range reports {
		want, ok := params[nr.Name]
		if !ok {
			continue
		}
		pf := func(format string, args ...any) {
			p.errorf("report %s: "+format, append([]any{nr.Name}, args...)...)
		}
		r := nr.Report

		if r.Params != want {
			pf("params %+v do not match scenario %+v", r.Params, want)
		}

		results, err := domain.Estimate(want)
		if err != nil {
			pf("estimate: %v", err)
			continue
		}
		checkResults(pf, results, r.Results)

		expected := domain.BuildImpactReport(domain.ScenarioRequest{ImpactParams: want}, results)
		if r.ID != expected.ID {
			pf("id %s, expected %s", r.ID, expected.ID)
		}
		if r.Display != expected.Display {
			pf("display %+v, expected %+v", r.Display, expected.Display)
		}
		if r.Summary != expected.Summary {
			pf("summary %q, expected %q", r.Summary, expected.Summary)
		}
		if r.DensityClass != expected.DensityClass {
			pf("density class %q, expected %q", r.DensityClass, expected.DensityClass)
		}
		if len(r.Zones) != len(expected.Zones) {
			pf("%d zones, expected %d", len(r.Zones), len(expected.Zones))
		}
	}
	return p
}

func checkResults(pf func(string, ...any), want, got domain.ImpactResults) {
	if !floatEq(got.EnergyMT, want.EnergyMT) {
		pf("energy %g MT, expected %g", got.EnergyMT, want.EnergyMT)
	}
	if !floatEq(got.Magnitude, want.Magnitude) {
		pf("magnitude %g, expected %g", got.Magnitude, want.Magnitude)
	}
	if !floatEq(got.CraterDiamKm, want.CraterDiamKm) {
		pf("crater %g km, expected %g", got.CraterDiamKm, want.CraterDiamKm)
	}
	if !floatEq(got.ThermalRadKm, want.ThermalRadKm) {
		pf("thermal radius %g km, expected %g", got.ThermalRadKm, want.ThermalRadKm)
	}
	if got.ThermalCasualties != want.ThermalCasualties {
		pf("thermal casualties %d, expected %d", got.ThermalCasualties, want.ThermalCasualties)
	}
	if got.Fatalities != want.Fatalities {
		pf("fatalities %d, expected %d", got.Fatalities, want.Fatalities)
	}
	if got.IsWater != want.IsWater {
		pf("is_water %t, expected %t", got.IsWater, want.IsWater)
	}
}

// ── Phase 4: invariants ──

func validateInvariants(reports []namedReport) *phase {
	p := &phase{name: "Phase 4: Physical invariants"}

	for _, nr := range reports {
		pf := func(format string, args ...any) {
			p.errorf("report %s: "+format, append([]any{nr.Name}, args...)...)
		}
		checkInvariants(pf, nr.Report)
	}
	return p
}

func checkInvariants(pf func(string, ...any), r domain.ImpactReport) {
	res := r.Results

	if res.EnergyMT <= 0 {
		pf("energy %g is not positive", res.EnergyMT)
	}
	if res.Magnitude < 0 {
		pf("magnitude %g is negative", res.Magnitude)
	}
	if res.ThermalCasualties < 0 || res.Fatalities < 0 {
		pf("negative casualty counts (%d, %d)", res.ThermalCasualties, res.Fatalities)
	}
	if res.IsWater != (r.Params.Surface == domain.SurfaceWater) {
		pf("is_water %t disagrees with surface %q", res.IsWater, r.Params.Surface)
	}

	if res.IsWater {
		if res.CraterDiamKm != 0 || res.CraterDepthKm != 0 {
			pf("water impact has crater %g km / %g km", res.CraterDiamKm, res.CraterDepthKm)
		}
		if want := int64(math.Round(float64(res.ThermalCasualties) * 0.5)); res.Fatalities != want {
			pf("water fatalities %d, expected half of casualties (%d)", res.Fatalities, want)
		}
	} else if !floatEq(res.CraterDepthKm, res.CraterDiamKm*0.2) {
		pf("crater depth %g is not a fifth of diameter %g", res.CraterDepthKm, res.CraterDiamKm)
	}

	if r.ID == "" {
		pf("id is empty")
	}
	if r.ProcessedAt.IsZero() {
		pf("processed_at is zero")
	}
	if r.Params.Approach == "" {
		pf("approach is empty")
	}
	if len(r.Zones) == 0 || r.Zones[0].Kind != domain.ZoneThermal {
		pf("first zone must be the thermal zone")
	}
	if err := checkTrajectory(r.Trajectory); err != nil {
		pf("%v", err)
	}
}

func checkTrajectory(t domain.Trajectory) error {
	for _, v := range []domain.Vec3{t.Start, t.Target} {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) {
			return errors.New("trajectory has NaN coordinates")
		}
	}
	if t.Start.Length() <= t.Target.Length() {
		return errors.New("trajectory starts below the impact point")
	}
	return nil
}

// ── Helpers ──

func floatEq(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}
