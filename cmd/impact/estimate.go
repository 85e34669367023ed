package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/couchcryptid/asteroid-impact-etl/internal/domain"
	"github.com/couchcryptid/asteroid-impact-etl/internal/pipeline"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type estimateOptions struct {
	params   domain.ImpactParams
	surface  string
	approach string
	neoID    string
	file     string
	asJSON   bool
}

func newEstimateCmd(a *app) *cobra.Command {
	opts := &estimateOptions{params: domain.DefaultImpactParams()}

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the effects of one impact scenario",
		Long: `Estimate runs the impact model for one scenario. Parameters start from the
default scenario, are overridden by --file, and then by any flag given
explicitly. With --neo-id the catalog object's size and speed replace the
diameter and velocity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd, a, opts)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.params.Lat, "lat", opts.params.Lat, "impact latitude in degrees")
	f.Float64Var(&opts.params.Lon, "lon", opts.params.Lon, "impact longitude in degrees")
	f.Float64Var(&opts.params.Diameter, "diameter", opts.params.Diameter, "asteroid diameter in metres")
	f.Float64Var(&opts.params.Velocity, "velocity", opts.params.Velocity, "impact velocity in km/s")
	f.Float64Var(&opts.params.Angle, "angle", opts.params.Angle, "entry angle in degrees from horizontal")
	f.Float64Var(&opts.params.Density, "density", opts.params.Density, "bulk density in kg/m³")
	f.StringVar(&opts.surface, "surface", string(opts.params.Surface), "target surface: land or water")
	f.StringVar(&opts.approach, "approach", string(opts.params.Approach), "approach direction: top, north, east, south or west")
	f.StringVar(&opts.neoID, "neo-id", "", "NeoWs object ID to take size and speed from")
	f.StringVarP(&opts.file, "file", "f", "", "YAML or JSON scenario file")
	f.BoolVar(&opts.asJSON, "json", false, "print the report as JSON")

	return cmd
}

func runEstimate(cmd *cobra.Command, a *app, opts *estimateOptions) error {
	req, err := buildRequest(cmd, opts)
	if err != nil {
		return err
	}

	var catalog domain.Catalog
	if req.NEOID != "" {
		catalog, err = a.newCatalog(a)
		if err != nil {
			return err
		}
		if catalog == nil {
			fmt.Fprintln(a.errOut, styles.warning.Render("catalog disabled, ignoring --neo-id"))
		}
	}

	transformer := pipeline.NewTransformer(nil, catalog, a.logger, a.metrics)
	report, err := transformer.Simulate(cmd.Context(), req)
	if err != nil {
		var ipe *domain.InvalidParameterError
		if errors.As(err, &ipe) {
			for _, v := range ipe.Violations {
				fmt.Fprintln(a.errOut, styles.err.Render(fmt.Sprintf("  --%s: %s", v.Field, v.Reason)))
			}
		}
		return err
	}

	if report.CatalogSource == domain.CatalogSourceFailed {
		fmt.Fprintln(a.errOut, styles.warning.Render(
			fmt.Sprintf("catalog lookup for %s failed, using the supplied diameter and velocity", req.NEOID)))
	}

	if opts.asJSON {
		return writeJSON(a, report)
	}
	renderReport(a.out, report)
	return nil
}

// buildRequest layers the default scenario, the scenario file and the
// explicitly set flags, in that order.
func buildRequest(cmd *cobra.Command, opts *estimateOptions) (domain.ScenarioRequest, error) {
	req := domain.DefaultScenarioRequest()

	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return domain.ScenarioRequest{}, fmt.Errorf("read scenario file: %w", err)
		}
		// YAML is a superset of JSON, so one decoder serves both.
		if err := yaml.Unmarshal(data, &req); err != nil {
			return domain.ScenarioRequest{}, fmt.Errorf("parse scenario file %s: %w", opts.file, err)
		}
	}

	overrides := map[string]func(){
		"lat":      func() { req.Lat = opts.params.Lat },
		"lon":      func() { req.Lon = opts.params.Lon },
		"diameter": func() { req.Diameter = opts.params.Diameter },
		"velocity": func() { req.Velocity = opts.params.Velocity },
		"angle":    func() { req.Angle = opts.params.Angle },
		"density":  func() { req.Density = opts.params.Density },
		"surface":  func() { req.Surface = domain.Surface(opts.surface) },
		"approach": func() { req.Approach = domain.Approach(opts.approach) },
		"neo-id":   func() { req.NEOID = opts.neoID },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	req.RequestedAt = domain.Now()
	return req, nil
}
