package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/couchcryptid/asteroid-impact-etl/internal/domain"
)

// Palette: ember tones for impact effects, slate for chrome.
var (
	colorEmber   = lipgloss.Color("#FF7A45")
	colorFlare   = lipgloss.Color("#FFC857")
	colorOcean   = lipgloss.Color("#3FA7D6")
	colorSlate   = lipgloss.Color("#5C6B73")
	colorDanger  = lipgloss.Color("#E74C3C")
	colorSuccess = lipgloss.Color("#59CD90")
)

var styles = struct {
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	box     lipgloss.Style
	summary lipgloss.Style
	hazard  lipgloss.Style
	safe    lipgloss.Style
}{
	title:   lipgloss.NewStyle().Bold(true).Foreground(colorEmber),
	label:   lipgloss.NewStyle().Foreground(colorSlate).Width(20),
	value:   lipgloss.NewStyle().Bold(true).Foreground(colorFlare),
	muted:   lipgloss.NewStyle().Foreground(colorSlate),
	warning: lipgloss.NewStyle().Foreground(colorFlare),
	err:     lipgloss.NewStyle().Foreground(colorDanger),
	box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorEmber).
		Padding(0, 1),
	summary: lipgloss.NewStyle().Width(64).Italic(true),
	hazard:  lipgloss.NewStyle().Foreground(colorDanger).Bold(true),
	safe:    lipgloss.NewStyle().Foreground(colorSuccess),
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, styles.label.Render(label), styles.value.Render(value))
}

// renderReport prints the human-readable form of an impact report.
func renderReport(w io.Writer, r domain.ImpactReport) {
	p, d := r.Params, r.Display

	heading := fmt.Sprintf("%gm %s asteroid at %g km/s", p.Diameter, r.DensityClass, p.Velocity)
	if r.NEO != nil {
		heading = fmt.Sprintf("%s (%s)", r.NEO.Name, heading)
	}

	surface := lipgloss.NewStyle().Foreground(colorEmber).Render("land")
	if r.Results.IsWater {
		surface = lipgloss.NewStyle().Foreground(colorOcean).Render("water")
	}

	rows := []string{
		row("Target", fmt.Sprintf("%.2f, %.2f", p.Lat, p.Lon)+" "+surface),
		row("Entry", fmt.Sprintf("%g° from %s", p.Angle, p.Approach)),
		row("Energy", d.EnergyMT+" MT"),
		row("Seismic magnitude", d.Magnitude),
	}
	if !r.Results.IsWater {
		rows = append(rows,
			row("Crater diameter", d.CraterDiamKm+" km"),
			row("Crater depth", d.CraterDepthKm+" km"),
		)
	}
	rows = append(rows,
		row("Thermal radius", d.ThermalRadKm+" km"),
		row("Thermal casualties", formatCount(r.Results.ThermalCasualties)),
		row("Est. fatalities", formatCount(r.Results.Fatalities)),
	)

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.title.Render(heading),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		styles.summary.Render(r.Summary),
	)
	fmt.Fprintln(w, styles.box.Render(body))
	fmt.Fprintln(w, styles.muted.Render("report "+r.ID))
}

// renderNEO prints a catalog object and the scenario it would produce.
func renderNEO(w io.Writer, n domain.NearEarthObject, params domain.ImpactParams) {
	hazard := styles.safe.Render("not hazardous")
	if n.Hazardous {
		hazard = styles.hazard.Render("potentially hazardous")
	}

	rows := []string{
		row("ID", n.ID),
		row("Diameter", fmt.Sprintf("%.0f–%.0f m", n.DiameterMinM, n.DiameterMaxM)),
		row("Classification", hazard),
	}
	if len(n.CloseApproaches) > 0 {
		ca := n.CloseApproaches[0]
		rows = append(rows,
			row("Next approach", ca.Date),
			row("Relative velocity", fmt.Sprintf("%.2f km/s", ca.VelocityKmS)),
			row("Miss distance", formatCount(int64(ca.MissDistanceKm))+" km"),
		)
	}
	rows = append(rows,
		"",
		styles.muted.Render(fmt.Sprintf("impact estimate uses diameter %g m, velocity %g km/s", params.Diameter, params.Velocity)),
	)

	fmt.Fprintln(w, styles.box.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{styles.title.Render(n.Name), ""}, rows...)...,
	)))
}

// renderFeed prints explorer rows as a table.
func renderFeed(w io.Writer, rows []domain.AsteroidSummary) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.muted).
		Headers("ID", "NAME", "DIAMETER (m)", "VELOCITY (km/h)", "MISS (km)", "APPROACH", "HAZARD")

	for _, s := range rows {
		hazard := ""
		if s.Hazardous {
			hazard = "yes"
		}
		t.Row(
			s.ID,
			s.Name,
			strconv.FormatFloat(s.DiameterM, 'f', 0, 64),
			formatCount(int64(s.VelocityKmH)),
			formatCount(int64(s.DistanceKm)),
			s.CloseApproachDate,
			hazard,
		)
	}
	fmt.Fprintln(w, t.Render())
}

// formatCount renders n with thousands separators.
func formatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
