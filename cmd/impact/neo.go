package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/couchcryptid/asteroid-impact-etl/internal/domain"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

var errCatalogDisabled = errors.New("neows catalog disabled (NEOWS_ENABLED=false or --offline)")

func newNEOCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "neo",
		Short: "Browse near-Earth objects from NASA NeoWs",
	}
	cmd.AddCommand(newNEOGetCmd(a), newNEOFeedCmd(a))
	return cmd
}

func newNEOGetCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one catalog object and the scenario it yields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.newCatalog(a)
			if err != nil {
				return err
			}
			if catalog == nil {
				return errCatalogDisabled
			}

			neo, err := catalog.LookupNEO(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			params := domain.ParamsFromNEO(domain.DefaultImpactParams(), neo)

			if asJSON {
				return writeJSON(a, map[string]any{"neo": neo, "params": params})
			}
			renderNEO(a.out, neo, params)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the object as JSON")
	return cmd
}

func newNEOFeedCmd(a *app) *cobra.Command {
	var (
		date   string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "List objects making close approaches in the week from --date",
		Long: `Feed lists objects whose close approaches fall in the seven days starting at
--date (default today, UTC). When the catalog is disabled or unreachable the
command prints a small set of demo objects instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := domain.Now().UTC()
			start := now.Truncate(24 * time.Hour)
			if date != "" {
				parsed, err := time.Parse(dateLayout, date)
				if err != nil {
					return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", date)
				}
				start = parsed
			}

			rows, err := feedRows(cmd, a, start, limit)
			if err != nil {
				a.logger.Debug("catalog feed unavailable", "error", err)
				fmt.Fprintln(a.errOut, styles.warning.Render("catalog unavailable ("+err.Error()+"), showing demo objects"))
				rows = domain.FallbackAsteroids(now)
			}

			if asJSON {
				return writeJSON(a, rows)
			}
			renderFeed(a.out, rows)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&date, "date", "", "first day of the window, YYYY-MM-DD")
	f.IntVar(&limit, "limit", domain.DefaultFeedLimit, "maximum number of objects")
	f.BoolVar(&asJSON, "json", false, "print the rows as JSON")
	return cmd
}

func feedRows(cmd *cobra.Command, a *app, start time.Time, limit int) ([]domain.AsteroidSummary, error) {
	catalog, err := a.newCatalog(a)
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, errCatalogDisabled
	}
	neos, err := catalog.Feed(cmd.Context(), start, start.Add(domain.FeedWindow))
	if err != nil {
		return nil, err
	}
	return domain.SummarizeFeed(neos, limit), nil
}

func writeJSON(a *app, v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
