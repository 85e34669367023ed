package domain

import (
	"context"
	"log/slog"
)

// Catalog source labels recorded on reports.
const (
	CatalogSourceCatalog = "catalog"
	CatalogSourceFailed  = "failed"
)

// EnrichWithCatalog replaces the request's diameter and velocity with the
// catalog figures for req.NEOID. A nil catalog or empty ID leaves the request
// untouched; a failed lookup keeps the caller's params and marks the request
// as failed so the estimate still runs.
func EnrichWithCatalog(ctx context.Context, req ScenarioRequest, catalog Catalog, logger *slog.Logger) ScenarioRequest {
	if catalog == nil || req.NEOID == "" {
		return req
	}

	neo, err := catalog.LookupNEO(ctx, req.NEOID)
	if err != nil {
		logger.Warn("catalog lookup failed, using supplied parameters",
			"neo_id", req.NEOID,
			"diameter", req.Diameter,
			"velocity", req.Velocity,
			"error", err,
		)
		req.CatalogSource = CatalogSourceFailed
		return req
	}

	req.ImpactParams = ParamsFromNEO(req.ImpactParams, neo)
	req.NEO = &NEOReference{ID: neo.ID, Name: neo.Name, Hazardous: neo.Hazardous}
	req.CatalogSource = CatalogSourceCatalog
	return req
}
