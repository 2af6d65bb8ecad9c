package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/ornidex/ornidex/internal/domain"
	"github.com/ornidex/ornidex/internal/present/rest/presenter"
)

func (h *Handler) registerSpeciesRoutes(g *echo.Group) {
	registerReference(g, "species", h.species.ReferenceService, withoutParent)

	g.GET("/species/search", h.handleSearchSpecies)
	g.GET("/species/search/count", h.handleCountSpecies)
}

func parseSpeciesSearchParams(c echo.Context) domain.SpeciesSearchParams {
	return domain.SpeciesSearchParams{
		SearchParams: parseSearchParams(c),
		ClassIDs:     queryIDList(c, "classIds"),
	}
}

func (h *Handler) handleSearchSpecies(c echo.Context) error {
	ctx := c.Request().Context()

	records, err := h.species.FindPaginatedSpecies(ctx, requester(c), parseSpeciesSearchParams(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, records)
}

func (h *Handler) handleCountSpecies(c echo.Context) error {
	ctx := c.Request().Context()

	count, err := h.species.CountSpecies(ctx, requester(c), parseSpeciesSearchParams(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"count": count})
}
