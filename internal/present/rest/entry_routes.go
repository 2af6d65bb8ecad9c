package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/ornidex/ornidex/internal/domain"
	"github.com/ornidex/ornidex/internal/present/rest/presenter"
)

func (h *Handler) registerEntryRoutes(g *echo.Group) {
	g.GET("/entries", h.handleListEntries)
	g.GET("/entries/count", h.handleCountEntries)
	g.GET("/entries/next-grouping", h.handleNextGrouping)
	g.GET("/entries/:id", h.handleGetEntry)
	g.POST("/entries", h.handleCreateEntry)
	g.PUT("/entries/:id", h.handleUpdateEntry)
	g.DELETE("/entries/:id", h.handleDeleteEntry)
}

func parseEntrySearchParams(c echo.Context) domain.EntrySearchParams {
	return domain.EntrySearchParams{
		SearchParams:   parseSearchParams(c),
		InventoryID:    queryInt64(c, "inventoryId"),
		SpeciesIDs:     queryIDList(c, "speciesIds"),
		ClassIDs:       queryIDList(c, "classIds"),
		LocalityIDs:    queryIDList(c, "localityIds"),
		Number:         queryInt(c, "number"),
		OnlyBreeders:   c.QueryParam("onlyBreeders") == "true",
		FromDate:       queryDate(c, "fromDate"),
		ToDate:         queryDate(c, "toDate"),
		Comment:        queryString(c, "comment"),
		Grouping:       queryInt(c, "regroupment"),
		BehaviorIDs:    queryIDList(c, "behaviorIds"),
		EnvironmentIDs: queryIDList(c, "environmentIds"),
	}
}

func queryString(c echo.Context, name string) *string {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	return &raw
}

func (h *Handler) handleListEntries(c echo.Context) error {
	ctx := c.Request().Context()

	records, err := h.entries.FindPaginated(ctx, requester(c), parseEntrySearchParams(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, records)
}

func (h *Handler) handleCountEntries(c echo.Context) error {
	ctx := c.Request().Context()

	count, err := h.entries.Count(ctx, requester(c), parseEntrySearchParams(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"count": count})
}

func (h *Handler) handleNextGrouping(c echo.Context) error {
	ctx := c.Request().Context()

	next, err := h.entries.NextGrouping(ctx, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"id": next})
}

func (h *Handler) handleGetEntry(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}
	record, err := h.entries.Find(ctx, id, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	if record == nil {
		return presenter.NotFound(c, "entry not found")
	}
	return presenter.OK(c, record)
}

func (h *Handler) handleCreateEntry(c echo.Context) error {
	ctx := c.Request().Context()

	var input domain.Entry
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.entries.Create(ctx, input, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, created)
}

func (h *Handler) handleUpdateEntry(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}
	var input domain.Entry
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}
	updated, err := h.entries.Update(ctx, id, input, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, updated)
}

func (h *Handler) handleDeleteEntry(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}
	deleted, err := h.entries.Delete(ctx, id, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	if deleted == nil {
		return presenter.NotFound(c, "entry not found")
	}
	return presenter.OK(c, deleted)
}
