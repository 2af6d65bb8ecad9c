package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/ornidex/ornidex/internal/domain"
	"github.com/ornidex/ornidex/internal/present/rest/presenter"
)

func (h *Handler) registerInventoryRoutes(g *echo.Group) {
	g.GET("/inventories", h.handleListInventories)
	g.GET("/inventories/count", h.handleCountInventories)
	g.GET("/inventories/:id", h.handleGetInventory)
	g.GET("/inventories/of-entry/:id", h.handleGetInventoryOfEntry)
	g.POST("/inventories", h.handleCreateInventory)
	g.PUT("/inventories/:id", h.handleUpdateInventory)
	g.DELETE("/inventories/:id", h.handleDeleteInventory)
}

func (h *Handler) handleListInventories(c echo.Context) error {
	ctx := c.Request().Context()

	records, err := h.inventories.FindPaginated(ctx, requester(c), parseSearchParams(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, records)
}

func (h *Handler) handleCountInventories(c echo.Context) error {
	ctx := c.Request().Context()

	count, err := h.inventories.Count(ctx, requester(c), parseSearchParams(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"count": count})
}

func (h *Handler) handleGetInventory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}
	record, err := h.inventories.Find(ctx, id, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	if record == nil {
		return presenter.NotFound(c, "inventory not found")
	}
	return presenter.OK(c, record)
}

func (h *Handler) handleGetInventoryOfEntry(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}
	record, err := h.inventories.FindOfEntry(ctx, id, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	if record == nil {
		return presenter.NotFound(c, "inventory not found")
	}
	return presenter.OK(c, record)
}

func (h *Handler) handleCreateInventory(c echo.Context) error {
	ctx := c.Request().Context()

	var input domain.Inventory
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.inventories.Create(ctx, input, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, created)
}

func (h *Handler) handleUpdateInventory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}
	var input domain.Inventory
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}
	updated, err := h.inventories.Update(ctx, id, input, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, updated)
}

func (h *Handler) handleDeleteInventory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}
	deleted, err := h.inventories.Delete(ctx, id, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	if deleted == nil {
		return presenter.NotFound(c, "inventory not found")
	}
	return presenter.OK(c, deleted)
}
