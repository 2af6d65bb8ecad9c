package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ornidex/ornidex/internal/present/rest/presenter"
)

func (h *Handler) registerExportRoutes(g *echo.Group) {
	g.POST("/export/entries", h.handleExportEntries)
	g.GET("/export/:id", h.handleDownloadExport)
}

func (h *Handler) handleExportEntries(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := h.export.GenerateEntriesExport(ctx, requester(c), parseEntrySearchParams(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"id": id})
}

func (h *Handler) handleDownloadExport(c echo.Context) error {
	ctx := c.Request().Context()

	document, err := h.export.GetExport(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if document == nil {
		return presenter.NotFound(c, "export not found or expired")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="export.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", document)
}
