package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/ornidex/ornidex/internal/domain"
	"github.com/ornidex/ornidex/internal/present/rest/presenter"
	"github.com/ornidex/ornidex/internal/usecase"
)

// referenceRoutes is the one generic REST surface behind every
// reference-entity kind.
type referenceRoutes[T domain.Owned] struct {
	svc *usecase.ReferenceService[T]
}

type referenceOption struct {
	parentSegment string
}

// withParent exposes the of-child lookup under /<name>/of-<child>/:id.
func withParent(child string) referenceOption {
	return referenceOption{parentSegment: child}
}

var withoutParent = referenceOption{}

func registerReference[T domain.Owned](g *echo.Group, name string, svc *usecase.ReferenceService[T], opt referenceOption) {
	r := &referenceRoutes[T]{svc: svc}

	g.GET("/"+name, r.handleList)
	g.GET("/"+name+"/count", r.handleCount)
	g.GET("/"+name+"/:id", r.handleGet)
	g.GET("/"+name+"/:id/entries-count", r.handleEntriesCount)
	g.POST("/"+name, r.handleCreate)
	g.POST("/"+name+"/bulk", r.handleCreateMany)
	g.PUT("/"+name+"/:id", r.handleUpdate)
	g.DELETE("/"+name+"/:id", r.handleDelete)

	if opt.parentSegment != "" {
		g.GET("/"+name+"/of-"+opt.parentSegment+"/:id", r.handleOfChild)
	}
}

func (r *referenceRoutes[T]) handleList(c echo.Context) error {
	ctx := c.Request().Context()

	records, err := r.svc.FindPaginated(ctx, requester(c), parseSearchParams(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, records)
}

func (r *referenceRoutes[T]) handleCount(c echo.Context) error {
	ctx := c.Request().Context()

	var q *string
	if raw := c.QueryParam("q"); raw != "" {
		q = &raw
	}
	count, err := r.svc.Count(ctx, requester(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"count": count})
}

func (r *referenceRoutes[T]) handleGet(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}
	record, err := r.svc.Find(ctx, id, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	if record == nil {
		return presenter.NotFound(c, "record not found")
	}
	return presenter.OK(c, record)
}

func (r *referenceRoutes[T]) handleOfChild(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}
	record, err := r.svc.FindOfChild(ctx, id, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	if record == nil {
		return presenter.NotFound(c, "record not found")
	}
	return presenter.OK(c, record)
}

func (r *referenceRoutes[T]) handleEntriesCount(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}
	count, err := r.svc.EntryUsageCount(ctx, id, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"count": count})
}

func (r *referenceRoutes[T]) handleCreate(c echo.Context) error {
	ctx := c.Request().Context()

	var input T
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := r.svc.Create(ctx, input, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, created)
}

func (r *referenceRoutes[T]) handleCreateMany(c echo.Context) error {
	ctx := c.Request().Context()

	var inputs []T
	if err := c.Bind(&inputs); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := r.svc.CreateMany(ctx, inputs, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, created)
}

func (r *referenceRoutes[T]) handleUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}
	var input T
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}
	updated, err := r.svc.Update(ctx, id, input, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, updated)
}

func (r *referenceRoutes[T]) handleDelete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}
	deleted, err := r.svc.Delete(ctx, id, requester(c))
	if err != nil {
		return respondError(c, err)
	}
	if deleted == nil {
		return presenter.NotFound(c, "record not found")
	}
	return presenter.OK(c, deleted)
}
