package rest

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ornidex/ornidex/internal/domain"
	"github.com/ornidex/ornidex/internal/present/rest/presenter"
	"github.com/ornidex/ornidex/internal/usecase"
)

// RealtimeFeed streams entry change events to websocket clients. The feed
// owns the output channel and stops sending when the context ends.
type RealtimeFeed interface {
	Realtime(ctx context.Context, output chan<- domain.Event)
}

type Handler struct {
	observers    *usecase.ReferenceService[domain.Observer]
	departments  *usecase.ReferenceService[domain.Department]
	towns        *usecase.ReferenceService[domain.Town]
	localities   *usecase.ReferenceService[domain.Locality]
	weathers     *usecase.ReferenceService[domain.Weather]
	classes      *usecase.ReferenceService[domain.SpeciesClass]
	species      *usecase.SpeciesService
	ages         *usecase.ReferenceService[domain.Age]
	sexes        *usecase.ReferenceService[domain.Sex]
	behaviors    *usecase.ReferenceService[domain.Behavior]
	environments *usecase.ReferenceService[domain.Environment]
	distances    *usecase.ReferenceService[domain.DistanceEstimate]
	numbers      *usecase.ReferenceService[domain.NumberEstimate]
	inventories  *usecase.InventoryService
	entries      *usecase.EntryService
	export       *usecase.ExportService
	signal       RealtimeFeed
}

// HandlerDeps lists what the REST surface serves.
type HandlerDeps struct {
	Observers    *usecase.ReferenceService[domain.Observer]
	Departments  *usecase.ReferenceService[domain.Department]
	Towns        *usecase.ReferenceService[domain.Town]
	Localities   *usecase.ReferenceService[domain.Locality]
	Weathers     *usecase.ReferenceService[domain.Weather]
	Classes      *usecase.ReferenceService[domain.SpeciesClass]
	Species      *usecase.SpeciesService
	Ages         *usecase.ReferenceService[domain.Age]
	Sexes        *usecase.ReferenceService[domain.Sex]
	Behaviors    *usecase.ReferenceService[domain.Behavior]
	Environments *usecase.ReferenceService[domain.Environment]
	Distances    *usecase.ReferenceService[domain.DistanceEstimate]
	Numbers      *usecase.ReferenceService[domain.NumberEstimate]
	Inventories  *usecase.InventoryService
	Entries      *usecase.EntryService
	Export       *usecase.ExportService
	Signal       RealtimeFeed
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		observers:    deps.Observers,
		departments:  deps.Departments,
		towns:        deps.Towns,
		localities:   deps.Localities,
		weathers:     deps.Weathers,
		classes:      deps.Classes,
		species:      deps.Species,
		ages:         deps.Ages,
		sexes:        deps.Sexes,
		behaviors:    deps.Behaviors,
		environments: deps.Environments,
		distances:    deps.Distances,
		numbers:      deps.Numbers,
		inventories:  deps.Inventories,
		entries:      deps.Entries,
		export:       deps.Export,
		signal:       deps.Signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	registerReference(api, "observers", h.observers, withoutParent)
	registerReference(api, "departments", h.departments, withParent("town"))
	registerReference(api, "towns", h.towns, withParent("locality"))
	registerReference(api, "localities", h.localities, withoutParent)
	registerReference(api, "weathers", h.weathers, withoutParent)
	registerReference(api, "species-classes", h.classes, withParent("species"))
	registerReference(api, "ages", h.ages, withoutParent)
	registerReference(api, "sexes", h.sexes, withoutParent)
	registerReference(api, "behaviors", h.behaviors, withoutParent)
	registerReference(api, "environments", h.environments, withoutParent)
	registerReference(api, "distance-estimates", h.distances, withoutParent)
	registerReference(api, "number-estimates", h.numbers, withoutParent)

	h.registerSpeciesRoutes(api)
	h.registerInventoryRoutes(api)
	h.registerEntryRoutes(api)
	h.registerExportRoutes(api)

	e.GET("/realtime", h.handleRealtime)
}

// requester extracts the logged user the auth middleware put on the
// context; nil for anonymous requests.
func requester(c echo.Context) *domain.LoggedUser {
	user, _ := c.Request().Context().Value(domain.RequesterCtxKey).(*domain.LoggedUser)
	return user
}

type conflictResponse struct {
	Type                    string `json:"type"`
	CorrespondingEntryFound string `json:"correspondingEntryFound,omitempty"`
}

// respondError maps the domain failure taxonomy onto HTTP.
func respondError(c echo.Context, err error) error {
	var similar domain.SimilarEntryExistsError
	switch {
	case errors.Is(err, domain.ErrNotAllowed):
		return presenter.Forbidden(c)
	case errors.As(err, &similar):
		return presenter.Conflict(c, conflictResponse{
			Type:                    "similarEntryAlreadyExists",
			CorrespondingEntryFound: strconv.FormatInt(similar.CorrespondingEntryID, 10),
		})
	case errors.Is(err, domain.ErrAlreadyExists):
		return presenter.Conflict(c, conflictResponse{Type: "alreadyExists"})
	case errors.Is(err, domain.ErrIsUsed):
		return presenter.Conflict(c, conflictResponse{Type: "isUsed"})
	case errors.Is(err, domain.ErrNotFound):
		return presenter.NotFound(c, err.Error())
	default:
		return presenter.InternalError(c, err)
	}
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func parseSearchParams(c echo.Context) domain.SearchParams {
	var params domain.SearchParams
	if q := c.QueryParam("q"); q != "" {
		params.Q = &q
	}
	if orderBy := c.QueryParam("orderBy"); orderBy != "" {
		params.OrderBy = &orderBy
	}
	if sortOrder := c.QueryParam("sortOrder"); sortOrder != "" {
		order := domain.SortOrder(sortOrder)
		params.SortOrder = &order
	}
	if page := c.QueryParam("pageNumber"); page != "" {
		if n, err := strconv.Atoi(page); err == nil {
			params.PageNumber = &n
		}
	}
	if size := c.QueryParam("pageSize"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			params.PageSize = &n
		}
	}
	return params
}

func queryInt(c echo.Context, name string) *int {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func queryInt64(c echo.Context, name string) *int64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func queryIDList(c echo.Context, name string) []int64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func queryDate(c echo.Context, name string) *time.Time {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &parsed
}
