package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
)

// Optional capabilities of a resource service.
type (
	searcher interface {
		Search(ctx context.Context, query string) ([]domain.Record, error)
	}
	relater interface {
		Related(ctx context.Context, id, sub string) (json.RawMessage, error)
	}
)

// ResourceHandler exposes one backend collection as a console view. Query
// parameters are forwarded to the backend untouched.
type ResourceHandler struct {
	service    ports.ResourceService
	searchable bool
}

func NewResourceHandler(service ports.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// Searchable routes "q" queries on List to the backend search.
func (h *ResourceHandler) Searchable() *ResourceHandler {
	h.searchable = true
	return h
}

type listResponse struct {
	Items []domain.Record `json:"items"`
	Count int             `json:"count"`
}

func newListResponse(items []domain.Record) listResponse {
	if items == nil {
		items = []domain.Record{}
	}
	return listResponse{Items: items, Count: len(items)}
}

// List handles GET on a collection view. On searchable collections a "q"
// parameter switches to the backend search.
//
// @Summary      List records
// @Tags         resources
// @Produce      json
// @Param        resource  path      string  true   "users, all-clients, contractors, laborers, projects or bids-overview"
// @Param        q         query     string  false  "Free-text search (users)"
// @Success      200       {object}  listResponse
// @Failure      502       {object}  map[string]string
// @Router       /{resource} [get]
func (h *ResourceHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	params := c.QueryParams()

	var (
		items []domain.Record
		err   error
	)
	s, ok := h.service.(searcher)
	if ok && h.searchable && params.Get("q") != "" {
		items, err = s.Search(ctx, params.Get("q"))
	} else {
		items, err = h.service.List(ctx, cloneValues(params))
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(items))
}

// Get handles GET on one record.
//
// @Summary      Get a record
// @Tags         resources
// @Produce      json
// @Param        resource  path      string  true  "Collection view"
// @Param        id        path      string  true  "Record ID"
// @Success      200       {object}  map[string]interface{}
// @Failure      404       {object}  map[string]string
// @Router       /{resource}/{id} [get]
func (h *ResourceHandler) Get(c echo.Context) error {
	rec, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// Create handles POST on a collection view.
//
// @Summary      Create a record
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        resource  path      string                  true  "Collection view"
// @Param        body      body      map[string]interface{}  true  "Record fields"
// @Success      201       {object}  map[string]interface{}
// @Failure      400       {object}  map[string]string
// @Router       /{resource} [post]
func (h *ResourceHandler) Create(c echo.Context) error {
	body, err := bindRecord(c)
	if err != nil {
		return err
	}
	rec, err := h.service.Create(c.Request().Context(), body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec)
}

// Update handles PUT on one record.
//
// @Summary      Update a record
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        resource  path      string                  true  "Collection view"
// @Param        id        path      string                  true  "Record ID"
// @Param        body      body      map[string]interface{}  true  "Fields to change"
// @Success      200       {object}  map[string]interface{}
// @Failure      404       {object}  map[string]string
// @Router       /{resource}/{id} [put]
func (h *ResourceHandler) Update(c echo.Context) error {
	body, err := bindRecord(c)
	if err != nil {
		return err
	}
	rec, err := h.service.Update(c.Request().Context(), c.Param("id"), body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// Delete handles DELETE on one record.
//
// @Summary      Delete a record
// @Tags         resources
// @Param        resource  path  string  true  "Collection view"
// @Param        id        path  string  true  "Record ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /{resource}/{id} [delete]
func (h *ResourceHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Related serves a sub-resource of one record (a client's projects, a
// contractor's stats). The backend payload is relayed as-is.
func (h *ResourceHandler) Related(sub string) echo.HandlerFunc {
	return func(c echo.Context) error {
		r, ok := h.service.(relater)
		if !ok {
			return echo.ErrNotFound
		}
		raw, err := r.Related(c.Request().Context(), c.Param("id"), sub)
		if err != nil {
			return err
		}
		if len(raw) == 0 {
			return c.NoContent(http.StatusNoContent)
		}
		return c.JSONBlob(http.StatusOK, raw)
	}
}

func bindRecord(c echo.Context) (domain.Record, error) {
	var body domain.Record
	if err := c.Bind(&body); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(body) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "empty payload")
	}
	return body, nil
}

func cloneValues(v url.Values) url.Values {
	if len(v) == 0 {
		return nil
	}
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
