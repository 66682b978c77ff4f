package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"vgsales/internal/engine"
	"vgsales/internal/export"
	"vgsales/internal/logging"
	"vgsales/internal/models"
)

const (
	mimeCSV   = "text/csv; charset=utf-8"
	mimeArrow = "application/vnd.apache.arrow.stream"
)

var (
	errUnknownView   = errors.New("unknown view")
	errUnknownFormat = errors.New("unknown format")
)

type Handler struct {
	dash *engine.Dashboard
}

func NewHandler(dash *engine.Dashboard) *Handler {
	return &Handler{dash: dash}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/regions", h.GetRegions)
	api.GET("/views/:view", h.GetView)
	api.GET("/stats", h.GetStats)
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func paginate(rows []models.AggregatedRow, limit, offset int) []models.AggregatedRow {
	if offset >= len(rows) {
		return []models.AggregatedRow{}
	}
	if limit > len(rows)-offset {
		limit = len(rows) - offset
	}
	return rows[offset : offset+limit]
}

func parseViewParam(s string) (engine.View, error) {
	view, ok := engine.ParseView(s)
	if !ok {
		return "", errUnknownView
	}
	return view, nil
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// returns the selectable region labels of a view
func (h *Handler) GetRegions(c echo.Context) error {
	view, err := parseViewParam(c.QueryParam("view"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.RegionOptions{
		View:    string(view),
		Labels:  engine.Labels(view),
		Default: engine.DefaultLabel(view),
	})
}

// returns one summary view, sorted by the selected region
func (h *Handler) GetView(c echo.Context) error {
	view, err := parseViewParam(c.Param("view"))
	if err != nil {
		return err
	}

	label := c.QueryParam("region")
	if label == "" {
		label = engine.DefaultLabel(view)
	}
	region, rows, err := h.dash.Query(view, label)
	if err != nil {
		return err
	}

	total := len(rows)
	limit, offset := getPaginationParams(c, total)
	page := paginate(rows, limit, offset)

	logging.FromContext(c.Request().Context()).Debug().
		Str("view", string(view)).
		Str("region", label).
		Int("rows", len(page)).
		Msg("view served")

	switch format := c.QueryParam("format"); format {
	case "", "json":
		return c.JSON(http.StatusOK, models.ViewPage{
			View:   string(view),
			Region: label,
			Column: region.Column(),
			Data:   page,
			Total:  total,
			Limit:  limit,
			Offset: offset,
		})
	case "csv":
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, view.KeyColumn(), page); err != nil {
			return err
		}
		return c.Blob(http.StatusOK, mimeCSV, buf.Bytes())
	case "arrow":
		var buf bytes.Buffer
		if err := export.WriteArrow(&buf, view.KeyColumn(), page); err != nil {
			return err
		}
		return c.Blob(http.StatusOK, mimeArrow, buf.Bytes())
	default:
		return errUnknownFormat
	}
}

// dataset and table sizes
func (h *Handler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dash.Stats())
}
