package api

import (
	"net/http"
	"strings"

	"SeriesVault/internal/domain/models"
	drepo "SeriesVault/internal/domain/repository"
	"SeriesVault/internal/usecase"
	xhttp "SeriesVault/pkg/http"
	xlogger "SeriesVault/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SeriesEchoHandler exposes the fetch and query endpoints over Echo.
type SeriesEchoHandler struct {
	logger   *xlogger.Logger
	ingestor *usecase.Ingestor
	reader   *usecase.CacheReader
	stores   drepo.Stores
}

func NewSeriesEchoHandler(logger *xlogger.Logger, ingestor *usecase.Ingestor, reader *usecase.CacheReader, stores drepo.Stores) *SeriesEchoHandler {
	return &SeriesEchoHandler{logger: logger, ingestor: ingestor, reader: reader, stores: stores}
}

func (h *SeriesEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/fetch", h.Fetch)
	g.GET("/series", h.Series)
	g.GET("/symbols", h.Symbols)
	e.GET("/healthz", h.Health)
}

// Fetch runs the ingestion pipeline for one symbol.
func (h *SeriesEchoHandler) Fetch(c echo.Context) error {
	req := &models.FetchRequest{}
	// Accept ?type=&symbol= as well as a JSON body.
	var verr interface{}
	if c.QueryParams().Has("type") || c.QueryParams().Has("symbol") {
		verr = xhttp.ReadAndValidateQuery(c, req)
	} else {
		verr = xhttp.ReadAndValidateRequest(c, req)
	}
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res := h.ingestor.Ingest(c.Request().Context(), req.Type, req.Symbol)
	if res.Status == models.IngestFailed {
		return xhttp.DataResponse(c, faultStatus(res.FaultKind), res)
	}

	// The document changed; cached query entries are stale.
	h.reader.Invalidate(c.Request().Context())
	return xhttp.SuccessResponse(c, res)
}

// Series returns the cache document subtree for (type, symbol).
func (h *SeriesEchoHandler) Series(c echo.Context) error {
	req := &models.QueryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	// Stored keys are canonical uppercase; accept any casing from clients.
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))

	class, err := models.ParseAssetClass(req.Type)
	if err != nil {
		appErr := xhttp.NewAppError(string(models.FaultKindOf(err)), "type", err.Error(), http.StatusBadRequest).
			WithParam("type", req.Type).
			WithParam("symbol", symbol)
		return xhttp.AppErrorResponse(c, appErr)
	}

	obs, ok, err := h.reader.Series(c.Request().Context(), class, symbol)
	if err != nil {
		h.logger.Error("series read error", xlogger.Error(err))
		appErr := xhttp.NewAppError(string(models.FaultStorageError), "", "failed to read stored series", http.StatusInternalServerError).
			WithError(err)
		return xhttp.AppErrorResponse(c, appErr)
	}
	if !ok {
		appErr := xhttp.NotFoundErrorf("no stored series for %s %s", req.Type, symbol).
			WithParam("type", req.Type).
			WithParam("symbol", symbol)
		return xhttp.AppErrorResponse(c, appErr)
	}

	// Optional trailing window: ?limit=N returns the last N observations.
	if limit := xhttp.ParseIntDefault(c.QueryParam("limit"), 0); limit > 0 && limit < len(obs) {
		obs = obs[len(obs)-limit:]
	}

	return xhttp.SuccessResponse(c, map[string]interface{}{
		"type":         req.Type,
		"symbol":       symbol,
		"observations": obs,
	})
}

// Symbols lists every stored symbol for an asset class, empty tables
// included.
func (h *SeriesEchoHandler) Symbols(c echo.Context) error {
	class, err := models.ParseAssetClass(c.QueryParam("type"))
	if err != nil {
		appErr := xhttp.NewAppError(string(models.FaultKindOf(err)), "type", err.Error(), http.StatusBadRequest).
			WithParam("type", c.QueryParam("type"))
		return xhttp.AppErrorResponse(c, appErr)
	}

	symbols, err := h.stores.For(class).Symbols(c.Request().Context())
	if err != nil {
		h.logger.Error("symbols read error", xlogger.Error(err))
		appErr := xhttp.NewAppError(string(models.FaultStorageError), "", "failed to list symbols", http.StatusInternalServerError).
			WithError(err)
		return xhttp.AppErrorResponse(c, appErr)
	}

	return xhttp.ListResponse(c, symbols, int64(len(symbols)))
}

// Health pings every store.
func (h *SeriesEchoHandler) Health(c echo.Context) error {
	if err := h.stores.Health(c.Request().Context()); err != nil {
		h.logger.Error("health check failed", xlogger.Error(err))
		return xhttp.DataResponse(c, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// faultStatus maps a pipeline fault kind to an HTTP status.
func faultStatus(kind models.FaultKind) int {
	switch kind {
	case models.FaultUnsupportedAssetClass, models.FaultInvalidSymbolFormat:
		return http.StatusBadRequest
	case models.FaultRateLimited:
		return http.StatusTooManyRequests
	case models.FaultProviderError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
