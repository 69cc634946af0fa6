package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stockdata/internal/domain/dto"
	"github.com/guttosm/stockdata/internal/domain/models"
	"github.com/guttosm/stockdata/internal/logger"
	"github.com/guttosm/stockdata/internal/service"
)

// Handler provides the HTTP handler for the stock data endpoint.
//
// Responsibilities:
//   - Read the query parameters
//   - Delegate aggregation to the service layer
//   - Map the service error taxonomy to the two error documents
//   - Always answer 200 OK with a JSON body
type Handler struct {
	svc service.StockDataService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.StockDataService) *Handler {
	return &Handler{svc: svc}
}

// GetStockData handles GET /stock_data requests.
//
// Query Parameters:
//   - ticker (string, required): Ticker symbol (e.g., "AAPL").
//   - start_date (string): First session date, inclusive, YYYY-MM-DD.
//   - end_date (string): Last session date, exclusive, YYYY-MM-DD.
//
// Responses are always 200 OK. Failures carry an "error" key with one of two messages:
//   - "Ticker symbol not provided"
//   - "No data available for the specified parameters" (missing dates, empty range, provider failure)
//
// GetStockData godoc
// @Summary      Get aggregated stock data
// @Description  Returns historical prices, profile facts, dividend history, analyst recommendation mean and quarterly income statements for a ticker. Errors are also served with 200 and an "error" key.
// @Tags         stock
// @Produce      json
// @Param        ticker      query     string  true   "Ticker symbol" example(AAPL)
// @Param        start_date  query     string  true   "Start date (inclusive) in YYYY-MM-DD" example(2024-01-01)
// @Param        end_date    query     string  true   "End date (exclusive) in YYYY-MM-DD" example(2024-02-01)
// @Success      200         {object}  dto.StockDataResponse  "Success"
// @Failure      default     {object}  dto.ErrorBody          "Error document (served with 200)"
// @Router       /stock_data [get]
func (h *Handler) GetStockData(c *gin.Context) {
	q := service.Query{
		Ticker:    strings.TrimSpace(c.Query("ticker")),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	data, err := h.svc.GetStockData(c.Request.Context(), q)
	if err != nil && !errors.Is(err, service.ErrMissingTicker) && !errors.Is(err, service.ErrNoData) {
		logger.FromContext(c.Request.Context()).Error().Err(err).Str("ticker", q.Ticker).Msg("unexpected service error")
	}

	c.JSON(http.StatusOK, BuildDocument(data, err))
}

// BuildDocument maps a service result to the /stock_data JSON document:
// a dto.StockDataResponse on success, otherwise a dto.ErrorBody with one of
// the two public messages.
func BuildDocument(data *models.StockData, err error) any {
	switch {
	case errors.Is(err, service.ErrMissingTicker):
		return dto.NewErrorBody(dto.MsgTickerNotProvided)
	case err != nil, data == nil:
		return dto.NewErrorBody(dto.MsgNoData)
	}
	return dto.NewStockDataResponse(data)
}
