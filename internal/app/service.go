package app

import (
	"github.com/guttosm/stockdata/config"
	"github.com/guttosm/stockdata/internal/provider"
	"github.com/guttosm/stockdata/internal/service"
)

// NewStockDataService wires the aggregation service with the response toggles from cfg.
// Shared by the API and export modes so both produce the same document.
func NewStockDataService(cfg config.Config, p provider.Provider) service.StockDataService {
	return service.NewStockDataService(p,
		service.WithParallelFetch(cfg.Response.ParallelFetch),
		service.WithIncomeStatements(cfg.Response.IncludeIncomeStatements),
	)
}
