// Package export writes the /stock_data document of many tickers to disk.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/stockdata/internal/api"
	"github.com/guttosm/stockdata/internal/domain/dto"
	"github.com/guttosm/stockdata/internal/logger"
	"github.com/guttosm/stockdata/internal/service"
)

const maxParallel = 8

// Options describes one export run.
//
//   - Tickers: symbols to export; blanks and duplicates are ignored.
//   - StartDate / EndDate: YYYY-MM-DD range passed to the service unchanged.
//   - OutDir: directory receiving one <TICKER>.json per symbol (created if missing).
//   - Parallel: concurrent tickers, clamped to 1..8; <= 0 means min(4, NumCPU).
type Options struct {
	Tickers   []string
	StartDate string
	EndDate   string
	OutDir    string
	Parallel  int
}

// Result reports what was written for one ticker.
type Result struct {
	Ticker string
	Path   string
	// Error holds the public error message when the document is an error body.
	Error string
}

// Run exports every ticker and returns one Result per ticker, in input order.
//
// Behavior:
//   - Each ticker goes through the same service as GET /stock_data and is
//     written as the exact document the endpoint would serve, error bodies included.
//   - A ticker answering with an error body is logged and does not stop the run.
//   - Any file system failure cancels the remaining tickers and is returned.
func Run(ctx context.Context, svc service.StockDataService, opts Options) ([]Result, error) {
	tickers := normalizeTickers(opts.Tickers)
	if len(tickers) == 0 {
		return nil, errors.New("no tickers to export")
	}
	if opts.OutDir == "" {
		return nil, errors.New("output directory is required")
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	parallel := clampParallel(opts.Parallel)
	logger.L().Info().
		Int("tickers", len(tickers)).
		Int("max_parallel", parallel).
		Str("start_date", opts.StartDate).
		Str("end_date", opts.EndDate).
		Str("out", opts.OutDir).
		Msg("export start")

	results := make([]Result, len(tickers))

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, parallel)

	for i, ticker := range tickers {
		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
		}
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()

			data, err := svc.GetStockData(gctx, service.Query{Ticker: ticker, StartDate: opts.StartDate, EndDate: opts.EndDate})
			if gctx.Err() != nil {
				return gctx.Err()
			}
			doc := api.BuildDocument(data, err)

			path := filepath.Join(opts.OutDir, fileName(ticker))
			if werr := writeJSON(path, doc); werr != nil {
				logger.L().Error().Str("ticker", ticker).Err(werr).Msg("write failed")
				return fmt.Errorf("ticker %s: %w", ticker, werr)
			}

			res := Result{Ticker: ticker, Path: path}
			if body, ok := doc.(dto.ErrorBody); ok {
				res.Error = body.Message
				logger.L().Warn().Int("idx", i+1).Int("total", len(tickers)).Str("ticker", ticker).Str("error", body.Message).Msg("ticker exported with error body")
			} else {
				logger.L().Info().Int("idx", i+1).Int("total", len(tickers)).Str("ticker", ticker).Dur("elapsed", time.Since(start)).Msg("ticker exported")
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.L().Info().Int("tickers", len(tickers)).Msg("export done")
	return results, nil
}

// writeJSON writes doc next to path and renames it into place, so readers
// never observe a partially written file.
func writeJSON(path string, doc any) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(append(b, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func normalizeTickers(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// fileName maps a ticker to a file name; separators are replaced so a symbol can never escape OutDir.
func fileName(ticker string) string {
	r := strings.NewReplacer("/", "_", `\`, "_", "..", "_")
	return r.Replace(ticker) + ".json"
}

// clampParallel defaults to min(4, NumCPU) and caps at maxParallel.
func clampParallel(p int) int {
	if p <= 0 {
		p = 4
		if c := runtime.NumCPU(); c < p {
			p = c
		}
	}
	if p > maxParallel {
		p = maxParallel
	}
	return p
}
