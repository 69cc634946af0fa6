package dto

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/guttosm/stockdata/internal/domain/models"
)

func ptr[T any](v T) *T { return &v }

func TestNewStockDataResponse_Defaults(t *testing.T) {
	resp := NewStockDataResponse(&models.StockData{Symbol: "SPY"})

	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := map[string]any{
		"Name":                     "UNKNOWN",
		"Currency":                 "USD",
		"MarketCapitalization":     "0",
		"TrailingPE":               "0",
		"ForwardPE":                "0",
		"DividendPerShareYearly":   "0",
		"TargetMeanPrice":          "0",
		"NumberOfAnalystOpinions":  "0",
		"InvestorRelationsWebsite": "0",
		"RecommendationMean":       "0",
		"SharesOutstanding":        "0",
	}
	for k, v := range want {
		if out[k] != v {
			t.Fatalf("%s: want %v got %v", k, v, out[k])
		}
	}
	if v, ok := out["ComputedRecommendationMean"]; !ok || v != nil {
		t.Fatalf("ComputedRecommendationMean should be present and null, got %v (present=%v)", v, ok)
	}
	if _, ok := out["RecentFourQuartersIncomeStatements"]; ok {
		t.Fatalf("income statements should be omitted when absent")
	}
	if h, ok := out["HistoricalData"].(map[string]any); !ok || len(h) != 0 {
		t.Fatalf("HistoricalData should be an empty object, got %v", out["HistoricalData"])
	}
	if d, ok := out["DividendHistory"].(map[string]any); !ok || len(d) != 0 {
		t.Fatalf("DividendHistory should be an empty object, got %v", out["DividendHistory"])
	}
}

func TestNewStockDataResponse_ValuesAndRoundTrip(t *testing.T) {
	data := &models.StockData{
		Symbol: "AAPL",
		Profile: models.Profile{
			LongName:                ptr("Apple Inc."),
			Currency:                ptr("USD"),
			MarketCap:               ptr(3.4e12),
			TrailingPE:              ptr(33.4),
			NumberOfAnalystOpinions: ptr(40.0),
			IRWebsite:               ptr("http://investor.apple.com/"),
		},
		HistoricalData:             map[string]map[string]float64{"2024-01-02": {"Open": 1, "Close": 2}},
		DividendHistory:            map[string]float64{"2024-02-09": 0.24},
		IncomeStatements:           map[string]map[string]float64{"2023-12-31": {"Net Income": 5}},
		ComputedRecommendationMean: ptr(2.0),
	}

	resp := NewStockDataResponse(data)
	if !resp.MarketCapitalization.IsNumber() || resp.MarketCapitalization.Float() != 3.4e12 {
		t.Fatalf("unexpected market cap %v", resp.MarketCapitalization)
	}
	if resp.ForwardPE.IsNumber() || resp.ForwardPE.String() != "0" {
		t.Fatalf("forward PE should fall back to \"0\", got %v", resp.ForwardPE)
	}

	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back StockDataResponse
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	b2, err := json.Marshal(back)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}

	var first, second map[string]any
	_ = json.Unmarshal(b, &first)
	_ = json.Unmarshal(b2, &second)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("round trip mismatch:\n%s\n%s", b, b2)
	}
}
