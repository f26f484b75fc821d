package dto

// SyncRunResponse resultado de una corrida manual disparada por HTTP.
// Incluye el log completo para que el operador vea el detalle sin una
// segunda consulta.
type SyncRunResponse struct {
	RunID           string   `json:"run_id"`
	Failed          bool     `json:"failed"`
	Skipped         bool     `json:"skipped"`
	MatchedProducts int      `json:"matched_products"`
	StockUpdates    int      `json:"stock_updates"`
	MinimumUpdates  int      `json:"minimum_updates"`
	PriceUpdates    int      `json:"price_updates"`
	Logs            []string `json:"logs"`
}

// SyncLogsResponse log persistido de la última corrida.
type SyncLogsResponse struct {
	Logs []string `json:"logs"`
}
