package dto

// SucursalStockDTO stock de una sucursal con el vendible ya calculado.
type SucursalStockDTO struct {
	Quantity  int `json:"quantity"`
	Available int `json:"available"`
}

// ProductStockResponse stock completo de un producto: por sucursal y agregado.
type ProductStockResponse struct {
	ProductID  int64                       `json:"product_id"`
	SKU        string                      `json:"sku"`
	MinStock   int                         `json:"min_stock"`
	TotalStock int                         `json:"total_stock"`
	Status     string                      `json:"stock_status"`
	Sucursales map[string]SucursalStockDTO `json:"sucursales"`
}

// BranchStockResponse stock de un producto en una sucursal puntual.
type BranchStockResponse struct {
	ProductID int64  `json:"product_id"`
	Sucursal  string `json:"sucursal"`
	Quantity  int    `json:"quantity"`
	MinStock  int    `json:"min_stock"`
	Available int    `json:"available"`
}

// AvailableProductsResponse productos con stock vendible en una sucursal.
type AvailableProductsResponse struct {
	Sucursal   string  `json:"sucursal"`
	ProductIDs []int64 `json:"product_ids"`
}
