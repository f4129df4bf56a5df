package transport

// CartLine mirrors what the storefront submits per product. ProductID is
// optional; resolution falls back to the display name when it is absent.
type CartLine struct {
	ProductID uint    `json:"product_id,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Points    int     `json:"points"`
	Qty       int     `json:"qty"`
}

type PlaceOrderRequest struct {
	Items  []CartLine `json:"items"`
	Total  float64    `json:"total"`
	Points int        `json:"points"`
}

type PlaceOrderResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	OrderNumber string `json:"order_number,omitempty"`
	OrderID     uint   `json:"order_id,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateProductRequest struct {
	CategoryID    uint    `json:"category_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Points        *int    `json:"points"`
	Image         string  `json:"image"`
	IsRecommended bool    `json:"is_recommended"`
	IsActive      *bool   `json:"is_active"`
}

type PatchProductRequest struct {
	CategoryID    *uint    `json:"category_id"`
	Name          *string  `json:"name"`
	Price         *float64 `json:"price"`
	Points        *int     `json:"points"`
	Image         *string  `json:"image"`
	IsRecommended *bool    `json:"is_recommended"`
	IsActive      *bool    `json:"is_active"`
}

type CreateCategoryRequest struct {
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

type PatchCategoryRequest struct {
	Name         *string `json:"name"`
	Icon         *string `json:"icon"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

type UpdateSettingsRequest struct {
	SiteName         *string `json:"site_name"`
	PointsRatio      *int    `json:"points_ratio"`
	TaxRate          *string `json:"tax_rate"`
	CurrencySymbol   *string `json:"currency_symbol"`
	CarouselAutoplay *bool   `json:"carousel_autoplay"`
	CarouselInterval *int    `json:"carousel_interval"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
