package domain

// Nutrition holds the per-product nutrition facts shown on the product panel
type Nutrition struct {
	Calories     float64  `json:"calories"`
	Sugar        float64  `json:"sugar"`
	Protein      float64  `json:"protein"`
	Fat          float64  `json:"fat"`
	Fiber        float64  `json:"fiber"`
	IsHalal      bool     `json:"isHalal"`
	IsVegan      bool     `json:"isVegan"`
	IsGlutenFree bool     `json:"isGlutenFree"`
	Allergens    []string `json:"allergens,omitempty"`
}
