package catalog

type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	InStock     bool    `json:"inStock"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	Category    string  `json:"category"`
}

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	ProductCount int    `json:"productCount"`
}
