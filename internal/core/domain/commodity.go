package domain

// BusinessRef is the owning business as resolved at read time.
type BusinessRef struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Commodity is a product listed by a business. Business is set on creation
// and never changes; Customers only grows through enrollment.
type Commodity struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Price       float64     `json:"price"`
	Description string      `json:"description,omitempty"`
	Business    BusinessRef `json:"business"`
	Customers   []string    `json:"customers"`
}

// CommodityPatch carries the editable fields of a commodity. Nil fields are
// left untouched.
type CommodityPatch struct {
	Title       *string  `json:"title"       validate:"omitempty,min=6,max=25"`
	Price       *float64 `json:"price"       validate:"omitempty,min=1,max=100000"`
	Description *string  `json:"description" validate:"omitempty,min=6,max=500"`
}

// Empty reports whether the patch changes nothing.
func (p CommodityPatch) Empty() bool {
	return p.Title == nil && p.Price == nil && p.Description == nil
}
