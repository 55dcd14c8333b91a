package cart

import (
	"github.com/georgemunganga/tg-shop/internal/modules/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one product in the cart. Name, Price and Image are copied from the product
// when the line is created.
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is Price × Quantity.
func (l *Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered list of lines with at most one line per product.
// Every line has Quantity >= 1. The zero value is an empty cart.
type Cart struct {
	lines []*Line
}

func New() *Cart { return &Cart{} }

func (c *Cart) find(id uuid.UUID) int {
	for i, l := range c.lines {
		if l.ProductID == id {
			return i
		}
	}
	return -1
}

// Add puts one unit of p in the cart.
func (c *Cart) Add(p *catalog.Product) {
	if i := c.find(p.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, &Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
	})
}

// UpdateQuantity changes the quantity of a line by delta. A line that drops to zero
// or below is removed. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(id uuid.UUID, delta int) {
	i := c.find(id)
	if i < 0 {
		return
	}
	q := c.lines[i].Quantity + delta
	if q <= 0 {
		c.removeAt(i)
		return
	}
	c.lines[i].Quantity = q
}

// Remove drops the line for id if present.
func (c *Cart) Remove(id uuid.UUID) {
	if i := c.find(id); i >= 0 {
		c.removeAt(i)
	}
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// Total is the exact sum of line subtotals; zero for an empty cart.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Lines returns copies of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		out[i] = *l
	}
	return out
}

// Len is the number of distinct products.
func (c *Cart) Len() int { return len(c.lines) }

// Quantity is the number of units across all lines.
func (c *Cart) Quantity() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}
