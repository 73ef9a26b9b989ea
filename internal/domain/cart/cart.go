package cart

import (
	"github.com/shopspring/decimal"

	"github.com/erp/storefront/internal/domain/shared"
)

// Item is a single cart line. Product fields are copied at add time so the
// cart stays renderable even if the catalog changes underneath it. Field
// names follow the upstream CRM payloads (nombre, precio).
type Item struct {
	ProductID   string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Precio      decimal.Decimal `json:"precio"`
	Imagen      string          `json:"imagen,omitempty"`
	Categoria   string          `json:"categoria,omitempty"`
	Descripcion string          `json:"descripcion,omitempty"`
	Quantity    int             `json:"quantity"`
}

// Subtotal returns precio × quantity, unrounded
func (i Item) Subtotal() decimal.Decimal {
	return i.Precio.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the ordered list of items for one store slug. Items are unique by
// product id: adding an existing id increments its quantity instead of
// appending a duplicate line.
type Cart struct {
	Items []Item `json:"items"`
}

// New creates an empty cart
func New() *Cart {
	return &Cart{Items: make([]Item, 0)}
}

// ErrIndexOutOfRange is returned by positional operations with a bad index
var ErrIndexOutOfRange = shared.NewDomainError("INDEX_OUT_OF_RANGE", "Cart item index out of range")

// Add appends the item with quantity 1, or increments the quantity of an
// existing line with the same product id
func (c *Cart) Add(item Item) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
}

// IncrementAt raises the quantity of the item at index by 1
func (c *Cart) IncrementAt(index int) error {
	if index < 0 || index >= len(c.Items) {
		return ErrIndexOutOfRange
	}
	c.Items[index].Quantity++
	return nil
}

// DecrementAt lowers the quantity of the item at index by 1. Quantity never
// drops below 1; removal is the only way to reach zero.
func (c *Cart) DecrementAt(index int) error {
	if index < 0 || index >= len(c.Items) {
		return ErrIndexOutOfRange
	}
	if c.Items[index].Quantity > 1 {
		c.Items[index].Quantity--
	}
	return nil
}

// RemoveAt deletes the item at index
func (c *Cart) RemoveAt(index int) error {
	if index < 0 || index >= len(c.Items) {
		return ErrIndexOutOfRange
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return nil
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
}

// Len returns the number of distinct lines
func (c *Cart) Len() int {
	return len(c.Items)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total returns the grand total Σ(precio × quantity), unrounded. Rounding
// happens only at the display/payload boundary via TotalFormatted.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// TotalFormatted returns the grand total rounded to two decimal places,
// as sent to the upstream API and shown to the customer
func (c *Cart) TotalFormatted() string {
	return c.Total().StringFixed(2)
}
