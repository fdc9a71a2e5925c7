package models

// Item is a single grocery-list entry.
type Item struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Category  string `json:"category"`
	Purchased bool   `json:"purchased"`
}

// ItemCreate is the payload for creating an item. Omitted optional fields
// take their defaults when stored.
type ItemCreate struct {
	Name      string           `json:"name"`
	Quantity  Optional[int64]  `json:"quantity"`
	Category  Optional[string] `json:"category"`
	Purchased Optional[bool]   `json:"purchased"`
}

// ItemPatch is a partial update. Only present fields are written.
type ItemPatch struct {
	Name      Optional[string] `json:"name"`
	Quantity  Optional[int64]  `json:"quantity"`
	Category  Optional[string] `json:"category"`
	Purchased Optional[bool]   `json:"purchased"`
}

// IsEmpty reports whether the patch carries no recognized field.
func (p ItemPatch) IsEmpty() bool {
	return !p.Name.Set && !p.Quantity.Set && !p.Category.Set && !p.Purchased.Set
}
