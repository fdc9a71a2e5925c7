package models

const (
	// NameMaxLength is the upper bound for an item name after trimming.
	NameMaxLength = 80

	// CategoryMaxLength is the upper bound for an item category.
	CategoryMaxLength = 40

	// DefaultQuantity is stored when a create payload omits quantity.
	DefaultQuantity = 1
)
