package model

// Product is a row of the products table.
type Product struct {
	ID     int64   `db:"id" json:"id"`
	Name   string  `db:"name" json:"name"`
	Cost   float64 `db:"cost" json:"cost"`
	Active bool    `db:"active" json:"active"`
}

// Variant is a named dimension shared across products, e.g. "size".
// Names are unique.
type Variant struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ProductVariant assigns one value of a variant to a product.
type ProductVariant struct {
	ID        int64   `db:"id" json:"id"`
	VariantID int64   `db:"variant_id" json:"variant_id"`
	ProductID int64   `db:"product_id" json:"product_id"`
	Value     *string `db:"value" json:"value"` // Nullable
}

type NewProduct struct {
	Name   string  `db:"name"`
	Cost   float64 `db:"cost"`
	Active bool    `db:"active"`
}

type NewVariant struct {
	Name string `db:"name"`
}

type NewProductVariant struct {
	ProductID int64   `db:"product_id"`
	VariantID int64   `db:"variant_id"`
	Value     *string `db:"value"`
}

// NewVariantValue pairs a variant name with the values to attach to the new
// product, in the order they should be stored. Not persisted.
type NewVariantValue struct {
	Variant NewVariant
	Values  []*string
}

// NewCompleteProduct is the input of the create transaction. Not persisted.
type NewCompleteProduct struct {
	Product  NewProduct
	Variants []NewVariantValue
}

// VariantValue is a join row together with the variant it references.
type VariantValue struct {
	ProductVariant ProductVariant `json:"product_variant"`
	Variant        Variant        `json:"variant"`
}

type ProductWithVariants struct {
	Product  Product        `json:"product"`
	Variants []VariantValue `json:"variants"`
}

// StringValue returns a pointer to s, for building nullable values inline.
func StringValue(s string) *string {
	return &s
}
