package inventory

// ItemType distinguishes finished products from raw materials.
// Inventory, batches and withdrawals all carry it so the two stock
// populations can be swept and reported independently.
type ItemType string

const (
	ItemTypeProduct     ItemType = "PRODUCT"
	ItemTypeRawMaterial ItemType = "RAW_MATERIAL"
)

// IsValid checks if the item type is valid
func (t ItemType) IsValid() bool {
	return t == ItemTypeProduct || t == ItemTypeRawMaterial
}

// String returns the string representation of ItemType
func (t ItemType) String() string {
	return string(t)
}

// AllItemTypes returns both item classes in sweep order
func AllItemTypes() []ItemType {
	return []ItemType{ItemTypeProduct, ItemTypeRawMaterial}
}
