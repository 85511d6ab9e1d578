package models

// Item represents a single line entry on a receipt.
// Price is declared before ShortDescription so responses serialize
// items as {price, shortDescription}.
type Item struct {
	Price            string `json:"price"`
	ShortDescription string `json:"shortDescription"`
}

// Receipt represents a fully validated purchase record. Instances are
// only constructed by the validation package; the field order fixes the
// JSON serialization of the receipt lookup endpoint.
type Receipt struct {
	ID           string `json:"-" gorm:"primaryKey;type:varchar(36)"`
	Retailer     string `json:"retailer"`
	PurchaseDate string `json:"purchaseDate" gorm:"type:varchar(10)"`
	PurchaseTime string `json:"purchaseTime" gorm:"type:varchar(5)"`
	Total        string `json:"total" gorm:"type:varchar(32)"`
	Items        []Item `json:"items" gorm:"serializer:json"`
}
