package model

// Category is a complaint category as stored in the `categories`
// table. Categories are listed publicly; all mutations require
// authentication.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – required, human-friendly category name.
//  Description – optional free-text description.
//  IsActive    – whether the category is open for new complaints.
type Category struct {
	ID          uint64  `json:"id"`          // categories.id
	Name        string  `json:"name"`        // categories.name
	Description *string `json:"description"` // categories.description (nullable)
	IsActive    bool    `json:"is_active"`   // categories.is_active
}
