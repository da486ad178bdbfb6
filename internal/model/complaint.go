package model

import "time"

// Complaint is a citizen complaint as stored in the `complaints`
// table. Every complaint references its submitting user and a
// category by id and carries the URL of an externally stored
// photo. Status starts at the storage default ("pending") and is
// mutated through partial updates.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – submitting user (foreign key into users).
//  Subject     – short summary of the complaint.
//  Description – full complaint text.
//  PhotoURL    – path/URL of the uploaded photo blob.
//  Location    – free-text location of the incident.
//  CategoryID  – category (foreign key into categories).
//  Status      – lifecycle state, default set by the database.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Complaint struct {
	ID          uint64    `json:"id"`          // complaints.id
	UserID      uint64    `json:"user_id"`     // complaints.user_id
	Subject     string    `json:"subject"`     // complaints.subject
	Description string    `json:"description"` // complaints.description
	PhotoURL    string    `json:"photo_url"`   // complaints.photo_url
	Location    string    `json:"location"`    // complaints.location
	CategoryID  uint64    `json:"category_id"` // complaints.category_id
	Status      string    `json:"status"`      // complaints.status
	CreatedAt   time.Time `json:"created_at"`  // complaints.created_at
	UpdatedAt   time.Time `json:"updated_at"`  // complaints.updated_at
}
