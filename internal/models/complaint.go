// internal/models/complaint.go
package models

import "time"

type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "pending"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusRejected   ComplaintStatus = "rejected"
)

func (s ComplaintStatus) IsValid() bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusInProgress,
		ComplaintStatusResolved, ComplaintStatusRejected:
		return true
	}
	return false
}

// ComplaintCategories are the grievance categories offered on the
// complaint form.
var ComplaintCategories = []string{
	"Infrastructure",
	"Water Supply",
	"Electricity",
	"Sanitation",
	"Public Safety",
	"Administrative",
	"Other",
}

func IsComplaintCategory(category string) bool {
	for _, c := range ComplaintCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Complaint is a citizen grievance tracked through its own status
// lifecycle, parallel to certificate applications.
type Complaint struct {
	ID       string `json:"id" bson:"_id"`
	UserID   string `json:"user_id" bson:"user_id"`
	UserName string `json:"user_name" bson:"user_name"`

	Title       string `json:"title" bson:"title"`
	Category    string `json:"category" bson:"category"`
	Description string `json:"description" bson:"description"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`

	Status   ComplaintStatus      `json:"status" bson:"status"`
	Comments []ApplicationComment `json:"comments,omitempty" bson:"comments,omitempty"`

	SubmittedAt time.Time `json:"submitted_at" bson:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// IsActive reports whether the complaint still needs attention.
func (c *Complaint) IsActive() bool {
	return c.Status == ComplaintStatusPending || c.Status == ComplaintStatusInProgress
}

func (c *Complaint) Clone() Complaint {
	out := *c
	if c.Comments != nil {
		out.Comments = append([]ApplicationComment(nil), c.Comments...)
	}
	return out
}
