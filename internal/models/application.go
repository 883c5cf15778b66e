// internal/models/application.go
package models

import (
	"time"
)

// CertificateType is the fixed category of document a citizen can request.
type CertificateType string

const (
	CertificateBirth       CertificateType = "birth"
	CertificateDeath       CertificateType = "death"
	CertificateMarriage    CertificateType = "marriage"
	CertificateCitizenship CertificateType = "citizenship"
	CertificateResidency   CertificateType = "residency"
)

var certificateNames = map[CertificateType]string{
	CertificateBirth:       "Birth Certificate",
	CertificateDeath:       "Death Certificate",
	CertificateMarriage:    "Marriage Certificate",
	CertificateCitizenship: "Citizenship Recommendation",
	CertificateResidency:   "Residency Certificate",
}

func (t CertificateType) IsValid() bool {
	_, ok := certificateNames[t]
	return ok
}

// DisplayName returns the human-readable certificate name shown in
// notifications and listings.
func (t CertificateType) DisplayName() string {
	if name, ok := certificateNames[t]; ok {
		return name
	}
	return string(t)
}

func AllCertificateTypes() []CertificateType {
	return []CertificateType{
		CertificateBirth,
		CertificateDeath,
		CertificateMarriage,
		CertificateCitizenship,
		CertificateResidency,
	}
}

// ApplicationStatus is the lifecycle state of a citizen application.
// Transitions happen only through store operations, never by setting
// the field directly.
type ApplicationStatus string

const (
	ApplicationStatusPending    ApplicationStatus = "pending"
	ApplicationStatusInProgress ApplicationStatus = "in_progress"
	ApplicationStatusApproved   ApplicationStatus = "approved"
	ApplicationStatusRejected   ApplicationStatus = "rejected"
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusInProgress,
		ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// IsFinal reports whether the status is a terminal one.
func (s ApplicationStatus) IsFinal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

// ApplicationDocument is metadata for a file attached at submission time.
// Actual document storage is out of scope; only the metadata is tracked.
type ApplicationDocument struct {
	Name       string    `json:"name" bson:"name"`
	MimeType   string    `json:"mime_type" bson:"mime_type"`
	UploadedAt time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

type ApplicationComment struct {
	ID         string    `json:"id" bson:"id"`
	AuthorID   string    `json:"author_id" bson:"author_id"`
	AuthorName string    `json:"author_name" bson:"author_name"`
	Text       string    `json:"text" bson:"text"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

type Application struct {
	ID        string          `json:"id" bson:"_id"`
	UserID    string          `json:"user_id" bson:"user_id"`
	UserName  string          `json:"user_name" bson:"user_name"`
	UserEmail string          `json:"user_email" bson:"user_email"`
	Type      CertificateType `json:"type" bson:"type"`

	Status ApplicationStatus `json:"status" bson:"status"`

	// Submitted form fields, keyed by the field names of the
	// certificate schema for Type.
	Data map[string]string `json:"data" bson:"data"`

	// Append-only within the application lifecycle.
	Documents []ApplicationDocument `json:"documents,omitempty" bson:"documents,omitempty"`
	Comments  []ApplicationComment  `json:"comments,omitempty" bson:"comments,omitempty"`

	SubmittedAt time.Time `json:"submitted_at" bson:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

func (a *Application) IsPending() bool {
	return a.Status == ApplicationStatusPending
}

func (a *Application) IsApproved() bool {
	return a.Status == ApplicationStatusApproved
}

// Clone returns a deep copy so callers can hold the result without
// observing later store mutations.
func (a *Application) Clone() Application {
	out := *a
	if a.Data != nil {
		out.Data = make(map[string]string, len(a.Data))
		for k, v := range a.Data {
			out.Data[k] = v
		}
	}
	if a.Documents != nil {
		out.Documents = append([]ApplicationDocument(nil), a.Documents...)
	}
	if a.Comments != nil {
		out.Comments = append([]ApplicationComment(nil), a.Comments...)
	}
	return out
}
