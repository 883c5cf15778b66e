// internal/models/announcement.go
package models

import "time"

type AnnouncementStatus string

const (
	AnnouncementStatusDraft     AnnouncementStatus = "draft"
	AnnouncementStatusPublished AnnouncementStatus = "published"
	AnnouncementStatusArchived  AnnouncementStatus = "archived"
)

func (s AnnouncementStatus) IsValid() bool {
	switch s {
	case AnnouncementStatusDraft, AnnouncementStatusPublished, AnnouncementStatusArchived:
		return true
	}
	return false
}

type AnnouncementPriority string

const (
	AnnouncementPriorityLow    AnnouncementPriority = "low"
	AnnouncementPriorityMedium AnnouncementPriority = "medium"
	AnnouncementPriorityHigh   AnnouncementPriority = "high"
)

// Announcement is a municipal notice posted by administrators. TitleNe
// and ContentNe carry the Nepali rendering of the notice.
type Announcement struct {
	ID        string `json:"id" bson:"_id"`
	Title     string `json:"title" bson:"title"`
	TitleNe   string `json:"title_ne,omitempty" bson:"title_ne,omitempty"`
	Content   string `json:"content" bson:"content"`
	ContentNe string `json:"content_ne,omitempty" bson:"content_ne,omitempty"`

	Category string               `json:"category" bson:"category"`
	Priority AnnouncementPriority `json:"priority" bson:"priority"`
	Status   AnnouncementStatus   `json:"status" bson:"status"`
	Author   string               `json:"author" bson:"author"`

	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty" bson:"published_at,omitempty"`
}

func (a *Announcement) IsPublished() bool {
	return a.Status == AnnouncementStatusPublished
}
