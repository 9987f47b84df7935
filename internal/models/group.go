package models

// DefaultGroupTitle is applied when an admin creates a group without a title.
const DefaultGroupTitle = "Группа творчества... "

// Group is a topical collection of posts. Groups are created by admins and
// are never deleted in the normal flow; deleting one clears the group
// reference on its posts instead of cascading.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text;not null" json:"description"`
}
