package database

import "time"

// Membership roles. The board creator gets RoleOwner; invited members
// default to RoleMember.
const (
	RoleOwner  = "Owner"
	RoleAdmin  = "Admin"
	RoleMember = "Member"
)

// DefaultTagColor is applied when a tag is created without a color.
const DefaultTagColor = "#2196f3"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Board struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	Columns   []*Column `json:"columns,omitempty"`
}

// BoardMember grants a user access to a board. DisplayName and Email are
// joined from the users table on reads.
type BoardMember struct {
	BoardID     int64  `json:"boardId"`
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

type Column struct {
	ID        int64   `json:"id"`
	BoardID   int64   `json:"boardId"`
	Title     string  `json:"title"`
	SortOrder float64 `json:"sortOrder"`
	Tasks     []*Task `json:"tasks"`
}

type Task struct {
	ID           int64      `json:"id"`
	ColumnID     int64      `json:"columnId"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	SortOrder    float64    `json:"sortOrder"`
	DueDate      *time.Time `json:"dueDate"`
	CreatedAt    time.Time  `json:"createdAt"`
	CreatedByID  string     `json:"createdById"`
	AssignedToID *string    `json:"assignedToId"`
	IsCompleted  bool       `json:"isCompleted"`
	Tags         []Tag      `json:"tags"`
	Comments     []Comment  `json:"comments"`
}

type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Comment belongs to a task. AuthorName is joined from the users table.
type Comment struct {
	ID         int64     `json:"id"`
	TaskID     int64     `json:"taskId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}
