package models

import "time"

type IssueType string

const (
	IssueTypeTask  IssueType = "Task"
	IssueTypeBug   IssueType = "Bug"
	IssueTypeStory IssueType = "Story"
	IssueTypeEpic  IssueType = "Epic"
)

func (t IssueType) Valid() bool {
	switch t {
	case IssueTypeTask, IssueTypeBug, IssueTypeStory, IssueTypeEpic:
		return true
	}
	return false
}

type IssuePriority string

const (
	PriorityHighest IssuePriority = "Highest"
	PriorityHigh    IssuePriority = "High"
	PriorityMedium  IssuePriority = "Medium"
	PriorityLow     IssuePriority = "Low"
	PriorityLowest  IssuePriority = "Lowest"
)

func (p IssuePriority) Valid() bool {
	switch p {
	case PriorityHighest, PriorityHigh, PriorityMedium, PriorityLow, PriorityLowest:
		return true
	}
	return false
}

type IssueStatus string

const (
	StatusToDo       IssueStatus = "To Do"
	StatusInProgress IssueStatus = "In Progress"
	StatusInReview   IssueStatus = "In Review"
	StatusDone       IssueStatus = "Done"
	StatusBlocked    IssueStatus = "Blocked"
)

func (s IssueStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusInReview, StatusDone, StatusBlocked:
		return true
	}
	return false
}

// Issue is the central entity of the tracker. The parent chain is not
// checked for cycles; a cyclic chain would make any recursive sub-task
// traversal in calling code loop forever.
type Issue struct {
	ID          uint          `gorm:"primarykey" json:"id"`
	ProjectID   uint          `gorm:"not null;index" json:"project_id"`
	SprintID    *uint         `gorm:"index" json:"sprint_id"`
	Description string        `gorm:"not null;type:text" json:"description"`
	Type        IssueType     `gorm:"column:issue_type;not null;default:'Task';size:20" json:"issue_type"`
	Priority    IssuePriority `gorm:"not null;default:'Medium';size:20" json:"priority"`
	Status      IssueStatus   `gorm:"not null;default:'To Do';size:20" json:"status"`
	ReporterID  *uint         `gorm:"index" json:"reporter_id"`
	AssigneeID  *uint         `gorm:"index" json:"assignee_id"`
	ParentID    *uint         `gorm:"index" json:"parent_issue_id"`
	StoryPoints *int          `json:"story_points"`
	DueDate     *time.Time    `json:"due_date"`
	CreatedAt   time.Time     `json:"created_date"`
	UpdatedAt   time.Time     `json:"updated_date"`

	// Relationships
	Project  Project `gorm:"foreignKey:ProjectID" json:"-"`
	Sprint   *Sprint `gorm:"foreignKey:SprintID" json:"-"`
	Reporter *User   `gorm:"foreignKey:ReporterID" json:"-"`
	Assignee *User   `gorm:"foreignKey:AssigneeID" json:"-"`
	Parent   *Issue  `gorm:"foreignKey:ParentID" json:"-"`
}
