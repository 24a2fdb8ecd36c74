package models

import (
	"fmt"
	"strings"
)

// TaskStatus is the board column a task sits in.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusReview     TaskStatus = "REVIEW"
	StatusDone       TaskStatus = "DONE"
)

// TaskStatuses lists all statuses in board order.
var TaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusReview, StatusDone}

// ParseTaskStatus converts user input to a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(normalizeEnum(s)) {
	case StatusTodo:
		return StatusTodo, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusReview:
		return StatusReview, nil
	case StatusDone:
		return StatusDone, nil
	}
	return "", fmt.Errorf("%w: invalid status %q", ErrInvalidInput, s)
}

// Priority orders projects and tasks by urgency.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func ParsePriority(s string) (Priority, error) {
	switch Priority(normalizeEnum(s)) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityUrgent:
		return PriorityUrgent, nil
	}
	return "", fmt.Errorf("%w: invalid priority %q", ErrInvalidInput, s)
}

// ProjectTemplate is a starting layout picked at project creation.
type ProjectTemplate string

const (
	TemplateNone      ProjectTemplate = "NONE"
	TemplateWebDev    ProjectTemplate = "WEB_DEV"
	TemplateMobileApp ProjectTemplate = "MOBILE_APP"
	TemplateMarketing ProjectTemplate = "MARKETING"
	TemplateResearch  ProjectTemplate = "RESEARCH"
)

func ParseProjectTemplate(s string) (ProjectTemplate, error) {
	switch ProjectTemplate(normalizeEnum(s)) {
	case TemplateNone:
		return TemplateNone, nil
	case TemplateWebDev:
		return TemplateWebDev, nil
	case TemplateMobileApp:
		return TemplateMobileApp, nil
	case TemplateMarketing:
		return TemplateMarketing, nil
	case TemplateResearch:
		return TemplateResearch, nil
	}
	return "", fmt.Errorf("%w: invalid template %q", ErrInvalidInput, s)
}

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
	ProjectCancelled ProjectStatus = "CANCELLED"
)

func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch ProjectStatus(normalizeEnum(s)) {
	case ProjectActive:
		return ProjectActive, nil
	case ProjectCompleted:
		return ProjectCompleted, nil
	case ProjectOnHold:
		return ProjectOnHold, nil
	case ProjectCancelled:
		return ProjectCancelled, nil
	}
	return "", fmt.Errorf("%w: invalid project status %q", ErrInvalidInput, s)
}

// TimeEntryStatus tracks a time entry through the approval flow.
type TimeEntryStatus string

const (
	TimeEntryDraft     TimeEntryStatus = "DRAFT"
	TimeEntrySubmitted TimeEntryStatus = "SUBMITTED"
	TimeEntryApproved  TimeEntryStatus = "APPROVED"
	TimeEntryRejected  TimeEntryStatus = "REJECTED"
)

func ParseTimeEntryStatus(s string) (TimeEntryStatus, error) {
	switch TimeEntryStatus(normalizeEnum(s)) {
	case TimeEntryDraft:
		return TimeEntryDraft, nil
	case TimeEntrySubmitted:
		return TimeEntrySubmitted, nil
	case TimeEntryApproved:
		return TimeEntryApproved, nil
	case TimeEntryRejected:
		return TimeEntryRejected, nil
	}
	return "", fmt.Errorf("%w: invalid time entry status %q", ErrInvalidInput, s)
}

// MemberRole is a user's role within a project team.
type MemberRole string

const (
	RoleOwner  MemberRole = "OWNER"
	RoleAdmin  MemberRole = "ADMIN"
	RoleMember MemberRole = "MEMBER"
	RoleViewer MemberRole = "VIEWER"
)

func ParseMemberRole(s string) (MemberRole, error) {
	switch MemberRole(normalizeEnum(s)) {
	case RoleOwner:
		return RoleOwner, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleMember:
		return RoleMember, nil
	case RoleViewer:
		return RoleViewer, nil
	}
	return "", fmt.Errorf("%w: invalid member role %q", ErrInvalidInput, s)
}

// ActivityType classifies activity feed entries.
type ActivityType string

const (
	ActivityTaskCreated   ActivityType = "TASK_CREATED"
	ActivityTaskUpdated   ActivityType = "TASK_UPDATED"
	ActivityTaskCompleted ActivityType = "TASK_COMPLETED"
	ActivityCommentAdded  ActivityType = "COMMENT_ADDED"
	ActivityMemberAdded   ActivityType = "MEMBER_ADDED"
	ActivityMemberRemoved ActivityType = "MEMBER_REMOVED"
	ActivityProjectEdited ActivityType = "PROJECT_UPDATED"
	ActivityNoteUpdated   ActivityType = "NOTE_UPDATED"
)

// normalizeEnum maps client conventions like "web-dev" to WEB_DEV.
func normalizeEnum(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
}
