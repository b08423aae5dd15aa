package entities

import "time"

// IssueStatus is the closed set of dash states for an issue. Exactly one
// applies per issue.
type IssueStatus interface {
	isIssueStatus()
	// Type returns the wire discriminant.
	Type() string
	// Actionable reports whether the dash highlights the issue.
	Actionable() bool
}

// IssueAssigned: the viewer is assigned to the issue.
type IssueAssigned struct{}

func (IssueAssigned) isIssueStatus() {}
func (IssueAssigned) Type() string    { return "Assigned" }
func (IssueAssigned) Actionable() bool { return true }
func (s IssueAssigned) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}

// IssueAssignedTo: the viewer's own issue is assigned to others.
type IssueAssignedTo struct {
	Users []string `json:"users"`
}

func (IssueAssignedTo) isIssueStatus() {}
func (IssueAssignedTo) Type() string    { return "AssignedTo" }
func (IssueAssignedTo) Actionable() bool { return false }
func (s IssueAssignedTo) MarshalJSON() ([]byte, error) {
	users := s.Users
	if users == nil {
		users = []string{}
	}
	return marshalTagged(s.Type(), map[string]any{"users": users})
}

// IssueAuthor: the viewer opened the issue and nobody is assigned.
type IssueAuthor struct{}

func (IssueAuthor) isIssueStatus() {}
func (IssueAuthor) Type() string    { return "Author" }
func (IssueAuthor) Actionable() bool { return false }
func (s IssueAuthor) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}

// IssueInvolved: the viewer commented on or was mentioned in the issue.
type IssueInvolved struct{}

func (IssueInvolved) isIssueStatus() {}
func (IssueInvolved) Type() string    { return "Involved" }
func (IssueInvolved) Actionable() bool { return false }
func (s IssueInvolved) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}

// IssueUntriaged: no labels and no assignee.
type IssueUntriaged struct{}

func (IssueUntriaged) isIssueStatus() {}
func (IssueUntriaged) Type() string    { return "Untriaged" }
func (IssueUntriaged) Actionable() bool { return true }
func (s IssueUntriaged) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}

// IssueUnassigned: labeled but nobody is assigned.
type IssueUnassigned struct{}

func (IssueUnassigned) isIssueStatus() {}
func (IssueUnassigned) Type() string    { return "Unassigned" }
func (IssueUnassigned) Actionable() bool { return false }
func (s IssueUnassigned) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}

// IssueUnknown covers malformed upstream data.
type IssueUnknown struct{}

func (IssueUnknown) isIssueStatus() {}
func (IssueUnknown) Type() string    { return "UnknownStatus" }
func (IssueUnknown) Actionable() bool { return false }
func (s IssueUnknown) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}

// IssueData is the raw upstream shape of an issue.
type IssueData struct {
	ID            string
	URL           string
	Number        int
	Owner         string
	Repo          string
	Title         string
	Author        string
	AvatarURL     string
	CreatedAt     time.Time
	Assignees     []string
	Labels        []string
	Involved      []string
	CommentCount  int
	ReactionCount int
}

// Issue is a classified dashboard item.
type Issue struct {
	ID             string      `json:"id"`
	URL            string      `json:"url"`
	Number         int         `json:"number"`
	Owner          string      `json:"owner"`
	Repo           string      `json:"repo"`
	Title          string      `json:"title"`
	Author         string      `json:"author"`
	AvatarURL      string      `json:"avatar_url,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	Status         IssueStatus `json:"status"`
	Popularity     int         `json:"popularity"`
	HasNewActivity bool        `json:"has_new_activity"`
}
