package domain

// Status is the approval-axis state of a trip request.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
	// StatusUrgent marks tap-initiated requests that bypass the approval queue.
	StatusUrgent Status = "Urgent"
)

// TravelStatus is the travel sub-state, derived from the recorded timestamps.
type TravelStatus string

const (
	TravelNotStarted TravelStatus = "NotStarted"
	TravelOnGoing    TravelStatus = "OnGoing"
	TravelCompleted  TravelStatus = "Completed"
)

// Decision is an approver's verdict on a pending request.
type Decision string

const (
	DecisionApproved Decision = "Approved"
	DecisionRejected Decision = "Rejected"
)

// Vehicle owner classes. Government vehicles travel on formal request forms;
// private vehicles are logged as urgent trips only.
const (
	OwnerGovernment = "government"
	OwnerPrivate    = "private"
)

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}
