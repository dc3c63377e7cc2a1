package dto

// ApproveMatchRequest is the dashboard form payload; field names follow the
// form the admin screen posts.
type ApproveMatchRequest struct {
	MentorID string `json:"mentorId" form:"mentorId"`
	MenteeID string `json:"menteeId" form:"menteeId"`
	Type     string `json:"type" form:"type"`
}
