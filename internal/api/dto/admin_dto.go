package dto

// UpdateUserRequest is a partial admin edit of an account.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Avatar   *string `json:"avatar"`
	IsAdmin  *bool   `json:"is_admin"`
}

// OverviewResponse carries dashboard counts.
type OverviewResponse struct {
	Users          int64 `json:"users"`
	Tickets        int64 `json:"tickets"`
	UnreadMessages int64 `json:"unread_messages"`
}
