package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" form:"password" validate:"required,min=6,max=128"`
}

// loginRequest follows the OAuth2 password grant form. scope and client
// credentials are accepted and ignored.
type loginRequest struct {
	GrantType string `form:"grant_type" json:"grant_type"`
	Username  string `form:"username"   json:"username"   validate:"required"`
	Password  string `form:"password"   json:"password"   validate:"required"`
	Scope     string `form:"scope"      json:"scope"`
}

type refreshRequest struct {
	RefreshToken string `form:"refresh_token" json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// --- Notifications ---

type createNotificationRequest struct {
	Type string `json:"type" validate:"required,oneof=like comment repost"`
	Text string `json:"text" validate:"max=255"`
}

type listNotificationsQuery struct {
	Page    int    `query:"page"     validate:"min=1"`
	PerPage int    `query:"per_page" validate:"min=1,max=1000"`
	Order   string `query:"order"    validate:"oneof=asc desc"`
}

type notificationResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Type      string    `json:"type"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type notificationPageResponse struct {
	Total int64                  `json:"total"`
	Count int                    `json:"count"`
	Page  int                    `json:"page"`
	Pages int                    `json:"pages"`
	Items []notificationResponse `json:"items"`
}
