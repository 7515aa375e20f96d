package handler

import "github.com/notifeed/notification-service/internal/core/domain"

func toTokenResponse(p *domain.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
	}
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Text:      n.Text,
		CreatedAt: n.CreatedAt.UTC(),
	}
}

func toNotificationPageResponse(r *domain.PageResult) notificationPageResponse {
	items := make([]notificationResponse, 0, len(r.Items))
	for i := range r.Items {
		items = append(items, toNotificationResponse(&r.Items[i]))
	}
	return notificationPageResponse{
		Total: r.Total,
		Count: r.Count,
		Page:  r.Page,
		Pages: r.Pages,
		Items: items,
	}
}
