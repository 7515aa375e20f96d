package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/notifeed/notification-service/internal/core/domain"
	"github.com/notifeed/notification-service/internal/core/ports"
)

// NotificationHandler handles the authenticated user's notification feed.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// Create stores a notification for the authenticated user.
//
// @Summary      Create notification
// @Tags         notifications
// @Security     OAuth2Password
// @Accept       json
// @Produce      json
// @Param        body  body      createNotificationRequest  true  "Notification"
// @Success      201   {object}  notificationResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /notifications [post]
func (h *NotificationHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createNotificationRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validationf("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	n, err := h.service.Create(c.Request().Context(), ports.CreateNotificationInput{
		UserID: userID,
		Type:   req.Type,
		Text:   req.Text,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toNotificationResponse(n))
}

// List returns one page of the authenticated user's notifications.
//
// @Summary      List notifications
// @Tags         notifications
// @Security     OAuth2Password
// @Produce      json
// @Param        page      query     int     false  "Page, starting at 1"      default(1)
// @Param        per_page  query     int     false  "Items per page (1-1000)"  default(50)
// @Param        order     query     string  false  "Order by id"              Enums(asc, desc) default(asc)
// @Success      200   {object}  notificationPageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	q := listNotificationsQuery{
		Page:    domain.DefaultPage,
		PerPage: domain.DefaultPerPage,
		Order:   string(domain.OrderAsc),
	}
	if err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("per_page", &q.PerPage).
		String("order", &q.Order).
		BindError(); err != nil {
		return domain.Validationf("page and per_page must be integers")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	res, err := h.service.List(c.Request().Context(), userID, domain.PageRequest{
		Page:    q.Page,
		PerPage: q.PerPage,
		Order:   domain.SortOrder(q.Order),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNotificationPageResponse(res))
}

// Delete removes one of the authenticated user's notifications.
//
// @Summary      Delete notification
// @Tags         notifications
// @Security     OAuth2Password
// @Param        id   path  int  true  "Notification ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var id int64
	if err := echo.PathParamsBinder(c).MustInt64("id", &id).BindError(); err != nil {
		return domain.Validationf("id must be an integer")
	}

	if err := h.service.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
