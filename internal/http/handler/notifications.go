package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"collabcore/internal/model"
	"collabcore/internal/notification"
	"collabcore/internal/storage"
)

// notificationRequest is accepted as JSON or as multipart form fields, in which case
// files come from the repeatable "attachments" part.
type notificationRequest struct {
	Title   string   `json:"title" form:"title"`
	Body    string   `json:"body" form:"body"`
	PhaseID string   `json:"phase_id" form:"phase_id"`
	Staged  []string `json:"staged" form:"staged"`
	Send    bool     `json:"send" form:"send"`
}

func (r notificationRequest) dto() model.NotifyParticipantsDTO {
	return model.NotifyParticipantsDTO{Title: r.Title, Body: r.Body, PhaseID: r.PhaseID}
}

// ListNotifications loads one page filtered by ?phaseId, ?status and ?page.
//
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Param projectId path string true "Project id"
// @Param phaseId query string false "Phase filter"
// @Param status query string false "draft or sent"
// @Param page query integer false "1-indexed page"
// @Success 200 {object} map[string]interface{} "items, total, page and active"
// @Failure 400 {object} handler.errorPayload "Invalid page or status"
// @Router /projects/{projectId}/notifications [get]
func ListNotifications() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := notification.Filter{PhaseID: c.Query("phaseId"), Page: 1}
		if raw := c.Query("page"); raw != "" {
			page, err := strconv.Atoi(raw)
			if err != nil || page < 1 {
				return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
			}
			f.Page = page
		}
		if raw := c.Query("status"); raw != "" {
			st := model.NotificationStatus(raw)
			if !st.Valid() {
				return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "invalid status")
			}
			f.Status = &st
		}

		ws := wsFrom(c)
		ws.LoadNotifications(c.UserContext(), f)
		return c.JSON(fiber.Map{
			"items":  ws.Notifications.List(),
			"total":  ws.Notifications.Total(),
			"page":   f.Page,
			"active": ws.Notifications.Active(),
		})
	}
}

// CreateNotification drafts a notification with its attachments; {send: true} also sends it.
//
// @Summary Create a notification
// @Description Drafts the notification, uploads its attachments and, with send, sends it.
// @Tags notifications
// @Accept mpfd,json
// @Produce json
// @Param projectId path string true "Project id"
// @Param notification body handler.notificationRequest true "Notification"
// @Success 201 {object} model.Notification "Created"
// @Failure 400 {object} handler.errorPayload "Invalid body or file"
// @Failure 422 {object} handler.errorPayload "Not applied, see notices"
// @Router /projects/{projectId}/notifications [post]
func CreateNotification(s storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req notificationRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		files, closer, err := collectFiles(c, s, "attachments", req.Staged)
		defer closer.Close()
		if err != nil {
			return fileError(c, err)
		}

		ws := wsFrom(c)
		run := ws.Notifications.Create
		if req.Send {
			run = ws.Notifications.CreateNotifyAndSend
		}
		var created *model.Notification
		run(c.UserContext(), ws.ProjectID(), req.dto(), files, func(n model.Notification) { created = &n })
		if created == nil {
			return notApplied(c, ws.Notifications.LastError())
		}
		discardStaged(c, s, req.Staged)
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// UpdateNotification patches :notificationId and appends any new attachments.
//
// @Summary Update a notification
// @Description New attachments are added to the existing ones.
// @Tags notifications
// @Accept mpfd,json
// @Produce json
// @Param projectId path string true "Project id"
// @Param notificationId path string true "Notification id"
// @Param notification body handler.notificationRequest true "Notification"
// @Success 200 {object} model.Notification "OK"
// @Failure 400 {object} handler.errorPayload "Invalid body or file"
// @Failure 422 {object} handler.errorPayload "Not applied, see notices"
// @Router /projects/{projectId}/notifications/{notificationId} [patch]
func UpdateNotification(s storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req notificationRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		files, closer, err := collectFiles(c, s, "attachments", req.Staged)
		defer closer.Close()
		if err != nil {
			return fileError(c, err)
		}

		ws := wsFrom(c)
		var updated *model.Notification
		ws.Notifications.UpdateWithAttachments(c.UserContext(), c.Params("notificationId"), req.dto(), files,
			func(n model.Notification) { updated = &n })
		if updated == nil {
			return notApplied(c, ws.Notifications.LastError())
		}
		discardStaged(c, s, req.Staged)
		return c.JSON(updated)
	}
}

// SendNotification godoc
// @Summary Send a notification
// @Tags notifications
// @Produce json
// @Param projectId path string true "Project id"
// @Param notificationId path string true "Notification id"
// @Success 200 {object} model.Notification "OK"
// @Failure 422 {object} handler.errorPayload "Not applied, see notices"
// @Router /projects/{projectId}/notifications/{notificationId}/send [post]
func SendNotification() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws := wsFrom(c)
		var sent *model.Notification
		ws.Notifications.Send(c.UserContext(), c.Params("notificationId"), func(n model.Notification) { sent = &n })
		if sent == nil {
			return notApplied(c, ws.Notifications.LastError())
		}
		return c.JSON(sent)
	}
}

// DeleteNotification godoc
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Param projectId path string true "Project id"
// @Param notificationId path string true "Notification id"
// @Success 204 "No Content"
// @Failure 422 {object} handler.errorPayload "Not applied, see notices"
// @Router /projects/{projectId}/notifications/{notificationId} [delete]
func DeleteNotification() fiber.Handler {
	return func(c *fiber.Ctx) error {
		done := false
		wsFrom(c).Notifications.Delete(c.UserContext(), c.Params("notificationId"), func() { done = true })
		if !done {
			return notApplied(c, "")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteNotificationAttachments clears every attachment of :notificationId.
//
// @Summary Delete every attachment of a notification
// @Tags notifications
// @Produce json
// @Param projectId path string true "Project id"
// @Param notificationId path string true "Notification id"
// @Success 204 "No Content"
// @Failure 422 {object} handler.errorPayload "Not applied, see notices"
// @Router /projects/{projectId}/notifications/{notificationId}/attachments [delete]
func DeleteNotificationAttachments() fiber.Handler {
	return func(c *fiber.Ctx) error {
		done := false
		wsFrom(c).Notifications.DeleteAttachments(c.UserContext(), c.Params("notificationId"), func() { done = true })
		if !done {
			return notApplied(c, "")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetActiveNotification godoc
// @Summary Active notification
// @Tags notifications
// @Produce json
// @Param projectId path string true "Project id"
// @Success 200 {object} map[string]model.Notification "OK"
// @Router /projects/{projectId}/notifications/active [get]
func GetActiveNotification() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"active": wsFrom(c).Notifications.Active()})
	}
}

// SetActiveNotification activates the loaded notification {id}; an empty id clears it.
//
// @Summary Activate a notification
// @Description An empty id clears the active notification.
// @Tags notifications
// @Accept json
// @Produce json
// @Param projectId path string true "Project id"
// @Param notification body handler.selectRequest true "Notification to activate"
// @Success 200 {object} map[string]model.Notification "OK"
// @Failure 400 {object} handler.errorPayload "Invalid body"
// @Failure 404 {object} handler.errorPayload "Not on the loaded page"
// @Router /projects/{projectId}/notifications/active [put]
func SetActiveNotification() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req selectRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		n := wsFrom(c).Notifications
		if req.ID == "" {
			n.SetActive(nil)
		} else if !n.SetActiveByID(req.ID) {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "notification not found")
		}
		return c.JSON(fiber.Map{"active": n.Active()})
	}
}

// ReloadNotifications reloads the last requested page and re-activates ?select.
//
// @Summary Reload notifications
// @Description Reloads the last requested page and activates select when present.
// @Tags notifications
// @Produce json
// @Param projectId path string true "Project id"
// @Param select query string false "Notification id to activate"
// @Success 200 {object} map[string]interface{} "OK"
// @Router /projects/{projectId}/notifications/reload [post]
func ReloadNotifications() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws := wsFrom(c)
		ws.ReloadNotificationsAndSelect(c.UserContext(), c.Query("select"))
		return c.JSON(fiber.Map{
			"items":  ws.Notifications.List(),
			"total":  ws.Notifications.Total(),
			"active": ws.Notifications.Active(),
		})
	}
}
