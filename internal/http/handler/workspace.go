package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"collabcore/internal/workspace"
)

const workspaceLocalKey = "workspace"

func wsFrom(c *fiber.Ctx) *workspace.Workspace {
	ws, _ := c.Locals(workspaceLocalKey).(*workspace.Workspace)
	return ws
}

// RequireWorkspace resolves the open workspace of :projectId into the request locals.
func RequireWorkspace(s *workspace.Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws, ok := s.Get(c.Params("projectId"))
		if !ok || ws.Closed() {
			return writeError(c, fiber.StatusNotFound, "WORKSPACE_NOT_OPEN", "workspace is not open")
		}
		c.Locals(workspaceLocalKey, ws)
		return c.Next()
	}
}

// EnterWorkspace opens the workspace of :projectId, or returns the already open one.
//
// @Summary Open a project workspace
// @Description Loads phases, mentors, participations and the first notification page.
// @Tags workspace
// @Produce json
// @Param projectId path string true "Project id"
// @Success 200 {object} workspace.Summary "OK"
// @Failure 400 {object} handler.errorPayload "Missing project id"
// @Failure 503 {object} handler.errorPayload "Workspace could not be opened"
// @Router /projects/{projectId}/workspace [post]
func EnterWorkspace(s *workspace.Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws, err := s.Enter(c.UserContext(), c.Params("projectId"))
		switch {
		case errors.Is(err, workspace.ErrProjectRequired):
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "project id is required")
		case err != nil:
			return writeError(c, fiber.StatusServiceUnavailable, "WORKSPACE_UNAVAILABLE", "workspace could not be opened")
		}
		return c.Status(fiber.StatusOK).JSON(ws.Summary())
	}
}

// LeaveWorkspace closes the workspace of :projectId.
//
// @Summary Close a project workspace
// @Tags workspace
// @Produce json
// @Param projectId path string true "Project id"
// @Success 204 "No Content"
// @Failure 404 {object} handler.errorPayload "Workspace not open"
// @Router /projects/{projectId}/workspace [delete]
func LeaveWorkspace(s *workspace.Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.Leave(c.Params("projectId")) {
			return writeError(c, fiber.StatusNotFound, "WORKSPACE_NOT_OPEN", "workspace is not open")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// WorkspaceSummary godoc
// @Summary Workspace summary
// @Tags workspace
// @Produce json
// @Param projectId path string true "Project id"
// @Success 200 {object} workspace.Summary "OK"
// @Failure 404 {object} handler.errorPayload "Workspace not open"
// @Router /projects/{projectId}/workspace [get]
func WorkspaceSummary() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(wsFrom(c).Summary())
	}
}

// ReloadWorkspace refetches every collection of the workspace.
//
// @Summary Reload a workspace
// @Tags workspace
// @Produce json
// @Param projectId path string true "Project id"
// @Success 200 {object} workspace.Summary "OK"
// @Failure 404 {object} handler.errorPayload "Workspace not open"
// @Failure 409 {object} handler.errorPayload "Workspace closed"
// @Router /projects/{projectId}/workspace/reload [post]
func ReloadWorkspace() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws := wsFrom(c)
		if err := ws.Open(c.UserContext()); err != nil {
			return writeError(c, fiber.StatusConflict, "WORKSPACE_CLOSED", "workspace was closed")
		}
		return c.JSON(ws.Summary())
	}
}
