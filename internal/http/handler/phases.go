package handler

import (
	"github.com/gofiber/fiber/v2"

	"collabcore/internal/model"
)

// ListPhases returns the phases sorted by start date and the current one.
//
// @Summary List phases
// @Description Phases sorted by start date with the current phase.
// @Tags phases
// @Produce json
// @Param projectId path string true "Project id"
// @Success 200 {object} map[string]interface{} "items, current and loading"
// @Failure 404 {object} handler.errorPayload "Workspace not open"
// @Router /projects/{projectId}/phases [get]
func ListPhases() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws := wsFrom(c)
		return c.JSON(fiber.Map{
			"items":   ws.Phases.SortedPhases(),
			"current": ws.Phases.Current(),
			"loading": ws.Phases.Loading(),
		})
	}
}

// CreatePhase godoc
// @Summary Create a phase
// @Tags phases
// @Accept json
// @Produce json
// @Param projectId path string true "Project id"
// @Param phase body model.PhaseDTO true "Phase"
// @Success 201 {object} model.Phase "Created"
// @Failure 400 {object} handler.errorPayload "Invalid body"
// @Failure 422 {object} handler.errorPayload "Not applied, see notices"
// @Router /projects/{projectId}/phases [post]
func CreatePhase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var dto model.PhaseDTO
		if err := c.BodyParser(&dto); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		ws := wsFrom(c)

		var created *model.Phase
		ws.Phases.Create(c.UserContext(), ws.ProjectID(), dto, func(p model.Phase) { created = &p })
		if created == nil {
			return notApplied(c, "")
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// UpdatePhase takes the phase id from the path. A body naming another id is rejected.
//
// @Summary Update a phase
// @Tags phases
// @Accept json
// @Produce json
// @Param projectId path string true "Project id"
// @Param phaseId path string true "Phase id"
// @Param phase body model.PhaseDTO true "Phase"
// @Success 200 {object} model.Phase "OK"
// @Failure 400 {object} handler.errorPayload "Invalid body or id mismatch"
// @Failure 422 {object} handler.errorPayload "Not applied, see notices"
// @Router /projects/{projectId}/phases/{phaseId} [patch]
func UpdatePhase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var dto model.PhaseDTO
		if err := c.BodyParser(&dto); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		id := c.Params("phaseId")
		if dto.ID != "" && dto.ID != id {
			return writeError(c, fiber.StatusBadRequest, "ID_MISMATCH", "body id does not match path")
		}
		dto.ID = id

		var updated *model.Phase
		wsFrom(c).Phases.Update(c.UserContext(), dto, func(p model.Phase) { updated = &p })
		if updated == nil {
			return notApplied(c, "")
		}
		return c.JSON(updated)
	}
}

// DeletePhase godoc
// @Summary Delete a phase
// @Tags phases
// @Produce json
// @Param projectId path string true "Project id"
// @Param phaseId path string true "Phase id"
// @Success 204 "No Content"
// @Failure 422 {object} handler.errorPayload "Not applied, see notices"
// @Router /projects/{projectId}/phases/{phaseId} [delete]
func DeletePhase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !wsFrom(c).DeletePhase(c.UserContext(), c.Params("phaseId")) {
			return notApplied(c, "")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

type selectRequest struct {
	ID string `json:"id"`
}

// SelectPhase makes {id} the current phase; an empty id clears it.
//
// @Summary Select the current phase
// @Description An empty id clears the selection.
// @Tags phases
// @Accept json
// @Produce json
// @Param projectId path string true "Project id"
// @Param phase body handler.selectRequest true "Phase to select"
// @Success 200 {object} map[string]model.Phase "OK"
// @Failure 400 {object} handler.errorPayload "Invalid body"
// @Failure 404 {object} handler.errorPayload "Unknown phase"
// @Router /projects/{projectId}/phases/current [put]
func SelectPhase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req selectRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		ws := wsFrom(c)
		if !ws.Phases.Select(req.ID) {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "phase not found")
		}
		return c.JSON(fiber.Map{"current": ws.Phases.Current()})
	}
}

// ListMentors godoc
// @Summary Eligible mentors
// @Tags phases
// @Produce json
// @Param projectId path string true "Project id"
// @Success 200 {object} map[string]interface{} "items and loading"
// @Router /projects/{projectId}/mentors [get]
func ListMentors() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws := wsFrom(c)
		return c.JSON(fiber.Map{
			"items":   ws.Phases.Mentors(),
			"loading": ws.Phases.MentorsLoading(),
		})
	}
}
