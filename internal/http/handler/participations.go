package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"collabcore/internal/participation"
	"collabcore/internal/storage"
)

// ListParticipations applies ?phaseId and ?q, remembers them as the workspace filter
// and returns ?page of the result.
//
// @Summary List participations
// @Description Filters by phase and search text across all pages, then returns one page.
// @Tags participations
// @Produce json
// @Param projectId path string true "Project id"
// @Param phaseId query string false "Phase filter"
// @Param q query string false "Search on user name, email and venture"
// @Param page query integer false "1-indexed page"
// @Success 200 {object} map[string]interface{} "OK"
// @Failure 400 {object} handler.errorPayload "Invalid page"
// @Router /projects/{projectId}/participations [get]
func ListParticipations() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil || page < 1 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		ws := wsFrom(c)
		f := participation.Filter{PhaseID: c.Query("phaseId"), Query: c.Query("q")}
		ws.SetParticipationFilter(f)

		view := ws.FilteredParticipations()
		size := ws.Participations.PageSize()
		items := participation.Paginate(view, page, size)
		selected := make([]bool, len(items))
		for i, p := range items {
			selected[i] = ws.Selection.IsSelected(p.Key())
		}
		return c.JSON(fiber.Map{
			"items":        items,
			"selected":     selected,
			"total":        len(view),
			"page":         page,
			"page_size":    size,
			"all_selected": ws.Selection.AllSelected(view),
			"loading":      ws.Participations.Loading(),
		})
	}
}

// GroupedParticipations godoc
// @Summary Participations grouped by phase
// @Tags participations
// @Produce json
// @Param projectId path string true "Project id"
// @Success 200 {object} participation.Grouped "OK"
// @Router /projects/{projectId}/participations/grouped [get]
func GroupedParticipations() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws := wsFrom(c)
		return c.JSON(ws.Participations.GroupedByPhase(ws.Phases.SortedPhases()))
	}
}

// ParticipationCounts godoc
// @Summary Participation count per phase
// @Tags participations
// @Produce json
// @Param projectId path string true "Project id"
// @Success 200 {object} map[string]int "OK"
// @Router /projects/{projectId}/participations/counts [get]
func ParticipationCounts() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws := wsFrom(c)
		return c.JSON(ws.Participations.CountsByPhase(ws.Phases.Phases()))
	}
}

type phaseTarget struct {
	PhaseID string `json:"phase_id"`
}

// MoveSelected moves the selected participations into {phase_id}.
//
// @Summary Move the selection to a phase
// @Tags participations
// @Accept json
// @Produce json
// @Param projectId path string true "Project id"
// @Param target body handler.phaseTarget true "Target phase"
// @Success 200 {object} workspace.Summary "OK"
// @Failure 400 {object} handler.errorPayload "Invalid body"
// @Failure 422 {object} handler.errorPayload "Not applied, see notices"
// @Router /projects/{projectId}/participations/move [post]
func MoveSelected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req phaseTarget
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		ws := wsFrom(c)
		if !ws.MoveSelected(c.UserContext(), req.PhaseID) {
			return notApplied(c, "")
		}
		return c.JSON(ws.Summary())
	}
}

// RemoveSelected detaches the selected participations from {phase_id}.
//
// @Summary Remove the selection from a phase
// @Tags participations
// @Accept json
// @Produce json
// @Param projectId path string true "Project id"
// @Param target body handler.phaseTarget true "Phase to leave"
// @Success 200 {object} workspace.Summary "OK"
// @Failure 400 {object} handler.errorPayload "Invalid body"
// @Failure 422 {object} handler.errorPayload "Not applied, see notices"
// @Router /projects/{projectId}/participations/remove [post]
func RemoveSelected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req phaseTarget
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		ws := wsFrom(c)
		if !ws.RemoveSelected(c.UserContext(), req.PhaseID) {
			return notApplied(c, "")
		}
		return c.JSON(ws.Summary())
	}
}

type stagedKey struct {
	Key string `json:"key"`
}

// ImportParticipants forwards a CSV of participants, either uploaded as the multipart
// "file" or referenced by a staged {key}.
//
// @Summary Import participants from CSV
// @Description Upload the CSV as file, or send the key of a staged CSV as JSON.
// @Tags participations
// @Accept mpfd,json
// @Produce json
// @Param projectId path string true "Project id"
// @Param file formData file false "CSV file"
// @Success 200 {object} map[string]int "OK"
// @Failure 400 {object} handler.errorPayload "Missing file or invalid key"
// @Failure 404 {object} handler.errorPayload "Not staged"
// @Failure 422 {object} handler.errorPayload "Not applied, see notices"
// @Router /projects/{projectId}/participations/import [post]
func ImportParticipants(s storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var keys []string
		if !isMultipart(c) {
			var req stagedKey
			if err := c.BodyParser(&req); err != nil || req.Key == "" {
				return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file or staged key is required")
			}
			keys = []string{req.Key}
		}

		files, closer, err := collectFiles(c, s, "file", keys)
		defer closer.Close()
		if err != nil {
			return fileError(c, err)
		}
		if len(files) != 1 {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "exactly one file is required")
		}

		ws := wsFrom(c)
		if !ws.ImportCSV(c.UserContext(), files[0]) {
			return notApplied(c, "")
		}
		discardStaged(c, s, keys)
		return c.JSON(fiber.Map{"participations": ws.Participations.Total()})
	}
}

// GetSelection godoc
// @Summary Current selection
// @Tags selection
// @Produce json
// @Param projectId path string true "Project id"
// @Success 200 {object} map[string]interface{} "keys and count"
// @Router /projects/{projectId}/selection [get]
func GetSelection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sel := wsFrom(c).Selection
		return c.JSON(fiber.Map{"keys": sel.Keys(), "count": sel.Count()})
	}
}

type toggleRequest struct {
	Key string `json:"key"`
}

// ToggleSelection flips one participation key in the selection.
//
// @Summary Toggle one participation
// @Tags selection
// @Accept json
// @Produce json
// @Param projectId path string true "Project id"
// @Param selection body handler.toggleRequest true "Participation key"
// @Success 200 {object} map[string]interface{} "OK"
// @Failure 400 {object} handler.errorPayload "Missing key"
// @Router /projects/{projectId}/selection/toggle [post]
func ToggleSelection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req toggleRequest
		if err := c.BodyParser(&req); err != nil || req.Key == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "key is required")
		}
		sel := wsFrom(c).Selection
		on := sel.Toggle(req.Key)
		return c.JSON(fiber.Map{"key": req.Key, "selected": on, "count": sel.Count()})
	}
}

// ToggleSelectAll selects everything matching the current filter, or unselects it
// when it is all selected already.
//
// @Summary Toggle every filtered participation
// @Tags selection
// @Produce json
// @Param projectId path string true "Project id"
// @Success 200 {object} map[string]int "OK"
// @Router /projects/{projectId}/selection/all [post]
func ToggleSelectAll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws := wsFrom(c)
		ws.ToggleSelectAll()
		return c.JSON(fiber.Map{"count": ws.Selection.Count()})
	}
}

// ClearSelection godoc
// @Summary Clear the selection
// @Tags selection
// @Produce json
// @Param projectId path string true "Project id"
// @Success 204 "No Content"
// @Router /projects/{projectId}/selection [delete]
func ClearSelection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		wsFrom(c).Selection.Clear()
		return c.SendStatus(fiber.StatusNoContent)
	}
}
