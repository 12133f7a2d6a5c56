// Package handler exposes the collaboration workspaces over HTTP for the console front end.
package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"

	_ "collabcore/internal/docs"
	"collabcore/internal/notice"
	"collabcore/internal/storage"
	"collabcore/internal/workspace"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators of the HTTP surface. DB, Journal, Staging and Gatherer
// are optional; their routes degrade when absent.
type Deps struct {
	Sessions *workspace.Sessions
	Feed     *notice.Feed
	Journal  *notice.Journal
	Staging  storage.Storage
	DB       Pinger
	Gatherer prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Gatherer != nil {
		app.Get("/metrics", Metrics(d.Gatherer))
	}
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.Redirect("/swagger/index.html", fiber.StatusMovedPermanently)
	})

	app.Get("/notices", ListNotices(d.Feed))
	app.Get("/notices/journal", ListJournal(d.Journal))
	app.Get("/notices/journal/:noticeId", GetJournalNotice(d.Journal))
	app.Post("/staged", StageFile(d.Staging))

	p := app.Group("/projects/:projectId")
	p.Post("/workspace", EnterWorkspace(d.Sessions))
	p.Delete("/workspace", LeaveWorkspace(d.Sessions))

	ws := RequireWorkspace(d.Sessions)
	p.Get("/workspace", ws, WorkspaceSummary())
	p.Post("/workspace/reload", ws, ReloadWorkspace())

	p.Get("/phases", ws, ListPhases())
	p.Post("/phases", ws, CreatePhase())
	p.Put("/phases/current", ws, SelectPhase())
	p.Patch("/phases/:phaseId", ws, UpdatePhase())
	p.Delete("/phases/:phaseId", ws, DeletePhase())
	p.Get("/mentors", ws, ListMentors())

	p.Get("/participations", ws, ListParticipations())
	p.Get("/participations/grouped", ws, GroupedParticipations())
	p.Get("/participations/counts", ws, ParticipationCounts())
	p.Post("/participations/move", ws, MoveSelected())
	p.Post("/participations/remove", ws, RemoveSelected())
	p.Post("/participations/import", ws, ImportParticipants(d.Staging))

	p.Get("/selection", ws, GetSelection())
	p.Post("/selection/toggle", ws, ToggleSelection())
	p.Post("/selection/all", ws, ToggleSelectAll())
	p.Delete("/selection", ws, ClearSelection())

	p.Get("/notifications", ws, ListNotifications())
	p.Post("/notifications", ws, CreateNotification(d.Staging))
	p.Get("/notifications/active", ws, GetActiveNotification())
	p.Put("/notifications/active", ws, SetActiveNotification())
	p.Post("/notifications/reload", ws, ReloadNotifications())
	p.Patch("/notifications/:notificationId", ws, UpdateNotification(d.Staging))
	p.Delete("/notifications/:notificationId", ws, DeleteNotification())
	p.Post("/notifications/:notificationId/send", ws, SendNotification())
	p.Delete("/notifications/:notificationId/attachments", ws, DeleteNotificationAttachments())
}
