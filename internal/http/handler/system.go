package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"collabcore/internal/notice"
	"collabcore/internal/storage"
)

// HealthCheck pings the journal database. Without one the service is healthy on its own.
//
// @Summary Readiness
// @Description Pings the notice journal when one is configured.
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string "OK"
// @Failure 503 {object} handler.errorPayload "Journal unreachable"
// @Router /health [get]
func HealthCheck(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy", "journal": "disabled"})
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy", "journal": "up"})
	}
}

// LivenessProbe always answers 200.
//
// @Summary Liveness
// @Tags system
// @Success 200 "OK"
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Metrics serves the Prometheus exposition of g.
//
// @Summary Prometheus metrics
// @Tags system
// @Produce plain
// @Success 200 {string} string "Exposition text"
// @Router /metrics [get]
func Metrics(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}

// ListNotices returns the notices raised after the notice named by ?after, oldest first.
//
// @Summary Recent notices
// @Description Notices raised after the notice named by after, oldest first.
// @Tags notices
// @Produce json
// @Param after query string false "Last notice id already seen"
// @Success 200 {object} map[string][]model.Notice "OK"
// @Router /notices [get]
func ListNotices(feed *notice.Feed) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if feed == nil {
			return c.JSON(fiber.Map{"items": []any{}})
		}
		return c.JSON(fiber.Map{"items": feed.Since(c.Query("after"))})
	}
}

// ListJournal pages through the persisted notices with ?limit and ?offset.
//
// @Summary Journaled notices
// @Tags notices
// @Produce json
// @Param limit query integer false "Page size"
// @Param offset query integer false "Rows to skip"
// @Success 200 {object} map[string]interface{} "items, total, limit and offset"
// @Failure 400 {object} handler.errorPayload "Invalid limit or offset"
// @Failure 501 {object} handler.errorPayload "Journal disabled"
// @Router /notices/journal [get]
func ListJournal(j *notice.Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if j == nil {
			return writeError(c, fiber.StatusNotImplemented, "JOURNAL_DISABLED", "notice journal is not configured")
		}
		limit, err := strconv.Atoi(c.Query("limit", "20"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := j.Recent(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{
			"items":  res.Items,
			"total":  res.Total,
			"limit":  limit,
			"offset": offset,
		})
	}
}

// GetJournalNotice returns one persisted notice.
//
// @Summary Journaled notice
// @Tags notices
// @Produce json
// @Param noticeId path string true "Notice id"
// @Success 200 {object} model.Notice "OK"
// @Failure 404 {object} handler.errorPayload "Not found"
// @Failure 501 {object} handler.errorPayload "Journal disabled"
// @Router /notices/journal/{noticeId} [get]
func GetJournalNotice(j *notice.Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if j == nil {
			return writeError(c, fiber.StatusNotImplemented, "JOURNAL_DISABLED", "notice journal is not configured")
		}
		n, err := j.Get(c.UserContext(), c.Params("noticeId"))
		if errors.Is(err, notice.ErrNoticeNotFound) {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "notice not found")
		}
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(n)
	}
}

// StageFile stores the multipart "file" in object storage for a later import or attachment.
//
// @Summary Stage a file
// @Description Stores the file for a later import or attachment and returns its key.
// @Tags staging
// @Accept mpfd
// @Produce json
// @Param file formData file true "File to stage"
// @Success 201 {object} storage.Staged "Created"
// @Failure 400 {object} handler.errorPayload "Missing or unreadable file"
// @Failure 501 {object} handler.errorPayload "Staging disabled"
// @Failure 502 {object} handler.errorPayload "Object storage failure"
// @Router /staged [post]
func StageFile(s storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s == nil {
			return writeError(c, fiber.StatusNotImplemented, "STAGING_DISABLED", "object storage is not configured")
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILE", "file cannot be read")
		}
		defer f.Close()

		staged, err := storage.Stage(c.UserContext(), s, fh.Filename, fh.Header.Get("Content-Type"), f, fh.Size)
		if err != nil {
			return writeError(c, fiber.StatusBadGateway, "STAGING_FAILED", "file could not be staged")
		}
		return c.Status(fiber.StatusCreated).JSON(staged)
	}
}
