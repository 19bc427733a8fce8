package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"integrityapi/internal/extractor"
	"integrityapi/internal/service"
)

// textRequest is the JSON body for pasted-text analysis.
type textRequest struct {
	Text string `json:"text"`
}

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// CreateAnalysis runs an analysis on an uploaded document (multipart field
// "file") or on pasted text (JSON body {"text": ...}) and returns the
// persisted record. Pipeline aborts map to request errors; a degraded score
// inside a successful report is delivered as-is with its error label.
func CreateAnalysis(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if fh, err := c.FormFile("file"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()

			ct := fh.Header.Get("Content-Type")
			if ct == "" {
				ct = "application/octet-stream"
			}

			a, err := svc.AnalyzeDocument(c.UserContext(), f, fh.Filename, ct, fh.Size)
			if err != nil {
				return writeAnalysisError(c, err)
			}
			return c.Status(fiber.StatusCreated).JSON(a)
		}

		var req textRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "expected a multipart file or a JSON body with a text field")
		}
		if req.Text == "" {
			return writeError(c, fiber.StatusBadRequest, "TEXT_REQUIRED", "text is required when no file is uploaded")
		}

		a, err := svc.AnalyzeText(c.UserContext(), req.Text)
		if err != nil {
			return writeAnalysisError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// writeAnalysisError maps pipeline aborts to their HTTP codes so callers can
// distinguish why no report was produced.
func writeAnalysisError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, extractor.ErrUnsupportedFormat):
		return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", "only pdf and docx documents are supported")
	case errors.Is(err, extractor.ErrExtractionFailed):
		return writeError(c, fiber.StatusUnprocessableEntity, "EXTRACTION_FAILED", "document could not be read")
	case errors.Is(err, service.ErrInsufficientInput):
		return writeError(c, fiber.StatusBadRequest, "INSUFFICIENT_INPUT", "text must be at least 50 characters")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ListAnalyses returns paginated analysis records.
func ListAnalyses(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limitStr := c.Query("limit", "10")
		offsetStr := c.Query("offset", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetAnalysis returns a single analysis by ID.
func GetAnalysis(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		a, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "analysis not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(a)
	}
}

// DeleteAnalysis removes an analysis and its archived document by ID.
func DeleteAnalysis(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "analysis not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DownloadDocument redirects to a presigned URL for the archived container.
func DownloadDocument(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := svc.DocumentURL(c.UserContext(), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound), errors.Is(err, sql.ErrNoRows):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "analysis not found")
			case errors.Is(err, service.ErrNoDocument):
				return writeError(c, fiber.StatusNotFound, "NO_DOCUMENT", "analysis has no archived document")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}
