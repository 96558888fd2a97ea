package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"pitchapi/internal/service"
	"pitchapi/internal/validator"
)

type submitResponse struct {
	Success       bool      `json:"success"`
	Message       string    `json:"message"`
	SubmissionID  string    `json:"submission_id"`
	Timestamp     time.Time `json:"timestamp"`
	FilesReceived int       `json:"files_received"`
	DatabaseID    int64     `json:"database_id"`
	Warnings      []string  `json:"warnings"`
}

type rejectionResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Validation validator.Verdict `json:"validation"`
}

type validationSummary struct {
	TotalFiles        int `json:"total_files"`
	ValidFiles        int `json:"valid_files"`
	FilesWithWarnings int `json:"files_with_warnings"`
}

type validationTestResponse struct {
	ValidationResult validator.Verdict `json:"validation_result"`
	Message          string            `json:"message"`
	Summary          validationSummary `json:"summary"`
}

// SubmitStartup accepts a startup submission with its documents.
//
// @Summary Submit a startup with supporting documents
// @Tags startups
// @Accept mpfd
// @Produce json
// @Param startup_name formData string true "Startup name"
// @Param submitter_name formData string true "Submitter name"
// @Param files formData file true "Documents (repeatable)"
// @Success 200 {object} submitResponse
// @Failure 400 {object} rejectionResponse
// @Router /api/submit-startup [post]
func SubmitStartup(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := readUploads(c)
		if err != nil {
			if errors.Is(err, errNoUploads) {
				return writeError(c, fiber.StatusBadRequest, "FILES_REQUIRED", "at least one file is required")
			}
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
		}

		res, err := svc.Submit(c.UserContext(), service.SubmitInput{
			StartupName:   c.FormValue("startup_name"),
			SubmitterName: c.FormValue("submitter_name"),
			Files:         docs,
		})
		if err != nil {
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				return c.Status(fiber.StatusBadRequest).JSON(rejectionResponse{
					Success:    false,
					Message:    "File validation failed",
					Validation: verr.Verdict,
				})
			}
			return writeServiceError(c, err)
		}

		return c.JSON(submitResponse{
			Success:       true,
			Message:       "Startup submission received successfully!",
			SubmissionID:  res.Submission.SubmissionID,
			Timestamp:     res.Timestamp,
			FilesReceived: len(res.Submission.Files),
			DatabaseID:    res.Submission.ID,
			Warnings:      res.Verdict.Warnings,
		})
	}
}

// ListSubmissions returns paginated submissions.
//
// @Summary List submissions
// @Tags startups
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.SubmissionListResult
// @Router /api/submissions [get]
func ListSubmissions(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetSubmission returns one submission with its files.
//
// @Summary Get a submission
// @Tags startups
// @Produce json
// @Param submission_id path string true "Submission UUID"
// @Success 200 {object} model.Submission
// @Failure 404 {object} errorPayload
// @Router /api/submissions/{submission_id} [get]
func GetSubmission(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub, err := svc.Get(c.UserContext(), c.Params("submission_id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sub)
	}
}

// GetSubmissionFileURL returns a short-lived download link for a stored file.
func GetSubmissionFileURL(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileID, err := strconv.ParseInt(c.Params("file_id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid file id")
		}

		url, err := svc.FileURL(c.UserContext(), c.Params("submission_id"), fileID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"url":        url,
			"expires_in": int(service.FileURLExpiry.Seconds()),
		})
	}
}

// GetStats returns submission counters.
//
// @Summary Submission statistics
// @Tags startups
// @Produce json
// @Success 200 {object} model.Stats
// @Router /api/stats [get]
func GetStats(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Stats(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(st)
	}
}

// SearchStartups returns startup names for autocomplete.
//
// @Summary Search startups by name
// @Tags analysis
// @Produce json
// @Param query path string true "Name fragment"
// @Success 200 {array} model.StartupRef
// @Router /api/startups/search/{query} [get]
func SearchStartups(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		refs, err := svc.Search(c.UserContext(), c.Params("query"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(refs)
	}
}

// ValidateDocuments runs validation on uploaded files without storing them.
//
// @Summary Validate documents without submitting
// @Tags testing
// @Accept mpfd
// @Produce json
// @Param startup_name formData string true "Startup name"
// @Param files formData file true "Documents (repeatable)"
// @Success 200 {object} validationTestResponse
// @Router /api/test/test-validation [post]
func ValidateDocuments(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		startupName := c.FormValue("startup_name")
		if startupName == "" {
			return writeError(c, fiber.StatusBadRequest, "STARTUP_NAME_REQUIRED", "startup_name is required")
		}
		docs, err := readUploads(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILES_REQUIRED", "at least one file is required")
		}

		v := svc.Validate(c.UserContext(), startupName, docs)

		msg := "Validation failed"
		if v.IsValid {
			msg = "Validation completed successfully"
		}
		return c.JSON(validationTestResponse{
			ValidationResult: v,
			Message:          msg,
			Summary: validationSummary{
				TotalFiles:        len(docs),
				ValidFiles:        v.FinancialFiles(),
				FilesWithWarnings: v.InconsistentFiles(),
			},
		})
	}
}
