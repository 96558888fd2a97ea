package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pitchapi/internal/service"
)

// AnalyzeStartup returns the investment analysis for a submitted startup.
// Documents failing validation are rejected with 422 and the verdict.
//
// @Summary Analyze a submitted startup
// @Tags analysis
// @Produce json
// @Param startup_name path string true "Startup name or fragment"
// @Success 200 {object} model.AnalysisResult
// @Failure 404 {object} errorPayload
// @Failure 422 {object} rejectionResponse
// @Router /api/analyze/{startup_name} [get]
func AnalyzeStartup(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Analyze(c.UserContext(), c.Params("startup_name"))
		if err != nil {
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(rejectionResponse{
					Success:    false,
					Message:    "Stored documents failed validation",
					Validation: verr.Verdict,
				})
			}
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
