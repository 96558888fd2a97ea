package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "pitchapi/docs"
)

// RegisterSwagger serves the UI and doc.json under /swagger. Host stays empty
// so clients resolve calls against the URL the document was loaded from.
func RegisterSwagger(app *fiber.App) {
	app.Get("/swagger/*", swagger.HandlerDefault)
}
