package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"pitchapi/docs"
)

func TestRegisterSwagger(t *testing.T) {
	app := fiber.New()
	RegisterSwagger(app)

	var wg sync.WaitGroup
	for _, host := range []string{"api.example.com", "10.0.0.7:8080", "localhost:3000"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
			req.Host = host
			req.Header.Set("X-Forwarded-Proto", "https")

			resp, err := app.Test(req, -1)
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var doc map[string]any
			if assert.NoError(t, json.NewDecoder(resp.Body).Decode(&doc)) {
				assert.Equal(t, "", doc["host"])
				assert.Contains(t, doc["paths"], "/api/submit-startup")
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, docs.SwaggerInfo.Host)
	assert.Empty(t, docs.SwaggerInfo.Schemes)
}
