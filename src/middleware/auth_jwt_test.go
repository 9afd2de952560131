package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"attendance-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthJWT(t *testing.T) {
	app := fiber.New()
	app.Get("/me", AuthJWT, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("userId").(string))
	})

	token, err := utils.GenerateJWT("user-42", "u@example.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"NoHeader", "", http.StatusUnauthorized},
		{"NotBearer", "Basic abc", http.StatusUnauthorized},
		{"Garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"Valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)

			if tt.status == http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, "user-42", string(body))
			}
		})
	}
}
