package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authService "github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/service"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
	"github.com/firmantawakal/simak-tracer-study/internals/testutil"
)

func TestAdminAuth(t *testing.T) {
	svc := authService.New(testutil.SetupTestDB(t), testutil.TestConfig())
	ctx := context.Background()
	_, err := svc.EnsureAdmin(ctx, "admin", "Administrator", "rahasia123")
	require.NoError(t, err)
	res, err := svc.Login(ctx, "admin", "rahasia123")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", AdminAuth(svc), func(c *fiber.Ctx) error {
		id, ok := AdminID(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(id.String() + "|" + c.Locals(LocAdminUsername).(string))
	})

	do := func(header, value string) int {
		req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set(header, value)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusUnauthorized, do("", ""))
	assert.Equal(t, fiber.StatusUnauthorized, do("Authorization", "Bearer sampah"))
	assert.Equal(t, fiber.StatusOK, do("Authorization", "Bearer "+res.Token))
	assert.Equal(t, fiber.StatusOK, do("Cookie", helper.AdminCookieName+"="+res.Token))

	require.NoError(t, svc.Logout(ctx, res.Token))
	assert.Equal(t, fiber.StatusUnauthorized, do("Authorization", "Bearer "+res.Token))
}
