package social

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/feed", authMiddleware, func(c *fiber.Ctx) error {
		viewerID := viewer(c)
		if viewerID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing viewer")
		}
		feed, err := svc.Feed(c.Context(), viewerID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(feed)
	})

	r.Get("/users/search", authMiddleware, func(c *fiber.Ctx) error {
		viewerID := viewer(c)
		if viewerID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing viewer")
		}
		users, err := svc.SearchUsers(c.Context(), viewerID, c.Query("query"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(users)
	})

	r.Get("/following", authMiddleware, func(c *fiber.Ctx) error {
		users, err := svc.Following(c.Context(), viewer(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(users)
	})

	r.Get("/followers", authMiddleware, func(c *fiber.Ctx) error {
		users, err := svc.Followers(c.Context(), viewer(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(users)
	})

	r.Post("/follow", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		edge, err := svc.Follow(c.Context(), viewer(c), body.UserID)
		if err != nil {
			if errors.Is(err, ErrSelfFollow) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(edge)
	})

	r.Delete("/unfollow/:userId", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Unfollow(c.Context(), viewer(c), c.Params("userId")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"message": "unfollowed successfully"})
	})
}

func viewer(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
