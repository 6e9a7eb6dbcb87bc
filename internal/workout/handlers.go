package workout

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/borbigo/PeakForm/internal/cache"
	"github.com/borbigo/PeakForm/internal/stats"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, statsCache *cache.Cache, authMiddleware fiber.Handler) {
	r.Get("/stats/weekly", authMiddleware, statsHandler(svc, statsCache, "weekly", func(ws []stats.Workout) any {
		return stats.CalculateWeeklyStats(ws)
	}))
	r.Get("/stats/series", authMiddleware, statsHandler(svc, statsCache, "series", func(ws []stats.Workout) any {
		return stats.WeeklySeries(ws, time.Now())
	}))
	r.Get("/stats/types", authMiddleware, statsHandler(svc, statsCache, "types", func(ws []stats.Workout) any {
		return stats.WorkoutsByType(ws)
	}))
	r.Get("/stats/prediction", authMiddleware, statsHandler(svc, statsCache, "prediction", func(ws []stats.Workout) any {
		return stats.PredictRaceTimes(ws)
	}))

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		workouts, err := svc.List(c.Context(), viewer(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"data": workouts})
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Workout
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Title == "" || req.Type == "" {
			return fiber.NewError(fiber.StatusBadRequest, "type and title required")
		}
		req.UserID = viewer(c)
		created, err := svc.Create(c.Context(), req)
		if err != nil {
			if errors.Is(err, ErrInvalidType) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": created})
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var patch Workout
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		updated, err := svc.Update(c.Context(), c.Params("id"), patch)
		if err != nil {
			switch {
			case errors.Is(err, pgx.ErrNoRows):
				return fiber.NewError(fiber.StatusNotFound, "workout not found")
			case errors.Is(err, ErrInvalidType):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"data": updated})
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fiber.NewError(fiber.StatusNotFound, "workout not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"message": "workout deleted"})
	})
}

// statsHandler serves a computed aggregate, consulting the redis cache first.
// The analytics functions themselves stay pure; caching wraps them here.
func statsHandler(svc *Service, statsCache *cache.Cache, kind string, compute func([]stats.Workout) any) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := viewer(c)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing viewer")
		}

		key := cache.StatsKey(kind, userID)
		if payload, ok := statsCache.Get(c.Context(), key); ok {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(payload)
		}

		workouts, err := svc.List(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		payload, err := json.Marshal(compute(statsView(workouts)))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		statsCache.Set(c.Context(), key, payload)

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(payload)
	}
}

// statsView projects stored workouts into the analytics engine's input shape.
func statsView(workouts []Workout) []stats.Workout {
	view := make([]stats.Workout, len(workouts))
	for i, w := range workouts {
		view[i] = stats.Workout{
			Type:      w.Type,
			Date:      w.Date,
			Duration:  w.Duration,
			Distance:  w.Distance,
			Calories:  w.Calories,
			Completed: w.Completed,
			Planned:   w.Planned,
		}
	}
	return view
}

func viewer(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
