package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/alexkokkinos/walktime/internal/prefs"
	"github.com/alexkokkinos/walktime/internal/walk"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *walk.Service, repo prefs.Repository) {
	v1 := app.Group("/api/v1")

	v1.Get("/walk/best", func(c *fiber.Ctx) error {
		p, err := resolvePreferences(c, repo)
		if err != nil {
			return err
		}

		result, err := service.BestWalk(c.Context(), p)
		if err != nil {
			return mapWalkError(err)
		}
		return c.JSON(result)
	})

	v1.Get("/walk/hours", func(c *fiber.Ctx) error {
		p, err := resolvePreferences(c, repo)
		if err != nil {
			return err
		}

		result, err := service.ScoredHours(c.Context(), p)
		if err != nil {
			return mapWalkError(err)
		}
		return c.JSON(result)
	})

	v1.Get("/preferences/:userID", func(c *fiber.Ctx) error {
		rec, err := repo.Get(c.Context(), c.Params("userID"))
		if err != nil {
			if errors.Is(err, prefs.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no preferences stored for user")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load preferences")
		}
		return c.JSON(rec)
	})

	v1.Put("/preferences/:userID", func(c *fiber.Ctx) error {
		var body preferencesBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest,
				"invalid request body; ideal_temp must be an integer (e.g. 72, not 72.5 or 72F)")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rec := prefs.Record{
			UserID:    c.Params("userID"),
			Location:  body.Location,
			IdealTemp: body.IdealTemp,
			Units:     body.Units,
		}

		// Reject records that could never resolve into scoreable preferences.
		if _, err := rec.Resolve(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := repo.Upsert(c.Context(), rec); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save preferences")
		}
		return c.JSON(rec)
	})
}

// preferencesBody is the PUT payload. Units validation is case-insensitive
// to match what clients historically sent.
type preferencesBody struct {
	Location  string `json:"location"`
	IdealTemp *int   `json:"ideal_temp"`
	Units     string `json:"units" validate:"omitempty,oneof=f c F C"`
}

// resolvePreferences builds the scoring preferences for a walk request:
// the stored record for user_id (absent record means all defaults), overlaid
// with any explicit location/ideal_temp/units query overrides, then
// defaulted and validated.
func resolvePreferences(c *fiber.Ctx, repo prefs.Repository) (prefs.UserPreferences, error) {
	var rec prefs.Record

	if userID := c.Query("user_id"); userID != "" {
		stored, err := repo.Get(c.Context(), userID)
		if err != nil && !errors.Is(err, prefs.ErrNotFound) {
			return prefs.UserPreferences{}, fiber.NewError(fiber.StatusInternalServerError, "failed to load preferences")
		}
		rec = stored
	}

	if loc := c.Query("location"); loc != "" {
		rec.Location = loc
	}
	if units := c.Query("units"); units != "" {
		rec.Units = units
	}
	if t := c.Query("ideal_temp"); t != "" {
		n, err := strconv.Atoi(t)
		if err != nil {
			return prefs.UserPreferences{}, fiber.NewError(fiber.StatusBadRequest,
				"ideal_temp must be an integer (e.g. 72, not 72.5 or 72F)")
		}
		rec.IdealTemp = &n
	}

	p, err := rec.Resolve()
	if err != nil {
		return prefs.UserPreferences{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return p, nil
}

// mapWalkError translates core errors into HTTP responses. The
// no-remaining-hours case gets its own specific message so it is never
// mistaken for a provider outage.
func mapWalkError(err error) error {
	switch {
	case errors.Is(err, walk.ErrNoRemainingHours):
		return fiber.NewError(fiber.StatusNotFound,
			"no hours left today for this location; try again tomorrow")
	case errors.Is(err, walk.ErrInvalidPreference):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, walk.ErrUpstreamUnavailable):
		return fiber.NewError(fiber.StatusBadGateway,
			"weather provider unavailable; try again shortly")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to compute best walk")
	}
}
