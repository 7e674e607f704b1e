package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"realestateapi/internal/service"
)

// ListOwners godoc
// @Summary  List owners
// @Tags     owners
// @Produce  json
// @Success  200  {object}  model.Envelope[[]model.OwnerDto]
// @Router   /api/owners [get]
func ListOwners(svc service.OwnerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		owners, err := svc.List(c.UserContext())
		if err != nil {
			return writeStoreError(c, "failed to list owners", err)
		}
		return c.JSON(owners)
	}
}

// GetOwner godoc
// @Summary  Get an owner
// @Tags     owners
// @Produce  json
// @Param    id   path      string  true  "Owner id"
// @Success  200  {object}  model.Envelope[model.OwnerDto]
// @Router   /api/owners/{id} [get]
func GetOwner(svc service.OwnerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}

		owner, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeNotFound(c, "owner")
			}
			return writeStoreError(c, "failed to get owner", err)
		}
		return c.JSON(owner)
	}
}
