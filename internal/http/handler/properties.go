package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"realestateapi/internal/model"
	"realestateapi/internal/service"
	"realestateapi/internal/validation"
)

const msgInvalidID = "invalid id format"

// pathID returns the :id route parameter, or writes a 400 envelope and
// returns ok=false when it is not a canonical id.
func pathID(c *fiber.Ctx) (string, bool, error) {
	id := c.Params("id")
	if !model.IsValidID(id) {
		return "", false, writeError(c, fiber.StatusBadRequest, "bad request", msgInvalidID)
	}
	return id, true, nil
}

func writeValidationError(c *fiber.Ctx, err error) (bool, error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return true, writeError(c, fiber.StatusBadRequest, "validation failed", verrs.Error())
	}
	return false, nil
}

// ListProperties godoc
// @Summary      List or search properties
// @Description  Without query parameters every property is returned. Name matches name or address.
// @Tags         properties
// @Produce      json
// @Param        name      query  string  false  "Name or address contains (case-insensitive)"
// @Param        address   query  string  false  "Address contains, used when name is empty"
// @Param        minPrice  query  number  false  "Inclusive lower price bound"
// @Param        maxPrice  query  number  false  "Inclusive upper price bound"
// @Param        page      query  int     false  "1-based page"
// @Param        pageSize  query  int     false  "Page size (1..100)"
// @Success      200  {object}  model.Envelope[[]model.PropertyDto]
// @Failure      400  {object}  model.Envelope[any]
// @Router       /api/properties [get]
func ListProperties(svc service.PropertyService, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		var (
			res []model.PropertyDto
			err error
		)
		if len(c.Queries()) == 0 {
			res, err = svc.List(ctx)
		} else {
			f, ferr := v.ParseFilter(c.Queries())
			if handled, werr := writeValidationError(c, ferr); handled {
				return werr
			}
			if ferr != nil {
				return ferr
			}
			res, err = svc.Search(ctx, f)
		}
		if err != nil {
			return writeStoreError(c, "failed to list properties", err)
		}
		return c.JSON(res)
	}
}

// GetProperty godoc
// @Summary  Get a property with its owner
// @Tags     properties
// @Produce  json
// @Param    id   path      string  true  "Property id (24 hex characters)"
// @Success  200  {object}  model.Envelope[model.PropertyDto]
// @Failure  400  {object}  model.Envelope[any]
// @Router   /api/properties/{id} [get]
func GetProperty(svc service.PropertyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}

		dto, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeNotFound(c, "property")
			}
			return writeStoreError(c, "failed to get property", err)
		}
		return c.JSON(dto)
	}
}

// CreateProperty godoc
// @Summary  Create a property
// @Tags     properties
// @Accept   json
// @Produce  json
// @Param    property  body      model.PropertyDto  true  "Property"
// @Success  201       {object}  model.Envelope[model.PropertyDto]
// @Failure  400       {object}  model.Envelope[any]
// @Router   /api/properties [post]
func CreateProperty(svc service.PropertyService, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.PropertyDto
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := v.Property(in); err != nil {
			if handled, werr := writeValidationError(c, err); handled {
				return werr
			}
			return err
		}

		dto, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeStoreError(c, "failed to create property", err)
		}
		return c.Status(fiber.StatusCreated).JSON(dto)
	}
}

// UpdateProperty godoc
// @Summary      Update a property
// @Description  Replaces the scalar fields. Images and traces are kept.
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id        path      string             true  "Property id"
// @Param        property  body      model.PropertyDto  true  "Property"
// @Success      200       {object}  model.Envelope[model.PropertyDto]
// @Failure      400       {object}  model.Envelope[any]
// @Router       /api/properties/{id} [put]
func UpdateProperty(svc service.PropertyService, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}

		var in model.PropertyDto
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := v.Property(in); err != nil {
			if handled, werr := writeValidationError(c, err); handled {
				return werr
			}
			return err
		}

		dto, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeNotFound(c, "property")
			}
			return writeStoreError(c, "failed to update property", err)
		}
		return c.JSON(dto)
	}
}

// DeleteProperty godoc
// @Summary  Delete a property
// @Tags     properties
// @Produce  json
// @Param    id   path      string  true  "Property id"
// @Success  200  {object}  model.Envelope[bool]
// @Router   /api/properties/{id} [delete]
func DeleteProperty(svc service.PropertyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeNotFound(c, "property")
			}
			return writeStoreError(c, "failed to delete property", err)
		}
		return c.JSON(true)
	}
}

// AddPropertyImage godoc
// @Summary  Upload an image for a property
// @Tags     properties
// @Accept   multipart/form-data
// @Produce  json
// @Param    id       path      string  true   "Property id"
// @Param    file     formData  file    true   "Image"
// @Param    enabled  formData  bool    false  "Shown as the cover candidate (default true)"
// @Success  201      {object}  model.Envelope[model.PropertyImage]
// @Router   /api/properties/{id}/images [post]
func AddPropertyImage(svc service.PropertyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "bad request", "file is required")
		}

		enabled := true
		if s := c.FormValue("enabled"); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "bad request", "enabled must be a boolean")
			}
			enabled = b
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "bad request", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		img, err := svc.AddImage(c.UserContext(), id, f, fh.Filename, ct, fh.Size, enabled)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeNotFound(c, "property")
			}
			return writeStoreError(c, "failed to add image", err)
		}
		return c.Status(fiber.StatusCreated).JSON(img)
	}
}

// ListTraces godoc
// @Summary  Sale history of a property
// @Tags     properties
// @Produce  json
// @Param    id   path      string  true  "Property id"
// @Success  200  {object}  model.Envelope[[]model.PropertyTrace]
// @Router   /api/properties/{id}/traces [get]
func ListTraces(svc service.PropertyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}

		traces, err := svc.ListTraces(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeNotFound(c, "property")
			}
			return writeStoreError(c, "failed to list traces", err)
		}
		return c.JSON(traces)
	}
}

// AddTrace godoc
// @Summary  Record a sale
// @Tags     properties
// @Accept   json
// @Produce  json
// @Param    id     path      string          true  "Property id"
// @Param    trace  body      model.TraceDto  true  "Sale"
// @Success  201    {object}  model.Envelope[model.PropertyTrace]
// @Router   /api/properties/{id}/traces [post]
func AddTrace(svc service.PropertyService, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}

		var in model.TraceDto
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := v.Trace(in); err != nil {
			if handled, werr := writeValidationError(c, err); handled {
				return werr
			}
			return err
		}

		tr, err := svc.AddTrace(c.UserContext(), id, in)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeNotFound(c, "property")
			}
			return writeStoreError(c, "failed to add trace", err)
		}
		return c.Status(fiber.StatusCreated).JSON(tr)
	}
}
