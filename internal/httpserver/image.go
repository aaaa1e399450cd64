package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

const imageField = "image"

type ImageHTTP struct {
	Svc *service.ImageService
}

func (h *ImageHTTP) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload_image")

	fh, err := c.FormFile(imageField)
	if err != nil {
		return fail(l, "upload_image_error", fmt.Errorf("form field %q: %w: %w", imageField, service.ErrValidation, err), "")
	}

	src, err := fh.Open()
	if err != nil {
		return fail(l, "upload_image_error", fmt.Errorf("open upload: %w: %w", service.ErrIO, err), "")
	}
	defer src.Close()

	name, err := h.Svc.Upload(ctx, src, fh.Filename)
	if err != nil {
		return fail(l, "upload_image_error", err, "")
	}

	return c.JSON(http.StatusCreated, transport.UploadResponse{
		Message:  "Image uploaded successfully",
		Filename: name,
	})
}
