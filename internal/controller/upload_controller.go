package controller

import (
	"io"

	"chromalyzer-be/internal/pkg/serverutils"
	"chromalyzer-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
}

type uploadController struct {
	ingestService service.IIngestService
}

func NewUploadController(ingestService service.IIngestService) IUploadController {
	return &uploadController{
		ingestService: ingestService,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chromatogram/v1")
	h.Post("upload", c.Upload)
	h.Get(":id/preview", c.Preview)
}

func (c *uploadController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.NewAPIError(fiber.StatusBadRequest, "missing file field in multipart form")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return serverutils.NewAPIError(fiber.StatusBadRequest, "failed to open uploaded file: "+err.Error())
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return serverutils.NewAPIError(fiber.StatusBadRequest, "failed to read uploaded file: "+err.Error())
	}

	res, err := c.ingestService.SaveUpload(ctx.Context(), fileHeader.Filename, raw)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload file", res))
}

func (c *uploadController) Preview(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAPIError(fiber.StatusBadRequest, "invalid upload id")
	}

	delimiter := ctx.Query("delimiter", ",")
	rows := ctx.QueryInt("rows", 0)

	res, err := c.ingestService.Preview(ctx.Context(), id, delimiter, rows)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success preview dataset", res))
}
