package controller

import (
	"chromalyzer-be/internal/dto"
	"chromalyzer-be/internal/pkg/serverutils"
	"chromalyzer-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router)
	Process(ctx *fiber.Ctx) error
	Plot(ctx *fiber.Ctx) error
	ExportPeaks(ctx *fiber.Ctx) error
}

type analysisController struct {
	analysisService service.IAnalysisService
}

func NewAnalysisController(analysisService service.IAnalysisService) IAnalysisController {
	return &analysisController{
		analysisService: analysisService,
	}
}

func (c *analysisController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chromatogram/v1")
	h.Post(":id/process", c.Process)
	h.Post(":id/plot", c.Plot)
	h.Post(":id/peaks.csv", c.ExportPeaks)
}

func (c *analysisController) Process(ctx *fiber.Ctx) error {
	id, req, err := parseAnalysisRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.analysisService.Process(ctx.Context(), id, req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process chromatogram", res))
}

func (c *analysisController) Plot(ctx *fiber.Ctx) error {
	id, req, err := parseAnalysisRequest(ctx)
	if err != nil {
		return err
	}

	png, err := c.analysisService.RenderPlot(ctx.Context(), id, req)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "image/png")
	return ctx.Send(png)
}

func (c *analysisController) ExportPeaks(ctx *fiber.Ctx) error {
	id, req, err := parseAnalysisRequest(ctx)
	if err != nil {
		return err
	}

	data, fileName, err := c.analysisService.ExportPeaksCSV(ctx.Context(), id, req)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(data)
}

func parseAnalysisRequest(ctx *fiber.Ctx) (uuid.UUID, *dto.ProcessRequest, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, nil, serverutils.NewAPIError(fiber.StatusBadRequest, "invalid upload id")
	}

	var req dto.ProcessRequest
	if err := ctx.BodyParser(&req); err != nil {
		return uuid.Nil, nil, serverutils.NewAPIError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return uuid.Nil, nil, err
	}

	return id, &req, nil
}
