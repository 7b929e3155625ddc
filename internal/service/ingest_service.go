package service

import (
	"context"
	"errors"
	"time"

	"chromalyzer-be/internal/dto"
	"chromalyzer-be/internal/entity"
	"chromalyzer-be/internal/pkg/logger"
	"chromalyzer-be/internal/pkg/serverutils"
	"chromalyzer-be/internal/repository/memory"
	"chromalyzer-be/pkg/tabular"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const delimiterHint = "Try another delimiter, or check that the file really is delimited text (CSV/DAT)."

// maxPreviewRows caps the preview regardless of what the client asks for.
const maxPreviewRows = 100

type IIngestService interface {
	SaveUpload(ctx context.Context, fileName string, raw []byte) (*dto.UploadResponse, error)
	Preview(ctx context.Context, id uuid.UUID, delimiter string, rows int) (*dto.PreviewResponse, error)
	LoadDataset(ctx context.Context, id uuid.UUID, delimiter string) (*tabular.Dataset, *entity.Upload, string, error)
}

type ingestService struct {
	uploadRepo  *memory.UploadRepository
	parser      *tabular.Parser
	previewRows int
	logger      logger.ILogger
}

func NewIngestService(
	uploadRepo *memory.UploadRepository,
	parser *tabular.Parser,
	previewRows int,
	logger logger.ILogger,
) IIngestService {
	return &ingestService{
		uploadRepo:  uploadRepo,
		parser:      parser,
		previewRows: previewRows,
		logger:      logger,
	}
}

func (s *ingestService) SaveUpload(ctx context.Context, fileName string, raw []byte) (*dto.UploadResponse, error) {
	if len(raw) == 0 {
		return nil, serverutils.NewAPIError(fiber.StatusBadRequest, "uploaded file is empty")
	}

	upload := &entity.Upload{
		Id:         uuid.New(),
		FileName:   fileName,
		Size:       len(raw),
		Raw:        raw,
		UploadedAt: time.Now(),
	}
	s.uploadRepo.Save(upload)

	s.logger.Info("ingest", "file uploaded", map[string]interface{}{
		"upload_id": upload.Id.String(),
		"file_name": fileName,
		"size":      upload.Size,
	})

	return &dto.UploadResponse{
		Id:       upload.Id,
		FileName: upload.FileName,
		Size:     upload.Size,
	}, nil
}

func (s *ingestService) Preview(ctx context.Context, id uuid.UUID, delimiter string, rows int) (*dto.PreviewResponse, error) {
	dataset, upload, encoding, err := s.LoadDataset(ctx, id, delimiter)
	if err != nil {
		return nil, err
	}

	if rows <= 0 {
		rows = s.previewRows
	}
	if rows > maxPreviewRows {
		rows = maxPreviewRows
	}
	head := dataset.Head(rows)

	// Statistics over the preview rows only, like the original panel.
	stats := make([]dto.ColumnStatsResponse, 0)
	for _, cs := range tabular.Describe(head) {
		stats = append(stats, dto.ColumnStatsResponse(cs))
	}

	return &dto.PreviewResponse{
		Info: dto.DatasetInfo{
			FileName:    upload.FileName,
			SizeBytes:   upload.Size,
			RowCount:    dataset.RowCount(),
			ColumnCount: dataset.ColumnCount(),
			Columns:     dataset.Columns,
			Encoding:    encoding,
		},
		Rows:  head.Rows,
		Stats: stats,
		Defaults: dto.ColumnDefaults{
			TimeColumn:   tabular.GuessTimeColumn(dataset.Columns),
			SignalColumn: tabular.GuessSignalColumn(dataset.Columns),
			TimeUnit:     tabular.UnitSeconds,
		},
	}, nil
}

// LoadDataset re-parses the buffered upload bytes with the requested
// delimiter. Parsing is pure, so repeating it per interaction always yields
// the same dataset for the same inputs.
func (s *ingestService) LoadDataset(ctx context.Context, id uuid.UUID, delimiter string) (*tabular.Dataset, *entity.Upload, string, error) {
	upload, found := s.uploadRepo.Get(id.String())
	if !found {
		return nil, nil, "", serverutils.NewAPIError(fiber.StatusNotFound, "upload not found or expired")
	}

	delim, err := tabular.ResolveDelimiter(delimiter)
	if err != nil {
		return nil, nil, "", serverutils.NewAPIError(fiber.StatusBadRequest, err.Error())
	}

	dataset, encoding, err := s.parser.Parse(upload.Raw, delim)
	if err != nil {
		s.logger.Warn("ingest", "failed to parse upload", map[string]interface{}{
			"upload_id": id.String(),
			"delimiter": delimiter,
			"error":     err.Error(),
		})
		if errors.Is(err, tabular.ErrColumnDetection) {
			return nil, nil, encoding, serverutils.NewAPIErrorWithHint(
				fiber.StatusUnprocessableEntity,
				"no usable columns detected in the file",
				delimiterHint,
			)
		}
		return nil, nil, encoding, serverutils.NewAPIErrorWithHint(
			fiber.StatusUnprocessableEntity,
			"failed to read the file: "+err.Error(),
			delimiterHint,
		)
	}

	return dataset, upload, encoding, nil
}
