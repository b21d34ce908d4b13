package service

import (
	"Beacon/internal/api/config"
	"Beacon/internal/api/dto"
	"Beacon/internal/ingest"
	"Beacon/internal/model"
	"Beacon/internal/pkg/consts"
	"Beacon/internal/pkg/redis"
	"Beacon/internal/pkg/util"
	"Beacon/internal/repository"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	log "log/slog"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"
)

// BatchFile 批量导入的单个文件
type BatchFile struct {
	Filename string
	Reader   io.Reader
	Size     int64
}

type ImportService interface {
	ImportFile(ctx context.Context, filename string, r io.Reader, size int64) (*dto.ImportResultDTO, error)
	ImportBatch(ctx context.Context, files []BatchFile) (*dto.BatchImportResultDTO, error)
	ImportHistory(ctx context.Context, limit int) ([]*dto.UploadDTO, error)
}

type importServiceImpl struct {
	db         *gorm.DB
	uploadRepo repository.UploadRepo
}

func NewImportService(db *gorm.DB, uploadRepo repository.UploadRepo) ImportService {
	return &importServiceImpl{db: db, uploadRepo: uploadRepo}
}

// ImportFile 完整导入流水线：校验 → 去重 → 解析 → 落库。
// 解析和落库在同一事务内，失败不会留下半份导入
func (s *importServiceImpl) ImportFile(ctx context.Context, filename string, r io.Reader, size int64) (*dto.ImportResultDTO, error) {
	if filename == "" || r == nil {
		return nil, ErrFileMissing
	}
	if err := s.validateFile(filename, size); err != nil {
		return nil, err
	}

	data, fileHash, err := readAndHash(r, config.Cfg.MaxUploadBytes())
	if err != nil {
		return nil, err
	}

	prior, err := s.uploadRepo.FindByHash(ctx, fileHash)
	if err != nil {
		return nil, err
	}
	if prior != nil {
		return nil, &DuplicateFileError{
			FileHash:   fileHash,
			Filename:   prior.Filename,
			UploadedAt: prior.UploadDate,
			UploadID:   prior.ID,
		}
	}

	wb, err := ingest.LoadWorkbookReader(bytes.NewReader(data), filename)
	if err != nil {
		log.WarnContext(ctx, "工作簿解析失败", "filename", filename, "err", err)
		return nil, ErrWorkbookCorrupt
	}

	format := ingest.DetectFormat(wb)
	parsed, err := s.parseByFormat(ctx, wb, format, filename)
	if err != nil {
		return nil, err
	}

	var upload *model.Upload
	var stats *ImportStats
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reconciler := NewReconciler(
			repository.NewPostRepository(tx),
			repository.NewDailyMetricRepository(tx),
			repository.NewFollowerSnapshotRepository(tx),
			repository.NewDemographicSnapshotRepository(tx),
			repository.NewPostDemographicRepository(tx),
		)
		applied, err := reconciler.Apply(ctx, parsed)
		if err != nil {
			return err
		}
		stats = applied

		upload = &model.Upload{
			Filename:        filename,
			FileHash:        fileHash,
			RecordsImported: applied.TotalRecords(),
			Status:          "completed",
		}
		return repository.NewUploadRepository(tx).Create(ctx, upload)
	})
	if err != nil {
		return nil, err
	}

	// 新数据落库后分析缓存作废
	_ = redis.DeleteKey(ctx, consts.AnalyticsOverviewKey)

	warnings := append(parsed.Warnings, stats.Warnings...)

	log.InfoContext(ctx, "导入完成",
		"filename", filename,
		"format", string(format),
		"records", stats.TotalRecords(),
		"warnings", len(warnings),
	)

	return &dto.ImportResultDTO{
		UploadID:        upload.ID,
		Filename:        filename,
		Format:          string(format),
		RecordsImported: stats.TotalRecords(),
		PostsCreated:    stats.PostsCreated,
		PostsUpdated:    stats.PostsUpdated,
		Warnings:        warnings,
	}, nil
}

// ImportBatch 逐个导入，单个文件失败只记入 skipped，不影响其余文件
func (s *importServiceImpl) ImportBatch(ctx context.Context, files []BatchFile) (*dto.BatchImportResultDTO, error) {
	result := &dto.BatchImportResultDTO{
		Imported: make([]*dto.ImportResultDTO, 0, len(files)),
		Skipped:  make([]*dto.SkippedFileDTO, 0),
	}
	for _, f := range files {
		imported, err := s.ImportFile(ctx, f.Filename, f.Reader, f.Size)
		if err != nil {
			result.Skipped = append(result.Skipped, &dto.SkippedFileDTO{
				Filename: f.Filename,
				Reason:   err.Error(),
			})
			continue
		}
		result.Imported = append(result.Imported, imported)
	}
	return result, nil
}

func (s *importServiceImpl) ImportHistory(ctx context.Context, limit int) ([]*dto.UploadDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	uploads, err := s.uploadRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UploadDTO, 0, len(uploads))
	for _, u := range uploads {
		out = append(out, &dto.UploadDTO{
			ID:              u.ID,
			Filename:        u.Filename,
			FileHash:        u.FileHash,
			UploadDate:      u.UploadDate.Format(time.RFC3339),
			RecordsImported: u.RecordsImported,
			Status:          u.Status,
		})
	}
	return out, nil
}

func (s *importServiceImpl) validateFile(filename string, size int64) error {
	if size == 0 {
		return ErrFileEmpty
	}
	if size > config.Cfg.MaxUploadBytes() {
		return ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedExts() {
		if ext == allowed {
			return nil
		}
	}
	return ErrFileNotSupported
}

func allowedExts() []string {
	if len(config.Cfg.Upload.AllowedExts) > 0 {
		return config.Cfg.Upload.AllowedExts
	}
	return []string{".xlsx", ".xls", ".csv"}
}

// readAndHash 流式计算 SHA-256，同时把内容收进内存供解析
func readAndHash(r io.Reader, maxBytes int64) ([]byte, string, error) {
	h := sha256.New()
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.TeeReader(io.LimitReader(r, maxBytes+1), h))
	if err != nil {
		return nil, "", err
	}
	if n == 0 {
		return nil, "", ErrFileEmpty
	}
	if n > maxBytes {
		return nil, "", ErrFileTooLarge
	}
	return buf.Bytes(), hex.EncodeToString(h.Sum(nil)), nil
}

// parseByFormat 按探测结果选择解析器。识别不出的 Excel 按聚合格式尽力
// 解析，CSV 固定产出零条记录，两者都只补告警不报错
func (s *importServiceImpl) parseByFormat(ctx context.Context, wb *ingest.Workbook, format ingest.ExportFormat, filename string) (*ingest.ParsedExport, error) {
	snapshotDate := util.GetMidnight(time.Now())

	switch format {
	case ingest.FormatPerPost:
		parsed, err := ingest.ParsePerPostExport(wb)
		if err != nil {
			log.WarnContext(ctx, "单帖导出缺少必需字段", "filename", filename, "err", err)
			return nil, ErrExportInvalid
		}
		return parsed, nil
	case ingest.FormatAggregate:
		return ingest.ParseAggregateExport(wb, snapshotDate), nil
	default:
		if strings.EqualFold(filepath.Ext(filename), ".csv") {
			return &ingest.ParsedExport{
				Warnings: []string{"CSV 导出不含可解析的工作表，已跳过"},
			}, nil
		}
		parsed := ingest.ParseAggregateExport(wb, snapshotDate)
		parsed.Warnings = append(parsed.Warnings, "无法识别的导出格式，已按内容尽力解析")
		return parsed, nil
	}
}
