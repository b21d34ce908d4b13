package handler

import (
	"Beacon/internal/pkg/response"
	"Beacon/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	importSvc service.ImportService
}

func NewUploadHandler(importSvc service.ImportService) *UploadHandler {
	return &UploadHandler{
		importSvc: importSvc,
	}
}

// Upload 上传单个导出文件
func (s *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrFileMissing)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	result, err := s.importSvc.ImportFile(c.Request.Context(), fileHeader.Filename, f, fileHeader.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UploadBatch 批量上传，单个文件失败不影响其余文件
func (s *UploadHandler) UploadBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, service.ErrFileMissing)
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		response.Error(c, service.ErrFileMissing)
		return
	}

	files := make([]service.BatchFile, 0, len(fileHeaders))
	closers := make([]func() error, 0, len(fileHeaders))
	defer func() {
		for _, close := range closers {
			_ = close()
		}
	}()
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			response.Error(c, err)
			return
		}
		closers = append(closers, f.Close)
		files = append(files, service.BatchFile{Filename: fh.Filename, Reader: f, Size: fh.Size})
	}

	result, err := s.importSvc.ImportBatch(c.Request.Context(), files)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// History 最近的导入记录
func (s *UploadHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	uploads, err := s.importSvc.ImportHistory(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, uploads)
}
