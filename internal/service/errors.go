package service

import (
	"errors"
	"fmt"
	"time"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrFileMissing        = errors.New("文件不存在")
	ErrFileEmpty          = errors.New("文件为空")
	ErrFileTooLarge       = errors.New("文件超过大小限制")
	ErrFileNotSupported   = errors.New("不支持的文件类型")
	ErrWorkbookCorrupt    = errors.New("工作簿无法解析")
	ErrExportInvalid      = errors.New("导出内容缺少必需字段")
	ErrPostNotFound       = errors.New("帖子不存在")
	ErrDraftNotFound      = errors.New("草稿不存在")
	ErrUploadNotFound     = errors.New("导入记录不存在")
	ErrNotAuthorized      = errors.New("尚未完成授权")
	ErrTokenExpired       = errors.New("授权已过期，请重新授权")
	ErrStateInvalid       = errors.New("授权回调 state 无效")
	ErrDuplicatePublish   = errors.New("重复发布")
	ErrNothingToPublish   = errors.New("发布内容为空")
	ErrNoAnalyticsData    = errors.New("暂无分析数据")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:     BadRequest,
	ErrFileMissing:      BadRequest,
	ErrFileEmpty:        BadRequest,
	ErrFileTooLarge:     BadRequest,
	ErrFileNotSupported: BadRequest,
	ErrWorkbookCorrupt:  BadRequest,
	ErrExportInvalid:    BadRequest,
	ErrPostNotFound:     NotFound,
	ErrDraftNotFound:    NotFound,
	ErrUploadNotFound:   NotFound,
	ErrNotAuthorized:    Unauthorized,
	ErrTokenExpired:     Unauthorized,
	ErrStateInvalid:     Unauthorized,
	ErrDuplicatePublish: Conflict,
	ErrNothingToPublish: BadRequest,
	ErrNoAnalyticsData:  NotFound,
	UnExpectedError:     InternalServerError,
}

// DuplicateFileError 同内容文件已导入过，携带首次导入的信息供前端提示
type DuplicateFileError struct {
	FileHash     string
	Filename     string
	UploadedAt   time.Time
	UploadID     uint64
}

func (e *DuplicateFileError) Error() string {
	return fmt.Sprintf("文件已于 %s 导入过（%s）", e.UploadedAt.Format("2006-01-02 15:04"), e.Filename)
}
