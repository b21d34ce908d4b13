package dto

// ImportResultDTO 单文件导入结果
type ImportResultDTO struct {
	UploadID        uint64   `json:"upload_id"`
	Filename        string   `json:"filename"`
	Format          string   `json:"format"`
	RecordsImported int      `json:"records_imported"`
	PostsCreated    int      `json:"posts_created"`
	PostsUpdated    int      `json:"posts_updated"`
	Warnings        []string `json:"warnings"`
}

// BatchImportResultDTO 批量导入结果，失败文件不阻断其余文件
type BatchImportResultDTO struct {
	Imported []*ImportResultDTO `json:"imported"`
	Skipped  []*SkippedFileDTO  `json:"skipped"`
}

// SkippedFileDTO 批量导入中被跳过的文件及原因
type SkippedFileDTO struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// UploadDTO 历史导入凭证
type UploadDTO struct {
	ID              uint64 `json:"id"`
	Filename        string `json:"filename"`
	FileHash        string `json:"file_hash"`
	UploadDate      string `json:"upload_date"`
	RecordsImported int    `json:"records_imported"`
	Status          string `json:"status"`
}
