package service

import (
	"Beacon/internal/api/config"
	"Beacon/internal/ingest"
	"Beacon/internal/model"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeUploadRepo struct {
	byHash map[string]*model.Upload
}

func (f *fakeUploadRepo) FindByHash(_ context.Context, hash string) (*model.Upload, error) {
	return f.byHash[hash], nil
}

func (f *fakeUploadRepo) Create(_ context.Context, u *model.Upload) error {
	if f.byHash == nil {
		f.byHash = make(map[string]*model.Upload)
	}
	f.byHash[u.FileHash] = u
	return nil
}

func (f *fakeUploadRepo) ListRecent(_ context.Context, _ int) ([]*model.Upload, error) {
	out := make([]*model.Upload, 0, len(f.byHash))
	for _, u := range f.byHash {
		out = append(out, u)
	}
	return out, nil
}

func withTestConfig(t *testing.T) {
	t.Helper()
	prev := config.Cfg
	config.Cfg = &config.Config{}
	t.Cleanup(func() { config.Cfg = prev })
}

func TestImportFileRejectsMissingFile(t *testing.T) {
	withTestConfig(t)
	svc := NewImportService(nil, &fakeUploadRepo{})

	if _, err := svc.ImportFile(context.Background(), "", nil, 0); !errors.Is(err, ErrFileMissing) {
		t.Errorf("err = %v", err)
	}
}

func TestImportFileRejectsEmptyFile(t *testing.T) {
	withTestConfig(t)
	svc := NewImportService(nil, &fakeUploadRepo{})

	_, err := svc.ImportFile(context.Background(), "export.xlsx", strings.NewReader(""), 0)
	if !errors.Is(err, ErrFileEmpty) {
		t.Errorf("err = %v", err)
	}
}

func TestImportFileRejectsUnsupportedExtension(t *testing.T) {
	withTestConfig(t)
	svc := NewImportService(nil, &fakeUploadRepo{})

	_, err := svc.ImportFile(context.Background(), "export.pdf", strings.NewReader("data"), 4)
	if !errors.Is(err, ErrFileNotSupported) {
		t.Errorf("err = %v", err)
	}
}

func TestImportFileRejectsOversizedFile(t *testing.T) {
	withTestConfig(t)
	config.Cfg.Upload.MaxSizeMB = 1
	svc := NewImportService(nil, &fakeUploadRepo{})

	_, err := svc.ImportFile(context.Background(), "export.xlsx", strings.NewReader("x"), 2<<20)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("err = %v", err)
	}
}

func TestImportFileDetectsDuplicateByContentHash(t *testing.T) {
	withTestConfig(t)
	content := []byte("identical workbook bytes")
	// sha256 与 readAndHash 一致
	_, hash, err := readAndHash(bytes.NewReader(content), config.Cfg.MaxUploadBytes())
	if err != nil {
		t.Fatal(err)
	}
	uploadRepo := &fakeUploadRepo{byHash: map[string]*model.Upload{
		hash: {
			ID:         7,
			Filename:   "original.xlsx",
			FileHash:   hash,
			UploadDate: time.Date(2025, time.November, 1, 9, 30, 0, 0, time.UTC),
		},
	}}
	svc := NewImportService(nil, uploadRepo)

	// 文件名不同也要按内容哈希去重
	_, err = svc.ImportFile(context.Background(), "renamed.xlsx", bytes.NewReader(content), int64(len(content)))
	var dup *DuplicateFileError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v", err)
	}
	if dup.Filename != "original.xlsx" || dup.UploadID != 7 {
		t.Errorf("重复信息错误: %+v", dup)
	}
	if !strings.Contains(dup.Error(), "original.xlsx") {
		t.Errorf("错误信息应包含首次导入文件名: %s", dup.Error())
	}
}

func TestImportFileAcceptsContentDifferingByOneByte(t *testing.T) {
	withTestConfig(t)
	content := []byte("identical workbook bytes")
	_, hash, err := readAndHash(bytes.NewReader(content), config.Cfg.MaxUploadBytes())
	if err != nil {
		t.Fatal(err)
	}
	uploadRepo := &fakeUploadRepo{byHash: map[string]*model.Upload{
		hash: {ID: 7, Filename: "original.xlsx", FileHash: hash},
	}}
	svc := NewImportService(nil, uploadRepo)

	// 只差一个字节就不算重复，应越过去重闸门继续解析
	altered := append([]byte{}, content...)
	altered[0] ^= 0x01
	_, err = svc.ImportFile(context.Background(), "renamed.xlsx", bytes.NewReader(altered), int64(len(altered)))
	var dup *DuplicateFileError
	if errors.As(err, &dup) {
		t.Fatalf("不应判为重复: %v", err)
	}
	// 字节内容不是合法工作簿，卡在解析而非去重，说明闸门已放行
	if !errors.Is(err, ErrWorkbookCorrupt) {
		t.Errorf("err = %v", err)
	}
}

func TestParseByFormatEmitsCSVSpecificWarning(t *testing.T) {
	withTestConfig(t)
	svc := &importServiceImpl{}
	wb := &ingest.Workbook{Sheets: map[string]ingest.Grid{}}

	parsed, err := svc.parseByFormat(context.Background(), wb, ingest.FormatUnknown, "export.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.Posts) != 0 || len(parsed.DailyMetrics) != 0 {
		t.Errorf("CSV 应产出零条记录: %+v", parsed)
	}
	if len(parsed.Warnings) != 1 || !strings.Contains(parsed.Warnings[0], "CSV") {
		t.Errorf("应带 CSV 专属告警: %v", parsed.Warnings)
	}

	// 识别不出的 Excel 走尽力解析，补的是未知格式告警而非 CSV 告警
	parsed, err = svc.parseByFormat(context.Background(), wb, ingest.FormatUnknown, "export.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.Warnings) == 0 {
		t.Fatal("应带未知格式告警")
	}
	last := parsed.Warnings[len(parsed.Warnings)-1]
	if !strings.Contains(last, "无法识别") || strings.Contains(last, "CSV") {
		t.Errorf("Excel 的告警文案错误: %s", last)
	}
}

func TestReadAndHashIsStableAcrossReads(t *testing.T) {
	withTestConfig(t)
	content := []byte("the same bytes")
	_, h1, err := readAndHash(bytes.NewReader(content), 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	_, h2, err := readAndHash(bytes.NewReader(content), 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("同内容哈希不一致: %s vs %s", h1, h2)
	}
	if len(h1) != 64 {
		t.Errorf("哈希长度 = %d", len(h1))
	}
}
