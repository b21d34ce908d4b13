package ingest

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Workbook 以规范化表名（去空白、大写）索引的网格集合
type Workbook struct {
	Sheets map[string]Grid
	Names  []string
}

// NormalizeSheetName 表名归一化，探测与取表统一走这里
func NormalizeSheetName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func (w *Workbook) Sheet(name string) (Grid, bool) {
	g, ok := w.Sheets[NormalizeSheetName(name)]
	return g, ok
}

func (w *Workbook) HasSheet(name string) bool {
	_, ok := w.Sheets[NormalizeSheetName(name)]
	return ok
}

// LoadWorkbook 读取 Excel 文件的全部表格。CSV 属于刻意的空操作路径，
// 返回零个表，由上层补告警
func LoadWorkbook(path string) (*Workbook, error) {
	wb := &Workbook{Sheets: make(map[string]Grid)}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return wb, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "打开工作簿失败: %s", filepath.Base(path))
	}
	defer func() { _ = f.Close() }()

	wb.fill(f)
	return wb, nil
}

// LoadWorkbookReader 从内存流读取工作簿，HTTP 上传走这里
func LoadWorkbookReader(r io.Reader, filename string) (*Workbook, error) {
	wb := &Workbook{Sheets: make(map[string]Grid)}

	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return wb, nil
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrapf(err, "打开工作簿失败: %s", filepath.Base(filename))
	}
	defer func() { _ = f.Close() }()

	wb.fill(f)
	return wb, nil
}

func (w *Workbook) fill(f *excelize.File) {
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			// 单表读取失败跳过，整簿失败已在 OpenFile 拦截
			continue
		}
		grid := make(Grid, 0, len(rows))
		for _, row := range rows {
			cells := make([]Cell, 0, len(row))
			for _, raw := range row {
				cells = append(cells, classifyCell(raw))
			}
			grid = append(grid, cells)
		}
		key := NormalizeSheetName(name)
		w.Sheets[key] = grid
		w.Names = append(w.Names, key)
	}
}
