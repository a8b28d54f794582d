package pipeline

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"itemgen/internal"
)

func ItemExportHeaders() []string {
	headers := []string{"id", "fixedId", "label"}
	for _, lang := range internal.Languages {
		headers = append(headers, strconv.Itoa(lang.Code)+"_"+lang.Column)
	}
	return headers
}

func ExportItemsToXLSX(items []internal.ParsedItem, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range ItemExportHeaders() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, item := range items {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, item.ID)
		set(2, item.FixedID)
		set(3, item.Label)
		for j, name := range item.Name {
			set(4+j, name)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func ExportItemsToYAML(items []internal.ParsedItem, outputPath string) error {
	if items == nil {
		items = []internal.ParsedItem{}
	}
	blob, err := yaml.Marshal(items)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, blob, 0o644)
}
