package driver

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"emx/internal/diag"
	"emx/internal/source"
	"emx/internal/transpile"
)

// Row — одна строка логического файла: что конвертировать и как назвать.
type Row struct {
	Kind       transpile.Kind
	Name       string
	Expression string
	Labels     map[string]string // код языка → подпись
	Line       int               // 1-based, для диагностик
}

// LogicFile is a parsed *.emx survey logic file. The format is
// tab-separated with a header row: the columns kind, name and
// expression are required, any number of label:xx columns may follow.
type LogicFile struct {
	Path string
	Rows []Row
}

// ParseLogicFile разбирает содержимое логического файла. Ошибки формата
// уходят в bag; возвращается файл с теми строками, что разобрались.
func ParseLogicFile(path string, content []byte, bag *diag.Bag) *LogicFile {
	lf := &LogicFile{Path: path}

	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		addFileError(bag, diag.IOBadLogicFile, fmt.Sprintf("%s: %v", path, err))
		return lf
	}
	if len(records) == 0 {
		return lf
	}

	header := records[0]
	kindCol, nameCol, exprCol := -1, -1, -1
	labelCols := map[int]string{}
	for i, col := range header {
		col = strings.TrimSpace(col)
		switch {
		case col == "kind":
			kindCol = i
		case col == "name":
			nameCol = i
		case col == "expression":
			exprCol = i
		case strings.HasPrefix(col, "label:"):
			labelCols[i] = strings.TrimPrefix(col, "label:")
		}
	}
	if kindCol < 0 || nameCol < 0 || exprCol < 0 {
		addFileError(bag, diag.IOBadLogicFile,
			fmt.Sprintf("%s: header must contain kind, name and expression columns", path))
		return lf
	}

	for i, record := range records[1:] {
		line := i + 2
		if len(record) <= kindCol || len(record) <= nameCol || len(record) <= exprCol {
			addFileError(bag, diag.IOBadLogicFile,
				fmt.Sprintf("%s:%d: row has %d columns, expected at least %d",
					path, line, len(record), exprCol+1))
			continue
		}

		kind, ok := transpile.ParseKind(strings.TrimSpace(record[kindCol]))
		if !ok {
			addFileError(bag, diag.IOBadLogicFile,
				fmt.Sprintf("%s:%d: unknown kind %q", path, line, record[kindCol]))
			continue
		}

		row := Row{
			Kind:       kind,
			Name:       strings.TrimSpace(record[nameCol]),
			Expression: record[exprCol],
			Line:       line,
		}
		for col, lang := range labelCols {
			if col < len(record) && record[col] != "" {
				if row.Labels == nil {
					row.Labels = make(map[string]string, len(labelCols))
				}
				row.Labels[lang] = record[col]
			}
		}
		lf.Rows = append(lf.Rows, row)
	}
	return lf
}

func addFileError(bag *diag.Bag, code diag.Code, msg string) {
	if bag == nil {
		return
	}
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  msg,
		Primary:  source.Span{},
	})
}
