package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/rushteam/outfit/core"
)

// RequiredColumns 是衣橱数据必须包含的列。
var RequiredColumns = []string{"name", "type", "color", "purpose", "temp_min", "temp_max", "image"}

// record 是一行原始数据，列名 -> 文本值。
type record map[string]string

func loadErr(format string, args ...any) error {
	return core.NewDomainError(core.ModuleCatalog, core.ErrorCodeLoad, "catalog: "+fmt.Sprintf(format, args...))
}

// parseRecords 将原始数据解析为记录列表并检查必需列。
func parseRecords(data []byte, format Format) ([]record, error) {
	switch format {
	case FormatCSV:
		return parseCSV(data)
	case FormatJSON:
		var rows []map[string]any
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeLoad, "catalog: parse json", err)
		}
		return fromMaps(rows)
	case FormatYAML:
		var rows []map[string]any
		if err := yaml.Unmarshal(data, &rows); err != nil {
			return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeLoad, "catalog: parse yaml", err)
		}
		return fromMaps(rows)
	default:
		return nil, loadErr("unsupported format %q", format)
	}
}

func parseCSV(data []byte) ([]record, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, loadErr("empty csv, missing columns %v", RequiredColumns)
	}
	if err != nil {
		return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeLoad, "catalog: parse csv header", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, loadErr("missing columns %v", missing)
	}

	var out []record
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeLoad,
				fmt.Sprintf("catalog: parse csv line %d", line), err)
		}
		rec := make(record, len(header))
		for i, col := range header {
			rec[col] = row[i]
		}
		out = append(out, rec)
	}
	return out, nil
}

func fromMaps(rows []map[string]any) ([]record, error) {
	out := make([]record, 0, len(rows))
	for i, row := range rows {
		keys := make([]string, 0, len(row))
		rec := make(record, len(row))
		for k, v := range row {
			col := strings.ToLower(strings.TrimSpace(k))
			keys = append(keys, col)
			rec[col] = scalarString(v)
		}
		if missing := missingColumns(keys); len(missing) > 0 {
			return nil, loadErr("row %d: missing columns %v", i+1, missing)
		}
		out = append(out, rec)
	}
	return out, nil
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprint(val)
	}
}

func missingColumns(cols []string) []string {
	have := make(map[string]bool, len(cols))
	for _, c := range cols {
		have[c] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// toItem 将一条记录转换为衣物，row 从 1 开始计数。
func toItem(row int, rec record) (core.ClothingItem, error) {
	it, err := normalizeItem(row, core.ClothingItem{
		Name:    rec["name"],
		Type:    core.Category(rec["type"]),
		Color:   rec["color"],
		Purpose: core.Purpose(rec["purpose"]),
		Image:   rec["image"],
	})
	if err != nil {
		return core.ClothingItem{}, err
	}

	if it.TempMin, err = parseTemp(rec["temp_min"]); err != nil {
		return core.ClothingItem{}, loadErr("row %d (%s): temp_min: %v", row, it.Name, err)
	}
	if it.TempMax, err = parseTemp(rec["temp_max"]); err != nil {
		return core.ClothingItem{}, loadErr("row %d (%s): temp_max: %v", row, it.Name, err)
	}
	return it, nil
}

// normalizeItem 去除字符串字段首尾空白，type / purpose / color 统一为小写，
// 并校验 name、color 非空以及 type、purpose 的取值。温度字段原样保留。
func normalizeItem(row int, it core.ClothingItem) (core.ClothingItem, error) {
	it.Name = strings.TrimSpace(it.Name)
	if it.Name == "" {
		return core.ClothingItem{}, loadErr("row %d: empty name", row)
	}

	typ, err := core.ParseCategory(strings.ToLower(strings.TrimSpace(string(it.Type))))
	if err != nil {
		return core.ClothingItem{}, fmt.Errorf("row %d: %w", row, err)
	}
	purpose, err := core.ParsePurpose(strings.ToLower(strings.TrimSpace(string(it.Purpose))))
	if err != nil {
		return core.ClothingItem{}, fmt.Errorf("row %d: %w", row, err)
	}
	it.Type, it.Purpose = typ, purpose

	it.Color = strings.ToLower(strings.TrimSpace(it.Color))
	if it.Color == "" {
		return core.ClothingItem{}, loadErr("row %d (%s): empty color", row, it.Name)
	}
	it.Image = strings.TrimSpace(it.Image)
	return it, nil
}

func parseTemp(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}
