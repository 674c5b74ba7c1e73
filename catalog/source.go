package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rushteam/outfit/core"
)

// Format 是衣橱数据的序列化格式。
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat 解析格式名称，支持 csv / json / yaml / yml。
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", core.NewDomainError(core.ModuleCatalog, core.ErrorCodeLoad,
			fmt.Sprintf("catalog: unsupported format %q", s))
	}
}

// Source 提供衣橱原始数据。
type Source interface {
	// Name 用于日志与错误信息
	Name() string

	// Read 返回原始数据及其格式
	Read(ctx context.Context) ([]byte, Format, error)
}

// FileSource 从本地文件读取，Format 为空时按扩展名推断。
type FileSource struct {
	Path   string
	Format Format
}

func (s *FileSource) Name() string { return "file:" + s.Path }

func (s *FileSource) Read(_ context.Context) ([]byte, Format, error) {
	format := s.Format
	if format == "" {
		f, err := ParseFormat(filepath.Ext(s.Path))
		if err != nil {
			return nil, "", err
		}
		format = f
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, "", core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeLoad,
			"catalog: read "+s.Path, err)
	}
	return data, format, nil
}

// StoreSource 从 core.Store 的单个 key 读取整份数据（Memory / Redis）。
type StoreSource struct {
	Store  core.Store
	Key    string
	Format Format // 默认 csv
}

func (s *StoreSource) Name() string {
	return s.Store.Name() + ":" + s.Key
}

func (s *StoreSource) Read(ctx context.Context) ([]byte, Format, error) {
	data, err := s.Store.Get(ctx, s.Key)
	if err != nil {
		return nil, "", core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeLoad,
			"catalog: read "+s.Name(), err)
	}
	format := s.Format
	if format == "" {
		format = FormatCSV
	}
	return data, format, nil
}

// BytesSource 直接使用内存中的数据，测试与嵌入式数据使用。
type BytesSource struct {
	Data   []byte
	Format Format
}

func (s *BytesSource) Name() string { return "bytes" }

func (s *BytesSource) Read(_ context.Context) ([]byte, Format, error) {
	return s.Data, s.Format, nil
}
