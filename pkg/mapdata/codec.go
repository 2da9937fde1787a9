package mapdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat 无法根据扩展名判断文件格式
var ErrUnknownFormat = errors.New("unknown map file format")

// Format 地图文件格式
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatOf 根据扩展名判断格式（.json / .yaml / .yml）
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Encode 以紧凑 JSON 数组写出记录
func Encode(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	if err := json.NewEncoder(w).Encode(records); err != nil {
		return fmt.Errorf("failed to encode map: %w", err)
	}
	return nil
}

// Decode 读取 JSON 数组
func Decode(r io.Reader) ([]Record, error) {
	var raws []rawRecord
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("failed to decode map: %w", err)
	}
	return fromRaw(raws)
}

// EncodeYAML 以 YAML 写出记录
func EncodeYAML(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode map: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode map: %w", err)
	}
	return nil
}

// DecodeYAML 读取 YAML 列表；空文档视为空地图
func DecodeYAML(r io.Reader) ([]Record, error) {
	var raws []rawRecord
	if err := yaml.NewDecoder(r).Decode(&raws); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode map: %w", err)
	}
	return fromRaw(raws)
}

// ReadFile 按扩展名读取地图文件
func ReadFile(path string) ([]Record, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file: %w", err)
	}
	defer f.Close()

	if format == FormatYAML {
		return DecodeYAML(f)
	}
	return Decode(f)
}

// WriteFile 按扩展名写出地图文件
func WriteFile(path string, records []Record) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create map file: %w", err)
	}

	if format == FormatYAML {
		err = EncodeYAML(f, records)
	} else {
		err = Encode(f, records)
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close map file: %w", cerr)
	}
	return err
}
