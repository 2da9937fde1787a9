// Package mapdata 定义方块地图的持久化格式
//
// 一张地图是扁平的记录列表，每个已放置的方块一条 {name, position}。
// JSON 文件格式与网页版导出的 block-map-data.json 兼容：
//
//	[{"name":"block-...","position":[0,0,0]}]
//
// 自动存档使用 YAML 并通过 gdata 写入平台存储目录。
package mapdata

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidRecord 单条记录格式错误（例如 position 不是三个数）
	ErrInvalidRecord = errors.New("invalid record")
	// ErrInvalidMap 地图未通过校验
	ErrInvalidMap = errors.New("invalid map")
)

// Record 一个方块的存档记录
type Record struct {
	Name     string     `json:"name" yaml:"name"`
	Position [3]float64 `json:"position" yaml:"position,flow"`
}

// rawRecord 解码用的中间结构，用于检查 position 长度
type rawRecord struct {
	Name     string    `json:"name" yaml:"name"`
	Position []float64 `json:"position" yaml:"position"`
}

func (r rawRecord) record(index int) (Record, error) {
	if len(r.Position) != 3 {
		return Record{}, fmt.Errorf("record %d (%q): position has %d components: %w",
			index, r.Name, len(r.Position), ErrInvalidRecord)
	}
	return Record{Name: r.Name, Position: [3]float64{r.Position[0], r.Position[1], r.Position[2]}}, nil
}

func fromRaw(raws []rawRecord) ([]Record, error) {
	records := make([]Record, 0, len(raws))
	for i, raw := range raws {
		rec, err := raw.record(i)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// ValidationError 汇总地图中的所有问题
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d problem(s): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// Unwrap 使 errors.Is(err, ErrInvalidMap) 成立
func (e *ValidationError) Unwrap() error {
	return ErrInvalidMap
}

// Validate 检查地图：名称非空且唯一、坐标为有限整数、同一位置只有一个方块
//
// 没有问题时返回 nil，否则返回 *ValidationError。
func Validate(records []Record) error {
	var problems []string
	names := make(map[string]int, len(records))
	positions := make(map[[3]float64]int, len(records))

	for i, r := range records {
		if r.Name == "" {
			problems = append(problems, fmt.Sprintf("record %d: empty name", i))
		} else if j, dup := names[r.Name]; dup {
			problems = append(problems, fmt.Sprintf("record %d: duplicate name %q (first at %d)", i, r.Name, j))
		} else {
			names[r.Name] = i
		}

		integral := true
		for _, c := range r.Position {
			if math.IsNaN(c) || math.IsInf(c, 0) || c != math.Trunc(c) {
				integral = false
				break
			}
		}
		if !integral {
			problems = append(problems, fmt.Sprintf("record %d: position %v is not on the grid", i, r.Position))
			continue
		}

		if j, dup := positions[r.Position]; dup {
			problems = append(problems, fmt.Sprintf("record %d: position %v already occupied by record %d", i, r.Position, j))
		} else {
			positions[r.Position] = i
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// Bounds 返回所有方块坐标的最小值与最大值；空地图 ok 为 false
func Bounds(records []Record) (lo, hi [3]float64, ok bool) {
	if len(records) == 0 {
		return lo, hi, false
	}
	lo, hi = records[0].Position, records[0].Position
	for _, r := range records[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], r.Position[i])
			hi[i] = math.Max(hi[i], r.Position[i])
		}
	}
	return lo, hi, true
}
