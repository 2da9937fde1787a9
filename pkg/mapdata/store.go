package mapdata

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sort"

	"github.com/decker502/blockmap/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// ErrSlotNotFound 存档槽不存在
var ErrSlotNotFound = errors.New("map slot not found")

// mapsObject 存档槽所在的 gdata 对象
const mapsObject = utils.StorageSubdir

// Store 地图存档槽
//
// 每个槽是 gdata 对象 "maps" 下的一个 YAML 属性，槽名即属性名。
// gdataManager 为 nil 时进入降级模式：存档只保存在内存里，进程退出即丢失。
type Store struct {
	gdataManager *gdata.Manager
	memory       map[string][]Record
}

// OpenStore 打开应用的平台存储目录并创建 Store
//
// 存储目录不可用时记录日志并返回降级模式的 Store，不会失败。
func OpenStore(appName string) *Store {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[MapStore] Warning: storage dir unavailable: %v", err)
		return NewStore(nil)
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[MapStore] Warning: failed to open gdata: %v", err)
		return NewStore(nil)
	}
	log.Printf("[MapStore] Opened storage for %s", appName)
	return NewStore(manager)
}

// NewStore 创建存档存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
func NewStore(gdataManager *gdata.Manager) *Store {
	if gdataManager == nil {
		log.Printf("[MapStore] Warning: gdata manager not available, saves are memory-only")
	}
	return &Store{
		gdataManager: gdataManager,
		memory:       make(map[string][]Record),
	}
}

// Persistent 是否真正写入磁盘
func (s *Store) Persistent() bool {
	return s.gdataManager != nil
}

// Save 写入存档槽（覆盖）
func (s *Store) Save(slot string, records []Record) error {
	if slot == "" {
		return fmt.Errorf("invalid slot name %q", slot)
	}
	if s.gdataManager == nil {
		s.memory[slot] = append([]Record(nil), records...)
		return nil
	}

	var buf bytes.Buffer
	if err := EncodeYAML(&buf, records); err != nil {
		return err
	}
	if err := s.gdataManager.SaveObjectProp(mapsObject, slot, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to save slot %q: %w", slot, err)
	}

	log.Printf("[MapStore] Saved %d blocks to slot %q", len(records), slot)
	return nil
}

// Load 读取存档槽；不存在时返回 ErrSlotNotFound
func (s *Store) Load(slot string) ([]Record, error) {
	if s.gdataManager == nil {
		records, ok := s.memory[slot]
		if !ok {
			return nil, fmt.Errorf("%q: %w", slot, ErrSlotNotFound)
		}
		return append([]Record(nil), records...), nil
	}

	if !s.gdataManager.ObjectPropExists(mapsObject, slot) {
		return nil, fmt.Errorf("%q: %w", slot, ErrSlotNotFound)
	}
	data, err := s.gdataManager.LoadObjectProp(mapsObject, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %q: %w", slot, err)
	}
	records, err := DecodeYAML(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("slot %q: %w", slot, err)
	}
	return records, nil
}

// Exists 存档槽是否存在
func (s *Store) Exists(slot string) bool {
	if s.gdataManager == nil {
		_, ok := s.memory[slot]
		return ok
	}
	return s.gdataManager.ObjectPropExists(mapsObject, slot)
}

// Delete 删除存档槽；不存在时为空操作
func (s *Store) Delete(slot string) error {
	if s.gdataManager == nil {
		delete(s.memory, slot)
		return nil
	}
	if !s.gdataManager.ObjectPropExists(mapsObject, slot) {
		return nil
	}
	if err := s.gdataManager.DeleteObjectProp(mapsObject, slot); err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", slot, err)
	}
	return nil
}

// List 返回所有存档槽名（已排序）
func (s *Store) List() ([]string, error) {
	var slots []string
	if s.gdataManager == nil {
		for name := range s.memory {
			slots = append(slots, name)
		}
	} else {
		var err error
		slots, err = s.gdataManager.ListObjectProps(mapsObject)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// 还没有保存过任何槽
			return nil, nil
		case err != nil:
			return nil, fmt.Errorf("failed to list slots: %w", err)
		}
	}
	sort.Strings(slots)
	return slots, nil
}
