package editor

import (
	"log"

	"github.com/decker502/blockmap/pkg/history"
	"github.com/decker502/blockmap/pkg/mapdata"
	"github.com/decker502/blockmap/pkg/world"
	"github.com/go-gl/mathgl/mgl64"
)

// Records 导出当前场景中所有方块
func (e *Editor) Records() []mapdata.Record {
	blocks := e.Blocks()
	records := make([]mapdata.Record, 0, len(blocks))
	for _, b := range blocks {
		records = append(records, mapdata.Record{
			Name:     b.Node().Name,
			Position: b.Node().Position,
		})
	}
	return records
}

// LoadRecords 用存档替换当前地图
//
// 现有方块被移除、历史被清空，载入本身不记录到历史中。
// 与已载入方块位置重复的记录被跳过。返回实际载入的方块数。
func (e *Editor) LoadRecords(records []mapdata.Record) int {
	e.Unselect()
	for _, b := range e.Blocks() {
		b.Unbind()
	}
	e.history.Clear()
	e.blocks = make(map[*world.TracedObject]struct{})
	e.refs = make(map[*history.Action][]*world.TracedObject)

	loaded := 0
	for _, r := range records {
		pos := mgl64.Vec3(r.Position)
		if _, occupied := e.BlockAt(pos); occupied {
			log.Printf("[Editor] Skipping %q: %v is occupied", r.Name, pos)
			continue
		}
		block := e.newBlock(pos)
		if r.Name != "" {
			block.Node().Name = r.Name
		}
		block.Bind(e.world)
		loaded++
	}

	log.Printf("[Editor] Loaded %d/%d blocks", loaded, len(records))
	return loaded
}
