package history

import (
	"github.com/decker502/blockmap/pkg/event"
)

// DefaultCapacity 默认最多保留的操作数量
const DefaultCapacity = 1000

// EventKind 历史事件类型
type EventKind int

const (
	// EventPush 新操作入栈
	EventPush EventKind = iota
	// EventUndo 撤销了一个操作
	EventUndo
	// EventRedo 重做了一个操作
	EventRedo
	// EventClear 日志被清空
	EventClear
	// EventMoveCursor 游标跳转完成
	EventMoveCursor
	// EventChange 任意一次改变了状态的操作之后触发
	EventChange
)

// Event 历史事件载荷
type Event struct {
	Kind   EventKind
	Action *Action // 涉及的操作（Clear / MoveCursor / Change 时可能为 nil）
	Cursor int     // 事件发生后的游标
	Len    int     // 事件发生后的日志长度
}

// History 有界的可逆操作日志
//
// 不变量：
//   - actions[0..cursor] 全部已应用，actions[cursor+1..] 全部未应用
//   - len(actions) <= capacity
//
// History 不做任何合法性校验（例如占位检查），调用方必须在构造 Action 之前完成。
type History struct {
	actions  []*Action
	cursor   int
	capacity int
	events   event.Dispatcher[EventKind, Event]
}

// NewHistory 创建历史记录
//
// capacity <= 0 时使用 DefaultCapacity。
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{
		actions:  make([]*Action, 0),
		cursor:   -1,
		capacity: capacity,
	}
}

// On 订阅历史事件（用于 UI 刷新等）
func (h *History) On(kind EventKind, fn func(Event)) event.Handle {
	return h.events.On(kind, fn)
}

// Push 应用并记录一个操作
//
// 游标之后的重做分支会被丢弃。超出容量时最旧的操作被逐出：
// 它的效果保持已应用，且之后无法再通过历史撤销。
func (h *History) Push(action *Action) {
	if action == nil {
		return
	}
	action.Apply()

	// 丢弃重做分支
	for i := h.cursor + 1; i < len(h.actions); i++ {
		h.actions[i] = nil
	}
	h.actions = h.actions[:h.cursor+1]

	h.actions = append(h.actions, action)
	h.cursor = len(h.actions) - 1

	if len(h.actions) > h.capacity {
		h.actions[0] = nil
		h.actions = h.actions[1:]
		h.cursor--
	}

	h.emit(EventPush, action)
}

// Do 创建操作并 Push，返回创建的操作
func (h *History) Do(label string, apply, revert func()) *Action {
	action := NewAction(label, apply, revert)
	h.Push(action)
	return action
}

// Undo 撤销游标处的操作；没有可撤销的操作时为空操作
func (h *History) Undo() {
	if h.cursor < 0 {
		return
	}
	action := h.actions[h.cursor]
	action.Revert()
	h.cursor--
	h.emit(EventUndo, action)
}

// Redo 重做游标之后的操作；没有重做分支时为空操作
func (h *History) Redo() {
	if h.cursor+1 >= len(h.actions) {
		return
	}
	h.cursor++
	action := h.actions[h.cursor]
	action.Apply()
	h.emit(EventRedo, action)
}

// MoveCursor 将游标移动到 target
//
// target 不在 [0, Len()) 内时为空操作。否则逐步调用 Undo / Redo，
// 保证中间每个操作的 apply/revert 都按顺序执行。
func (h *History) MoveCursor(target int) {
	if target < 0 || target >= len(h.actions) || target == h.cursor {
		return
	}
	for h.cursor > target {
		h.Undo()
	}
	for h.cursor < target {
		h.Redo()
	}
	h.events.Emit(EventMoveCursor, h.snapshot(EventMoveCursor, nil))
}

// Clear 清空日志并将游标重置为 -1
//
// 不会撤销已应用操作的效果，调用方需确保此时清空是安全的（例如放弃整个场景）。
func (h *History) Clear() {
	if len(h.actions) == 0 && h.cursor == -1 {
		return
	}
	for i := range h.actions {
		h.actions[i] = nil
	}
	h.actions = h.actions[:0]
	h.cursor = -1
	h.emit(EventClear, nil)
}

// Cursor 返回最后一个已应用操作的下标，-1 表示没有
func (h *History) Cursor() int {
	return h.cursor
}

// Len 返回日志中的操作数量
func (h *History) Len() int {
	return len(h.actions)
}

// Capacity 返回日志容量
func (h *History) Capacity() int {
	return h.capacity
}

// At 返回下标 i 处的操作，越界返回 nil
func (h *History) At(i int) *Action {
	if i < 0 || i >= len(h.actions) {
		return nil
	}
	return h.actions[i]
}

// Labels 返回所有操作的描述（按日志顺序）
func (h *History) Labels() []string {
	labels := make([]string, len(h.actions))
	for i, a := range h.actions {
		labels[i] = a.Label()
	}
	return labels
}

// CanUndo 是否存在可撤销的操作
func (h *History) CanUndo() bool {
	return h.cursor >= 0
}

// CanRedo 是否存在重做分支
func (h *History) CanRedo() bool {
	return h.cursor+1 < len(h.actions)
}

// emit 先发具体事件，再发通用 Change 事件
func (h *History) emit(kind EventKind, action *Action) {
	h.events.Emit(kind, h.snapshot(kind, action))
	h.events.Emit(EventChange, h.snapshot(EventChange, action))
}

func (h *History) snapshot(kind EventKind, action *Action) Event {
	return Event{
		Kind:   kind,
		Action: action,
		Cursor: h.cursor,
		Len:    len(h.actions),
	}
}
