package history

import (
	"fmt"
	"math/rand"
	"testing"
)

// counterAction 创建一个对 counter 加 delta 的可逆操作
func counterAction(counter *int, delta int) *Action {
	return NewAction(fmt.Sprintf("add %d", delta),
		func() { *counter += delta },
		func() { *counter -= delta },
	)
}

// assertAppliedRange 验证 [0, cursor] 已应用、其余未应用
func assertAppliedRange(t *testing.T, h *History) {
	t.Helper()
	for i := 0; i < h.Len(); i++ {
		want := i <= h.Cursor()
		if got := h.At(i).Applied(); got != want {
			t.Fatalf("action %d applied: got %v, want %v (cursor=%d, len=%d)", i, got, want, h.Cursor(), h.Len())
		}
	}
}

// TestActionGuards 测试 Apply / Revert 的幂等保护
func TestActionGuards(t *testing.T) {
	counter := 0
	a := counterAction(&counter, 3)

	a.Revert() // 未应用时撤销为空操作
	if counter != 0 || a.Applied() {
		t.Fatalf("Revert before Apply changed state: counter=%d applied=%v", counter, a.Applied())
	}

	a.Apply()
	a.Apply()
	if counter != 3 {
		t.Errorf("double Apply: counter got %d, want 3", counter)
	}

	a.Revert()
	a.Revert()
	if counter != 0 {
		t.Errorf("double Revert: counter got %d, want 0", counter)
	}
}

// TestActionRoundTrip 测试 apply 后 revert 恢复原状态
func TestActionRoundTrip(t *testing.T) {
	state := map[string]int{"x": 1}
	prev := state["x"]
	a := NewAction("set x",
		func() { state["x"] = 42 },
		func() { state["x"] = prev },
	)
	a.Apply()
	a.Revert()
	if state["x"] != 1 {
		t.Errorf("round trip: got %d, want 1", state["x"])
	}
}

// TestActionNilEffects 测试 nil 效果函数视为空操作
func TestActionNilEffects(t *testing.T) {
	a := NewAction("noop", nil, nil)
	a.Apply()
	if !a.Applied() {
		t.Error("Applied() should be true after Apply with nil effect")
	}
	a.Revert()
	if a.Applied() {
		t.Error("Applied() should be false after Revert with nil effect")
	}
	if a.Label() != "noop" {
		t.Errorf("Label: got %q, want %q", a.Label(), "noop")
	}
}

// TestNewHistoryDefaults 测试默认容量与初始状态
func TestNewHistoryDefaults(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		want     int
	}{
		{name: "零容量使用默认值", capacity: 0, want: DefaultCapacity},
		{name: "负容量使用默认值", capacity: -5, want: DefaultCapacity},
		{name: "自定义容量", capacity: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.capacity)
			if h.Capacity() != tt.want {
				t.Errorf("Capacity: got %d, want %d", h.Capacity(), tt.want)
			}
			if h.Cursor() != -1 || h.Len() != 0 {
				t.Errorf("initial state: cursor=%d len=%d, want -1/0", h.Cursor(), h.Len())
			}
		})
	}
}

// TestPushUndoRedo 测试基本的 push / undo / redo 流程
func TestPushUndoRedo(t *testing.T) {
	h := NewHistory(0)
	counter := 0

	h.Push(counterAction(&counter, 1))
	h.Push(counterAction(&counter, 10))
	if counter != 11 || h.Cursor() != 1 {
		t.Fatalf("after 2 pushes: counter=%d cursor=%d", counter, h.Cursor())
	}

	h.Undo()
	if counter != 1 || h.Cursor() != 0 {
		t.Errorf("after undo: counter=%d cursor=%d, want 1/0", counter, h.Cursor())
	}

	h.Redo()
	if counter != 11 || h.Cursor() != 1 {
		t.Errorf("after redo: counter=%d cursor=%d, want 11/1", counter, h.Cursor())
	}
	assertAppliedRange(t, h)
}

// TestPushAlreadyApplied 测试 Push 不会重复应用已应用的操作
func TestPushAlreadyApplied(t *testing.T) {
	h := NewHistory(0)
	counter := 0
	a := counterAction(&counter, 5)
	a.Apply()

	h.Push(a)
	if counter != 5 {
		t.Errorf("counter: got %d, want 5", counter)
	}

	h.Push(nil) // nil 被忽略
	if h.Len() != 1 {
		t.Errorf("Len after Push(nil): got %d, want 1", h.Len())
	}
}

// TestDo 测试 Do 便捷方法
func TestDo(t *testing.T) {
	h := NewHistory(0)
	counter := 0
	a := h.Do("inc", func() { counter++ }, func() { counter-- })

	if counter != 1 || !a.Applied() || h.At(0) != a {
		t.Fatalf("Do: counter=%d applied=%v", counter, a.Applied())
	}
	h.Undo()
	if counter != 0 {
		t.Errorf("undo after Do: got %d, want 0", counter)
	}
}

// TestNoOpsFireNoEvents 测试空操作不改变状态也不触发事件
func TestNoOpsFireNoEvents(t *testing.T) {
	h := NewHistory(0)
	fired := 0
	for _, k := range []EventKind{EventPush, EventUndo, EventRedo, EventClear, EventMoveCursor, EventChange} {
		h.On(k, func(Event) { fired++ })
	}

	h.Undo()
	h.Redo()
	h.MoveCursor(0)
	h.Clear()
	if fired != 0 {
		t.Fatalf("empty history no-ops fired %d events", fired)
	}

	counter := 0
	h.Push(counterAction(&counter, 1))
	fired = 0

	h.Redo()          // 游标已在末尾
	h.MoveCursor(5)   // 越界
	h.MoveCursor(-1)  // 越界
	h.MoveCursor(0)   // 已在目标位置
	if fired != 0 {
		t.Errorf("no-ops fired %d events", fired)
	}
	if counter != 1 || h.Cursor() != 0 || h.Len() != 1 {
		t.Errorf("state changed by no-ops: counter=%d cursor=%d len=%d", counter, h.Cursor(), h.Len())
	}

	h.Undo()
	fired = 0
	h.Undo() // 游标为 -1
	if fired != 0 {
		t.Errorf("undo at -1 fired %d events", fired)
	}
}

// TestRedoBranchDestroyed 测试撤销后 push 会丢弃重做分支
func TestRedoBranchDestroyed(t *testing.T) {
	h := NewHistory(0)
	counter := 0

	h.Push(counterAction(&counter, 1))
	h.Push(counterAction(&counter, 2))
	h.Push(counterAction(&counter, 4))
	h.Undo()
	h.Undo()

	h.Push(counterAction(&counter, 100))
	if h.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", h.Len())
	}
	if h.CanRedo() {
		t.Error("CanRedo should be false after push")
	}

	h.Redo()
	if counter != 101 || h.Cursor() != 1 {
		t.Errorf("redo after branch discard: counter=%d cursor=%d, want 101/1", counter, h.Cursor())
	}
}

// TestCapacityEviction 测试超出容量时逐出最旧的操作
func TestCapacityEviction(t *testing.T) {
	const capacity = 3
	h := NewHistory(capacity)
	counter := 0
	first := counterAction(&counter, 1)

	h.Push(first)
	for i := 1; i <= capacity; i++ {
		h.Push(counterAction(&counter, 10*i))
	}

	if h.Len() != capacity {
		t.Fatalf("Len: got %d, want %d", h.Len(), capacity)
	}
	if h.Cursor() != capacity-1 {
		t.Errorf("Cursor: got %d, want %d", h.Cursor(), capacity-1)
	}
	for i := 0; i < h.Len(); i++ {
		if h.At(i) == first {
			t.Fatal("oldest action should have been evicted")
		}
	}

	// 全部撤销后，被逐出的操作效果仍然保留
	for h.CanUndo() {
		h.Undo()
	}
	if counter != 1 || !first.Applied() {
		t.Errorf("evicted effect: counter=%d applied=%v, want 1/true", counter, first.Applied())
	}
}

// TestCapacityWithRedoBranch 测试日志已满但存在重做分支时不会误逐出
func TestCapacityWithRedoBranch(t *testing.T) {
	h := NewHistory(2)
	counter := 0

	h.Push(counterAction(&counter, 1))
	h.Push(counterAction(&counter, 2))
	h.Undo()
	h.Undo()
	h.Push(counterAction(&counter, 4))

	if h.Len() != 1 || h.Cursor() != 0 {
		t.Errorf("len=%d cursor=%d, want 1/0", h.Len(), h.Cursor())
	}
	if counter != 4 {
		t.Errorf("counter: got %d, want 4", counter)
	}
}

// TestMoveCursor 测试跳转游标等价于多次 undo/redo
func TestMoveCursor(t *testing.T) {
	h := NewHistory(0)
	var order []string
	for i := 0; i < 5; i++ {
		i := i
		h.Push(NewAction(fmt.Sprintf("a%d", i),
			func() { order = append(order, fmt.Sprintf("+%d", i)) },
			func() { order = append(order, fmt.Sprintf("-%d", i)) },
		))
	}
	order = nil

	h.MoveCursor(1)
	want := []string{"-4", "-3", "-2"}
	if fmt.Sprint(order) != fmt.Sprint(want) {
		t.Errorf("undo order: got %v, want %v", order, want)
	}
	assertAppliedRange(t, h)

	order = nil
	h.MoveCursor(3)
	want = []string{"+2", "+3"}
	if fmt.Sprint(order) != fmt.Sprint(want) {
		t.Errorf("redo order: got %v, want %v", order, want)
	}
	if h.Cursor() != 3 {
		t.Errorf("Cursor: got %d, want 3", h.Cursor())
	}
}

// TestMoveCursorEvents 测试跳转过程中的事件序列
func TestMoveCursorEvents(t *testing.T) {
	h := NewHistory(0)
	counter := 0
	for i := 0; i < 3; i++ {
		h.Push(counterAction(&counter, 1))
	}

	var kinds []EventKind
	for _, k := range []EventKind{EventUndo, EventRedo, EventMoveCursor} {
		h.On(k, func(e Event) { kinds = append(kinds, e.Kind) })
	}
	changes := 0
	h.On(EventChange, func(Event) { changes++ })

	h.MoveCursor(0)
	want := []EventKind{EventUndo, EventUndo, EventMoveCursor}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Errorf("events: got %v, want %v", kinds, want)
	}
	if changes != 2 {
		t.Errorf("change events: got %d, want 2", changes)
	}
}

// TestClear 测试清空不撤销已应用操作
func TestClear(t *testing.T) {
	h := NewHistory(0)
	counter := 0
	h.Push(counterAction(&counter, 7))

	var got []EventKind
	h.On(EventClear, func(e Event) { got = append(got, e.Kind) })
	h.On(EventChange, func(e Event) { got = append(got, e.Kind) })

	h.Clear()
	if h.Len() != 0 || h.Cursor() != -1 {
		t.Errorf("after Clear: len=%d cursor=%d", h.Len(), h.Cursor())
	}
	if counter != 7 {
		t.Errorf("Clear should not revert: counter=%d", counter)
	}
	if len(got) != 2 || got[0] != EventClear || got[1] != EventChange {
		t.Errorf("events: got %v", got)
	}
	h.Undo()
	if counter != 7 {
		t.Errorf("undo after Clear changed counter to %d", counter)
	}
}

// TestEventPayload 测试事件载荷中的游标与长度
func TestEventPayload(t *testing.T) {
	h := NewHistory(0)
	var last Event
	h.On(EventChange, func(e Event) { last = e })

	counter := 0
	a := counterAction(&counter, 1)
	h.Push(a)
	if last.Action != a || last.Cursor != 0 || last.Len != 1 {
		t.Errorf("push payload: %+v", last)
	}
	h.Undo()
	if last.Cursor != -1 || last.Len != 1 {
		t.Errorf("undo payload: %+v", last)
	}
}

// TestLabels 测试 Labels 与 At 越界
func TestLabels(t *testing.T) {
	h := NewHistory(0)
	h.Do("place", nil, nil)
	h.Do("move", nil, nil)

	labels := h.Labels()
	if len(labels) != 2 || labels[0] != "place" || labels[1] != "move" {
		t.Errorf("Labels: got %v", labels)
	}
	if h.At(-1) != nil || h.At(2) != nil {
		t.Error("At out of range should return nil")
	}
}

// TestRandomSequenceInvariant 随机操作序列下验证已应用区间不变量，
// 并与朴素模型（逐步 undo/redo）对比 MoveCursor 的最终状态
func TestRandomSequenceInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	h := NewHistory(8)
	counter := 0

	for step := 0; step < 500; step++ {
		switch rng.Intn(4) {
		case 0:
			h.Push(counterAction(&counter, rng.Intn(9)+1))
		case 1:
			h.Undo()
		case 2:
			h.Redo()
		case 3:
			if h.Len() > 0 {
				h.MoveCursor(rng.Intn(h.Len()))
			}
		}
		assertAppliedRange(t, h)
		if h.Len() > h.Capacity() {
			t.Fatalf("step %d: len %d exceeds capacity", step, h.Len())
		}
	}
}

// TestMoveCursorEquivalence 测试 MoveCursor 与手动 undo/redo 结果一致
func TestMoveCursorEquivalence(t *testing.T) {
	for start := 0; start < 4; start++ {
		for target := 0; target < 4; target++ {
			a, b := NewHistory(0), NewHistory(0)
			ca, cb := 0, 0
			for i := 0; i < 4; i++ {
				a.Push(counterAction(&ca, 1<<i))
				b.Push(counterAction(&cb, 1<<i))
			}
			a.MoveCursor(start)
			b.MoveCursor(start)

			a.MoveCursor(target)
			for b.Cursor() > target {
				b.Undo()
			}
			for b.Cursor() < target {
				b.Redo()
			}

			if ca != cb || a.Cursor() != b.Cursor() {
				t.Errorf("start=%d target=%d: MoveCursor state (%d,%d) != manual (%d,%d)",
					start, target, ca, a.Cursor(), cb, b.Cursor())
			}
		}
	}
}
