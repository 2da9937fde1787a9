// Package event 提供按事件类型分发的类型化发布/订阅
//
// 各组件（History、Viewport、TracedObject）用 Dispatcher 描述自己的事件表：
// K 是事件类型（通常是组件内定义的枚举），P 是该组件统一的事件载荷。
// 不使用反射，也没有字符串事件名。
package event

// handler 单个已注册的回调
type handler[P any] struct {
	id uint32
	fn func(P)
}

// Dispatcher 按事件类型保存回调并同步分发
//
// 零值可直接使用。回调按注册顺序执行；Emit 期间注册或移除回调是安全的，
// 变更从下一次 Emit 开始生效。
type Dispatcher[K comparable, P any] struct {
	handlers map[K][]handler[P]
	nextID   uint32
}

// Handle 用于移除一个已注册的回调
type Handle struct {
	remove func()
}

// Remove 注销回调，重复调用无副作用
func (h Handle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}

// On 注册 kind 类型事件的回调
func (d *Dispatcher[K, P]) On(kind K, fn func(P)) Handle {
	if fn == nil {
		return Handle{}
	}
	if d.handlers == nil {
		d.handlers = make(map[K][]handler[P])
	}
	d.nextID++
	id := d.nextID
	d.handlers[kind] = append(d.handlers[kind], handler[P]{id: id, fn: fn})
	return Handle{remove: func() { d.off(kind, id) }}
}

// Emit 将 payload 分发给 kind 类型的所有回调
func (d *Dispatcher[K, P]) Emit(kind K, payload P) {
	hs := d.handlers[kind]
	if len(hs) == 0 {
		return
	}
	// 快照：回调内部的 On/Remove 不影响本次分发
	snapshot := make([]handler[P], len(hs))
	copy(snapshot, hs)
	for _, h := range snapshot {
		h.fn(payload)
	}
}

// Len 返回 kind 类型当前注册的回调数量
func (d *Dispatcher[K, P]) Len(kind K) int {
	return len(d.handlers[kind])
}

// Clear 移除所有回调
func (d *Dispatcher[K, P]) Clear() {
	d.handlers = nil
}

func (d *Dispatcher[K, P]) off(kind K, id uint32) {
	hs := d.handlers[kind]
	for i := range hs {
		if hs[i].id == id {
			// 不原地 copy，避免破坏正在进行的 Emit 所持有的底层数组
			next := make([]handler[P], 0, len(hs)-1)
			next = append(next, hs[:i]...)
			next = append(next, hs[i+1:]...)
			if len(next) == 0 {
				delete(d.handlers, kind)
			} else {
				d.handlers[kind] = next
			}
			return
		}
	}
}
