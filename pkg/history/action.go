// Package history 实现编辑器的可逆操作记录（撤销/重做）
//
// 每次用户编辑被封装为一个 Action：一对互逆的 apply/revert 效果。
// History 按顺序保存 Action，并用游标标记最后一个已应用的操作：
//
//	[0, cursor]      已应用
//	(cursor, len)    未应用（重做分支）
//
// 所有操作都是全函数：越界请求（空日志撤销、无重做分支时重做、越界跳转）
// 是文档化的空操作，不返回错误也不会 panic。
package history

// Action 可逆操作
//
// apply 与 revert 必须互为精确逆操作：Apply 后 Revert 要让所有可观察状态
// （注册表成员、场景成员、选中状态等）恢复到 Apply 之前。
// applied 标志保证重复 Apply / 重复 Revert 都是空操作。
type Action struct {
	label   string
	apply   func()
	revert  func()
	applied bool
}

// NewAction 创建一个尚未应用的可逆操作
//
// 参数：
//   - label: 可读描述，用于历史面板显示，可为空
//   - apply: 执行效果，nil 视为空操作
//   - revert: 撤销效果，nil 视为空操作
func NewAction(label string, apply, revert func()) *Action {
	return &Action{
		label:  label,
		apply:  apply,
		revert: revert,
	}
}

// Apply 执行操作；已应用时为空操作
func (a *Action) Apply() {
	if a.applied {
		return
	}
	if a.apply != nil {
		a.apply()
	}
	a.applied = true
}

// Revert 撤销操作；未应用时为空操作
func (a *Action) Revert() {
	if !a.applied {
		return
	}
	if a.revert != nil {
		a.revert()
	}
	a.applied = false
}

// Applied 返回操作当前是否处于已应用状态
func (a *Action) Applied() bool {
	return a.applied
}

// Label 返回操作描述
func (a *Action) Label() string {
	return a.label
}
