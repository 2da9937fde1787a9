//go:build mobile

package utils

// IsMobile 移动端编译时恒为 true，编辑器按触摸输入运行（无右键、无键盘快捷键）
func IsMobile() bool {
	return true
}
