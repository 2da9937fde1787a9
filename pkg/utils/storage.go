// Package utils 提供平台相关的工具函数
package utils

// StorageSubdir 地图存档在平台存储目录下的子目录
const StorageSubdir = "maps"
