package util

import (
	"strconv"
)

// ParsePositiveInt 解析分页参数，非法或越界时返回默认值
func ParsePositiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
