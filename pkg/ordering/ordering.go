// Package ordering 提供课程章节/课时拖拽排序的纯函数实现。
// 拖拽手势被规约为显式命令（整组重排或单项移动），由服务层落库。
package ordering

// Move 将 list[from] 移动到 from..to 之间的元素整体平移一位，
// 其余元素相对顺序不变。from/to 越界或相等时原样返回副本。
func Move[T comparable](list []T, from, to int) []T {
	out := make([]T, len(list))
	copy(out, list)

	if from == to || from < 0 || to < 0 || from >= len(list) || to >= len(list) {
		return out
	}

	item := out[from]
	if from < to {
		copy(out[from:], out[from+1:to+1])
	} else {
		copy(out[to+1:], out[to:from])
	}
	out[to] = item
	return out
}

// ApplyDrag 把一次拖拽（activeID 拖到 overID 上）应用到当前顺序。
// overID 为空、等于 activeID、或任一 id 不在当前列表中时不产生变化，
// changed 返回 false，调用方据此跳过落库。
func ApplyDrag(order []string, activeID, overID string) (result []string, changed bool) {
	result = make([]string, len(order))
	copy(result, order)

	if overID == "" || activeID == overID {
		return result, false
	}

	oldIndex, newIndex := -1, -1
	for i, id := range order {
		if id == activeID {
			oldIndex = i
		}
		if id == overID {
			newIndex = i
		}
	}
	if oldIndex < 0 || newIndex < 0 {
		return result, false
	}

	return Move(order, oldIndex, newIndex), true
}

// SameIDSet 校验 ids 是否恰好为 current 的一个排列（无缺失、无多余、无重复）。
func SameIDSet(ids, current []string) bool {
	if len(ids) != len(current) {
		return false
	}
	seen := make(map[string]int, len(current))
	for _, id := range current {
		seen[id]++
	}
	for _, id := range ids {
		seen[id]--
		if seen[id] < 0 {
			return false
		}
	}
	return true
}
