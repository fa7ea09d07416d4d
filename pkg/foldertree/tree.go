// Package foldertree 把扁平的媒体目录记录（可空 parentId 指针）组织为
// 按 id 索引的邻接结构，替代每次遍历全量过滤的做法。
// 树一次构建，后代集合、祖先链、可移动目标都在索引上计算。
package foldertree

import "sort"

// Node 树中的一个目录节点
type Node struct {
	ID       string
	Name     string
	ParentID string // 空串表示根层级
	childIDs []string
}

// Tree 按 id 索引的目录树
type Tree struct {
	nodes   map[string]*Node
	rootIDs []string
}

// FlatFolder 构建输入，ParentID 为 nil 表示根层级
type FlatFolder struct {
	ID       string
	Name     string
	ParentID *string
}

// Build 从扁平目录集构建索引树。父节点缺失的记录按根层级处理，
// 与缺失 id 上的静默降级保持一致（服务端数据理论上不会出现）。
func Build(folders []FlatFolder) *Tree {
	t := &Tree{nodes: make(map[string]*Node, len(folders))}

	for _, f := range folders {
		n := &Node{ID: f.ID, Name: f.Name}
		if f.ParentID != nil {
			n.ParentID = *f.ParentID
		}
		t.nodes[f.ID] = n
	}

	for _, n := range t.nodes {
		if n.ParentID == "" {
			t.rootIDs = append(t.rootIDs, n.ID)
			continue
		}
		parent, ok := t.nodes[n.ParentID]
		if !ok {
			t.rootIDs = append(t.rootIDs, n.ID)
			continue
		}
		parent.childIDs = append(parent.childIDs, n.ID)
	}

	// map 迭代无序，按名称排序保证输出稳定
	sort.Slice(t.rootIDs, func(i, j int) bool {
		return t.nodes[t.rootIDs[i]].Name < t.nodes[t.rootIDs[j]].Name
	})
	for _, n := range t.nodes {
		ids := n.childIDs
		sort.Slice(ids, func(i, j int) bool {
			return t.nodes[ids[i]].Name < t.nodes[ids[j]].Name
		})
	}

	return t
}

// Get 返回节点，不存在时返回 nil
func (t *Tree) Get(id string) *Node {
	return t.nodes[id]
}

// Len 返回节点总数
func (t *Tree) Len() int {
	return len(t.nodes)
}

// RootIDs 返回根层级目录 id
func (t *Tree) RootIDs() []string {
	out := make([]string, len(t.rootIDs))
	copy(out, t.rootIDs)
	return out
}

// ChildIDs 返回直接子目录 id，id 不存在时返回空
func (t *Tree) ChildIDs(id string) []string {
	n := t.nodes[id]
	if n == nil {
		return nil
	}
	out := make([]string, len(n.childIDs))
	copy(out, n.childIDs)
	return out
}

// AllIDs 返回全部目录 id
func (t *Tree) AllIDs() []string {
	out := make([]string, 0, len(t.nodes))
	for id := range t.nodes {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// DescendantSet 返回 id 自身加其全部子孙的闭包。
// 目录移动时以此排除会成环的目标。
func (t *Tree) DescendantSet(id string) map[string]bool {
	set := make(map[string]bool)
	if _, ok := t.nodes[id]; !ok {
		return set
	}

	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if set[cur] {
			continue
		}
		set[cur] = true
		stack = append(stack, t.nodes[cur].childIDs...)
	}
	return set
}

// AvailableDestinations 返回目录 id 可移动到的目标集合（不含根，根始终合法）。
// 即全部目录减去自身及子孙。
func (t *Tree) AvailableDestinations(id string) []string {
	excluded := t.DescendantSet(id)
	out := make([]string, 0, len(t.nodes))
	for _, candidate := range t.AllIDs() {
		if !excluded[candidate] {
			out = append(out, candidate)
		}
	}
	return out
}

// Ancestors 返回从直接父级到根的祖先链。
// 遇到悬空 parentId 即终止，不报错。
func (t *Tree) Ancestors(id string) []string {
	var out []string
	n := t.nodes[id]
	if n == nil {
		return out
	}
	for n.ParentID != "" {
		parent := t.nodes[n.ParentID]
		if parent == nil {
			break
		}
		out = append(out, parent.ID)
		n = parent
	}
	return out
}

// WouldCycle 判断把 id 挂到 newParentID 下是否成环。
// newParentID 为空（移动到根）永远合法。
func (t *Tree) WouldCycle(id, newParentID string) bool {
	if newParentID == "" {
		return false
	}
	return t.DescendantSet(id)[newParentID]
}
