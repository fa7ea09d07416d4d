package foldertree

// Navigator 维护展开目录 id 集合。
// 首次装载默认全部展开；切换活动目录时自动展开其祖先链，
// 保证活动目录可见且不收起同级分支。
type Navigator struct {
	expanded map[string]bool
}

func NewNavigator() *Navigator {
	return &Navigator{expanded: make(map[string]bool)}
}

// ExpandAll 将树中全部目录标记为展开
func (n *Navigator) ExpandAll(t *Tree) {
	for _, id := range t.AllIDs() {
		n.expanded[id] = true
	}
}

// SetActive 沿 parentId 指针向上走到根，把途经的每个祖先加入展开集。
// 活动目录自身的展开状态不在此处改变。
func (n *Navigator) SetActive(t *Tree, activeID string) {
	for _, ancestorID := range t.Ancestors(activeID) {
		n.expanded[ancestorID] = true
	}
}

// Toggle 翻转单个目录的展开状态
func (n *Navigator) Toggle(id string) {
	if n.expanded[id] {
		delete(n.expanded, id)
		return
	}
	n.expanded[id] = true
}

// IsExpanded 查询目录是否展开
func (n *Navigator) IsExpanded(id string) bool {
	return n.expanded[id]
}

// ExpandedIDs 返回当前展开集
func (n *Navigator) ExpandedIDs() []string {
	out := make([]string, 0, len(n.expanded))
	for id := range n.expanded {
		out = append(out, id)
	}
	return out
}
