package foldertree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

// 构造:
//
//	F
//	├── C1
//	│   └── G1
//	└── C2
//	X (另一根目录)
func sampleTree() *Tree {
	return Build([]FlatFolder{
		{ID: "f", Name: "F"},
		{ID: "c1", Name: "C1", ParentID: ptr("f")},
		{ID: "c2", Name: "C2", ParentID: ptr("f")},
		{ID: "g1", Name: "G1", ParentID: ptr("c1")},
		{ID: "x", Name: "X"},
	})
}

func TestBuild(t *testing.T) {
	tree := sampleTree()

	assert.Equal(t, 5, tree.Len())
	assert.Equal(t, []string{"f", "x"}, tree.RootIDs())
	assert.Equal(t, []string{"c1", "c2"}, tree.ChildIDs("f"))
	assert.Equal(t, []string{"g1"}, tree.ChildIDs("c1"))
	assert.Empty(t, tree.ChildIDs("g1"))
	assert.Nil(t, tree.ChildIDs("missing"))
}

func TestBuildDanglingParentFallsToRoot(t *testing.T) {
	tree := Build([]FlatFolder{
		{ID: "a", Name: "A", ParentID: ptr("gone")},
	})
	assert.Equal(t, []string{"a"}, tree.RootIDs())
}

func TestDescendantSet(t *testing.T) {
	tree := sampleTree()

	set := tree.DescendantSet("f")
	assert.Equal(t, map[string]bool{"f": true, "c1": true, "c2": true, "g1": true}, set)

	assert.Equal(t, map[string]bool{"x": true}, tree.DescendantSet("x"))
	assert.Empty(t, tree.DescendantSet("missing"))
}

func TestAvailableDestinations(t *testing.T) {
	tree := sampleTree()

	// F 的自身与全部子孙被排除，仅剩 X
	assert.Equal(t, []string{"x"}, tree.AvailableDestinations("f"))

	// 叶子目录可移动到除自身以外的任何目录
	assert.Equal(t, []string{"c1", "c2", "f", "x"}, tree.AvailableDestinations("g1"))
}

func TestAncestors(t *testing.T) {
	tree := Build([]FlatFolder{
		{ID: "root", Name: "Root"},
		{ID: "a", Name: "A", ParentID: ptr("root")},
		{ID: "b", Name: "B", ParentID: ptr("a")},
		{ID: "c", Name: "C", ParentID: ptr("b")},
	})

	assert.Equal(t, []string{"b", "a", "root"}, tree.Ancestors("c"))
	assert.Empty(t, tree.Ancestors("root"))
	assert.Empty(t, tree.Ancestors("missing"))
}

func TestWouldCycle(t *testing.T) {
	tree := sampleTree()

	assert.True(t, tree.WouldCycle("f", "f"))
	assert.True(t, tree.WouldCycle("f", "g1"))
	assert.False(t, tree.WouldCycle("f", "x"))
	assert.False(t, tree.WouldCycle("f", ""))
	assert.False(t, tree.WouldCycle("g1", "c2"))
}

func TestNavigatorExpandAll(t *testing.T) {
	tree := sampleTree()
	nav := NewNavigator()
	nav.ExpandAll(tree)

	for _, id := range tree.AllIDs() {
		assert.True(t, nav.IsExpanded(id), id)
	}
}

func TestNavigatorSetActiveExpandsAncestors(t *testing.T) {
	tree := Build([]FlatFolder{
		{ID: "root", Name: "Root"},
		{ID: "a", Name: "A", ParentID: ptr("root")},
		{ID: "b", Name: "B", ParentID: ptr("a")},
		{ID: "c", Name: "C", ParentID: ptr("b")},
	})

	nav := NewNavigator()
	nav.SetActive(tree, "c")

	assert.True(t, nav.IsExpanded("root"))
	assert.True(t, nav.IsExpanded("a"))
	assert.True(t, nav.IsExpanded("b"))
	// 活动目录自身不被强制展开
	assert.False(t, nav.IsExpanded("c"))
}

func TestNavigatorSetActiveKeepsExisting(t *testing.T) {
	tree := sampleTree()
	nav := NewNavigator()
	nav.Toggle("x")
	nav.SetActive(tree, "g1")

	// 已展开的分支不因切换活动目录而收起
	assert.True(t, nav.IsExpanded("x"))
	assert.True(t, nav.IsExpanded("f"))
	assert.True(t, nav.IsExpanded("c1"))
}

func TestNavigatorToggle(t *testing.T) {
	nav := NewNavigator()

	nav.Toggle("a")
	assert.True(t, nav.IsExpanded("a"))
	nav.Toggle("a")
	assert.False(t, nav.IsExpanded("a"))
	assert.Empty(t, nav.ExpandedIDs())
}
