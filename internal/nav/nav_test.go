package nav

import (
	"errors"
	"testing"

	"qam-observer/internal/window"
)

type fakeRegistry struct {
	trees map[string]*Tree
}

func (f fakeRegistry) TreeByID(id string) (*Tree, bool) {
	tree, ok := f.trees[id]
	return tree, ok
}

func fullTree(h window.Handle) *Tree {
	return &Tree{
		Root: &Node{
			Element: &Element{
				OwnerDocument: &Document{
					DefaultView: h,
				},
			},
		},
	}
}

func TestResolveWindow(t *testing.T) {
	target := window.NewTarget()
	reg := fakeRegistry{trees: map[string]*Tree{
		QuickAccessNode: fullTree(target),
	}}

	h, err := ResolveWindow(reg, QuickAccessNode)
	if err != nil {
		t.Fatalf("expected resolution to succeed, got %v", err)
	}
	if h != window.Handle(target) {
		t.Fatalf("expected the tree's default view, got %v", h)
	}
}

func TestResolveWindowMissingLinks(t *testing.T) {
	cases := map[string]*Tree{
		"nil tree":    nil,
		"no root":     {},
		"no element":  {Root: &Node{}},
		"no document": {Root: &Node{Element: &Element{}}},
		"no view":     {Root: &Node{Element: &Element{OwnerDocument: &Document{}}}},
	}

	for name, tree := range cases {
		reg := fakeRegistry{trees: map[string]*Tree{QuickAccessNode: tree}}
		h, err := ResolveWindow(reg, QuickAccessNode)
		if !errors.Is(err, ErrWindowUnresolvable) {
			t.Fatalf("%s: expected ErrWindowUnresolvable, got %v", name, err)
		}
		if h != nil {
			t.Fatalf("%s: expected nil handle, got %v", name, h)
		}
	}
}

func TestResolveWindowUnknownID(t *testing.T) {
	reg := fakeRegistry{trees: map[string]*Tree{}}

	_, err := ResolveWindow(reg, "MainMenu-NA")
	if !errors.Is(err, ErrWindowUnresolvable) {
		t.Fatalf("expected ErrWindowUnresolvable, got %v", err)
	}
}
