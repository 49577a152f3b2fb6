// Package nav models the host UI runtime's gamepad navigation registry
// and resolves window handles from it.
//
// The host exposes one navigation tree per overlay panel, keyed by node
// id. Finding the window that owns a panel means walking an optional
// chain through the tree: root node, backing element, owning document,
// and finally the document's default view. Any of those links can be
// absent while the host is mid-reload, so resolution is fallible and
// callers are expected to degrade rather than retry.
package nav

import (
	"errors"
	"fmt"

	"qam-observer/internal/window"
)

// QuickAccessNode is the navigation node id of the Quick Access Menu.
const QuickAccessNode = "QuickAccess-NA"

// ErrWindowUnresolvable reports that a navigation tree did not lead to
// a window: the tree was missing or some link in its chain was absent.
var ErrWindowUnresolvable = errors.New("window unresolvable")

// Registry looks up navigation trees by node id. It is always passed in
// explicitly; nothing in this package reaches for a global.
type Registry interface {
	// TreeByID returns the navigation tree for a node id, or false if
	// the registry has no such node.
	TreeByID(id string) (*Tree, bool)
}

// Tree is a host navigation tree. Root is absent while the host is
// rebuilding the panel.
type Tree struct {
	Root *Node
}

// Node is a navigation tree node backed by a UI element.
type Node struct {
	Element *Element
}

// Element is a UI element that may belong to a document.
type Element struct {
	OwnerDocument *Document
}

// Document owns a default view, the window surface that receives focus
// events for everything in the document.
type Document struct {
	DefaultView window.Handle
}

// ResolveWindow walks the navigation tree for id down to its window
// handle. It collapses the whole chain walk into one failure path:
// a missing registry entry or a nil link anywhere in the chain yields
// ErrWindowUnresolvable with the broken link named.
func ResolveWindow(reg Registry, id string) (window.Handle, error) {
	tree, ok := reg.TreeByID(id)
	if !ok || tree == nil {
		return nil, fmt.Errorf("nav tree %q: %w", id, ErrWindowUnresolvable)
	}
	if tree.Root == nil {
		return nil, fmt.Errorf("nav tree %q has no root: %w", id, ErrWindowUnresolvable)
	}
	if tree.Root.Element == nil {
		return nil, fmt.Errorf("nav tree %q root has no element: %w", id, ErrWindowUnresolvable)
	}
	if tree.Root.Element.OwnerDocument == nil {
		return nil, fmt.Errorf("nav tree %q element has no document: %w", id, ErrWindowUnresolvable)
	}
	if tree.Root.Element.OwnerDocument.DefaultView == nil {
		return nil, fmt.Errorf("nav tree %q document has no view: %w", id, ErrWindowUnresolvable)
	}
	return tree.Root.Element.OwnerDocument.DefaultView, nil
}
