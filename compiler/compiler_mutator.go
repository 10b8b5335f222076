// Copyright (c) 2026 Vrai Stacey
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package compiler

import (
	"github.com/vrai/SimpleFudgeProto/ast"
)

// A Mutator rewrites identifiers by replacing their longest registered
// leading path with that path's replacement.
//
// Registered paths form a trie. A path may not pass through, or end on,
// a node that already has a replacement, and may not end above an
// existing path. The root node holds the optional prefix, which applies
// only to [Mutator.MutatedCloneStem].
type Mutator struct {
	root *mutatorNode
}

type mutatorNode struct {
	children    map[string]*mutatorNode
	replacement *ast.Identifier
}

func NewMutator() *Mutator {
	return &Mutator{root: &mutatorNode{}}
}

func (n *mutatorNode) child(segment string) *mutatorNode {
	if n.children == nil {
		return nil
	}
	return n.children[segment]
}

// Add registers replacement for path. On a collision with an earlier
// path, Add returns the index of the colliding segment and an error;
// otherwise it returns -1. A failed Add leaves the mutator unchanged.
func (m *Mutator) Add(path, replacement *ast.Identifier) (int, error) {
	if path == nil || path.Blank() {
		return -1, errAliasEmpty()
	}

	node := m.root
	depth := 0
	for depth < path.Len() {
		next := node.child(path.At(depth))
		if next == nil {
			break
		}
		if next.replacement != nil {
			return depth, errAliasCollision(path, depth)
		}
		node = next
		depth++
	}
	if depth == path.Len() {
		// path ends on an interior node of a longer path.
		return depth - 1, errAliasCollision(path, depth-1)
	}

	for ; depth < path.Len(); depth++ {
		if node.children == nil {
			node.children = make(map[string]*mutatorNode)
		}
		next := &mutatorNode{}
		node.children[path.At(depth)] = next
		node = next
	}
	node.replacement = replacement.Clone()
	return -1, nil
}

// AddPrefix sets the replacement used by MutatedCloneStem when no
// registered path matches.
func (m *Mutator) AddPrefix(prefix *ast.Identifier) error {
	if prefix == nil || prefix.Blank() {
		return errAliasEmpty()
	}
	if m.root.replacement != nil {
		return errPrefixAlreadySet(m.root.replacement)
	}
	m.root.replacement = prefix.Clone()
	return nil
}

// MutatedClone returns a copy of id with its longest registered leading
// path replaced. If no path matches, the copy is unchanged. The result
// never has zero segments.
func (m *Mutator) MutatedClone(id *ast.Identifier) *ast.Identifier {
	node := m.root
	depth := 0
	for depth < id.Len() {
		next := node.child(id.At(depth))
		if next == nil {
			break
		}
		node = next
		depth++
		if node.replacement != nil {
			break
		}
	}
	if depth == 0 || node.replacement == nil {
		return id.Clone()
	}
	return replaceLeading(node.replacement, id, depth)
}

// MutatedCloneStem is MutatedClone applied only to the scope of id, so
// that the last segment is always kept. If no registered path matches,
// the prefix is prepended instead.
func (m *Mutator) MutatedCloneStem(id *ast.Identifier) *ast.Identifier {
	best := m.root
	bestDepth := 0
	node := m.root
	for depth := 0; depth < id.Len()-1; depth++ {
		node = node.child(id.At(depth))
		if node == nil {
			break
		}
		if node.replacement != nil {
			best = node
			bestDepth = depth + 1
		}
	}
	if best.replacement == nil {
		return id.Clone()
	}
	return replaceLeading(best.replacement, id, bestDepth)
}

func replaceLeading(replacement, id *ast.Identifier, depth int) *ast.Identifier {
	out := &ast.Identifier{}
	if !replacement.Blank() {
		out = replacement.Clone()
	}
	for ii := depth; ii < id.Len(); ii++ {
		out.Append(id.At(ii))
	}
	if out.Len() == 0 {
		out.Append("")
	}
	return out
}
