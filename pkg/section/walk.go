package section

// MaxDepth bounds tree traversal. Authored trees are user-controlled and
// nesting is unbounded in the source model, so every recursive walk stops
// descending past this depth instead of risking a stack overflow.
const MaxDepth = 64

// Visitor receives each section in document order together with its nesting
// depth. Returning false stops the walk early.
type Visitor func(s *Section, depth int) bool

// Walk traverses sections depth-first in author order: each section first,
// then a container's children in order, then a layout-table's cells
// row-major. Sections nested deeper than MaxDepth are not visited.
func Walk(sections []Section, visit Visitor) {
	walk(sections, 0, visit)
}

func walk(sections []Section, depth int, visit Visitor) bool {
	if depth > MaxDepth {
		return true
	}
	for i := range sections {
		s := &sections[i]
		if !visit(s, depth) {
			return false
		}
		if len(s.Children) > 0 {
			if !walk(s.Children, depth+1, visit) {
				return false
			}
		}
		for _, row := range s.Grid {
			for _, cell := range row {
				if !walk(cell.Sections, depth+1, visit) {
					return false
				}
			}
		}
	}
	return true
}

// CountKind returns how many sections of the given kind exist anywhere in
// the tree, nested containers and layout-table cells included.
func CountKind(sections []Section, kind Kind) int {
	count := 0
	Walk(sections, func(s *Section, _ int) bool {
		if s.Kind == kind {
			count++
		}
		return true
	})
	return count
}

// FindByID returns the first section carrying the given id, or nil.
func FindByID(sections []Section, id string) *Section {
	var found *Section
	Walk(sections, func(s *Section, _ int) bool {
		if s.ID == id {
			found = s
			return false
		}
		return true
	})
	return found
}
