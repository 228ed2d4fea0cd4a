package domain

// DefaultPriority is the rank assigned to chains missing from the table.
// It sits below every configured priority, so unknown chains are excluded
// from display.
const DefaultPriority = -99

// PriorityTable maps chain name to its display rank. Higher sorts first.
type PriorityTable map[string]int

// Priority returns the rank for a chain, or DefaultPriority when unknown.
func (t PriorityTable) Priority(chain string) int {
	if p, ok := t[chain]; ok {
		return p
	}
	return DefaultPriority
}
