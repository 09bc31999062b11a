package cards

import "strings"

// Stack represents multiple cards
type Stack []Card

// NewStack creates a new stack with the given cards
func NewStack(cards ...Card) Stack {
	return cards
}

// String renders the stack as space-separated shorthand, e.g. "A♠ K♦ 7♣"
func (s Stack) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Strings returns the per-card shorthand representations
func (s Stack) Strings() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.String()
	}
	return out
}

// ParseStack parses space-separated card shorthand into a stack
func ParseStack(s string) (Stack, error) {
	fields := strings.Fields(s)
	stack := make(Stack, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		stack = append(stack, c)
	}
	return stack, nil
}
