package powerstroke

import (
	"fmt"
	"slices"
)

// enumString returns the attribute spelling of v, or a fallback naming kind.
func enumString[T ~int](names []string, kind string, v T) string {
	if v < 0 || int(v) >= len(names) {
		return fmt.Sprintf("%s(%d)", kind, int(v))
	}
	return names[v]
}

// parseEnum maps an attribute spelling back to its value.
func parseEnum[T ~int](names []string, kind string, s string) (T, error) {
	i := slices.Index(names, s)
	if i < 0 {
		return 0, fmt.Errorf("unknown %s %q", kind, s)
	}
	return T(i), nil
}
