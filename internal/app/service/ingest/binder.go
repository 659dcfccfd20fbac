package ingest

import (
	"strings"

	"github.com/samber/lo"
)

// ColumnSpec declares the column layout an upload kind accepts. Matching is
// case-insensitive and order-independent, with exact names after trimming.
type ColumnSpec struct {
	Required []string
	Optional []string
}

// Bind maps canonical column names to header indices. The header width must
// fall inside [len(Required), len(Required)+len(Optional)], every required
// column must be present, and optional columns bind only when found.
func (s ColumnSpec) Bind(headers []string) (map[string]int, error) {
	if len(headers) < len(s.Required) || len(headers) > len(s.Required)+len(s.Optional) {
		return nil, &ColumnCountError{Required: s.Required, Optional: s.Optional, Got: len(headers)}
	}

	lowered := lo.Map(headers, func(h string, _ int) string {
		return strings.ToLower(strings.TrimSpace(h))
	})
	indexOf := func(name string) int {
		return lo.IndexOf(lowered, strings.ToLower(name))
	}

	bound := make(map[string]int, len(s.Required)+len(s.Optional))
	var missing []string
	for _, name := range s.Required {
		idx := indexOf(name)
		if idx < 0 {
			missing = append(missing, name)
			continue
		}
		bound[name] = idx
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	for _, name := range s.Optional {
		if idx := indexOf(name); idx >= 0 {
			bound[name] = idx
		}
	}
	return bound, nil
}
