package optionsearch

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/option"
)

// Result is one search hit. Group is the title of the divider preceding the
// option, if any.
type Result struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Group string `json:"group,omitempty"`
}

// Search matches query case-insensitively against option titles and values.
// Title prefix matches come first; ties keep the option order. Dividers and
// blank placeholders are never returned.
func Search(options []option.Option, query string, limit int, opts Options) []Result {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	q := strings.ToLower(query)
	if q == "" && opts.EmptySearchMode != EmptySearchTop {
		return nil
	}

	matches := make([]matchedOption, 0, 32)
	group := ""
	for _, opt := range options {
		if !opt.Selectable() {
			group = opt.Title
			continue
		}
		if opt.Kind == option.Blank {
			continue
		}
		lowerTitle := strings.ToLower(opt.Title)
		value := opt.ValueString()
		if q != "" && !strings.Contains(lowerTitle, q) && !strings.Contains(strings.ToLower(value), q) {
			continue
		}
		matches = append(matches, matchedOption{
			result:   Result{Value: value, Label: opt.Title, Group: group},
			isPrefix: q != "" && strings.HasPrefix(lowerTitle, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Result, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.result)
	}
	return out
}

type matchedOption struct {
	result   Result
	isPrefix bool
}
