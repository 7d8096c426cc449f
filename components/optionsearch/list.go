package optionsearch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-formkit/pkg/option"
)

// LoadOptions reads a line based option catalog. Each line is either
// "value" or "value|title"; lines starting with "--" open a divider titled
// by the rest of the line and "#" starts a comment. Order is preserved and
// repeated values keep their first occurrence.
func LoadOptions(r io.Reader) ([]option.Option, error) {
	if r == nil {
		return nil, fmt.Errorf("optionsearch: missing reader")
	}

	scanner := bufio.NewScanner(r)
	options := make([]option.Option, 0, 64)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "--") {
			options = append(options, option.NewDivider(strings.TrimSpace(strings.TrimPrefix(line, "--"))))
			continue
		}
		value, title, found := strings.Cut(line, "|")
		value = strings.TrimSpace(value)
		title = strings.TrimSpace(title)
		if !found || title == "" {
			title = value
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		options = append(options, option.New(value, title))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return options, nil
}
