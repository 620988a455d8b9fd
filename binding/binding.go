// Package binding expands ${name} placeholders, used for the configurable
// output filename templates.
package binding

import (
	"fmt"
	"regexp"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate replaces every ${name} in text with the matching value from
// data. Unknown names keep their placeholder so a template typo is visible in
// the produced filename instead of silently vanishing.
func Interpolate(text string, data map[string]any) string {
	if len(data) == 0 {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		name := strings.TrimSpace(groups[1])
		if val, ok := data[name]; ok {
			return fmt.Sprint(val)
		}
		return match
	})
}
