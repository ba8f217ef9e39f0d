// Package preset resolves named note presets from a preset library file,
// flattening include chains into one note map and settings set. Presets
// bootstrap the interactive keymap authoring flow.
package preset

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ParseIntegerList expands a comma-separated list of integers and
// inclusive ranges: "1,3,5-7" yields 1,3,5,6,7. Malformed items are
// logged and skipped, never fatal to the whole parse.
func ParseIntegerList(items string, log *zap.Logger) []int {
	var out []int
	for _, item := range strings.Split(items, ",") {
		if strings.Contains(item, "-") {
			parts := strings.SplitN(item, "-", 2)
			low, errLow := strconv.Atoi(strings.TrimSpace(parts[0]))
			high, errHigh := strconv.Atoi(strings.TrimSpace(parts[1]))
			if errLow != nil || errHigh != nil {
				log.Warn("invalid range in list",
					zap.String("item", item), zap.String("list", items))
				continue
			}
			for n := low; n <= high; n++ {
				out = append(out, n)
			}
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(item))
		if err != nil {
			log.Warn("invalid integer in list",
				zap.String("item", item), zap.String("list", items))
			continue
		}
		out = append(out, n)
	}
	return out
}
