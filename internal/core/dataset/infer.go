package dataset

import (
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/vgrid/internal/core/types"
)

// Infer picks the narrowest kind every sample fits, trying boolean, number,
// percent and date before falling back to string. Samples are raw decoded
// scalars; nil samples are ignored.
func Infer(samples []any) types.Kind {
	candidates := []types.Kind{types.Boolean, types.Number, types.Percent, types.Date}

	for _, k := range candidates {
		if allFit(k, samples) {
			return k
		}
	}
	return types.String
}

func allFit(k types.Kind, samples []any) bool {
	found := false
	for _, s := range samples {
		if s == nil {
			continue
		}
		found = true
		if !fits(k, s) {
			return false
		}
	}
	return found
}

func fits(k types.Kind, sample any) bool {
	switch v := sample.(type) {
	case bool:
		return k == types.Boolean
	case int, int64, float64:
		return k == types.Number
	case time.Time:
		return k == types.Date
	case string:
		s := strings.TrimSpace(v)
		switch k {
		case types.Boolean:
			// Only the words; 0/1 columns are numbers.
			return strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
		case types.Percent:
			if !strings.HasSuffix(s, "%") {
				return false
			}
		}
		_, err := types.Parse(k, s)
		return err == nil
	default:
		return k == types.String && fmt.Sprint(v) != ""
	}
}
