package google

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"lifegoals/internal/core"
)

// parseGoals converts a values matrix (as returned by the Sheets API) into
// goals. Rows with an empty ID are skipped.
func parseGoals(values [][]interface{}) ([]core.Goal, error) {
	if len(values) == 0 {
		return nil, nil
	}
	headers := toStrings(values[0])
	colID := indexOf(headers, "ID")
	colTitle := indexOf(headers, "Title")
	colDesc := indexOf(headers, "Description")
	colProgress := indexOf(headers, "Progress")
	colCategory := indexOf(headers, "Category")

	missing := make([]string, 0, 4)
	if colID == -1 {
		missing = append(missing, "ID")
	}
	if colTitle == -1 {
		missing = append(missing, "Title")
	}
	if colProgress == -1 {
		missing = append(missing, "Progress")
	}
	if colCategory == -1 {
		missing = append(missing, "Category")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unexpected goals header: missing %s; got headers=%v", strings.Join(missing, ","), headers)
	}

	out := make([]core.Goal, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		row := toStrings(values[i])
		id := safeGet(row, colID)
		if id == "" {
			continue
		}
		progress, err := parseProgress(safeGet(row, colProgress))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		cat, err := core.ParseCategory(safeGet(row, colCategory))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, core.Goal{
			ID:          id,
			Title:       safeGet(row, colTitle),
			Description: safeGet(row, colDesc),
			Progress:    progress,
			Category:    cat,
		})
	}
	return out, nil
}

// parseProgress accepts "45", "45%" and fractional values such as "45,5",
// rounded half up.
func parseProgress(s string) (int, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, fmt.Errorf("%w: empty", core.ErrInvalidProgress)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidProgress, s)
	}
	return int(math.Floor(f + 0.5)), nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(target)) {
			return i
		}
	}
	return -1
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
