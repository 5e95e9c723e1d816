package search

import (
	"fmt"
	"strings"
)

// Graduation year slider bounds. A bound sitting on its extreme means the
// range is not filtered on that side.
const (
	BatchFloor   = 1950
	BatchCeiling = 2030
)

// RecencyBucket is a coarse filter on upload age. The zero value means no
// filter.
type RecencyBucket string

const (
	RecencyAny        RecencyBucket = ""
	Within1Month      RecencyBucket = "1m"
	Within3Months     RecencyBucket = "3m"
	Within6Months     RecencyBucket = "6m"
	Within1Year       RecencyBucket = "1y"
	Within2Years      RecencyBucket = "2y"
	MoreThan2YearsAgo RecencyBucket = "2y+"
)

var recencyLabels = []struct {
	bucket RecencyBucket
	label  string
}{
	{Within1Month, "Within 1 month"},
	{Within3Months, "Within 3 months"},
	{Within6Months, "Within 6 months"},
	{Within1Year, "Within 1 year"},
	{Within2Years, "Within 2 years"},
	{MoreThan2YearsAgo, "2+ years ago"},
}

type RecencyOption struct {
	Value RecencyBucket `json:"value"`
	Label string        `json:"label"`
}

func RecencyOptions() []RecencyOption {
	out := make([]RecencyOption, len(recencyLabels))
	for i, r := range recencyLabels {
		out[i] = RecencyOption{Value: r.bucket, Label: r.label}
	}
	return out
}

func ParseRecencyBucket(raw string) (RecencyBucket, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RecencyAny, nil
	}
	for _, r := range recencyLabels {
		if string(r.bucket) == raw {
			return r.bucket, nil
		}
	}
	return RecencyAny, fmt.Errorf("unknown upload range %q", raw)
}

type FilterSet struct {
	BatchMin      int           `json:"batch_min"`
	BatchMax      int           `json:"batch_max"`
	LastEducation string        `json:"last_education"`
	UploadRange   RecencyBucket `json:"upload_range"`
}

func DefaultFilterSet() FilterSet {
	return FilterSet{BatchMin: BatchFloor, BatchMax: BatchCeiling}
}

// SetBatchRange clamps both handles into the slider range. Handles cannot
// cross, so min > max is rejected.
func (f *FilterSet) SetBatchRange(lo, hi int) error {
	lo = clamp(lo, BatchFloor, BatchCeiling)
	hi = clamp(hi, BatchFloor, BatchCeiling)
	if lo > hi {
		return fmt.Errorf("batch_min %d is greater than batch_max %d", lo, hi)
	}
	f.BatchMin, f.BatchMax = lo, hi
	return nil
}

func (f FilterSet) batchMinActive() bool { return f.BatchMin > BatchFloor }

func (f FilterSet) batchMaxActive() bool { return f.BatchMax < BatchCeiling }

func (f FilterSet) education() string { return strings.TrimSpace(f.LastEducation) }

func (f FilterSet) recency() string { return strings.TrimSpace(string(f.UploadRange)) }

// IsDefault reports whether no field would restrict the search.
func (f FilterSet) IsDefault() bool {
	return !f.batchMinActive() && !f.batchMaxActive() && f.education() == "" && f.recency() == ""
}

// Summary describes the active filters for display, or "None".
func (f FilterSet) Summary() string {
	var parts []string
	if f.batchMinActive() || f.batchMaxActive() {
		parts = append(parts, fmt.Sprintf("Batch: %d-%d", f.BatchMin, f.BatchMax))
	}
	if f.education() != "" {
		parts = append(parts, "Education: "+f.LastEducation)
	}
	if f.UploadRange != RecencyAny {
		parts = append(parts, "Upload: "+string(f.UploadRange))
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, ", ")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
