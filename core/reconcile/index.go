package reconcile

import (
	"sort"
	"strings"
)

// RosterIndex groups registry records by class label.
// It is never mutated after BuildIndex returns.
type RosterIndex struct {
	buckets map[string][]RegistryRecord
	size    int
}

// BuildIndex groups records by their trimmed class label. Records keep their input order
// inside a bucket, which is the order Resolve uses for tie-breaks.
func BuildIndex(records []RegistryRecord) *RosterIndex {
	idx := &RosterIndex{
		buckets: make(map[string][]RegistryRecord),
		size:    len(records),
	}
	for _, rec := range records {
		key := classKey(rec.Class)
		idx.buckets[key] = append(idx.buckets[key], rec)
	}
	return idx
}

// Lookup returns the records of a class, or an empty slice for unknown labels.
func (i *RosterIndex) Lookup(class string) []RegistryRecord {
	if i == nil {
		return nil
	}
	return i.buckets[classKey(class)]
}

// Len returns the number of indexed records.
func (i *RosterIndex) Len() int {
	if i == nil {
		return 0
	}
	return i.size
}

// Classes returns the indexed class labels in sorted order.
func (i *RosterIndex) Classes() []string {
	if i == nil {
		return nil
	}
	classes := make([]string, 0, len(i.buckets))
	for class := range i.buckets {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

func classKey(class string) string {
	return strings.TrimSpace(class)
}
