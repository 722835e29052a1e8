package engine

// EvalEntry stores a cached static evaluation.
type EvalEntry struct {
	Key   uint64
	Score int32
	Used  bool
}

// EvalTable is a hash table for caching static evaluations, keyed by the
// position hash. It is not safe for concurrent use; each searcher owns one.
type EvalTable struct {
	entries []EvalEntry
	mask    uint64
}

// NewEvalTable creates an evaluation table with the given size in MB.
func NewEvalTable(sizeMB int) *EvalTable {
	// Each entry is 16 bytes after padding, round to power of 2
	entrySize := 16
	numEntries := (sizeMB * 1024 * 1024) / entrySize

	size := 1
	for size*2 <= numEntries {
		size *= 2
	}

	return &EvalTable{
		entries: make([]EvalEntry, size),
		mask:    uint64(size - 1),
	}
}

// Probe looks up an evaluation.
func (et *EvalTable) Probe(key uint64) (score int, found bool) {
	entry := &et.entries[key&et.mask]
	if entry.Used && entry.Key == key {
		return int(entry.Score), true
	}
	return 0, false
}

// Store saves an evaluation, overwriting whatever shared its slot.
func (et *EvalTable) Store(key uint64, score int) {
	entry := &et.entries[key&et.mask]
	entry.Key = key
	entry.Score = int32(score)
	entry.Used = true
}

// Clear clears the evaluation table.
func (et *EvalTable) Clear() {
	for i := range et.entries {
		et.entries[i] = EvalEntry{}
	}
}
