// diff.go - Sparse memory comparison

package fuse

// MemoryRun is a maximal block of consecutive addresses whose final value
// differs from the snapshot. Bytes holds the final values.
type MemoryRun struct {
	Addr  uint16
	Bytes []uint8
}

// DiffMemory scans every address in ascending order and groups differing
// addresses into runs. A single unchanged address ends a run.
func DiffMemory(before, after *MemoryImage) []MemoryRun {
	var runs []MemoryRun
	var cur *MemoryRun
	for i := range after {
		if after[i] == before[i] {
			cur = nil
			continue
		}
		if cur == nil {
			runs = append(runs, MemoryRun{Addr: uint16(i)})
			cur = &runs[len(runs)-1]
		}
		cur.Bytes = append(cur.Bytes, after[i])
	}
	return runs
}
