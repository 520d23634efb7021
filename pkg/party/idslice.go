package party

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"
)

type IDSlice []ID

// NewIDSlice returns a sorted copy of ids.
func NewIDSlice(ids []ID) IDSlice {
	out := make(IDSlice, len(ids))
	copy(out, ids)
	out.sort()
	return out
}

// Range returns the IDs 1, …, n.
func Range(n int) IDSlice {
	out := make(IDSlice, n)
	for i := range out {
		out[i] = ID(i + 1)
	}
	return out
}

func (ids IDSlice) Len() int           { return len(ids) }
func (ids IDSlice) Less(i, j int) bool { return ids[i] < ids[j] }
func (ids IDSlice) Swap(i, j int)      { ids[i], ids[j] = ids[j], ids[i] }

func (ids IDSlice) sort() { sort.Sort(ids) }

// Valid returns an error if ids is unsorted, contains duplicates, or contains 0.
func (ids IDSlice) Valid() error {
	for i, id := range ids {
		if id == 0 {
			return fmt.Errorf("party: ID 0 is reserved")
		}
		if i > 0 && ids[i-1] >= id {
			return fmt.Errorf("party: IDs not sorted or duplicated at %v", id)
		}
	}
	return nil
}

// Contains returns true if ids contains each of the given IDs.
// Assumes that ids is sorted.
func (ids IDSlice) Contains(others ...ID) bool {
	for _, id := range others {
		if _, ok := ids.search(id); !ok {
			return false
		}
	}
	return true
}

func (ids IDSlice) search(x ID) (int, bool) {
	index := sort.Search(len(ids), func(i int) bool { return ids[i] >= x })
	if index < len(ids) && ids[index] == x {
		return index, true
	}
	return 0, false
}

// Copy returns an identical copy of the receiver.
func (ids IDSlice) Copy() IDSlice {
	out := make(IDSlice, len(ids))
	copy(out, ids)
	return out
}

// Remove finds id in ids and returns a copy of the slice if it was found.
func (ids IDSlice) Remove(id ID) IDSlice {
	out := make(IDSlice, 0, len(ids))
	for _, other := range ids {
		if other != id {
			out = append(out, other)
		}
	}
	return out
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (ids IDSlice) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.BigEndian, uint32(len(ids))); err != nil {
		return 0, err
	}
	nAll := int64(4)
	for _, id := range ids {
		n, err := w.Write(id.Bytes())
		nAll += int64(n)
		if err != nil {
			return nAll, err
		}
	}
	return nAll, nil
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (IDSlice) Domain() string {
	return "IDSlice"
}
