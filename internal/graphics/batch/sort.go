package batch

import "megaglow/internal/graphics"

// byDistance pairs a drawable with its distance to the camera so both
// move together during the sort.
type byDistance struct {
	dist float32
	d    Drawable
}

// sorter reuses its record slice across calls. The Registry owns one for
// all its batches, so the slice survives the per-frame batch lists.
type sorter struct {
	recs []byDistance
}

func (s *sorter) sort(members []Drawable, cam *graphics.Camera) {
	if len(members) < 2 {
		return
	}
	s.recs = s.recs[:0]
	for _, d := range members {
		s.recs = append(s.recs, byDistance{dist: cam.DistanceTo(d.Position()), d: d})
	}
	quicksortDesc(s.recs, 0, len(s.recs)-1)
	for i := range s.recs {
		members[i] = s.recs[i].d
		s.recs[i].d = nil
	}
}

// quicksortDesc is a Hoare-partition quicksort with a middle pivot that
// orders recs[lo..hi] furthest first.
func quicksortDesc(recs []byDistance, lo, hi int) {
	for lo < hi {
		pivot := recs[lo+(hi-lo)/2].dist
		i, j := lo, hi
		for i <= j {
			for recs[i].dist > pivot {
				i++
			}
			for recs[j].dist < pivot {
				j--
			}
			if i <= j {
				recs[i], recs[j] = recs[j], recs[i]
				i++
				j--
			}
		}
		// Recurse on the smaller partition, loop on the larger.
		if j-lo < hi-i {
			quicksortDesc(recs, lo, j)
			lo = i
		} else {
			quicksortDesc(recs, i, hi)
			hi = j
		}
	}
}
