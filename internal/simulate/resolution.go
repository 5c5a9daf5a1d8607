package simulate

import "math"

// Resolution computes the standard chromatographic resolution between two
// peaks: peak separation normalized by combined width.
func Resolution(prev, cur Peak) float64 {
	return 2 * math.Abs(cur.RetentionTime-prev.RetentionTime) / (prev.Width + cur.Width)
}

// AnnotateResolutions fills in Resolution for every peak against its
// predecessor in input order. Peaks entered out of elution order still
// compare index-adjacent pairs; callers must not sort by retention time
// first. The first peak keeps a nil Resolution.
func AnnotateResolutions(peaks []Peak) {
	for i := 1; i < len(peaks); i++ {
		r := Resolution(peaks[i-1], peaks[i])
		peaks[i].Resolution = &r
	}
}
