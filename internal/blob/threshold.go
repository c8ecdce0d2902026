package blob

// histogram counts 8-bit luminance values.
type histogram [256]int

// otsuThreshold picks the global threshold k that maximizes the between-class
// variance of the luminance histogram. Pixels with value <= k form the dark
// (ink) class. The second return value is false when the histogram is
// unimodal-degenerate (fewer than two populated bins), in which case no
// meaningful foreground/background split exists.
func otsuThreshold(hist histogram, total int) (uint8, bool) {
	if total == 0 {
		return 0, false
	}
	populated := 0
	var sum float64
	for v, c := range hist {
		if c > 0 {
			populated++
		}
		sum += float64(v) * float64(c)
	}
	if populated < 2 {
		return 0, false
	}

	var sumB, wB float64
	best := 0.0
	bestK := 0
	for k := range 256 {
		wB += float64(hist[k])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(k) * float64(hist[k])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			bestK = k
		}
	}
	return uint8(bestK), true
}
