package audio

// Resample maps samples at rate from to rate to using linear interpolation
// over sample indices. The output length is computed from the buffer's
// duration, so equal inputs always produce equal lengths. Interpolation is
// adequate for speech recognition; this is not an archival resampler.
func Resample(samples []int16, from, to int) []int16 {
	if from == to || len(samples) == 0 || from <= 0 || to <= 0 {
		return samples
	}

	duration := float64(len(samples)) / float64(from)
	targetLen := int(duration * float64(to))
	if targetLen <= 0 {
		return nil
	}

	out := make([]int16, targetLen)
	if len(samples) == 1 {
		for i := range out {
			out[i] = samples[0]
		}
		return out
	}

	// Index i of the output maps to position i*(n-1)/(m-1) in the input,
	// interpolating between the two neighboring samples.
	step := float64(len(samples)-1) / float64(targetLen-1)
	if targetLen == 1 {
		step = 0
	}
	for i := range out {
		pos := float64(i) * step
		idx := int(pos)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := pos - float64(idx)
		a := float64(samples[idx])
		b := float64(samples[idx+1])
		out[i] = int16(a + (b-a)*frac)
	}
	return out
}
