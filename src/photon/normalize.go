package photon

import "fmt"

// Normalize converts frequencies into probabilities by dividing each bucket by
// totalMeasurements. The divisor is the declared measurement count, which may
// differ from freq.Total().
func Normalize(freq Frequency, totalMeasurements int) ([]float64, error) {
	if totalMeasurements <= 0 {
		return nil, &ArithmeticError{Op: "normalize", Reason: fmt.Sprintf("total measurements is %d", totalMeasurements)}
	}
	probs := make([]float64, len(freq))
	for i, c := range freq {
		probs[i] = float64(c) / float64(totalMeasurements)
	}
	return probs, nil
}
