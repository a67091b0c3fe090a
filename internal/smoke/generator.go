package smoke

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const randomFloatDivisor = 1000000

// Study-hours bands. Most students study a moderate amount.
const (
	bandLight    = 0
	bandModerate = 1
	bandHeavy    = 2
	bandCount    = 4

	lightMin, lightRange       = 0.5, 7.5
	moderateMin, moderateRange = 8.0, 12.0
	heavyMin, heavyRange       = 20.0, 10.0
)

// randomFloat returns a value in [0, 1) using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / randomFloatDivisor
}

// generateStudents creates n students with unique names.
func generateStudents(n int) []Student {
	out := make([]Student, n)
	for i := range out {
		out[i] = Student{
			Name:       "smoke-" + uuid.NewString()[:8],
			StudyHours: studyHours(),
		}
	}
	return out
}

func studyHours() float64 {
	band, _ := rand.Int(rand.Reader, big.NewInt(bandCount))
	switch band.Int64() {
	case bandLight:
		return lightMin + randomFloat()*lightRange
	case bandHeavy:
		return heavyMin + randomFloat()*heavyRange
	case bandModerate:
		fallthrough
	default:
		return moderateMin + randomFloat()*moderateRange
	}
}
