// Package common holds small helpers shared by analyzers and entry points.
package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type number interface {
	~int | ~int64 | ~float64
}

func floatsOf[T number](xs []T) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

func Sum[T number](xs []T) float64 {
	return floats.Sum(floatsOf(xs))
}

// Mean is 0 for an empty slice.
func Mean[T number](xs []T) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(floatsOf(xs), nil)
}

// Median averages the two middle values of an even-length slice.
func Median[T number](xs []T) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := floatsOf(xs)
	slices.Sort(sorted)
	lower := stat.Quantile(0.5, stat.Empirical, sorted, nil)
	if len(sorted)%2 == 1 {
		return lower
	}
	return (lower + sorted[len(sorted)/2]) / 2
}

// Variance is the sample variance; 0 below two values.
func Variance[T number](xs []T) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.Variance(floatsOf(xs), nil)
}

// StdDev is the sample standard deviation.
func StdDev[T number](xs []T) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(floatsOf(xs), nil)
}

// Entropy is the Shannon entropy, in bits, of a frequency table.
func Entropy(counts []int) float64 {
	p := floatsOf(counts)
	total := floats.Sum(p)
	if total == 0 {
		return 0
	}
	floats.Scale(1/total, p)
	return stat.Entropy(p) / math.Ln2
}

// DecodeJSON unmarshals a JSON document into T. Documents pasted from chat or
// markdown often arrive inside a ``` fence or with a leading BOM; both are
// stripped first.
func DecodeJSON[T any](data []byte) (T, error) {
	var out T
	doc := bytes.TrimPrefix(bytes.TrimSpace(data), []byte("\xef\xbb\xbf"))
	if bytes.HasPrefix(doc, []byte("```")) {
		if nl := bytes.IndexByte(doc, '\n'); nl >= 0 {
			doc = doc[nl+1:]
		}
		doc = bytes.TrimSuffix(bytes.TrimSpace(doc), []byte("```"))
	}
	doc = bytes.TrimSpace(doc)
	if len(doc) == 0 {
		return out, fmt.Errorf("empty JSON document")
	}
	if err := json.Unmarshal(doc, &out); err != nil {
		return out, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return out, nil
}
