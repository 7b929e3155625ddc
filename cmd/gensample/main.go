package main

import (
	"encoding/csv"
	"flag"
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"
)

// gensample writes a synthetic chromatogram CSV for trying out the dashboard:
// a few skewed gaussian peaks on a drifting baseline, time axis in seconds so
// the unit conversion path gets exercised too.
func main() {
	out := flag.String("out", "sample_chromatogram.csv", "output file path")
	points := flag.Int("points", 2000, "number of samples")
	peaks := flag.Int("peaks", 3, "number of peaks")
	noise := flag.Float64("noise", 0.5, "gaussian noise amplitude")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	if *points < 10 || *peaks < 1 {
		log.Fatal("Error: need at least 10 points and 1 peak")
	}

	rng := rand.New(rand.NewSource(*seed))
	duration := 600.0 // seconds

	type peakSpec struct {
		center, sigma, amp, skew float64
	}
	specs := make([]peakSpec, *peaks)
	for i := range specs {
		specs[i] = peakSpec{
			center: duration * (0.15 + 0.7*float64(i)/float64(*peaks)),
			sigma:  5 + rng.Float64()*10,
			amp:    20 + rng.Float64()*80,
			skew:   rng.Float64() * 3,
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal("Error: failed to create output file:", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Tempo", "Sinal"}); err != nil {
		log.Fatal("Error: failed to write header:", err)
	}

	for i := 0; i < *points; i++ {
		t := duration * float64(i) / float64(*points-1)
		// Slow baseline drift plus noise.
		signal := 2 + t/duration + rng.NormFloat64()*(*noise)
		for _, p := range specs {
			z := (t - p.center) / p.sigma
			signal += p.amp * math.Exp(-z*z/2) * (1 + math.Erf(p.skew*z/math.Sqrt2))
		}
		row := []string{
			strconv.FormatFloat(t, 'f', 3, 64),
			strconv.FormatFloat(signal, 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			log.Fatal("Error: failed to write row:", err)
		}
	}

	log.Printf("Wrote %d samples with %d peaks to %s", *points, *peaks, *out)
}
