package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wbrown/paintmix"
	"github.com/wbrown/paintmix/imageutil"
)

func main() {
	targetHex := flag.String("target", "",
		"Target color as a hex string, e.g. #E2725B")
	targetLab := flag.String("lab", "",
		"Target color as comma-separated LAB values, e.g. 62.9,28.8,35.2")
	imageFile := flag.String("image", "",
		"Path to an image; its dominant colors are extracted and matched")
	catalogFile := flag.String("catalog", "",
		"Path to a paint catalog JSON file (default: embedded classic oils)")
	topK := flag.Int("top", 5,
		"Number of recipes to report per target")
	budget := flag.Int("budget", 20000,
		"Maximum candidate evaluations per match")
	clusters := flag.Int("clusters", 5,
		"Number of dominant colors to extract from an image")
	seed := flag.Int64("seed", 0,
		"Random seed for palette extraction (0 = time-based)")
	cardFile := flag.String("card", "",
		"Path to write a PNG swatch card of the results")
	fontPath := flag.String("font", "",
		"Path to a TTF font, required for -card output")
	useGocv := flag.Bool("gocv", false,
		"Use the OpenCV image pipeline instead of the pure Go one")
	maxDim := flag.Int("maxdim", 256,
		"Longest image side after downscaling, before sampling")
	maxSamples := flag.Int("samples", 4096,
		"Maximum pixel samples fed to palette extraction")
	flag.Parse()

	if *targetHex == "" && *targetLab == "" && *imageFile == "" {
		fmt.Println("Please provide a target with -target, -lab, or -image")
		flag.PrintDefaults()
		os.Exit(1)
	}

	catalog, err := loadCatalog(*catalogFile)
	if err != nil {
		fmt.Printf("Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	matcher := paintmix.NewMatcher(catalog,
		paintmix.WithTopK(*topK),
		paintmix.WithMaxEvaluations(*budget))

	targets, err := collectTargets(*targetHex, *targetLab, *imageFile,
		*useGocv, *maxDim, *maxSamples, *clusters, *seed)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	for _, t := range targets {
		recipes := matcher.Match(t.lab)
		printTarget(t, recipes)

		if *cardFile != "" {
			if *fontPath == "" {
				fmt.Println("A TTF font is required for -card output; use -font")
				os.Exit(1)
			}
			card, err := paintmix.RenderSwatchCard(t.lab, recipes, *fontPath)
			if err != nil {
				fmt.Printf("Error rendering swatch card: %v\n", err)
				os.Exit(1)
			}
			out := cardPath(*cardFile, t.index, len(targets))
			if err := imageutil.SaveImage(card, out); err != nil {
				fmt.Printf("Error writing swatch card: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Swatch card written to %s\n", out)
		}
	}
	fmt.Printf("Match time: %v\n", time.Since(start))
}

type target struct {
	index      int
	lab        paintmix.LAB
	percentage float64
	fromImage  bool
}

func loadCatalog(path string) (*paintmix.Catalog, error) {
	if path == "" {
		return paintmix.EmbeddedCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return paintmix.LoadCatalog(data)
}

func collectTargets(hex, lab, imagePath string, useGocv bool,
	maxDim, maxSamples, clusters int, seed int64) ([]target, error) {

	var targets []target

	if hex != "" {
		rgb, err := paintmix.ParseHex(hex)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target{lab: paintmix.RGBToLAB(rgb)})
	}

	if lab != "" {
		parsed, err := parseLAB(lab)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target{lab: parsed})
	}

	if imagePath != "" {
		var samples []paintmix.RGB
		var err error
		if useGocv {
			samples, err = paintmix.SampleImageGoCV(imagePath, maxDim, maxSamples)
		} else {
			samples, err = paintmix.SampleImage(imagePath, maxDim, maxSamples)
		}
		if err != nil {
			return nil, err
		}

		var rng *rand.Rand
		if seed != 0 {
			rng = rand.New(rand.NewSource(seed))
		}
		palette := paintmix.ExtractPalette(samples, clusters, 20, rng)
		for _, c := range palette {
			targets = append(targets, target{
				lab:        paintmix.RGBToLAB(c.Centroid),
				percentage: c.Percentage,
				fromImage:  true,
			})
		}
	}

	for i := range targets {
		targets[i].index = i
	}
	return targets, nil
}

func parseLAB(s string) (paintmix.LAB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return paintmix.LAB{}, fmt.Errorf("invalid LAB %q: want L,a,b", s)
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return paintmix.LAB{}, fmt.Errorf("invalid LAB %q: %w", s, err)
		}
		vals[i] = v
	}
	return paintmix.LAB{L: vals[0], A: vals[1], B: vals[2]}, nil
}

func printTarget(t target, recipes []paintmix.Recipe) {
	rgb := paintmix.LABToRGB(t.lab)
	if t.fromImage {
		fmt.Printf("\nDominant color %s (%.1f%% of image), LAB %.1f,%.1f,%.1f\n",
			rgb.Hex(), t.percentage, t.lab.L, t.lab.A, t.lab.B)
	} else {
		fmt.Printf("\nTarget %s, LAB %.1f,%.1f,%.1f\n",
			rgb.Hex(), t.lab.L, t.lab.A, t.lab.B)
	}

	if len(recipes) == 0 {
		fmt.Println("  No recipes found")
		return
	}
	for i, r := range recipes {
		fmt.Printf("  %d. %s estimated %s (%.1f%% match)\n",
			i+1, formatComponents(r), r.EstimatedHex, r.MatchPercentage)
	}
}

func formatComponents(r paintmix.Recipe) string {
	parts := make([]string, len(r.Components))
	for i, c := range r.Components {
		parts[i] = fmt.Sprintf("%s %.0f%%", c.Paint.Name, c.Proportion*100)
	}
	return strings.Join(parts, " + ")
}

func cardPath(base string, index, total int) string {
	if total <= 1 {
		return base
	}
	ext := ".png"
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s_%d%s", stem, index+1, ext)
}
