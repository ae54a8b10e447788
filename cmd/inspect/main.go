package main

// inspect draws non-match samples around a few matches and writes a scatter
// plot so a sampler configuration can be checked by eye before training.
//
// Usage:
//   go run ./cmd/inspect -name ring -inner 10 -outer 12 -matches 240:320,100:100
//   go run ./cmd/inspect -config sampler.yaml -n 200 -out plots

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Noofbiz/denseCorr/datasets"
	"github.com/Noofbiz/denseCorr/sampler"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func main() {
	configPath := flag.String("config", "", "path to a sampler config file (.json, .yaml, .yml); flags below override it")
	name := flag.String("name", "", "sampling strategy: random, ring or don")
	inner := flag.Int("inner", -1, "ring inner radius in pixels")
	outer := flag.Int("outer", -1, "ring outer radius in pixels")
	maskWeight := flag.Float64("mask-weight", -1, "don mask weight")
	backgroundWeight := flag.Float64("background-weight", -1, "don background weight")
	width := flag.Int("width", datasets.DefaultImageWidth, "image width in pixels")
	height := flag.Int("height", datasets.DefaultImageHeight, "image height in pixels")
	seed := flag.Uint64("seed", 0, "random seed (0 = time based)")
	numSamples := flag.Int("n", 100, "number of samples per match")
	matchesFlag := flag.String("matches", "240:320", "comma-separated row:col match locations in image B")
	maskBox := flag.String("mask-box", "", "row0:col0:row1:col1 box treated as the object mask for don (default: 80px around the matches)")
	outDir := flag.String("out", "plots", "output directory for the generated plot (empty to skip plotting)")
	printEffectiveConfig := flag.Bool("print-effective-config", false, "print the effective (file+CLI merged) configuration and exit")
	flag.Parse()

	var cfg sampler.Config
	if *configPath != "" {
		var err error
		cfg, err = sampler.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load sampler config %s: %v", *configPath, err)
		}
		log.Printf("Loaded sampler config from %s", *configPath)
	}

	// explicit CLI flags override the file
	if *name != "" {
		cfg.Name = *name
	}
	if *inner >= 0 {
		cfg.InnerRadius = inner
	}
	if *outer >= 0 {
		cfg.OuterRadius = outer
	}
	if *maskWeight >= 0 {
		cfg.MaskWeight = maskWeight
	}
	if *backgroundWeight >= 0 {
		cfg.BackgroundWeight = backgroundWeight
	}
	if cfg.ImageWidth == 0 {
		cfg.ImageWidth = *width
	}
	if cfg.ImageHeight == 0 {
		cfg.ImageHeight = *height
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Name == "" {
		cfg.Name = string(sampler.StrategyRandom)
	}

	if *printEffectiveConfig {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			log.Fatalf("failed to encode effective config: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	s, err := sampler.Dispatch(cfg, nil)
	if err != nil {
		log.Fatalf("failed to create sampler: %v", err)
	}
	log.Printf("Using %s sampler on a %dx%d image", s.Strategy(), cfg.ImageWidth, cfg.ImageHeight)

	matches, err := parseMatches(*matchesFlag, cfg.ImageWidth)
	if err != nil {
		log.Fatalf("invalid -matches: %v", err)
	}
	item, err := datasets.NewItem(cfg.ImageWidth, cfg.ImageHeight, matches, matches)
	if err != nil {
		log.Fatalf("invalid matches: %v", err)
	}
	if s.Strategy() == sampler.StrategyDON {
		box, err := resolveMaskBox(*maskBox, item)
		if err != nil {
			log.Fatalf("invalid -mask-box: %v", err)
		}
		masked, background := splitByBox(item, box)
		if err := item.WithNonMatches(masked, background); err != nil {
			log.Fatalf("invalid candidate pools: %v", err)
		}
		log.Printf("DON pools: masked=%d background=%d", len(masked), len(background))
	}

	samples, err := s.Sample(*numSamples, item)
	if err != nil {
		log.Fatalf("sampling failed: %v", err)
	}
	t, err := samples.ToGomlxTensor()
	if err != nil {
		log.Fatalf("failed to convert samples to a tensor: %v", err)
	}
	log.Printf("Drew %d samples per row over %d row(s), tensor shape %v", samples.Len(), samples.Rows, t.Shape())

	if *outDir == "" {
		for r := 0; r < samples.Rows; r++ {
			fmt.Println(samples.Row(r))
		}
		return
	}
	outPath, err := plotSamples(*outDir, s.Strategy(), item, samples)
	if err != nil {
		log.Fatalf("failed to plot samples: %v", err)
	}
	log.Printf("Wrote %s", outPath)
}

// parseMatches parses "row:col,row:col" into flattened indices.
func parseMatches(s string, width int) ([]int64, error) {
	var out []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		rc, err := parseInts(part, 2)
		if err != nil {
			return nil, err
		}
		out = append(out, datasets.FlattenPixel(rc[0], rc[1], width))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no matches given")
	}
	return out, nil
}

func parseInts(s string, n int) ([]int, error) {
	fields := strings.Split(s, ":")
	if len(fields) != n {
		return nil, fmt.Errorf("%q: expected %d ':'-separated integers", s, n)
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

type box struct{ row0, col0, row1, col1 int }

func (b box) contains(row, col int) bool {
	return row >= b.row0 && row <= b.row1 && col >= b.col0 && col <= b.col1
}

// resolveMaskBox parses -mask-box or falls back to a box 80px around the
// matches.
func resolveMaskBox(s string, item *datasets.Item) (box, error) {
	if s != "" {
		v, err := parseInts(s, 4)
		if err != nil {
			return box{}, err
		}
		return box{v[0], v[1], v[2], v[3]}, nil
	}
	const pad = 80
	b := box{row0: math.MaxInt, col0: math.MaxInt, row1: math.MinInt, col1: math.MinInt}
	for _, m := range item.MatchesB {
		r, c := datasets.UnflattenPixel(m, item.Width)
		b.row0, b.col0 = min(b.row0, r-pad), min(b.col0, c-pad)
		b.row1, b.col1 = max(b.row1, r+pad), max(b.col1, c+pad)
	}
	return b, nil
}

// splitByBox builds the don candidate pools: pixels inside the box that are
// not matches, and every pixel outside it.
func splitByBox(item *datasets.Item, b box) (masked, background []int64) {
	isMatch := make(map[int64]bool, len(item.MatchesB))
	for _, m := range item.MatchesB {
		isMatch[m] = true
	}
	for r := 0; r < item.Height; r++ {
		for c := 0; c < item.Width; c++ {
			idx := datasets.FlattenPixel(r, c, item.Width)
			switch {
			case isMatch[idx]:
			case b.contains(r, c):
				masked = append(masked, idx)
			default:
				background = append(background, idx)
			}
		}
	}
	return masked, background
}

// plotSamples writes a PNG with the matches (red) and the drawn samples
// (blue) in image coordinates, row axis pointing down.
func plotSamples(outDir string, strategy sampler.Strategy, item *datasets.Item, samples *sampler.Samples) (string, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s sampler: matches (red), samples (blue)", strategy)
	p.X.Label.Text = "col"
	p.Y.Label.Text = "-row"

	pts := make(plotter.XYs, len(samples.Indices))
	for i, idx := range samples.Indices {
		r, c := datasets.UnflattenPixel(idx, item.Width)
		pts[i] = plotter.XY{X: float64(c), Y: -float64(r)}
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return "", err
	}
	sc.GlyphStyle.Color = color.RGBA{R: 20, G: 80, B: 200, A: 160}
	sc.GlyphStyle.Radius = vg.Points(1.6)
	p.Add(sc)
	p.Legend.Add("samples", sc)

	mpts := make(plotter.XYs, len(item.MatchesB))
	for i, idx := range item.MatchesB {
		r, c := datasets.UnflattenPixel(idx, item.Width)
		mpts[i] = plotter.XY{X: float64(c), Y: -float64(r)}
	}
	ms, err := plotter.NewScatter(mpts)
	if err != nil {
		return "", err
	}
	ms.GlyphStyle.Color = color.RGBA{R: 200, G: 30, B: 30, A: 230}
	ms.GlyphStyle.Radius = vg.Points(3)
	p.Add(ms)
	p.Legend.Add("matches", ms)

	p.Add(plotter.NewGrid())
	xmin, xmax, ymin, ymax := autoRange(append(pts, mpts...))
	p.X.Min = xmin
	p.X.Max = xmax
	p.Y.Min = ymin
	p.Y.Max = ymax

	if err := ensureDir(outDir); err != nil {
		return "", err
	}
	outPath := filepath.Join(outDir, fmt.Sprintf("samples_%s.png", strategy))
	if err := p.Save(8*vg.Inch, 6*vg.Inch, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// autoRange computes padded min/max for X and Y for a set of points.
func autoRange(xs plotter.XYs) (xmin, xmax, ymin, ymax float64) {
	if len(xs) == 0 {
		return -1, 1, -1, 1
	}
	xmin, xmax = math.Inf(1), math.Inf(-1)
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for _, p := range xs {
		xmin, xmax = math.Min(xmin, p.X), math.Max(xmax, p.X)
		ymin, ymax = math.Min(ymin, p.Y), math.Max(ymax, p.Y)
	}
	padx := (xmax - xmin) * 0.06
	pady := (ymax - ymin) * 0.06
	if padx == 0 {
		padx = 1.0
	}
	if pady == 0 {
		pady = 1.0
	}
	return xmin - padx, xmax + padx, ymin - pady, ymax + pady
}

func ensureDir(path string) error {
	if path == "" {
		return nil
	}
	return os.MkdirAll(path, 0755)
}
