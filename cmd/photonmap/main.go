package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"

	"github.com/lukaszgryglicki/photonmap/internal/photonmap"
)

// resolution parses "WxH".
type resolution struct{ w, h int }

func (r *resolution) String() string { return fmt.Sprintf("%dx%d", r.w, r.h) }

func (r *resolution) Set(s string) error {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return fmt.Errorf("expected WxH, got %q", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return err
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return err
	}
	r.w, r.h = w, h
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// run never exits the process; deferred profile and signal cleanup always runs.
func run(args []string) error {
	photonmap.Debug = os.Getenv("DEBUG") != ""
	photonmap.PNG = os.Getenv("SKIP_PNG") == ""
	photonmap.RAW = os.Getenv("RAW") != ""
	photonmap.CSV = os.Getenv("CSV") != ""
	photonmap.AlwaysBVH = os.Getenv("ALWAYS_BVH") != ""
	photonmap.NeverBVH = os.Getenv("NEVER_BVH") != ""
	profile := os.Getenv("PROFILE") != ""

	fs := flag.NewFlagSet("photonmap", flag.ContinueOnError)
	var (
		res        resolution
		samples    = fs.Int("num_samples", 0, "samples per pixel")
		general    = fs.Int("num_general_map", 0, "general photon budget")
		caustic    = fs.Int("num_caustic_map", 0, "caustic photon budget")
		estimate   = fs.Int("num_photon_estimate", 0, "photons per flux estimate")
		generalR   = fs.Float64("general_search_range", 0, "general search radius, proportion of the scene radius")
		causticR   = fs.Float64("caustic_search_range", 0, "caustic search radius, proportion of the scene radius")
		toneA      = fs.Float64("tone_map_const", photonmap.DefaultToneMapA, "tone map key value")
		maxBounces = fs.Int("max_bounces", 0, "max bounces, -1 for unbounded")
		seed       = fs.Int64("seed", 0, "random seed")
		workers    = fs.Int("workers", 0, "parallel workers")
		gamma      = fs.Float64("gamma", photonmap.DefaultGamma, "output gamma")
		out        = fs.String("out", "", "output PNG path")
		raw        = fs.Bool("raw", false, "also dump raw radiance (binary)")
		csvOut     = fs.Bool("csv", false, "also dump raw radiance (CSV)")
		merge      = fs.String("merge", "", "average the raw files given as arguments into this PNG")
		verbose    = fs.Bool("v", false, "verbose trace statistics")
	)
	fs.Var(&res, "resolution", "image resolution WxH")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return err
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}
	photonmap.Debug = photonmap.Debug || *verbose
	photonmap.RAW = photonmap.RAW || *raw
	photonmap.CSV = photonmap.CSV || *csvOut

	if *merge != "" {
		return photonmap.Merge(fs.Args(), *merge, *toneA, *gamma, photonmap.DefaultLogger)
	}

	path := "scenes/config.json"
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	cfg, err := photonmap.LoadConfig(path)
	if err != nil {
		return err
	}
	s := &cfg.Settings
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "resolution":
			s.Width, s.Height = res.w, res.h
		case "num_samples":
			s.Samples = *samples
		case "num_general_map":
			s.GeneralPhotons = *general
		case "num_caustic_map":
			s.CausticPhotons = *caustic
		case "num_photon_estimate":
			s.PhotonEstimate = *estimate
		case "general_search_range":
			s.GeneralRange = *generalR
		case "caustic_search_range":
			s.CausticRange = *causticR
		case "tone_map_const":
			s.ToneMapA = *toneA
		case "max_bounces":
			s.MaxBounces = *maxBounces
		case "seed":
			s.Seed = *seed
		case "workers":
			s.Workers = *workers
		case "gamma":
			s.Gamma = *gamma
		case "out":
			s.ImageOut = *out
		}
	})
	if fs.NArg() > 1 {
		s.ImageOut = fs.Arg(1)
	}
	if err := s.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	_, err = photonmap.Run(ctx, cfg, photonmap.DefaultLogger)
	return err
}
