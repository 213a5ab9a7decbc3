package photonmap

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Salts that derive the per-pass seeds from Settings.Seed.
const (
	generalSalt = 0x1b873593
	causticSalt = 0x2545f491
)

// RunStats is what a render reports when it is done.
type RunStats struct {
	GeneralPhotons int
	CausticPhotons int
	Trace          time.Duration
	Build          time.Duration
	Render         time.Duration
	Output         time.Duration
}

func (r RunStats) String() string {
	return fmt.Sprintf("photons general=%d caustic=%d, trace %s, build %s, render %s, output %s",
		r.GeneralPhotons, r.CausticPhotons, r.Trace, r.Build, r.Render, r.Output)
}

// BuildPhotonMaps traces the general and caustic passes and indexes both.
func BuildPhotonMaps(ctx context.Context, scene Scene, lights []Light, s Settings, log Logger) (general, caustic *RTreePhotonMap, st RunStats, err error) {
	total := s.GeneralPhotons + s.CausticPhotons
	tr := NewTracer(scene, s, log)

	start := time.Now()
	gp, err := tr.TraceAll(ctx, lights, total, false, s.Seed^generalSalt)
	if err != nil {
		return nil, nil, st, fmt.Errorf("general pass: %w", err)
	}
	cp, err := tr.TraceAll(ctx, lights, total, true, s.Seed^causticSalt)
	if err != nil {
		return nil, nil, st, fmt.Errorf("caustic pass: %w", err)
	}
	st.Trace = time.Since(start)

	start = time.Now()
	general, caustic = BuildPhotonMap(gp), BuildPhotonMap(cp)
	st.Build = time.Since(start)
	st.GeneralPhotons, st.CausticPhotons = general.Len(), caustic.Len()
	return general, caustic, st, nil
}

// Render runs the full pipeline for cfg and returns the raw (pre-tone-map) radiance.
func Render(ctx context.Context, cfg *Config, log Logger) (*RadianceBuffer, RunStats, error) {
	if log == nil {
		log = NopLogger
	}
	s := cfg.Settings
	if err := s.Validate(); err != nil {
		return nil, RunStats{}, err
	}
	world, err := cfg.BuildWorld()
	if err != nil {
		return nil, RunStats{}, err
	}
	lights, err := cfg.BuildLights()
	if err != nil {
		return nil, RunStats{}, err
	}
	cam, err := cfg.BuildCamera(world)
	if err != nil {
		return nil, RunStats{}, err
	}
	if Debug && s.ProbePhotons > 0 {
		if _, err := ProbeLights(world, lights, s, log); err != nil {
			return nil, RunStats{}, err
		}
	}

	general, caustic, st, err := BuildPhotonMaps(ctx, world, lights, s, log)
	if err != nil {
		return nil, st, err
	}
	DebugLog("Photon maps: general=%d caustic=%d", st.GeneralPhotons, st.CausticPhotons)

	start := time.Now()
	buf, err := NewRenderer(world, lights, cam, general, caustic, s, log).Render(ctx, s.Seed)
	if err != nil {
		return nil, st, err
	}
	st.Render = time.Since(start)
	return buf, st, nil
}

// Run renders cfg and writes the requested outputs.
func Run(ctx context.Context, cfg *Config, log Logger) (RunStats, error) {
	if log == nil {
		log = NopLogger
	}
	resetTraceLog()
	HostReport(log, cfg.Settings)

	buf, st, err := Render(ctx, cfg, log)
	if err != nil {
		return st, err
	}
	if Debug {
		traceStats(log)
	}

	start := time.Now()
	base := strings.TrimSuffix(cfg.ImageOut, ".png")
	if RAW {
		if err := buf.SaveRawRGB64(base + ".raw"); err != nil {
			return st, err
		}
		DebugLog("Saved raw radiance: %s.raw", base)
	}
	if CSV {
		if err := buf.SaveCSV(base + ".csv"); err != nil {
			return st, err
		}
		DebugLog("Saved radiance CSV: %s.csv", base)
	}
	ToneMap(buf, cfg.ToneMapA)
	if PNG {
		if err := SavePNG16(buf, cfg.ImageOut, cfg.Gamma, log); err != nil {
			return st, err
		}
		DebugLog("Saved PNG: %s", cfg.ImageOut)
	}
	st.Output = time.Since(start)
	log.Printf("Done: %s\n", st)
	return st, nil
}

// Merge averages raw radiance dumps of identical size, tone-maps the mean and writes a PNG.
func Merge(paths []string, out string, a, gamma Real, log Logger) error {
	if len(paths) == 0 {
		return fmt.Errorf("%w: no raw files to merge", ErrDimensionMismatch)
	}
	bufs := make([]*RadianceBuffer, 0, len(paths))
	for _, p := range paths {
		b, err := LoadRawRGB64(p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		bufs = append(bufs, b)
	}
	mean, err := AverageBuffers(bufs)
	if err != nil {
		return err
	}
	ToneMap(mean, a)
	if err := SavePNG16(mean, out, gamma, log); err != nil {
		return err
	}
	DebugLog("Merged %d raw files into %s", len(paths), out)
	return nil
}
