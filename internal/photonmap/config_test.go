package photonmap

import (
	"errors"
	"testing"
)

const minimalConfig = `{
  "lights": [{"type": "point", "position": [0, 1, 0]}],
  "materials": {"white": {"diffuse": {"r": 0.8, "g": 0.8, "b": 0.8}}},
  "spheres": [{"center": [0, 0, 0], "radius": 0.5, "material": "white"}]
}`

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(minimalConfig))
	if err != nil {
		t.Fatal(err)
	}
	s := cfg.Settings
	if s.Width != DefaultWidth || s.Height != DefaultHeight || s.Samples != DefaultSamples {
		t.Fatalf("resolution/samples defaults: %+v", s)
	}
	if s.GeneralPhotons != DefaultGeneralPhotons || s.CausticPhotons != DefaultCausticPhotons || s.PhotonEstimate != DefaultPhotonEstimate {
		t.Fatalf("photon defaults: %+v", s)
	}
	if s.MaxBounces != -1 || s.CameraIOR != 1 || s.Workers < 1 || s.ToneMapA != DefaultToneMapA {
		t.Fatalf("other defaults: %+v", s)
	}
	if s.GeneralRange != 0.07 || s.CausticRange != 0.1 || s.PhotonTermination != 0.05 || s.CameraTermination != 0.001 {
		t.Fatalf("range/termination defaults: %+v", s)
	}
	lights, err := cfg.BuildLights()
	if err != nil || len(lights) != 1 {
		t.Fatalf("lights: %v %v", lights, err)
	}
	if lights[0].LightIntensity() != 1 || lights[0].LightColor() != (RGB{1, 1, 1}) {
		t.Fatalf("light defaults: %+v", lights[0])
	}
	w, err := cfg.BuildWorld()
	if err != nil || len(w.Elements) != 1 || w.Elements[0].Material.Diffuse.R != 0.8 {
		t.Fatalf("world: %+v %v", w, err)
	}
	if w.Elements[0].Material.IOR != 1 || w.Elements[0].Material.Shininess != 1 {
		t.Fatalf("material defaults: %+v", w.Elements[0].Material)
	}
	cam, err := cfg.BuildCamera(w)
	if err != nil || cam.Width != DefaultWidth {
		t.Fatalf("camera: %+v %v", cam, err)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	if _, err := ParseConfig([]byte(`{"spheres": []}`)); !errors.Is(err, ErrNoLights) {
		t.Fatalf("expected ErrNoLights, got %v", err)
	}
	if _, err := ParseConfig([]byte(`{"photonTermination": 1.5, "lights": [{"type": "point"}]}`)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := ParseConfig([]byte(`{"samples": -3, "lights": [{"type": "point"}]}`)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for negative samples, got %v", err)
	}
	if _, err := ParseConfig([]byte(`{not json`)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for bad json, got %v", err)
	}

	cfg, err := ParseConfig([]byte(`{"lights": [{"type": "nova"}], "spheres": [{"radius": 1, "material": "gold"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.BuildLights(); !errors.Is(err, ErrUnknownLightType) {
		t.Fatalf("expected ErrUnknownLightType, got %v", err)
	}
	if _, err := cfg.BuildWorld(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for unknown material, got %v", err)
	}
}

func TestParseConfig_ExplicitZeros(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
  "photonTermination": 0, "cameraTermination": 0, "maxBounces": 0, "workers": 0, "seed": 0,
  "lights": [{"type": "point", "position": [0, 1, 0]}]
}`))
	if err != nil {
		t.Fatal(err)
	}
	s := cfg.Settings
	if s.PhotonTermination != 0 || s.CameraTermination != 0 || s.MaxBounces != 0 {
		t.Fatalf("explicit zeros replaced: termination=%g/%g maxBounces=%d", s.PhotonTermination, s.CameraTermination, s.MaxBounces)
	}
	if s.Workers < 1 || s.Width != DefaultWidth || s.ImageOut != DefaultImageOut {
		t.Fatalf("resolved settings: %+v", s)
	}
	if _, err := ParseConfig([]byte(`{"maxBounces": -7, "lights": [{"type": "point"}]}`)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for maxBounces -7, got %v", err)
	}
	cfg, err = ParseConfig([]byte(`{"maxBounces": -1, "lights": [{"type": "point"}]}`))
	if err != nil || cfg.MaxBounces != -1 {
		t.Fatalf("unbounded maxBounces: %+v %v", cfg, err)
	}
}

func TestParseConfig_ExplicitZeroIntensity(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"lights": [{"type": "area", "position": [0,1,0], "direction": [0,-1,0], "radius": 0.2, "intensity": 0}]}`))
	if err != nil {
		t.Fatal(err)
	}
	lights, err := cfg.BuildLights()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := lights[0].(*AreaLight); !ok || lights[0].LightIntensity() != 0 {
		t.Fatalf("expected a dark area light, got %+v", lights[0])
	}
}

func TestLoadConfig_ExampleScenes(t *testing.T) {
	for _, path := range []string{"../../scenes/config.json", "../../scenes/caustic.json"} {
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		w, err := cfg.BuildWorld()
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if _, err := cfg.BuildLights(); err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if _, err := cfg.BuildCamera(w); err != nil {
			t.Fatalf("%s: %v", path, err)
		}
	}
}
