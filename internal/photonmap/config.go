package photonmap

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
)

// Settings holds every render parameter; stages copy what they need at construction.
type Settings struct {
	Width             int    `json:"width"`
	Height            int    `json:"height"`
	GeneralPhotons    int    `json:"generalPhotons"`
	CausticPhotons    int    `json:"causticPhotons"`
	Samples           int    `json:"samples"`
	ToneMapA          Real   `json:"toneMapA"`
	GeneralRange      Real   `json:"generalRange"` // proportion of the scene radius
	CausticRange      Real   `json:"causticRange"` // proportion of the scene radius
	PhotonEstimate    int    `json:"photonEstimate"`
	PhotonTermination Real   `json:"photonTermination"`
	CameraTermination Real   `json:"cameraTermination"`
	MaxBounces        int    `json:"maxBounces"` // -1 ⇒ unbounded
	CameraIOR         Real   `json:"cameraIOR"`
	Workers           int    `json:"workers,omitempty"` // 0 ⇒ all logical CPUs
	Seed              int64  `json:"seed,omitempty"`
	ProbePhotons      int    `json:"probePhotons,omitempty"`
	Gamma             Real   `json:"gamma,omitempty"`
	ImageOut          string `json:"imageOut,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		GeneralPhotons:    DefaultGeneralPhotons,
		CausticPhotons:    DefaultCausticPhotons,
		Samples:           DefaultSamples,
		ToneMapA:          DefaultToneMapA,
		GeneralRange:      DefaultGeneralRange,
		CausticRange:      DefaultCausticRange,
		PhotonEstimate:    DefaultPhotonEstimate,
		PhotonTermination: DefaultPhotonTermination,
		CameraTermination: DefaultCameraTermination,
		MaxBounces:        DefaultMaxBounces,
		CameraIOR:         DefaultCameraIOR,
		Workers:           DefaultWorkers(),
		ProbePhotons:      DefaultProbePhotons,
		Gamma:             DefaultGamma,
		ImageOut:          DefaultImageOut,
	}
}

// normalize resolves the settings whose zero value means "pick for me".
// Every other field keeps what the config says, zero included.
func (s *Settings) normalize() {
	if s.Workers == 0 {
		s.Workers = DefaultWorkers()
	}
	if s.ImageOut == "" {
		s.ImageOut = DefaultImageOut
	}
}

func (s *Settings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return errorf(ErrInvalidConfig, "resolution must be > 0, got %dx%d", s.Width, s.Height)
	case s.GeneralPhotons < 0 || s.CausticPhotons < 0:
		return errorf(ErrInvalidConfig, "photon counts must be >= 0, got general=%d caustic=%d", s.GeneralPhotons, s.CausticPhotons)
	case s.Samples <= 0:
		return errorf(ErrInvalidConfig, "samples per pixel must be > 0, got %d", s.Samples)
	case !(s.ToneMapA > 0) || !isFinite(s.ToneMapA):
		return errorf(ErrInvalidConfig, "tone map constant must be > 0, got %g", s.ToneMapA)
	case !(s.GeneralRange > 0) || !(s.CausticRange > 0):
		return errorf(ErrInvalidConfig, "search ranges must be > 0, got general=%g caustic=%g", s.GeneralRange, s.CausticRange)
	case s.PhotonEstimate <= 0:
		return errorf(ErrInvalidConfig, "photon estimate count must be > 0, got %d", s.PhotonEstimate)
	case !(s.PhotonTermination >= 0 && s.PhotonTermination < 1):
		return errorf(ErrInvalidConfig, "photon termination rate must be in [0,1), got %g", s.PhotonTermination)
	case !(s.CameraTermination >= 0 && s.CameraTermination < 1):
		return errorf(ErrInvalidConfig, "camera termination rate must be in [0,1), got %g", s.CameraTermination)
	case s.MaxBounces < -1:
		return errorf(ErrInvalidConfig, "max bounces must be >= 0, or -1 for unbounded, got %d", s.MaxBounces)
	case !(s.CameraIOR > 0) || !isFinite(s.CameraIOR):
		return errorf(ErrInvalidConfig, "camera IOR must be > 0, got %g", s.CameraIOR)
	case s.Workers < 1:
		return errorf(ErrInvalidConfig, "workers must be >= 1, got %d", s.Workers)
	case s.ProbePhotons < 0:
		return errorf(ErrInvalidConfig, "probe photons must be >= 0, got %d", s.ProbePhotons)
	case !(s.Gamma > 0):
		return errorf(ErrInvalidConfig, "gamma must be > 0, got %g", s.Gamma)
	}
	return nil
}

type CameraCfg struct {
	Eye    Vec3 `json:"eye"`
	LookAt Vec3 `json:"lookAt"`
	Up     Vec3 `json:"up,omitempty"`
	FOVDeg Real `json:"fovDeg,omitempty"`
}

type LightCfg struct {
	Type      string `json:"type"` // point | spot | directional | area
	Position  Vec3   `json:"position"`
	Direction Vec3   `json:"direction"`
	Color     *RGB   `json:"color,omitempty"`     // defaults to white
	Intensity *Real  `json:"intensity,omitempty"` // defaults to 1
	CutOffDeg Real   `json:"cutOffDeg,omitempty"`
	Radius    Real   `json:"radius,omitempty"`
}

type MaterialCfg struct {
	Diffuse      RGB  `json:"diffuse"`
	Specular     RGB  `json:"specular"`
	Transmission RGB  `json:"transmission"`
	Emission     RGB  `json:"emission"`
	Shininess    Real `json:"shininess,omitempty"` // defaults 1
	IOR          Real `json:"ior,omitempty"`       // defaults 1
}

type SphereCfg struct {
	Name     string `json:"name,omitempty"`
	Center   Vec3   `json:"center"`
	Radius   Real   `json:"radius"`
	Material string `json:"material,omitempty"`
}

type TriangleCfg struct {
	Name     string `json:"name,omitempty"`
	A        Vec3   `json:"a"`
	B        Vec3   `json:"b"`
	C        Vec3   `json:"c"`
	Material string `json:"material,omitempty"`
}

// QuadCfg is the parallelogram Corner, Corner+U, Corner+U+V, Corner+V.
type QuadCfg struct {
	Name     string `json:"name,omitempty"`
	Corner   Vec3   `json:"corner"`
	U        Vec3   `json:"u"`
	V        Vec3   `json:"v"`
	Material string `json:"material,omitempty"`
}

type DiskCfg struct {
	Name     string `json:"name,omitempty"`
	Center   Vec3   `json:"center"`
	Normal   Vec3   `json:"normal"`
	Radius   Real   `json:"radius"`
	Material string `json:"material,omitempty"`
}

type Config struct {
	Settings
	Camera    CameraCfg              `json:"camera"`
	Lights    []LightCfg             `json:"lights"`
	Materials map[string]MaterialCfg `json:"materials,omitempty"`
	Spheres   []SphereCfg            `json:"spheres,omitempty"`
	Triangles []TriangleCfg          `json:"triangles,omitempty"`
	Quads     []QuadCfg              `json:"quads,omitempty"`
	Disks     []DiskCfg              `json:"disks,omitempty"`
}

// ParseConfig decodes a JSON config, fills defaults and validates it.
func ParseConfig(data []byte) (*Config, error) {
	// omitted fields keep their defaults, explicit zeros survive
	cfg := Config{Settings: DefaultSettings()}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Lights) == 0 {
		return nil, ErrNoLights
	}
	return &cfg, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	DebugLog("Loaded config from %s: %dx%d, photons=%d/%d, spp=%d, lights=%d", path, cfg.Width, cfg.Height, cfg.GeneralPhotons, cfg.CausticPhotons, cfg.Samples, len(cfg.Lights))
	return cfg, nil
}

// Build validates and constructs the runtime light.
func (lc LightCfg) Build() (Light, error) {
	color := RGB{1, 1, 1}
	if lc.Color != nil {
		color = *lc.Color
	}
	intensity := 1.0
	if lc.Intensity != nil {
		intensity = *lc.Intensity
	}
	switch strings.ToLower(strings.TrimSpace(lc.Type)) {
	case "point":
		return NewPointLight(lc.Position, color, intensity)
	case "spot":
		return NewSpotLight(lc.Position, lc.Direction, lc.CutOffDeg*math.Pi/180, color, intensity)
	case "directional":
		return NewDirectionalLight(lc.Direction, color, intensity)
	case "area":
		return NewAreaLight(lc.Position, lc.Direction, lc.Radius, color, intensity)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLightType, lc.Type)
}

func (mc MaterialCfg) Build() (*BRDF, error) {
	b := &BRDF{
		Diffuse:      mc.Diffuse,
		Specular:     mc.Specular,
		Transmission: mc.Transmission,
		Emission:     mc.Emission,
		Shininess:    mc.Shininess,
		IOR:          mc.IOR,
	}
	if b.Shininess == 0 {
		b.Shininess = 1
	}
	if b.IOR == 0 {
		b.IOR = 1
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// BuildLights returns the runtime lights in config order.
func (c *Config) BuildLights() ([]Light, error) {
	if len(c.Lights) == 0 {
		return nil, ErrNoLights
	}
	lights := make([]Light, 0, len(c.Lights))
	for i, lc := range c.Lights {
		L, err := lc.Build()
		if err != nil {
			return nil, fmt.Errorf("light #%d: %w", i, err)
		}
		lights = append(lights, L)
	}
	return lights, nil
}

// BuildWorld resolves materials by name and assembles the scene elements.
func (c *Config) BuildWorld() (*World, error) {
	mats := make(map[string]*BRDF, len(c.Materials))
	for name, mc := range c.Materials {
		b, err := mc.Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		mats[name] = b
	}
	lookup := func(kind string, i int, name string) (*BRDF, error) {
		if name == "" {
			return nil, nil
		}
		b, ok := mats[name]
		if !ok {
			return nil, errorf(ErrInvalidConfig, "%s #%d: unknown material %q", kind, i, name)
		}
		return b, nil
	}
	var elems []*Element
	add := func(kind string, i int, name, mat string, sh Shape) error {
		b, err := lookup(kind, i, mat)
		if err != nil {
			return err
		}
		if name == "" {
			name = fmt.Sprintf("%s#%d", kind, i)
		}
		elems = append(elems, &Element{Name: name, Shape: sh, Material: b})
		return nil
	}
	for i, s := range c.Spheres {
		if !(s.Radius > 0) {
			return nil, errorf(ErrInvalidConfig, "sphere #%d: radius must be > 0, got %g", i, s.Radius)
		}
		if err := add("sphere", i, s.Name, s.Material, &Sphere{Center: s.Center, Radius: s.Radius}); err != nil {
			return nil, err
		}
	}
	for i, t := range c.Triangles {
		if t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Len() < 1e-12 {
			return nil, errorf(ErrInvalidConfig, "triangle #%d is degenerate", i)
		}
		if err := add("triangle", i, t.Name, t.Material, &Triangle{A: t.A, B: t.B, C: t.C}); err != nil {
			return nil, err
		}
	}
	for i, q := range c.Quads {
		if q.U.Cross(q.V).Len() < 1e-12 {
			return nil, errorf(ErrInvalidConfig, "quad #%d is degenerate", i)
		}
		if err := add("quad", i, q.Name, q.Material, &Quad{Corner: q.Corner, U: q.U, V: q.V}); err != nil {
			return nil, err
		}
	}
	for i, d := range c.Disks {
		if !(d.Radius > 0) || d.Normal.Len() < 1e-12 {
			return nil, errorf(ErrInvalidConfig, "disk #%d: needs radius > 0 and a non-zero normal", i)
		}
		if err := add("disk", i, d.Name, d.Material, &Disk{Center: d.Center, Normal: norm(d.Normal), Radius: d.Radius}); err != nil {
			return nil, err
		}
	}
	if len(elems) == 0 {
		return nil, errorf(ErrInvalidConfig, "scene has no elements")
	}
	return NewWorld(elems), nil
}

// BuildCamera uses the configured view, or frames the whole scene along -Z when none is given.
func (c *Config) BuildCamera(scene Scene) (*Camera, error) {
	cc := c.Camera
	fov := cc.FOVDeg
	if fov == 0 {
		fov = DefaultFOVDeg
	}
	up := cc.Up
	if up == (Vec3{}) {
		up = Vec3{0, 1, 0}
	}
	eye, at := cc.Eye, cc.LookAt
	if eye == at {
		center, radius := scene.Bounds()
		dist := radius / math.Sin(fov*math.Pi/360)
		at = center
		eye = center.Add(Vec3{0, 0, dist})
	}
	cam, err := NewCamera(eye, at, up, fov, c.Width, c.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cam, nil
}
