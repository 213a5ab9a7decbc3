package photonmap

// Channel indices for readability.
const (
	ChR                      = 0
	ChG                      = 1
	ChB                      = 2
	DefaultWidth             = 200
	DefaultHeight            = 200
	DefaultGeneralPhotons    = 500_000
	DefaultCausticPhotons    = 1_000_000
	DefaultSamples           = 20
	DefaultToneMapA          = 0.3
	DefaultGeneralRange      = 0.07 // proportion of the scene bounding radius
	DefaultCausticRange      = 0.1  // proportion of the scene bounding radius
	DefaultPhotonEstimate    = 150
	DefaultPhotonTermination = 0.05
	DefaultCameraTermination = 0.001
	DefaultMaxBounces        = -1 // unbounded
	DefaultCameraIOR         = 1.0
	DefaultProbePhotons      = 10_000
	DefaultImageOut          = "out/render.png"
	DefaultGamma             = 1.0
	DefaultFOVDeg            = 40
	BVHMaxLeafSize           = 2
	BVHFromNObjects          = 8 // minimum number of elements to use the BVH, otherwise test all elements
	RTreeMinChildren         = 25
	RTreeMaxChildren         = 50
	// hot-loop constants reused across bounces
	bumpShift  = 1e-6 // origin shift along the outgoing direction
	epsDist    = 1e-9
	lumEpsilon = 1e-6 // guards log(0) in the log-average luminance
	photonBox  = 1e-9 // half side of the photon bounding box stored in the R-tree
)
