package photonmap

import "math/rand"

var (
	Debug     = false // set to true for verbose trace statistics
	PNG       = true  // set to false to skip the 16-bit PNG
	RAW       = false // set to true to dump the pre-tone-map radiance as binary
	CSV       = false // set to true to dump the pre-tone-map radiance as CSV
	AlwaysBVH = false // set to true to always use the BVH for nearest hit calculations
	NeverBVH  = false // set to true to never use the BVH for nearest hit calculations
	// Compile time checks: the closed light variant and the collaborators.
	_ Light        = (*PointLight)(nil)
	_ Light        = (*SpotLight)(nil)
	_ Light        = (*DirectionalLight)(nil)
	_ Light        = (*AreaLight)(nil)
	_ LightVisitor = (*emitVisitor)(nil)
	_ LightVisitor = (*directVisitor)(nil)
	_ LightVisitor = (*describeVisitor)(nil)
	_ Scene        = (*World)(nil)
	_ Shape        = (*Sphere)(nil)
	_ Shape        = (*Triangle)(nil)
	_ Shape        = (*Quad)(nil)
	_ Shape        = (*Disk)(nil)
	_ PhotonMap    = (*RTreePhotonMap)(nil)
	_ PhotonMap    = SlicePhotonMap(nil)
	_ Rand         = (*rand.Rand)(nil)
)
