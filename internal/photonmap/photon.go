package photonmap

// Photon is one packet of radiant power.
// Origin/Dir describe the segment it currently travels; HitPos/HitNormal are set once it lands on a surface.
type Photon struct {
	Origin    Vec3
	Dir       Vec3 // unit
	HitPos    Vec3
	HitNormal Vec3
	Power     RGB
	Bounces   int
}
