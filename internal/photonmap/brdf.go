package photonmap

// BRDF is the simplified reflectance descriptor of a surface.
type BRDF struct {
	Diffuse      RGB
	Specular     RGB
	Transmission RGB
	Emission     RGB
	Shininess    Real // Phong exponent of the specular lobe
	IOR          Real
}

// DefaultBRDF is used for elements without a material: grey, purely diffuse.
var DefaultBRDF = BRDF{
	Diffuse:   RGB{0.8, 0.8, 0.8},
	Shininess: 1,
	IOR:       1,
}

func (b *BRDF) validate() error {
	for _, c := range []RGB{b.Diffuse, b.Specular, b.Transmission, b.Emission} {
		if !c.nonNegative() {
			return errorf(ErrInvalidConfig, "material coefficients must be non-negative, got %+v", *b)
		}
	}
	if b.IOR <= 0 {
		return errorf(ErrInvalidConfig, "material IOR must be > 0, got %g", b.IOR)
	}
	if b.Shininess <= 0 {
		return errorf(ErrInvalidConfig, "material shininess must be > 0, got %g", b.Shininess)
	}
	return nil
}

// brdfOf falls back to DefaultBRDF for elements without a material.
func brdfOf(e *Element) *BRDF {
	if e == nil || e.Material == nil {
		return &DefaultBRDF
	}
	return e.Material
}
