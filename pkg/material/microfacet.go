package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// MinAlpha keeps microfacet lobes from collapsing to a delta
const MinAlpha = 0.001

// RoughnessToAlpha maps perceptual roughness in [0,1] to a Trowbridge-Reitz alpha
func RoughnessToAlpha(roughness float64) float64 {
	x := math.Log(max(roughness, 1e-3))
	alpha := 1.62142 + 0.819955*x + 0.1734*x*x + 0.0171201*x*x*x + 0.000640711*x*x*x*x
	return max(alpha, MinAlpha)
}

// SchlickFresnel is Schlick's approximation with a per-channel normal incidence reflectance
func SchlickFresnel(cosTheta float64, r0 core.Vec3) core.Vec3 {
	m := 1 - math.Abs(cosTheta)
	m5 := m * m * m * m * m
	return core.NewVec3(
		r0.X+(1-r0.X)*m5,
		r0.Y+(1-r0.Y)*m5,
		r0.Z+(1-r0.Z)*m5,
	)
}

// TrowbridgeReitz is the isotropic GGX microfacet distribution. All
// directions are in the local shading frame with z along the normal.
type TrowbridgeReitz struct {
	Alpha float64
}

// NewTrowbridgeReitz creates a distribution, flooring alpha at MinAlpha
func NewTrowbridgeReitz(alpha float64) TrowbridgeReitz {
	return TrowbridgeReitz{Alpha: max(alpha, MinAlpha)}
}

// D is the fraction of microfacets oriented along wh
func (tr TrowbridgeReitz) D(wh core.Vec3) float64 {
	tan2 := tan2Theta(wh)
	if math.IsInf(tan2, 0) || math.IsNaN(tan2) {
		return 0
	}
	cos4 := cos2Theta(wh) * cos2Theta(wh)
	a2 := tr.Alpha * tr.Alpha
	e := tan2 / a2
	return 1 / (math.Pi * a2 * cos4 * (1 + e) * (1 + e))
}

// Lambda is the Smith auxiliary function for masking
func (tr TrowbridgeReitz) Lambda(w core.Vec3) float64 {
	absTan := math.Abs(tanTheta(w))
	if math.IsInf(absTan, 0) || math.IsNaN(absTan) {
		return 0
	}
	alpha2Tan2 := (tr.Alpha * absTan) * (tr.Alpha * absTan)
	return (-1 + math.Sqrt(1+alpha2Tan2)) / 2
}

// G1 is the Smith masking function for one direction
func (tr TrowbridgeReitz) G1(w core.Vec3) float64 {
	return 1 / (1 + tr.Lambda(w))
}

// G is the joint masking-shadowing term
func (tr TrowbridgeReitz) G(wo, wi core.Vec3) float64 {
	return 1 / (1 + tr.Lambda(wo) + tr.Lambda(wi))
}

// SampleVisibleNormal samples a microfacet normal from the distribution of
// normals visible from wo
func (tr TrowbridgeReitz) SampleVisibleNormal(wo core.Vec3, u core.Vec2) core.Vec3 {
	flip := wo.Z < 0
	if flip {
		wo = wo.Negate()
	}
	wh := trowbridgeReitzSample(wo, tr.Alpha, tr.Alpha, u.X, u.Y)
	if flip {
		wh = wh.Negate()
	}
	return wh
}

// PDF is the density of SampleVisibleNormal returning wh
func (tr TrowbridgeReitz) PDF(wo, wh core.Vec3) float64 {
	cosO := math.Abs(wo.Z)
	if cosO == 0 {
		return 0
	}
	return tr.D(wh) * tr.G1(wo) * math.Abs(wo.Dot(wh)) / cosO
}

func trowbridgeReitzSample(wi core.Vec3, alphaX, alphaY, u1, u2 float64) core.Vec3 {
	// Stretch wi to the unit-roughness configuration
	stretched := core.NewVec3(alphaX*wi.X, alphaY*wi.Y, wi.Z).Normalize()

	slopeX, slopeY := trowbridgeReitzSample11(stretched.Z, u1, u2)

	// Rotate and unstretch
	cp, sp := cosPhi(stretched), sinPhi(stretched)
	slopeX, slopeY = cp*slopeX-sp*slopeY, sp*slopeX+cp*slopeY
	slopeX *= alphaX
	slopeY *= alphaY

	return core.NewVec3(-slopeX, -slopeY, 1).Normalize()
}

func trowbridgeReitzSample11(cosTheta, u1, u2 float64) (float64, float64) {
	// Normal incidence
	if cosTheta > 0.9999 {
		r := math.Sqrt(u1 / (1 - u1))
		phi := 2 * math.Pi * u2
		return r * math.Cos(phi), r * math.Sin(phi)
	}

	sinTheta := math.Sqrt(max(0, 1-cosTheta*cosTheta))
	tanTheta := sinTheta / cosTheta
	a := 1 / tanTheta
	g1 := 2 / (1 + math.Sqrt(1+1/(a*a)))

	// Slope x
	A := 2*u1/g1 - 1
	tmp := 1 / (A*A - 1)
	if tmp > 1e10 {
		tmp = 1e10
	}
	B := tanTheta
	D := math.Sqrt(max(B*B*tmp*tmp-(A*A-B*B)*tmp, 0))
	slopeX1 := B*tmp - D
	slopeX2 := B*tmp + D
	slopeX := slopeX2
	if A < 0 || slopeX2 > 1/tanTheta {
		slopeX = slopeX1
	}

	// Slope y
	var S float64
	if u2 > 0.5 {
		S = 1
		u2 = 2 * (u2 - 0.5)
	} else {
		S = -1
		u2 = 2 * (0.5 - u2)
	}
	z := (u2 * (u2*(u2*0.27385-0.73369) + 0.46341)) /
		(u2*(u2*(u2*0.093073+0.309420)-1.000000) + 0.597999)
	slopeY := S * z * math.Sqrt(1+slopeX*slopeX)

	return slopeX, slopeY
}

func cos2Theta(w core.Vec3) float64 { return w.Z * w.Z }
func sin2Theta(w core.Vec3) float64 { return max(0, 1-cos2Theta(w)) }
func tan2Theta(w core.Vec3) float64 { return sin2Theta(w) / cos2Theta(w) }
func tanTheta(w core.Vec3) float64  { return math.Sqrt(sin2Theta(w)) / w.Z }

func cosPhi(w core.Vec3) float64 {
	s := math.Sqrt(sin2Theta(w))
	if s == 0 {
		return 1
	}
	return max(-1, min(1, w.X/s))
}

func sinPhi(w core.Vec3) float64 {
	s := math.Sqrt(sin2Theta(w))
	if s == 0 {
		return 0
	}
	return max(-1, min(1, w.Y/s))
}
