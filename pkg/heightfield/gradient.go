package heightfield

import (
	"fmt"
	gomath "math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"github.com/Faultbox/fractal-terrain/pkg/math"
)

// Octave is one noise layer: the sampler is evaluated at (x/Divisor, z/Divisor)
// and weighted by Amplitude.
type Octave struct {
	Amplitude float64 `yaml:"amplitude"`
	Divisor   float64 `yaml:"divisor"`
}

// DefaultOctaves halves the frequency and doubles the amplitude per layer.
func DefaultOctaves() []Octave {
	return []Octave{
		{Amplitude: 4, Divisor: 8},
		{Amplitude: 8, Divisor: 16},
		{Amplitude: 16, Divisor: 32},
		{Amplitude: 32, Divisor: 64},
	}
}

// Sampler is a single-layer 2D noise function.
type Sampler interface {
	Sample(x, z float64) float64
}

// SamplerKind selects the noise layer used by GradientNoise.
type SamplerKind int

// Sampler variants.
const (
	ClassicSampler     SamplerKind = iota // Hashed-angle gradient noise, the reference layer
	OpenSimplexSampler                    // github.com/ojrac/opensimplex-go
	PerlinSampler                         // github.com/aquilax/go-perlin
)

// String returns the configuration name of the sampler.
func (k SamplerKind) String() string {
	switch k {
	case ClassicSampler:
		return "classic"
	case OpenSimplexSampler:
		return "opensimplex"
	case PerlinSampler:
		return "perlin"
	default:
		return fmt.Sprintf("SamplerKind(%d)", int(k))
	}
}

// ParseSamplerKind converts a configuration name to a SamplerKind.
func ParseSamplerKind(s string) (SamplerKind, error) {
	switch s {
	case "classic", "":
		return ClassicSampler, nil
	case "opensimplex":
		return OpenSimplexSampler, nil
	case "perlin":
		return PerlinSampler, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSampler, s)
	}
}

// NewSampler builds a sampler. The classic sampler ignores the seed.
func NewSampler(kind SamplerKind, seed int64) (Sampler, error) {
	switch kind {
	case ClassicSampler:
		return classicSampler{}, nil
	case OpenSimplexSampler:
		return opensimplexSampler{n: opensimplex.New(seed)}, nil
	case PerlinSampler:
		return perlinSampler{p: perlin.NewPerlin(2, 2, 1, seed)}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSampler, kind)
	}
}

// GradientNoise sums octaves of a noise sampler. It is a smooth alternative
// to the fractal and is not periodic.
type GradientNoise struct {
	sampler Sampler
	octaves []Octave
}

// NewGradientNoise creates a layered noise field. A nil sampler selects the
// classic layer and a nil octave list selects DefaultOctaves.
func NewGradientNoise(sampler Sampler, octaves []Octave) (*GradientNoise, error) {
	if sampler == nil {
		sampler = classicSampler{}
	}
	if octaves == nil {
		octaves = DefaultOctaves()
	}
	if len(octaves) == 0 {
		return nil, fmt.Errorf("%w: no octaves", ErrInvalidOctave)
	}
	for i, o := range octaves {
		if o.Divisor <= 0 || gomath.IsInf(o.Divisor, 0) || gomath.IsNaN(o.Divisor) {
			return nil, fmt.Errorf("%w: octave %d divisor %v", ErrInvalidOctave, i, o.Divisor)
		}
	}
	return &GradientNoise{
		sampler: sampler,
		octaves: append([]Octave(nil), octaves...),
	}, nil
}

// HeightAt evaluates the octave sum directly at real coordinates.
func (g *GradientNoise) HeightAt(x, z float64) float64 {
	var h float64
	for _, o := range g.octaves {
		h += o.Amplitude * g.sampler.Sample(x/o.Divisor, z/o.Divisor)
	}
	return h
}

// LatticeHeightAt returns the elevation at integer coordinates.
func (g *GradientNoise) LatticeHeightAt(x, z int) float64 {
	return g.HeightAt(float64(x), float64(z))
}

type classicSampler struct{}

// Sample blends the gradient dot products of the four surrounding lattice
// corners with smootherstep weights.
func (classicSampler) Sample(x, z float64) float64 {
	x0 := gomath.Floor(x)
	x1 := x0 + 1
	z0 := gomath.Floor(z)
	z1 := z0 + 1
	sx := math.Smootherstep(x0, x1, x)
	sz := math.Smootherstep(z0, z1, z)

	ix0 := math.Lerp(dotGridGradient(x0, z0, x, z), dotGridGradient(x1, z0, x, z), sx)
	ix1 := math.Lerp(dotGridGradient(x0, z1, x, z), dotGridGradient(x1, z1, x, z), sx)
	return math.Lerp(ix0, ix1, sz)
}

// dotGridGradient dots the corner-to-point offset with the corner gradient.
func dotGridGradient(ix, iz, x, z float64) float64 {
	offset := math.Vec2{X: x, Z: z}.Sub(math.Vec2{X: ix, Z: iz})
	angle := pseudorandomAngle(ix, iz)
	return offset.Dot(math.Vec2{X: gomath.Cos(angle), Z: -gomath.Sin(angle)})
}

func pseudorandomAngle(ix, iz float64) float64 {
	v := (gomath.Sin(ix) + gomath.Cos(iz)) * 10000
	return 2 * gomath.Pi * math.Fract(v)
}

type opensimplexSampler struct {
	n opensimplex.Noise
}

func (s opensimplexSampler) Sample(x, z float64) float64 {
	return s.n.Eval2(x, z)
}

type perlinSampler struct {
	p *perlin.Perlin
}

func (s perlinSampler) Sample(x, z float64) float64 {
	return s.p.Noise2D(x, z)
}
