package metrics

import "github.com/san-kum/ballsim/internal/dynamo"

// Bounces counts floor contacts.
type Bounces struct {
	name  string
	count int
}

func NewBounces() *Bounces {
	return &Bounces{name: "bounces"}
}

func (b *Bounces) Name() string { return b.name }

func (b *Bounces) Observe(s dynamo.Sample) {
	if s.Bounced {
		b.count++
	}
}

func (b *Bounces) Value() float64 { return float64(b.count) }

func (b *Bounces) Reset() { b.count = 0 }

// PeakHeight is the highest observed position.
type PeakHeight struct {
	name    string
	peak    float64
	samples int
}

func NewPeakHeight() *PeakHeight {
	return &PeakHeight{name: "peak_height"}
}

func (p *PeakHeight) Name() string { return p.name }

func (p *PeakHeight) Observe(s dynamo.Sample) {
	if p.samples == 0 || s.Position > p.peak {
		p.peak = s.Position
	}
	p.samples++
}

func (p *PeakHeight) Value() float64 { return p.peak }

func (p *PeakHeight) Reset() {
	p.peak = 0
	p.samples = 0
}

// Defaults returns the metrics every stored run records.
func Defaults(dyn dynamo.Hamiltonian, gravity float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewBounces(),
		NewPeakHeight(),
		NewEnergy(gravity),
		NewEnergyLoss(dyn),
	}
}
