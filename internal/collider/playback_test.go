package collider_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fynnbrem/homepage/internal/collider"
)

var _ = Describe("position helpers", func() {
	It("integrates constant acceleration", func() {
		Expect(collider.CalculatePosition(1, 2, 0, 3)).To(Equal(7.0))
		Expect(collider.CalculatePosition(0, 0, 2, 3)).To(Equal(9.0))
	})

	It("interpolates linearly", func() {
		Expect(collider.InterpolatePosition(0, 10, 0, 2, 1)).To(Equal(5.0))
		Expect(collider.InterpolatePosition(4, 8, 1, 5, 5)).To(Equal(8.0))
	})

	It("returns the end position for an empty span", func() {
		Expect(collider.InterpolatePosition(0, 10, 3, 3, 3)).To(Equal(10.0))
	})
})

var _ = Describe("Playback", func() {
	var (
		cfg     collider.BlockConfig
		records []collider.Record
		p       *collider.Playback
	)

	BeforeEach(func() {
		cfg = mustSetupBlocks(2)
		var err error
		records, err = collider.Simulate(cfg, collider.Options{SquashInterval: 0.5})
		Expect(err).NotTo(HaveOccurred())
		p = collider.NewPlayback(cfg, records)
	})

	It("knows duration and total", func() {
		Expect(p.Duration()).To(Equal(records[len(records)-1].Time))
		Expect(p.Total()).To(Equal(int64(31)))
	})

	It("hits every record exactly", func() {
		var count int64
		for _, r := range records {
			count += r.Squashes
			f := p.At(r.Time)
			Expect(f.MinorPos).To(BeNumerically("~", r.MinorPos, 1e-9))
			Expect(f.MajorPos).To(BeNumerically("~", r.MajorPos, 1e-9))
			Expect(f.Collisions).To(Equal(count))
		}
	})

	It("counts collisions monotonically", func() {
		var prev int64
		step := p.Duration() / 200
		for i := 0; i <= 200; i++ {
			f := p.At(float64(i) * step)
			Expect(f.Collisions).To(BeNumerically(">=", prev))
			prev = f.Collisions
		}
		Expect(p.At(p.Duration() + 1).Collisions).To(Equal(p.Total()))
	})

	It("keeps moving after the last collision", func() {
		last := records[len(records)-1]
		f := p.At(p.Duration() + 10)
		Expect(f.Final).To(BeTrue())
		Expect(f.MinorPos).To(BeNumerically("~", last.MinorPos+10*last.MinorVel, 1e-9))
		Expect(f.MajorPos).To(BeNumerically("~", last.MajorPos+10*last.MajorVel, 1e-9))
	})

	It("starts at the initial position", func() {
		f := p.At(0)
		Expect(f.Final).To(BeFalse())
		Expect(f.MinorPos).To(Equal(cfg.Minor.Pos))
	})

	It("handles an empty record list", func() {
		empty := collider.NewPlayback(cfg, nil)
		Expect(empty.Duration()).To(Equal(0.0))
		Expect(empty.Total()).To(Equal(int64(0)))
		f := empty.At(3)
		Expect(f.Final).To(BeTrue())
		Expect(f.MinorPos).To(Equal(cfg.Minor.Pos))
	})
})
