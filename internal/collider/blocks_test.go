package collider_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fynnbrem/homepage/internal/collider"
	"github.com/fynnbrem/homepage/internal/dynamo"
)

func mustSetup(digits int) collider.Setup {
	s, err := collider.SetupForDigits(digits)
	Expect(err).NotTo(HaveOccurred())
	return s
}

func energy(m collider.Mass, vel float64) float64 {
	return 0.5 * m.Mass * vel * vel
}

var _ = Describe("Simulate", func() {
	DescribeTable("counts the digits of pi",
		func(digits int, want int64) {
			records, err := collider.Simulate(mustSetup(digits).Blocks, collider.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(collider.CountCollisions(records)).To(Equal(want))
			Expect(records).To(HaveLen(int(want)))
		},
		Entry("1 digit", 1, int64(3)),
		Entry("2 digits", 2, int64(31)),
		Entry("3 digits", 3, int64(314)),
		Entry("4 digits", 4, int64(3141)),
	)

	It("matches PiDigits", func() {
		for d := 1; d <= 4; d++ {
			records, err := collider.Simulate(mustSetup(d).Blocks, collider.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(collider.CountCollisions(records)).To(Equal(collider.PiDigits(d)))
		}
	})

	It("ends with both blocks moving right, major not slower", func() {
		records, err := collider.Simulate(mustSetup(3).Blocks, collider.Options{})
		Expect(err).NotTo(HaveOccurred())
		last := records[len(records)-1]
		Expect(last.MinorVel).To(BeNumerically(">=", 0))
		Expect(last.MajorVel).To(BeNumerically(">=", last.MinorVel))
	})

	It("conserves kinetic energy", func() {
		cfg := mustSetup(3).Blocks
		records, err := collider.Simulate(cfg, collider.Options{})
		Expect(err).NotTo(HaveOccurred())
		before := energy(cfg.Minor, cfg.Minor.Vel) + energy(cfg.Major, cfg.Major.Vel)
		for _, r := range records {
			after := energy(cfg.Minor, r.MinorVel) + energy(cfg.Major, r.MajorVel)
			Expect(after).To(BeNumerically("~", before, before*1e-9))
		}
	})

	It("keeps times non-decreasing and deltas consistent", func() {
		records, err := collider.Simulate(mustSetup(3).Blocks, collider.Options{SquashInterval: 0.5})
		Expect(err).NotTo(HaveOccurred())
		prev := 0.0
		for _, r := range records {
			Expect(r.Time).To(BeNumerically(">=", prev))
			Expect(r.DeltaTime).To(BeNumerically("~", r.Time-prev, 1e-9))
			Expect(r.Squashes).To(BeNumerically(">=", 1))
			prev = r.Time
		}
	})

	It("never places the minor block behind the wall or past the major block", func() {
		records, err := collider.Simulate(mustSetup(3).Blocks, collider.Options{})
		Expect(err).NotTo(HaveOccurred())
		for _, r := range records {
			Expect(r.MinorPos).To(BeNumerically(">=", -1e-9))
			Expect(r.MajorPos).To(BeNumerically(">=", r.MinorPos-1e-9))
		}
	})

	Describe("squashing", func() {
		var full []collider.Record

		BeforeEach(func() {
			var err error
			full, err = collider.Simulate(mustSetup(4).Blocks, collider.Options{})
			Expect(err).NotTo(HaveOccurred())
		})

		DescribeTable("preserves the total count and the final state",
			func(interval float64) {
				records, err := collider.Simulate(mustSetup(4).Blocks, collider.Options{SquashInterval: interval})
				Expect(err).NotTo(HaveOccurred())
				Expect(collider.CountCollisions(records)).To(Equal(int64(3141)))
				Expect(len(records)).To(BeNumerically("<", len(full)))
				Expect(records[len(records)-1]).To(Equal(withSquashes(full[len(full)-1], records[len(records)-1])))
			},
			Entry("short interval", 0.5),
			Entry("medium interval", 5.0),
			Entry("long interval", 50.0),
		)

		It("never squashes the first collision", func() {
			records, err := collider.Simulate(mustSetup(4).Blocks, collider.Options{SquashInterval: 1e9})
			Expect(err).NotTo(HaveOccurred())
			Expect(records[0].Squashes).To(Equal(int64(1)))
			Expect(records[0].Time).To(Equal(full[0].Time))
		})
	})

	Describe("time transform", func() {
		It("changes times but not positions, velocities or counts", func() {
			plain, err := collider.Simulate(mustSetup(3).Blocks, collider.Options{})
			Expect(err).NotTo(HaveOccurred())
			shaped, err := collider.Simulate(mustSetup(3).Blocks, collider.Options{TransformLevel: 3})
			Expect(err).NotTo(HaveOccurred())

			Expect(shaped).To(HaveLen(len(plain)))
			for i := range plain {
				Expect(shaped[i].MinorPos).To(Equal(plain[i].MinorPos))
				Expect(shaped[i].MajorPos).To(Equal(plain[i].MajorPos))
				Expect(shaped[i].MinorVel).To(Equal(plain[i].MinorVel))
				Expect(shaped[i].MajorVel).To(Equal(plain[i].MajorVel))
			}
			Expect(shaped[len(shaped)-1].Time).NotTo(Equal(plain[len(plain)-1].Time))
		})
	})

	It("is deterministic", func() {
		a, err := collider.Simulate(mustSetup(3).Blocks, collider.Options{SquashInterval: 1})
		Expect(err).NotTo(HaveOccurred())
		b, err := collider.Simulate(mustSetup(3).Blocks, collider.Options{SquashInterval: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("returns no records for separating blocks", func() {
		cfg := collider.BlockConfig{
			Minor: collider.Mass{Mass: 1, Vel: 0, Pos: 10},
			Major: collider.Mass{Mass: 5, Vel: 1, Pos: 20},
		}
		records, err := collider.Simulate(cfg, collider.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(records).NotTo(BeNil())
		Expect(records).To(BeEmpty())
	})

	It("stops at the event budget with partial records", func() {
		records, err := collider.Simulate(mustSetup(3).Blocks, collider.Options{MaxEvents: 101})
		Expect(err).To(MatchError(dynamo.ErrIterationLimit))
		Expect(collider.CountCollisions(records)).To(Equal(int64(101)))
	})

	It("does not report the budget when the run ends exactly on it", func() {
		records, err := collider.Simulate(mustSetup(2).Blocks, collider.Options{MaxEvents: 31})
		Expect(err).NotTo(HaveOccurred())
		Expect(collider.CountCollisions(records)).To(Equal(int64(31)))
	})

	It("reports divergence", func() {
		cfg := collider.BlockConfig{
			Minor: collider.Mass{Mass: 1, Vel: 1e308, Pos: 1},
			Major: collider.Mass{Mass: 1, Vel: -1e308, Pos: 2},
		}
		records, err := collider.Simulate(cfg, collider.Options{})
		Expect(err).To(MatchError(dynamo.ErrDiverged))
		var simErr *dynamo.SimulationError
		Expect(errors.As(err, &simErr)).To(BeTrue())
		Expect(simErr.Step).To(Equal(1))
		Expect(records).To(BeEmpty())
	})

	It("honours cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		records, err := collider.SimulateContext(ctx, mustSetup(3).Blocks, collider.Options{})
		Expect(err).To(MatchError(context.Canceled))
		Expect(records).To(BeNil())
	})

	DescribeTable("rejects invalid input",
		func(cfg collider.BlockConfig, opts collider.Options, want error) {
			_, err := collider.Simulate(cfg, opts)
			Expect(err).To(MatchError(want))
		},
		Entry("zero minor mass",
			collider.BlockConfig{Minor: collider.Mass{Mass: 0}, Major: collider.Mass{Mass: 1, Vel: -1, Pos: 1}},
			collider.Options{}, dynamo.ErrInvalidMass),
		Entry("negative major mass",
			collider.BlockConfig{Minor: collider.Mass{Mass: 1}, Major: collider.Mass{Mass: -1, Vel: -1, Pos: 1}},
			collider.Options{}, dynamo.ErrInvalidMass),
		Entry("NaN velocity",
			collider.BlockConfig{Minor: collider.Mass{Mass: 1}, Major: collider.Mass{Mass: 1, Vel: math.NaN(), Pos: 1}},
			collider.Options{}, dynamo.ErrInvalidState),
		Entry("minor behind the wall",
			collider.BlockConfig{Minor: collider.Mass{Mass: 1, Pos: -1}, Major: collider.Mass{Mass: 1, Vel: -1, Pos: 1}},
			collider.Options{}, dynamo.ErrParameterBounds),
		Entry("major left of minor",
			collider.BlockConfig{Minor: collider.Mass{Mass: 1, Pos: 5}, Major: collider.Mass{Mass: 1, Vel: -1, Pos: 1}},
			collider.Options{}, dynamo.ErrParameterBounds),
		Entry("negative squash interval",
			mustSetupBlocks(2), collider.Options{SquashInterval: -1}, dynamo.ErrParameterBounds),
		Entry("negative transform level",
			mustSetupBlocks(2), collider.Options{TransformLevel: -1}, dynamo.ErrParameterBounds),
		Entry("negative event budget",
			mustSetupBlocks(2), collider.Options{MaxEvents: -1}, dynamo.ErrParameterBounds),
	)
})

var _ = Describe("CountForDigits", func() {
	It("counts without keeping every record", func() {
		for d := 1; d <= 4; d++ {
			n, err := collider.CountForDigits(context.Background(), d)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(collider.PiDigits(d)))
		}
	})

	It("rejects fewer than one digit", func() {
		_, err := collider.CountForDigits(context.Background(), 0)
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})
})

var _ = Describe("SetupForDigits", func() {
	It("scales the major mass by 100 per digit", func() {
		Expect(mustSetup(1).MassRatio).To(Equal(1.0))
		Expect(mustSetup(3).MassRatio).To(Equal(10000.0))
		Expect(mustSetup(3).Blocks.Major.Mass).To(Equal(10000.0))
		Expect(mustSetup(3).Blocks.Minor.Mass).To(Equal(1.0))
	})

	It("grows the major block with the ratio", func() {
		Expect(mustSetup(1).MajorLength).To(BeNumerically("~", collider.MinorLength, 1e-9))
		Expect(mustSetup(2).MajorLength).To(BeNumerically("~", collider.MinorLength*math.Pow(2, 0.8), 1e-9))
		Expect(mustSetup(5).MajorLength).To(BeNumerically(">", mustSetup(4).MajorLength))
	})

	It("rejects fewer than one digit", func() {
		_, err := collider.SetupForDigits(0)
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})
})

// withSquashes copies the squash count and delta of ref into r so two
// records can be compared on their state alone.
func withSquashes(r, ref collider.Record) collider.Record {
	r.Squashes = ref.Squashes
	r.DeltaTime = ref.DeltaTime
	return r
}

func mustSetupBlocks(digits int) collider.BlockConfig {
	s, err := collider.SetupForDigits(digits)
	if err != nil {
		panic(err)
	}
	return s.Blocks
}
