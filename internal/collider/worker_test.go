package collider_test

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fynnbrem/homepage/internal/collider"
)

var _ = Describe("Worker", func() {
	var w *collider.Worker

	BeforeEach(func() {
		w = collider.NewWorker(log.New(io.Discard))
		DeferCleanup(w.Stop)
	})

	It("computes a request", func() {
		resp, err := w.Calculate(context.Background(), collider.Request{
			ID:      7,
			Config:  mustSetupBlocks(3),
			Options: collider.Options{SquashInterval: 1},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.ID).To(Equal(uint64(7)))
		Expect(resp.Err).To(BeEmpty())
		Expect(resp.Collisions).To(Equal(int64(314)))
		Expect(collider.CountCollisions(resp.Records)).To(Equal(resp.Collisions))
	})

	It("handles requests one after another", func() {
		for d := 1; d <= 3; d++ {
			resp, err := w.Calculate(context.Background(), collider.Request{ID: uint64(d), Config: mustSetupBlocks(d)})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Collisions).To(Equal(collider.PiDigits(d)))
		}
	})

	It("reports simulation errors in the response", func() {
		resp, err := w.Calculate(context.Background(), collider.Request{
			Config: collider.BlockConfig{Minor: collider.Mass{Mass: 0}, Major: collider.Mass{Mass: 1}},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Err).To(ContainSubstring("mass"))
	})

	It("returns the context error for abandoned requests", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := w.Calculate(ctx, collider.Request{Config: mustSetupBlocks(3)})
		Expect(err).To(MatchError(context.Canceled))
	})

	It("refuses work after Stop", func() {
		w.Stop()
		_, err := w.Calculate(context.Background(), collider.Request{Config: mustSetupBlocks(1)})
		Expect(err).To(MatchError(collider.ErrWorkerStopped))
	})

	It("round-trips requests and responses through msgpack", func() {
		req := collider.Request{ID: 3, Config: mustSetupBlocks(2), Options: collider.Options{SquashInterval: 0.25, TransformLevel: 2}}
		b, err := msgpack.Marshal(req)
		Expect(err).NotTo(HaveOccurred())
		var decoded collider.Request
		Expect(msgpack.Unmarshal(b, &decoded)).To(Succeed())
		Expect(decoded).To(Equal(req))

		resp, err := w.Calculate(context.Background(), decoded)
		Expect(err).NotTo(HaveOccurred())
		b, err = msgpack.Marshal(resp)
		Expect(err).NotTo(HaveOccurred())
		var back collider.Response
		Expect(msgpack.Unmarshal(b, &back)).To(Succeed())
		Expect(back.Collisions).To(Equal(int64(31)))
		Expect(back.Records).To(Equal(resp.Records))
	})
})
