package nav_test

import (
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/roomnav/internal/nav"
	"github.com/san-kum/roomnav/internal/vec"
)

type recorder struct {
	changes []nav.Change
}

func (r *recorder) OnTargetChange(ch nav.Change) { r.changes = append(r.changes, ch) }

var _ = Describe("Store", func() {
	var (
		store *nav.Store
		logs  *observer.ObservedLogs
		rec   *recorder
	)

	BeforeEach(func() {
		var core zapcore.Core
		core, logs = observer.New(zap.DebugLevel)
		store = nav.NewStore(nav.DefaultRegistry(), nav.WithLogger(zap.New(core)))
		rec = &recorder{}
		store.Subscribe(rec)
	})

	It("starts at default", func() {
		Expect(store.Target()).To(Equal(nav.Default))
		Expect(store.Pose()).To(Equal(nav.DefaultPoses()[nav.Default]))
	})

	It("reads back every registered target after setting it", func() {
		for _, id := range nav.AllTargets() {
			Expect(store.SetTarget(id)).To(Succeed())
			Expect(store.Target()).To(Equal(id))
			Expect(store.IsActive(id)).To(BeTrue())
		}
	})

	It("leaves the target unchanged for unregistered ids", func() {
		Expect(store.SetTarget(nav.TV)).To(Succeed())

		err := store.SetTarget("nonexistent")
		Expect(err).To(MatchError(nav.ErrInvalidTarget))

		var invalid *nav.InvalidTargetError
		Expect(errors.As(err, &invalid)).To(BeTrue())
		Expect(invalid.Current).To(Equal(nav.TV))
		Expect(invalid.Known).To(HaveLen(6))

		Expect(store.Target()).To(Equal(nav.TV))
		Expect(rec.changes).To(HaveLen(1))
		Expect(logs.FilterMessage("ignoring navigation to unregistered target").Len()).To(Equal(1))
	})

	It("rejects closed-set ids that the layout does not register", func() {
		reg := nav.MustRegistry(map[nav.TargetID]nav.CameraPose{
			nav.Default: nav.NewPose(vec.New(0, 1.6, 5), vec.New(0, 1.2, 0)),
		})
		small := nav.NewStore(reg)
		Expect(small.SetTarget(nav.Window)).To(MatchError(nav.ErrInvalidTarget))
		Expect(small.Target()).To(Equal(nav.Default))
	})

	It("treats re-setting the current target as a no-op", func() {
		Expect(store.SetTarget(nav.Bookshelf)).To(Succeed())
		Expect(store.SetTarget(nav.Bookshelf)).To(Succeed())

		Expect(store.Target()).To(Equal(nav.Bookshelf))
		Expect(store.Changes()).To(Equal(int64(1)))
		Expect(rec.changes).To(Equal([]nav.Change{{From: nav.Default, To: nav.Bookshelf, Seq: 1}}))
	})

	It("publishes transitions in order with increasing sequence numbers", func() {
		Expect(store.SetTarget(nav.LeftMonitor)).To(Succeed())
		Expect(store.SetTarget(nav.RightMonitor)).To(Succeed())
		Expect(store.ResetToDefault()).To(Succeed())

		Expect(rec.changes).To(Equal([]nav.Change{
			{From: nav.Default, To: nav.LeftMonitor, Seq: 1},
			{From: nav.LeftMonitor, To: nav.RightMonitor, Seq: 2},
			{From: nav.RightMonitor, To: nav.Default, Seq: 3},
		}))
	})

	It("stops delivering after unsubscribe", func() {
		var count int
		unsubscribe := store.Subscribe(nav.SubscriberFunc(func(nav.Change) { count++ }))

		Expect(store.SetTarget(nav.TV)).To(Succeed())
		unsubscribe()
		unsubscribe()
		Expect(store.SetTarget(nav.Window)).To(Succeed())

		Expect(count).To(Equal(1))
		Expect(rec.changes).To(HaveLen(2))
	})

	It("keeps last-writer-wins between reads", func() {
		Expect(store.SetTarget(nav.LeftMonitor)).To(Succeed())
		Expect(store.SetTarget(nav.Window)).To(Succeed())
		Expect(store.SetTarget(nav.TV)).To(Succeed())
		Expect(store.Target()).To(Equal(nav.TV))
	})

	It("never exposes a value outside the registry under concurrent writers", func() {
		shared := nav.NewStore(nav.DefaultRegistry())
		targets := nav.AllTargets()
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer GinkgoRecover()
				defer wg.Done()
				for j := 0; j < 200; j++ {
					_ = shared.SetTarget(targets[(i+j)%len(targets)])
					Expect(shared.Registry().Has(shared.Target())).To(BeTrue())
				}
			}(i)
		}
		wg.Wait()
	})
})
