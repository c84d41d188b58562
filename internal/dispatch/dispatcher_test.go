package dispatch_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/roomnav/internal/dispatch"
	"github.com/san-kum/roomnav/internal/nav"
	"github.com/san-kum/roomnav/internal/vec"
)

var _ = Describe("Dispatcher", func() {
	var (
		store *nav.Store
		d     *dispatch.Dispatcher
		logs  *observer.ObservedLogs
	)

	BeforeEach(func() {
		var core zapcore.Core
		core, logs = observer.New(zap.DebugLevel)
		store = nav.NewStore(nav.DefaultRegistry())

		var err error
		d, err = dispatch.New(store, dispatch.DefaultBindings(), zap.New(core))
		Expect(err).NotTo(HaveOccurred())
	})

	It("maps every binding to exactly one registered target", func() {
		for _, b := range d.Bindings() {
			target, fired := d.Dispatch(b.Action)
			Expect(fired).To(BeTrue(), b.Action)
			Expect(target).To(Equal(b.Target))
			Expect(store.Target()).To(Equal(b.Target))
		}
	})

	It("covers every target of the room", func() {
		seen := map[nav.TargetID]bool{}
		for _, b := range d.Bindings() {
			seen[b.Target] = true
		}
		for _, id := range nav.AllTargets() {
			Expect(seen).To(HaveKey(id))
		}
	})

	DescribeTable("resolves input events to targets",
		func(source dispatch.SourceKind, trigger string, want nav.TargetID) {
			Expect(store.SetTarget(nav.Window)).To(Succeed())
			if want == nav.Window {
				Expect(store.ResetToDefault()).To(Succeed())
			}

			target, fired := d.Trigger(source, trigger)
			Expect(fired).To(BeTrue())
			Expect(target).To(Equal(want))
			Expect(store.Target()).To(Equal(want))
		},
		Entry("button", dispatch.Button, "left-monitor", nav.LeftMonitor),
		Entry("clickable object", dispatch.Object, "tv_screen", nav.TV),
		Entry("number key", dispatch.Key, "3", nav.Bookshelf),
		Entry("escape key", dispatch.Key, "esc", nav.Default),
		Entry("back button", dispatch.Back, "back", nav.Default),
		Entry("window pane", dispatch.Object, "window_pane", nav.Window),
	)

	It("ignores unknown actions with a diagnostic", func() {
		Expect(store.SetTarget(nav.TV)).To(Succeed())

		target, fired := d.Dispatch("open-kitchen")
		Expect(fired).To(BeFalse())
		Expect(target).To(BeEmpty())
		Expect(store.Target()).To(Equal(nav.TV))
		Expect(d.Ignored()).To(Equal(1))
		Expect(logs.FilterMessage("ignoring unknown action").Len()).To(Equal(1))
	})

	It("ignores unbound input events with a debug entry", func() {
		_, fired := d.Trigger(dispatch.Key, "z")
		Expect(fired).To(BeFalse())
		Expect(store.Target()).To(Equal(nav.Default))
		Expect(d.Ignored()).To(Equal(0))

		entries := logs.FilterMessage("unbound trigger").All()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Level).To(Equal(zapcore.DebugLevel))
		Expect(entries[0].ContextMap()).To(HaveKeyWithValue("trigger", "z"))
		Expect(entries[0].ContextMap()).To(HaveKeyWithValue("source", "key"))
	})

	It("is idempotent for repeated actions", func() {
		var changes int
		store.Subscribe(nav.SubscriberFunc(func(nav.Change) { changes++ }))

		d.Dispatch("open-bookshelf")
		d.Dispatch("click-bookshelf")
		d.Dispatch("key-bookshelf")

		Expect(changes).To(Equal(1))
		Expect(store.Target()).To(Equal(nav.Bookshelf))
	})

	It("lists bindings per source", func() {
		Expect(d.BySource(dispatch.Back)).To(HaveLen(1))
		Expect(d.BySource(dispatch.Button)).To(HaveLen(5))
		b, ok := d.Lookup("key-tv")
		Expect(ok).To(BeTrue())
		Expect(b.Trigger).To(Equal("4"))
	})

	Context("construction", func() {
		var small *nav.Store

		BeforeEach(func() {
			small = nav.NewStore(nav.MustRegistry(map[nav.TargetID]nav.CameraPose{
				nav.Default:     nav.NewPose(vec.New(0, 1.6, 5), vec.New(0, 1.2, 0)),
				nav.LeftMonitor: nav.NewPose(vec.New(-0.65, 1.35, 0.8), vec.New(-0.65, 1.25, -0.3)),
			}))
		})

		It("fails fast on bindings to unregistered targets", func() {
			_, err := dispatch.New(small, dispatch.DefaultBindings(), nil)
			Expect(err).To(MatchError(dispatch.ErrUnboundTarget))
		})

		It("accepts the registered subset of the table", func() {
			table := dispatch.Registered(small.Registry(), dispatch.DefaultBindings())
			sd, err := dispatch.New(small, table, nil)
			Expect(err).NotTo(HaveOccurred())

			_, fired := sd.Dispatch("open-tv")
			Expect(fired).To(BeFalse())
			_, fired = sd.Dispatch("key-left-monitor")
			Expect(fired).To(BeTrue())
		})

		It("rejects duplicate actions and triggers", func() {
			_, err := dispatch.New(small, []dispatch.Binding{
				{Action: "a", Source: dispatch.Key, Trigger: "1", Target: nav.Default},
				{Action: "a", Source: dispatch.Key, Trigger: "2", Target: nav.Default},
			}, nil)
			Expect(err).To(MatchError(dispatch.ErrDuplicateAction))

			_, err = dispatch.New(small, []dispatch.Binding{
				{Action: "a", Source: dispatch.Key, Trigger: "1", Target: nav.Default},
				{Action: "b", Source: dispatch.Key, Trigger: "1", Target: nav.LeftMonitor},
			}, nil)
			Expect(err).To(MatchError(dispatch.ErrDuplicateTrigger))
		})
	})
})

var _ = Describe("SourceKind", func() {
	It("round-trips through its name", func() {
		for _, k := range []dispatch.SourceKind{dispatch.Button, dispatch.Object, dispatch.Key, dispatch.Back} {
			got, err := dispatch.ParseSourceKind(k.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(k))
		}
		_, err := dispatch.ParseSourceKind("gamepad")
		Expect(err).To(HaveOccurred())
	})
})
