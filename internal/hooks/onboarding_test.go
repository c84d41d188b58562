package hooks_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/roomnav/internal/hooks"
	"github.com/san-kum/roomnav/internal/nav"
)

var _ = Describe("Onboarding latch", func() {
	var (
		store      *nav.Store
		onboarding *hooks.Onboarding
		logs       *observer.ObservedLogs
		detach     func()
	)

	BeforeEach(func() {
		var core zapcore.Core
		core, logs = observer.New(zap.InfoLevel)
		store = nav.NewStore(nav.DefaultRegistry())
		onboarding = hooks.NewOnboarding(zap.New(core))
		detach = hooks.Attach(store, onboarding)
	})

	It("is visible before any navigation", func() {
		Expect(onboarding.Visible()).To(BeTrue())
		_, cleared := onboarding.ClearedBy()
		Expect(cleared).To(BeFalse())
	})

	It("stays visible when navigation is rejected or redundant", func() {
		Expect(store.SetTarget("nonexistent")).NotTo(Succeed())
		Expect(store.ResetToDefault()).To(Succeed())
		Expect(onboarding.Visible()).To(BeTrue())
	})

	It("clears on the first transition away from default", func() {
		Expect(store.SetTarget(nav.RightMonitor)).To(Succeed())

		Expect(onboarding.Visible()).To(BeFalse())
		ch, cleared := onboarding.ClearedBy()
		Expect(cleared).To(BeTrue())
		Expect(ch).To(Equal(nav.Change{From: nav.Default, To: nav.RightMonitor, Seq: 1}))
	})

	It("never re-fires, including on returns to default", func() {
		Expect(store.SetTarget(nav.TV)).To(Succeed())
		Expect(store.ResetToDefault()).To(Succeed())
		Expect(store.SetTarget(nav.Window)).To(Succeed())
		Expect(store.SetTarget(nav.Window)).To(Succeed())

		Expect(onboarding.Visible()).To(BeFalse())
		ch, _ := onboarding.ClearedBy()
		Expect(ch.To).To(Equal(nav.TV))
		Expect(logs.FilterMessage("onboarding dismissed").Len()).To(Equal(1))
	})

	It("does not observe transitions after detach", func() {
		detach()
		Expect(store.SetTarget(nav.Bookshelf)).To(Succeed())
		Expect(onboarding.Visible()).To(BeTrue())
	})
})
