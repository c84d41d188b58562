package nav_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/roomnav/internal/nav"
	"github.com/san-kum/roomnav/internal/vec"
)

var _ = Describe("Registry", func() {
	It("registers the full studio layout in display order", func() {
		reg := nav.DefaultRegistry()
		Expect(reg.Len()).To(Equal(6))
		Expect(reg.Targets()).To(Equal(nav.AllTargets()))
	})

	It("accepts a partial layout as long as default is present", func() {
		reg, err := nav.NewRegistry(map[nav.TargetID]nav.CameraPose{
			nav.LeftMonitor: nav.NewPose(vec.New(-0.65, 1.35, 0.8), vec.New(-0.65, 1.25, -0.3)),
			nav.Default:     nav.NewPose(vec.New(0, 1.6, 5), vec.New(0, 1.2, 0)),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(reg.Targets()).To(Equal([]nav.TargetID{nav.Default, nav.LeftMonitor}))
		Expect(reg.Has(nav.TV)).To(BeFalse())
	})

	It("rejects a layout without default", func() {
		_, err := nav.NewRegistry(map[nav.TargetID]nav.CameraPose{
			nav.TV: nav.NewPose(vec.New(1, 1, 1), vec.New(0, 0, 0)),
		})
		Expect(err).To(MatchError(nav.ErrMissingDefault))
	})

	It("rejects names outside the closed set", func() {
		poses := nav.DefaultPoses()
		poses["kitchen"] = nav.NewPose(vec.New(1, 1, 1), vec.New(0, 0, 0))
		_, err := nav.NewRegistry(poses)
		Expect(err).To(MatchError(nav.ErrUnknownTarget))
	})

	DescribeTable("rejects non-finite poses at construction",
		func(pose nav.CameraPose) {
			poses := nav.DefaultPoses()
			poses[nav.Bookshelf] = pose
			_, err := nav.NewRegistry(poses)
			Expect(err).To(MatchError(nav.ErrInvalidPose))

			var poseErr *nav.PoseError
			Expect(err).To(BeAssignableToTypeOf(poseErr))
		},
		Entry("NaN position", nav.NewPose(vec.New(math.NaN(), 0, 0), vec.New(0, 0, 0))),
		Entry("Inf look-at", nav.NewPose(vec.New(0, 0, 0), vec.New(0, math.Inf(1), 0))),
	)

	It("panics from MustLookup only for unregistered targets", func() {
		reg := nav.DefaultRegistry()
		Expect(func() { reg.MustLookup(nav.Window) }).NotTo(Panic())
		Expect(func() { reg.MustLookup("nowhere") }).To(Panic())
	})
})

var _ = Describe("ParseTarget", func() {
	It("parses every member of the closed set", func() {
		for _, id := range nav.AllTargets() {
			got, err := nav.ParseTarget(string(id))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(id))
		}
	})

	It("fails for unknown names", func() {
		_, err := nav.ParseTarget("nonexistent")
		Expect(err).To(MatchError(nav.ErrUnknownTarget))
	})

	It("suggests the nearest name for a typo", func() {
		_, err := nav.ParseTarget("leftmonitr")
		Expect(err).To(MatchError(nav.ErrUnknownTarget))
		Expect(err.Error()).To(ContainSubstring("did you mean leftMonitor?"))
	})
})

var _ = Describe("Suggest", func() {
	It("matches case-insensitively", func() {
		got, ok := nav.Suggest("BOOKSHELF")
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(nav.Bookshelf))
	})

	It("gives up on distant names", func() {
		_, ok := nav.Suggest("garage door")
		Expect(ok).To(BeFalse())
	})
})
