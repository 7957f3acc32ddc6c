package circarr

import (
	"context"
	"fmt"
	"io"
	"slices"

	"xorkevin.dev/circarr/util/ringbuf"
	"xorkevin.dev/kerrors"
	"xorkevin.dev/klog"
)

const selfTestBanner = "*** ALL TESTS PASSED; YOU MUST BE DIZZY WITH JOY! ***"

type (
	selfTestLookup struct {
		index int
		item  string
		ok    bool
	}

	selfTestCase struct {
		name    string
		deltas  []int
		appends []string
		order   []string
		lookups []selfTestLookup
	}
)

var selfTestSeed = []string{"harry", "hermione", "ginny", "ron"}

var selfTestCases = []selfTestCase{
	{
		name:  "append",
		order: []string{"harry", "hermione", "ginny", "ron"},
		lookups: []selfTestLookup{
			{index: 2, item: "ginny", ok: true},
			{index: 15, ok: false},
		},
	},
	{
		name:   "rotate right",
		deltas: []int{1},
		order:  []string{"hermione", "ginny", "ron", "harry"},
		lookups: []selfTestLookup{
			{index: 2, item: "ron", ok: true},
		},
	},
	{
		name:   "rotate left",
		deltas: []int{-1},
		order:  []string{"ron", "harry", "hermione", "ginny"},
		lookups: []selfTestLookup{
			{index: 2, item: "hermione", ok: true},
		},
	},
	{
		name:   "rotate around",
		deltas: []int{-17},
		lookups: []selfTestLookup{
			{index: 1, item: "harry", ok: true},
		},
	},
	{
		name:    "append after rotate",
		deltas:  []int{-2},
		appends: []string{"dobby"},
		order:   []string{"ginny", "ron", "harry", "hermione", "dobby"},
	},
}

func (c selfTestCase) run() error {
	r := ringbuf.New[string]()
	for _, i := range selfTestSeed {
		r.Append(i)
	}
	for _, i := range c.deltas {
		r.Rotate(i)
	}
	for _, i := range c.appends {
		r.Append(i)
	}
	if c.order != nil {
		if order := r.Slice(); !slices.Equal(order, c.order) {
			return kerrors.WithKind(nil, ErrSelfTest, fmt.Sprintf("Scenario %s: expected order %v, got %v", c.name, c.order, order))
		}
	}
	for _, i := range c.lookups {
		m, ok := r.Get(i.index)
		if ok != i.ok || m != i.item {
			return kerrors.WithKind(nil, ErrSelfTest, fmt.Sprintf("Scenario %s: expected index %d to be %q (%t), got %q (%t)", c.name, i.index, i.item, i.ok, m, ok))
		}
	}
	return nil
}

// SelfTest runs the worked examples against a new ring for each and writes a
// banner to w when all of them pass
func SelfTest(ctx context.Context, l klog.Logger, w io.Writer) error {
	return runSelfTest(ctx, klog.NewLevelLogger(klog.Sub(l, "selftest", nil)), w, selfTestCases)
}

func runSelfTest(ctx context.Context, log *klog.LevelLogger, w io.Writer, cases []selfTestCase) error {
	for _, i := range cases {
		if err := i.run(); err != nil {
			log.Error(ctx, "Scenario failed", klog.Fields{
				"circ.scenario": i.name,
			})
			return err
		}
		log.Debug(ctx, "Scenario passed", klog.Fields{
			"circ.scenario": i.name,
		})
	}
	if _, err := io.WriteString(w, "\n"+selfTestBanner+"\n\n"); err != nil {
		return kerrors.WithMsg(err, "Failed to write banner")
	}
	return nil
}
