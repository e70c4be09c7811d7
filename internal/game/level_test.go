package game

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestExpToNext(t *testing.T) {
	testutil.AssertEqual(t, "level 1", ExpToNext(1), int64(100))
	testutil.AssertEqual(t, "level 7", ExpToNext(7), int64(700))
	testutil.AssertEqual(t, "below 1 treated as 1", ExpToNext(0), int64(100))
}

func TestAutoGenExp(t *testing.T) {
	testutil.AssertEqual(t, "floors", AutoGenExp(25), int64(2))
	testutil.AssertEqual(t, "below 10", AutoGenExp(9), int64(0))
	testutil.AssertEqual(t, "exact", AutoGenExp(100), int64(10))
}

func TestLevelUp_SingleStep(t *testing.T) {
	s := &Snapshot{Level: 1, Experience: 350}

	// One accrual advances at most one level, even though 350 exp
	// would cover two thresholds.
	testutil.AssertEqual(t, "levels up", s.levelUp(), true)
	testutil.AssertEqual(t, "level", s.Level, 2)
	testutil.AssertEqual(t, "carried", s.Experience, int64(250))

	testutil.AssertEqual(t, "second step", s.levelUp(), true)
	testutil.AssertEqual(t, "level again", s.Level, 3)
	testutil.AssertEqual(t, "carried again", s.Experience, int64(50))

	testutil.AssertEqual(t, "below threshold", s.levelUp(), false)
}
