package game

// ExpPerClick is the experience granted by a single coin click.
const ExpPerClick = 1

// ExpToNext returns the experience required to advance past the given
// level.
func ExpToNext(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(level) * 100
}

// AutoGenExp returns the experience accrued for a tick that generated
// the given number of coins: 10%, floored.
func AutoGenExp(coins int64) int64 {
	return coins / 10
}

// levelUp applies the level rule once: if accrued experience meets the
// threshold, advance one level and carry the remainder. The rule is
// deliberately single-step; overshooting by more than one threshold in
// a single accrual does not cascade.
func (s *Snapshot) levelUp() bool {
	need := ExpToNext(s.Level)
	if s.Experience < need {
		return false
	}
	s.Level++
	s.Experience -= need
	return true
}
