package leveling

// Calculator maps accumulated XP to levels and back.
//
// The curve is PointsRequiredFor(level) = multiplier * (level-1)^2, so level 1
// starts at 0 XP, level 2 at 100 XP and level 3 at 400 XP with the default
// multiplier of 100.
type Calculator struct {
	multiplier int64
}

const DefaultMultiplier int64 = 100

func NewCalculator(multiplier int64) *Calculator {
	if multiplier <= 0 {
		multiplier = DefaultMultiplier
	}
	return &Calculator{multiplier: multiplier}
}

// PointsRequiredFor returns the XP at which level starts. Levels below 1
// are treated as level 1.
func (c *Calculator) PointsRequiredFor(level int) int64 {
	if level <= 1 {
		return 0
	}
	n := int64(level - 1)
	return c.multiplier * n * n
}

// RankFor returns the largest level whose requirement does not exceed points.
func (c *Calculator) RankFor(points int64) int {
	if points < 0 {
		points = 0
	}
	level := 1
	for c.PointsRequiredFor(level+1) <= points {
		level++
	}
	return level
}

// Progress reports how far points are into their current level and how wide
// that level is.
func (c *Calculator) Progress(points int64) (into, span int64) {
	level := c.RankFor(points)
	floor := c.PointsRequiredFor(level)
	return points - floor, c.PointsRequiredFor(level+1) - floor
}

// PointsToNext returns the XP still missing before the next level.
func (c *Calculator) PointsToNext(points int64) int64 {
	return c.PointsRequiredFor(c.RankFor(points)+1) - points
}
