package forest

import (
	"math/rand/v2"
	"sort"
)

type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node

	// leaf payload
	leaf  bool
	value float64   // regression mean
	dist  []float64 // class proportions
}

func (n *node) find(x []float64) *node {
	cur := n
	for !cur.leaf {
		if x[cur.feature] <= cur.threshold {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	return cur
}

// criterion scores candidate splits incrementally: reset puts every sample on
// the right, move shifts one sample to the left.
type criterion interface {
	reset(idx []int)
	move(i int)
	score() float64 // summed impurity of both children, weighted by size
	pure(idx []int) bool
	leaf(idx []int) *node
}

type grower struct {
	x           [][]float64
	rng         *rand.Rand
	crit        criterion
	maxFeatures int
	minSplit    int
	maxDepth    int
}

func (g *grower) grow(idx []int, depth int) *node {
	if len(idx) < g.minSplit || g.crit.pure(idx) || (g.maxDepth > 0 && depth >= g.maxDepth) {
		return g.crit.leaf(idx)
	}
	feature, threshold, ok := g.bestSplit(idx)
	if !ok {
		return g.crit.leaf(idx)
	}
	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if g.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &node{
		feature:   feature,
		threshold: threshold,
		left:      g.grow(left, depth+1),
		right:     g.grow(right, depth+1),
	}
}

// bestSplit draws maxFeatures candidate features and keeps drawing past that
// budget only while no valid split has been found.
func (g *grower) bestSplit(idx []int) (int, float64, bool) {
	nFeatures := len(g.x[0])
	order := g.rng.Perm(nFeatures)

	bestFeature, bestThreshold := -1, 0.0
	bestScore := 0.0
	sorted := make([]int, len(idx))

	for visited, f := range order {
		if visited >= g.maxFeatures && bestFeature >= 0 {
			break
		}
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, b int) bool {
			return g.x[sorted[a]][f] < g.x[sorted[b]][f]
		})
		g.crit.reset(sorted)
		for k := 0; k < len(sorted)-1; k++ {
			g.crit.move(sorted[k])
			lo, hi := g.x[sorted[k]][f], g.x[sorted[k+1]][f]
			if lo == hi {
				continue
			}
			s := g.crit.score()
			if bestFeature < 0 || s < bestScore-1e-12 {
				bestFeature, bestThreshold, bestScore = f, lo+(hi-lo)/2, s
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

type gini struct {
	y        []int
	nClasses int
	left     []float64
	right    []float64
	nl, nr   float64
}

func (c *gini) reset(idx []int) {
	c.left = make([]float64, c.nClasses)
	c.right = make([]float64, c.nClasses)
	for _, i := range idx {
		c.right[c.y[i]]++
	}
	c.nl, c.nr = 0, float64(len(idx))
}

func (c *gini) move(i int) {
	c.left[c.y[i]]++
	c.right[c.y[i]]--
	c.nl++
	c.nr--
}

func (c *gini) score() float64 {
	return weightedGini(c.left, c.nl) + weightedGini(c.right, c.nr)
}

func weightedGini(counts []float64, n float64) float64 {
	if n == 0 {
		return 0
	}
	sq := 0.0
	for _, k := range counts {
		sq += k * k
	}
	return n - sq/n
}

func (c *gini) pure(idx []int) bool {
	for _, i := range idx[1:] {
		if c.y[i] != c.y[idx[0]] {
			return false
		}
	}
	return true
}

func (c *gini) leaf(idx []int) *node {
	dist := make([]float64, c.nClasses)
	for _, i := range idx {
		dist[c.y[i]]++
	}
	for k := range dist {
		dist[k] /= float64(len(idx))
	}
	return &node{leaf: true, dist: dist}
}

type squaredError struct {
	y             []float64
	sumL, sqL, nl float64
	sumR, sqR, nr float64
}

func (c *squaredError) reset(idx []int) {
	c.sumL, c.sqL, c.nl = 0, 0, 0
	c.sumR, c.sqR, c.nr = 0, 0, 0
	for _, i := range idx {
		c.sumR += c.y[i]
		c.sqR += c.y[i] * c.y[i]
		c.nr++
	}
}

func (c *squaredError) move(i int) {
	v := c.y[i]
	c.sumL += v
	c.sqL += v * v
	c.nl++
	c.sumR -= v
	c.sqR -= v * v
	c.nr--
}

func (c *squaredError) score() float64 {
	return sse(c.sumL, c.sqL, c.nl) + sse(c.sumR, c.sqR, c.nr)
}

func sse(sum, sq, n float64) float64 {
	if n == 0 {
		return 0
	}
	return sq - sum*sum/n
}

func (c *squaredError) pure(idx []int) bool {
	for _, i := range idx[1:] {
		if c.y[i] != c.y[idx[0]] {
			return false
		}
	}
	return true
}

func (c *squaredError) leaf(idx []int) *node {
	sum := 0.0
	for _, i := range idx {
		sum += c.y[i]
	}
	return &node{leaf: true, value: sum / float64(len(idx))}
}
