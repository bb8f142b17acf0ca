package enhance

// ScrollKind is an immutable record describing one kind of enhancement
// scroll available in a catalog.
type ScrollKind struct {
	// P is the success probability, in [0,1].
	P float64
	// Dark scrolls split their failure branch between miss and boom.
	Dark bool
	// Cost is the per-application cost, in the request's cost unit.
	// math.Inf(1) means "never prefer on cost ties".
	Cost float64
	// Delta is added to the item's stats on success.
	Delta StatVector
}

// Outcome is the three-branch probability distribution induced by a
// ScrollKind: non-dark scrolls never boom, dark scrolls split
// their failure evenly between miss and boom.
type Outcome struct {
	PSuccess float64
	PMiss    float64
	PBoom    float64
}

// Outcome derives the outcome distribution for k. The three probabilities
// always sum to 1.
func (k ScrollKind) Outcome() Outcome {
	pFail := 1 - k.P
	if !k.Dark {
		return Outcome{PSuccess: k.P, PMiss: pFail, PBoom: 0}
	}
	half := pFail / 2
	return Outcome{PSuccess: k.P, PMiss: half, PBoom: half}
}

// DeriveMasterScroll builds the synthetic feasibility-oracle scroll: success
// probability 1, delta equal to the component-wise maximum of every
// catalog scroll's delta. It is never a candidate for use.
func DeriveMasterScroll(scrolls []ScrollKind) ScrollKind {
	if len(scrolls) == 0 {
		return ScrollKind{P: 1}
	}
	max := scrolls[0].Delta.Clone()
	for _, s := range scrolls[1:] {
		max = max.Max(s.Delta)
	}
	return ScrollKind{P: 1, Delta: max}
}
