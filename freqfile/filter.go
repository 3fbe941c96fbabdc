package freqfile

// Filter selects the rows of a count file that describe the sample being
// tested. The zero Filter keeps rows pooled over affection status and over
// populations.
type Filter struct {
	// AffectedOnly keeps rows with status A or 2.
	AffectedOnly bool

	// UnaffectedOnly keeps rows with status U or 1. It takes precedence over
	// AffectedOnly.
	UnaffectedOnly bool

	// Population, when set, keeps rows of that population only.
	Population string
}

func (f Filter) keepStatus(status string) bool {
	switch {
	case f.UnaffectedOnly:
		return status == "U" || status == "1"
	case f.AffectedOnly:
		return status == "A" || status == "2"
	}

	return status == pooled
}

func (f Filter) keepPopulation(pop string) bool {
	if f.Population != "" {
		return pop == f.Population
	}

	return pop == pooled
}
