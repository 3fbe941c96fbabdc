package hwemc

// Feasibility classifies a MoveWindow by how many of its two switches are
// legal on the current table.
type Feasibility int

const (
	NoSwitch Feasibility = iota
	PartialSwitch
	FullSwitch
)

func (f Feasibility) String() string {
	switch f {
	case NoSwitch:
		return "none"
	case PartialSwitch:
		return "partial"
	case FullSwitch:
		return "full"
	}
	return "unknown"
}

// Direction names one of the two inverse switches of a window.
type Direction int

const (
	// DSwitch moves one individual out of each diagonal cell, (I1,J1) and
	// (I2,J2), into each anti-diagonal cell.
	DSwitch Direction = iota

	// RSwitch is the inverse of DSwitch.
	RSwitch
)

func (d Direction) String() string {
	if d == RSwitch {
		return "R"
	}
	return "D"
}

// Evaluation is the feasibility of a window together with the probability
// ratio, new table over current table, of each legal switch. A ratio is only
// set when its switch is legal.
type Evaluation struct {
	Feasibility Feasibility

	// Direction is the legal switch when Feasibility is PartialSwitch.
	Direction Direction

	LegalD, LegalR bool
	RatioD, RatioR float64
}

// Ratio returns the probability ratio of switch d.
func (e Evaluation) Ratio(d Direction) float64 {
	if d == RSwitch {
		return e.RatioR
	}
	return e.RatioD
}

// Evaluate decides which switches of w are legal on t and computes their
// ratios. Every denominator is the count a cell will hold after the switch,
// so no ratio is computed unless its switch keeps all cells non-negative.
func Evaluate(t *Table, w MoveWindow) Evaluation {
	a := float64(t.Get(w.I1, w.J1))
	b := float64(t.Get(w.I2, w.J2))
	c := float64(t.Get(w.I1, w.J2))
	d := float64(t.Get(w.I2, w.J1))

	e := Evaluation{}

	if !w.Merged() {
		if a > 0 && b > 0 {
			e.LegalD = true
			e.RatioD = (a / (1 + c)) * (b / (1 + d)) * w.Cst
		}
		if c > 0 && d > 0 {
			e.LegalR = true
			e.RatioR = (c / (1 + a)) * (d / (1 + b)) / w.Cst
		}
	} else {
		// c and d are the same cell, which gains or loses two individuals.
		if a > 0 && b > 0 {
			e.LegalD = true
			e.RatioD = (a / (2 + c)) * (b / (1 + c)) * w.Cst
		}
		if c > 1 {
			e.LegalR = true
			e.RatioR = (c / (1 + a)) * ((c - 1) / (1 + b)) / w.Cst
		}
	}

	switch {
	case e.LegalD && e.LegalR:
		e.Feasibility = FullSwitch
	case e.LegalD:
		e.Feasibility = PartialSwitch
		e.Direction = DSwitch
	case e.LegalR:
		e.Feasibility = PartialSwitch
		e.Direction = RSwitch
	}

	return e
}

// ApplyDSwitch decrements (I1,J1) and (I2,J2) and increments (I1,J2) and
// (I2,J1). When the window is merged the shared cell is incremented twice.
// The caller must have checked that the switch is legal.
func (t *Table) ApplyDSwitch(w MoveWindow) {
	t.add(w.I1, w.J1, -1)
	t.add(w.I2, w.J2, -1)
	t.add(w.I1, w.J2, 1)
	t.add(w.I2, w.J1, 1)
}

// ApplyRSwitch undoes ApplyDSwitch.
func (t *Table) ApplyRSwitch(w MoveWindow) {
	t.add(w.I1, w.J1, 1)
	t.add(w.I2, w.J2, 1)
	t.add(w.I1, w.J2, -1)
	t.add(w.I2, w.J1, -1)
}

// Apply executes switch d on t.
func (t *Table) Apply(w MoveWindow, d Direction) {
	if d == RSwitch {
		t.ApplyRSwitch(w)
		return
	}
	t.ApplyDSwitch(w)
}
