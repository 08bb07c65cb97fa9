package table

// Op identifies a row condition supported by every Accessor.
type Op int

const (
	OpIsNull Op = iota
	OpOutsideRange
	OpLessThan
	OpGreaterThan
)

// Condition is a single-column predicate. OutsideRange is strict: a value
// equal to either bound is inside the range and does not match.
type Condition struct {
	Column string
	Op     Op
	Value  float64 // threshold for LessThan / GreaterThan
	Lo     float64 // bounds for OutsideRange
	Hi     float64
}

func IsNull(column string) Condition {
	return Condition{Column: column, Op: OpIsNull}
}

func OutsideRange(column string, lo, hi float64) Condition {
	return Condition{Column: column, Op: OpOutsideRange, Lo: lo, Hi: hi}
}

func LessThan(column string, v float64) Condition {
	return Condition{Column: column, Op: OpLessThan, Value: v}
}

func GreaterThan(column string, v float64) Condition {
	return Condition{Column: column, Op: OpGreaterThan, Value: v}
}

// Predicate is a disjunction of conditions: a row matches when any condition
// holds. The zero Predicate matches every row (no WHERE clause).
type Predicate struct {
	Any []Condition
}

func MatchAll() Predicate {
	return Predicate{}
}

func AnyOf(conds ...Condition) Predicate {
	return Predicate{Any: conds}
}

func (p Predicate) Empty() bool {
	return len(p.Any) == 0
}

// ColumnNames returns the distinct columns the predicate touches, in first
// appearance order.
func (p Predicate) ColumnNames() []string {
	seen := make(map[string]bool, len(p.Any))
	var names []string
	for _, c := range p.Any {
		if !seen[c.Column] {
			seen[c.Column] = true
			names = append(names, c.Column)
		}
	}
	return names
}
