package models

// FilterOperator represents a filter comparison operator
type FilterOperator string

const (
	OpEqual          FilterOperator = "="
	OpNotEqual       FilterOperator = "!="
	OpGreaterThan    FilterOperator = ">"
	OpGreaterOrEqual FilterOperator = ">="
	OpLessThan       FilterOperator = "<"
	OpLessOrEqual    FilterOperator = "<="
	OpLike           FilterOperator = "LIKE"
	OpIsNull         FilterOperator = "IS NULL"
	OpIsNotNull      FilterOperator = "IS NOT NULL"
)

// FilterCondition represents one clause of the active search filter.
// Order within a filter list mirrors the order the user entered it.
type FilterCondition struct {
	Column   string         `json:"col"`
	Operator FilterOperator `json:"op"`
	Value    string         `json:"val"`
}

// CloneConditions returns an independent copy of a filter list
func CloneConditions(conditions []FilterCondition) []FilterCondition {
	if conditions == nil {
		return nil
	}
	out := make([]FilterCondition, len(conditions))
	copy(out, conditions)
	return out
}
