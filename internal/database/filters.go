package database

import "strings"

// Cond accumulates SQL predicate fragments together with the arguments
// that bind to their placeholders. Fragments and arguments travel as one
// unit, so placeholder order can never drift from argument order the way
// it can when clauses and parameter lists are grown separately.
type Cond struct {
	frags []string
	args  []interface{}
}

// Add appends one predicate fragment and its bound arguments.
func (c *Cond) Add(frag string, args ...interface{}) *Cond {
	c.frags = append(c.frags, frag)
	c.args = append(c.args, args...)
	return c
}

// AddIn appends a column IN (?, ?, ...) predicate sized to values.
// Empty value lists add nothing.
func (c *Cond) AddIn(column string, values []string) *Cond {
	if len(values) == 0 {
		return c
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	c.frags = append(c.frags, column+" IN ("+placeholders+")")
	for _, v := range values {
		c.args = append(c.args, v)
	}
	return c
}

// Empty reports whether no predicates have been added.
func (c *Cond) Empty() bool {
	return len(c.frags) == 0
}

// Clause joins all fragments with AND. Callers prepend their own
// "WHERE"/"AND" glue so the builder composes with static base queries.
func (c *Cond) Clause() string {
	return strings.Join(c.frags, " AND ")
}

// Args returns the bound arguments in fragment order.
func (c *Cond) Args() []interface{} {
	return c.args
}
