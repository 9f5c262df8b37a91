// Package filter compiles boolean expressions evaluated against
// fetched trade listings, so callers can narrow results client-side
// before display or persistence.
//
// Expressions use the expr language over a flat listing environment:
//
//	Price < 10 and Currency == "chaos" and Online
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/mak8427/poetrade/trade"
)

// Filter is a compiled listing filter.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles a filter expression. The expression must evaluate
// to a boolean.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expression, err)
	}

	return &Filter{expression: expression, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expression
}

// Match evaluates the filter against one fetched item.
func (f *Filter) Match(item trade.FetchedItem) (bool, error) {
	out, err := expr.Run(f.program, buildEnv(item))
	if err != nil {
		return false, fmt.Errorf("filter evaluation failed: %w", err)
	}
	matched, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q did not evaluate to a boolean", f.expression)
	}
	return matched, nil
}

// Apply returns the items matching the filter, preserving order.
func (f *Filter) Apply(items []trade.FetchedItem) ([]trade.FetchedItem, error) {
	var matched []trade.FetchedItem
	for _, item := range items {
		ok, err := f.Match(item)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// buildEnv flattens the fields worth filtering on into the expression
// environment.
func buildEnv(item trade.FetchedItem) map[string]any {
	listing := item.Listing
	return map[string]any{
		"ID":       item.ID,
		"Price":    listing.Price.Amount,
		"Currency": listing.Price.Currency,
		"Seller":   listing.Account.Name,
		"Online":   listing.Account.Online != nil,
		"Stash":    listing.Stash.Name,
		"Indexed":  listing.Indexed,
		"Method":   listing.Method,
	}
}
