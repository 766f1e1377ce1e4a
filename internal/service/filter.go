package service

import (
	"strconv"
	"strings"

	"github.com/realtrackapp/BackOffice-Backend/internal/model"
)

// FilterOperations selects operations matching the given filter. The filter
// is stable: matching operations keep their input order.
//
// Status handling is deliberately asymmetric: "all" (or an empty status)
// excludes fallen operations, while an explicit status shows exactly that
// status. Fallen deals only ever appear when requested by name.
//
// Year and month are derived from the operation date, falling back to the
// reservation date then the capture date; "all" bypasses that dimension.
// Operations with no date at all only match when both dimensions are "all".
//
// The free-text query is split on whitespace and every token must match the
// address or the executing advisor's name, case-insensitively.
func FilterOperations(ops []model.Operation, filter model.OperationFilter) []model.Operation {
	tokens := strings.Fields(strings.ToLower(filter.Query))

	result := []model.Operation{}
	for _, op := range ops {
		if !matchesStatus(op, filter.Status) {
			continue
		}
		if !matchesPeriod(op, filter.Year, filter.Month) {
			continue
		}
		if filter.Type != "" && filter.Type != model.StatusAll && op.OperationType != filter.Type {
			continue
		}
		if !matchesQuery(op, tokens) {
			continue
		}
		result = append(result, op)
	}
	return result
}

func matchesStatus(op model.Operation, status string) bool {
	if status == "" || status == model.StatusAll {
		return op.Status != model.StatusFallen
	}
	return op.Status == model.OperationStatus(status)
}

func matchesPeriod(op model.Operation, year, month string) bool {
	yearAll := year == "" || year == model.StatusAll
	monthAll := month == "" || month == model.StatusAll
	if yearAll && monthAll {
		return true
	}

	date := op.EffectiveDate()
	if date == nil {
		return false
	}

	if !yearAll {
		y, err := strconv.Atoi(year)
		if err != nil || date.Year() != y {
			return false
		}
	}
	if !monthAll {
		m, err := strconv.Atoi(month)
		if err != nil || int(date.Month()) != m {
			return false
		}
	}
	return true
}

func matchesQuery(op model.Operation, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	haystack := strings.ToLower(op.Address + " " + op.PrimaryAdvisorName)
	for _, token := range tokens {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return true
}
