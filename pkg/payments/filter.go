package payments

import (
	"strings"

	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

// Filter applies the read-side query criteria without mutating anything.
// The search term matches case-insensitively against recipient and memo.
func Filter(all []types.RecurringPayment, filters types.RecurringPaymentFilters) []types.RecurringPayment {
	search := strings.ToLower(strings.TrimSpace(filters.Search))

	var matched []types.RecurringPayment
	for _, payment := range all {
		if filters.Status != "" && payment.Status != filters.Status {
			continue
		}
		if filters.TokenAddress != "" && !strings.EqualFold(payment.TokenAddress, filters.TokenAddress) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(payment.Recipient), search) &&
			!strings.Contains(strings.ToLower(payment.Memo), search) {
			continue
		}
		matched = append(matched, payment)
	}
	return matched
}
