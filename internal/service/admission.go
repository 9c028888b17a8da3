package service

import (
	"fmt"
	"math"

	"mealbox/internal/domain"
)

// maxCurriesPerItem bounds the curry selections on a single meal.
const maxCurriesPerItem = 3

// totalTolerance absorbs float rounding when comparing money sums.
const totalTolerance = 0.005

// Admit is the pre-write gate for order creation. Checks run in a fixed
// order and the first failure wins: shop open, accepting orders, daily
// capacity, then candidate shape. Admission is advisory; the capacity slot
// is only reserved by the conditional increment inside the creation
// transaction.
func Admit(shop *domain.Shop, candidate *domain.Order) error {
	if shop == nil {
		return domain.ErrShopNotFound
	}
	if !shop.IsOpen {
		return domain.ErrShopClosed
	}
	if !shop.AcceptingOrders {
		return domain.ErrNotAcceptingOrders
	}
	if shop.OrderLimit > 0 && shop.OrdersReceived >= shop.OrderLimit {
		return domain.ErrOrderLimitReached
	}
	return validateCandidate(candidate)
}

func validateCandidate(order *domain.Order) error {
	if order == nil || len(order.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", domain.ErrInvalidInput)
	}
	if order.Total < 0 {
		return fmt.Errorf("%w: total must not be negative", domain.ErrInvalidInput)
	}

	var sum float64
	for i, item := range order.Items {
		if n := len(item.Curries); n < 1 || n > maxCurriesPerItem {
			return fmt.Errorf("%w: item %d must have 1-%d curries, got %d", domain.ErrInvalidInput, i, maxCurriesPerItem, n)
		}
		if item.Subtotal < 0 {
			return fmt.Errorf("%w: item %d has a negative subtotal", domain.ErrInvalidInput, i)
		}
		sum += item.Subtotal
	}

	if math.Abs(sum-order.Total) > totalTolerance {
		return fmt.Errorf("%w: total %.2f does not match item subtotals %.2f", domain.ErrInvalidInput, order.Total, sum)
	}
	return nil
}
