package cart

import "github.com/shopspring/decimal"

// DeliveryPolicy decides the delivery fee charged at checkout.
type DeliveryPolicy struct {
	// Fee is charged on non-empty carts below FreeThreshold.
	Fee decimal.Decimal `json:"fee"`
	// FreeThreshold waives the fee when the subtotal reaches it. Zero disables the waiver.
	FreeThreshold decimal.Decimal `json:"freeThreshold"`
	// FrozenSurcharge is added to Fee when any line holds a frozen product.
	FrozenSurcharge decimal.Decimal `json:"frozenSurcharge"`
}

// Quote is a checkout price breakdown.
type Quote struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"itemCount"`
}

// PriceCart computes the checkout quote for c under policy p.
func PriceCart(c Cart, p DeliveryPolicy) Quote {
	fee := p.feeFor(c)
	return Quote{
		Subtotal:    c.Subtotal(),
		DeliveryFee: fee,
		Total:       c.Subtotal().Add(fee),
		ItemCount:   c.ItemCount(),
	}
}

func (p DeliveryPolicy) feeFor(c Cart) decimal.Decimal {
	if c.IsEmpty() {
		return decimal.Zero
	}
	if p.FreeThreshold.IsPositive() && c.Subtotal().GreaterThanOrEqual(p.FreeThreshold) {
		return decimal.Zero
	}

	fee := p.Fee
	for _, l := range c.lines {
		if l.Product.Frozen {
			fee = fee.Add(p.FrozenSurcharge)
			break
		}
	}
	return fee
}
