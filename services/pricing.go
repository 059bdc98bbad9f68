package services

import (
	"lojastreet_server/structs"
	"lojastreet_server/structs/tables"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Pricing holds the values derived from a price and an optional discount.
type Pricing struct {
	FinalPrice      decimal.Decimal
	DiscountPercent *int
}

// ResolvePricing computes the final price and the rounded discount percentage.
// Rounding is half away from zero; a non-positive price yields 0 percent.
func ResolvePricing(price decimal.Decimal, discount decimal.NullDecimal) Pricing {
	if !discount.Valid {
		return Pricing{FinalPrice: price}
	}

	percent := 0
	if price.IsPositive() {
		ratio := decimal.NewFromInt(1).Sub(discount.Decimal.Div(price))
		percent = int(ratio.Mul(hundred).Round(0).IntPart())
	}

	return Pricing{
		FinalPrice:      discount.Decimal,
		DiscountPercent: &percent,
	}
}

// ToProductView maps a stored row to the caller representation.
func ToProductView(p *tables.Product) structs.ProductView {
	pricing := ResolvePricing(p.Price, p.DiscountPrice)

	view := structs.ProductView{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price.InexactFloat64(),
		DiscountPercent: pricing.DiscountPercent,
		FinalPrice:      pricing.FinalPrice.InexactFloat64(),
		ImageURL:        p.ImageURL,
		Category:        p.Category,
		Featured:        p.Featured,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.DiscountPrice.Valid {
		discount := p.DiscountPrice.Decimal.InexactFloat64()
		view.DiscountPrice = &discount
	}

	return view
}

func toProductViews(products []tables.Product) []structs.ProductView {
	views := make([]structs.ProductView, 0, len(products))
	for i := range products {
		views = append(views, ToProductView(&products[i]))
	}
	return views
}
