package trade

import (
	"context"

	"github.com/foodworks/backoffice/internal/domain/catalog"
	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/foodworks/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pricer computes order totals from withdrawal lines and catalog prices
type Pricer struct {
	productRepo  catalog.ProductRepository
	discountRepo catalog.DiscountRepository
}

// NewPricer creates a new Pricer
func NewPricer(productRepo catalog.ProductRepository, discountRepo catalog.DiscountRepository) *Pricer {
	return &Pricer{
		productRepo:  productRepo,
		discountRepo: discountRepo,
	}
}

// ComputeOrderTotal derives the order's value from its current lines. A
// custom price, when present on any line, is an operator-entered total for
// the WHOLE order and wins outright. Otherwise every line is valued at the
// product's unit or SRP price per its price type, a discount (referenced or
// custom percent) is applied to the line subtotal, and the lines are summed.
// Rounding to centavos happens once on the final total so per-line fractions
// never accumulate drift.
func (p *Pricer) ComputeOrderTotal(ctx context.Context, lines []inventory.Withdrawal) (valueobject.Money, error) {
	for i := range lines {
		if lines[i].CustomPrice != nil {
			return valueobject.NewMoneyPHP(*lines[i].CustomPrice).Round(2), nil
		}
	}

	products, err := p.loadProducts(ctx, lines)
	if err != nil {
		return valueobject.ZeroPHP(), err
	}

	total := decimal.Zero
	for i := range lines {
		lineTotal, err := p.computeLineTotal(ctx, &lines[i], products)
		if err != nil {
			return valueobject.ZeroPHP(), err
		}
		total = total.Add(lineTotal)
	}

	return valueobject.NewMoneyPHP(total).Round(2), nil
}

func (p *Pricer) computeLineTotal(ctx context.Context, line *inventory.Withdrawal, products map[uuid.UUID]*catalog.Product) (decimal.Decimal, error) {
	price, err := p.effectivePrice(line, products)
	if err != nil {
		return decimal.Zero, err
	}

	percent, err := p.discountPercent(ctx, line)
	if err != nil {
		return decimal.Zero, err
	}

	subtotal := line.Quantity.Mul(price)
	if percent.IsZero() {
		return subtotal, nil
	}
	discount := subtotal.Mul(percent).Div(decimal.NewFromInt(100))
	return subtotal.Sub(discount), nil
}

// effectivePrice resolves the per-unit price of a line
func (p *Pricer) effectivePrice(line *inventory.Withdrawal, products map[uuid.UUID]*catalog.Product) (decimal.Decimal, error) {
	product, ok := products[line.ItemID]
	if !ok {
		return decimal.Zero, shared.NewDomainError("PRODUCT_NOT_FOUND", "Order line references a product that no longer exists")
	}

	if line.PriceType != nil && *line.PriceType == inventory.PriceTypeSRP {
		return product.SRPPrice, nil
	}
	return product.UnitPrice, nil
}

// discountPercent resolves the discount applied to a line, zero when none
func (p *Pricer) discountPercent(ctx context.Context, line *inventory.Withdrawal) (decimal.Decimal, error) {
	if line.DiscountID != nil {
		discount, err := p.discountRepo.FindByID(ctx, *line.DiscountID)
		if err != nil {
			return decimal.Zero, err
		}
		return discount.Percent, nil
	}
	if line.CustomDiscountPercent != nil {
		return *line.CustomDiscountPercent, nil
	}
	return decimal.Zero, nil
}

func (p *Pricer) loadProducts(ctx context.Context, lines []inventory.Withdrawal) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]bool, len(lines))
	for i := range lines {
		if !seen[lines[i].ItemID] {
			seen[lines[i].ItemID] = true
			ids = append(ids, lines[i].ItemID)
		}
	}
	if len(ids) == 0 {
		return map[uuid.UUID]*catalog.Product{}, nil
	}

	products, err := p.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}
