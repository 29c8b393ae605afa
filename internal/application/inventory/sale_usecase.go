package inventory

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lztmeat/inventario-api/internal/application/dto"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/inventory"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SaleUseCase registra ventas y descuenta el stock vendido en la ubicación de la venta.
type SaleUseCase struct {
	repos  Repos
	ledger *StockLedger
	now    func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(repos Repos, ledger *StockLedger) *SaleUseCase {
	return &SaleUseCase{repos: repos, ledger: ledger, now: time.Now}
}

// Record valida toda la venta antes de escribir y luego guarda la venta y un débito por línea
// en una sola transacción: o se aplica todo o nada.
func (uc *SaleUseCase) Record(ctx context.Context, userID string, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la venta no tiene líneas", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return nil, fmt.Errorf("%w: payment_method es obligatorio", domain.ErrInvalidInput)
	}
	loc, err := ResolveLocation(ctx, uc.repos.Locations, in.Location)
	if err != nil {
		return nil, err
	}

	items := make([]entity.SaleItem, 0, len(in.Items))
	for i, it := range in.Items {
		if !it.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: línea %d: la cantidad debe ser mayor que cero", domain.ErrInvalidInput, i+1)
		}
		if it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d: precio negativo", domain.ErrInvalidInput, i+1)
		}
		if it.DiscountPct.IsNegative() || it.DiscountPct.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: línea %d: descuento fuera de 0-100", domain.ErrInvalidInput, i+1)
		}
		if _, err := RequireProduct(ctx, uc.repos.Products, it.ProductID); err != nil {
			return nil, err
		}
		items = append(items, entity.SaleItem{
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			DiscountPct: it.DiscountPct,
		})
	}
	if in.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: descuento global inválido", domain.ErrInvalidInput)
	}
	if in.Tax.IsNegative() {
		return nil, fmt.Errorf("%w: impuesto negativo", domain.ErrInvalidInput)
	}

	now := uc.now()
	txID := strings.TrimSpace(in.TransactionID)
	if txID == "" {
		txID = newTransactionID(now)
	}
	cashier := strings.TrimSpace(in.Cashier)
	if cashier == "" {
		cashier = userID
	}
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		TransactionID: txID,
		LocationID:    loc.ID,
		Items:         items,
		Discount:      in.Discount,
		Tax:           in.Tax,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Cashier:       cashier,
		Customer:      in.Customer,
		CreatedAt:     now,
	}

	err = uc.ledger.Run(ctx, func(r Repos, m Mutator) error {
		existing, err := r.Sales.GetByTransactionID(ctx, sale.TransactionID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: transacción %s", domain.ErrDuplicate, sale.TransactionID)
		}
		settings, err := r.Discounts.Get(ctx)
		if err != nil {
			return err
		}
		if err := applyPricing(sale, *settings); err != nil {
			return err
		}
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}
		for i, it := range sale.Items {
			if _, err := m.Mutate(ctx, inventory.Event{
				Kind:       entity.MovementSaleDebit,
				Key:        inventory.SaleLineKey(sale.ID, i),
				ProductID:  it.ProductID,
				LocationID: sale.LocationID,
				Delta:      it.Quantity.Neg(),
				Reference:  sale.TransactionID,
				CreatedBy:  userID,
			}); err != nil {
				return err
			}
		}
		return RecordHistory(ctx, r.History, entity.HistoryCreate, "sale", sale.ID, userID, map[string]any{
			"transaction_id": sale.TransactionID,
			"location":       loc.Name,
			"total":          sale.Total,
			"sales_type":     sale.SalesType,
		})
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// applyPricing calcula descuentos mayoristas y totales con la configuración leída en la
// transacción. Recalcula desde los campos de entrada, así un reintento da el mismo resultado.
func applyPricing(sale *entity.Sale, settings entity.DiscountSettings) error {
	discounts, wholesale := inventory.WholesaleDiscounts(sale.Items, settings)
	subtotal := decimal.Zero
	totalWholesale := decimal.Zero
	for i := range sale.Items {
		it := &sale.Items[i]
		it.WholesaleDiscount = discounts[i]
		it.LineTotal = LineTotal(it.UnitPrice, it.Quantity, it.DiscountPct).Sub(discounts[i])
		subtotal = subtotal.Add(it.LineTotal)
		totalWholesale = totalWholesale.Add(discounts[i])
	}
	if sale.Discount.GreaterThan(subtotal) {
		return fmt.Errorf("%w: descuento global mayor que el subtotal", domain.ErrInvalidInput)
	}
	sale.SalesType = entity.SalesTypeRetail
	if wholesale {
		sale.SalesType = entity.SalesTypeWholesale
	}
	sale.WholesaleDiscount = totalWholesale
	sale.Subtotal = subtotal
	sale.Total = subtotal.Sub(sale.Discount).Add(sale.Tax)
	return nil
}

// LineTotal precio*cantidad menos el porcentaje de descuento de la línea.
func LineTotal(price, qty, discountPct decimal.Decimal) decimal.Decimal {
	gross := price.Mul(qty)
	return gross.Sub(gross.Mul(discountPct).Div(hundred))
}

func newTransactionID(now time.Time) string {
	return fmt.Sprintf("TXN-%d-%04d", now.Unix(), rand.IntN(10000))
}

// Get obtiene una venta por ID.
func (uc *SaleUseCase) Get(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	if _, err := uuid.Parse(saleID); err != nil {
		return nil, domain.ErrNotFound
	}
	s, err := uc.repos.Sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(s), nil
}

// List lista ventas, más recientes primero; todos los filtros son opcionales.
func (uc *SaleUseCase) List(ctx context.Context, locationRef string, from, to *time.Time, limit int) (*dto.SaleListResponse, error) {
	filter := repository.SaleFilter{From: from, To: to, Limit: limit}
	if locationRef != "" {
		loc, err := ResolveLocation(ctx, uc.repos.Locations, locationRef)
		if err != nil {
			return nil, err
		}
		filter.LocationID = loc.ID
	}
	list, err := uc.repos.Sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items}, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:         it.ProductID,
			Quantity:          it.Quantity,
			UnitPrice:         it.UnitPrice,
			DiscountPct:       it.DiscountPct,
			WholesaleDiscount: it.WholesaleDiscount,
			LineTotal:         it.LineTotal,
		})
	}
	return &dto.SaleResponse{
		ID:                s.ID,
		TransactionID:     s.TransactionID,
		LocationID:        s.LocationID,
		Items:             items,
		Subtotal:          s.Subtotal,
		Discount:          s.Discount,
		WholesaleDiscount: s.WholesaleDiscount,
		Tax:               s.Tax,
		Total:             s.Total,
		PaymentMethod:     s.PaymentMethod,
		SalesType:         s.SalesType,
		Cashier:           s.Cashier,
		Customer:          s.Customer,
		CreatedAt:         s.CreatedAt,
	}
}
