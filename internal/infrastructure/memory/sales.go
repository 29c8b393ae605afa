package memory

import (
	"context"
	"sort"
	"time"

	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.SaleRepository      = (*SaleRepo)(nil)
	_ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)
)

// SaleRepo ventas en memoria.
type SaleRepo struct{ v *view }

func copySale(s entity.Sale) entity.Sale {
	s.Items = append([]entity.SaleItem(nil), s.Items...)
	return s
}

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.v.write("sales.create", func(d *data) error {
		for _, x := range d.sales {
			if x.TransactionID == s.TransactionID {
				return domain.ErrDuplicate
			}
		}
		d.sales[s.ID] = copySale(*s)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.v.read(func(d *data) {
		if s, ok := d.sales[id]; ok {
			s = copySale(s)
			out = &s
		}
	})
	return out, nil
}

func (r *SaleRepo) GetByTransactionID(_ context.Context, txID string) (*entity.Sale, error) {
	var out *entity.Sale
	r.v.read(func(d *data) {
		for _, s := range d.sales {
			if s.TransactionID == txID {
				s = copySale(s)
				out = &s
				return
			}
		}
	})
	return out, nil
}

func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	r.v.read(func(d *data) {
		for _, s := range d.sales {
			if !saleMatches(s, f.LocationID, f.From, f.To) {
				continue
			}
			s = copySale(s)
			out = append(out, &s)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func saleMatches(s entity.Sale, locationID string, from, to *time.Time) bool {
	if locationID != "" && s.LocationID != locationID {
		return false
	}
	if from != nil && s.CreatedAt.Before(*from) {
		return false
	}
	if to != nil && s.CreatedAt.After(*to) {
		return false
	}
	return true
}

// AnalyticsRepo agregados de ventas calculados sobre el estado en memoria.
type AnalyticsRepo struct{ v *view }

// Analytics devuelve el repositorio de analítica sobre el estado publicado.
func (s *Store) Analytics() *AnalyticsRepo {
	return &AnalyticsRepo{v: &view{s: s}}
}

func (r *AnalyticsRepo) GetSalesMetrics(_ context.Context, locationID string, start, end time.Time) (repository.SalesMetrics, error) {
	m := repository.SalesMetrics{Revenue: decimal.Zero, UnitsSold: decimal.Zero}
	r.v.read(func(d *data) {
		for _, s := range d.sales {
			if !saleMatches(s, locationID, &start, &end) {
				continue
			}
			m.SaleCount++
			m.Revenue = m.Revenue.Add(s.Total)
			for _, it := range s.Items {
				m.UnitsSold = m.UnitsSold.Add(it.Quantity)
			}
		}
	})
	return m, nil
}

func (r *AnalyticsRepo) GetTopProducts(_ context.Context, locationID string, start, end time.Time, limit int) ([]repository.TopProductResult, error) {
	byID := map[string]*repository.TopProductResult{}
	r.v.read(func(d *data) {
		for _, s := range d.sales {
			if !saleMatches(s, locationID, &start, &end) {
				continue
			}
			for _, it := range s.Items {
				row, ok := byID[it.ProductID]
				if !ok {
					p := d.products[it.ProductID]
					row = &repository.TopProductResult{ProductID: it.ProductID, SKU: p.SKU, ProductName: p.Name}
					byID[it.ProductID] = row
				}
				row.UnitsSold = row.UnitsSold.Add(it.Quantity)
				row.Revenue = row.Revenue.Add(it.LineTotal)
			}
		}
	})
	out := make([]repository.TopProductResult, 0, len(byID))
	for _, row := range byID {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AnalyticsRepo) GetPaymentBreakdown(_ context.Context, locationID string, start, end time.Time) ([]repository.PaymentMethodResult, error) {
	byMethod := map[string]*repository.PaymentMethodResult{}
	r.v.read(func(d *data) {
		for _, s := range d.sales {
			if !saleMatches(s, locationID, &start, &end) {
				continue
			}
			row, ok := byMethod[s.PaymentMethod]
			if !ok {
				row = &repository.PaymentMethodResult{Method: s.PaymentMethod, Amount: decimal.Zero}
				byMethod[s.PaymentMethod] = row
			}
			row.Count++
			row.Amount = row.Amount.Add(s.Total)
		}
	})
	out := make([]repository.PaymentMethodResult, 0, len(byMethod))
	for _, row := range byMethod {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Method < out[j].Method
	})
	return out, nil
}
