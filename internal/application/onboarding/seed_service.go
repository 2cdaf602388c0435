package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/meditrack/backend/internal/application/catalog"
	"github.com/meditrack/backend/internal/application/order"
	"github.com/meditrack/backend/internal/application/partner"
	appsettings "github.com/meditrack/backend/internal/application/settings"
	"github.com/meditrack/backend/internal/domain/settings"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// clearBatchSize is the page size used when draining records
const clearBatchSize = 100

// SeedService populates a fresh installation with demonstration data.
// Records are created sequentially through the regular services so all
// validation and history side effects apply, with a short delay between
// writes to keep creation timestamps distinct.
type SeedService struct {
	suppliers     *partner.SupplierService
	manufacturers *catalog.ManufacturerService
	inventory     *catalog.InventoryService
	orders        *order.Service
	settings      *appsettings.Service
	logger        *zap.Logger
	delay         time.Duration
}

// Summary reports what a seed run created
type Summary struct {
	Suppliers     int      `json:"suppliers"`
	Manufacturers int      `json:"manufacturers"`
	Items         int      `json:"items"`
	Orders        int      `json:"orders"`
	Errors        []string `json:"errors,omitempty"`
}

// NewSeedService creates a new seed service
func NewSeedService(
	suppliers *partner.SupplierService,
	manufacturers *catalog.ManufacturerService,
	inventory *catalog.InventoryService,
	orders *order.Service,
	settingsService *appsettings.Service,
	logger *zap.Logger,
) *SeedService {
	return &SeedService{
		suppliers:     suppliers,
		manufacturers: manufacturers,
		inventory:     inventory,
		orders:        orders,
		settings:      settingsService,
		logger:        logger,
		delay:         10 * time.Millisecond,
	}
}

// Completed reports whether a seed run has finished before
func (s *SeedService) Completed(ctx context.Context) bool {
	return s.settings.GetBool(ctx, settings.KeyOnboardingCompleted)
}

// Run seeds demonstration data. Individual failures are collected in
// the summary; the run continues with the remaining records.
func (s *SeedService) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	for _, req := range seedSuppliers() {
		if _, err := s.suppliers.Create(ctx, req); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("supplier %s: %v", req.Name, err))
			continue
		}
		summary.Suppliers++
		s.pause(ctx)
	}

	for _, req := range seedManufacturers() {
		if _, err := s.manufacturers.Create(ctx, req); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("manufacturer %s: %v", req.Name, err))
			continue
		}
		summary.Manufacturers++
		s.pause(ctx)
	}

	for _, req := range seedItems() {
		if _, err := s.inventory.Create(ctx, req); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("item %s: %v", req.Name, err))
			continue
		}
		summary.Items++
		s.pause(ctx)
	}

	for _, req := range seedOrders() {
		if _, err := s.orders.Create(ctx, req); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("order for %s: %v", req.CustomerName, err))
			continue
		}
		summary.Orders++
		s.pause(ctx)
	}

	if _, err := s.settings.Set(ctx, settings.KeyOnboardingCompleted, "true", "system"); err != nil {
		s.logger.Warn("failed to mark onboarding completed", zap.Error(err))
	}

	s.logger.Info("seed run finished",
		zap.Int("suppliers", summary.Suppliers),
		zap.Int("manufacturers", summary.Manufacturers),
		zap.Int("items", summary.Items),
		zap.Int("orders", summary.Orders),
		zap.Int("errors", len(summary.Errors)))

	return summary, nil
}

// Clear removes seeded data in the reverse order of creation: orders
// first, then inventory, manufacturers and suppliers, so nothing ends
// up referencing a removed record. Failures are collected and the run
// continues.
func (s *SeedService) Clear(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	for {
		page, err := s.orders.List(ctx, order.ListOrdersQuery{PageSize: clearBatchSize})
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("list orders: %v", err))
			break
		}
		if len(page.Items) == 0 {
			break
		}
		progress := 0
		for _, o := range page.Items {
			if err := s.orders.Delete(ctx, o.ID); err != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("order %s: %v", o.OrderNumber, err))
				continue
			}
			summary.Orders++
			progress++
		}
		if progress == 0 {
			break
		}
	}

	for {
		page, err := s.inventory.List(ctx, catalog.ListInventoryQuery{PageSize: clearBatchSize})
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("list items: %v", err))
			break
		}
		if len(page.Items) == 0 {
			break
		}
		progress := 0
		for _, item := range page.Items {
			if err := s.inventory.Delete(ctx, item.ID); err != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("item %s: %v", item.Name, err))
				continue
			}
			summary.Items++
			progress++
		}
		if progress == 0 {
			break
		}
	}

	for {
		page, err := s.manufacturers.List(ctx, 1, clearBatchSize, "", nil)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("list manufacturers: %v", err))
			break
		}
		if len(page.Items) == 0 {
			break
		}
		progress := 0
		for _, m := range page.Items {
			if err := s.manufacturers.Purge(ctx, m.ID); err != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("manufacturer %s: %v", m.Name, err))
				continue
			}
			summary.Manufacturers++
			progress++
		}
		if progress == 0 {
			break
		}
	}

	for {
		page, err := s.suppliers.List(ctx, partner.ListSuppliersQuery{PageSize: clearBatchSize})
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("list suppliers: %v", err))
			break
		}
		if len(page.Items) == 0 {
			break
		}
		progress := 0
		for _, sup := range page.Items {
			if err := s.suppliers.Delete(ctx, sup.ID); err != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("supplier %s: %v", sup.Name, err))
				continue
			}
			summary.Suppliers++
			progress++
		}
		if progress == 0 {
			break
		}
	}

	if _, err := s.settings.Set(ctx, settings.KeyOnboardingCompleted, "false", "system"); err != nil {
		s.logger.Warn("failed to reset onboarding flag", zap.Error(err))
	}

	s.logger.Info("clear run finished",
		zap.Int("orders", summary.Orders),
		zap.Int("items", summary.Items),
		zap.Int("manufacturers", summary.Manufacturers),
		zap.Int("suppliers", summary.Suppliers),
		zap.Int("errors", len(summary.Errors)))

	return summary, nil
}

func (s *SeedService) pause(ctx context.Context) {
	if s.delay <= 0 {
		return
	}
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
	}
}

func ptrInt(v int) *int { return &v }

func ptrDecimal(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func seedSuppliers() []partner.CreateSupplierRequest {
	return []partner.CreateSupplierRequest{
		{
			Name:            "PharmaDirect",
			Phone:           "+49 30 5550100",
			Whatsapp:        "+49 170 5550100",
			Email:           "orders@pharmadirect.example",
			Medicines:       "antibiotics, analgesics",
			AvgDeliveryDays: ptrInt(2),
			Rating:          ptrDecimal(4.5),
		},
		{
			Name:            "MediSupply GmbH",
			Phone:           "+49 30 5550200",
			Email:           "contact@medisupply.example",
			Medicines:       "dermatologics, vitamins",
			AvgDeliveryDays: ptrInt(4),
			Rating:          ptrDecimal(3.8),
		},
		{
			Name:  "QuickMeds",
			Phone: "+49 30 5550300",
			Notes: "same-day courier within the city",
		},
	}
}

func seedManufacturers() []catalog.CreateManufacturerRequest {
	return []catalog.CreateManufacturerRequest{
		{Name: "Bayer AG", ShortName: "Bayer", Country: "Germany"},
		{Name: "Sanofi S.A.", ShortName: "Sanofi", Country: "France"},
		{Name: "Hikma Pharmaceuticals", ShortName: "Hikma", Country: "Jordan"},
	}
}

func seedItems() []catalog.CreateInventoryItemRequest {
	return []catalog.CreateInventoryItemRequest{
		{
			Name:          "Paracetamol",
			Concentration: "500mg",
			Form:          "tablet",
			Quantity:      120,
			MinStockLevel: 30,
			UnitPrice:     ptrDecimal(3.50),
			Barcodes:      []string{"4006381333931"},
		},
		{
			Name:          "Amoxicillin",
			Concentration: "500mg",
			Form:          "capsule",
			Quantity:      25,
			MinStockLevel: 25,
			UnitPrice:     ptrDecimal(8.90),
			Barcodes:      []string{"4006381333948"},
		},
		{
			Name:          "Ibuprofen",
			Concentration: "400mg",
			Form:          "tablet",
			Quantity:      0,
			MinStockLevel: 20,
			UnitPrice:     ptrDecimal(4.20),
			Barcodes:      []string{"4006381333955"},
		},
	}
}

func seedOrders() []order.CreateOrderRequest {
	return []order.CreateOrderRequest{
		{
			CustomerName: "Maria Schmidt",
			Phone:        "+49 170 1234567",
			Items: []order.OrderItemRequest{
				{Name: "Insulin glargine", Concentration: "100IU/ml", Form: "injection", Quantity: 2, UnitPrice: ptrDecimal(45.00)},
			},
			Notes: "needs refrigerated transport",
		},
		{
			CustomerName: "Ahmed Hassan",
			Phone:        "+49 171 7654321",
			Status:       "ordered",
			Items: []order.OrderItemRequest{
				{Name: "Salbutamol", Concentration: "100mcg", Form: "inhaler", Quantity: 1, UnitPrice: ptrDecimal(12.50)},
				{Name: "Montelukast", Concentration: "10mg", Form: "tablet", Quantity: 1, UnitPrice: ptrDecimal(18.00)},
			},
		},
	}
}
