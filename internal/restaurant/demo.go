package restaurant

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"

	"github.com/comandaclub/comanda/pkg/enums/tablestatus"
)

type demoDishSpec struct {
	Name     string
	Quantity int
	Notes    string
}

type demoOrderSpec struct {
	TableNumber  string
	CustomerName string
	Dishes       []demoDishSpec
}

var demoOrders = []demoOrderSpec{
	{
		TableNumber:  "2",
		CustomerName: "Walk-in",
		Dishes: []demoDishSpec{
			{Name: "Margherita Pizza", Quantity: 2},
			{Name: "House Red Wine", Quantity: 2},
		},
	},
	{
		TableNumber:  "5",
		CustomerName: "Walk-in",
		Dishes: []demoDishSpec{
			{Name: "Grilled Salmon", Quantity: 1, Notes: "no butter"},
			{Name: "Caesar Salad", Quantity: 1},
			{Name: "Sparkling Water", Quantity: 2},
		},
	},
}

// ApplyDemoSeeds opens a few tables with pending demo orders built from
// the seeded menu. Tables that are missing, not available, or already
// carry orders are skipped, so reapplying is a no-op.
func ApplyDemoSeeds(ctx context.Context, repos Repos, logger apt.Logger) error {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	menu, err := repos.MenuItemRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list menu items: %w", err)
	}

	menuByName := make(map[string]*MenuItem, len(menu))
	for _, item := range menu {
		menuByName[item.Name] = item
	}

	for _, spec := range demoOrders {
		if err := spec.ensureDemoOrder(ctx, repos, menuByName, logger); err != nil {
			return err
		}
	}

	return nil
}

func (s demoOrderSpec) ensureDemoOrder(ctx context.Context, repos Repos, menuByName map[string]*MenuItem, logger apt.Logger) error {
	table, err := repos.TableRepo.GetByNumber(ctx, s.TableNumber)
	if err != nil {
		return fmt.Errorf("check demo table %s: %w", s.TableNumber, err)
	}
	if table == nil {
		logger.Info("Skipping demo order, table not found", "table", s.TableNumber)
		return nil
	}
	if table.Status != tablestatus.Statuses.Available.Code() {
		return nil
	}

	existing, err := repos.OrderRepo.ListByTable(ctx, s.TableNumber)
	if err != nil {
		return fmt.Errorf("check demo orders for table %s: %w", s.TableNumber, err)
	}
	if len(existing) > 0 {
		return nil
	}

	order := NewOrder()
	order.TableNumber = s.TableNumber
	order.CustomerName = s.CustomerName

	for _, dish := range s.Dishes {
		item, ok := menuByName[dish.Name]
		if !ok {
			logger.Info("Skipping demo dish, not on the menu", "dish", dish.Name)
			continue
		}
		order.Items = append(order.Items, OrderItem{
			MenuItemID: item.ID,
			Quantity:   dish.Quantity,
			Price:      item.Price,
			Notes:      dish.Notes,
		})
	}

	if len(order.Items) == 0 {
		logger.Info("Skipping demo order, no dishes resolved", "table", s.TableNumber)
		return nil
	}

	order.BeforeCreate()
	if err := repos.OrderRepo.Create(ctx, order); err != nil {
		return fmt.Errorf("create demo order for table %s: %w", s.TableNumber, err)
	}

	table.Occupy(nil, &order.ID)
	table.BeforeUpdate()
	if err := repos.TableRepo.Save(ctx, table); err != nil {
		return fmt.Errorf("occupy demo table %s: %w", s.TableNumber, err)
	}

	logger.Info("Demo order created", "table", s.TableNumber, "order", order.ID.String())
	return nil
}
