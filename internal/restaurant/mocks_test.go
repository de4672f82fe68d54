package restaurant

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockPublisher is a mock implementation of events.Publisher for testing
type MockPublisher struct {
	mu          sync.Mutex
	PublishFunc func(ctx context.Context, topic string, msg []byte) error
	Published   []PublishedMessage
}

type PublishedMessage struct {
	Topic   string
	Payload []byte
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, PublishedMessage{Topic: topic, Payload: msg})
	return nil
}

func (m *MockPublisher) TopicCount(topic string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, p := range m.Published {
		if p.Topic == topic {
			count++
		}
	}
	return count
}

// MockMenuItemRepo is a mock implementation of MenuItemRepo for testing
type MockMenuItemRepo struct {
	mu         sync.RWMutex
	items      map[uuid.UUID]*MenuItem
	CreateFunc func(ctx context.Context, item *MenuItem) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	SaveFunc   func(ctx context.Context, item *MenuItem) error
}

func NewMockMenuItemRepo() *MockMenuItemRepo {
	return &MockMenuItemRepo{
		items: make(map[uuid.UUID]*MenuItem),
	}
}

func (m *MockMenuItemRepo) Create(ctx context.Context, item *MenuItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.items[item.ID]; exists {
		return fmt.Errorf("%w: menu item %s", ErrDuplicateID, item.ID)
	}
	m.items[item.ID] = item
	return nil
}

func (m *MockMenuItemRepo) Get(ctx context.Context, id uuid.UUID) (*MenuItem, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (m *MockMenuItemRepo) List(ctx context.Context) ([]*MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*MenuItem
	for _, item := range m.items {
		result = append(result, item)
	}
	return result, nil
}

func (m *MockMenuItemRepo) ListByCategory(ctx context.Context, category string) ([]*MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*MenuItem
	for _, item := range m.items {
		if item.Category == category {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *MockMenuItemRepo) Save(ctx context.Context, item *MenuItem) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *MockMenuItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

// MockTableRepo is a mock implementation of TableRepo for testing
type MockTableRepo struct {
	mu              sync.RWMutex
	tables          map[uuid.UUID]*Table
	GetByNumberFunc func(ctx context.Context, number string) (*Table, error)
	SaveFunc        func(ctx context.Context, table *Table) error
}

func NewMockTableRepo() *MockTableRepo {
	return &MockTableRepo{
		tables: make(map[uuid.UUID]*Table),
	}
}

func (m *MockTableRepo) Create(ctx context.Context, table *Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tables[table.ID]; exists {
		return fmt.Errorf("%w: table %s", ErrDuplicateID, table.ID)
	}
	m.tables[table.ID] = table
	return nil
}

func (m *MockTableRepo) Get(ctx context.Context, id uuid.UUID) (*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	table, ok := m.tables[id]
	if !ok {
		return nil, nil
	}
	return table, nil
}

func (m *MockTableRepo) GetByNumber(ctx context.Context, number string) (*Table, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, table := range m.tables {
		if table.Number == number {
			return table, nil
		}
	}
	return nil, nil
}

func (m *MockTableRepo) List(ctx context.Context) ([]*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Table
	for _, table := range m.tables {
		result = append(result, table)
	}
	return result, nil
}

func (m *MockTableRepo) ListByStatus(ctx context.Context, status string) ([]*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Table
	for _, table := range m.tables {
		if table.Status == status {
			result = append(result, table)
		}
	}
	return result, nil
}

func (m *MockTableRepo) Save(ctx context.Context, table *Table) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, table)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table.ID] = table
	return nil
}

func (m *MockTableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, id)
	return nil
}

// MockReservationRepo is a mock implementation of ReservationRepo for testing
type MockReservationRepo struct {
	mu           sync.RWMutex
	reservations map[uuid.UUID]*Reservation
	CreateFunc   func(ctx context.Context, reservation *Reservation) error
	GetFunc      func(ctx context.Context, id uuid.UUID) (*Reservation, error)
}

func NewMockReservationRepo() *MockReservationRepo {
	return &MockReservationRepo{
		reservations: make(map[uuid.UUID]*Reservation),
	}
}

func (m *MockReservationRepo) Create(ctx context.Context, reservation *Reservation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, reservation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.reservations[reservation.ID]; exists {
		return fmt.Errorf("%w: reservation %s", ErrDuplicateID, reservation.ID)
	}
	m.reservations[reservation.ID] = reservation
	return nil
}

func (m *MockReservationRepo) Get(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	reservation, ok := m.reservations[id]
	if !ok {
		return nil, nil
	}
	return reservation, nil
}

func (m *MockReservationRepo) List(ctx context.Context) ([]*Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Reservation
	for _, reservation := range m.reservations {
		result = append(result, reservation)
	}
	return result, nil
}

func (m *MockReservationRepo) ListByDate(ctx context.Context, date string) ([]*Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Reservation
	for _, reservation := range m.reservations {
		if reservation.ReservationDate == date {
			result = append(result, reservation)
		}
	}
	return result, nil
}

func (m *MockReservationRepo) ListByTable(ctx context.Context, tableNumber string) ([]*Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Reservation
	for _, reservation := range m.reservations {
		if reservation.TableNumber == tableNumber {
			result = append(result, reservation)
		}
	}
	return result, nil
}

func (m *MockReservationRepo) Save(ctx context.Context, reservation *Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservations[reservation.ID] = reservation
	return nil
}

func (m *MockReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reservations, id)
	return nil
}

// MockOrderRepo is a mock implementation of OrderRepo for testing
type MockOrderRepo struct {
	mu         sync.RWMutex
	orders     map[uuid.UUID]*Order
	CreateFunc func(ctx context.Context, order *Order) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*Order, error)
	SaveFunc   func(ctx context.Context, order *Order) error
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{
		orders: make(map[uuid.UUID]*Order),
	}
}

func (m *MockOrderRepo) Create(ctx context.Context, order *Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.orders[order.ID]; exists {
		return fmt.Errorf("%w: order %s", ErrDuplicateID, order.ID)
	}
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return order, nil
}

func (m *MockOrderRepo) List(ctx context.Context) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, order := range m.orders {
		result = append(result, order)
	}
	return result, nil
}

func (m *MockOrderRepo) ListByTable(ctx context.Context, tableNumber string) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, order := range m.orders {
		if order.TableNumber == tableNumber {
			result = append(result, order)
		}
	}
	return result, nil
}

func (m *MockOrderRepo) ListByStatus(ctx context.Context, status string) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, order := range m.orders {
		if order.Status == status {
			result = append(result, order)
		}
	}
	return result, nil
}

func (m *MockOrderRepo) Save(ctx context.Context, order *Order) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.orders, id)
	return nil
}

// MockBillRepo is a mock implementation of BillRepo for testing
type MockBillRepo struct {
	mu         sync.RWMutex
	bills      map[uuid.UUID]*Bill
	CreateFunc func(ctx context.Context, bill *Bill) error
}

func NewMockBillRepo() *MockBillRepo {
	return &MockBillRepo{
		bills: make(map[uuid.UUID]*Bill),
	}
}

func (m *MockBillRepo) Create(ctx context.Context, bill *Bill) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, bill)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.bills[bill.ID]; exists {
		return fmt.Errorf("%w: bill %s", ErrDuplicateID, bill.ID)
	}
	m.bills[bill.ID] = bill
	return nil
}

func (m *MockBillRepo) Get(ctx context.Context, id uuid.UUID) (*Bill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bill, ok := m.bills[id]
	if !ok {
		return nil, nil
	}
	return bill, nil
}

func (m *MockBillRepo) GetByOrder(ctx context.Context, orderID uuid.UUID) (*Bill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, bill := range m.bills {
		if bill.OrderID == orderID {
			return bill, nil
		}
	}
	return nil, nil
}

func (m *MockBillRepo) List(ctx context.Context) ([]*Bill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Bill
	for _, bill := range m.bills {
		result = append(result, bill)
	}
	return result, nil
}

func (m *MockBillRepo) Save(ctx context.Context, bill *Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bills[bill.ID] = bill
	return nil
}

func (m *MockBillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bills, id)
	return nil
}

// MockStaffRepo is a mock implementation of StaffRepo for testing
type MockStaffRepo struct {
	mu              sync.RWMutex
	staff           map[uuid.UUID]*Staff
	GetByUsernameFunc func(ctx context.Context, username string) (*Staff, error)
}

func NewMockStaffRepo() *MockStaffRepo {
	return &MockStaffRepo{
		staff: make(map[uuid.UUID]*Staff),
	}
}

func (m *MockStaffRepo) Create(ctx context.Context, staff *Staff) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.staff[staff.ID]; exists {
		return fmt.Errorf("%w: staff %s", ErrDuplicateID, staff.ID)
	}
	m.staff[staff.ID] = staff
	return nil
}

func (m *MockStaffRepo) Get(ctx context.Context, id uuid.UUID) (*Staff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	staff, ok := m.staff[id]
	if !ok {
		return nil, nil
	}
	return staff, nil
}

func (m *MockStaffRepo) GetByUsername(ctx context.Context, username string) (*Staff, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, staff := range m.staff {
		if staff.Username == username {
			return staff, nil
		}
	}
	return nil, nil
}

func (m *MockStaffRepo) List(ctx context.Context) ([]*Staff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Staff
	for _, staff := range m.staff {
		result = append(result, staff)
	}
	return result, nil
}

func (m *MockStaffRepo) Save(ctx context.Context, staff *Staff) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staff[staff.ID] = staff
	return nil
}

func (m *MockStaffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.staff, id)
	return nil
}

func newMockRepos() Repos {
	return Repos{
		MenuItemRepo:    NewMockMenuItemRepo(),
		TableRepo:       NewMockTableRepo(),
		ReservationRepo: NewMockReservationRepo(),
		OrderRepo:       NewMockOrderRepo(),
		BillRepo:        NewMockBillRepo(),
		StaffRepo:       NewMockStaffRepo(),
	}
}
