package restaurant

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/appetiteclub/apt"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const MaxBodyBytes = 1 << 20

type HandlerDeps struct {
	Repos    Repos
	Workflow *Workflow
	Tokens   *TokenStore
	Activity *ActivityFeed
}

type Handler struct {
	repos    Repos
	workflow *Workflow
	tokens   *TokenStore
	activity *ActivityFeed
	logger   apt.Logger
	config   *apt.Config
}

func NewHandler(deps HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		repos:    deps.Repos,
		workflow: deps.Workflow,
		tokens:   deps.Tokens,
		activity: deps.Activity,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)

	r.Route("/menu-items", func(r chi.Router) {
		r.Post("/", h.CreateMenuItem)
		r.Get("/", h.ListMenuItems)
		r.Get("/{id}", h.GetMenuItem)
		r.Patch("/{id}", h.UpdateMenuItem)
		r.Delete("/{id}", h.DeleteMenuItem)
	})

	r.Route("/tables", func(r chi.Router) {
		r.Post("/", h.CreateTable)
		r.Get("/", h.ListTables)
		r.Get("/{number}", h.GetTable)
		r.Patch("/{number}", h.UpdateTable)
		r.Delete("/{number}", h.DeleteTable)

		r.Post("/{number}/assign", h.AssignTable)
		r.Post("/{number}/assist", h.MarkTableNeedsAssistance)
		r.Post("/{number}/release", h.ReleaseTable)
	})

	r.Route("/reservations", func(r chi.Router) {
		r.Post("/", h.CreateReservation)
		r.Get("/", h.ListReservations)
		r.Get("/conflicts", h.FindReservationConflicts)
		r.Get("/{id}", h.GetReservation)
		r.Patch("/{id}", h.UpdateReservation)
		r.Delete("/{id}", h.DeleteReservation)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
		r.Delete("/{id}", h.DeleteOrder)

		r.Patch("/{id}/status", h.UpdateOrderStatus)
		r.Patch("/{id}/accept", h.AcceptOrder)
		r.Post("/{id}/bill", h.GenerateBill)
	})

	r.Route("/bills", func(r chi.Router) {
		r.Get("/", h.ListBills)
		r.Get("/{id}", h.GetBill)
		r.Post("/{id}/pay", h.PayBill)
	})

	r.Get("/activity", h.ListActivity)
}

// ListActivity serves the recent-event feed, newest first.
func (h *Handler) ListActivity(w http.ResponseWriter, r *http.Request) {
	if h.activity == nil {
		apt.RespondCollection(w, []*ActivityEntry{}, "activity")
		return
	}
	apt.RespondCollection(w, h.activity.Recent(), "activity")
}

// Auth

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	var req LoginRequest
	if !h.decodeBody(w, r, log, &req) {
		return
	}

	resp, err := Login(ctx, h.repos.StaffRepo, h.tokens, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			apt.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.respondWorkflowError(w, log, err, "Could not log in")
		return
	}

	apt.RespondSuccess(w, resp)
}

// Menu item handlers

func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	var req MenuItemCreateRequest
	if !h.decodeBody(w, r, log, &req) {
		return
	}

	validationErrors := ValidateMenuItemCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		apt.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	item := NewMenuItem()
	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Category = req.Category
	item.ImageURL = req.ImageURL
	if req.Ingredients != nil {
		item.Ingredients = req.Ingredients
	}
	if req.Allergens != nil {
		item.Allergens = req.Allergens
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	item.BeforeCreate()

	if err := h.repos.MenuItemRepo.Create(ctx, item); err != nil {
		log.Error("cannot create menu item", "error", err)
		h.respondStoreError(w, err, "Could not create menu item")
		return
	}

	links := apt.RESTfulLinksFor(item)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, item, links...)
}

func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	item, err := h.repos.MenuItemRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading menu item", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not load menu item")
		return
	}

	if item == nil {
		apt.RespondError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	links := apt.RESTfulLinksFor(item)
	apt.RespondSuccess(w, item, links...)
}

func (h *Handler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	category := r.URL.Query().Get("category")

	var items []*MenuItem
	var err error

	if category != "" {
		items, err = h.repos.MenuItemRepo.ListByCategory(ctx, category)
	} else {
		items, err = h.repos.MenuItemRepo.List(ctx)
	}

	if err != nil {
		log.Error("error retrieving menu items", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve menu items")
		return
	}

	apt.RespondCollection(w, items, "menu-item")
}

func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req MenuItemUpdateRequest
	if !h.decodeBody(w, r, log, &req) {
		return
	}

	if req.Category != "" && !ValidCategory(req.Category) {
		apt.RespondError(w, http.StatusBadRequest, "Invalid category")
		return
	}

	item, err := h.repos.MenuItemRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading menu item", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not update menu item")
		return
	}

	if item == nil {
		apt.RespondError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Ingredients != nil {
		item.Ingredients = *req.Ingredients
	}
	if req.Allergens != nil {
		item.Allergens = *req.Allergens
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	item.BeforeUpdate()

	if err := h.repos.MenuItemRepo.Save(ctx, item); err != nil {
		log.Error("cannot update menu item", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not update menu item")
		return
	}

	links := apt.RESTfulLinksFor(item)
	apt.RespondSuccess(w, item, links...)
}

func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.repos.MenuItemRepo.Delete(ctx, id); err != nil {
		log.Error("cannot delete menu item", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not delete menu item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Table handlers

func (h *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	var req TableCreateRequest
	if !h.decodeBody(w, r, log, &req) {
		return
	}

	validationErrors := ValidateTableCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		apt.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	existing, err := h.repos.TableRepo.GetByNumber(ctx, req.Number)
	if err != nil {
		log.Error("cannot check table number", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create table")
		return
	}
	if existing != nil {
		apt.RespondError(w, http.StatusConflict, "Table number already exists")
		return
	}

	table := NewTable()
	table.Number = req.Number
	table.Capacity = req.Capacity
	table.Location = req.Location
	table.BeforeCreate()

	if err := h.repos.TableRepo.Create(ctx, table); err != nil {
		log.Error("cannot create table", "error", err)
		h.respondStoreError(w, err, "Could not create table")
		return
	}

	links := apt.RESTfulLinksFor(table)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, table, links...)
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	number := chi.URLParam(r, "number")

	table, err := h.repos.TableRepo.GetByNumber(ctx, number)
	if err != nil {
		log.Error("error loading table", "error", err, "number", number)
		apt.RespondError(w, http.StatusInternalServerError, "Could not load table")
		return
	}

	if table == nil {
		apt.RespondError(w, http.StatusNotFound, "Table not found")
		return
	}

	links := apt.RESTfulLinksFor(table)
	apt.RespondSuccess(w, table, links...)
}

func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	status := r.URL.Query().Get("status")

	var tables []*Table
	var err error

	if status != "" {
		tables, err = h.repos.TableRepo.ListByStatus(ctx, status)
	} else {
		tables, err = h.repos.TableRepo.List(ctx)
	}

	if err != nil {
		log.Error("error retrieving tables", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve tables")
		return
	}

	apt.RespondCollection(w, tables, "table")
}

func (h *Handler) UpdateTable(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	number := chi.URLParam(r, "number")

	var req TableUpdateRequest
	if !h.decodeBody(w, r, log, &req) {
		return
	}

	table, err := h.workflow.UpdateTable(ctx, number, req)
	if err != nil {
		h.respondWorkflowError(w, log, err, "Could not update table")
		return
	}

	links := apt.RESTfulLinksFor(table)
	apt.RespondSuccess(w, table, links...)
}

func (h *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	number := chi.URLParam(r, "number")

	table, err := h.repos.TableRepo.GetByNumber(ctx, number)
	if err != nil {
		log.Error("error loading table", "error", err, "number", number)
		apt.RespondError(w, http.StatusInternalServerError, "Could not delete table")
		return
	}
	if table == nil {
		apt.RespondError(w, http.StatusNotFound, "Table not found")
		return
	}

	if err := h.repos.TableRepo.Delete(ctx, table.ID); err != nil {
		log.Error("cannot delete table", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not delete table")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AssignTable(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	number := chi.URLParam(r, "number")

	var req TableAssignRequest
	if !h.decodeBody(w, r, log, &req) {
		return
	}

	if req.WaiterID == uuid.Nil {
		apt.RespondError(w, http.StatusBadRequest, "waiter_id is required")
		return
	}

	table, err := h.workflow.AssignTable(ctx, number, req.WaiterID)
	if err != nil {
		h.respondWorkflowError(w, log, err, "Could not assign table")
		return
	}

	links := apt.RESTfulLinksFor(table)
	apt.RespondSuccess(w, table, links...)
}

func (h *Handler) MarkTableNeedsAssistance(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	number := chi.URLParam(r, "number")

	table, err := h.workflow.MarkNeedsAssistance(ctx, number)
	if err != nil {
		h.respondWorkflowError(w, log, err, "Could not flag table")
		return
	}

	links := apt.RESTfulLinksFor(table)
	apt.RespondSuccess(w, table, links...)
}

func (h *Handler) ReleaseTable(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	number := chi.URLParam(r, "number")

	table, err := h.workflow.ReleaseTable(ctx, number)
	if err != nil {
		h.respondWorkflowError(w, log, err, "Could not release table")
		return
	}

	links := apt.RESTfulLinksFor(table)
	apt.RespondSuccess(w, table, links...)
}

// Reservation handlers

func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	var req ReservationCreateRequest
	if !h.decodeBody(w, r, log, &req) {
		return
	}

	reservation, err := h.workflow.CreateReservation(ctx, req)
	if err != nil {
		h.respondWorkflowError(w, log, err, "Could not create reservation")
		return
	}

	links := apt.RESTfulLinksFor(reservation)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, reservation, links...)
}

func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	reservation, err := h.repos.ReservationRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading reservation", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not load reservation")
		return
	}

	if reservation == nil {
		apt.RespondError(w, http.StatusNotFound, "Reservation not found")
		return
	}

	links := apt.RESTfulLinksFor(reservation)
	apt.RespondSuccess(w, reservation, links...)
}

func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	date := r.URL.Query().Get("date")
	tableNumber := r.URL.Query().Get("table")

	var reservations []*Reservation
	var err error

	switch {
	case date != "":
		reservations, err = h.repos.ReservationRepo.ListByDate(ctx, date)
	case tableNumber != "":
		reservations, err = h.repos.ReservationRepo.ListByTable(ctx, tableNumber)
	default:
		reservations, err = h.repos.ReservationRepo.List(ctx)
	}

	if err != nil {
		log.Error("error retrieving reservations", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve reservations")
		return
	}

	apt.RespondCollection(w, reservations, "reservation")
}

// FindReservationConflicts exposes the conflict predicate as a pure
// query, used by clients to validate a reschedule before applying it.
func (h *Handler) FindReservationConflicts(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	query := r.URL.Query()
	tableNumber := query.Get("table")
	date := query.Get("date")
	start := query.Get("start")
	end := query.Get("end")

	if tableNumber == "" || date == "" || start == "" {
		apt.RespondError(w, http.StatusBadRequest, "table, date and start are required")
		return
	}
	if end == "" {
		end = DefaultEndTime(start)
	}

	var excludeID *uuid.UUID
	if exclude := query.Get("exclude"); exclude != "" {
		id, err := uuid.Parse(exclude)
		if err != nil {
			apt.RespondError(w, http.StatusBadRequest, "Invalid exclude parameter")
			return
		}
		excludeID = &id
	}

	conflicts, err := h.workflow.FindConflicts(ctx, tableNumber, date, start, end, excludeID)
	if err != nil {
		log.Error("error finding conflicts", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not check conflicts")
		return
	}

	apt.RespondCollection(w, conflicts, "reservation")
}

func (h *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req ReservationUpdateRequest
	if !h.decodeBody(w, r, log, &req) {
		return
	}

	if req.Status != "" && !ValidateReservationStatus(req.Status) {
		apt.RespondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	reservation, err := h.repos.ReservationRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading reservation", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not update reservation")
		return
	}

	if reservation == nil {
		apt.RespondError(w, http.StatusNotFound, "Reservation not found")
		return
	}

	date := reservation.ReservationDate
	start := reservation.ReservationTime
	end := reservation.EndTime
	if req.ReservationDate != "" {
		date = req.ReservationDate
	}
	if req.ReservationTime != "" {
		start = req.ReservationTime
	}
	if req.EndTime != "" {
		end = req.EndTime
	}

	rescheduled := date != reservation.ReservationDate ||
		start != reservation.ReservationTime ||
		end != reservation.EndTime

	if rescheduled {
		conflicts, err := h.workflow.FindConflicts(ctx, reservation.TableNumber, date, start, end, &reservation.ID)
		if err != nil {
			log.Error("error checking conflicts", "error", err)
			apt.RespondError(w, http.StatusInternalServerError, "Could not update reservation")
			return
		}
		if len(conflicts) > 0 {
			apt.RespondError(w, http.StatusConflict, "Reservation conflicts with an existing reservation")
			return
		}
	}

	if req.CustomerName != "" {
		reservation.CustomerName = req.CustomerName
	}
	if req.CustomerPhone != "" {
		reservation.CustomerPhone = req.CustomerPhone
	}
	if req.CustomerEmail != "" {
		reservation.CustomerEmail = req.CustomerEmail
	}
	reservation.ReservationDate = date
	reservation.ReservationTime = start
	reservation.EndTime = end
	if req.NumberOfGuests > 0 {
		reservation.NumberOfGuests = req.NumberOfGuests
	}
	if req.Status != "" {
		reservation.Status = req.Status
	}
	reservation.BeforeUpdate()

	if err := h.repos.ReservationRepo.Save(ctx, reservation); err != nil {
		log.Error("cannot update reservation", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not update reservation")
		return
	}

	links := apt.RESTfulLinksFor(reservation)
	apt.RespondSuccess(w, reservation, links...)
}

func (h *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.repos.ReservationRepo.Delete(ctx, id); err != nil {
		log.Error("cannot delete reservation", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not delete reservation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Order handlers

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	var req OrderCreateRequest
	if !h.decodeBody(w, r, log, &req) {
		return
	}

	order, err := h.workflow.CreateOrder(ctx, req)
	if err != nil {
		h.respondWorkflowError(w, log, err, "Could not create order")
		return
	}

	links := apt.RESTfulLinksFor(order)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, order, links...)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	order, err := h.repos.OrderRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not load order")
		return
	}

	if order == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	links := apt.RESTfulLinksFor(order)
	apt.RespondSuccess(w, order, links...)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	status := r.URL.Query().Get("status")
	tableNumber := r.URL.Query().Get("table")

	var orders []*Order
	var err error

	switch {
	case status != "":
		orders, err = h.repos.OrderRepo.ListByStatus(ctx, status)
	case tableNumber != "":
		orders, err = h.repos.OrderRepo.ListByTable(ctx, tableNumber)
	default:
		orders, err = h.repos.OrderRepo.List(ctx)
	}

	if err != nil {
		log.Error("error retrieving orders", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	apt.RespondCollection(w, orders, "order")
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req OrderStatusRequest
	if !h.decodeBody(w, r, log, &req) {
		return
	}

	order, err := h.workflow.UpdateOrderStatus(ctx, id, req.Status)
	if err != nil {
		h.respondWorkflowError(w, log, err, "Could not update order status")
		return
	}

	links := apt.RESTfulLinksFor(order)
	apt.RespondSuccess(w, order, links...)
}

func (h *Handler) AcceptOrder(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req OrderAcceptRequest
	if !h.decodeBody(w, r, log, &req) {
		return
	}

	order, err := h.workflow.AcceptOrder(ctx, id, req)
	if err != nil {
		h.respondWorkflowError(w, log, err, "Could not accept order")
		return
	}

	links := apt.RESTfulLinksFor(order)
	apt.RespondSuccess(w, order, links...)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.repos.OrderRepo.Delete(ctx, id); err != nil {
		log.Error("cannot delete order", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not delete order")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Bill handlers

func (h *Handler) GenerateBill(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req BillGenerateRequest
	if !h.decodeBodyOptional(w, r, log, &req) {
		return
	}

	bill, err := h.workflow.GenerateBill(ctx, id, req.PaymentMethod)
	if err != nil {
		h.respondWorkflowError(w, log, err, "Could not generate bill")
		return
	}

	links := apt.RESTfulLinksFor(bill)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, bill, links...)
}

func (h *Handler) GetBill(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	bill, err := h.repos.BillRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading bill", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not load bill")
		return
	}

	if bill == nil {
		apt.RespondError(w, http.StatusNotFound, "Bill not found")
		return
	}

	links := apt.RESTfulLinksFor(bill)
	apt.RespondSuccess(w, bill, links...)
}

func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	bills, err := h.repos.BillRepo.List(ctx)
	if err != nil {
		log.Error("error retrieving bills", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve bills")
		return
	}

	apt.RespondCollection(w, bills, "bill")
}

func (h *Handler) PayBill(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req PaymentRequest
	if !h.decodeBodyOptional(w, r, log, &req) {
		return
	}

	confirmation, err := h.workflow.PayBill(ctx, id, req.PaymentMethod)
	if err != nil {
		h.respondWorkflowError(w, log, err, "Could not process payment")
		return
	}

	apt.RespondSuccess(w, confirmation)
}

// Helper methods

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", apt.RequestIDFrom(r.Context()))
}

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		log.Debug("missing id parameter")
		apt.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "id", idStr, "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}

	return id, true
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, log apt.Logger, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("error reading request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Could not read request body")
		return false
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		apt.RespondError(w, http.StatusBadRequest, "Request body is empty")
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		log.Debug("error decoding JSON", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}

	return true
}

// decodeBodyOptional accepts an empty body, leaving dst zero-valued.
func (h *Handler) decodeBodyOptional(w http.ResponseWriter, r *http.Request, log apt.Logger, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("error reading request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Could not read request body")
		return false
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return true
	}

	if err := json.Unmarshal(body, dst); err != nil {
		log.Debug("error decoding JSON", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}

	return true
}

func (h *Handler) respondWorkflowError(w http.ResponseWriter, log apt.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		apt.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrValidation):
		log.Debug("validation failed", "error", err)
		apt.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrTableUnavailable):
		log.Debug("table unavailable", "error", err)
		apt.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDuplicateID):
		apt.RespondError(w, http.StatusConflict, err.Error())
	default:
		log.Error(fallback, "error", err)
		apt.RespondError(w, http.StatusInternalServerError, fallback)
	}
}

func (h *Handler) respondStoreError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, ErrDuplicateID) {
		apt.RespondError(w, http.StatusConflict, err.Error())
		return
	}
	apt.RespondError(w, http.StatusInternalServerError, fallback)
}
