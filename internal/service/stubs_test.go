package service_test

// In-memory repository stubs shared by the service tests. Each stub keeps
// the minimum state needed to exercise the service contracts; mutexes make
// them safe for the concurrency tests.

import (
	"context"
	"errors"
	"sync"
	"time"

	"belezapos/internal/dto"
	"belezapos/internal/model"
	"belezapos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── TicketRepository ──────────────────────────────────────────────────────────

type stubTicketRepo struct {
	mu      sync.Mutex
	tickets map[uuid.UUID]*model.Ticket
	seq     int
}

func newStubTicketRepo() *stubTicketRepo {
	return &stubTicketRepo{tickets: make(map[uuid.UUID]*model.Ticket)}
}

func (r *stubTicketRepo) Create(_ context.Context, t *model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tickets[t.ID] = t
	return nil
}

// FindByID returns a shallow copy so concurrent finalize attempts never
// race on the same struct; status mutations go through MarkFinalizedTx.
func (r *stubTicketRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTicketRepo) List(_ context.Context, _ dto.TicketFilter) ([]model.Ticket, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *stubTicketRepo) NextTicketNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, nil
}

func (r *stubTicketRepo) AddServiceLineTx(_ *gorm.DB, line *model.TicketServiceLine) error {
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	return nil
}

func (r *stubTicketRepo) AddProductLineTx(_ *gorm.DB, line *model.TicketProductLine) error {
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	return nil
}

func (r *stubTicketRepo) DeleteServiceLineTx(_ *gorm.DB, ticketID, lineID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[ticketID]
	if !ok {
		return 0, nil
	}
	for _, l := range t.ServiceLines {
		if l.ID == lineID {
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubTicketRepo) DeleteProductLineTx(_ *gorm.DB, ticketID, lineID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[ticketID]
	if !ok {
		return 0, nil
	}
	for _, l := range t.ProductLines {
		if l.ID == lineID {
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubTicketRepo) UpdateGrossTotalTx(_ *gorm.DB, t *model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[t.ID] = t
	return nil
}

func (r *stubTicketRepo) MarkFinalizedTx(_ *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok || t.Status != "open" {
		return 0, nil
	}
	t.Status = "finalized"
	return 1, nil
}

func (r *stubTicketRepo) DB() *gorm.DB { return nil }

var _ repository.TicketRepository = (*stubTicketRepo)(nil)

// ── SettlementRepository ──────────────────────────────────────────────────────

type stubSettlementRepo struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*model.Settlement
	byTicket map[uuid.UUID]*model.Settlement
}

func newStubSettlementRepo() *stubSettlementRepo {
	return &stubSettlementRepo{
		byID:     make(map[uuid.UUID]*model.Settlement),
		byTicket: make(map[uuid.UUID]*model.Settlement),
	}
}

func (r *stubSettlementRepo) CreateTx(_ *gorm.DB, s *model.Settlement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	for i := range s.Entries {
		if s.Entries[i].ID == uuid.Nil {
			s.Entries[i].ID = uuid.New()
		}
		s.Entries[i].SettlementID = s.ID
	}
	r.byID[s.ID] = s
	r.byTicket[s.TicketID] = s
	return nil
}

func (r *stubSettlementRepo) FindByTicketID(_ context.Context, ticketID uuid.UUID) (*model.Settlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byTicket[ticketID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSettlementRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Settlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSettlementRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]model.Settlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Settlement
	for _, s := range r.byID {
		if !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			out = append(out, *s)
		}
	}
	return out, nil
}

var _ repository.SettlementRepository = (*stubSettlementRepo)(nil)

// ── CashierRepository ─────────────────────────────────────────────────────────

// stubCashierRepo stores movements itself and loads them into session
// copies on every read, the way the real repo preloads them. Handing out
// copies keeps concurrent appends from racing on a shared struct.
type stubCashierRepo struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*model.CashierSession
	movements map[uuid.UUID][]model.CashMovement
}

func newStubCashierRepo() *stubCashierRepo {
	return &stubCashierRepo{
		sessions:  make(map[uuid.UUID]*model.CashierSession),
		movements: make(map[uuid.UUID][]model.CashMovement),
	}
}

func (r *stubCashierRepo) loadLocked(id uuid.UUID) (*model.CashierSession, bool) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	clone := *s
	clone.Movements = append([]model.CashMovement(nil), r.movements[id]...)
	return &clone, true
}

func (r *stubCashierRepo) CreateSession(_ context.Context, s *model.CashierSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *stubCashierRepo) FindOpenByResponsible(_ context.Context, responsibleID uuid.UUID) (*model.CashierSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ResponsibleID == responsibleID && s.Status == "open" {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCashierRepo) FindSessionByID(_ context.Context, id uuid.UUID) (*model.CashierSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.loadLocked(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubCashierRepo) ListSessions(_ context.Context, page, limit int) ([]model.CashierSession, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.CashierSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubCashierRepo) FindSessionForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.CashierSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.loadLocked(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubCashierRepo) CreateMovementTx(_ *gorm.DB, m *model.CashMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movements[m.SessionID] = append(r.movements[m.SessionID], *m)
	return nil
}

func (r *stubCashierRepo) UpdateSessionTx(_ *gorm.DB, s *model.CashierSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *s
	clone.Movements = nil
	r.sessions[s.ID] = &clone
	return nil
}

func (r *stubCashierRepo) DB() *gorm.DB { return nil }

var _ repository.CashierRepository = (*stubCashierRepo)(nil)

// ── CommissionRateRepository ──────────────────────────────────────────────────

type stubRateRepo struct {
	rates []*model.CommissionRate
}

func (r *stubRateRepo) Create(_ context.Context, rate *model.CommissionRate) error {
	if rate.ID == uuid.Nil {
		rate.ID = uuid.New()
	}
	r.rates = append(r.rates, rate)
	return nil
}

// FindForService mirrors the SQL resolution order: the exact pair beats
// the service default.
func (r *stubRateRepo) FindForService(_ context.Context, serviceID, professionalID uuid.UUID) (*model.CommissionRate, error) {
	var fallback *model.CommissionRate
	for _, rate := range r.rates {
		if rate.ServiceID != serviceID {
			continue
		}
		if rate.ProfessionalID != nil && *rate.ProfessionalID == professionalID {
			return rate, nil
		}
		if rate.ProfessionalID == nil {
			fallback = rate
		}
	}
	if fallback == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return fallback, nil
}

func (r *stubRateRepo) ListByService(_ context.Context, serviceID uuid.UUID) ([]model.CommissionRate, error) {
	var out []model.CommissionRate
	for _, rate := range r.rates {
		if rate.ServiceID == serviceID {
			out = append(out, *rate)
		}
	}
	return out, nil
}

func (r *stubRateRepo) Update(_ context.Context, _ *model.CommissionRate) error { return nil }

func (r *stubRateRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, rate := range r.rates {
		if rate.ID == id {
			r.rates = append(r.rates[:i], r.rates[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.CommissionRateRepository = (*stubRateRepo)(nil)

// ── ProfessionalRepository ────────────────────────────────────────────────────

type stubProfessionalRepo struct {
	byID       map[uuid.UUID]*model.Professional
	byUsername map[string]*model.Professional
}

func newStubProfessionalRepo() *stubProfessionalRepo {
	return &stubProfessionalRepo{
		byID:       make(map[uuid.UUID]*model.Professional),
		byUsername: make(map[string]*model.Professional),
	}
}

func (r *stubProfessionalRepo) Create(_ context.Context, p *model.Professional) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.byID[p.ID] = p
	r.byUsername[p.Username] = p
	return nil
}

func (r *stubProfessionalRepo) FindByUsername(_ context.Context, username string) (*model.Professional, error) {
	p, ok := r.byUsername[username]
	if !ok || !p.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProfessionalRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Professional, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProfessionalRepo) List(_ context.Context, includeInactive bool) ([]model.Professional, error) {
	var out []model.Professional
	for _, p := range r.byID {
		if p.Active || includeInactive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProfessionalRepo) Update(_ context.Context, p *model.Professional) error {
	r.byID[p.ID] = p
	r.byUsername[p.Username] = p
	return nil
}

func (r *stubProfessionalRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = false
	return nil
}

func (r *stubProfessionalRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	p, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = true
	return nil
}

var _ repository.ProfessionalRepository = (*stubProfessionalRepo)(nil)

// ── CatalogRepository ─────────────────────────────────────────────────────────

type stubCatalogRepo struct {
	services map[uuid.UUID]*model.SalonService
	products map[uuid.UUID]*model.Product
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{
		services: make(map[uuid.UUID]*model.SalonService),
		products: make(map[uuid.UUID]*model.Product),
	}
}

func (r *stubCatalogRepo) CreateService(_ context.Context, s *model.SalonService) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.services[s.ID] = s
	return nil
}

func (r *stubCatalogRepo) FindServiceByID(_ context.Context, id uuid.UUID) (*model.SalonService, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubCatalogRepo) ListServices(_ context.Context) ([]model.SalonService, error) {
	var out []model.SalonService
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubCatalogRepo) UpdateService(_ context.Context, s *model.SalonService) error {
	r.services[s.ID] = s
	return nil
}

func (r *stubCatalogRepo) DeactivateService(_ context.Context, id uuid.UUID) error {
	s, ok := r.services[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Active = false
	return nil
}

func (r *stubCatalogRepo) CreateProduct(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubCatalogRepo) FindProductByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubCatalogRepo) ListProducts(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubCatalogRepo) UpdateProduct(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubCatalogRepo) DeactivateProduct(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = false
	return nil
}

var _ repository.CatalogRepository = (*stubCatalogRepo)(nil)

// ── ClientRepository ──────────────────────────────────────────────────────────

type stubClientRepo struct {
	clients map[uuid.UUID]*model.Client
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[uuid.UUID]*model.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClientRepo) List(_ context.Context, _ string) ([]model.Client, error) {
	var out []model.Client
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClientRepo) Update(_ context.Context, c *model.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c, ok := r.clients[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Active = false
	return nil
}

func (r *stubClientRepo) AddCredit(_ context.Context, id uuid.UUID, amount decimal.Decimal) error {
	c, ok := r.clients[id]
	if !ok {
		return errors.New("not found")
	}
	c.CreditBalance = c.CreditBalance.Add(amount)
	return nil
}

var _ repository.ClientRepository = (*stubClientRepo)(nil)
