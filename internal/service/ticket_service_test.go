package service_test

import (
	"context"
	"testing"

	"belezapos/internal/dto"
	"belezapos/internal/model"
	"belezapos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ticketFixture struct {
	svc     service.TicketService
	tickets *stubTicketRepo
	catalog *stubCatalogRepo
	clients *stubClientRepo
	client  *model.Client
	corte   *model.SalonService
	shampoo *model.Product
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()
	tickets := newStubTicketRepo()
	catalog := newStubCatalogRepo()
	clients := newStubClientRepo()

	client := &model.Client{Name: "Maria Silva", Active: true}
	require.NoError(t, clients.Create(context.Background(), client))

	corte := &model.SalonService{Name: "Corte Feminino", Price: dec("150.00"), Active: true}
	require.NoError(t, catalog.CreateService(context.Background(), corte))

	shampoo := &model.Product{Name: "Shampoo Profissional", Price: dec("50.00"), Active: true}
	require.NoError(t, catalog.CreateProduct(context.Background(), shampoo))

	return &ticketFixture{
		svc:     service.NewTicketService(tickets, catalog, clients),
		tickets: tickets,
		catalog: catalog,
		clients: clients,
		client:  client,
		corte:   corte,
		shampoo: shampoo,
	}
}

func (f *ticketFixture) open(t *testing.T) *dto.TicketResponse {
	t.Helper()
	resp, err := f.svc.Open(context.Background(), dto.OpenTicketRequest{
		ClientID:       f.client.ID.String(),
		ProfessionalID: uuid.NewString(),
	})
	require.NoError(t, err)
	return resp
}

func TestOpenTicket(t *testing.T) {
	f := newTicketFixture(t)

	first := f.open(t)
	second := f.open(t)

	assert.Equal(t, "open", first.Status)
	assert.True(t, first.GrossTotal.IsZero())
	assert.Empty(t, first.Lines)
	assert.Equal(t, first.Number+1, second.Number, "ticket numbers are sequential")
	assert.NotEmpty(t, first.OpenedAt)
}

func TestOpenTicket_UnknownClient(t *testing.T) {
	f := newTicketFixture(t)

	_, err := f.svc.Open(context.Background(), dto.OpenTicketRequest{
		ClientID:       uuid.NewString(),
		ProfessionalID: uuid.NewString(),
	})
	var nf *service.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestAddServiceLine_SnapshotsPrice(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.open(t)

	resp, err := f.svc.AddServiceLine(context.Background(), uuid.MustParse(ticket.ID), dto.AddServiceLineRequest{
		ServiceID: f.corte.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.True(t, dec("300.00").Equal(resp.GrossTotal))

	// A later catalog price change must not touch the open comanda.
	f.corte.Price = dec("999.00")
	got, err := f.svc.Get(context.Background(), uuid.MustParse(ticket.ID))
	require.NoError(t, err)
	assert.True(t, dec("150.00").Equal(got.Lines[0].UnitPrice))
	assert.True(t, dec("300.00").Equal(got.GrossTotal))
}

func TestAddProductLine_WithSeller(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.open(t)
	seller := uuid.NewString()

	resp, err := f.svc.AddProductLine(context.Background(), uuid.MustParse(ticket.ID), dto.AddProductLineRequest{
		ProductID: f.shampoo.ID.String(),
		Quantity:  1,
		SoldBy:    &seller,
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "product", resp.Lines[0].Kind)
	require.NotNil(t, resp.Lines[0].SoldBy)
	assert.Equal(t, seller, *resp.Lines[0].SoldBy)
	assert.True(t, dec("50.00").Equal(resp.GrossTotal))
}

func TestAddLine_UnknownCatalogEntry(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.open(t)

	_, err := f.svc.AddServiceLine(context.Background(), uuid.MustParse(ticket.ID), dto.AddServiceLineRequest{
		ServiceID: uuid.NewString(),
		Quantity:  1,
	})
	var nf *service.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestRemoveLine_RecomputesGrossTotal(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.open(t)
	ticketID := uuid.MustParse(ticket.ID)

	_, err := f.svc.AddServiceLine(context.Background(), ticketID, dto.AddServiceLineRequest{
		ServiceID: f.corte.ID.String(),
		Quantity:  1,
	})
	require.NoError(t, err)
	withBoth, err := f.svc.AddProductLine(context.Background(), ticketID, dto.AddProductLineRequest{
		ProductID: f.shampoo.ID.String(),
		Quantity:  1,
	})
	require.NoError(t, err)
	require.True(t, dec("200.00").Equal(withBoth.GrossTotal))

	var productLineID string
	for _, l := range withBoth.Lines {
		if l.Kind == "product" {
			productLineID = l.ID
		}
	}
	require.NotEmpty(t, productLineID)

	resp, err := f.svc.RemoveLine(context.Background(), ticketID, uuid.MustParse(productLineID))
	require.NoError(t, err)
	assert.Len(t, resp.Lines, 1)
	assert.True(t, dec("150.00").Equal(resp.GrossTotal))
}

func TestRemoveLine_UnknownLine(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.open(t)

	_, err := f.svc.RemoveLine(context.Background(), uuid.MustParse(ticket.ID), uuid.New())
	var nf *service.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestLineMutation_FinalizedTicketRejected(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.open(t)
	ticketID := uuid.MustParse(ticket.ID)

	_, err := f.tickets.MarkFinalizedTx(nil, ticketID)
	require.NoError(t, err)

	_, err = f.svc.AddServiceLine(context.Background(), ticketID, dto.AddServiceLineRequest{
		ServiceID: f.corte.ID.String(),
		Quantity:  1,
	})
	assert.ErrorIs(t, err, service.ErrAlreadyFinalized)

	_, err = f.svc.RemoveLine(context.Background(), ticketID, uuid.New())
	assert.ErrorIs(t, err, service.ErrAlreadyFinalized)
}
