package worker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"belezapos/internal/infra"
	"belezapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubReceiptRepo struct {
	receipts map[uuid.UUID]*model.Receipt
}

func newStubReceiptRepo() *stubReceiptRepo {
	return &stubReceiptRepo{receipts: make(map[uuid.UUID]*model.Receipt)}
}

func (r *stubReceiptRepo) Create(_ context.Context, rec *model.Receipt) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.receipts[rec.ID] = rec
	return nil
}

func (r *stubReceiptRepo) FindBySettlementID(_ context.Context, settlementID uuid.UUID) (*model.Receipt, error) {
	for _, rec := range r.receipts {
		if rec.SettlementID == settlementID {
			return rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubReceiptRepo) Update(_ context.Context, rec *model.Receipt) error {
	r.receipts[rec.ID] = rec
	return nil
}

func (r *stubReceiptRepo) ListPendingRetries(_ context.Context, now time.Time, limit int) ([]model.Receipt, error) {
	var out []model.Receipt
	for _, rec := range r.receipts {
		if rec.Status == "pending" && rec.NextRetryAt != nil && !rec.NextRetryAt.After(now) {
			out = append(out, *rec)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type stubSettlementFinder struct {
	settlement *model.Settlement
}

func (r *stubSettlementFinder) CreateTx(_ *gorm.DB, _ *model.Settlement) error { return nil }
func (r *stubSettlementFinder) FindByTicketID(_ context.Context, _ uuid.UUID) (*model.Settlement, error) {
	return r.settlement, nil
}
func (r *stubSettlementFinder) FindByID(_ context.Context, id uuid.UUID) (*model.Settlement, error) {
	if r.settlement == nil || r.settlement.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.settlement, nil
}
func (r *stubSettlementFinder) ListByDateRange(_ context.Context, _, _ time.Time) ([]model.Settlement, error) {
	return nil, nil
}

func testSettlement() *model.Settlement {
	return &model.Settlement{
		ID:             uuid.New(),
		TicketID:       uuid.New(),
		OriginalTotal:  decimal.RequireFromString("150.00"),
		FinalAmountDue: decimal.RequireFromString("150.00"),
		AmountTendered: decimal.RequireFromString("150.00"),
		PaymentMethod:  "cash",
		Ticket: &model.Ticket{
			Number: 42,
			Client: &model.Client{Name: "Maria Silva"},
			ServiceLines: []model.TicketServiceLine{
				{Name: "Corte Feminino", UnitPrice: decimal.RequireFromString("150.00"), Quantity: 1},
			},
		},
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestReceiptWorker_Issued(t *testing.T) {
	sidecar := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emit", r.URL.Path)
		var payload infra.NFSePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Maria Silva", payload.ClientName)

		json.NewEncoder(w).Encode(infra.NFSeResponse{Status: "issued", VerificationCode: "ABC123"})
	}))
	defer sidecar.Close()

	settlement := testSettlement()
	receipts := newStubReceiptRepo()
	worker := NewReceiptWorker(
		infra.NewNFSeClient(sidecar.URL),
		receipts,
		&stubSettlementFinder{settlement: settlement},
		nil,
		t.TempDir(),
		"Salão Teste",
		"12345678000190",
	)

	raw, _ := json.Marshal(ReceiptJobPayload{SettlementID: settlement.ID.String()})
	worker.Process(context.Background(), raw)

	rec, err := receipts.FindBySettlementID(context.Background(), settlement.ID)
	require.NoError(t, err)
	assert.Equal(t, "issued", rec.Status)
	require.NotNil(t, rec.VerificationCode)
	assert.Equal(t, "ABC123", *rec.VerificationCode)
	require.NotNil(t, rec.PDFPath)
	assert.FileExists(t, *rec.PDFPath)
}

func TestReceiptWorker_SidecarDown_StaysPendingForCron(t *testing.T) {
	var calls int32
	sidecar := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer sidecar.Close()

	settlement := testSettlement()
	receipts := newStubReceiptRepo()
	worker := NewReceiptWorker(
		infra.NewNFSeClient(sidecar.URL),
		receipts,
		&stubSettlementFinder{settlement: settlement},
		nil,
		t.TempDir(),
		"Salão Teste",
		"12345678000190",
	)

	raw, _ := json.Marshal(ReceiptJobPayload{SettlementID: settlement.ID.String()})
	worker.Process(context.Background(), raw)

	assert.EqualValues(t, 3, atomic.LoadInt32(&calls), "three in-process attempts before handing off")

	rec, err := receipts.FindBySettlementID(context.Background(), settlement.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", rec.Status)
	assert.Equal(t, 1, rec.RetryCount)
	require.NotNil(t, rec.NextRetryAt)
	assert.NotNil(t, rec.LastError)
}

func TestReceiptWorker_Rejected(t *testing.T) {
	sidecar := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(infra.NFSeResponse{Status: "rejected"})
	}))
	defer sidecar.Close()

	settlement := testSettlement()
	receipts := newStubReceiptRepo()
	worker := NewReceiptWorker(
		infra.NewNFSeClient(sidecar.URL),
		receipts,
		&stubSettlementFinder{settlement: settlement},
		nil,
		t.TempDir(),
		"Salão Teste",
		"12345678000190",
	)

	raw, _ := json.Marshal(ReceiptJobPayload{SettlementID: settlement.ID.String()})
	worker.Process(context.Background(), raw)

	rec, err := receipts.FindBySettlementID(context.Background(), settlement.ID)
	require.NoError(t, err)
	assert.Equal(t, "failed", rec.Status)
	assert.Nil(t, rec.VerificationCode)
}

func TestComputeRetryBackoff(t *testing.T) {
	assert.Equal(t, time.Minute, computeRetryBackoff(1))
	assert.Equal(t, 2*time.Minute, computeRetryBackoff(2))
	assert.Equal(t, 16*time.Minute, computeRetryBackoff(5))
	assert.Equal(t, 30*time.Minute, computeRetryBackoff(6), "capped at 30m")
	assert.Equal(t, 30*time.Minute, computeRetryBackoff(9))
}
