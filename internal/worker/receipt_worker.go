package worker

// receipt_worker.go
// Processes receipt issuance jobs from QueueReceipt.
// Calls the NFS-e sidecar, generates the PDF receipt, and optionally
// enqueues an email job. NFS-e calls use exponential backoff (max 3
// attempts); a settlement whose note cannot be issued stays pending for
// the retry cron.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"belezapos/internal/infra"
	"belezapos/internal/model"
	"belezapos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxReceiptRetries is the cap applied by the retry cron before a receipt
// is marked failed and parked in the DLQ.
const MaxReceiptRetries = 10

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	SettlementID string  `json:"settlement_id"`
	ClientEmail  *string `json:"client_email,omitempty"`
}

// ReceiptWorker processes receipt jobs from QueueReceipt.
type ReceiptWorker struct {
	nfseClient     *infra.NFSeClient
	receiptRepo    repository.ReceiptRepository
	settlementRepo repository.SettlementRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	salonName      string
	cnpj           string
}

// NewReceiptWorker wires all dependencies for the receipt worker.
func NewReceiptWorker(
	nfseClient *infra.NFSeClient,
	receiptRepo repository.ReceiptRepository,
	settlementRepo repository.SettlementRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	salonName string,
	cnpj string,
) *ReceiptWorker {
	return &ReceiptWorker{
		nfseClient:     nfseClient,
		receiptRepo:    receiptRepo,
		settlementRepo: settlementRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		salonName:      salonName,
		cnpj:           cnpj,
	}
}

// Process handles a single receipt job:
//  1. Parse ReceiptJobPayload from the job envelope
//  2. Fetch the Settlement (with ticket+lines) from DB
//  3. Create Receipt record with status="pending"
//  4. Call NFS-e sidecar with exponential backoff (max 3 attempts)
//  5. Update Receipt (verification code / status / retry bookkeeping)
//  6. Generate PDF receipt
//  7. Optionally enqueue email job
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	settlementID, err := uuid.Parse(payload.SettlementID)
	if err != nil {
		log.Error().Str("settlement_id", payload.SettlementID).Msg("receipt_worker: invalid settlement_id")
		return
	}

	settlement, err := w.settlementRepo.FindByID(ctx, settlementID)
	if err != nil {
		log.Error().Err(err).Str("settlement_id", payload.SettlementID).Msg("receipt_worker: settlement not found")
		return
	}

	receipt := &model.Receipt{
		SettlementID: settlementID,
		Status:       "pending",
	}
	if err := w.receiptRepo.Create(ctx, receipt); err != nil {
		log.Error().Err(err).Str("settlement_id", payload.SettlementID).Msg("receipt_worker: failed to create receipt")
		return
	}

	// NFS-e call with exponential backoff: immediate, 1s, 2s
	var nfseResp *infra.NFSeResponse
	nfseErr := withRetry(ctx, 3, func(attempt int) error {
		resp, err := w.nfseClient.Emit(ctx, w.buildPayload(settlement))
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("settlement_id", payload.SettlementID).
				Msg("receipt_worker: NFS-e attempt failed, retrying")
			return err
		}
		nfseResp = resp
		return nil
	})

	if nfseErr != nil {
		log.Error().Err(nfseErr).Str("settlement_id", payload.SettlementID).Msg("receipt_worker: NFS-e failed after all retries")
		// Stays pending; the retry cron picks it up.
		errMsg := nfseErr.Error()
		receipt.LastError = &errMsg
		nextRetry := time.Now().Add(computeRetryBackoff(1))
		receipt.NextRetryAt = &nextRetry
		receipt.RetryCount = 1
		_ = w.receiptRepo.Update(ctx, receipt)
	} else if nfseResp != nil && nfseResp.Status == "issued" {
		receipt.Status = "issued"
		code := nfseResp.VerificationCode
		receipt.VerificationCode = &code
		_ = w.receiptRepo.Update(ctx, receipt)
		log.Info().Str("verification_code", code).Str("settlement_id", payload.SettlementID).Msg("receipt_worker: NFS-e issued")
	} else if nfseResp != nil {
		receipt.Status = "failed"
		errMsg := fmt.Sprintf("NFS-e rejeitada: status=%s", nfseResp.Status)
		receipt.LastError = &errMsg
		_ = w.receiptRepo.Update(ctx, receipt)
		log.Warn().Str("status", nfseResp.Status).Str("settlement_id", payload.SettlementID).Msg("receipt_worker: NFS-e rejected")
	}

	pdfPath, pdfErr := infra.GenerateReceiptPDF(settlement, w.salonName, w.pdfStoragePath)
	if pdfErr != nil {
		log.Warn().Err(pdfErr).Str("settlement_id", payload.SettlementID).Msg("receipt_worker: PDF generation failed")
	} else {
		receipt.PDFPath = &pdfPath
		_ = w.receiptRepo.Update(ctx, receipt)
		log.Info().Str("pdf", pdfPath).Str("settlement_id", payload.SettlementID).Msg("receipt_worker: PDF generated")
	}

	if payload.ClientEmail != nil && *payload.ClientEmail != "" && pdfPath != "" {
		ticketNumber := 0
		if settlement.Ticket != nil {
			ticketNumber = settlement.Ticket.Number
		}
		emailJob := EmailJobPayload{
			ToEmail: *payload.ClientEmail,
			Subject: fmt.Sprintf("Recibo %s — Comanda #%d", w.salonName, ticketNumber),
			Body:    fmt.Sprintf("Segue em anexo o recibo do seu atendimento.\nTotal: R$ %s", settlement.FinalAmountDue.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.ClientEmail).Msg("receipt_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", *payload.ClientEmail).Msg("receipt_worker: email job enqueued")
		}
	}
}

func (w *ReceiptWorker) buildPayload(s *model.Settlement) infra.NFSePayload {
	clientName := ""
	if s.Ticket != nil && s.Ticket.Client != nil {
		clientName = s.Ticket.Client.Name
	}
	return infra.NFSePayload{
		CNPJ:         w.cnpj,
		ClientName:   clientName,
		Description:  "Serviços de beleza e estética",
		Amount:       s.FinalAmountDue.InexactFloat64(),
		SettlementID: s.ID.String(),
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// computeRetryBackoff returns the delay before the next cron retry:
// 1m, 2m, 4m … capped at 30m.
func computeRetryBackoff(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	backoff := time.Duration(1<<uint(retryCount-1)) * time.Minute
	if backoff > 30*time.Minute {
		backoff = 30 * time.Minute
	}
	return backoff
}
