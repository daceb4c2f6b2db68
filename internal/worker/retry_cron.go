package worker

// retry_cron.go
// Background goroutine that periodically re-attempts NFS-e emission for
// receipts stuck in status='pending' with a next_retry_at in the past.
// Uses the Circuit Breaker to avoid hammering a downed sidecar.

import (
	"context"
	"fmt"
	"time"

	"belezapos/internal/infra"
	"belezapos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	ReceiptRepo    repository.ReceiptRepository
	SettlementRepo repository.SettlementRepository
	NFSeClient     *infra.NFSeClient
	CB             *infra.CircuitBreaker
	RDB            *redis.Client
	SalonName      string
	CNPJ           string
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries pending receipts, and re-attempts NFS-e emission through the CB.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed sidecar
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	now := time.Now()
	receipts, err := cfg.ReceiptRepo.ListPendingRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}

	if len(receipts) == 0 {
		return
	}

	log.Info().Int("count", len(receipts)).Msg("retry_cron: processing pending receipts")

	for i := range receipts {
		rec := &receipts[i]

		// Check CB state before each call — it may have tripped mid-batch
		if cfg.CB.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			return
		}

		settlement, err := cfg.SettlementRepo.FindByID(ctx, rec.SettlementID)
		if err != nil {
			log.Error().Err(err).Str("receipt_id", rec.ID.String()).Msg("retry_cron: settlement not found")
			continue
		}

		clientName := ""
		if settlement.Ticket != nil && settlement.Ticket.Client != nil {
			clientName = settlement.Ticket.Client.Name
		}
		payload := infra.NFSePayload{
			CNPJ:         cfg.CNPJ,
			ClientName:   clientName,
			Description:  "Serviços de beleza e estética",
			Amount:       settlement.FinalAmountDue.InexactFloat64(),
			SettlementID: settlement.ID.String(),
		}

		var nfseResp *infra.NFSeResponse
		cbErr := cfg.CB.Execute(func() error {
			resp, err := cfg.NFSeClient.Emit(ctx, payload)
			if err != nil {
				return err
			}
			nfseResp = resp
			return nil
		})

		if cbErr != nil {
			// Failure — increment retry count, schedule next attempt
			rec.RetryCount++
			errMsg := cbErr.Error()
			rec.LastError = &errMsg
			nextRetry := time.Now().Add(computeRetryBackoff(rec.RetryCount))
			rec.NextRetryAt = &nextRetry

			if rec.RetryCount >= MaxReceiptRetries {
				rec.Status = "failed"
				rec.NextRetryAt = nil
				log.Error().
					Str("receipt_id", rec.ID.String()).
					Str("settlement_id", rec.SettlementID.String()).
					Int("retries", rec.RetryCount).
					Msg("retry_cron: max retries exceeded, moving to failed/DLQ")

				// Send to DLQ for manual inspection
				dlqPayload := fmt.Sprintf(`{"settlement_id":"%s","receipt_id":"%s"}`, rec.SettlementID, rec.ID)
				SendToDLQ(ctx, cfg.RDB, QueueReceipt, "receipt", []byte(dlqPayload),
					fmt.Sprintf("max retries (%d) exceeded: %s", MaxReceiptRetries, errMsg),
					rec.RetryCount)
			} else {
				log.Warn().
					Str("receipt_id", rec.ID.String()).
					Int("retry_count", rec.RetryCount).
					Time("next_retry_at", *rec.NextRetryAt).
					Msg("retry_cron: NFS-e retry failed, scheduled next attempt")
			}

			_ = cfg.ReceiptRepo.Update(ctx, rec)
			continue
		}

		// Success path
		if nfseResp != nil && nfseResp.Status == "issued" {
			rec.Status = "issued"
			code := nfseResp.VerificationCode
			rec.VerificationCode = &code
			rec.NextRetryAt = nil
			rec.LastError = nil
			_ = cfg.ReceiptRepo.Update(ctx, rec)

			log.Info().
				Str("verification_code", code).
				Str("receipt_id", rec.ID.String()).
				Int("total_retries", rec.RetryCount).
				Msg("retry_cron: NFS-e issued after retry")
		} else if nfseResp != nil {
			rec.Status = "failed"
			errMsg := fmt.Sprintf("NFS-e rejeitada (retry): status=%s", nfseResp.Status)
			rec.LastError = &errMsg
			rec.NextRetryAt = nil
			_ = cfg.ReceiptRepo.Update(ctx, rec)
			log.Warn().
				Str("status", nfseResp.Status).
				Str("receipt_id", rec.ID.String()).
				Msg("retry_cron: NFS-e rejected on retry")
		}
	}
}
