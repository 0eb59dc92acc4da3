package usecase

import (
	"strconv"
	"time"

	"agripass/internal/domain"
)

// DefaultProjectionRows bounds the display-row projection in batch list
// responses.
const DefaultProjectionRows = 10

type BatchStats struct {
	TotalBatches      int    `json:"totalBatches"`
	Approved          int    `json:"approved"`
	Pending           int    `json:"pending"`
	AvgProcessingTime string `json:"avgProcessingTime"`
}

// BatchRow is the two-bucket display projection of a batch: anything not
// APPROVED shows as pending.
type BatchRow struct {
	BatchID     string `json:"batchId"`
	Crop        string `json:"crop"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
	Date        string `json:"date"`
}

// ProjectBatches reduces a batch list to the aggregate counters and bounded
// display rows the submission screen renders. Pure and deterministic given
// its inputs; now anchors the processing-time average and formatDate
// supplies the locale-formatted date string.
func ProjectBatches(batches []domain.Batch, maxRows int, now time.Time, formatDate func(time.Time) string) (BatchStats, []BatchRow) {
	if maxRows <= 0 {
		maxRows = DefaultProjectionRows
	}
	if formatDate == nil {
		formatDate = func(t time.Time) string { return t.Format("2006-01-02") }
	}

	stats := BatchStats{TotalBatches: len(batches)}
	rows := make([]BatchRow, 0, maxRows)
	for _, batch := range batches {
		switch {
		case batch.Status == domain.BatchStatusApproved:
			stats.Approved++
		case batch.Status.AwaitingInspection():
			stats.Pending++
		}
		if len(rows) < maxRows {
			bucket := "pending"
			if batch.Status == domain.BatchStatusApproved {
				bucket = "approved"
			}
			rows = append(rows, BatchRow{
				BatchID:     batch.BatchNumber,
				Crop:        batch.CropType,
				Destination: batch.DestinationCountry,
				Status:      bucket,
				Date:        formatDate(batch.SubmittedAt),
			})
		}
	}
	stats.AvgProcessingTime = avgProcessingTime(batches, now)
	return stats, rows
}

// avgProcessingTime averages submission-to-now age of still-pending batches
// in whole days, the coarse figure the dashboard card shows.
func avgProcessingTime(batches []domain.Batch, now time.Time) string {
	var total time.Duration
	var count int
	for _, batch := range batches {
		if !batch.Status.AwaitingInspection() || batch.SubmittedAt.IsZero() {
			continue
		}
		total += now.Sub(batch.SubmittedAt)
		count++
	}
	if count == 0 {
		return "0d"
	}
	days := int(total.Hours()) / 24 / count
	if days < 1 {
		return "<1d"
	}
	return strconv.Itoa(days) + "d"
}
