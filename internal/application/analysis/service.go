package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/andresmx/sentimsg/internal/application"
	"github.com/andresmx/sentimsg/internal/domain/dictionaries"
	"github.com/andresmx/sentimsg/internal/domain/messages"
)

// Service implements the ingest and report use-cases. Safe for concurrent
// use; the repository is the only shared state.
type Service struct {
	Repo    messages.Repository
	Archive messages.ArchiveStore // optional, nil disables document archiving
	Clock   application.Clock
	Log     *slog.Logger
}

//
// ==== USE CASES ====
//

// IngestCommand carries one parsed ingest document: the per-run dictionaries,
// the raw message blobs, and the original document bytes for archiving.
type IngestCommand struct {
	Keywords dictionaries.KeywordSet
	Catalog  dictionaries.Catalog
	Messages []string
	Document []byte
}

type IngestResult struct {
	BatchID     string    `json:"batch_id"`
	ReceivedAt  time.Time `json:"received_at"`
	Ingested    int       `json:"ingested"`
	Skipped     int       `json:"skipped"`
	ArtifactURL string    `json:"artifact_url,omitempty"`
}

// Ingest decodes, classifies and persists every message of one batch.
// Messages that do not fit the grammar are skipped without aborting the
// batch; a storage failure aborts and is surfaced to the caller.
func (s *Service) Ingest(ctx context.Context, cmd IngestCommand) (IngestResult, error) {
	res := IngestResult{
		BatchID:    uuid.New().String(),
		ReceivedAt: s.Clock.Now(),
	}

	for _, raw := range cmd.Messages {
		dec, err := messages.Decode(raw)
		if err != nil {
			res.Skipped++
			s.Log.Debug("message skipped", "batch", res.BatchID, "err", err)
			continue
		}

		company, service := dictionaries.Resolve(dec.Body, cmd.Catalog)
		m := &messages.Message{
			BatchID:   res.BatchID,
			Timestamp: dec.Timestamp,
			User:      dec.User,
			Platform:  dec.Platform,
			Company:   company,
			Service:   service,
			Body:      dec.Body,
			Sentiment: dictionaries.Classify(dec.Body, cmd.Keywords),
		}
		if err := s.Repo.Save(ctx, m); err != nil {
			return res, fmt.Errorf("saving message: %w", err)
		}
		res.Ingested++
	}

	if s.Archive != nil && len(cmd.Document) > 0 {
		key := fmt.Sprintf("batches/%s.xml", res.BatchID)
		url, err := s.Archive.Upload(ctx, key, cmd.Document, "application/xml")
		if err != nil {
			// Archiving is best effort; the records are already stored.
			s.Log.Warn("document archive failed", "batch", res.BatchID, "err", err)
		} else {
			res.ArtifactURL = url
		}
	}

	s.Log.Info("batch ingested",
		"batch", res.BatchID, "ingested", res.Ingested, "skipped", res.Skipped)
	return res, nil
}
