package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
)

const defaultHistoryLimit = 50

// historyService writes and reads the edit-history log. It is a concern of
// its own: the ledgers call Record and discard the error, so a history
// failure can never fail the mutation it describes.
type historyService struct {
	BaseService
	historyRepo portsrepo.HistoryRepository
}

// NewHistoryService creates a new edit-history service.
func NewHistoryService(hr portsrepo.HistoryRepository) portssvc.HistorySvcFacade {
	return &historyService{historyRepo: hr}
}

var _ portssvc.HistorySvcFacade = (*historyService)(nil)

// Record writes one history entry attributed to the actor.
func (s *historyService) Record(ctx context.Context, actor *domain.User, collection, recordID string, action domain.HistoryAction, detail string) error {
	entry := domain.EditHistory{
		HistoryID:  uuid.NewString(),
		Collection: collection,
		RecordID:   recordID,
		ActorID:    actor.UserID,
		FamilyID:   actor.FamilyID,
		Action:     action,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}
	if err := s.historyRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record history entry",
			slog.String("collection", collection), slog.String("record_id", recordID))
		return fmt.Errorf("failed to record history entry: %w", err)
	}
	return nil
}

// ListForRecord returns the history of one record, newest first.
func (s *historyService) ListForRecord(ctx context.Context, actor *domain.User, collection, recordID string) ([]domain.EditHistory, error) {
	entries, err := s.historyRepo.ListByRecord(ctx, collection, recordID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list history entries", slog.String("record_id", recordID))
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}
	return filterVisibleHistory(actor, entries), nil
}

// ListRecent returns the latest entries visible to the actor.
func (s *historyService) ListRecent(ctx context.Context, actor *domain.User, limit int) ([]domain.EditHistory, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	entries, err := s.historyRepo.ListByScope(ctx, scopeFor(actor), limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent history", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to list recent history: %w", err)
	}
	if entries == nil {
		entries = []domain.EditHistory{}
	}
	return entries, nil
}

// filterVisibleHistory drops entries outside the actor's visibility. The
// per-record query is not scope-aware so the filter happens here.
func filterVisibleHistory(actor *domain.User, entries []domain.EditHistory) []domain.EditHistory {
	out := make([]domain.EditHistory, 0, len(entries))
	for _, e := range entries {
		if recordVisibleTo(actor, e.ActorID, e.FamilyID) {
			out = append(out, e)
		}
	}
	return out
}
