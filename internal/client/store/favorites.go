package store

import (
	"context"
	"fmt"

	"github.com/atinyakov/HoloFavs/internal/models"
	"go.uber.org/zap"
)

// AddFavorite inserts the favorite locally as pending, then asks the
// backend to activate it. An id that is already a favorite (of any type)
// is rejected with ErrFavoriteExists and nothing is sent.
func (s *Store) AddFavorite(ctx context.Context, id int64, name string, kind models.EntityType) error {
	var (
		added  bool
		userID int64
		seq    uint64
	)
	s.apply(func(st State) State {
		userID = st.UserID
		st, added = withFavorite(st, Favorite{ID: id, Name: name, Type: kind, Status: StatusPending})
		if added {
			s.seq++
			seq = s.seq
			s.pending[id] = seq
		}
		return st
	})
	if !added {
		s.log.Warn("favorite already in list", zap.Int64("id", id))
		return fmt.Errorf("favorite %d: %w", id, ErrFavoriteExists)
	}
	if !kind.Valid() {
		s.log.Warn("unknown favorite type, sending no entity reference",
			zap.Int64("id", id), zap.String("type", string(kind)))
	}

	resp, err := s.backend.Activate(ctx, activationRequest(userID, id, kind))
	if err != nil {
		s.log.Error("failed to add favorite", zap.Int64("id", id), zap.Error(err))
		s.apply(func(st State) State {
			if !s.ownsPending(id, seq) {
				return st
			}
			if s.rollback {
				return withoutPending(st, id)
			}
			return settle(st, id, StatusFailed)
		})
		return fmt.Errorf("add favorite %d: %w", id, err)
	}

	s.log.Info("favorite added", zap.Int64("id", id), zap.Any("response", resp))
	s.apply(func(st State) State {
		if !s.ownsPending(id, seq) {
			return st
		}
		return settle(st, id, StatusConfirmed)
	})
	return nil
}

// ownsPending reports whether the pending entry for id still belongs to the
// add tagged seq, and releases it if so. Callers hold s.mu.
func (s *Store) ownsPending(id int64, seq uint64) bool {
	if s.pending[id] != seq {
		return false
	}
	delete(s.pending, id)
	return true
}

// RemoveFavorite drops every favorite with id locally, then asks the
// backend to deactivate it. The request goes out even when nothing local
// matched.
func (s *Store) RemoveFavorite(ctx context.Context, id int64) error {
	var (
		removed    []Favorite
		userID     int64
		pendingSeq uint64
	)
	next := s.apply(func(st State) State {
		userID = st.UserID
		st, removed = withoutFavorite(st, id)
		pendingSeq = s.pending[id]
		delete(s.pending, id)
		return st
	})
	s.log.Debug("favorite removed locally", zap.Int64("id", id), zap.Int("remaining", len(next.Favorites)))

	resp, err := s.backend.Deactivate(ctx, deactivationRequest(userID, id))
	if err != nil {
		s.log.Error("failed to remove favorite", zap.Int64("id", id), zap.Error(err))
		if s.rollback && len(removed) > 0 {
			s.apply(func(st State) State {
				// a restored pending entry goes back to its in-flight add
				if pendingSeq != 0 && !hasFavorite(st.Favorites, id) {
					s.pending[id] = pendingSeq
				}
				return restore(st, removed)
			})
		}
		return fmt.Errorf("remove favorite %d: %w", id, err)
	}

	s.log.Info("favorite removed", zap.Int64("id", id), zap.Any("response", resp))
	return nil
}
