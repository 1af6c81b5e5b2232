package service

import (
	"context"

	"goodquestions/internal/models"
	"goodquestions/internal/repository"
)

// ConnectionService manages the directed first-degree connection graph.
type ConnectionService struct {
	connRepo repository.ConnectionRepository
	userRepo repository.UserRepository
}

// NewConnectionService returns a new ConnectionService.
func NewConnectionService(connRepo repository.ConnectionRepository, userRepo repository.UserRepository) *ConnectionService {
	return &ConnectionService{connRepo: connRepo, userRepo: userRepo}
}

// Add creates the edge (userID, peerID), letting peerID answer userID's
// daily questions.
func (s *ConnectionService) Add(ctx context.Context, userID, peerID uint) (*models.Connection, error) {
	if userID == peerID {
		return nil, models.NewValidationError(models.CodeSelfConnection, "Cannot connect to yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, peerID); err != nil {
		return nil, err
	}

	conn := &models.Connection{UserID: userID, PeerID: peerID}
	outcome, err := s.connRepo.CreateIfAbsent(ctx, conn)
	if err != nil {
		return nil, err
	}
	if outcome == repository.AlreadyExists {
		return nil, models.NewConflictError(models.CodeAlreadyConnected, "Already connected to this user")
	}
	return conn, nil
}

// Remove deletes the edge (userID, peerID).
func (s *ConnectionService) Remove(ctx context.Context, userID, peerID uint) error {
	return s.connRepo.Delete(ctx, userID, peerID)
}

// List returns the caller's outgoing connections with peer summaries.
func (s *ConnectionService) List(ctx context.Context, userID uint) ([]models.Connection, error) {
	return s.connRepo.ListByUser(ctx, userID)
}
