package service

import (
	"context"

	"goodquestions/internal/models"
	"goodquestions/internal/repository"
	"goodquestions/internal/validation"

	"github.com/google/uuid"
)

// InviteService handles invite issuance and the accept/onboarding flow.
type InviteService struct {
	inviteRepo repository.InviteRepository
	connRepo   repository.ConnectionRepository
}

// AcceptInviteInput is the input for accepting an invite.
type AcceptInviteInput struct {
	UserID uint
	Token  string
	Answer string
}

// NewInviteService returns a new InviteService.
func NewInviteService(inviteRepo repository.InviteRepository, connRepo repository.ConnectionRepository) *InviteService {
	return &InviteService{inviteRepo: inviteRepo, connRepo: connRepo}
}

// Issue creates a fresh single-use invite token for the inviter.
func (s *InviteService) Issue(ctx context.Context, inviterID uint) (*models.Invite, error) {
	invite := &models.Invite{
		Token:     uuid.NewString(),
		InviterID: inviterID,
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, err
	}
	return invite, nil
}

// List returns the invites issued by the inviter, newest first.
func (s *InviteService) List(ctx context.Context, inviterID uint) ([]models.Invite, error) {
	return s.inviteRepo.ListByInviter(ctx, inviterID)
}

// Accept claims the invite for the caller and stores their onboarding
// answer. The accepting user may resubmit to revise the answer; anyone
// else hitting a used token gets a conflict.
func (s *InviteService) Accept(ctx context.Context, in AcceptInviteInput) error {
	if in.Token == "" {
		return models.NewValidationError(models.CodeMissingToken, "Invite token is required")
	}
	if err := validation.ValidateOnboardingAnswer(in.Answer); err != nil {
		return models.NewValidationError(models.CodeAnswerMin10, err.Error())
	}

	invite, err := s.inviteRepo.GetByToken(ctx, in.Token)
	if err != nil {
		return err
	}

	if invite.Accepted() {
		if invite.AcceptedByUserID == nil || *invite.AcceptedByUserID != in.UserID {
			return models.NewConflictError(models.CodeInviteAlreadyUsed, "This invite has already been used")
		}
	} else {
		outcome, err := s.inviteRepo.MarkAccepted(ctx, in.Token, in.UserID)
		if err != nil {
			return err
		}
		if outcome == repository.AlreadyExists {
			// Lost the race to another accept.
			claimed, err := s.inviteRepo.GetByToken(ctx, in.Token)
			if err != nil {
				return err
			}
			if claimed.AcceptedByUserID == nil || *claimed.AcceptedByUserID != in.UserID {
				return models.NewConflictError(models.CodeInviteAlreadyUsed, "This invite has already been used")
			}
		}
	}

	if err := s.connectBothWays(ctx, invite.InviterID, in.UserID); err != nil {
		return err
	}

	return s.inviteRepo.UpsertOnboardingAnswer(ctx, &models.OnboardingAnswer{
		UserID:    in.UserID,
		PromptKey: models.OnboardingPromptKey,
		Text:      in.Answer,
	})
}

// connectBothWays links inviter and invitee as mutual first-degree
// connections. Existing edges are left in place.
func (s *InviteService) connectBothWays(ctx context.Context, inviterID, inviteeID uint) error {
	if inviterID == inviteeID {
		return nil
	}
	if _, err := s.connRepo.CreateIfAbsent(ctx, &models.Connection{UserID: inviterID, PeerID: inviteeID}); err != nil {
		return err
	}
	if _, err := s.connRepo.CreateIfAbsent(ctx, &models.Connection{UserID: inviteeID, PeerID: inviterID}); err != nil {
		return err
	}
	return nil
}
