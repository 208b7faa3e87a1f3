package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
	"github.com/vietanh2810/prompt-rewards-api/internal/metrics"
	"github.com/vietanh2810/prompt-rewards-api/internal/repository"
)

const (
	SubmissionPageSize   = 20
	LogTypePromptRewards = "Prompt Rewards"
)

var (
	ErrSubmissionNotFound  = repository.ErrSubmissionNotFound
	ErrValidation          = domain.ErrValidation
	ErrNotPending          = domain.ErrNotPending
	ErrDistributionFailure = domain.ErrDistributionFailure
)

// Transactor runs fn in one unit of work. Repositories called with the ctx passed
// to fn join it.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission domain.Submission) (domain.Submission, error)
	FindByID(ctx context.Context, id uint) (domain.Submission, error)
	FindForReview(ctx context.Context, id uint) (domain.Submission, error)
	UpdateReviewed(ctx context.Context, submission domain.Submission) (domain.Submission, error)
	List(ctx context.Context, status domain.SubmissionStatus, limit, offset int) ([]domain.Submission, error)
	CreateCharacterGrants(ctx context.Context, submissionID uint, grants []domain.SubmissionCharacterGrant) ([]domain.SubmissionCharacterGrant, error)
	DeleteCharacterGrants(ctx context.Context, submissionID uint) error
}

type SubmitterRepository interface {
	IncrementSubmissionCount(ctx context.Context, userID uint) (int, error)
}

type Distributor interface {
	CheckRolls(bag domain.AssetBag) error
	Distribute(ctx context.Context, bag domain.AssetBag, grant GrantContext) (domain.AssetBag, error)
}

type Notifier interface {
	Notify(ctx context.Context, event domain.NotificationEvent, recipientID uint, payload map[string]interface{}) error
}

type SubmissionService struct {
	tx          Transactor
	submissions SubmissionRepository
	catalog     CatalogRepository
	submitters  SubmitterRepository
	assets      AssetRepository
	resolver    *RewardResolver
	distributor Distributor
	notifier    Notifier
}

func NewSubmissionService(
	tx Transactor,
	submissions SubmissionRepository,
	catalog CatalogRepository,
	submitters SubmitterRepository,
	assets AssetRepository,
	distributor Distributor,
	notifier Notifier,
) *SubmissionService {
	return &SubmissionService{
		tx:          tx,
		submissions: submissions,
		catalog:     catalog,
		submitters:  submitters,
		assets:      assets,
		resolver:    NewRewardResolver(catalog),
		distributor: distributor,
		notifier:    notifier,
	}
}

type characterBag struct {
	character domain.Character
	bag       domain.AssetBag
}

func (s *SubmissionService) CreateSubmission(ctx context.Context, user domain.User, input domain.SubmissionInput) (domain.Submission, error) {
	var created domain.Submission

	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		prompt, err := s.catalog.FindActivePrompt(ctx, input.PromptID)
		if err != nil {
			if errors.Is(err, ErrPromptNotFound) {
				return domain.NewValidationError(domain.ErrInvalidPrompt, "prompt #%d is not open for submissions", input.PromptID)
			}
			return fmt.Errorf("s.catalog.FindActivePrompt -> %w", err)
		}

		characters, err := s.resolveCharacters(ctx, input.CharacterSlugs)
		if err != nil {
			return err
		}

		userBag, err := s.resolver.ResolveUserRewards(ctx, prompt.Rewards, input.Rewards, false)
		if err != nil {
			return fmt.Errorf("s.resolver.ResolveUserRewards -> %w", err)
		}
		if err := s.distributor.CheckRolls(userBag); err != nil {
			return fmt.Errorf("s.distributor.CheckRolls -> %w", err)
		}

		bags, err := s.resolveCharacterBags(ctx, characters, input.CharacterCurrencies)
		if err != nil {
			return err
		}

		created, err = s.submissions.Create(ctx, domain.Submission{
			PromptID: prompt.ID,
			UserID:   user.ID,
			URL:      input.URL,
			Comments: input.Comments,
			Status:   domain.SubmissionPending,
			Data:     userBag.Snapshot(),
		})
		if err != nil {
			return fmt.Errorf("s.submissions.Create -> %w", err)
		}

		grants := make([]domain.SubmissionCharacterGrant, len(bags))
		for i, cb := range bags {
			grants[i] = domain.SubmissionCharacterGrant{CharacterID: cb.character.ID, Data: cb.bag.Snapshot()}
		}
		created.Characters, err = s.submissions.CreateCharacterGrants(ctx, created.ID, grants)
		if err != nil {
			return fmt.Errorf("s.submissions.CreateCharacterGrants -> %w", err)
		}

		return nil
	})
	s.record("create", err)
	if err != nil {
		return domain.Submission{}, err
	}

	zap.L().Info("submission created",
		zap.Uint("submission_id", created.ID),
		zap.Uint("user_id", user.ID),
		zap.Uint("prompt_id", created.PromptID),
		zap.Int("characters", len(created.Characters)),
	)

	return created, nil
}

func (s *SubmissionService) ApproveSubmission(ctx context.Context, staff domain.User, input domain.ReviewInput) (domain.Submission, error) {
	var approved domain.Submission

	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		submission, err := s.lockPending(ctx, input.SubmissionID)
		if err != nil {
			return err
		}

		characters, err := s.resolveCharacters(ctx, input.CharacterSlugs)
		if err != nil {
			return err
		}

		prompt, err := s.catalog.FindPrompt(ctx, submission.PromptID)
		if err != nil {
			if errors.Is(err, ErrPromptNotFound) {
				return domain.NewValidationError(domain.ErrInvalidPrompt, "prompt #%d no longer exists", submission.PromptID)
			}
			return fmt.Errorf("s.catalog.FindPrompt -> %w", err)
		}

		userBag, err := s.resolver.ResolveUserRewards(ctx, prompt.Rewards, input.Rewards, true)
		if err != nil {
			return fmt.Errorf("s.resolver.ResolveUserRewards -> %w", err)
		}
		if err := s.distributor.CheckRolls(userBag); err != nil {
			return fmt.Errorf("s.distributor.CheckRolls -> %w", err)
		}

		bags, err := s.resolveCharacterBags(ctx, characters, input.CharacterCurrencies)
		if err != nil {
			return err
		}

		grant := GrantContext{
			ActorID:       staff.ID,
			Owner:         domain.UserOwner(submission.UserID),
			LogType:       LogTypePromptRewards,
			Data:          fmt.Sprintf("Received rewards for submission #%d", submission.ID),
			CorrelationID: uuid.NewString(),
		}

		granted, err := s.distributor.Distribute(ctx, userBag, grant)
		if err != nil {
			return fmt.Errorf("s.distributor.Distribute -> %w", err)
		}

		if err := s.submissions.DeleteCharacterGrants(ctx, submission.ID); err != nil {
			return fmt.Errorf("s.submissions.DeleteCharacterGrants -> %w", err)
		}

		grants := make([]domain.SubmissionCharacterGrant, 0, len(bags))
		for _, cb := range bags {
			grant.Owner = domain.CharacterOwner(cb.character.ID)

			distributed, err := s.distributor.Distribute(ctx, cb.bag, grant)
			if err != nil {
				return fmt.Errorf("s.distributor.Distribute -> %w", err)
			}
			grants = append(grants, domain.SubmissionCharacterGrant{CharacterID: cb.character.ID, Data: distributed.Snapshot()})
		}

		created, err := s.submissions.CreateCharacterGrants(ctx, submission.ID, grants)
		if err != nil {
			return fmt.Errorf("s.submissions.CreateCharacterGrants -> %w", err)
		}

		if _, err := s.submitters.IncrementSubmissionCount(ctx, submission.UserID); err != nil {
			return fmt.Errorf("s.submitters.IncrementSubmissionCount -> %w", err)
		}

		if err := submission.Approve(staff.ID, input.StaffComments, granted.Snapshot()); err != nil {
			return err
		}
		approved, err = s.submissions.UpdateReviewed(ctx, submission)
		if err != nil {
			return notPending(err, "s.submissions.UpdateReviewed")
		}
		approved.Characters = created

		return nil
	})
	s.record("approve", err)
	if err != nil {
		return domain.Submission{}, err
	}

	for _, entry := range approved.Data {
		metrics.AssetsGranted.WithLabelValues(string(entry.Kind), string(domain.OwnerUser)).Add(float64(entry.Quantity))
	}
	for _, g := range approved.Characters {
		for _, entry := range g.Data {
			metrics.AssetsGranted.WithLabelValues(string(entry.Kind), string(domain.OwnerCharacter)).Add(float64(entry.Quantity))
		}
	}

	zap.L().Info("submission approved",
		zap.Uint("submission_id", approved.ID),
		zap.Uint("staff_id", staff.ID),
		zap.Int("characters", len(approved.Characters)),
	)
	s.notify(ctx, domain.NotificationSubmissionApproved, staff, approved)

	return approved, nil
}

func (s *SubmissionService) RejectSubmission(ctx context.Context, staff domain.User, input domain.ReviewInput) (domain.Submission, error) {
	var rejected domain.Submission

	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		submission, err := s.lockPending(ctx, input.SubmissionID)
		if err != nil {
			return err
		}

		if err := submission.Reject(staff.ID, input.StaffComments); err != nil {
			return err
		}
		if _, err := s.submissions.UpdateReviewed(ctx, submission); err != nil {
			return notPending(err, "s.submissions.UpdateReviewed")
		}

		// The locked row comes without its character grants.
		rejected, err = s.submissions.FindByID(ctx, submission.ID)
		if err != nil {
			return fmt.Errorf("s.submissions.FindByID -> %w", err)
		}

		return nil
	})
	s.record("reject", err)
	if err != nil {
		return domain.Submission{}, err
	}

	zap.L().Info("submission rejected",
		zap.Uint("submission_id", rejected.ID),
		zap.Uint("staff_id", staff.ID),
	)
	s.notify(ctx, domain.NotificationSubmissionRejected, staff, rejected)

	return rejected, nil
}

func (s *SubmissionService) GetSubmission(ctx context.Context, id uint) (domain.Submission, error) {
	submission, err := s.submissions.FindByID(ctx, id)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.submissions.FindByID -> %w", err)
	}

	return submission, nil
}

// ListSubmissions returns one page of the queue. An empty status lists every submission.
func (s *SubmissionService) ListSubmissions(ctx context.Context, status domain.SubmissionStatus, page int) ([]domain.Submission, error) {
	if page < 1 {
		page = 1
	}

	submissions, err := s.submissions.List(ctx, status, SubmissionPageSize, (page-1)*SubmissionPageSize)
	if err != nil {
		return nil, fmt.Errorf("s.submissions.List -> %w", err)
	}

	return submissions, nil
}

func (s *SubmissionService) GetOwnedAssets(ctx context.Context, owner domain.Owner) ([]domain.OwnedAsset, error) {
	owned, err := s.assets.Holdings(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("s.assets.Holdings -> %w", err)
	}

	return owned, nil
}

func (s *SubmissionService) lockPending(ctx context.Context, id uint) (domain.Submission, error) {
	submission, err := s.submissions.FindForReview(ctx, id)
	if err != nil {
		return domain.Submission{}, notPending(err, "s.submissions.FindForReview")
	}
	if !submission.IsPending() {
		return domain.Submission{}, fmt.Errorf("%w: submission #%d is %s", domain.ErrNotPending, id, submission.Status)
	}

	return submission, nil
}

// notPending folds lost review races into ErrNotPending.
func notPending(err error, call string) error {
	if repository.IsContended(err) {
		return fmt.Errorf("%s -> %w: %v", call, domain.ErrNotPending, err)
	}
	return fmt.Errorf("%s -> %w", call, err)
}

// resolveCharacters returns the visible characters for slugs, in slug order.
func (s *SubmissionService) resolveCharacters(ctx context.Context, slugs []string) ([]domain.Character, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	found, err := s.catalog.FindVisibleCharactersBySlug(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("s.catalog.FindVisibleCharactersBySlug -> %w", err)
	}
	if len(found) != len(slugs) {
		return nil, domain.NewValidationError(domain.ErrUnknownCharacter, "resolved %d of %d", len(found), len(slugs))
	}

	bySlug := make(map[string]domain.Character, len(found))
	for _, c := range found {
		bySlug[c.Slug] = c
	}

	characters := make([]domain.Character, 0, len(slugs))
	for _, slug := range slugs {
		c, ok := bySlug[slug]
		if !ok {
			return nil, domain.NewValidationError(domain.ErrUnknownCharacter, "%q", slug)
		}
		characters = append(characters, c)
	}

	return characters, nil
}

func (s *SubmissionService) resolveCharacterBags(ctx context.Context, characters []domain.Character, allocations domain.CharacterAllocations) ([]characterBag, error) {
	index, err := s.resolver.CurrencyIndex(ctx, allocations)
	if err != nil {
		return nil, fmt.Errorf("s.resolver.CurrencyIndex -> %w", err)
	}

	bags := make([]characterBag, len(characters))
	for i, c := range characters {
		bag, err := ResolveCharacterRewards(c.ID, allocations, index)
		if err != nil {
			return nil, fmt.Errorf("character %q -> %w", c.Slug, err)
		}
		bags[i] = characterBag{character: c, bag: bag}
	}

	return bags, nil
}

// notify runs after commit. A failed notification never undoes the transition.
func (s *SubmissionService) notify(ctx context.Context, event domain.NotificationEvent, staff domain.User, submission domain.Submission) {
	err := s.notifier.Notify(ctx, event, submission.UserID, map[string]interface{}{
		"staff_name":    staff.Name,
		"staff_url":     staff.URL(),
		"submission_id": submission.ID,
	})
	if err != nil {
		zap.L().Error("failed to notify submitter",
			zap.String("event", string(event)),
			zap.Uint("submission_id", submission.ID),
			zap.Error(err),
		)
	}
}

func (s *SubmissionService) record(action string, err error) {
	outcome := metrics.OutcomeOK

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		outcome = metrics.OutcomeInvalid
		zap.L().Warn("submission rejected by validation", zap.String("action", action), zap.Error(err))
	case errors.Is(err, domain.ErrNotPending):
		outcome = metrics.OutcomeNotPending
		zap.L().Warn("submission is not pending", zap.String("action", action), zap.Error(err))
	default:
		outcome = metrics.OutcomeFailed
		zap.L().Error("submission workflow failed", zap.String("action", action), zap.Error(err))
	}

	metrics.SubmissionTransitions.WithLabelValues(action, outcome).Inc()
}
