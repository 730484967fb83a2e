package usecases

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/domain/repositories"
	"crowdfund.backend/pkg/logger"
	"crowdfund.backend/pkg/metrics"
	"crowdfund.backend/pkg/utils"
)

// AssetVault moves value between accounts on the ledger's balance book
type AssetVault interface {
	BalanceOf(ctx context.Context, holder, asset common.Address) (*big.Int, error)
	Allowance(ctx context.Context, owner, spender, asset common.Address) (*big.Int, error)
	Deposit(ctx context.Context, holder, asset common.Address, amount *big.Int) error
	Approve(ctx context.Context, owner, spender, asset common.Address, amount *big.Int) error
	Transfer(ctx context.Context, from, to, asset common.Address, amount *big.Int) error
	TransferFrom(ctx context.Context, spender, from, to, asset common.Address, amount *big.Int) error
}

// LedgerParams are the deployment-wide ledger settings
type LedgerParams struct {
	FeeBasisPoints uint32
	FeeRecipient   common.Address
	Owner          common.Address
	// Address holds every escrowed contribution.
	Address common.Address
}

// LedgerUsecase is the funding ledger: campaigns, contributions and payouts
type LedgerUsecase struct {
	campaignRepo     repositories.CampaignRepository
	contributionRepo repositories.ContributionRepository
	eventRepo        repositories.LedgerEventRepository
	vault            AssetVault
	seq              *Sequencer
	clock            Clock
	params           LedgerParams
	metrics          *metrics.Ledger
}

// NewLedgerUsecase creates a new ledger usecase
func NewLedgerUsecase(
	campaignRepo repositories.CampaignRepository,
	contributionRepo repositories.ContributionRepository,
	eventRepo repositories.LedgerEventRepository,
	vault AssetVault,
	seq *Sequencer,
	clock Clock,
	params LedgerParams,
	m *metrics.Ledger,
) *LedgerUsecase {
	if clock == nil {
		clock = SystemClock{}
	}
	return &LedgerUsecase{
		campaignRepo:     campaignRepo,
		contributionRepo: contributionRepo,
		eventRepo:        eventRepo,
		vault:            vault,
		seq:              seq,
		clock:            clock,
		params:           params,
		metrics:          m,
	}
}

// CreateCampaign registers a new campaign. Anyone may create a campaign for any creator.
func (u *LedgerUsecase) CreateCampaign(ctx context.Context, caller common.Address, input *entities.CreateCampaignInput) (*entities.CampaignView, error) {
	var created *entities.Campaign
	err := u.seq.Run(ctx, func(ctx context.Context) error {
		campaign, err := u.newCampaign(input)
		if err != nil {
			return err
		}
		if err := u.campaignRepo.Create(ctx, campaign); err != nil {
			return err
		}
		if err := u.emit(ctx, campaign, entities.LedgerEventCampaignCreated, caller, nil, nil); err != nil {
			return err
		}
		created = campaign
		return nil
	})
	u.record(ctx, "create_campaign", idOf(created), err)
	if err != nil {
		return nil, err
	}
	return u.view(created), nil
}

func (u *LedgerUsecase) newCampaign(input *entities.CreateCampaignInput) (*entities.Campaign, error) {
	if input == nil {
		return nil, domainerrors.BadRequest("campaign input is required")
	}
	creator, err := utils.ParseAddress(input.Creator)
	if err != nil || creator == (common.Address{}) {
		return nil, domainerrors.BadRequest("creator must be a non-zero address")
	}
	if creator == u.params.Address {
		return nil, domainerrors.BadRequest("the ledger account cannot create campaigns for itself")
	}
	goal, err := utils.ParseAmount(input.Goal)
	if err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}
	if goal.Sign() <= 0 {
		return nil, domainerrors.BadRequest("goal must be positive")
	}
	deadline := time.Unix(input.Deadline, 0).UTC()
	if !deadline.After(u.clock.Now()) {
		return nil, domainerrors.BadRequest("deadline must be in the future")
	}
	asset, err := utils.ParseAsset(input.PaymentAsset)
	if err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}
	feeRecipient := u.params.FeeRecipient
	if input.FeeRecipient != "" {
		if feeRecipient, err = utils.ParseAddress(input.FeeRecipient); err != nil {
			return nil, domainerrors.BadRequest(err.Error())
		}
	}
	if feeRecipient == (common.Address{}) || feeRecipient == u.params.Address {
		return nil, domainerrors.BadRequest("fee recipient must be an external non-zero address")
	}

	return &entities.Campaign{
		Creator:           creator,
		CreatorName:       input.CreatorName,
		Title:             input.Title,
		Description:       input.Description,
		Goal:              goal,
		Deadline:          deadline,
		PaymentAsset:      asset,
		FeeRecipient:      feeRecipient,
		FeeBasisPoints:    u.params.FeeBasisPoints,
		MetadataReference: input.MetadataReference,
		TotalRaised:       new(big.Int),
		TotalRefunded:     new(big.Int),
	}, nil
}

// Contribute pulls amount of the campaign's asset from caller into escrow and records it
func (u *LedgerUsecase) Contribute(ctx context.Context, caller common.Address, id uint64, amount *big.Int) (*entities.Contribution, error) {
	var result *entities.Contribution
	err := u.seq.Run(ctx, func(ctx context.Context) error {
		// The vault treats a self transfer as a no-op.
		if caller == u.params.Address {
			return domainerrors.Wrap(domainerrors.ErrForbidden, "the ledger account cannot contribute")
		}
		campaign, err := u.loadCampaign(ctx, id)
		if err != nil {
			return err
		}
		if amount == nil || amount.Sign() <= 0 {
			return domainerrors.BadRequest("amount must be positive")
		}
		if !campaign.IsOpen(u.clock.Now()) {
			return domainerrors.Wrap(domainerrors.ErrDeadlinePassed, "campaign no longer accepts contributions")
		}
		if utils.ExceedsMaxAmount(new(big.Int).Add(campaign.TotalRaised, amount)) {
			return domainerrors.BadRequest("contribution would overflow the campaign total")
		}

		if err := u.pullFunds(ctx, campaign, caller, amount); err != nil {
			return err
		}

		contribution, err := u.contributionRepo.Get(ctx, id, caller)
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			contribution = &entities.Contribution{
				CampaignID:       id,
				Contributor:      caller,
				Amount:           new(big.Int),
				TotalContributed: new(big.Int),
			}
			campaign.DonorCount++
		case err != nil:
			return err
		}
		contribution.Amount.Add(contribution.Amount, amount)
		contribution.TotalContributed.Add(contribution.TotalContributed, amount)
		if err := u.contributionRepo.Save(ctx, contribution); err != nil {
			return err
		}

		campaign.TotalRaised.Add(campaign.TotalRaised, amount)
		if err := u.campaignRepo.Update(ctx, campaign); err != nil {
			return err
		}
		if err := u.emit(ctx, campaign, entities.LedgerEventContributionReceived, caller, amount, nil); err != nil {
			return err
		}
		result = contribution
		return nil
	})
	u.record(ctx, "contribute", id, err, zap.String("amount", amountString(amount)))
	if err == nil {
		u.metrics.AddVolume("contributed", toFloat(amount))
	}
	return result, err
}

func (u *LedgerUsecase) pullFunds(ctx context.Context, campaign *entities.Campaign, from common.Address, amount *big.Int) error {
	if campaign.IsNative() {
		return u.vault.Transfer(ctx, from, u.params.Address, entities.NativeAsset, amount)
	}
	return u.vault.TransferFrom(ctx, u.params.Address, from, u.params.Address, campaign.PaymentAsset, amount)
}

// ClaimFunds pays a funded campaign out to its creator minus the platform fee. Creator only, once.
func (u *LedgerUsecase) ClaimFunds(ctx context.Context, caller common.Address, id uint64) (*entities.Settlement, error) {
	var settlement *entities.Settlement
	err := u.seq.Run(ctx, func(ctx context.Context) error {
		campaign, err := u.loadCampaign(ctx, id)
		if err != nil {
			return err
		}
		now := u.clock.Now()
		if campaign.IsOpen(now) {
			return domainerrors.Wrap(domainerrors.ErrDeadlineNotReached, "campaign is still open")
		}
		if caller != campaign.Creator {
			return domainerrors.Wrap(domainerrors.ErrForbidden, "only the campaign creator can claim funds")
		}
		if campaign.FundsWithdrawn {
			return domainerrors.Wrap(domainerrors.ErrAlreadySettled, "funds already withdrawn")
		}
		if !campaign.GoalReached() {
			return domainerrors.Wrap(domainerrors.ErrGoalNotMet, "campaign did not reach its goal")
		}

		total := new(big.Int).Set(campaign.TotalRaised)
		fee, creatorAmount := SplitFee(total, campaign.FeeBasisPoints)

		// Flags are committed to the record before any value leaves escrow.
		campaign.FundsWithdrawn = true
		campaign.Finalized = true
		campaign.ClaimedAt = null.TimeFrom(now)
		if err := u.campaignRepo.Update(ctx, campaign); err != nil {
			return err
		}

		if fee.Sign() > 0 {
			if err := u.vault.Transfer(ctx, u.params.Address, campaign.FeeRecipient, campaign.PaymentAsset, fee); err != nil {
				return err
			}
		}
		if creatorAmount.Sign() > 0 {
			if err := u.vault.Transfer(ctx, u.params.Address, campaign.Creator, campaign.PaymentAsset, creatorAmount); err != nil {
				return err
			}
		}
		if err := u.emit(ctx, campaign, entities.LedgerEventFundsClaimed, caller, creatorAmount, fee); err != nil {
			return err
		}

		settlement = &entities.Settlement{
			CampaignID:    campaign.ID,
			Creator:       campaign.Creator,
			FeeRecipient:  campaign.FeeRecipient,
			TotalRaised:   total,
			Fee:           fee,
			CreatorAmount: creatorAmount,
		}
		return nil
	})
	u.record(ctx, "claim_funds", id, err)
	if err == nil {
		u.metrics.AddVolume("claimed", toFloat(settlement.CreatorAmount))
		u.metrics.AddVolume("fees", toFloat(settlement.Fee))
	}
	return settlement, err
}

// Refund returns caller's whole recorded contribution to a failed campaign
func (u *LedgerUsecase) Refund(ctx context.Context, caller common.Address, id uint64) (*big.Int, error) {
	var refunded *big.Int
	err := u.seq.Run(ctx, func(ctx context.Context) error {
		campaign, err := u.loadCampaign(ctx, id)
		if err != nil {
			return err
		}
		now := u.clock.Now()
		if campaign.IsOpen(now) {
			return domainerrors.Wrap(domainerrors.ErrDeadlineNotReached, "campaign is still open")
		}
		if campaign.GoalReached() {
			return domainerrors.Wrap(domainerrors.ErrGoalMet, "campaign reached its goal, no refunds")
		}

		contribution, err := u.contributionRepo.Get(ctx, id, caller)
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.Wrap(domainerrors.ErrAlreadySettled, "caller has no contribution to refund")
		}
		if err != nil {
			return err
		}
		if contribution.Amount.Sign() == 0 {
			return domainerrors.Wrap(domainerrors.ErrAlreadySettled, "contribution already refunded")
		}

		amount := new(big.Int).Set(contribution.Amount)
		contribution.Amount = new(big.Int)
		contribution.RefundedAt = null.TimeFrom(now)
		if err := u.contributionRepo.Save(ctx, contribution); err != nil {
			return err
		}

		campaign.TotalRefunded.Add(campaign.TotalRefunded, amount)
		if campaign.TotalRefunded.Cmp(campaign.TotalRaised) == 0 {
			campaign.Finalized = true
		}
		if err := u.campaignRepo.Update(ctx, campaign); err != nil {
			return err
		}

		if err := u.vault.Transfer(ctx, u.params.Address, caller, campaign.PaymentAsset, amount); err != nil {
			return err
		}
		if err := u.emit(ctx, campaign, entities.LedgerEventRefundIssued, caller, amount, nil); err != nil {
			return err
		}
		refunded = amount
		return nil
	})
	u.record(ctx, "refund", id, err)
	if err == nil {
		u.metrics.AddVolume("refunded", toFloat(refunded))
	}
	return refunded, err
}

// Sweep moves asset the ledger holds beyond what unsettled campaigns are owed. Owner only.
func (u *LedgerUsecase) Sweep(ctx context.Context, caller common.Address, asset, to common.Address) (*big.Int, error) {
	var swept *big.Int
	err := u.seq.Run(ctx, func(ctx context.Context) error {
		if caller != u.params.Owner {
			return domainerrors.Wrap(domainerrors.ErrForbidden, "only the ledger owner can sweep")
		}
		if to == (common.Address{}) || to == u.params.Address {
			return domainerrors.BadRequest("sweep destination must be an external non-zero address")
		}

		surplus, err := u.surplus(ctx, asset)
		if err != nil {
			return err
		}
		if surplus.Sign() <= 0 {
			return domainerrors.BadRequest("nothing to sweep")
		}
		if err := u.vault.Transfer(ctx, u.params.Address, to, asset, surplus); err != nil {
			return err
		}
		if err := u.eventRepo.Create(ctx, &entities.LedgerEvent{
			Type:      entities.LedgerEventFundsSwept,
			Actor:     caller,
			Asset:     asset,
			Amount:    surplus,
			Fee:       new(big.Int),
			CreatedAt: u.clock.Now(),
		}); err != nil {
			return err
		}
		swept = surplus
		return nil
	})
	u.record(ctx, "sweep", 0, err, zap.String("asset", asset.Hex()))
	return swept, err
}

// surplus is the ledger's balance of asset minus every unsettled campaign's outstanding total
func (u *LedgerUsecase) surplus(ctx context.Context, asset common.Address) (*big.Int, error) {
	balance, err := u.vault.BalanceOf(ctx, u.params.Address, asset)
	if err != nil {
		return nil, err
	}
	campaigns, err := u.campaignRepo.ListUnsettledByAsset(ctx, asset)
	if err != nil {
		return nil, err
	}
	surplus := new(big.Int).Set(balance)
	for _, c := range campaigns {
		surplus.Sub(surplus, c.Outstanding())
	}
	return surplus, nil
}

// AnnounceClosed writes one CAMPAIGN_CLOSED event for each campaign whose deadline has passed.
// It never moves value or changes settlement flags.
func (u *LedgerUsecase) AnnounceClosed(ctx context.Context, limit int) (int, error) {
	announced := 0
	err := u.seq.Run(ctx, func(ctx context.Context) error {
		now := u.clock.Now()
		campaigns, err := u.campaignRepo.ListClosedUnannounced(ctx, now, limit)
		if err != nil {
			return err
		}
		for _, c := range campaigns {
			outcome := entities.CampaignStateFailed
			if c.GoalReached() {
				outcome = entities.CampaignStateFunded
			}
			if err := u.eventRepo.Create(ctx, &entities.LedgerEvent{
				CampaignID: c.ID,
				Type:       entities.LedgerEventCampaignClosed,
				Asset:      c.PaymentAsset,
				Amount:     new(big.Int).Set(c.TotalRaised),
				Fee:        new(big.Int),
				Outcome:    outcome,
				CreatedAt:  now,
			}); err != nil {
				return err
			}
			if err := u.campaignRepo.MarkCloseAnnounced(ctx, c.ID); err != nil {
				return err
			}
			announced++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return announced, nil
}

// GetCampaign returns one campaign with its effective state
func (u *LedgerUsecase) GetCampaign(ctx context.Context, id uint64) (*entities.CampaignView, error) {
	campaign, err := u.loadCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.view(campaign), nil
}

// ListCampaigns returns a page of campaigns in creation order
func (u *LedgerUsecase) ListCampaigns(ctx context.Context, params utils.PaginationParams) ([]*entities.CampaignView, utils.PaginationMeta, error) {
	params = params.Normalize()
	campaigns, total, err := u.campaignRepo.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	views := make([]*entities.CampaignView, len(campaigns))
	for i, c := range campaigns {
		views[i] = u.view(c)
	}
	return views, utils.CalculateMeta(total, params), nil
}

// GetDonors returns every address that ever contributed, in first-contribution order
func (u *LedgerUsecase) GetDonors(ctx context.Context, id uint64) ([]common.Address, error) {
	if _, err := u.loadCampaign(ctx, id); err != nil {
		return nil, err
	}
	contributions, err := u.contributionRepo.ListByCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	donors := make([]common.Address, len(contributions))
	for i, c := range contributions {
		donors[i] = c.Contributor
	}
	return donors, nil
}

// GetContribution returns contributor's current unsettled amount; zero when never contributed
func (u *LedgerUsecase) GetContribution(ctx context.Context, id uint64, contributor common.Address) (*big.Int, error) {
	if _, err := u.loadCampaign(ctx, id); err != nil {
		return nil, err
	}
	contribution, err := u.contributionRepo.Get(ctx, id, contributor)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, err
	}
	return contribution.Amount, nil
}

// ListEvents returns a campaign's ledger events in emission order
func (u *LedgerUsecase) ListEvents(ctx context.Context, id uint64) ([]*entities.LedgerEvent, error) {
	if _, err := u.loadCampaign(ctx, id); err != nil {
		return nil, err
	}
	return u.eventRepo.ListByCampaign(ctx, id)
}

func (u *LedgerUsecase) loadCampaign(ctx context.Context, id uint64) (*entities.Campaign, error) {
	campaign, err := u.campaignRepo.GetByID(ctx, id)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.NotFound("campaign not found")
	}
	return campaign, err
}

func (u *LedgerUsecase) view(c *entities.Campaign) *entities.CampaignView {
	return &entities.CampaignView{Campaign: c, State: c.State(u.clock.Now())}
}

func (u *LedgerUsecase) emit(ctx context.Context, c *entities.Campaign, typ entities.LedgerEventType, actor common.Address, amount, fee *big.Int) error {
	if amount == nil {
		amount = new(big.Int)
	}
	if fee == nil {
		fee = new(big.Int)
	}
	return u.eventRepo.Create(ctx, &entities.LedgerEvent{
		CampaignID: c.ID,
		Type:       typ,
		Actor:      actor,
		Asset:      c.PaymentAsset,
		Amount:     new(big.Int).Set(amount),
		Fee:        new(big.Int).Set(fee),
		CreatedAt:  u.clock.Now(),
	})
}

func (u *LedgerUsecase) record(ctx context.Context, op string, id uint64, err error, fields ...zap.Field) {
	logger.LedgerOp(ctx, op, id, err, fields...)
	result := "ok"
	if err != nil {
		_, result = domainerrors.Classify(err)
	}
	u.metrics.Observe(op, result)
}

func idOf(c *entities.Campaign) uint64 {
	if c == nil {
		return 0
	}
	return c.ID
}

func amountString(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func toFloat(v *big.Int) float64 {
	if v == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}
