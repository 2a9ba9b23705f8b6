package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/account-ledger/internal/config"
	"github.com/account-ledger/internal/domain/account"
	"github.com/account-ledger/internal/domain/customer"
	"github.com/account-ledger/internal/domain/ledger"
	"github.com/account-ledger/internal/domain/registry"
	"github.com/account-ledger/internal/domain/shared"
	"github.com/account-ledger/internal/platform/messaging/producers"
)

// BankingServiceImpl implements BankingService over an in-memory registry
type BankingServiceImpl struct {
	logger    *slog.Logger
	registry  *registry.Registry
	publisher producers.MessagePublisher // nil disables ledger events
	defaults  config.BankConfig
}

// NewBankingService creates the banking service. publisher may be nil.
func NewBankingService(logger *slog.Logger, reg *registry.Registry, publisher producers.MessagePublisher, defaults config.BankConfig) BankingService {
	return &BankingServiceImpl{
		logger:    logger,
		registry:  reg,
		publisher: publisher,
		defaults:  defaults,
	}
}

func (s *BankingServiceImpl) OpenAccount(ctx context.Context, req OpenAccountRequest) (account.Summary, error) {
	profile, err := customer.NewProfile(req.FullName, req.CustomerID, req.BaseSalary, req.OpeningBalance)
	if err != nil {
		return account.Summary{}, invalid("open account", fmt.Errorf("%w: %w", account.ErrInvalidArgument, err))
	}

	acc, err := s.build(profile, req)
	if err != nil {
		return account.Summary{}, err
	}
	if err := s.registry.Add(acc); err != nil {
		return account.Summary{}, err
	}

	summary := acc.Summary()
	s.logger.Info("Account opened",
		"customer_id", summary.CustomerID,
		"account_type", string(summary.Type),
		"opening_balance", summary.OpeningBalance.String(),
	)
	return summary, nil
}

func (s *BankingServiceImpl) build(profile customer.Profile, req OpenAccountRequest) (*account.Account, error) {
	switch req.Type {
	case "", account.TypeStandard:
		return account.NewAccount(profile), nil
	case account.TypeSavings:
		limit := s.defaults.DefaultOverdraftLimit
		if req.OverdraftLimit != nil {
			limit = *req.OverdraftLimit
		}
		return account.NewSavingsAccount(profile, limit)
	case account.TypeFixedDeposit:
		lockIn := s.defaults.DefaultLockInMonths
		if req.LockInMonths != nil {
			lockIn = *req.LockInMonths
		}
		rate := s.defaults.DefaultInterestRate
		if req.InterestRate != nil {
			rate = *req.InterestRate
		}
		return account.NewFixedDepositAccount(profile, lockIn, rate)
	default:
		return nil, invalid("open account", fmt.Errorf("%w: unknown account type %q", account.ErrInvalidArgument, req.Type))
	}
}

func (s *BankingServiceImpl) GetAccount(ctx context.Context, customerID int64) (account.Summary, error) {
	acc, err := s.registry.Get(customerID)
	if err != nil {
		return account.Summary{}, err
	}
	return acc.Summary(), nil
}

func (s *BankingServiceImpl) ListAccounts(ctx context.Context) []account.Summary {
	summaries := make([]account.Summary, 0, s.registry.Len())
	for acc := range s.registry.List() {
		summaries = append(summaries, acc.Summary())
	}
	return summaries
}

func (s *BankingServiceImpl) RemoveAccount(ctx context.Context, customerID int64) (account.Summary, error) {
	acc, err := s.registry.Remove(customerID)
	if err != nil {
		return account.Summary{}, err
	}
	s.logger.Info("Account removed", "customer_id", customerID)
	return acc.Summary(), nil
}

func (s *BankingServiceImpl) GetHistory(ctx context.Context, customerID int64) ([]ledger.Record, error) {
	acc, err := s.registry.Get(customerID)
	if err != nil {
		return nil, err
	}
	return acc.History(), nil
}

func (s *BankingServiceImpl) ApplyOperation(ctx context.Context, req *shared.OperationRequest) (*OperationResult, error) {
	log := s.logger.With(
		"operation_id", req.OperationID,
		"customer_id", req.CustomerID,
		"operation", string(req.Type),
		"correlation_id", req.CorrelationID,
	)

	if err := req.Validate(); err != nil {
		return nil, invalid(string(req.Type), err)
	}
	acc, err := s.registry.Get(req.CustomerID)
	if err != nil {
		return nil, err
	}

	amount := req.AmountOrZero()
	var record ledger.Record
	switch req.Type {
	case shared.OperationTypeDeposit:
		record, err = acc.Deposit(amount)
	case shared.OperationTypeWithdrawal:
		record, err = acc.Withdraw(amount)
	case shared.OperationTypeOverdraft:
		record, err = acc.UseOverdraft(amount)
	case shared.OperationTypeFixedWithdrawal:
		record, err = acc.WithdrawBeforeMaturity(amount)
	case shared.OperationTypeMaturityPayout:
		record, err = acc.MaturityPayout()
	}
	if err != nil {
		log.Info("Operation rejected", "reason", string(FailureReasonFor(err)), "error", err)
		return nil, err
	}

	summary := acc.Summary()
	log.Info("Operation applied",
		"record_id", record.ID,
		"amount", record.Amount.String(),
		"balance", record.BalanceAfter.String(),
	)

	s.publish(ctx, log, ledger.NewEvent(summary.CustomerID, string(summary.Type), string(req.Type), record, req.CorrelationID))
	return &OperationResult{Summary: summary, Record: record}, nil
}

// publish sends the event and only logs a failure; the in-memory record stands
func (s *BankingServiceImpl) publish(ctx context.Context, log *slog.Logger, event *ledger.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, strconv.FormatInt(event.CustomerID, 10), event); err != nil {
		log.Error("Failed to publish ledger event", "event_id", event.EventID, "error", err)
	}
}

func (s *BankingServiceImpl) AdvanceMaturity(ctx context.Context, months int) (*MaturityReport, error) {
	if months < 1 {
		return nil, invalid("advance maturity", fmt.Errorf("%w: months must be at least 1", account.ErrInvalidArgument))
	}

	report := &MaturityReport{Months: months, Matured: []int64{}}
	for acc := range s.registry.List() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if acc.Type() != account.TypeFixedDeposit {
			continue
		}
		wasMatured := acc.Matured()
		remaining, err := acc.AdvanceMonths(months)
		if err != nil {
			return report, fmt.Errorf("advance customer %d: %w", acc.CustomerID(), err)
		}
		report.Advanced++
		if !wasMatured && remaining == 0 {
			report.Matured = append(report.Matured, acc.CustomerID())
			s.logger.Info("Fixed deposit matured", "customer_id", acc.CustomerID())
		}
	}

	s.logger.Debug("Maturity advanced", "months", months, "advanced", report.Advanced, "matured", len(report.Matured))
	return report, nil
}
