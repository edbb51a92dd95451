package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loop2cod/hs-accounts/internal/application/dto"
	"github.com/loop2cod/hs-accounts/internal/domain/repository"
)

// DashboardUseCase builds the landing-page summary: active customer count,
// total outstanding dues and the last 30 days of activity.
type DashboardUseCase struct {
	customerRepo repository.CustomerRepository
	reportRepo   repository.ReportRepository
	reports      *UseCase
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(customerRepo repository.CustomerRepository, reportRepo repository.ReportRepository, reports *UseCase) *DashboardUseCase {
	return &DashboardUseCase{customerRepo: customerRepo, reportRepo: reportRepo, reports: reports}
}

// GetSummary assembles the dashboard block. Total outstanding counts only
// customers who still owe money; credit balances do not offset other shops'
// dues.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummary, error) {
	count, err := uc.customerRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reports.DueBalanceReport(ctx, nil)
	if err != nil {
		return nil, err
	}
	outstanding := decimal.Zero
	for _, r := range rows {
		if r.Balance.IsPositive() {
			outstanding = outstanding.Add(r.Balance)
		}
	}
	activity, err := uc.reportRepo.ActivitySince(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummary{
		TotalCustomers:     count,
		TotalOutstanding:   outstanding,
		InvoicesLast30Days: activity.InvoiceCount,
		InvoicedLast30Days: activity.InvoicedSum,
		PaymentsLast30Days: activity.PaymentCount,
		PaidLast30Days:     activity.PaidSum,
	}, nil
}
