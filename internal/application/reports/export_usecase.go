package reports

import (
	"context"

	"github.com/loop2cod/hs-accounts/internal/domain"
	"github.com/loop2cod/hs-accounts/internal/domain/repository"
)

// WorkbookWriter renders a single-sheet spreadsheet from a header row plus
// data rows.
type WorkbookWriter interface {
	Write(sheet string, header []string, rows [][]any) ([]byte, error)
}

// ExportUseCase produces the Excel downloads: raw lists and both reports.
type ExportUseCase struct {
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	paymentRepo  repository.PaymentRepository
	reports      *UseCase
	writer       WorkbookWriter
}

// NewExportUseCase builds the use case.
func NewExportUseCase(
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	reports *UseCase,
	writer WorkbookWriter,
) *ExportUseCase {
	return &ExportUseCase{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		reports:      reports,
		writer:       writer,
	}
}

// ExportParams select what to export. Filter applies to the invoices export
// ("gst" / "nogst"); CustomerID narrows the ledger export.
type ExportParams struct {
	Type       string
	Filter     string
	CustomerID string
}

// Export builds the workbook for the requested type and returns its bytes
// plus the download filename.
func (uc *ExportUseCase) Export(ctx context.Context, p ExportParams) ([]byte, string, error) {
	switch p.Type {
	case "customers":
		return uc.exportCustomers(ctx)
	case "invoices":
		return uc.exportInvoices(ctx, p.Filter)
	case "payments":
		return uc.exportPayments(ctx)
	case "due-balance":
		return uc.exportDueBalance(ctx)
	case "ledger":
		return uc.exportLedger(ctx, p.CustomerID)
	default:
		return nil, "", domain.Validationf("invalid export type %q", p.Type)
	}
}

func (uc *ExportUseCase) exportCustomers(ctx context.Context) ([]byte, string, error) {
	list, err := uc.customerRepo.List(ctx, repository.CustomerFilter{})
	if err != nil {
		return nil, "", err
	}
	rows := make([][]any, 0, len(list))
	for _, c := range list {
		order := any("")
		if c.RouteOrder != nil {
			order = *c.RouteOrder
		}
		rows = append(rows, []any{c.Name, c.ShopName, c.Phone, c.Address, c.RouteWeekday, order, c.GSTIN, c.OpeningBalance.String()})
	}
	data, err := uc.writer.Write("Customers",
		[]string{"Name", "Shop", "Phone", "Address", "Route weekday", "Route order", "GSTIN", "Opening balance"}, rows)
	return data, "customers.xlsx", err
}

func (uc *ExportUseCase) exportInvoices(ctx context.Context, filter string) ([]byte, string, error) {
	var withGST *bool
	switch filter {
	case "gst":
		t := true
		withGST = &t
	case "nogst":
		f := false
		withGST = &f
	}
	list, err := uc.invoiceRepo.List(ctx, repository.InvoiceFilter{WithGST: withGST})
	if err != nil {
		return nil, "", err
	}
	rows := make([][]any, 0, len(list))
	for _, inv := range list {
		gst := "No"
		if inv.WithGST {
			gst = "Yes"
		}
		rows = append(rows, []any{inv.InvoiceNumber, inv.Date.Format(dateLayout), inv.TotalAmount.String(), gst})
	}
	data, err := uc.writer.Write("Invoices",
		[]string{"Invoice #", "Date", "Total", "With GST"}, rows)
	return data, "invoices.xlsx", err
}

func (uc *ExportUseCase) exportPayments(ctx context.Context) ([]byte, string, error) {
	list, err := uc.paymentRepo.List(ctx, repository.PaymentFilter{})
	if err != nil {
		return nil, "", err
	}
	rows := make([][]any, 0, len(list))
	for _, p := range list {
		rows = append(rows, []any{p.Date.Format(dateLayout), p.Amount.String(), p.PaymentMode, p.Reference, p.Notes})
	}
	data, err := uc.writer.Write("Payments",
		[]string{"Date", "Amount", "Mode", "Reference", "Notes"}, rows)
	return data, "payments.xlsx", err
}

func (uc *ExportUseCase) exportDueBalance(ctx context.Context) ([]byte, string, error) {
	report, err := uc.reports.DueBalanceReport(ctx, nil)
	if err != nil {
		return nil, "", err
	}
	rows := make([][]any, 0, len(report))
	for _, r := range report {
		rows = append(rows, []any{r.ShopName, r.CustomerName, r.RouteWeekday, r.OpeningBalance.String(), r.Due.String(), r.Paid.String(), r.Balance.String()})
	}
	data, err := uc.writer.Write("Due & Balance",
		[]string{"Shop", "Name", "Weekday", "Opening Balance", "Due", "Paid", "Balance"}, rows)
	return data, "due-balance.xlsx", err
}

func (uc *ExportUseCase) exportLedger(ctx context.Context, customerID string) ([]byte, string, error) {
	entries, err := uc.reports.Ledger(ctx, customerID)
	if err != nil {
		return nil, "", err
	}
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{e.Date, e.Type, e.Reference, e.Amount.String(), e.RunningBalance.String()})
	}
	data, err := uc.writer.Write("Ledger",
		[]string{"Date", "Type", "Reference", "Amount", "Running balance"}, rows)
	return data, "ledger.xlsx", err
}
