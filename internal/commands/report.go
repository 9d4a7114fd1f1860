package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/core/reports"
	"github.com/ganpathioverseas/erp_finance/internal/dto"
)

// statementKinds are the on-demand statements `report statement` can print.
var statementKinds = []string{"profit-loss", "balance-sheet", "cash-flow", "tax", "receivables-aging"}

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Generate, preview and export financial reports",
	}
	reportCmd.AddCommand(newReportStatementCommand())
	reportCmd.AddCommand(newReportGenerateCommand())
	reportCmd.AddCommand(newReportExportCommand())
	return reportCmd
}

// statementArgs are the flags shared by statement previews and generated reports.
type statementArgs struct {
	userID  string
	from    string
	to      string
	asOf    string
	taxType string
}

func (a *statementArgs) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.userID, "user", "", "user the request is made on behalf of (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&a.from, "from", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&a.to, "to", "", "period end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&a.asOf, "as-of", "", "balance sheet date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&a.taxType, "tax-type", "", "GST, INCOME_TAX or TDS")
}

// period parses --from and --to, both of which are required.
func (a *statementArgs) period() (time.Time, time.Time, error) {
	if a.from == "" || a.to == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--from and --to are required")
	}
	from, err := parseDay(a.from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
	}
	to, err := parseDay(a.to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
	}
	return from, to, nil
}

func parseDay(raw string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", raw)
	}
	return t, nil
}

func validStatement(kind string) error {
	for _, k := range statementKinds {
		if k == kind {
			return nil
		}
	}
	return fmt.Errorf("unknown statement %q (want one of %s)", kind, strings.Join(statementKinds, ", "))
}

// statementRequest is a validated statement preview.
type statementRequest struct {
	kind    string
	from    time.Time
	to      time.Time
	asOf    time.Time
	taxType domain.TaxType
}

// resolve checks the flags a statement kind needs before any connection is opened.
func (a *statementArgs) resolve(kind string, today time.Time) (statementRequest, error) {
	req := statementRequest{kind: kind}
	if err := validStatement(kind); err != nil {
		return req, err
	}
	var err error
	switch kind {
	case "profit-loss", "cash-flow":
		req.from, req.to, err = a.period()
	case "tax":
		req.taxType = domain.TaxType(strings.ToUpper(a.taxType))
		if !req.taxType.IsValid() {
			return req, fmt.Errorf("--tax-type must be GST, INCOME_TAX or TDS")
		}
		req.from, req.to, err = a.period()
	case "balance-sheet":
		req.asOf = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		if a.asOf != "" {
			req.asOf, err = parseDay(a.asOf)
		}
	}
	return req, err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newReportStatementCommand() *cobra.Command {
	var args statementArgs

	cmd := &cobra.Command{
		Use:   "statement <" + strings.Join(statementKinds, "|") + ">",
		Short: "Compute an on-demand statement and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			req, err := args.resolve(positional[0], time.Now())
			if err != nil {
				return err
			}

			a, ctx, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			svc := a.services.Reporting

			var out any
			switch req.kind {
			case "profit-loss":
				report, err := svc.ProfitAndLoss(ctx, req.from, req.to, args.userID)
				if err != nil {
					return err
				}
				out = dto.ToProfitAndLossResponse(report)
			case "balance-sheet":
				report, err := svc.BalanceSheet(ctx, req.asOf, args.userID)
				if err != nil {
					return err
				}
				out = dto.ToBalanceSheetResponse(report)
			case "cash-flow":
				report, err := svc.CashFlow(ctx, req.from, req.to, args.userID)
				if err != nil {
					return err
				}
				out = dto.ToCashFlowResponse(report, map[domain.CashFlowActivity]string{
					domain.ActivityOperating: reports.ActivityLabel(domain.ActivityOperating),
					domain.ActivityInvesting: reports.ActivityLabel(domain.ActivityInvesting),
					domain.ActivityFinancing: reports.ActivityLabel(domain.ActivityFinancing),
				})
			case "tax":
				report, err := svc.Tax(ctx, req.taxType, req.from, req.to, args.userID)
				if err != nil {
					return err
				}
				out = dto.ToTaxResponse(report)
			case "receivables-aging":
				report, err := svc.ReceivablesAging(ctx, args.userID)
				if err != nil {
					return err
				}
				out = dto.ToReceivablesAgingResponse(report)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	args.bind(cmd)

	return cmd
}

func newReportGenerateCommand() *cobra.Command {
	var args statementArgs
	var reportType, name, periodType, notes string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a DRAFT report from the ledger and store it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := dto.CreateReportRequest{
				ReportType:               strings.ToUpper(reportType),
				Name:                     name,
				PeriodType:               strings.ToUpper(periodType),
				PeriodStart:              args.from,
				PeriodEnd:                args.to,
				AsOfDate:                 args.asOf,
				TaxType:                  strings.ToUpper(args.taxType),
				Notes:                    notes,
				GenerateFromTransactions: true,
			}
			if !domain.ReportType(req.ReportType).IsValid() {
				return fmt.Errorf("unknown report type %q", reportType)
			}

			a, ctx, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.services.Reporting.GenerateReport(ctx, req, args.userID)
			if err != nil {
				return err
			}
			if !result.LineItemsPersisted {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: report %s stored without line items: %s\n",
					result.Report.ReportID, result.LineItemsError)
			}
			return writeJSON(cmd.OutOrStdout(), dto.ToCreateReportResponse(result))
		},
	}
	args.bind(cmd)
	cmd.Flags().StringVar(&reportType, "type", "", "PROFIT_LOSS, BALANCE_SHEET, CASH_FLOW or TAX (required)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&name, "name", "", "report name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&periodType, "period-type", "", "MONTHLY, QUARTERLY, YEARLY or CUSTOM")
	cmd.Flags().StringVar(&notes, "notes", "", "free text notes")

	return cmd
}

func newReportExportCommand() *cobra.Command {
	var userID, outPath string

	cmd := &cobra.Command{
		Use:   "export <reportID>",
		Short: "Write a stored report as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			a, ctx, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			w := cmd.OutOrStdout()
			if outPath != "" {
				f, ferr := os.Create(outPath)
				if ferr != nil {
					return fmt.Errorf("creating %s: %w", outPath, ferr)
				}
				defer func() {
					if cerr := f.Close(); cerr != nil && err == nil {
						err = cerr
					}
				}()
				w = f
			}
			return a.services.Reporting.ExportReportCSV(ctx, args[0], userID, w)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user the request is made on behalf of (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout when empty)")

	return cmd
}
