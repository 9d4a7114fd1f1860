package policy

import (
	"fmt"
	"os"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Policy holds the finance rules that vary by jurisdiction or year and are therefore
// configured rather than compiled in.
type Policy struct {
	Currency          string
	BalanceTolerance  decimal.Decimal
	IncomeTaxBrackets []domain.TaxBracket
	CashFlow          CashFlowPolicy
}

// CashFlowPolicy maps reference types to the cash flow activity used when an account
// gives no better answer.
type CashFlowPolicy struct {
	DefaultActivity domain.CashFlowActivity
	ByReferenceType map[domain.ReferenceType]domain.CashFlowActivity
}

// ActivityFor returns the configured activity for a reference type.
func (c CashFlowPolicy) ActivityFor(ref domain.ReferenceType) domain.CashFlowActivity {
	if activity, ok := c.ByReferenceType[ref]; ok {
		return activity
	}
	if c.DefaultActivity == "" {
		return domain.ActivityOperating
	}
	return c.DefaultActivity
}

// file is the on-disk YAML layout. Amounts are strings so they keep full precision.
type file struct {
	Currency         string `yaml:"currency"`
	BalanceTolerance string `yaml:"balance_tolerance"`
	IncomeTax        struct {
		Brackets []bracketFile `yaml:"brackets"`
	} `yaml:"income_tax"`
	CashFlow struct {
		DefaultActivity string            `yaml:"default_activity"`
		ReferenceTypes  map[string]string `yaml:"reference_types"`
	} `yaml:"cash_flow"`
}

type bracketFile struct {
	Threshold string `yaml:"threshold"`
	Rate      string `yaml:"rate"`
}

// DefaultIncomeTaxBrackets is the slab table used when no policy file is configured:
// nil up to 2,50,000; 5% to 5,00,000; 20% to 10,00,000; 30% above.
func DefaultIncomeTaxBrackets() []domain.TaxBracket {
	return []domain.TaxBracket{
		{Threshold: decimal.Zero, Rate: decimal.Zero},
		{Threshold: decimal.NewFromInt(250000), Rate: decimal.NewFromInt(5)},
		{Threshold: decimal.NewFromInt(500000), Rate: decimal.NewFromInt(20)},
		{Threshold: decimal.NewFromInt(1000000), Rate: decimal.NewFromInt(30)},
	}
}

// Default returns the built-in policy.
func Default() *Policy {
	return &Policy{
		Currency:          "INR",
		BalanceTolerance:  decimal.RequireFromString("0.01"),
		IncomeTaxBrackets: DefaultIncomeTaxBrackets(),
		CashFlow: CashFlowPolicy{
			DefaultActivity: domain.ActivityOperating,
			ByReferenceType: map[domain.ReferenceType]domain.CashFlowActivity{
				domain.RefJobSheet:         domain.ActivityOperating,
				domain.RefInvoice:          domain.ActivityOperating,
				domain.RefPayment:          domain.ActivityOperating,
				domain.RefAdjustment:       domain.ActivityOperating,
				domain.RefPartyTransaction: domain.ActivityOperating,
				domain.RefTransfer:         domain.ActivityFinancing,
			},
		},
	}
}

// Load reads a policy YAML file. An empty path returns Default().
func Load(path string) (*Policy, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading finance policy: %w", err)
	}
	return Parse(data)
}

// Parse decodes a policy document. Sections left out of the document keep their defaults.
func Parse(data []byte) (*Policy, error) {
	var raw file
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing finance policy: %w", err)
	}

	p := Default()
	if raw.Currency != "" {
		p.Currency = raw.Currency
	}
	if raw.BalanceTolerance != "" {
		tol, err := decimal.NewFromString(raw.BalanceTolerance)
		if err != nil {
			return nil, fmt.Errorf("parsing balance_tolerance: %w", err)
		}
		p.BalanceTolerance = tol
	}

	if len(raw.IncomeTax.Brackets) > 0 {
		brackets := make([]domain.TaxBracket, 0, len(raw.IncomeTax.Brackets))
		for i, b := range raw.IncomeTax.Brackets {
			threshold, err := decimal.NewFromString(b.Threshold)
			if err != nil {
				return nil, fmt.Errorf("parsing income_tax.brackets[%d].threshold: %w", i, err)
			}
			rate, err := decimal.NewFromString(b.Rate)
			if err != nil {
				return nil, fmt.Errorf("parsing income_tax.brackets[%d].rate: %w", i, err)
			}
			brackets = append(brackets, domain.TaxBracket{Threshold: threshold, Rate: rate})
		}
		p.IncomeTaxBrackets = brackets
	}

	if raw.CashFlow.DefaultActivity != "" {
		activity, ok := domain.ParseCashFlowActivity(raw.CashFlow.DefaultActivity)
		if !ok {
			return nil, fmt.Errorf("unknown cash_flow.default_activity %q", raw.CashFlow.DefaultActivity)
		}
		p.CashFlow.DefaultActivity = activity
	}
	for ref, act := range raw.CashFlow.ReferenceTypes {
		refType := domain.ReferenceType(ref)
		if !refType.IsValid() {
			return nil, fmt.Errorf("unknown reference type %q in cash_flow.reference_types", ref)
		}
		activity, ok := domain.ParseCashFlowActivity(act)
		if !ok {
			return nil, fmt.Errorf("unknown activity %q for reference type %s", act, ref)
		}
		p.CashFlow.ByReferenceType[refType] = activity
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the bracket table is usable: it starts at zero, thresholds strictly
// increase, and rates lie within 0-100.
func (p *Policy) Validate() error {
	if len(p.IncomeTaxBrackets) == 0 {
		return fmt.Errorf("income tax bracket table is empty")
	}
	hundred := decimal.NewFromInt(100)
	for i, b := range p.IncomeTaxBrackets {
		if i == 0 && !b.Threshold.IsZero() {
			return fmt.Errorf("first income tax bracket must start at 0, got %s", b.Threshold)
		}
		if i > 0 && !b.Threshold.GreaterThan(p.IncomeTaxBrackets[i-1].Threshold) {
			return fmt.Errorf("income tax bracket thresholds must strictly increase (bracket %d)", i)
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(hundred) {
			return fmt.Errorf("income tax bracket %d rate %s outside 0-100", i, b.Rate)
		}
	}
	if p.BalanceTolerance.IsNegative() {
		return fmt.Errorf("balance tolerance must not be negative")
	}
	return nil
}

// Marshal encodes the policy in the layout Parse reads.
func Marshal(p *Policy) ([]byte, error) {
	var raw file
	raw.Currency = p.Currency
	raw.BalanceTolerance = p.BalanceTolerance.String()
	for _, b := range p.IncomeTaxBrackets {
		raw.IncomeTax.Brackets = append(raw.IncomeTax.Brackets, bracketFile{Threshold: b.Threshold.String(), Rate: b.Rate.String()})
	}
	raw.CashFlow.DefaultActivity = string(p.CashFlow.DefaultActivity)
	raw.CashFlow.ReferenceTypes = make(map[string]string, len(p.CashFlow.ByReferenceType))
	for ref, activity := range p.CashFlow.ByReferenceType {
		raw.CashFlow.ReferenceTypes[string(ref)] = string(activity)
	}

	data, err := yaml.Marshal(&raw)
	if err != nil {
		return nil, fmt.Errorf("marshaling finance policy: %w", err)
	}
	return data, nil
}

// Save writes the policy as YAML.
func Save(path string, p *Policy) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing finance policy: %w", err)
	}
	return nil
}
