package service

import (
	"fmt"
	"math"

	checkoutdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/checkout/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/fee"
	jobdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/processor"
)

// minimumChargeCents is the processor's floor for a card charge.
const minimumChargeCents int64 = 50

// Pricing is the computed breakdown for one checkout, in minor units.
type Pricing struct {
	BaseCents  int64
	FeeCents   int64
	TotalCents int64
	Rate       float64
}

// PriceJob converts the job's major-unit price into the charge breakdown.
func PriceJob(job *jobdomain.Job) (Pricing, error) {
	baseCents := int64(math.Round(job.Price * 100))
	feeCents, err := fee.Calculate(baseCents)
	if err != nil {
		return Pricing{}, err
	}

	p := Pricing{
		BaseCents:  baseCents,
		FeeCents:   feeCents,
		TotalCents: baseCents + feeCents,
		Rate:       fee.Rate(baseCents),
	}
	if p.TotalCents < minimumChargeCents {
		return Pricing{}, checkoutdomain.ErrAmountBelowMinimum
	}
	return p, nil
}

// BuildSpec assembles the processor session request. The job and tenant ids
// ride in metadata so the webhook reconciler can find its way back.
func BuildSpec(job *jobdomain.Job, pricing Pricing, decision checkoutdomain.RoutingDecision, baseURL string) processor.CheckoutSpec {
	spec := processor.CheckoutSpec{
		LineItemName: job.Title,
		Currency:     "usd",
		AmountCents:  pricing.TotalCents,
		SuccessURL:   fmt.Sprintf("%s/payment-success?job_id=%s", baseURL, job.ID.String()),
		CancelURL:    fmt.Sprintf("%s/payment-cancelled?job_id=%s", baseURL, job.ID.String()),
		Metadata: map[string]string{
			"job_id":     job.ID.String(),
			"company_id": job.CompanyID.String(),
		},
	}
	if decision.Method == checkoutdomain.RouteConnect {
		spec.ConnectedAccountID = decision.AccountID
		spec.ApplicationFeeCents = pricing.FeeCents
	}
	return spec
}
