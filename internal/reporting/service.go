package reporting

import (
	"context"
	"errors"

	"loadboard/internal/loads"
)

// Repository abstracts the reads the aggregator needs. *loads.MemoryRepo and
// *loads.PostgresRepo both satisfy it.
type Repository interface {
	ListLoads(ctx context.Context, f loads.Filters) ([]loads.Load, error)
	ListPhoneCallsByLoad(ctx context.Context, loadUUID string) ([]loads.PhoneCall, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

// AssignmentSummary applies the filter configuration, partitions the result by
// provenance and aggregates each group. Every sum and count defaults to zero
// and every division is guarded, so an empty group is a zero summary, not an
// error.
func (s *Service) AssignmentSummary(ctx context.Context, f loads.Filters) (AssignmentStats, error) {
	if s.repo == nil {
		return AssignmentStats{}, errors.New("reporting: repository not configured")
	}

	rows, err := s.repo.ListLoads(ctx, f)
	if err != nil {
		return AssignmentStats{}, err
	}

	manual := newChannelSummary()
	urlAPI := newChannelSummary()
	var manualTPC, urlAPITPC tpcAccumulator

	for _, l := range rows {
		group := &manual
		tpc := &manualTPC
		if l.AssignedViaURL {
			group = &urlAPI
			tpc = &urlAPITPC
		}

		group.Count++
		if l.AgreedPrice != nil {
			group.TotalAgreedPrice += *l.AgreedPrice
			if l.LoadboardRate != nil {
				group.TotalAgreedMinusLoadboard += *l.AgreedPrice - *l.LoadboardRate
			}
		}
		if l.TimePerCallSeconds != nil {
			tpc.sum += *l.TimePerCallSeconds
			tpc.n++
		}

		calls, err := s.repo.ListPhoneCallsByLoad(ctx, l.ID)
		if err != nil {
			return AssignmentStats{}, err
		}
		for _, c := range calls {
			bucket := group.PhoneCalls[c.CallType]
			bucket.Count++
			bucket.TotalSeconds += c.Seconds
			if c.Agreed {
				bucket.AgreedCount++
			}
			switch c.Sentiment {
			case loads.SentimentPositive:
				bucket.Sentiment.Positive++
			case loads.SentimentNeutral:
				bucket.Sentiment.Neutral++
			case loads.SentimentNegative:
				bucket.Sentiment.Negative++
			}
			group.PhoneCalls[c.CallType] = bucket
		}
	}

	manual.AvgTimePerCallSeconds = manualTPC.avg()
	urlAPI.AvgTimePerCallSeconds = urlAPITPC.avg()

	return AssignmentStats{Manual: manual, URLAPI: urlAPI}, nil
}

func newChannelSummary() ChannelSummary {
	return ChannelSummary{
		PhoneCalls: map[loads.CallType]CallTypeSummary{
			loads.CallTypeManual: {},
			loads.CallTypeAgent:  {},
		},
	}
}

// tpcAccumulator averages time_per_call_seconds over loads that have a value.
type tpcAccumulator struct {
	sum float64
	n   int
}

func (a tpcAccumulator) avg() float64 {
	if a.n == 0 {
		return 0
	}
	return a.sum / float64(a.n)
}
