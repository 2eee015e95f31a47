package analysis

import (
	"context"
	"fmt"

	"github.com/andresmx/sentimsg/internal/domain/messages"
)

// NoDate is the report date sentinel when the store holds no messages.
const NoDate = "sin_fecha"

// Counts is one total/positive/negative/neutral block. Total is strictly the
// sum of the three sentiment buckets.
type Counts struct {
	Total    int
	Positive int
	Negative int
	Neutral  int
}

func (c *Counts) add(s messages.Sentiment, n int) {
	switch s {
	case messages.SentimentPositive:
		c.Positive += n
	case messages.SentimentNegative:
		c.Negative += n
	case messages.SentimentNeutral:
		c.Neutral += n
	default:
		return
	}
	c.Total += n
}

// Report is the nested sentiment rollup: global counts, then per-company
// blocks each holding per-service blocks. Companies and services appear in
// first-insert order.
type Report struct {
	Date      string
	Totals    Counts
	Companies []CompanyReport
}

type CompanyReport struct {
	Name     string
	Counts   Counts
	Services []ServiceReport
}

type ServiceReport struct {
	Name   string
	Counts Counts
}

// Report builds the full rollup from the store. Read-only and idempotent:
// two calls with no intervening writes yield identical output. The nesting is
// assembled from a single (company, service, sentiment) group-by pass, so the
// cost is linear in distinct pairs rather than quadratic in messages.
func (s *Service) Report(ctx context.Context) (Report, error) {
	rep := Report{Date: NoDate}

	ts, ok, err := s.Repo.EarliestTimestamp(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("earliest timestamp: %w", err)
	}
	if ok {
		rep.Date = ts.Format("2006-01-02")
	}

	global, err := s.Repo.CountBySentiment(ctx, messages.Filter{})
	if err != nil {
		return Report{}, fmt.Errorf("global counts: %w", err)
	}
	for sentiment, n := range global {
		rep.Totals.add(sentiment, n)
	}

	groups, err := s.Repo.GroupedCounts(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("grouped counts: %w", err)
	}

	companyIdx := make(map[string]int)
	serviceIdx := make(map[string]map[string]int)
	for _, g := range groups {
		ci, seen := companyIdx[g.Company]
		if !seen {
			ci = len(rep.Companies)
			companyIdx[g.Company] = ci
			serviceIdx[g.Company] = make(map[string]int)
			rep.Companies = append(rep.Companies, CompanyReport{Name: g.Company})
		}
		co := &rep.Companies[ci]
		co.Counts.add(g.Sentiment, g.Count)

		si, seen := serviceIdx[g.Company][g.Service]
		if !seen {
			si = len(co.Services)
			serviceIdx[g.Company][g.Service] = si
			co.Services = append(co.Services, ServiceReport{Name: g.Service})
		}
		co.Services[si].Counts.add(g.Sentiment, g.Count)
	}

	return rep, nil
}

// Companies lists the distinct company values seen so far, in first-insert
// order.
func (s *Service) Companies(ctx context.Context) ([]string, error) {
	return s.Repo.Distinct(ctx, messages.FieldCompany, messages.Filter{})
}
