package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/bizdesk/internal/client/chart"
	"github.com/dmitrijs2005/bizdesk/internal/client/client"
	"github.com/dmitrijs2005/bizdesk/internal/client/models"
	"github.com/dmitrijs2005/bizdesk/internal/logging"
)

var errNoChartURL = errors.New("chart response has no url")

// Report is the dashboard view of a date range: the backend-rendered chart
// image and the monthly table computed locally.
type Report struct {
	Range chart.Range
	URL   string
	// ChartErr is set when the chart image could not be produced. Rows are
	// still filled in.
	ChartErr error
	Rows     []models.MonthlyAggregate
	Totals   models.MonthlyAggregate
}

type ChartService interface {
	Report(ctx context.Context, r chart.Range) (Report, error)
}

type chartService struct {
	client       client.Client
	transactions *Resource[models.Transaction]
	log          logging.Logger
}

func NewChartService(c client.Client, transactions *Resource[models.Transaction], log logging.Logger) ChartService {
	return &chartService{client: c, transactions: transactions, log: log.With("component", "chart")}
}

func chartQuery(r chart.Range) url.Values {
	q := url.Values{}
	if !r.Start.IsZero() {
		q.Set("start_date", r.Start.String())
	}
	if !r.End.IsZero() {
		q.Set("end_date", r.End.String())
	}
	return q
}

// Report asks the backend for the chart image, then reloads transactions
// and aggregates them. Authentication failures abort the report.
func (s *chartService) Report(ctx context.Context, r chart.Range) (Report, error) {
	rep := Report{Range: r}

	var resp struct {
		URL string `json:"url"`
	}
	err := s.client.Do(ctx, http.MethodGet, "/api/chart", chartQuery(r), nil, &resp)
	switch {
	case client.IsAuthError(err):
		return Report{}, err
	case err != nil:
		s.log.Warn(ctx, "chart image unavailable", "err", err)
		rep.ChartErr = err
	case resp.URL == "":
		rep.ChartErr = errNoChartURL
	default:
		rep.URL = resp.URL
	}

	rows, err := chart.Aggregate(s.transactions.List(ctx), r)
	if err != nil {
		return Report{}, err
	}
	rep.Rows = rows
	rep.Totals = chart.Totals(rows)
	return rep, nil
}
