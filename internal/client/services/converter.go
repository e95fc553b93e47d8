package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/bizdesk/internal/client/client"
	"github.com/dmitrijs2005/bizdesk/internal/client/models"
)

var ErrInvalidCurrency = errors.New("invalid currency code")

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

type ConverterService interface {
	Convert(ctx context.Context, base, target string, amount decimal.Decimal) (models.Conversion, error)
}

type converterService struct {
	client client.Client
}

func NewConverterService(c client.Client) ConverterService {
	return &converterService{client: c}
}

// Convert asks the backend to convert amount from base to target. Codes are
// ISO 4217 and matched case-insensitively.
func (s *converterService) Convert(ctx context.Context, base, target string, amount decimal.Decimal) (models.Conversion, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	target = strings.ToUpper(strings.TrimSpace(target))
	for _, code := range []string{base, target} {
		if !currencyCode.MatchString(code) {
			return models.Conversion{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
		}
	}

	q := url.Values{}
	q.Set("base", base)
	q.Set("target", target)
	q.Set("amount", amount.String())

	var out models.Conversion
	if err := s.client.Do(ctx, http.MethodGet, "/api/convert", q, nil, &out); err != nil {
		return models.Conversion{}, fmt.Errorf("convert %s to %s: %w", base, target, err)
	}

	if out.Base == "" {
		out.Base = base
	}
	if out.Target == "" {
		out.Target = target
	}
	if out.Amount.IsZero() {
		out.Amount = amount
	}
	return out, nil
}
