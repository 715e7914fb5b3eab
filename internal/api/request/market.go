package request

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
)

// MaxMarketLimit is the largest page the market-data provider serves.
const MaxMarketLimit = 250

// ParseLimit validates the limit query parameter.
// An empty parameter selects defaultLimit.
func ParseLimit(limitParam string, defaultLimit int) (int, error) {
	if limitParam == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(strings.TrimSpace(limitParam))
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not a number", apperrors.ErrInvalidLimit, limitParam)
	}
	if limit < 1 || limit > MaxMarketLimit {
		return 0, fmt.Errorf("%w: must be between 1 and %d", apperrors.ErrInvalidLimit, MaxMarketLimit)
	}
	return limit, nil
}

// ParseAmount validates the amount query parameter of the format endpoint.
func ParseAmount(amountParam string) (float64, error) {
	if strings.TrimSpace(amountParam) == "" {
		return 0, fmt.Errorf("%w: amount is required", apperrors.ErrInvalidAmount)
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(amountParam), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not a number", apperrors.ErrInvalidAmount, amountParam)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: amount must be finite", apperrors.ErrInvalidAmount)
	}
	return amount, nil
}
