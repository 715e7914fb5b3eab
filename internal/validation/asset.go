package validation

import (
	"math"
	"strings"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/request"
)

// ValidateCreateAsset checks the fields of a new portfolio asset.
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	} else if len(req.Symbol) > 20 {
		errors["symbol"] = "symbol must be 20 characters or less"
	}

	if len(req.CoinID) > 100 {
		errors["coin_id"] = "coin_id must be 100 characters or less"
	}

	if !(req.Amount > 0) || math.IsInf(req.Amount, 0) {
		errors["amount"] = "amount must be a positive number"
	}

	if !(req.Price > 0) || math.IsInf(req.Price, 0) {
		errors["price"] = "price must be a positive number"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
