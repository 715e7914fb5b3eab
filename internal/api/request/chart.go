package request

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

// ParseWindow validates the window query parameter.
// An empty parameter selects model.DefaultWindow.
func ParseWindow(windowParam string) (model.Window, error) {
	if windowParam == "" {
		return model.DefaultWindow, nil
	}

	w := model.Window(strings.ToLower(strings.TrimSpace(windowParam)))
	if _, ok := w.Days(); !ok {
		return "", fmt.Errorf("%w: %s (expected 1d, 7d, 30d or 1y)", apperrors.ErrInvalidWindow, windowParam)
	}
	return w, nil
}
