// Package seed reads the portfolio used to populate an empty database.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

//go:embed default.yaml
var defaultSeed []byte

// File is the layout of a seed file.
type File struct {
	Assets []Asset `yaml:"assets"`
}

// Asset is one seeded position.
type Asset struct {
	CoinID    string  `yaml:"coin_id"`
	Name      string  `yaml:"name"`
	Symbol    string  `yaml:"symbol"`
	Amount    float64 `yaml:"amount"`
	Price     float64 `yaml:"price"`
	Change24h float64 `yaml:"change_24h"`
}

// Default returns the embedded seed portfolio.
func Default() ([]model.Asset, error) {
	return Parse(defaultSeed)
}

// Load reads the seed file at path. An empty path selects the embedded default.
func Load(path string) ([]model.Asset, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document. Every asset needs a name, a symbol and a
// positive amount and price.
func Parse(data []byte) ([]model.Asset, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	assets := make([]model.Asset, 0, len(f.Assets))
	for i, a := range f.Assets {
		if a.Name == "" || a.Symbol == "" {
			return nil, fmt.Errorf("seed asset %d: name and symbol are required", i)
		}
		if a.Amount <= 0 || a.Price <= 0 {
			return nil, fmt.Errorf("seed asset %d (%s): amount and price must be positive", i, a.Symbol)
		}

		coinID := a.CoinID
		if coinID == "" {
			coinID = strings.ToLower(a.Name)
		}
		assets = append(assets, model.Asset{
			CoinID:    coinID,
			Name:      a.Name,
			Symbol:    strings.ToUpper(a.Symbol),
			Amount:    a.Amount,
			Price:     a.Price,
			Change24h: a.Change24h,
			Value:     a.Amount * a.Price,
		})
	}
	return assets, nil
}
