package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	assets, err := Default()
	require.NoError(t, err)
	require.Len(t, assets, 4)

	assert.Equal(t, "bitcoin", assets[0].CoinID)
	assert.Equal(t, 25000.0, assets[0].Value)
	assert.Equal(t, "SOL", assets[3].Symbol)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	doc := "assets:\n  - name: Polkadot\n    symbol: dot\n    amount: 10\n    price: 6.5\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	assets, err := Load(path)
	require.NoError(t, err)
	require.Len(t, assets, 1)

	assert.Equal(t, "polkadot", assets[0].CoinID)
	assert.Equal(t, "DOT", assets[0].Symbol)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read seed file")
}

func TestParse_RejectsInvalidAssets(t *testing.T) {
	_, err := Parse([]byte("assets:\n  - name: Bitcoin\n    symbol: BTC\n    amount: 0\n    price: 1\n"))
	assert.ErrorContains(t, err, "must be positive")

	_, err = Parse([]byte("assets:\n  - symbol: BTC\n    amount: 1\n    price: 1\n"))
	assert.ErrorContains(t, err, "name and symbol are required")

	_, err = Parse([]byte("assets: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse seed file")
}
