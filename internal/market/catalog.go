package market

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Fallback is the fixed quote served for a secondary whose fetch failed
type Fallback struct {
	Price         decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
}

// Instrument describes one tracked futures contract
type Instrument struct {
	Key    string
	Symbol string

	// Centre and half-width of generated prices. Secondaries centre on Fallback.Price.
	Base   decimal.Decimal
	Jitter decimal.Decimal

	Fallback Fallback
}

// Catalog lists the primary instrument and its secondaries
type Catalog struct {
	Primary   Instrument
	Secondary []Instrument
}

// DefaultCatalog returns gold as the primary with oil, silver and wheat as secondaries
func DefaultCatalog() *Catalog {
	return &Catalog{
		Primary: Instrument{
			Key:    "gold",
			Symbol: "GC=F",
			Base:   decimal.NewFromInt(1890),
			Jitter: decimal.NewFromInt(15),
		},
		Secondary: []Instrument{
			secondary("oil", "CL=F", "78.42", "0.94", "1.2", "1"),
			secondary("silver", "SI=F", "23.15", "0.12", "0.5", "0.25"),
			secondary("wheat", "ZW=F", "642.75", "-1.93", "-0.3", "5"),
		},
	}
}

func secondary(key, symbol, price, change, pct, jitter string) Instrument {
	fb := Fallback{
		Price:         decimal.RequireFromString(price),
		Change:        decimal.RequireFromString(change),
		ChangePercent: decimal.RequireFromString(pct),
	}
	return Instrument{
		Key:      key,
		Symbol:   symbol,
		Base:     fb.Price,
		Jitter:   decimal.RequireFromString(jitter),
		Fallback: fb,
	}
}

type catalogFile struct {
	Primary struct {
		Key    string  `yaml:"key"`
		Symbol string  `yaml:"symbol"`
		Base   float64 `yaml:"base"`
		Jitter float64 `yaml:"jitter"`
	} `yaml:"primary"`
	Secondary []struct {
		Key      string  `yaml:"key"`
		Symbol   string  `yaml:"symbol"`
		Jitter   float64 `yaml:"jitter"`
		Fallback struct {
			Price         float64 `yaml:"price"`
			Change        float64 `yaml:"change"`
			ChangePercent float64 `yaml:"change_percent"`
		} `yaml:"fallback"`
	} `yaml:"secondary"`
}

// LoadCatalog reads a YAML catalog, or returns the default one when path is empty
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	catalog := &Catalog{
		Primary: Instrument{
			Key:    file.Primary.Key,
			Symbol: file.Primary.Symbol,
			Base:   decimal.NewFromFloat(file.Primary.Base),
			Jitter: decimal.NewFromFloat(file.Primary.Jitter),
		},
	}

	for _, s := range file.Secondary {
		fb := Fallback{
			Price:         decimal.NewFromFloat(s.Fallback.Price),
			Change:        decimal.NewFromFloat(s.Fallback.Change),
			ChangePercent: decimal.NewFromFloat(s.Fallback.ChangePercent),
		}
		catalog.Secondary = append(catalog.Secondary, Instrument{
			Key:      s.Key,
			Symbol:   s.Symbol,
			Base:     fb.Price,
			Jitter:   decimal.NewFromFloat(s.Jitter),
			Fallback: fb,
		})
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	return catalog, nil
}

// Validate checks that keys are unique and every instrument is usable
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Secondary)+1)

	for _, inst := range append([]Instrument{c.Primary}, c.Secondary...) {
		if inst.Key == "" {
			return fmt.Errorf("instrument key is required")
		}
		if inst.Symbol == "" {
			return fmt.Errorf("instrument %s: symbol is required", inst.Key)
		}
		if inst.Jitter.IsNegative() {
			return fmt.Errorf("instrument %s: jitter must not be negative", inst.Key)
		}
		if seen[inst.Key] {
			return fmt.Errorf("duplicate instrument key %s", inst.Key)
		}
		seen[inst.Key] = true
	}

	return nil
}
