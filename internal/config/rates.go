package config

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/payroll"
	"gopkg.in/yaml.v3"
)

type ratesFile struct {
	Normal   map[string]int64 `yaml:"normal"`
	Overtime map[string]int64 `yaml:"overtime"`
}

// LoadRates reads the seed rate table used when the store has none.
// Every position needs both a normal and an overtime rate.
//
//	normal:
//	  intern: 35000
//	  staff: 50000
//	  supervisor: 100000
//	  manager: 200000
//	overtime:
//	  ...
func LoadRates(path string) (payroll.RateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return payroll.RateTable{}, fmt.Errorf("failed to read rates file: %w", err)
	}
	return ParseRates(data)
}

func ParseRates(data []byte) (payroll.RateTable, error) {
	var file ratesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return payroll.RateTable{}, fmt.Errorf("failed to parse rates file: %w", err)
	}

	req := payroll.UpdateRatesRequest{Normal: file.Normal, Overtime: file.Overtime}
	if err := req.Validate(); err != nil {
		return payroll.RateTable{}, fmt.Errorf("invalid rates file: %w", err)
	}
	return req.RateTable(), nil
}
