// Package config defines the data structures of a plan file and includes
// functions for loading and checking it.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/plan-pricing/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for a batch pricing run.
type Configuration struct {
	Plans   []Plan
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty"`   // pretty, csv
	Language string `yaml:"language,omitempty"` // en, ar
	Currency string `yaml:"currency,omitempty"` // code printed before amounts
}

// Plan is one named proposal to price.
type Plan struct {
	Name    string
	Active  bool
	Mode    string
	StdPlan StandardPlan
	Inputs  Inputs
}

// StandardPlan is the benchmark the proposal is priced against.
type StandardPlan struct {
	TotalPrice            float64
	FinancialDiscountRate float64 // annual percent
	CalculatedPV          float64
}

// Inputs describes the proposed payment structure.
type Inputs struct {
	SalesDiscountPercent      float64
	DpType                    string // amount, percentage
	DownPaymentValue          float64
	PlanDurationYears         int
	InstallmentFrequency      string
	AdditionalHandoverPayment float64
	HandoverYear              int
	SplitFirstYearPayments    bool
	FirstYearPayments         []FirstYearPayment
	SubsequentYears           []SubsequentYear
}

// FirstYearPayment is one itemized payment of a split first year.
type FirstYearPayment struct {
	Amount float64
	Month  int
	Type   string // downPayment (or dp), regular
}

// SubsequentYear is a custom year paid in equal pieces.
type SubsequentYear struct {
	TotalNominal float64
	Frequency    string
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ActivePlans returns the plans marked active, in file order.
func (c *Configuration) ActivePlans() []Plan {
	var active []Plan
	for _, plan := range c.Plans {
		if plan.Active {
			active = append(active, plan)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var plans []validation.PlanConfig
	for _, plan := range c.Plans {
		months := make([]int, 0, len(plan.Inputs.FirstYearPayments))
		for _, p := range plan.Inputs.FirstYearPayments {
			months = append(months, p.Month)
		}
		frequencies := make([]string, 0, len(plan.Inputs.SubsequentYears))
		for _, y := range plan.Inputs.SubsequentYears {
			frequencies = append(frequencies, y.Frequency)
		}

		plans = append(plans, validation.PlanConfig{
			Name:                   plan.Name,
			Active:                 plan.Active,
			Mode:                   plan.Mode,
			PlanDurationYears:      plan.Inputs.PlanDurationYears,
			InstallmentFrequency:   plan.Inputs.InstallmentFrequency,
			DpType:                 plan.Inputs.DpType,
			DownPaymentValue:       plan.Inputs.DownPaymentValue,
			HandoverYear:           plan.Inputs.HandoverYear,
			HandoverPayment:        plan.Inputs.AdditionalHandoverPayment,
			SplitFirstYearPayments: plan.Inputs.SplitFirstYearPayments,
			FirstYearMonths:        months,
			CustomYearFrequencies:  frequencies,
		})
	}

	validator := validation.ConfigValidator{Plans: plans}
	return validator.ValidateAll()
}
