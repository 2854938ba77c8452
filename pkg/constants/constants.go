// Package constants provides shared constants for the plan-pricing application.
package constants

// Calendar constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyDecimalPlaces is the number of decimal places kept for money
	CurrencyDecimalPlaces = 2

	// DateLayout is the contract and due date format (YYYY-MM-DD)
	DateLayout = "2006-01-02"

	// MaxPlanDurationYears bounds plan durations and handover years
	MaxPlanDurationYears = 100
)

// Numeric tolerances used by the pricing engine
const (
	// SolverTolerance is the band around zero inside which a nominal remainder
	// or a PV shortfall is treated as exactly zero.
	SolverTolerance = 1e-9

	// FactorTolerance is the smallest annuity factor or denominator the
	// solvers will divide by.
	FactorTolerance = 1e-12

	// PVMatchTolerance is the absolute tolerance for a solved plan's present
	// value to count as matching its target.
	PVMatchTolerance = 1e-3

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default plan configuration file name
	DefaultConfigFile = "plans.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "plans.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum JSON request body size (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024

	// DefaultServiceName identifies the service in traces and logs
	DefaultServiceName = "plan-pricing"
)

// Cache defaults
const (
	// CacheTypeNone disables result caching
	CacheTypeNone = "none"

	// CacheTypeMemory keeps results in process
	CacheTypeMemory = "memory"

	// CacheTypeRedis keeps results in Redis
	CacheTypeRedis = "redis"

	// DefaultCacheTTLSeconds is how long a cached plan result stays valid
	DefaultCacheTTLSeconds = 15 * 60
)

// Language constants for written amounts
const (
	// LanguageEnglish is the default language for written amounts
	LanguageEnglish = "en"

	// LanguageArabic selects Arabic written amounts
	LanguageArabic = "ar"
)
