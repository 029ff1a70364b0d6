package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Profile selects the ledger and receipt layout. The stregsystem MyShop
// number splits payments into voucher credit and registration fees; any
// other number is plain sales.
type Profile string

const (
	ProfileSales       Profile = "sales"
	ProfileStregsystem Profile = "stregsystem"
)

// Config represents the top-level mpdinero.yaml configuration.
type Config struct {
	Organization OrganizationConfig `yaml:"organization"`
	MyShop       MyShopConfig       `yaml:"myshop"`
	Dinero       DineroAccounts     `yaml:"dinero"`
	Registration RegistrationConfig `yaml:"registration"`
}

// OrganizationConfig is the letterhead printed on every receipt.
type OrganizationConfig struct {
	Name    string `yaml:"name"`
	CVR     string `yaml:"cvr"`
	Website string `yaml:"website"`
}

// MyShopConfig identifies the MobilePay MyShop being converted.
type MyShopConfig struct {
	Number  string  `yaml:"number"`
	Profile Profile `yaml:"profile"`
	Title   string  `yaml:"title"` // receipt heading
}

// DineroAccounts maps batch lines to Dinero account numbers.
type DineroAccounts struct {
	Bank    string `yaml:"bank"`
	Sales   string `yaml:"sales"`
	Fees    string `yaml:"fees"`
	Voucher string `yaml:"voucher"`
}

// RegistrationConfig controls membership-registration detection.
type RegistrationConfig struct {
	Fee             decimal.Decimal `yaml:"fee"`
	MaxEditDistance int             `yaml:"max_edit_distance"`
}

// Load reads an mpdinero.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the F-klubben configuration the tool ships with.
func Default() *Config {
	return &Config{
		Organization: OrganizationConfig{
			Name:    "F-Klubben - Institut for Datalogi",
			CVR:     "16427888",
			Website: "https://fklub.dk/",
		},
		MyShop: MyShopConfig{
			Number:  "90601",
			Profile: ProfileStregsystem,
			Title:   "MobilePay-indbetalinger, stregsystemet",
		},
		Dinero: DineroAccounts{
			Bank:    "55000",
			Sales:   "1000",
			Fees:    "7220",
			Voucher: "63080",
		},
		Registration: RegistrationConfig{
			Fee:             decimal.NewFromInt(200),
			MaxEditDistance: 3,
		},
	}
}

func (c *Config) validate() error {
	switch c.MyShop.Profile {
	case ProfileSales, ProfileStregsystem:
	default:
		return fmt.Errorf("unknown profile %q", c.MyShop.Profile)
	}
	if c.MyShop.Number == "" {
		return fmt.Errorf("myshop.number is required")
	}
	for name, acct := range map[string]string{
		"dinero.bank":  c.Dinero.Bank,
		"dinero.sales": c.Dinero.Sales,
		"dinero.fees":  c.Dinero.Fees,
	} {
		if acct == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	return nil
}
