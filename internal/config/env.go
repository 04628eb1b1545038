package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/paymesh/paymesh-server/starknet"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config contains all configuration parameters for the relay.
// It is loaded once at startup and passed to constructors; nothing reads it globally.
type Config struct {
	Port string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	Env  string `envconfig:"ENV" default:"production" validate:"oneof=development production"`

	// Chain target. CHAIN_ID has no default on purpose: the operator must pick the network.
	RPCURL          string `envconfig:"RPC_URL" validate:"required,http_url"`
	ChainID         string `envconfig:"CHAIN_ID" validate:"required,oneof=SN_MAIN SN_SEPOLIA"`
	ContractAddress string `envconfig:"CONTRACT_ADDRESS" validate:"required,starknet_address"`

	// Signer. PUBLIC_KEY is the address of the account contract that signs.
	AccountAddress   string `envconfig:"PUBLIC_KEY" validate:"required,starknet_address"`
	PrivateKey       string `envconfig:"PRIVATE_KEY" validate:"omitempty,hexadecimal"`
	KeystoreFile     string `envconfig:"KEYSTORE_FILE" validate:"omitempty,endswith=.cwt"`
	KeystorePassword string `envconfig:"KEYSTORE_PASSWORD"`

	RPCTimeout    time.Duration `envconfig:"RPC_TIMEOUT" default:"30s" validate:"gt=0"`
	FeeMultiplier float64       `envconfig:"FEE_MULTIPLIER" default:"1.5" validate:"gte=1"`

	CORSEnabled    bool     `envconfig:"CORS_ENABLED" default:"true"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"https://paymesh.app" validate:"dive,http_url"`
	DevOrigin      string   `envconfig:"DEV_ORIGIN" default:"http://localhost:3000" validate:"omitempty,http_url"`

	LogLevel       string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	MetricsAddr    string `envconfig:"METRICS_ADDR" validate:"omitempty,hostname_port"`
	SwaggerEnabled bool   `envconfig:"SWAGGER_ENABLED" default:"false"`
}

// Load reads an optional .env file, then the environment, and validates the result.
// Any error here is a startup error: the caller should exit.
func Load() (*Config, error) {
	// .env is a development convenience; real deployments inject variables
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("starknet_address", func(fl validator.FieldLevel) bool {
		return starknet.IsValidAddress(fl.Field().String())
	})
	return v
}

// Validate checks field formats and cross-field rules
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.PrivateKey == "" && c.KeystoreFile == "" {
		return errors.New("invalid config: one of PRIVATE_KEY or KEYSTORE_FILE is required")
	}
	if c.PrivateKey != "" && c.KeystoreFile != "" {
		return errors.New("invalid config: PRIVATE_KEY and KEYSTORE_FILE are mutually exclusive")
	}
	return nil
}

// Addr returns the listen address on all interfaces
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Origins returns the CORS allow-list; the dev origin is only added in development
func (c *Config) Origins() []string {
	origins := append([]string{}, c.AllowedOrigins...)
	if c.Env == EnvDevelopment && c.DevOrigin != "" {
		origins = append(origins, c.DevOrigin)
	}
	return origins
}

// KeystorePasswordBytes returns the keystore password from config or,
// when unset, prompts for it on the terminal.
// Caller must zero the returned slice after use.
func (c *Config) KeystorePasswordBytes() ([]byte, error) {
	if c.KeystorePassword != "" {
		return []byte(c.KeystorePassword), nil
	}
	password, err := PromptForPassword("Enter keystore password: ")
	if errors.Is(err, ErrNotTerminal) {
		return nil, fmt.Errorf("%w: set KEYSTORE_PASSWORD to skip the prompt", err)
	}
	return password, err
}

// ErrNotTerminal is returned when a prompt is needed but stdin is not a terminal
var ErrNotTerminal = errors.New("stdin is not a terminal")

var isTerminal = term.IsTerminal

// PromptForPassword reads a password from the terminal without echoing it.
// Caller must zero the returned slice after use.
func PromptForPassword(prompt string) ([]byte, error) {
	if !isTerminal(int(os.Stdin.Fd())) {
		return nil, ErrNotTerminal
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	return raw, nil
}
