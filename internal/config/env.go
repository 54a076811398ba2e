package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/AlexZinkM/cdp-wallet/internal/common"
	"github.com/AlexZinkM/cdp-wallet/internal/walleterr"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Agents are the logical identities sharing the managed account.
var Agents = []string{"PinchyMeow", "F0x"}

// Config contains all configuration parameters for the application.
// It is built once by Load and treated as read-only afterwards.
type Config struct {
	Network         string `envconfig:"NETWORK" default:"base"`
	RPCURL          string `envconfig:"RPC_URL"`
	APIKeyID        string `envconfig:"CDP_API_KEY_ID"`
	APIKeySecret    string `envconfig:"CDP_API_KEY_SECRET"`
	WalletSecret    string `envconfig:"CDP_WALLET_SECRET"`
	CDPURL          string `envconfig:"CDP_API_URL" default:"https://api.cdp.coinbase.com"`
	AddressFilePath string `envconfig:"CDP_ADDRESS_FILE" default:".cdp-wallet-address"`
	TransferMin     string `envconfig:"TRANSFER_MIN" default:"0.5"`
	TransferMax     string `envconfig:"TRANSFER_MAX" default:"5"`
	Agent           string `envconfig:"AGENT" default:"PinchyMeow"`
	PayCooldown     int    `envconfig:"PAY_COOLDOWN_MINUTES" default:"0"`
	TxLogDir        string `envconfig:"TX_LOG_DIR" default:"data"`
	Port            string `envconfig:"PORT" default:"8080"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile         string `envconfig:"LOG_FILE"`

	chain    Network
	minRaw   *big.Int
	maxRaw   *big.Int
	cooldown time.Duration
}

// Load reads an optional dotenv file and then the environment.
// Variables already present in the environment win over the file.
func Load() (*Config, error) {
	envFile := os.Getenv("CDP_ENV_FILE")
	if envFile == "" {
		envFile = ".env.cdp"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, walleterr.Wrap(walleterr.KindConfiguration, "failed to load "+envFile, err)
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, walleterr.Wrap(walleterr.KindConfiguration, "failed to process config", err)
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish validates raw values and derives the typed ones.
func (c *Config) finish() error {
	chain, err := LookupNetwork(c.Network)
	if err != nil {
		return walleterr.Wrap(walleterr.KindConfiguration, "invalid NETWORK", err)
	}
	c.chain = chain
	if c.RPCURL == "" {
		c.RPCURL = chain.RPCURL
	}

	if !isAgent(c.Agent) {
		return walleterr.Newf(walleterr.KindConfiguration, "unknown AGENT %q: use one of %s", c.Agent, strings.Join(Agents, ", "))
	}

	c.minRaw, err = common.ParseUnits(c.TransferMin, common.TokenDecimals)
	if err != nil {
		return walleterr.Wrap(walleterr.KindConfiguration, "invalid TRANSFER_MIN", err)
	}
	c.maxRaw, err = common.ParseUnits(c.TransferMax, common.TokenDecimals)
	if err != nil {
		return walleterr.Wrap(walleterr.KindConfiguration, "invalid TRANSFER_MAX", err)
	}
	cmp, err := common.CompareAmounts(c.TransferMin, c.TransferMax, common.TokenDecimals)
	if err != nil {
		return walleterr.Wrap(walleterr.KindConfiguration, "invalid transfer bounds", err)
	}
	if cmp > 0 {
		return walleterr.Newf(walleterr.KindConfiguration, "TRANSFER_MIN %s is greater than TRANSFER_MAX %s", c.TransferMin, c.TransferMax)
	}

	if c.PayCooldown < 0 {
		return walleterr.New(walleterr.KindConfiguration, "PAY_COOLDOWN_MINUTES cannot be negative")
	}
	c.cooldown = time.Duration(c.PayCooldown) * time.Minute
	return nil
}

// WithAgent returns a copy of the config bound to another logical identity.
func (c *Config) WithAgent(agent string) (*Config, error) {
	if !isAgent(agent) {
		return nil, walleterr.Newf(walleterr.KindConfiguration, "unknown agent %q: use one of %s", agent, strings.Join(Agents, ", "))
	}
	out := *c
	out.Agent = agent
	return &out, nil
}

// Chain returns the network constants selected by NETWORK.
func (c *Config) Chain() Network {
	return c.chain
}

// TransferBounds returns the inclusive token transfer range in raw units.
func (c *Config) TransferBounds() (min, max *big.Int) {
	return new(big.Int).Set(c.minRaw), new(big.Int).Set(c.maxRaw)
}

// Cooldown returns the minimum gap between transfers; zero disables it.
func (c *Config) Cooldown() time.Duration {
	return c.cooldown
}

// RequireCredentials fails when any custody credential is missing.
// Call it before any account creation or submission.
func (c *Config) RequireCredentials() error {
	var missing []string
	if c.APIKeyID == "" {
		missing = append(missing, "CDP_API_KEY_ID")
	}
	if c.APIKeySecret == "" {
		missing = append(missing, "CDP_API_KEY_SECRET")
	}
	if c.WalletSecret == "" {
		missing = append(missing, "CDP_WALLET_SECRET")
	}
	if len(missing) > 0 {
		return walleterr.Newf(walleterr.KindConfiguration, "missing CDP credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}

// HasCredentials reports whether all custody credentials are set.
func (c *Config) HasCredentials() bool {
	return c.RequireCredentials() == nil
}

func isAgent(name string) bool {
	for _, a := range Agents {
		if a == name {
			return true
		}
	}
	return false
}

// String describes the config without secrets.
func (c *Config) String() string {
	return fmt.Sprintf("network=%s rpc=%s agent=%s addressFile=%s range=[%s, %s]",
		c.Network, c.RPCURL, c.Agent, c.AddressFilePath, c.TransferMin, c.TransferMax)
}
