package config

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

// Duration parses "15m"-style strings from yaml.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Server       Server       `yaml:"server"`
	Auth         Auth         `yaml:"auth"`
	Ledger       Ledger       `yaml:"ledger"`
	Privacy      Privacy      `yaml:"privacy"`
	Certificates Certificates `yaml:"certificates"`
	RateLimit    RateLimit    `yaml:"rateLimit"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
	Production    bool   `yaml:"production"`
}

type Auth struct {
	JWTSecret  string   `yaml:"jwtSecret"`
	AccessTTL  Duration `yaml:"accessTTL"`
	RefreshTTL Duration `yaml:"refreshTTL"`
}

type Ledger struct {
	AlgodToken       string `yaml:"algodToken"`
	AlgodServer      string `yaml:"algodServer"`
	IndexerToken     string `yaml:"indexerToken"`
	IndexerServer    string `yaml:"indexerServer"`
	DeployerMnemonic string `yaml:"deployerMnemonic"`
	ReputationAppID  uint64 `yaml:"reputationAppId"`
	RewardAssetID    uint64 `yaml:"rewardAssetId"`
	ExplorerBase     string `yaml:"explorerBase"`
	TealDir          string `yaml:"tealDir"`
	WaitRounds       uint64 `yaml:"waitRounds"`
}

type Privacy struct {
	HashSalt string `yaml:"hashSalt"`
}

type Certificates struct {
	// AttendanceThreshold is the number of CONFIRMED attendance rows required
	// before a certificate may be issued.
	AttendanceThreshold int `yaml:"attendanceThreshold"`
}

type RateLimit struct {
	Window Duration `yaml:"window"`
	Max    int      `yaml:"max"`
}

// Load reads the yaml config and applies env overrides for secrets so they
// can stay out of the file.
func Load(path string) (Config, error) {
	var config Config

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if v := os.Getenv("CCMS_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("CCMS_DEPLOYER_MNEMONIC"); v != "" {
		config.Ledger.DeployerMnemonic = v
	}
	if v := os.Getenv("CCMS_HASH_SALT"); v != "" {
		config.Privacy.HashSalt = v
	}

	config.applyDefaults()

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8000"
	}
	if c.Server.RedisAddr == "" {
		c.Server.RedisAddr = "localhost:6379"
	}
	if c.Auth.AccessTTL == 0 {
		c.Auth.AccessTTL = Duration(15 * time.Minute)
	}
	if c.Auth.RefreshTTL == 0 {
		c.Auth.RefreshTTL = Duration(7 * 24 * time.Hour)
	}
	if c.Ledger.AlgodServer == "" {
		c.Ledger.AlgodServer = "https://testnet-api.algonode.cloud"
	}
	if c.Ledger.IndexerServer == "" {
		c.Ledger.IndexerServer = "https://testnet-idx.algonode.cloud"
	}
	if c.Ledger.ExplorerBase == "" {
		c.Ledger.ExplorerBase = "https://testnet.explorer.perawallet.app"
	}
	if c.Ledger.WaitRounds == 0 {
		c.Ledger.WaitRounds = 10
	}
	if c.Certificates.AttendanceThreshold == 0 {
		c.Certificates.AttendanceThreshold = 1
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = Duration(15 * time.Minute)
	}
	if c.RateLimit.Max == 0 {
		c.RateLimit.Max = 100
	}
}
