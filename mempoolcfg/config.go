// Package mempoolcfg holds the mempool's sanitized runtime configuration,
// loaded the way the teacher pool loads its txpool.Config: a struct with
// defaults, a Sanitize step that floors invalid fields and logs about it,
// and an optional viper-backed loader for a config file or environment.
package mempoolcfg

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/viper"

	"github.com/wolsani/warthog/types"
)

// Config bundles the mempool's tunables. The zero value is not valid; call
// Sanitize (New does this for you) before use.
type Config struct {
	// MaxSize bounds the number of live entries (spec.md §4.2's max_size).
	MaxSize int

	// MinPolicyFee is a node-operator fee floor, independent of capacity
	// pressure: min_fee() never reports less than it, even when the store has
	// free capacity, and OnConstraintUpdate evicts live entries below it.
	// Insert itself does not compare an incoming fee against it.
	MinPolicyFee types.CompactFee
}

// DefaultConfig mirrors spec.md's stated default of 10,000 live entries with
// no additional policy floor.
var DefaultConfig = Config{
	MaxSize:      10000,
	MinPolicyFee: types.CompactFeeZero,
}

// Sanitize returns a copy of c with invalid fields floored to their
// defaults, logging a warning for each field it had to correct — the same
// shape as the teacher pool's Config.sanitize.
func (c Config) Sanitize() Config {
	conf := c
	if conf.MaxSize <= 0 {
		log.Warn("Sanitizing invalid mempool config", "provided", conf.MaxSize, "updated", DefaultConfig.MaxSize)
		conf.MaxSize = DefaultConfig.MaxSize
	}
	return conf
}

// LoadConfig reads a mempool configuration from path (any format viper
// supports: YAML, TOML, JSON, ...), falling back to DefaultConfig for any
// key it does not set.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("maxsize", DefaultConfig.MaxSize)
	v.SetDefault("minpolicyfee", uint64(DefaultConfig.MinPolicyFee))

	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	cfg := Config{
		MaxSize:      v.GetInt("maxsize"),
		MinPolicyFee: types.CompactFee(v.GetUint64("minpolicyfee")),
	}
	return cfg.Sanitize(), nil
}
