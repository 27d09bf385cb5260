package domain

import "github.com/shopspring/decimal"

// CardRate holds the per-network commission rates applied when a bond arrives
// without an observed commission.
type CardRate struct {
	Check  decimal.Decimal `json:"check"`
	Credit decimal.Decimal `json:"credit"`
}

// NetworkConfig is the per-user settlement configuration for one card
// network.
type NetworkConfig struct {
	Network                CardNetwork     `json:"network"`
	RequiredSettlementDays int             `json:"requiredSettlementDays"`
	Mode                   BusinessDayMode `json:"mode"`
	Rate                   CardRate        `json:"rate"`
}

// DefaultNetworkConfig is what applies when a user has no row for a network:
// one settlement day, strict business-day mode, zero rates.
func DefaultNetworkConfig(network CardNetwork) NetworkConfig {
	return NetworkConfig{
		Network:                network,
		RequiredSettlementDays: 1,
		Mode:                   ModeStrictBusinessDays,
		Rate:                   CardRate{Check: decimal.Zero, Credit: decimal.Zero},
	}
}

// NetworkConfigStore resolves per-network configuration for a single user
// run, falling back to defaults for unconfigured networks.
type NetworkConfigStore struct {
	configs map[CardNetwork]NetworkConfig
}

// NewNetworkConfigStore builds a store from the configured rows.
func NewNetworkConfigStore(configs []NetworkConfig) *NetworkConfigStore {
	m := make(map[CardNetwork]NetworkConfig, len(configs))
	for _, cfg := range configs {
		m[cfg.Network] = cfg
	}
	return &NetworkConfigStore{configs: m}
}

// Get returns the configuration for a network, defaulting when unconfigured.
func (s *NetworkConfigStore) Get(network CardNetwork) NetworkConfig {
	if cfg, ok := s.configs[network]; ok {
		return cfg
	}
	return DefaultNetworkConfig(network)
}
