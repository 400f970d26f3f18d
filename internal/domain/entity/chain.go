package entity

// ChainDefinition describes a chain as identified by DEX Screener.
type ChainDefinition struct {
	Identifier       string `json:"identifier" yaml:"identifier"` // DEX Screener chainId, e.g. "base"
	Name             string `json:"name" yaml:"name"`
	EVM              bool   `json:"evm" yaml:"evm"`
	EVMChainID       uint64 `json:"evmChainId,omitempty" yaml:"evmChainId,omitempty"`
	BlockExplorerURL string `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}
