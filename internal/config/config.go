// Package config loads the evminspect configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/node"
)

// FileName is the config file looked up in the data directory.
const FileName = "evminspect.json"

// Config represents configuration for the evminspect tool
type Config struct {
	Debug   bool   `json:"debug,omitempty" jsonschema:"title=Debug,description=Enable debug logging"`
	DataDir string `json:"dataDir,omitempty" jsonschema:"title=Data Directory,description=Directory for listings and the memory store"`
	Store   string `json:"store,omitempty" jsonschema:"title=Memory Store,description=Path of the leveldb memory store (default <dataDir>/memory)"`
	RPC     string `json:"rpc,omitempty" jsonschema:"title=RPC Endpoint,description=JSON-RPC endpoint used to fetch contract code"`
	Opcodes string `json:"opcodes,omitempty" jsonschema:"title=Opcode Table,description=JSON opcode table replacing the built-in EVM table"`
}

// Default returns the configuration used when no file exists. The data
// directory is the one the Ethereum clients use.
func Default() Config {
	return Config{DataDir: node.DefaultDataDir()}
}

// StorePath returns the memory store location.
func (c Config) StorePath() string {
	if c.Store != "" {
		return c.Store
	}
	return filepath.Join(c.DataDir, "memory")
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = node.DefaultDataDir()
	}
	return cfg, nil
}
