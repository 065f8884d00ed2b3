// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/spf13/viper"

	"github.com/cayleygraph/ontoeval/eval"
	"github.com/cayleygraph/ontoeval/internal/load"
	"github.com/cayleygraph/ontoeval/internal/store"
)

// Config defines the behavior of ontoeval evaluators and servers.
type Config struct {
	Mode         eval.Mode
	Format       string
	TempDir      string
	CacheSize    int
	ListenHost   string
	Timeout      time.Duration
	AllowPaths   bool
	MaxBodyBytes int64
	StoreBackend string
	StorePath    string
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Mode:         eval.ModeElements,
		Format:       load.DefaultFormat,
		ListenHost:   "127.0.0.1:64211",
		Timeout:      30 * time.Second,
		MaxBodyBytes: 32 << 20,
	}
}

// Validate checks that the configured format can be decoded.
func (c *Config) Validate() error {
	if c.Format != "" {
		if f := quad.FormatByName(c.Format); f == nil || f.Reader == nil {
			return fmt.Errorf("%w %q", load.ErrUnknownFormat, c.Format)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("negative timeout %v", c.Timeout)
	}
	return nil
}

// Loader returns a document loader for this configuration.
func (c *Config) Loader() *load.Loader {
	return load.New(
		load.WithFormat(c.Format),
		load.WithTempDir(c.TempDir),
		load.WithCache(c.CacheSize),
	)
}

// OpenStore opens the configured evaluation store. It returns nil when no
// backend is configured.
func (c *Config) OpenStore() (*store.Store, error) {
	return store.Open(c.StoreBackend, c.StorePath)
}

// Evaluator returns an evaluator for this configuration.
func (c *Config) Evaluator() *eval.Evaluator {
	return eval.New(c.Loader(), eval.WithMode(c.Mode))
}

type config struct {
	Mode         string   `json:"mode"`
	Format       string   `json:"format"`
	Formats      []string `json:"formats"`
	Timeout      duration `json:"timeout"`
	AllowPaths   bool     `json:"allow_paths"`
	MaxBodyBytes int64    `json:"max_body"`
}

// MarshalJSON encodes the settings a client may need. Server-local settings
// (listen address, temp dir) are left out.
func (c *Config) MarshalJSON() ([]byte, error) {
	var formats []string
	for _, f := range quad.Formats() {
		if f.Reader != nil {
			formats = append(formats, f.Name)
		}
	}
	sort.Strings(formats)
	return json.Marshal(config{
		Mode:         c.Mode.String(),
		Format:       c.Format,
		Formats:      formats,
		Timeout:      duration(c.Timeout),
		AllowPaths:   c.AllowPaths,
		MaxBodyBytes: c.MaxBodyBytes,
	})
}

type fileConfig struct {
	Mode         string    `json:"mode"`
	Format       string    `json:"format"`
	TempDir      string    `json:"temp_dir"`
	CacheSize    *int      `json:"cache_size"`
	StoreBackend string    `json:"store_backend"`
	StorePath    string    `json:"store_path"`
	ListenHost   string    `json:"listen_host"`
	Timeout      *duration `json:"timeout"`
	AllowPaths   bool      `json:"allow_paths"`
	MaxBodyBytes *int64    `json:"max_body"`
}

// UnmarshalJSON reads a config file. Absent fields keep their defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	var t fileConfig
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	nc := Default()
	if t.Mode != "" {
		m, err := eval.ParseMode(t.Mode)
		if err != nil {
			return err
		}
		nc.Mode = m
	}
	if t.Format != "" {
		nc.Format = t.Format
	}
	if t.ListenHost != "" {
		nc.ListenHost = t.ListenHost
	}
	if t.Timeout != nil {
		nc.Timeout = time.Duration(*t.Timeout)
	}
	if t.MaxBodyBytes != nil {
		nc.MaxBodyBytes = *t.MaxBodyBytes
	}
	if t.CacheSize != nil {
		nc.CacheSize = *t.CacheSize
	}
	if t.StoreBackend != "" {
		nc.StoreBackend = t.StoreBackend
	}
	nc.StorePath = t.StorePath
	nc.TempDir = t.TempDir
	nc.AllowPaths = t.AllowPaths
	*c = *nc
	return nil
}

// duration is a time.Duration that satisfies the
// json.Unmarshaler and json.Marshaler interfaces.
type duration time.Duration

// UnmarshalJSON accepts either a time.Duration string ("30s") or a number
// of seconds.
func (d *duration) UnmarshalJSON(data []byte) error {
	text := string(data)
	if s, err := strconv.Unquote(text); err == nil {
		text = s
	}
	if t, err := time.ParseDuration(text); err == nil {
		*d = duration(t)
		return nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("invalid duration %s", data)
	}
	*d = duration(f * float64(time.Second))
	return nil
}

func (d duration) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", time.Duration(d))), nil
}

// Load reads a JSON-encoded config contained in the given file. The default
// config is returned if the filename is empty.
func Load(file string) (*Config, error) {
	config := Default()
	if file == "" {
		return config, nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("could not open config file %q: %v", file, err)
	}
	defer f.Close()

	if err = json.NewDecoder(f).Decode(config); err != nil {
		return nil, fmt.Errorf("could not parse config file %q: %v", file, err)
	}
	return config, config.Validate()
}

// Keys under which the configuration is stored in viper.
const (
	KeyMode       = "eval.mode"
	KeyFormat     = "load.format"
	KeyTempDir    = "load.temp_dir"
	KeyCacheSize  = "load.cache_size"
	KeyHost       = "http.host"
	KeyTimeout    = "http.timeout"
	KeyAllowPaths = "http.allow_paths"
	KeyMaxBody    = "http.max_body"

	KeyStoreBackend = "store.backend"
	KeyStorePath    = "store.path"
)

// SetDefaults registers the default configuration with v.
func SetDefaults(v *viper.Viper) {
	c := Default()
	v.SetDefault(KeyMode, c.Mode.String())
	v.SetDefault(KeyFormat, c.Format)
	v.SetDefault(KeyTempDir, c.TempDir)
	v.SetDefault(KeyCacheSize, c.CacheSize)
	v.SetDefault(KeyHost, c.ListenHost)
	v.SetDefault(KeyTimeout, c.Timeout)
	v.SetDefault(KeyAllowPaths, c.AllowPaths)
	v.SetDefault(KeyMaxBody, c.MaxBodyBytes)
	v.SetDefault(KeyStoreBackend, c.StoreBackend)
}

// FromViper builds a validated configuration from the keys set in v.
func FromViper(v *viper.Viper) (*Config, error) {
	c := Default()
	if s := v.GetString(KeyMode); s != "" {
		m, err := eval.ParseMode(s)
		if err != nil {
			return nil, err
		}
		c.Mode = m
	}
	if s := v.GetString(KeyFormat); s != "" {
		c.Format = s
	}
	if s := v.GetString(KeyHost); s != "" {
		c.ListenHost = s
	}
	if v.IsSet(KeyTimeout) {
		c.Timeout = v.GetDuration(KeyTimeout)
	}
	if v.IsSet(KeyMaxBody) {
		c.MaxBodyBytes = v.GetInt64(KeyMaxBody)
	}
	if v.IsSet(KeyCacheSize) {
		c.CacheSize = v.GetInt(KeyCacheSize)
	}
	if s := v.GetString(KeyStoreBackend); s != "" {
		c.StoreBackend = s
	}
	c.StorePath = v.GetString(KeyStorePath)
	c.TempDir = v.GetString(KeyTempDir)
	c.AllowPaths = v.GetBool(KeyAllowPaths)
	return c, c.Validate()
}
