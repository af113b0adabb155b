// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config creates a keep configuration from various sources.
package config // import "keepfs.io/config"

import (
	"fmt"
	"io"
	"os"
	osuser "os/user"
	"path/filepath"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"keepfs.io/errors"
	"keepfs.io/keep"
)

// base implements keep.Config, returning default values for all operations.
type base struct{}

func (base) Store() string          { return defaultStore }
func (base) StoreOptions() []string { return nil }
func (base) CacheSize() int         { return 0 }
func (base) LogLevel() string       { return defaultLogLevel }

// New returns a config with all fields set as defaults.
func New() keep.Config {
	return base{}
}

const (
	defaultStore    = "inprocess"
	defaultLogLevel = "info"
)

// Known keys. All others are treated as errors.
const (
	store        = "store"
	storeoptions = "storeoptions"
	cachesize    = "cachesize"
	loglevel     = "loglevel"
)

// envPrefix is prepended to a key to name the environment variable
// that overrides it.
const envPrefix = "keep"

// FromFile initializes a config using the given file. If the file cannot
// be opened but the name can be found in $HOME/keep, that file is used.
func FromFile(name string) (keep.Config, error) {
	const op = "config.FromFile"
	f, err := os.Open(name)
	if err != nil && !filepath.IsAbs(name) && os.IsNotExist(err) {
		// It's a local name, so, try adding $HOME/keep
		home, errHome := Homedir()
		if errHome == nil {
			f, err = os.Open(filepath.Join(home, "keep", name))
		}
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.E(op, errors.NotExist, err)
		}
		return nil, errors.E(op, errors.IO, err)
	}
	defer f.Close()
	return InitConfig(f)
}

// InitConfig returns a config generated from a YAML configuration file
// and environment variables.
//
// A configuration file should be of the format
//
//	# lines that begin with a hash are ignored
//	key: value
//
// where key may be one of store, storeoptions, cachesize or loglevel.
// The storeoptions value is a list of key=value strings, or a single
// string of them separated by commas.
//
// If r is nil, only defaults and the environment are used.
//
// Environment variables named "keepkey", where "key" is a recognized
// configuration key, override configuration values in the config file.
//
// The default store is "inprocess", the default cache size is zero
// (no cache) and the default log level is "info".
func InitConfig(r io.Reader) (keep.Config, error) {
	const op = "config.InitConfig"
	vals := map[string]string{
		store:        defaultStore,
		storeoptions: "",
		cachesize:    "0",
		loglevel:     defaultLogLevel,
	}

	if r != nil {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.E(op, errors.IO, err)
		}
		if err := valsFromYAML(vals, data); err != nil {
			return nil, errors.E(op, err)
		}
	}
	valsFromEnvironment(vals)

	cfg := New()
	if vals[store] == "" {
		return nil, errors.E(op, errors.Invalid, errors.Str("empty store name"))
	}
	cfg = SetStore(cfg, vals[store])
	if opts := splitOptions(vals[storeoptions]); len(opts) > 0 {
		cfg = SetStoreOptions(cfg, opts)
	}
	n, err := strconv.Atoi(vals[cachesize])
	if err != nil || n < 0 {
		return nil, errors.E(op, errors.Invalid, errors.Errorf("invalid cachesize %q", vals[cachesize]))
	}
	cfg = SetCacheSize(cfg, n)
	cfg = SetLogLevel(cfg, vals[loglevel])
	return cfg, nil
}

// valsFromYAML parses YAML from the given map and puts the values
// into the provided map. Unrecognized keys generate an error.
func valsFromYAML(vals map[string]string, data []byte) error {
	newVals := map[string]interface{}{}
	if err := yaml.Unmarshal(data, newVals); err != nil {
		return errors.E(errors.Invalid, errors.Errorf("parsing YAML file: %v", err))
	}
	for k, v := range newVals {
		if _, ok := vals[k]; !ok {
			return errors.E(errors.Invalid, errors.Errorf("unrecognized key %q", k))
		}
		if k == storeoptions {
			if list, ok := v.([]interface{}); ok {
				var opts []string
				for _, item := range list {
					s, err := asString(item)
					if err != nil {
						return errors.E(errors.Invalid, errors.Errorf("%q: %v", k, err))
					}
					opts = append(opts, s)
				}
				vals[k] = strings.Join(opts, ",")
				continue
			}
		}
		s, err := asString(v)
		if err != nil {
			return errors.E(errors.Invalid, errors.Errorf("%q: %v", k, err))
		}
		vals[k] = s
	}
	return nil
}

// valsFromEnvironment replaces values in vals with those of any
// matching environment variables.
func valsFromEnvironment(vals map[string]string) {
	for k := range vals {
		if v, ok := os.LookupEnv(envPrefix + k); ok {
			vals[k] = v
		}
	}
}

// asString tries to convert a value back into its original string. This will not
// always be possible but should be for all our expected use cases.
func asString(v interface{}) (string, error) {
	switch vc := v.(type) {
	case int, int32, int64, uint, uint32, uint64, float32, float64, bool:
		return fmt.Sprintf("%v", vc), nil
	case string:
		return vc, nil
	}
	return "", errors.E(errors.Invalid, errors.Errorf("unrecognized value %T", v))
}

func splitOptions(s string) []string {
	var opts []string
	for _, opt := range strings.Split(s, ",") {
		if opt = strings.TrimSpace(opt); opt != "" {
			opts = append(opts, opt)
		}
	}
	return opts
}

type cfgStore struct {
	keep.Config
	store string
}

func (cfg cfgStore) Store() string {
	return cfg.store
}

// SetStore returns a config derived from the given config
// with the given store name.
func SetStore(cfg keep.Config, name string) keep.Config {
	return cfgStore{
		Config: cfg,
		store:  name,
	}
}

type cfgStoreOptions struct {
	keep.Config
	options []string
}

func (cfg cfgStoreOptions) StoreOptions() []string {
	return cfg.options
}

// SetStoreOptions returns a config derived from the given config
// with the given store options.
func SetStoreOptions(cfg keep.Config, options []string) keep.Config {
	return cfgStoreOptions{
		Config:  cfg,
		options: options,
	}
}

type cfgCacheSize struct {
	keep.Config
	size int
}

func (cfg cfgCacheSize) CacheSize() int {
	return cfg.size
}

// SetCacheSize returns a config derived from the given config
// with the given cache size.
func SetCacheSize(cfg keep.Config, n int) keep.Config {
	return cfgCacheSize{
		Config: cfg,
		size:   n,
	}
}

type cfgLogLevel struct {
	keep.Config
	level string
}

func (cfg cfgLogLevel) LogLevel() string {
	return cfg.level
}

// SetLogLevel returns a config derived from the given config
// with the given log level.
func SetLogLevel(cfg keep.Config, level string) keep.Config {
	return cfgLogLevel{
		Config: cfg,
		level:  level,
	}
}

// Homedir returns the home directory of the OS' logged-in user.
func Homedir() (string, error) {
	u, err := osuser.Current()
	// user.Current may return an error, but we should only handle it if it
	// returns a nil user. This is because os/user is wonky without cgo,
	// but it should work well enough for our purposes.
	if u == nil {
		e := errors.Str("lookup of current user failed")
		if err != nil {
			e = errors.Errorf("%v: %v", e, err)
		}
		return "", e
	}
	h := u.HomeDir
	if h == "" {
		return "", errors.E(errors.NotExist, errors.Str("user home directory not found"))
	}
	return h, nil
}
