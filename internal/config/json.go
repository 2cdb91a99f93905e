package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// configuration file. Durations accept strings such as "30s".
type StructuredJSONConfig struct {
	App struct {
		Name         string `json:"name"`
		Version      string `json:"version"`
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
	} `json:"app,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			URL  string   `json:"url"`
			Pool JSONPool `json:"pool"`
		} `json:"db,omitempty"`

		Redis struct {
			URL  string   `json:"url"`
			Pool JSONPool `json:"pool"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Log struct {
		Level  string `json:"level"`
		Format string `json:"format"`
	} `json:"log,omitempty"`

	Workers struct {
		HealthProbeInterval Duration `json:"health_probe_interval"`
	} `json:"workers,omitempty"`

	Upstream struct {
		Name       string   `json:"name"`
		URL        string   `json:"url"`
		HealthPath string   `json:"health_path"`
		Timeout    Duration `json:"timeout"`
	} `json:"upstream,omitempty"`
}

// JSONPool is the JSON form of [Pool].
type JSONPool struct {
	MaxSize           int      `json:"max_size"`
	MinIdle           int      `json:"min_idle"`
	MaxLifetime       Duration `json:"max_lifetime"`
	IdleTimeout       Duration `json:"idle_timeout"`
	ConnectionTimeout Duration `json:"connection_timeout"`
}

func (p JSONPool) toPool() Pool {
	return Pool{
		MaxSize:           p.MaxSize,
		MinIdle:           p.MinIdle,
		MaxLifetime:       time.Duration(p.MaxLifetime),
		IdleTimeout:       time.Duration(p.IdleTimeout),
		ConnectionTimeout: time.Duration(p.ConnectionTimeout),
	}
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Name:         jsonCfg.App.Name,
			Version:      jsonCfg.App.Version,
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Storage: Storage{
			DB: DB{
				URL:  jsonCfg.Storage.DB.URL,
				Pool: jsonCfg.Storage.DB.Pool.toPool(),
			},
			Redis: Redis{
				URL:  jsonCfg.Storage.Redis.URL,
				Pool: jsonCfg.Storage.Redis.Pool.toPool(),
			},
		},
		Log: Log{
			Level:  jsonCfg.Log.Level,
			Format: jsonCfg.Log.Format,
		},
		Workers: Workers{
			HealthProbeInterval: time.Duration(jsonCfg.Workers.HealthProbeInterval),
		},
		Upstream: Upstream{
			Name:       jsonCfg.Upstream.Name,
			URL:        jsonCfg.Upstream.URL,
			HealthPath: jsonCfg.Upstream.HealthPath,
			Timeout:    time.Duration(jsonCfg.Upstream.Timeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
