package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			DownloadDir string   `json:"download_dir"`
			FileTTL     Duration `json:"file_ttl"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress           string   `json:"http_address"`
		RequestTimeout        Duration `json:"request_timeout"`
		MaxConcurrentRequests int      `json:"max_concurrent_requests"`
		StaticDir             string   `json:"static_dir"`
	} `json:"server,omitempty"`

	Downloader struct {
		Binary            string   `json:"binary"`
		FFmpegLocation    string   `json:"ffmpeg_location"`
		FFmpegBinary      string   `json:"ffmpeg_binary"`
		Format            string   `json:"format"`
		MergeOutputFormat string   `json:"merge_output_format"`
		SocketTimeout     Duration `json:"socket_timeout"`
		Retries           int      `json:"retries"`
		UserAgent         string   `json:"user_agent"`
		Timeout           Duration `json:"timeout"`
	} `json:"downloader,omitempty"`

	Workers struct {
		Downloaders     int      `json:"downloaders"`
		QueueSize       int      `json:"queue_size"`
		CleanupInterval Duration `json:"cleanup_interval"`
		TaskRetention   Duration `json:"task_retention"`
	} `json:"workers,omitempty"`
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
			Version: jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				DownloadDir: jsonCfg.Storage.Files.DownloadDir,
				FileTTL:     time.Duration(jsonCfg.Storage.Files.FileTTL),
			},
		},
		Server: Server{
			HTTPAddress:           jsonCfg.Server.HTTPAddress,
			RequestTimeout:        time.Duration(jsonCfg.Server.RequestTimeout),
			MaxConcurrentRequests: jsonCfg.Server.MaxConcurrentRequests,
			StaticDir:             jsonCfg.Server.StaticDir,
		},
		Downloader: Downloader{
			Binary:            jsonCfg.Downloader.Binary,
			FFmpegLocation:    jsonCfg.Downloader.FFmpegLocation,
			FFmpegBinary:      jsonCfg.Downloader.FFmpegBinary,
			Format:            jsonCfg.Downloader.Format,
			MergeOutputFormat: jsonCfg.Downloader.MergeOutputFormat,
			SocketTimeout:     time.Duration(jsonCfg.Downloader.SocketTimeout),
			Retries:           jsonCfg.Downloader.Retries,
			UserAgent:         jsonCfg.Downloader.UserAgent,
			Timeout:           time.Duration(jsonCfg.Downloader.Timeout),
		},
		Workers: Workers{
			Downloaders:     jsonCfg.Workers.Downloaders,
			QueueSize:       jsonCfg.Workers.QueueSize,
			CleanupInterval: time.Duration(jsonCfg.Workers.CleanupInterval),
			TaskRetention:   time.Duration(jsonCfg.Workers.TaskRetention),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
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
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
