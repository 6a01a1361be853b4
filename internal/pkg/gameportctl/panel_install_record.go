package gameportctl

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const (
	panelInstallRecordFile = "panel_install_record.json"
)

// PanelInstallRecord remembers what the last provisioning run configured.
// Re-runs use it to prefill answers the operator gave the first time.
type PanelInstallRecord struct {
	Host           string    `json:"host"`
	Port           int       `json:"port"`
	Path           string    `json:"path,omitempty"`
	ConfigPath     string    `json:"configPath,omitempty"`
	DatabaseClient string    `json:"databaseClient"`
	DatabaseHost   string    `json:"databaseHost,omitempty"`
	DatabaseName   string    `json:"databaseName,omitempty"`
	ProvisionedAt  time.Time `json:"provisionedAt"`
}

func SavePanelInstallRecord(_ context.Context, record PanelInstallRecord) error {
	b, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errors.WithMessage(err, "failed to marshal json")
	}

	dir, err := stateDirectory()
	if err != nil {
		return errors.WithMessage(err, "failed to get state directory")
	}

	err = os.WriteFile(
		filepath.Join(dir, panelInstallRecordFile),
		b,
		0600,
	)
	if err != nil {
		return errors.WithMessage(err, "failed to write file")
	}

	return nil
}

func LoadPanelInstallRecord(_ context.Context) (PanelInstallRecord, error) {
	var record PanelInstallRecord

	dir, err := stateDirectory()
	if err != nil {
		return record, errors.WithMessage(err, "failed to get state directory")
	}

	b, err := os.ReadFile(filepath.Join(dir, panelInstallRecordFile))
	if err != nil {
		return record, errors.WithMessage(err, "failed to read file")
	}

	err = json.Unmarshal(b, &record)
	if err != nil {
		return record, errors.WithMessage(err, "failed to unmarshal json")
	}

	return record, nil
}
