package cli

import (
	"bytes"
	"context"
	"errors"

	"github.com/saifahn/dendron/internal/core/domain"
	"github.com/saifahn/dendron/internal/core/ports/driving"
)

// mockExporter returns a fixed result and records its input.
type mockExporter struct {
	result *domain.AggregateResult
	docs   []domain.Document
}

func (m *mockExporter) ExportMany(_ context.Context, docs []domain.Document) *domain.AggregateResult {
	m.docs = docs
	return m.result
}

func (m *mockExporter) ExportOne(ctx context.Context, doc domain.Document) *domain.AggregateResult {
	return m.ExportMany(ctx, []domain.Document{doc})
}

func (m *mockExporter) ConfigSchema() []domain.ConfigKey {
	return nil
}

type mockLoader struct {
	docs  []domain.Document
	err   error
	paths []string
}

func (m *mockLoader) Load(_ context.Context, paths ...string) ([]domain.Document, error) {
	m.paths = paths
	return m.docs, m.err
}

type mockHistory struct {
	runs    []domain.ExportRun
	records map[string][]domain.ExportRecord
	remote  map[string]string
}

func (m *mockHistory) Runs(_ context.Context) ([]domain.ExportRun, error) {
	return m.runs, nil
}

func (m *mockHistory) Records(_ context.Context, runID string) ([]domain.ExportRecord, error) {
	records, ok := m.records[runID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return records, nil
}

func (m *mockHistory) RemoteID(_ context.Context, documentID string) (string, error) {
	id, ok := m.remote[documentID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return id, nil
}

type mockSettings struct {
	values map[string]string
}

func (m *mockSettings) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockSettings) Set(key, value string) error {
	if key == "bad" {
		return errors.New("unknown setting")
	}
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

func (m *mockSettings) Schema() []domain.ConfigKey {
	return []domain.ConfigKey{
		{Key: "parent_page_id", Type: domain.ConfigString, Required: true, Description: "Parent page"},
		{Key: "burst", Type: domain.ConfigInt, Default: "1", Description: "Burst size"},
	}
}

// setupServices installs services for a test and returns a cleanup func.
func setupServices(s Services) func() {
	oldFactory, oldLoader, oldHistory, oldSettings := exporterFactory, noteLoader, historyService, settingsService
	SetServices(s)
	return func() {
		exporterFactory, noteLoader, historyService, settingsService = oldFactory, oldLoader, oldHistory, oldSettings
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(args ...string) (stdout, stderr string, err error) {
	exportParentPage, exportConnection, exportRate, exportBurst = "", "", "", ""
	historyJSON = false

	outBuf, errBuf := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func factoryFor(e driving.Exporter, captured *map[string]string) driving.ExporterFactory {
	return func(overrides map[string]string) (driving.Exporter, error) {
		if captured != nil {
			*captured = overrides
		}
		return e, nil
	}
}
