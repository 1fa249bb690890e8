package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BartekS5/RCV/internal/config"
	"github.com/BartekS5/RCV/internal/dataset"
	"github.com/BartekS5/RCV/internal/document"
	"github.com/BartekS5/RCV/internal/llm"
	"github.com/BartekS5/RCV/internal/rules"
	"github.com/BartekS5/RCV/internal/validation"
	"github.com/BartekS5/RCV/pkg/database"
	"github.com/BartekS5/RCV/pkg/logger"
	"github.com/BartekS5/RCV/pkg/models"
)

func runValidation(ctx context.Context, opts *ValidateOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Sync()

	// 1. Extract rule text
	text, err := document.Extract(opts.RulesDoc)
	if err != nil {
		return err
	}
	logger.Infof("Extracted %d characters of rule text from %s", len(text), opts.RulesDoc)

	// 2. Load dataset
	source, cleanup, err := newSource(opts, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	table, err := source.Load()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	logger.Infof("Loaded %d row(s), %d column(s)", table.Len(), len(table.Columns))

	// 3. Parse rules
	completer, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return err
	}
	defer completer.Close()

	parsed, err := rules.NewParser(completer).Parse(ctx, text)
	if err != nil {
		return fmt.Errorf("rule parsing failed: %w", err)
	}
	if len(parsed) == 0 {
		logger.Warnf("No usable rules parsed from %s; nothing to validate", opts.RulesDoc)
		return nil
	}
	logger.Infof("Parsed %d rule(s)", len(parsed))

	// 4. Aggregate, map fields against the full column set, validate.
	// Aggregating first lets rules on the derived columns resolve too.
	validation.Aggregate(table, opts.GroupKey, opts.AmountColumn)

	mapped := rules.MapFields(parsed, table.Columns, opts.Threshold)

	start := time.Now()
	results, err := validation.NewBatchValidator(completer, opts.BatchSize).Validate(ctx, table, mapped)
	if err != nil {
		return err
	}
	logger.Infof("Validated %d row(s) in %v", len(results), time.Since(start))

	// 5. Report
	records := validation.BuildViolationRecords(results, table)
	validation.NewConsoleReporter().Report(records)

	if opts.Store {
		if err := storeViolations(ctx, cfg, records); err != nil {
			logger.Errorf("Failed to store violation records: %v", err)
		}
	}
	return nil
}

func newSource(opts *ValidateOptions, cfg *config.Config) (dataset.Source, func(), error) {
	noop := func() {}

	switch opts.Source {
	case "sql":
		if opts.SQLTable == "" {
			return nil, noop, errors.New("--table is required with --source sql")
		}
		if cfg.SQLConnString == "" {
			return nil, noop, errors.New("SQL_CONNECTION_STRING environment variable not set")
		}
		db, err := database.ConnectSQL(cfg.SQLConnString)
		if err != nil {
			return nil, noop, err
		}
		src := &dataset.SQLSource{DB: db, Table: opts.SQLTable, OrderBy: opts.SQLOrderBy}
		return src, func() { db.Close() }, nil

	case "file":
		if opts.DatasetPath == "" {
			return nil, noop, errors.New("--dataset is required")
		}
		switch strings.ToLower(filepath.Ext(opts.DatasetPath)) {
		case ".xlsx", ".xlsm":
			return &dataset.XLSXSource{Path: opts.DatasetPath}, noop, nil
		default:
			return &dataset.CSVSource{Path: opts.DatasetPath}, noop, nil
		}

	default:
		return nil, noop, fmt.Errorf("unknown dataset source %q", opts.Source)
	}
}

func storeViolations(ctx context.Context, cfg *config.Config, records []models.ViolationRecord) error {
	if cfg.MongoConnString == "" {
		return errors.New("MONGO_CONNECTION_STRING environment variable not set")
	}

	client, err := database.ConnectMongo(cfg.MongoConnString)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	return validation.NewMongoSink(client).Write(records)
}
