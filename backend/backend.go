// Package backend opens the persistence slot selected by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	log "github.com/sirupsen/logrus"

	"timeline/config"
	"timeline/model"
	"timeline/model/awsdynamo"
	"timeline/model/boltdb"
	"timeline/model/file"
	"timeline/model/memory"
	"timeline/model/sqlite"
)

var defaultPaths = map[string]string{
	"file":   "timeline.json",
	"bolt":   "timeline.db",
	"sqlite": "timeline.sqlite",
}

func noopClose() error { return nil }

// Open returns the slot for cfg.Backend and a function releasing it.
func Open(ctx context.Context, cfg config.Config) (model.Slot, func() error, error) {
	path := cfg.DataPath
	if path == "" {
		path = defaultPaths[cfg.Backend]
	}
	switch cfg.Backend {
	case "memory":
		log.Warn("Using in-memory slot, the timeline is lost on exit")
		return memory.New(), noopClose, nil
	case "file":
		s, err := file.New(path)
		if err != nil {
			return nil, nil, err
		}
		return s, noopClose, nil
	case "bolt":
		s, err := boltdb.Open(path, cfg.SlotKey)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "sqlite":
		s, err := sqlite.Open(path, cfg.SlotKey)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "dynamodb":
		s, err := openDynamo(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return s, noopClose, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

func openDynamo(ctx context.Context, cfg config.Config) (*awsdynamo.DynamoSlot, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.DynamoRegion),
	}
	if cfg.DynamoEndpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.DynamoEndpoint)
	}
	if cfg.AWSProfile != "" {
		awsCfg.Credentials = credentials.NewSharedCredentials("", cfg.AWSProfile)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	slot := awsdynamo.NewSlotFromSession(sess, cfg.DynamoTable, cfg.SlotKey)
	if err := slot.EnsureTable(ctx); err != nil {
		return nil, fmt.Errorf("ensure dynamodb table: %w", err)
	}
	return slot, nil
}
