package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/mikeandholly/wedding-api/utils"
)

// BackupService exports collections as extended-JSON line files into a
// timestamped directory. Scheduled every 4 hours; also reachable through
// the admin backup endpoint.
type BackupService struct {
	db          *mongo.Database
	dir         string
	collections []string
}

// NewBackupService reads BACKUP_DIR and the optional BACKUP_COLLECTIONS
// subset (comma separated; empty exports everything).
func NewBackupService(db *mongo.Database) *BackupService {
	dir := os.Getenv("BACKUP_DIR")
	if dir == "" {
		dir = "backups"
	}
	var collections []string
	if subset := os.Getenv("BACKUP_COLLECTIONS"); subset != "" {
		for _, name := range strings.Split(subset, ",") {
			if name = strings.TrimSpace(name); name != "" {
				collections = append(collections, name)
			}
		}
	}
	return &BackupService{db: db, dir: dir, collections: collections}
}

// Run exports the configured collections and returns the operation name
// (the backup directory). On failure the partial directory is left behind
// for inspection; there is no retry.
func (s *BackupService) Run(ctx context.Context) (string, error) {
	collections := s.collections
	if len(collections) == 0 {
		var err error
		collections, err = s.db.ListCollectionNames(ctx, bson.M{})
		if err != nil {
			return "", fmt.Errorf("failed to list collections: %w", err)
		}
	}

	opName := filepath.Join(s.dir, time.Now().UTC().Format("2006-01-02T150405Z"))
	if err := os.MkdirAll(opName, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	for _, name := range collections {
		if err := s.exportCollection(ctx, name, opName); err != nil {
			return "", err
		}
	}

	utils.Logger.Infof("Operation Name: %s", opName)
	return opName, nil
}

func (s *BackupService) exportCollection(ctx context.Context, name, dir string) error {
	cursor, err := s.db.Collection(name).Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to read collection %s: %w", name, err)
	}
	defer cursor.Close(ctx)

	f, err := os.Create(filepath.Join(dir, name+".ndjson"))
	if err != nil {
		return fmt.Errorf("failed to create export file for %s: %w", name, err)
	}
	defer f.Close()

	count := 0
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return fmt.Errorf("failed to decode %s document: %w", name, err)
		}
		line, err := bson.MarshalExtJSON(doc, false, false)
		if err != nil {
			return fmt.Errorf("failed to marshal %s document: %w", name, err)
		}
		if _, err := f.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("failed to write export file for %s: %w", name, err)
		}
		count++
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("failed to iterate collection %s: %w", name, err)
	}

	utils.Logger.Debugf("Exported %d documents from %s", count, name)
	return nil
}
