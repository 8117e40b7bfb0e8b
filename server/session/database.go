// Copyright 2025 The Go STF Authors.
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
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DefaultTableName is the table used for session items unless overridden.
const DefaultTableName = "session_items"

// DatabaseStore is a database implementation of Store using GORM.
type DatabaseStore struct {
	db          *gorm.DB
	tableName   string
	createTable bool
}

var _ Store = (*DatabaseStore)(nil)

// DatabaseStoreConfig holds configuration for DatabaseStore.
type DatabaseStoreConfig struct {
	DB          *gorm.DB
	TableName   string // Optional, defaults to DefaultTableName
	CreateTable bool   // Whether to create the table if it doesn't exist
}

// NewDatabaseStore creates a new DatabaseStore.
func NewDatabaseStore(config DatabaseStoreConfig) (*DatabaseStore, error) {
	if config.DB == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}

	tableName := config.TableName
	if tableName == "" {
		tableName = DefaultTableName
	}

	return &DatabaseStore{
		db:          config.DB,
		tableName:   tableName,
		createTable: config.CreateTable,
	}, nil
}

// Initialize prepares the database for use.
func (s *DatabaseStore) Initialize(ctx context.Context) error {
	if !s.createTable {
		return nil
	}

	if err := s.db.WithContext(ctx).Table(s.tableName).AutoMigrate(&Item{}); err != nil {
		return NewStoreError("initialize", "", err)
	}
	return nil
}

// History returns the session's items ordered by insertion.
func (s *DatabaseStore) History(ctx context.Context, sessionID string) ([]Item, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID cannot be empty")
	}

	var items []Item
	err := s.db.WithContext(ctx).
		Table(s.tableName).
		Where("session_id = ?", sessionID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, NewStoreError("history", sessionID, err)
	}

	return items, nil
}

// Append adds items to the end of the session's history in one transaction.
func (s *DatabaseStore) Append(ctx context.Context, sessionID string, items []Item) error {
	if sessionID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}
	if len(items) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([]Item, len(items))
	for i, item := range items {
		item.ID = 0
		item.SessionID = sessionID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		rows[i] = item
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Table(s.tableName).Create(&rows).Error
	})
	if err != nil {
		return NewStoreError("append", sessionID, err)
	}

	return nil
}
