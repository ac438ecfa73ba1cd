/*
 * Copyright 2026 The Quill Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/quill-wiki/quill/api/types"
)

const (
	// ColDocuments represents the documents collection in the database.
	ColDocuments = "documents"
	// ColReviews represents the review sessions collection in the database.
	ColReviews = "reviews"
	// ColRevisions represents the revisions collection in the database.
	ColRevisions = "revisions"
	// ColVotes represents the votes collection in the database.
	ColVotes = "votes"
)

// Collections represents the list of all collections in the database.
var Collections = []string{
	ColDocuments,
	ColReviews,
	ColRevisions,
	ColVotes,
}

type collectionInfo struct {
	name    string
	indexes []mongo.IndexModel
}

// Below are names and indexes information of Collections that stores Quill data.
var collectionInfos = []collectionInfo{
	{
		name: ColDocuments,
		indexes: []mongo.IndexModel{{
			Keys: bson.D{{Key: "status", Value: int32(1)}},
		}},
	},
	{
		name: ColReviews,
		indexes: []mongo.IndexModel{{
			Keys: bson.D{
				{Key: "document_id", Value: int32(1)},
				{Key: "started_at", Value: int32(1)},
			},
		}, {
			// At most one session of a document may be in review.
			Keys: bson.D{{Key: "document_id", Value: int32(1)}},
			Options: options.Index().
				SetName("document_id_in_review").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": string(types.ReviewInProgress)}),
		}, {
			Keys: bson.D{
				{Key: "status", Value: int32(1)},
				{Key: "deadline", Value: int32(1)},
			},
		}},
	},
	{
		name: ColRevisions,
		indexes: []mongo.IndexModel{{
			Keys: bson.D{
				{Key: "review_id", Value: int32(1)},
				{Key: "_id", Value: int32(1)},
			},
		}},
	},
	{
		name: ColVotes,
		indexes: []mongo.IndexModel{{
			Keys: bson.D{
				{Key: "target_id", Value: int32(1)},
				{Key: "review_id", Value: int32(1)},
				{Key: "voter_id", Value: int32(1)},
			},
			Options: options.Index().SetUnique(true),
		}, {
			Keys: bson.D{
				{Key: "review_id", Value: int32(1)},
				{Key: "voter_id", Value: int32(1)},
			},
		}},
	},
}

// staleIndexes are indexes of earlier releases that conflict with the
// current ones. The votes index was once unique per (target, voter), which
// refused a second vote on a document after its review restarted.
var staleIndexes = map[string][]string{
	ColVotes: {"target_id_1_voter_id_1"},
}

// Below are the server error codes of a missing index or collection.
const (
	codeNamespaceNotFound = 26
	codeIndexNotFound     = 27
)

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for col, names := range staleIndexes {
		for _, name := range names {
			if err := db.Collection(col).Indexes().DropOne(ctx, name); err != nil && !isMissingIndex(err) {
				return fmt.Errorf("drop index %s: %w", name, err)
			}
		}
	}

	for _, info := range collectionInfos {
		_, err := db.Collection(info.name).Indexes().CreateMany(ctx, info.indexes)
		if err != nil {
			return fmt.Errorf("create indexes: %w", err)
		}
	}
	return nil
}

func isMissingIndex(err error) bool {
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	return cmdErr.Code == codeNamespaceNotFound || cmdErr.Code == codeIndexNotFound
}
