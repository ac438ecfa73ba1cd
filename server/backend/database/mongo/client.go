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

// Package mongo implements database interfaces using MongoDB.
package mongo

import (
	"context"
	"fmt"
	gotime "time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/server/backend/database"
	"github.com/quill-wiki/quill/server/logging"
)

const (
	// StatusKey is the key of the status field.
	StatusKey = "status"
)

// Client is a client that connects to Mongo DB and reads or saves Quill data.
type Client struct {
	config *Config
	client *mongo.Client

	// reviewCache holds finished sessions only.
	reviewCache *lru.Cache[types.ID, *database.ReviewInfo]
}

// Dial creates an instance of Client and dials the given MongoDB.
func Dial(conf *Config) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.ParseConnectionTimeout())
	defer cancel()

	clientOptions := options.Client().ApplyURI(conf.ConnectionURI)

	if conf.MonitoringEnabled {
		threshold, err := gotime.ParseDuration(conf.MonitoringSlowQueryThreshold)
		if err != nil {
			return nil, fmt.Errorf("parse slow query threshold: %w", err)
		}

		monitor := NewQueryMonitor(&MonitorConfig{
			Enabled:            conf.MonitoringEnabled,
			SlowQueryThreshold: threshold,
		})

		clientOptions.SetMonitor(monitor.CreateCommandMonitor())
	}

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	ctxPing, cancelPing := context.WithTimeout(ctx, conf.ParsePingTimeout())
	defer cancelPing()

	if err := client.Ping(ctxPing, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	if err := ensureIndexes(ctx, client.Database(conf.QuillDatabase)); err != nil {
		return nil, err
	}

	reviewCache, err := lru.New[types.ID, *database.ReviewInfo](conf.ReviewCacheSize)
	if err != nil {
		return nil, fmt.Errorf("initialize review cache: %w", err)
	}

	logging.DefaultLogger().Infof("MongoDB connected, URI: %s, DB: %s", conf.ConnectionURI, conf.QuillDatabase)

	return &Client{
		config:      conf,
		client:      client,
		reviewCache: reviewCache,
	}, nil
}

// Close all resources of this client.
func (c *Client) Close() error {
	if err := c.client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("close mongo client: %w", err)
	}

	c.reviewCache.Purge()

	return nil
}

// CreateDocInfo stores a new document and assigns its ID.
func (c *Client) CreateDocInfo(ctx context.Context, info *database.DocInfo) (*database.DocInfo, error) {
	info = info.DeepCopy()
	info.ID = newID()
	if _, err := c.collection(ColDocuments).InsertOne(ctx, info); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	return info, nil
}

// FindDocInfoByID returns the document of the given ID.
func (c *Client) FindDocInfoByID(ctx context.Context, id types.ID) (*database.DocInfo, error) {
	result := c.collection(ColDocuments).FindOne(ctx, bson.M{"_id": id})
	if result.Err() == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%s: %w", id, database.ErrDocumentNotFound)
	}
	if result.Err() != nil {
		return nil, fmt.Errorf("find document: %w", result.Err())
	}

	info := database.DocInfo{}
	if err := result.Decode(&info); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	return &info, nil
}

// FindDocInfosByPaging returns a page of documents ordered by ID.
func (c *Client) FindDocInfosByPaging(
	ctx context.Context,
	paging types.Paging[types.ID],
) ([]*database.DocInfo, error) {
	filter := bson.M{}
	if paging.Offset != "" {
		k := "$lt"
		if paging.IsForward {
			k = "$gt"
		}
		filter["_id"] = bson.M{
			k: paging.Offset,
		}
	}

	opts := options.Find().SetLimit(int64(paging.PageSize))
	if paging.IsForward {
		opts = opts.SetSort(bson.D{{Key: "_id", Value: 1}})
	} else {
		opts = opts.SetSort(bson.D{{Key: "_id", Value: -1}})
	}

	cursor, err := c.collection(ColDocuments).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}

	var infos []*database.DocInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("fetch document infos: %w", err)
	}

	return infos, nil
}

// UpdateDocInfo replaces the document if its stored status is expected.
func (c *Client) UpdateDocInfo(
	ctx context.Context,
	info *database.DocInfo,
	expected types.DocumentStatus,
) error {
	result, err := c.collection(ColDocuments).ReplaceOne(ctx, bson.M{
		"_id":     info.ID,
		StatusKey: expected,
	}, info)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if result.MatchedCount == 0 {
		if _, err := c.FindDocInfoByID(ctx, info.ID); err != nil {
			return err
		}
		return fmt.Errorf("document %s is not %s: %w", info.ID, expected, database.ErrConflictOnUpdate)
	}

	return nil
}

// CreateReviewInfo stores a new review session and assigns its ID.
func (c *Client) CreateReviewInfo(ctx context.Context, info *database.ReviewInfo) (*database.ReviewInfo, error) {
	info = info.DeepCopy()
	info.ID = newID()
	if _, err := c.collection(ColReviews).InsertOne(ctx, info); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("document %s: %w", info.DocumentID, types.ErrAlreadyReviewing)
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}

	return info, nil
}

// FindReviewInfoByID returns the review session of the given ID.
func (c *Client) FindReviewInfoByID(ctx context.Context, id types.ID) (*database.ReviewInfo, error) {
	if info, ok := c.reviewCache.Get(id); ok {
		return info.DeepCopy(), nil
	}

	info, err := c.findReviewInfo(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	if info.Status.IsTerminal() {
		c.reviewCache.Add(id, info.DeepCopy())
	}
	return info, nil
}

// FindActiveReviewInfo returns the in-review session of the document.
func (c *Client) FindActiveReviewInfo(ctx context.Context, docID types.ID) (*database.ReviewInfo, error) {
	info, err := c.findReviewInfo(ctx, bson.M{
		"document_id": docID,
		StatusKey:     types.ReviewInProgress,
	})
	if err != nil {
		return nil, fmt.Errorf("active review of %s: %w", docID, err)
	}

	return info, nil
}

// FindReviewInfosByDocID returns every session of the document ordered by
// start time.
func (c *Client) FindReviewInfosByDocID(ctx context.Context, docID types.ID) ([]*database.ReviewInfo, error) {
	cursor, err := c.collection(ColReviews).Find(
		ctx,
		bson.M{"document_id": docID},
		options.Find().SetSort(bson.D{
			{Key: "started_at", Value: 1},
			{Key: "_id", Value: 1},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("find reviews of %s: %w", docID, err)
	}

	var infos []*database.ReviewInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("fetch review infos: %w", err)
	}

	return infos, nil
}

// FindExpiredReviewInfos returns at most limit in-review sessions whose
// deadline is at or before now.
func (c *Client) FindExpiredReviewInfos(
	ctx context.Context,
	now gotime.Time,
	limit int,
) ([]*database.ReviewInfo, error) {
	cursor, err := c.collection(ColReviews).Find(
		ctx,
		bson.M{
			StatusKey:  types.ReviewInProgress,
			"deadline": bson.M{"$lte": now},
		},
		options.Find().
			SetSort(bson.D{
				{Key: "deadline", Value: 1},
				{Key: "_id", Value: 1},
			}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("find expired reviews: %w", err)
	}

	var infos []*database.ReviewInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("fetch review infos: %w", err)
	}

	return infos, nil
}

// UpdateReviewInfo replaces the session if its stored status is expected.
func (c *Client) UpdateReviewInfo(
	ctx context.Context,
	info *database.ReviewInfo,
	expected types.ReviewStatus,
) error {
	result, err := c.collection(ColReviews).ReplaceOne(ctx, bson.M{
		"_id":     info.ID,
		StatusKey: expected,
	}, info)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if result.MatchedCount == 0 {
		if _, err := c.FindReviewInfoByID(ctx, info.ID); err != nil {
			return err
		}
		return fmt.Errorf("review %s is not %s: %w", info.ID, expected, database.ErrConflictOnUpdate)
	}

	if info.Status.IsTerminal() {
		c.reviewCache.Add(info.ID, info.DeepCopy())
	}
	return nil
}

// CreateRevisionInfo stores a new revision and assigns its ID.
func (c *Client) CreateRevisionInfo(
	ctx context.Context,
	info *database.RevisionInfo,
) (*database.RevisionInfo, error) {
	info = info.DeepCopy()
	info.ID = newID()
	if _, err := c.collection(ColRevisions).InsertOne(ctx, info); err != nil {
		return nil, fmt.Errorf("insert revision: %w", err)
	}

	return info, nil
}

// FindRevisionInfoByID returns the revision of the given ID.
func (c *Client) FindRevisionInfoByID(ctx context.Context, id types.ID) (*database.RevisionInfo, error) {
	result := c.collection(ColRevisions).FindOne(ctx, bson.M{"_id": id})
	if result.Err() == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%s: %w", id, database.ErrRevisionNotFound)
	}
	if result.Err() != nil {
		return nil, fmt.Errorf("find revision: %w", result.Err())
	}

	info := database.RevisionInfo{}
	if err := result.Decode(&info); err != nil {
		return nil, fmt.Errorf("decode revision: %w", err)
	}

	return &info, nil
}

// FindRevisionInfosByReviewID returns the revisions of the session ordered
// by creation.
func (c *Client) FindRevisionInfosByReviewID(
	ctx context.Context,
	reviewID types.ID,
) ([]*database.RevisionInfo, error) {
	cursor, err := c.collection(ColRevisions).Find(
		ctx,
		bson.M{"review_id": reviewID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find revisions of %s: %w", reviewID, err)
	}

	var infos []*database.RevisionInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("fetch revision infos: %w", err)
	}

	return infos, nil
}

// UpdateRevisionStatuses marks the winner of the session and rejects the
// other revisions.
func (c *Client) UpdateRevisionStatuses(ctx context.Context, reviewID, winnerID types.ID) error {
	result, err := c.collection(ColRevisions).UpdateOne(ctx, bson.M{
		"_id":       winnerID,
		"review_id": reviewID,
	}, bson.M{
		"$set": bson.M{StatusKey: types.RevisionWinner},
	})
	if err != nil {
		return fmt.Errorf("update winner revision: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%s of review %s: %w", winnerID, reviewID, database.ErrRevisionNotFound)
	}

	if _, err := c.collection(ColRevisions).UpdateMany(ctx, bson.M{
		"review_id": reviewID,
		"_id":       bson.M{"$ne": winnerID},
	}, bson.M{
		"$set": bson.M{StatusKey: types.RevisionRejected},
	}); err != nil {
		return fmt.Errorf("update rejected revisions: %w", err)
	}

	return nil
}

// CreateVoteInfo records the vote and increments the counter of its target.
// The vote is inserted first so that the unique index decides duplicates,
// and removed again if the target is not open for votes.
func (c *Client) CreateVoteInfo(ctx context.Context, info *database.VoteInfo) (*database.VoteInfo, error) {
	var col string
	var filter bson.M
	var notFound error
	switch info.TargetType {
	case types.VoteTargetDocument:
		col = ColDocuments
		filter = bson.M{
			"_id":       info.TargetID,
			"review_id": info.ReviewID,
			StatusKey:   types.DocumentVerifying,
		}
		notFound = database.ErrDocumentNotFound
	case types.VoteTargetRevision:
		col = ColRevisions
		filter = bson.M{
			"_id":       info.TargetID,
			"review_id": info.ReviewID,
			StatusKey:   types.RevisionPending,
		}
		notFound = database.ErrRevisionNotFound
	default:
		return nil, fmt.Errorf("vote target %q: %w", info.TargetType, types.ErrValidation)
	}

	info = info.DeepCopy()
	info.ID = newID()
	if _, err := c.collection(ColVotes).InsertOne(ctx, info); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s on %s: %w", info.VoterID, info.TargetID, types.ErrAlreadyVoted)
		}
		return nil, fmt.Errorf("insert vote: %w", err)
	}

	result, err := c.collection(col).UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{info.CounterField(): 1},
	})
	if err == nil && result.MatchedCount == 1 {
		return info, nil
	}

	if _, delErr := c.collection(ColVotes).DeleteOne(ctx, bson.M{"_id": info.ID}); delErr != nil {
		logging.From(ctx).Errorf("remove orphan vote %s: %v", info.ID, delErr)
	}
	if err != nil {
		return nil, fmt.Errorf("increment %s votes: %w", info.TargetType, err)
	}

	count, err := c.collection(col).CountDocuments(ctx, bson.M{"_id": info.TargetID})
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", info.TargetType, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%s: %w", info.TargetID, notFound)
	}
	return nil, fmt.Errorf("vote on %s %s: %w", info.TargetType, info.TargetID, database.ErrConflictOnUpdate)
}

// FindVoteInfosByVoter returns the votes cast by voter during the session.
func (c *Client) FindVoteInfosByVoter(
	ctx context.Context,
	reviewID types.ID,
	voterID string,
) ([]*database.VoteInfo, error) {
	cursor, err := c.collection(ColVotes).Find(ctx, bson.M{
		"review_id": reviewID,
		"voter_id":  voterID,
	})
	if err != nil {
		return nil, fmt.Errorf("find votes of %s: %w", voterID, err)
	}

	var infos []*database.VoteInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("fetch vote infos: %w", err)
	}

	return infos, nil
}

func (c *Client) findReviewInfo(ctx context.Context, filter bson.M) (*database.ReviewInfo, error) {
	result := c.collection(ColReviews).FindOne(ctx, filter)
	if result.Err() == mongo.ErrNoDocuments {
		return nil, database.ErrReviewNotFound
	}
	if result.Err() != nil {
		return nil, fmt.Errorf("find review: %w", result.Err())
	}

	info := database.ReviewInfo{}
	if err := result.Decode(&info); err != nil {
		return nil, fmt.Errorf("decode review: %w", err)
	}

	return &info, nil
}

func (c *Client) collection(
	name string,
	opts ...options.Lister[options.CollectionOptions],
) *mongo.Collection {
	return c.client.
		Database(c.config.QuillDatabase).
		Collection(name, opts...)
}

func newID() types.ID {
	return types.ID(bson.NewObjectID().Hex())
}
