package conversationRepo

import (
	"context"
	"errors"
	"time"

	"stopover/database"
	"stopover/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoConversationRepo struct {
	coll *mongo.Collection
}

// NewMongoConversationRepo returns the Mongo-backed conversation repository.
func NewMongoConversationRepo() Repository {
	return &mongoConversationRepo{
		coll: database.MongoClient.Database(database.DatabaseName).Collection("conversations"),
	}
}

// Init inserts the seed document for a fresh conversation.
func (r *mongoConversationRepo) Init(ctx context.Context, state *models.ConversationState) error {
	now := time.Now()
	if state.CreatedAt.IsZero() {
		state.CreatedAt = now
	}
	state.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, state)
	return err
}

// Get returns the conversation state by its id.
func (r *mongoConversationRepo) Get(ctx context.Context, conversationID string) (*models.ConversationState, error) {
	var state models.ConversationState
	err := r.coll.FindOne(ctx, bson.M{"conversationId": conversationID}).Decode(&state)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Update replaces the whole conversation document, creating it if absent.
// Last write wins; the single-writer-per-conversation model makes that safe.
func (r *mongoConversationRepo) Update(ctx context.Context, state *models.ConversationState) error {
	state.UpdatedAt = time.Now()
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"conversationId": state.ConversationID},
		state,
		options.Replace().SetUpsert(true),
	)
	return err
}

// AppendMessage pushes one message onto the conversation without rewriting
// the whole document.
func (r *mongoConversationRepo) AppendMessage(ctx context.Context, conversationID string, msg models.Message) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"conversationId": conversationID},
		bson.M{
			"$push": bson.M{"messages": msg},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
