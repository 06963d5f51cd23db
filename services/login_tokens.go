package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/mikeandholly/wedding-api/config"
	"github.com/mikeandholly/wedding-api/models"
)

// loginTokenTTL bounds how long an emailed sign-in link stays valid.
const loginTokenTTL = 15 * time.Minute

type loginToken struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

// LoginTokenService issues and redeems the one-time tokens behind guest
// sign-in links. Expired tokens age out via the collection's TTL index.
type LoginTokenService struct {
	coll *mongo.Collection
}

func NewLoginTokenService(db *mongo.Database) *LoginTokenService {
	return &LoginTokenService{coll: db.Collection(config.LoginTokensCollection)}
}

// Create mints a token bound to the given email.
func (s *LoginTokenService) Create(ctx context.Context, email string) (string, error) {
	token := loginToken{
		ID:        uuid.NewString(),
		Email:     email,
		ExpiresAt: time.Now().Add(loginTokenTTL),
	}
	if _, err := s.coll.InsertOne(ctx, token); err != nil {
		return "", fmt.Errorf("failed to create login token: %w", err)
	}
	return token.ID, nil
}

// Redeem consumes a token exactly once and returns the email it was bound
// to. A missing or expired token is ErrNotFound.
func (s *LoginTokenService) Redeem(ctx context.Context, tokenID string) (string, error) {
	var token loginToken
	err := s.coll.FindOneAndDelete(ctx, bson.M{"_id": tokenID}).Decode(&token)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", models.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to redeem login token: %w", err)
	}
	if time.Now().After(token.ExpiresAt) {
		return "", models.ErrNotFound
	}
	return token.Email, nil
}
