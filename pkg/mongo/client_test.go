package mongo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/payloadkit/pkg/mongo"
)

func TestNew_EmptyConnectionURL(t *testing.T) {
	t.Parallel()

	_, err := mongo.New(context.Background(), mongo.Config{})
	assert.ErrorIs(t, err, mongo.ErrEmptyConnectionURL)
}

func TestNew_InvalidConnectionURL(t *testing.T) {
	t.Parallel()

	_, err := mongo.Collection(context.Background(), mongo.Config{ConnectionURL: "not-a-mongo-url"})
	assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
}
