package auth

import (
	"context"
	"errors"
	"time"

	DB "Backend-Parsamooz/src/database"
	"Backend-Parsamooz/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthenticateUser checks a username/password pair against the users
// collection.
func AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := DB.UserCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// LookupUser fetches a user by username.
func LookupUser(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := DB.UserCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser stores a new user with a bcrypt-hashed password.
func CreateUser(ctx context.Context, user *models.User, plainPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.ID = primitive.NewObjectID()
	user.Password = string(hash)
	user.CreatedAt = time.Now()

	_, err = DB.UserCollection.InsertOne(ctx, user)
	return err
}
