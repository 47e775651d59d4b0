package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"lecture-backend/model"
)

// UserStore persists user records in the users collection. The password
// hash never leaves this package: read paths decode into model.PublicUser,
// and login goes through Authenticate.
type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection(userCollection)}
}

// Create hashes the password and inserts a new user. Emails are unique:
// an existing record with the same email fails with ErrDuplicateEmail.
func (s *UserStore) Create(ctx context.Context, name, email, password string, role model.Role) (primitive.ObjectID, error) {
	err := s.col.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return primitive.NilObjectID, ErrDuplicateEmail
	}
	if err != mongo.ErrNoDocuments {
		return primitive.NilObjectID, fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert user: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (model.PublicUser, error) {
	var user model.PublicUser
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return model.PublicUser{}, ErrNotFound
	}
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("find user by id: %w", err)
	}
	return user, nil
}

// Authenticate checks the password against the stored hash. An unknown
// email and a wrong password are indistinguishable to the caller.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (model.PublicUser, error) {
	user, err := s.FindByEmail(ctx, email)
	if err == ErrNotFound {
		return model.PublicUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.PublicUser{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return model.PublicUser{}, ErrInvalidCredentials
	}
	return user.Public(), nil
}
