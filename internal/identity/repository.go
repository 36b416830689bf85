package identity

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateIdentity signals a username or account number collision.
	ErrDuplicateIdentity = errors.New("username or account number already registered")
	// ErrUserNotFound signals that no user matches the given identity.
	ErrUserNotFound = errors.New("user not found")
)

// Repository persists customer credentials.
type Repository interface {
	Create(ctx context.Context, user User) (string, error)
	FindByLogin(ctx context.Context, username, accountNumber string) (User, error)
	Exists(ctx context.Context, username, accountNumber string) (bool, error)
}

const usersCollection = "users"

type userDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Username      string             `bson:"username"`
	FullName      string             `bson:"fullName"`
	IDNumber      string             `bson:"idNumber"`
	AccountNumber string             `bson:"accountNumber"`
	PasswordHash  string             `bson:"password"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func (d userDoc) toUser() User {
	return User{
		ID:            d.ID.Hex(),
		Username:      d.Username,
		FullName:      d.FullName,
		IDNumber:      d.IDNumber,
		AccountNumber: d.AccountNumber,
		PasswordHash:  d.PasswordHash,
		CreatedAt:     d.CreatedAt.UTC(),
	}
}

// MongoRepository implements Repository on a MongoDB collection.
type MongoRepository struct {
	users *mongo.Collection
}

// NewMongoRepository builds a Mongo-backed identity repository.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{users: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique indexes backing the identity invariants.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "accountNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

// Create inserts a new user and returns the assigned id.
func (r *MongoRepository) Create(ctx context.Context, user User) (string, error) {
	doc := userDoc{
		Username:      user.Username,
		FullName:      user.FullName,
		IDNumber:      user.IDNumber,
		AccountNumber: user.AccountNumber,
		PasswordHash:  user.PasswordHash,
		CreatedAt:     user.CreatedAt.UTC(),
	}
	res, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateIdentity
		}
		return "", err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// FindByLogin fetches the user matching both username and account number.
func (r *MongoRepository) FindByLogin(ctx context.Context, username, accountNumber string) (User, error) {
	var doc userDoc
	err := r.users.FindOne(ctx, bson.M{"username": username, "accountNumber": accountNumber}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return doc.toUser(), nil
}

// Exists reports whether the username or account number is already taken.
func (r *MongoRepository) Exists(ctx context.Context, username, accountNumber string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"accountNumber": accountNumber},
	}}
	err := r.users.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
