package employee

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RoleEmployee is the role claim carried by employee session tokens.
const RoleEmployee = "employee"

// ErrEmployeeNotFound signals an unknown employee username.
var ErrEmployeeNotFound = errors.New("employee not found")

// Employee is a back-office reviewer credential. The portal ships with a
// single seeded row but the table accepts more without code changes.
type Employee struct {
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// Repository persists employee credentials.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (Employee, error)
	Upsert(ctx context.Context, emp Employee) error
}

const employeesCollection = "employees"

// MongoRepository implements Repository on a MongoDB collection.
type MongoRepository struct {
	employees *mongo.Collection
}

// NewMongoRepository builds a Mongo-backed employee repository.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{employees: db.Collection(employeesCollection)}
}

// EnsureIndexes creates the unique username index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.employees.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// FindByUsername fetches an employee credential row.
func (r *MongoRepository) FindByUsername(ctx context.Context, username string) (Employee, error) {
	var emp Employee
	err := r.employees.FindOne(ctx, bson.M{"username": username}).Decode(&emp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

// Upsert inserts or replaces the credential row for emp.Username.
func (r *MongoRepository) Upsert(ctx context.Context, emp Employee) error {
	_, err := r.employees.ReplaceOne(ctx,
		bson.M{"username": emp.Username},
		emp,
		options.Replace().SetUpsert(true),
	)
	return err
}
