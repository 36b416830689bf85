package payment

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
	// ErrPaymentNotFound signals that no payment exists for a well-formed id.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrInvalidID signals a malformed payment id, distinct from not-found.
	ErrInvalidID = errors.New("invalid payment id")
)

// Repository persists payment instructions.
type Repository interface {
	Insert(ctx context.Context, p Payment) (string, error)
	List(ctx context.Context) ([]Payment, error)
	FindByID(ctx context.Context, id string) (Payment, error)
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

const paymentsCollection = "payments"

type paymentDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	BankName         string             `bson:"bankName"`
	AccountNumber    string             `bson:"accountNumber"`
	SwiftCode        string             `bson:"swiftCode"`
	BankLocation     string             `bson:"bankLocation"`
	Amount           float64            `bson:"amount"`
	Currency         string             `bson:"currency"`
	AmountInZAR      float64            `bson:"amountInZAR"`
	PaymentReference string             `bson:"paymentReference,omitempty"`
	Status           string             `bson:"status"`
	CreatedAt        time.Time          `bson:"createdAt"`
}

func (d paymentDoc) toPayment() Payment {
	return Payment{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		BankName:         d.BankName,
		AccountNumber:    d.AccountNumber,
		SwiftCode:        d.SwiftCode,
		BankLocation:     d.BankLocation,
		Amount:           d.Amount,
		Currency:         d.Currency,
		AmountInZAR:      d.AmountInZAR,
		PaymentReference: d.PaymentReference,
		Status:           d.Status,
		CreatedAt:        d.CreatedAt.UTC(),
	}
}

func fromPayment(p Payment) paymentDoc {
	return paymentDoc{
		Name:             p.Name,
		BankName:         p.BankName,
		AccountNumber:    p.AccountNumber,
		SwiftCode:        p.SwiftCode,
		BankLocation:     p.BankLocation,
		Amount:           p.Amount,
		Currency:         p.Currency,
		AmountInZAR:      p.AmountInZAR,
		PaymentReference: p.PaymentReference,
		Status:           p.Status,
		CreatedAt:        p.CreatedAt.UTC(),
	}
}

// MongoRepository implements Repository on a MongoDB collection.
type MongoRepository struct {
	payments *mongo.Collection
}

// NewMongoRepository builds a Mongo-backed payment repository.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{payments: db.Collection(paymentsCollection)}
}

// Insert stores a new payment and returns its id.
func (r *MongoRepository) Insert(ctx context.Context, p Payment) (string, error) {
	res, err := r.payments.InsertOne(ctx, fromPayment(p))
	if err != nil {
		return "", err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// List returns every payment, newest first.
func (r *MongoRepository) List(ctx context.Context) ([]Payment, error) {
	cur, err := r.payments.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []paymentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]Payment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toPayment())
	}
	return out, nil
}

// FindByID fetches one payment by its hex id.
func (r *MongoRepository) FindByID(ctx context.Context, id string) (Payment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Payment{}, ErrInvalidID
	}
	var doc paymentDoc
	err = r.payments.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Payment{}, ErrPaymentNotFound
	}
	if err != nil {
		return Payment{}, err
	}
	return doc.toPayment(), nil
}

// SetStatus applies a status value to a payment.
func (r *MongoRepository) SetStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	res, err := r.payments.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// Delete removes a payment by id.
func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	res, err := r.payments.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
