package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medilink/directory/internal/core/domain"
)

const (
	collectionCredentials = "doctor_credentials"
	collectionDoctors     = "doctors"
)

// CredentialStore implements ports.CredentialStore on two collections.
// Collection order is insertion order, recovered by sorting on _id.
type CredentialStore struct {
	creds   *mongo.Collection
	doctors *mongo.Collection
}

func NewCredentialStore(db *mongo.Database) *CredentialStore {
	return &CredentialStore{
		creds:   db.Collection(collectionCredentials),
		doctors: db.Collection(collectionDoctors),
	}
}

var insertionOrder = bson.D{{Key: "_id", Value: 1}}

func (s *CredentialStore) ListDoctorCredentials(ctx context.Context) ([]domain.DoctorCredential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.creds.Find(ctx, bson.M{}, options.Find().SetSort(insertionOrder))
	if err != nil {
		return nil, domain.NewStorageError("find doctor credentials", err)
	}
	defer cur.Close(ctx)

	var creds []domain.DoctorCredential
	if err := cur.All(ctx, &creds); err != nil {
		return nil, domain.NewStorageError("decode doctor credentials", err)
	}
	return creds, nil
}

func (s *CredentialStore) GetDoctorProfile(ctx context.Context, id domain.DoctorID) (*domain.DoctorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.DoctorProfile
	err := s.doctors.FindOne(ctx, bson.M{"doctor_id": id.String()}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, domain.NewStorageError("find doctor profile", err)
	}
	return &p, nil
}

// ReplaceDoctorCredential updates the earliest matching document in a single
// atomic operation.
func (s *CredentialStore) ReplaceDoctorCredential(ctx context.Context, identifier, currentSecret, newSecret string) error {
	if identifier == "" {
		return domain.ErrCredentialNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$and": bson.A{identifierFilter(identifier), bson.M{"password": currentSecret}}}
	update := bson.M{"$set": bson.M{"password": newSecret}}
	opts := options.FindOneAndUpdate().SetSort(insertionOrder)

	err := s.creds.FindOneAndUpdate(ctx, filter, update, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrCredentialNotFound
	}
	if err != nil {
		return domain.NewStorageError("update doctor credential", err)
	}
	return nil
}

func (s *CredentialStore) AddDoctorCredential(ctx context.Context, cred domain.DoctorCredential) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ids := cred.Identifiers()
	if len(ids) > 0 {
		clauses := make(bson.A, 0, len(ids))
		for _, id := range ids {
			clauses = append(clauses, identifierFilter(id))
		}
		n, err := s.creds.CountDocuments(ctx, bson.M{"$or": clauses})
		if err != nil {
			return domain.NewStorageError("count doctor credentials", err)
		}
		if n > 0 {
			return domain.ErrCredentialExists
		}
	}

	if _, err := s.creds.InsertOne(ctx, cred); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrCredentialExists
		}
		return domain.NewStorageError("insert doctor credential", err)
	}
	return nil
}

func (s *CredentialStore) PutDoctorProfile(ctx context.Context, profile domain.DoctorProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.doctors.ReplaceOne(ctx,
		bson.M{"doctor_id": profile.ID.String()},
		profile,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return domain.NewStorageError("upsert doctor profile", err)
	}
	return nil
}

func (s *CredentialStore) DeleteDoctorProfile(ctx context.Context, id domain.DoctorID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.doctors.DeleteOne(ctx, bson.M{"doctor_id": id.String()}); err != nil {
		return domain.NewStorageError("delete doctor profile", err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes. Identifier indexes are not unique
// because imported collections may already hold duplicates.
func (s *CredentialStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.creds.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "username", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = s.doctors.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "doctor_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func identifierFilter(identifier string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"email": identifier},
		bson.M{"username": identifier},
	}}
}
