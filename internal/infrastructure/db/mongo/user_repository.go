package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dentalshift/marketplace-api/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository implements ports.UserRepository on MongoDB. Users are keyed
// by the store-assigned ObjectID, exposed to the rest of the system as its
// hex form.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	Role         string             `bson:"role"`
	Phone        string             `bson:"phone,omitempty"`

	ProfessionType  string `bson:"profession_type,omitempty"`
	LicenseNumber   string `bson:"license_number,omitempty"`
	ExperienceYears *int   `bson:"experience_years,omitempty"`

	DentalOfficeName string   `bson:"dental_office_name,omitempty"`
	OfficeAddress    string   `bson:"office_address,omitempty"`
	OfficeCity       string   `bson:"office_city,omitempty"`
	OfficeState      string   `bson:"office_state,omitempty"`
	OfficeZip        string   `bson:"office_zip,omitempty"`
	OfficeLatitude   *float64 `bson:"office_latitude,omitempty"`
	OfficeLongitude  *float64 `bson:"office_longitude,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toMongoUser(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}

	created := *user
	created.ID = oid.Hex()
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return toDomainUser(&mu), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return toDomainUser(&mu), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue // unresolvable ids are simply absent from the result
		}
		oids = append(oids, oid)
	}

	out := make(map[string]*domain.User, len(oids))
	if len(oids) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		u := toDomainUser(&mu)
		out[u.ID] = u
	}
	return out, cur.Err()
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         string(u.Role),
		Phone:        u.Phone,

		ProfessionType:  string(u.ProfessionType),
		LicenseNumber:   u.LicenseNumber,
		ExperienceYears: u.ExperienceYears,

		DentalOfficeName: u.DentalOfficeName,
		OfficeAddress:    u.OfficeAddress,
		OfficeCity:       u.OfficeCity,
		OfficeState:      u.OfficeState,
		OfficeZip:        u.OfficeZip,
		OfficeLatitude:   u.OfficeLatitude,
		OfficeLongitude:  u.OfficeLongitude,

		CreatedAt: u.CreatedAt,
	}
}

func toDomainUser(mu *mongoUser) *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		FirstName:    mu.FirstName,
		LastName:     mu.LastName,
		Role:         domain.Role(mu.Role),
		Phone:        mu.Phone,

		ProfessionType:  domain.JobType(mu.ProfessionType),
		LicenseNumber:   mu.LicenseNumber,
		ExperienceYears: mu.ExperienceYears,

		DentalOfficeName: mu.DentalOfficeName,
		OfficeAddress:    mu.OfficeAddress,
		OfficeCity:       mu.OfficeCity,
		OfficeState:      mu.OfficeState,
		OfficeZip:        mu.OfficeZip,
		OfficeLatitude:   mu.OfficeLatitude,
		OfficeLongitude:  mu.OfficeLongitude,

		CreatedAt: mu.CreatedAt,
	}
}
