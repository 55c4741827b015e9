package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type enquiryDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Package   domain.Tier        `bson:"package"`
	Message   string             `bson:"message"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type MongoEnquiryRepository struct {
	coll *mongo.Collection
	now  Clock
}

func NewMongoEnquiryRepository(db *mongo.Database, now Clock) EnquiryRepository {
	if now == nil {
		now = defaultClock
	}
	return &MongoEnquiryRepository{coll: db.Collection(enquiriesCollection), now: now}
}

func (r *MongoEnquiryRepository) List(ctx context.Context) ([]domain.Enquiry, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, mongoErr(err)
	}

	var docs []enquiryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mongoErr(err)
	}

	enquiries := make([]domain.Enquiry, 0, len(docs))
	for _, d := range docs {
		enquiries = append(enquiries, domain.Enquiry{
			ID:        d.ID.Hex(),
			Name:      d.Name,
			Email:     d.Email,
			Phone:     d.Phone,
			Package:   d.Package,
			Message:   d.Message,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		})
	}
	return enquiries, nil
}

func (r *MongoEnquiryRepository) Create(ctx context.Context, enquiry *domain.Enquiry) error {
	if err := enquiry.Validate(); err != nil {
		return err
	}

	now := r.now()
	doc := enquiryDocument{
		ID:        primitive.NewObjectID(),
		Name:      enquiry.Name,
		Email:     enquiry.Email,
		Phone:     enquiry.Phone,
		Package:   enquiry.Package,
		Message:   enquiry.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mongoErr(err)
	}

	enquiry.ID = doc.ID.Hex()
	enquiry.CreatedAt = now
	enquiry.UpdatedAt = now
	return nil
}

var _ EnquiryRepository = (*MongoEnquiryRepository)(nil)
