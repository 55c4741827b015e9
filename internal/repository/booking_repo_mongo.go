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

type bookingDocument struct {
	ID                 primitive.ObjectID `bson:"_id"`
	Name               string             `bson:"name"`
	Email              string             `bson:"email"`
	Phone              string             `bson:"phone"`
	Package            domain.Tier        `bson:"package"`
	PackageName        string             `bson:"packageName"`
	Persons            int                `bson:"persons"`
	NewYearVoucher     bool               `bson:"newYearVoucher"`
	BasePrice          float64            `bson:"basePrice"`
	Discount           float64            `bson:"discount"`
	DiscountAmount     float64            `bson:"discountAmount"`
	PriceAfterDiscount float64            `bson:"priceAfterDiscount"`
	VoucherDiscount    float64            `bson:"voucherDiscount"`
	TotalPrice         float64            `bson:"totalPrice"`
	BookingDate        string             `bson:"bookingDate"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`
}

func (d *bookingDocument) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:                 d.ID.Hex(),
		Name:               d.Name,
		Email:              d.Email,
		Phone:              d.Phone,
		Package:            d.Package,
		PackageName:        d.PackageName,
		Persons:            d.Persons,
		NewYearVoucher:     d.NewYearVoucher,
		BasePrice:          d.BasePrice,
		Discount:           d.Discount,
		DiscountAmount:     d.DiscountAmount,
		PriceAfterDiscount: d.PriceAfterDiscount,
		VoucherDiscount:    d.VoucherDiscount,
		TotalPrice:         d.TotalPrice,
		BookingDate:        d.BookingDate,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// mutableBookingFields is the $set document for a full replace; _id and createdAt are kept.
func mutableBookingFields(b *domain.Booking, updatedAt time.Time) bson.M {
	return bson.M{
		"name":               b.Name,
		"email":              b.Email,
		"phone":              b.Phone,
		"package":            b.Package,
		"packageName":        b.PackageName,
		"persons":            b.Persons,
		"newYearVoucher":     b.NewYearVoucher,
		"basePrice":          b.BasePrice,
		"discount":           b.Discount,
		"discountAmount":     b.DiscountAmount,
		"priceAfterDiscount": b.PriceAfterDiscount,
		"voucherDiscount":    b.VoucherDiscount,
		"totalPrice":         b.TotalPrice,
		"bookingDate":        b.BookingDate,
		"updatedAt":          updatedAt,
	}
}

type MongoBookingRepository struct {
	coll *mongo.Collection
	now  Clock
}

func NewMongoBookingRepository(db *mongo.Database, now Clock) BookingRepository {
	if now == nil {
		now = defaultClock
	}
	return &MongoBookingRepository{coll: db.Collection(bookingsCollection), now: now}
}

func (r *MongoBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, mongoErr(err)
	}

	var docs []bookingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mongoErr(err)
	}

	bookings := make([]domain.Booking, 0, len(docs))
	for i := range docs {
		bookings = append(bookings, *docs[i].toDomain())
	}
	return bookings, nil
}

func (r *MongoBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc bookingDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mongoErr(err)
	}
	return doc.toDomain(), nil
}

func (r *MongoBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if err := booking.Validate(); err != nil {
		return err
	}

	now := r.now()
	doc := bookingDocument{
		ID:                 primitive.NewObjectID(),
		Name:               booking.Name,
		Email:              booking.Email,
		Phone:              booking.Phone,
		Package:            booking.Package,
		PackageName:        booking.PackageName,
		Persons:            booking.Persons,
		NewYearVoucher:     booking.NewYearVoucher,
		BasePrice:          booking.BasePrice,
		Discount:           booking.Discount,
		DiscountAmount:     booking.DiscountAmount,
		PriceAfterDiscount: booking.PriceAfterDiscount,
		VoucherDiscount:    booking.VoucherDiscount,
		TotalPrice:         booking.TotalPrice,
		BookingDate:        booking.BookingDate,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mongoErr(err)
	}

	booking.ID = doc.ID.Hex()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (r *MongoBookingRepository) Replace(ctx context.Context, id string, booking *domain.Booking) (*domain.Booking, error) {
	if err := booking.Validate(); err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc bookingDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": mutableBookingFields(booking, r.now())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, mongoErr(err)
	}
	return doc.toDomain(), nil
}

func (r *MongoBookingRepository) Delete(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc bookingDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mongoErr(err)
	}
	return doc.toDomain(), nil
}

var _ BookingRepository = (*MongoBookingRepository)(nil)
