package repositories

import (
	"context"
	"fmt"

	"attendance-backend/src/database"
	"attendance-backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventRepository ใช้ได้ทั้ง checkins และ checkouts (แยกตาม collection)
type EventRepository struct {
	col  *mongo.Collection
	kind models.EventKind
}

func NewCheckinRepository(db *database.Mongo) *EventRepository {
	return &EventRepository{col: db.Collection(database.CheckinsCollection), kind: models.KindCheckIn}
}

func NewCheckoutRepository(db *database.Mongo) *EventRepository {
	return &EventRepository{col: db.Collection(database.CheckoutsCollection), kind: models.KindCheckOut}
}

func (r *EventRepository) ExistsOnDate(ctx context.Context, userID, date string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"userId": userID, "date": date}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count %s on %s: %w", r.kind, date, err)
	}
	return count > 0, nil
}

// Insert บันทึก event ถ้าชน unique index (userId, date) ของ checkins จะคืน ErrDuplicateCheckIn
func (r *EventRepository) Insert(ctx context.Context, ev *models.AttendanceEvent) error {
	res, err := r.col.InsertOne(ctx, ev)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) && r.kind == models.KindCheckIn {
			return models.ErrDuplicateCheckIn
		}
		return fmt.Errorf("insert %s: %w", r.kind, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		ev.ID = oid
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete %s %s: %w", r.kind, id.Hex(), err)
	}
	return nil
}

// FindInRange เทียบ time แบบ string ทั้งสองฝั่งรวมขอบ เรียงตามลำดับที่บันทึก
func (r *EventRepository) FindInRange(ctx context.Context, userID, from, to string) ([]models.AttendanceEvent, error) {
	filter := bson.M{
		"userId": userID,
		"time":   bson.M{"$gte": from, "$lte": to},
	}
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.kind, err)
	}
	defer cursor.Close(ctx)

	events := []models.AttendanceEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.kind, err)
	}
	return events, nil
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrEventNotFound
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update %s status: %w", r.kind, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrEventNotFound
	}
	return nil
}
