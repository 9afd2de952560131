package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attendance-backend/src/database"
	"attendance-backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LeaveRepository struct {
	col *mongo.Collection
}

func NewLeaveRepository(db *database.Mongo) *LeaveRepository {
	return &LeaveRepository{col: db.Collection(database.LeaveRequestsCollection)}
}

func (r *LeaveRepository) Insert(ctx context.Context, leave *models.LeaveRequest) error {
	res, err := r.col.InsertOne(ctx, leave)
	if err != nil {
		return fmt.Errorf("insert leave request: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		leave.ID = oid
	}
	return nil
}

func (r *LeaveRepository) FindByID(ctx context.Context, id string) (*models.LeaveRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrLeaveNotFound
	}
	var leave models.LeaveRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&leave); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrLeaveNotFound
		}
		return nil, fmt.Errorf("find leave request: %w", err)
	}
	return &leave, nil
}

// ListByUser status ว่าง = ทุกสถานะ
func (r *LeaveRepository) ListByUser(ctx context.Context, userID string, status models.LeaveStatus) ([]models.LeaveRequest, error) {
	filter := bson.M{"userId": userID}
	if status != "" {
		filter["status"] = status
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "leaveStartDate", Value: 1}}))
}

// Decide เปลี่ยนสถานะได้จาก pending เท่านั้น
func (r *LeaveRepository) Decide(ctx context.Context, id string, status models.LeaveStatus, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrLeaveNotFound
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "status": models.LeaveStatusPending},
		bson.M{"$set": bson.M{"status": status, "decidedAt": at}},
	)
	if err != nil {
		return fmt.Errorf("update leave status: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	count, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("count leave request: %w", err)
	}
	if count == 0 {
		return models.ErrLeaveNotFound
	}
	return models.ErrLeaveAlreadyDecided
}

func (r *LeaveRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrLeaveNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete leave request: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrLeaveNotFound
	}
	return nil
}

// FindApprovedOverlapping คำขอที่อนุมัติแล้วและคาบเกี่ยว [from, to]
// ครอบคลุม เริ่มในช่วง, จบในช่วง และคร่อมทั้งช่วง
func (r *LeaveRepository) FindApprovedOverlapping(ctx context.Context, userID string, from, to time.Time) ([]models.LeaveRequest, error) {
	filter := bson.M{
		"userId": userID,
		"status": models.LeaveStatusApproved,
		"$or": bson.A{
			bson.M{"leaveStartDate": bson.M{"$gte": from, "$lte": to}},
			bson.M{"leaveEndDate": bson.M{"$gte": from, "$lte": to}},
			bson.M{"leaveStartDate": bson.M{"$lt": from}, "leaveEndDate": bson.M{"$gt": to}},
		},
	}
	return r.find(ctx, filter)
}

func (r *LeaveRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.LeaveRequest, error) {
	cursor, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find leave requests: %w", err)
	}
	defer cursor.Close(ctx)

	leaves := []models.LeaveRequest{}
	if err := cursor.All(ctx, &leaves); err != nil {
		return nil, fmt.Errorf("decode leave requests: %w", err)
	}
	return leaves, nil
}
