package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"attendance-backend/src/database"
	"attendance-backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository เข้าถึง collection users รวมถึงสถานะเช็คอิน
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *database.Mongo) *UserRepository {
	return &UserRepository{col: db.Collection(database.UsersCollection)}
}

func (r *UserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, models.ErrUserNotFound
	}

	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// SetCheckedIn เปลี่ยนสถานะเป็นเช็คอินและจำเวลาล่าสุด
func (r *UserRepository) SetCheckedIn(ctx context.Context, userID, at string) error {
	return r.updateState(ctx, userID, bson.M{"checkIn": true, "lastCheckedIn": at})
}

// SetCheckedOut ไม่ล้าง lastCheckedIn
func (r *UserRepository) SetCheckedOut(ctx context.Context, userID string) error {
	return r.updateState(ctx, userID, bson.M{"checkIn": false})
}

func (r *UserRepository) updateState(ctx context.Context, userID string, set bson.M) error {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.ErrUserNotFound
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update user state %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// ListIDs คืน id ของผู้ใช้ทุกคน (ใช้กับงาน mark absent)
func (r *UserRepository) ListIDs(ctx context.Context) ([]string, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user id: %w", err)
		}
		ids = append(ids, doc.ID.Hex())
	}
	return ids, cursor.Err()
}
