package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection         = "users"
	CheckinsCollection      = "checkins"
	CheckoutsCollection     = "checkouts"
	LeaveRequestsCollection = "leaveRequests"
)

// Mongo ห่อ client และ database ที่ใช้ ส่งต่อให้ repository แทนตัวแปร global
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// ConnectMongoDB เชื่อมต่อและ ping MongoDB
func ConnectMongoDB(ctx context.Context, uri, dbName string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Println("✅ MongoDB connected successfully")
	return &Mongo{Client: client, DB: client.Database(dbName)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}

func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.DB.Collection(name)
}

// EnsureIndexes สร้าง index ที่ระบบต้องใช้
// unique (userId, date) บน checkins กันเช็คอินซ้ำในวันเดียวกัน
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CheckinsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "time", Value: 1}}},
		},
		CheckoutsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "time", Value: 1}}},
		},
		LeaveRequestsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}, {Key: "leaveStartDate", Value: 1}}},
		},
	}

	for name, models := range specs {
		if _, err := m.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	log.Println("✅ MongoDB indexes ensured")
	return nil
}
