package gazetteer

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Cấp hành chính trong collection admin_units
const (
	LevelProvince = 2
	LevelDistrict = 3
	LevelWard     = 4
)

// adminUnitDoc schema document trong collection admin_units
type adminUnitDoc struct {
	AdminID  string   `bson:"admin_id"`
	Name     string   `bson:"name"`
	Level    int      `bson:"level"`
	ParentID string   `bson:"parent_id,omitempty"`
	Aliases  []string `bson:"aliases,omitempty"`
	Version  string   `bson:"gazetteer_version,omitempty"`
}

// MongoLoader load gazetteer từ MongoDB
type MongoLoader struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoLoader tạo mới MongoLoader
func NewMongoLoader(database *mongo.Database, collectionName string, logger *zap.Logger) *MongoLoader {
	return &MongoLoader{
		collection: database.Collection(collectionName),
		logger:     logger,
	}
}

// Load đọc toàn bộ admin units và build Gazetteer bất biến.
// Validation cấu trúc cây chạy trong New, lỗi dữ liệu fail ngay lúc load.
func (ml *MongoLoader) Load(ctx context.Context) (*Gazetteer, error) {
	cursor, err := ml.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("lỗi query admin units: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []adminUnitDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("lỗi decode admin units: %w", err)
	}

	ds := &Dataset{}
	for _, doc := range docs {
		unit := Unit{
			ID:       doc.AdminID,
			Name:     doc.Name,
			Aliases:  doc.Aliases,
			ParentID: doc.ParentID,
		}
		if ds.Version == "" && doc.Version != "" {
			ds.Version = doc.Version
		}

		switch doc.Level {
		case LevelProvince:
			ds.Provinces = append(ds.Provinces, unit)
		case LevelDistrict:
			ds.Districts = append(ds.Districts, unit)
		case LevelWard:
			ds.Wards = append(ds.Wards, unit)
		default:
			return nil, fmt.Errorf("admin unit %q có level %d không hợp lệ", doc.AdminID, doc.Level)
		}
	}

	g, err := New(ds)
	if err != nil {
		return nil, fmt.Errorf("dữ liệu admin_units không hợp lệ: %w", err)
	}

	p, d, w := g.Counts()
	ml.logger.Info("Đã load gazetteer từ MongoDB",
		zap.String("version", g.Version()),
		zap.Int("provinces", p),
		zap.Int("districts", d),
		zap.Int("wards", w))

	return g, nil
}
