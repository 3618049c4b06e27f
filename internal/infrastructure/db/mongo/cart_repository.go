package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/radnom/storefront-api/internal/core/domain"
)

const cartsCollection = "carts"

type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(cartsCollection)}
}

type cartItemDoc struct {
	ProductID   string `bson:"product_id"`
	ProductName string `bson:"product_name"`
	UnitPrice   int64  `bson:"unit_price"`
	Quantity    int    `bson:"quantity"`
}

type cartDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Items     []cartItemDoc      `bson:"items"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *CartRepository) FindByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	var doc cartDoc
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CartRepository) Create(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	doc := toCartDoc(cart)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		// a racing first-access already created the cart; return the winner
		if mongo.IsDuplicateKeyError(err) {
			return r.FindByUserID(ctx, cart.UserID)
		}
		return nil, fmt.Errorf("insert cart: %w", err)
	}

	created := *cart
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	doc := toCartDoc(cart)

	res, err := r.coll.UpdateOne(ctx, bson.M{"user_id": cart.UserID}, bson.M{"$set": bson.M{
		"items":      doc.Items,
		"updated_at": doc.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCartNotFound
	}
	return nil
}

func toCartDoc(cart *domain.Cart) cartDoc {
	items := make([]cartItemDoc, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemDoc{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	createdAt := cart.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return cartDoc{
		UserID:    cart.UserID,
		Items:     items,
		CreatedAt: createdAt.Unix(),
		UpdatedAt: cart.UpdatedAt.Unix(),
	}
}

func (d *cartDoc) toDomain() *domain.Cart {
	items := make([]domain.CartItem, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, domain.CartItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	return &domain.Cart{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Items:     items,
		CreatedAt: unixToTime(d.CreatedAt),
		UpdatedAt: unixToTime(d.UpdatedAt),
	}
}
