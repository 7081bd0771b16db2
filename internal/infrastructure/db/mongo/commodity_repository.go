package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marketplace/commodity-api/internal/core/domain"
	"github.com/marketplace/commodity-api/internal/core/ports"
)

const collectionCommodities = "commodities"

type CommodityRepository struct {
	col *mongo.Collection
}

func NewCommodityRepository(db *mongo.Database) *CommodityRepository {
	return &CommodityRepository{col: db.Collection(collectionCommodities)}
}

type mongoCommodity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Price       float64            `bson:"price"`
	Description string             `bson:"description,omitempty"`
	Business    primitive.ObjectID `bson:"business"`
	Customers   []string           `bson:"customers"`
}

// ownerDoc is the subset of the users collection joined onto a commodity.
type ownerDoc struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
	Email    string             `bson:"email"`
}

type commodityView struct {
	mongoCommodity `bson:",inline"`
	Owner          *ownerDoc `bson:"owner,omitempty"`
}

func (v *commodityView) toDomain() *domain.Commodity {
	c := &domain.Commodity{
		ID:          v.ID.Hex(),
		Title:       v.Title,
		Price:       v.Price,
		Description: v.Description,
		Business:    domain.BusinessRef{ID: v.Business.Hex()},
		Customers:   v.Customers,
	}
	if c.Customers == nil {
		c.Customers = []string{}
	}
	if v.Owner != nil {
		c.Business.Username = v.Owner.Username
		c.Business.Email = v.Owner.Email
	}
	return c
}

// Create inserts a new commodity. The returned record carries the owner id
// only; reads resolve the owner's username and email.
func (r *CommodityRepository) Create(ctx context.Context, c *domain.Commodity) (*domain.Commodity, error) {
	owner, err := primitive.ObjectIDFromHex(c.Business.ID)
	if err != nil {
		return nil, &domain.ValidationError{Field: "business", Reason: "is not a valid id"}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCommodity{
		Title:       c.Title,
		Price:       c.Price,
		Description: c.Description,
		Business:    owner,
		Customers:   []string{},
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, domain.StoreError("insert commodity", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)

	view := commodityView{mongoCommodity: doc}
	return view.toDomain(), nil
}

// FindByID returns the commodity with its owner resolved. A malformed id is
// reported as not found.
func (r *CommodityRepository) FindByID(ctx context.Context, id string) (*domain.Commodity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCommodityNotFound
	}

	found, err := r.aggregate(ctx, bson.M{"_id": oid}, 1)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, domain.ErrCommodityNotFound
	}
	return found[0], nil
}

// List returns every commodity matching filter with owners resolved.
func (r *CommodityRepository) List(ctx context.Context, filter ports.CommodityFilter) ([]*domain.Commodity, error) {
	match := bson.M{}
	if filter.BusinessID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.BusinessID)
		if err != nil {
			return []*domain.Commodity{}, nil
		}
		match["business"] = oid
	}
	if filter.CustomerID != "" {
		match["customers"] = filter.CustomerID
	}
	if filter.Title != "" {
		match["title"] = filter.Title
	}
	return r.aggregate(ctx, match, 0)
}

// aggregate runs commodityPipeline and maps the joined documents.
func (r *CommodityRepository) aggregate(ctx context.Context, match bson.M, limit int64) ([]*domain.Commodity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, commodityPipeline(match, limit))
	if err != nil {
		return nil, domain.StoreError("query commodities", err)
	}

	var views []commodityView
	if err := cur.All(ctx, &views); err != nil {
		return nil, domain.StoreError("decode commodities", err)
	}

	out := make([]*domain.Commodity, 0, len(views))
	for i := range views {
		out = append(out, views[i].toDomain())
	}
	return out, nil
}

// Update sets the present patch fields on a commodity still owned by ownerID
// and returns the result with its owner resolved.
func (r *CommodityRepository) Update(ctx context.Context, id, ownerID string, patch domain.CommodityPatch) (*domain.Commodity, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	updateCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(updateCtx, filter, patchUpdate(patch))
	if err != nil {
		return nil, domain.StoreError("update commodity", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrCommodityNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes a commodity still owned by ownerID.
func (r *CommodityRepository) Delete(ctx context.Context, id, ownerID string) error {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return domain.StoreError("delete commodity", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommodityNotFound
	}
	return nil
}

// AppendCustomer pushes customerID onto customers in a single atomic update.
// Repeated calls append repeatedly.
func (r *CommodityRepository) AppendCustomer(ctx context.Context, id, customerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCommodityNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		enrollUpdate(customerID),
	)
	if err != nil {
		return domain.StoreError("enroll customer", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCommodityNotFound
	}
	return nil
}

// commodityPipeline matches, sorts by insertion order and joins the owning
// business. The owner's password hash, role and timestamps are projected
// away inside the database.
func commodityPipeline(match bson.M, limit int64) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "localField", Value: "business"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "owner.password_hash", Value: 0},
			{Key: "owner.role", Value: 0},
			{Key: "owner.created_at", Value: 0},
			{Key: "owner.updated_at", Value: 0},
		}}},
	)
	return pipeline
}

// patchUpdate sets only the fields present in patch.
func patchUpdate(patch domain.CommodityPatch) bson.M {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	return bson.M{"$set": set}
}

// enrollUpdate appends customerID without deduplication.
func enrollUpdate(customerID string) bson.M {
	return bson.M{"$push": bson.M{"customers": customerID}}
}

func ownedFilter(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCommodityNotFound
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrNotOwner
	}
	return bson.M{"_id": oid, "business": owner}, nil
}

// EnsureIndexes creates the indexes backing the list queries.
func (r *CommodityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "business", Value: 1}}},
		{Keys: bson.D{{Key: "customers", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
