package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/marketplace/commodity-api/internal/core/domain"
	"github.com/marketplace/commodity-api/internal/core/ports"
)

type stubCommodityService struct {
	listFn     func(ctx context.Context) ([]*domain.Commodity, error)
	businessFn func(ctx context.Context, id string) ([]*domain.Commodity, error)
	customerFn func(ctx context.Context, id string) ([]*domain.Commodity, error)
	titleFn    func(ctx context.Context, title string) ([]*domain.Commodity, error)
	findFn     func(ctx context.Context, id string) (*domain.Commodity, error)
	createFn   func(ctx context.Context, p domain.Principal, in ports.CreateCommodityInput) (*domain.Commodity, error)
	updateFn   func(ctx context.Context, p domain.Principal, id string, patch domain.CommodityPatch) (*domain.Commodity, error)
	deleteFn   func(ctx context.Context, p domain.Principal, id string) error
	enrollFn   func(ctx context.Context, p domain.Principal, id string) error
}

func (s *stubCommodityService) ListAll(ctx context.Context) ([]*domain.Commodity, error) {
	return s.listFn(ctx)
}

func (s *stubCommodityService) FindByBusiness(ctx context.Context, id string) ([]*domain.Commodity, error) {
	return s.businessFn(ctx, id)
}

func (s *stubCommodityService) FindByCustomer(ctx context.Context, id string) ([]*domain.Commodity, error) {
	return s.customerFn(ctx, id)
}

func (s *stubCommodityService) FindByTitle(ctx context.Context, title string) ([]*domain.Commodity, error) {
	return s.titleFn(ctx, title)
}

func (s *stubCommodityService) FindByID(ctx context.Context, id string) (*domain.Commodity, error) {
	return s.findFn(ctx, id)
}

func (s *stubCommodityService) Create(ctx context.Context, p domain.Principal, in ports.CreateCommodityInput) (*domain.Commodity, error) {
	return s.createFn(ctx, p, in)
}

func (s *stubCommodityService) Update(ctx context.Context, p domain.Principal, id string, patch domain.CommodityPatch) (*domain.Commodity, error) {
	return s.updateFn(ctx, p, id, patch)
}

func (s *stubCommodityService) Delete(ctx context.Context, p domain.Principal, id string) error {
	return s.deleteFn(ctx, p, id)
}

func (s *stubCommodityService) Enroll(ctx context.Context, p domain.Principal, id string) error {
	return s.enrollFn(ctx, p, id)
}

var (
	shopA = domain.Principal{ID: "bizA", Username: "shopA", Role: domain.RoleBusiness}
	carl  = domain.Principal{ID: "cust1", Username: "carl", Role: domain.RoleCustomer}
)

func widget() *domain.Commodity {
	return &domain.Commodity{
		ID:          "c1",
		Title:       "Widget1",
		Price:       10,
		Description: "A simple widget for testing",
		Business:    domain.BusinessRef{ID: "bizA", Username: "shopA", Email: "a@shop.com"},
		Customers:   []string{},
	}
}

func TestCommodityHandler_List(t *testing.T) {
	stub := &stubCommodityService{
		listFn: func(ctx context.Context) ([]*domain.Commodity, error) {
			return []*domain.Commodity{widget()}, nil
		},
	}
	handler := NewCommodityHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/api/commodity", "")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected one commodity, got %d", len(resp))
	}
	business, _ := resp[0]["business"].(map[string]any)
	if business["username"] != "shopA" || business["email"] != "a@shop.com" {
		t.Fatalf("owner not populated: %+v", business)
	}
	if customers, ok := resp[0]["customers"].([]any); !ok || len(customers) != 0 {
		t.Fatalf("expected empty customers array, got %v", resp[0]["customers"])
	}
}

func TestCommodityHandler_Filters(t *testing.T) {
	var gotBusiness, gotCustomer, gotTitle string
	stub := &stubCommodityService{
		businessFn: func(ctx context.Context, id string) ([]*domain.Commodity, error) {
			gotBusiness = id
			return []*domain.Commodity{}, nil
		},
		customerFn: func(ctx context.Context, id string) ([]*domain.Commodity, error) {
			gotCustomer = id
			return []*domain.Commodity{}, nil
		},
		titleFn: func(ctx context.Context, title string) ([]*domain.Commodity, error) {
			gotTitle = title
			return []*domain.Commodity{}, nil
		},
	}
	handler := NewCommodityHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("bizA")
	if err := handler.ByBusiness(c); err != nil || gotBusiness != "bizA" {
		t.Fatalf("by business: %v %q", err, gotBusiness)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}

	c, _ = newJSONContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("cust1")
	if err := handler.ByCustomer(c); err != nil || gotCustomer != "cust1" {
		t.Fatalf("by customer: %v %q", err, gotCustomer)
	}

	c, _ = newJSONContext(http.MethodGet, "/", "")
	c.SetParamNames("name")
	c.SetParamValues("Widget1")
	if err := handler.ByTitle(c); err != nil || gotTitle != "Widget1" {
		t.Fatalf("by title: %v %q", err, gotTitle)
	}
}

func TestCommodityHandler_List_StoreError(t *testing.T) {
	stub := &stubCommodityService{
		listFn: func(ctx context.Context) ([]*domain.Commodity, error) {
			return nil, domain.StoreError("list commodities", errors.New("timeout"))
		},
	}
	handler := NewCommodityHandler(stub)

	c, _ := newJSONContext(http.MethodGet, "/api/commodity", "")

	if err := handler.List(c); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestCommodityHandler_Get_NotFoundIsNull(t *testing.T) {
	stub := &stubCommodityService{
		findFn: func(ctx context.Context, id string) (*domain.Commodity, error) {
			return nil, domain.ErrCommodityNotFound
		},
	}
	handler := NewCommodityHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected 200 null, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestCommodityHandler_Create(t *testing.T) {
	stub := &stubCommodityService{
		createFn: func(ctx context.Context, p domain.Principal, in ports.CreateCommodityInput) (*domain.Commodity, error) {
			if p.ID != shopA.ID || p.Role != domain.RoleBusiness {
				t.Fatalf("unexpected principal: %+v", p)
			}
			if in.Title != "Widget1" || in.Price != 10 || in.Description != "A simple widget for testing" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return widget(), nil
		},
	}
	handler := NewCommodityHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/commodity",
		`{"title":"Widget1","price":10,"description":"A simple widget for testing"}`)
	authenticate(c, shopA)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] == "" || resp["commodity"] == nil {
		t.Fatalf("expected message and commodity, got %+v", resp)
	}
}

func TestCommodityHandler_Create_CustomerDenied(t *testing.T) {
	stub := &stubCommodityService{
		createFn: func(ctx context.Context, p domain.Principal, in ports.CreateCommodityInput) (*domain.Commodity, error) {
			return nil, domain.ErrRoleNotPermitted
		},
	}
	handler := NewCommodityHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/commodity", `{"title":"Widget1","price":10}`)
	authenticate(c, carl)

	if err := handler.Create(c); !errors.Is(err, domain.ErrRoleNotPermitted) {
		t.Fatalf("expected role denial, got %v", err)
	}
	if rec.Code == http.StatusOK && rec.Body.Len() > 0 {
		t.Fatal("customer create must never answer 200")
	}
}

func TestCommodityHandler_Create_InvalidPayload(t *testing.T) {
	handler := NewCommodityHandler(&stubCommodityService{})

	c, _ := newJSONContext(http.MethodPost, "/api/commodity", `{"price":"ten"}`)
	authenticate(c, shopA)

	if code := httpCode(t, handler.Create(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestCommodityHandler_Update_PartialPatch(t *testing.T) {
	stub := &stubCommodityService{
		updateFn: func(ctx context.Context, p domain.Principal, id string, patch domain.CommodityPatch) (*domain.Commodity, error) {
			if id != "c1" {
				t.Fatalf("unexpected id %q", id)
			}
			if patch.Price == nil || *patch.Price != 25 {
				t.Fatalf("price not forwarded: %+v", patch)
			}
			if patch.Title != nil || patch.Description != nil {
				t.Fatalf("absent fields must stay nil: %+v", patch)
			}
			updated := widget()
			updated.Price = 25
			return updated, nil
		},
	}
	handler := NewCommodityHandler(stub)

	c, rec := newJSONContext(http.MethodPatch, "/", `{"price":25}`)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	authenticate(c, shopA)

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"price":25`) {
		t.Fatalf("expected updated record, got %s", rec.Body.String())
	}
}

func TestCommodityHandler_MutationErrorsPropagate(t *testing.T) {
	stub := &stubCommodityService{
		updateFn: func(ctx context.Context, p domain.Principal, id string, patch domain.CommodityPatch) (*domain.Commodity, error) {
			return nil, domain.ErrNotOwner
		},
		deleteFn: func(ctx context.Context, p domain.Principal, id string) error {
			return domain.ErrCommodityNotFound
		},
		enrollFn: func(ctx context.Context, p domain.Principal, id string) error {
			return domain.ErrCommodityNotFound
		},
	}
	handler := NewCommodityHandler(stub)

	c, _ := newJSONContext(http.MethodPatch, "/", `{"price":5}`)
	authenticate(c, shopA)
	if err := handler.Update(c); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("update: expected ErrNotOwner, got %v", err)
	}

	c, _ = newJSONContext(http.MethodDelete, "/", "")
	authenticate(c, shopA)
	if err := handler.Delete(c); !errors.Is(err, domain.ErrCommodityNotFound) {
		t.Fatalf("delete: expected ErrCommodityNotFound, got %v", err)
	}

	c, _ = newJSONContext(http.MethodPost, "/", "")
	authenticate(c, carl)
	if err := handler.Enroll(c); !errors.Is(err, domain.ErrCommodityNotFound) {
		t.Fatalf("enroll: expected ErrCommodityNotFound, got %v", err)
	}
}

func TestCommodityHandler_Enroll_UsesPrincipal(t *testing.T) {
	var got domain.Principal
	stub := &stubCommodityService{
		enrollFn: func(ctx context.Context, p domain.Principal, id string) error {
			got = p
			return nil
		},
	}
	handler := NewCommodityHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")
	authenticate(c, carl)

	if err := handler.Enroll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.ID != carl.ID || rec.Code != http.StatusOK {
		t.Fatalf("expected enrollment of %s, got %+v (%d)", carl.ID, got, rec.Code)
	}
}

func TestCommodityHandler_Delete(t *testing.T) {
	stub := &stubCommodityService{
		deleteFn: func(ctx context.Context, p domain.Principal, id string) error {
			if p.ID != shopA.ID || id != "c1" {
				t.Fatalf("unexpected args: %+v %q", p, id)
			}
			return nil
		},
	}
	handler := NewCommodityHandler(stub)

	c, rec := newJSONContext(http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")
	authenticate(c, shopA)

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCommodityHandler_RejectsUnknownRole(t *testing.T) {
	handler := NewCommodityHandler(&stubCommodityService{})

	c, _ := newJSONContext(http.MethodPost, "/api/commodity", `{"title":"Widget1","price":10}`)
	authenticate(c, domain.Principal{ID: "x", Role: "admin"})

	if code := httpCode(t, handler.Create(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
