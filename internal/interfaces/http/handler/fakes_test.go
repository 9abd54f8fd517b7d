package handler

import (
	"context"
	"time"

	domaincatalog "github.com/chatu326/Stationary-Manager/internal/domain/catalog"
	domainidentity "github.com/chatu326/Stationary-Manager/internal/domain/identity"
	domainledger "github.com/chatu326/Stationary-Manager/internal/domain/ledger"
	"github.com/chatu326/Stationary-Manager/internal/domain/shared"
	"github.com/chatu326/Stationary-Manager/internal/interfaces/http/middleware"
	"github.com/chatu326/Stationary-Manager/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const testActor = "alice"

// newTestEngine builds a gin engine with the given handlers registered under
// /api/v1. Instead of the full JWT middleware, a stub injects the username
// the handlers read the acting user from.
func newTestEngine(registrars ...router.RouteRegistrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	r := router.NewRouter(engine)
	r.Use(func(c *gin.Context) {
		c.Set(middleware.JWTUsernameKey, testActor)
		c.Next()
	})
	for _, registrar := range registrars {
		r.Register(registrar)
	}
	r.Setup()
	return engine
}

type fakeItemRepo struct {
	items  map[uint]*domaincatalog.Item
	nextID uint
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uint]*domaincatalog.Item), nextID: 1}
}

func (r *fakeItemRepo) Create(_ context.Context, item *domaincatalog.Item) error {
	item.ID = r.nextID
	r.nextID++
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uint) (*domaincatalog.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeItemRepo) FindAll(_ context.Context) ([]domaincatalog.Item, error) {
	items := make([]domaincatalog.Item, 0, len(r.items))
	for id := uint(1); id < r.nextID; id++ {
		if item, ok := r.items[id]; ok {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (r *fakeItemRepo) FindLowStock(_ context.Context) ([]domaincatalog.Item, error) {
	items := make([]domaincatalog.Item, 0)
	for id := uint(1); id < r.nextID; id++ {
		if item, ok := r.items[id]; ok && item.IsLowStock() {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (r *fakeItemRepo) AdjustStock(_ context.Context, id uint, delta int) error {
	item, ok := r.items[id]
	if !ok {
		return shared.ErrNotFound
	}
	item.Stock += delta
	return nil
}

func (r *fakeItemRepo) TotalStockValue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range r.items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Stock))))
	}
	return total, nil
}

func (r *fakeItemRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

type fakeEntryRepo struct {
	entries []domainledger.Entry
	nextID  uint
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{nextID: 1}
}

func (r *fakeEntryRepo) Append(_ context.Context, entry *domainledger.Entry) error {
	entry.TransID = r.nextID
	r.nextID++
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeEntryRepo) FindByItem(_ context.Context, itemID uint) ([]domainledger.Entry, error) {
	entries := make([]domainledger.Entry, 0)
	for _, e := range r.entries {
		if e.ItemID == itemID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r *fakeEntryRepo) SumDecreasedBetween(_ context.Context, from, to time.Time) (int64, error) {
	var total int64
	for _, e := range r.entries {
		if e.Direction != domainledger.DirectionDecrease {
			continue
		}
		if e.EntryDate.Before(from) || !e.EntryDate.Before(to) {
			continue
		}
		total += int64(e.Quantity)
	}
	return total, nil
}

func (r *fakeEntryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.entries)), nil
}

type fakeCredentialRepo struct {
	credentials map[string]*domainidentity.Credential
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{credentials: make(map[string]*domainidentity.Credential)}
}

func (r *fakeCredentialRepo) Create(_ context.Context, credential *domainidentity.Credential) error {
	if _, ok := r.credentials[credential.Username]; ok {
		return shared.ErrAlreadyExists
	}
	r.credentials[credential.Username] = credential
	return nil
}

func (r *fakeCredentialRepo) FindByUsername(_ context.Context, username string) (*domainidentity.Credential, error) {
	credential, ok := r.credentials[username]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return credential, nil
}

func (r *fakeCredentialRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.credentials)), nil
}

type fakeCodeGenerator struct{}

func (fakeCodeGenerator) EncodeItemID(uint) ([]byte, error) {
	return []byte("\x89PNG fake image"), nil
}

type fakeCodeDecoder struct {
	itemID uint
	err    error
}

func (d fakeCodeDecoder) DecodeItemID([]byte) (uint, error) {
	if d.err != nil {
		return 0, d.err
	}
	return d.itemID, nil
}
