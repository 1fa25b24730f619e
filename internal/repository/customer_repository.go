package repository

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-admin-api/internal/content"
	"github.com/iliyamo/cinema-admin-api/internal/model"
	"github.com/iliyamo/cinema-admin-api/internal/store"
)

// CustomerRepo serves customer documents from the content store through
// the query cache.  The store query orders by join date (newest first)
// to slice stable pages; within a page customers are then sorted by
// name for display.
type CustomerRepo struct {
	client *content.Client
	cache  *store.Cache
}

func NewCustomerRepo(client *content.Client, cache *store.Cache) *CustomerRepo {
	return &CustomerRepo{client: client, cache: cache}
}

func (r *CustomerRepo) fetchList(ctx context.Context, key store.Key, query string) ([]model.Customer, error) {
	bs, err := r.cache.Fetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		res, err := r.client.Fetch(ctx, query)
		if err != nil {
			return nil, err
		}
		customers, err := content.DecodeCustomers(res)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(customers, func(i, j int) bool {
			return customers[i].Name < customers[j].Name
		})
		return json.Marshal(customers)
	})
	if err != nil {
		return nil, err
	}
	var out []model.Customer
	if err := json.Unmarshal(bs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns every customer.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	return r.fetchList(ctx, store.ListKey(content.TypeCustomer),
		content.ListQuery(content.TypeCustomer, "dateJoin", "desc"))
}

// ListPage returns one page of customers (pageSize 10, 1-based page).
func (r *CustomerRepo) ListPage(ctx context.Context, page int) ([]model.Customer, error) {
	return r.fetchList(ctx, store.PageKey(content.TypeCustomer, page),
		content.PageQuery(content.TypeCustomer, "dateJoin", "desc", page))
}

// Count returns the total number of customer documents.
func (r *CustomerRepo) Count(ctx context.Context) (int, error) {
	bs, err := r.cache.Fetch(ctx, store.CountKey(content.TypeCustomer), func(ctx context.Context) ([]byte, error) {
		res, err := r.client.Fetch(ctx, content.CountQuery(content.TypeCustomer))
		if err != nil {
			return nil, err
		}
		n, err := content.DecodeCount(res)
		if err != nil {
			return nil, err
		}
		return []byte(strconv.Itoa(n)), nil
	})
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(string(bs))
}

// Create assigns a fresh document id and writes the customer with the
// caller's credential.
func (r *CustomerRepo) Create(ctx context.Context, credential string, cu model.Customer) (model.Customer, error) {
	cu.ID = "customer_" + uuid.NewString()
	cu.Type = content.TypeCustomer
	if err := r.client.WithCredential(credential).CreateOrReplace(ctx, cu); err != nil {
		return model.Customer{}, err
	}
	_ = r.cache.Invalidate(ctx, store.CustomerMutated)
	return cu, nil
}

// Delete removes a customer document by id.
func (r *CustomerRepo) Delete(ctx context.Context, credential, id string) error {
	if err := r.client.WithCredential(credential).Delete(ctx, id); err != nil {
		return err
	}
	_ = r.cache.Invalidate(ctx, store.CustomerMutated)
	return nil
}
