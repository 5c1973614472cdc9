package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var (
	_ repository.TenantRepository = (*TenantRepo)(nil)
	_ repository.UserRepository   = (*UserRepo)(nil)
)

// TenantRepo tenants en memoria (datos de plataforma, no por tenant).
type TenantRepo struct{ v view }

func (r *TenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	return r.v.write(func(d *dataset) error {
		for _, other := range d.tenants {
			if other.Slug == t.Slug {
				return domain.ErrDuplicate
			}
		}
		d.tenants[t.ID] = *t
		return nil
	})
}

func (r *TenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	var out *entity.Tenant
	r.v.read(func(d *dataset) {
		if t, ok := d.tenants[id]; ok {
			out = &t
		}
	})
	return out, nil
}

func (r *TenantRepo) GetBySlug(_ context.Context, slug string) (*entity.Tenant, error) {
	var out *entity.Tenant
	r.v.read(func(d *dataset) {
		for _, t := range d.tenants {
			if t.Slug == slug {
				t := t
				out = &t
				return
			}
		}
	})
	return out, nil
}

// UserRepo usuarios en memoria.
type UserRepo struct{ v view }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(d *dataset) error {
		for _, other := range d.users {
			if other.TenantID == u.TenantID && other.Email == u.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, tenantID, id string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(d *dataset) {
		if u, ok := d.users[id]; ok && u.TenantID == tenantID {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, tenantID, email string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(d *dataset) {
		for _, u := range d.users {
			if u.TenantID == tenantID && u.Email == email {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) List(_ context.Context, tenantID string, limit, offset int) ([]*entity.User, int, error) {
	var all []*entity.User
	r.v.read(func(d *dataset) {
		for _, u := range d.users {
			if u.TenantID == tenantID {
				u := u
				all = append(all, &u)
			}
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), len(all), nil
}
