// README: Garage service serves the catalog and keeps the shop geo index in step with the repository.
package garage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"garagehub/internal/modules/location"
	"garagehub/internal/modules/points"
	"garagehub/internal/modules/vehicle"
	"garagehub/internal/types"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)

var validate = validator.New()

type Service struct {
	shops  ShopRepository
	issues IssueRepository
	index  location.Index
	log    logrus.FieldLogger
}

func NewService(shops ShopRepository, issues IssueRepository, index location.Index, log logrus.FieldLogger) *Service {
	return &Service{shops: shops, issues: issues, index: index, log: log}
}

func (s *Service) ListIssues(ctx context.Context, fuel vehicle.FuelType) ([]Issue, error) {
	return s.issues.List(ctx, IssueFilter{Fuel: fuel})
}

func (s *Service) GetIssue(ctx context.Context, id types.ID) (*Issue, error) {
	return s.issues.Get(ctx, id)
}

func (s *Service) UpsertIssue(ctx context.Context, i *Issue) error {
	if err := validate.Struct(i); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return s.issues.Upsert(ctx, i)
}

func (s *Service) ListShops(ctx context.Context, f ShopFilter) ([]Shop, error) {
	return s.shops.List(ctx, f)
}

func (s *Service) GetShop(ctx context.Context, id types.ID) (*Shop, error) {
	return s.shops.Get(ctx, id)
}

// UpsertShop stores the shop and moves its index entry. Ratings come from
// outside review aggregates and are clamped into range before validation.
func (s *Service) UpsertShop(ctx context.Context, shop *Shop) error {
	shop.Rating = points.ClampRating(shop.Rating)
	for i := range shop.Mechanics {
		shop.Mechanics[i].Rating = points.ClampRating(shop.Mechanics[i].Rating)
	}
	if err := validate.Struct(shop); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if err := s.shops.Upsert(ctx, shop); err != nil {
		return err
	}
	if err := s.index.Add(ctx, shop.ID, shop.Location); err != nil {
		return fmt.Errorf("index shop %s: %w", shop.ID, err)
	}
	s.log.WithFields(logrus.Fields{"shop_id": shop.ID, "name": shop.Name}).Debug("shop upserted")
	return nil
}

// DeleteShop removes the shop and its index entry.
func (s *Service) DeleteShop(ctx context.Context, id types.ID) error {
	if err := s.shops.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.index.Remove(ctx, id); err != nil {
		return fmt.Errorf("unindex shop %s: %w", id, err)
	}
	s.log.WithField("shop_id", id).Info("shop deleted")
	return nil
}

// Reindex rebuilds the geo index from the repository. Run at start-up when
// the index lives outside the process.
func (s *Service) Reindex(ctx context.Context) (int, error) {
	shops, err := s.shops.List(ctx, ShopFilter{})
	if err != nil {
		return 0, err
	}
	for _, shop := range shops {
		if err := s.index.Add(ctx, shop.ID, shop.Location); err != nil {
			return 0, fmt.Errorf("index shop %s: %w", shop.ID, err)
		}
	}
	return len(shops), nil
}

// Seed loads the sample catalog when no issues are stored yet.
func (s *Service) Seed(ctx context.Context) error {
	existing, err := s.issues.List(ctx, IssueFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		s.log.Info("catalog already present, skipping seed")
		return nil
	}
	issues, shops := SampleCatalog()
	for i := range issues {
		if err := s.UpsertIssue(ctx, &issues[i]); err != nil {
			return fmt.Errorf("seed issue %s: %w", issues[i].ID, err)
		}
	}
	for i := range shops {
		if err := s.UpsertShop(ctx, &shops[i]); err != nil {
			return fmt.Errorf("seed shop %s: %w", shops[i].ID, err)
		}
	}
	s.log.WithFields(logrus.Fields{"issues": len(issues), "shops": len(shops)}).Info("catalog seeded")
	return nil
}
